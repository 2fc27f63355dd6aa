package ontology

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Small HPO-like fragment:
//
//	root
//	 └── abnormality of the lens (L)
//	      └── cataract (C)
//	           └── nuclear cataract (N)
//	 └── abnormality of the eye (E) -- shares root only with abnormality of the ear (R)
//	 └── abnormality of the ear (R)
const (
	root = TermID("HP:0000118")
	lens = TermID("HP:0000517")
	cat  = TermID("HP:0000518")
	nuc  = TermID("HP:0000120")
	eye  = TermID("HP:0000478")
	ear  = TermID("HP:0000598")
)

func buildTestOntology(t *testing.T) *Ontology {
	t.Helper()
	edges := []Edge{
		{Child: lens, Parent: root},
		{Child: cat, Parent: lens},
		{Child: nuc, Parent: cat},
		{Child: eye, Parent: root},
		{Child: ear, Parent: root},
	}
	o, err := NewOntology(edges, map[TermID]string{
		root: "Phenotypic abnormality",
		lens: "Abnormality of the lens",
		cat:  "Cataract",
		nuc:  "Nuclear cataract",
		eye:  "Abnormality of the eye",
		ear:  "Abnormality of the ear",
	}, map[TermID]TermID{
		"HP:9999999": nuc, // alias
	}, root)
	require.NoError(t, err)
	return o
}

func TestIsSubclass(t *testing.T) {
	o := buildTestOntology(t)
	assert.True(t, o.IsSubclass(nuc, cat))
	assert.True(t, o.IsSubclass(nuc, root))
	assert.True(t, o.IsSubclass(nuc, nuc))
	assert.False(t, o.IsSubclass(cat, nuc))
	assert.False(t, o.IsSubclass(eye, ear))
}

func TestAncestors(t *testing.T) {
	o := buildTestOntology(t)
	anc, err := o.Ancestors(nuc, true)
	require.NoError(t, err)
	assert.True(t, anc.Contains(nuc))
	assert.True(t, anc.Contains(cat))
	assert.True(t, anc.Contains(lens))
	assert.True(t, anc.Contains(root))
	assert.False(t, anc.Contains(eye))

	ancNoSelf, err := o.Ancestors(nuc, false)
	require.NoError(t, err)
	assert.False(t, ancNoSelf.Contains(nuc))
	assert.True(t, ancNoSelf.Contains(cat))
}

func TestPrimaryIDAlias(t *testing.T) {
	o := buildTestOntology(t)
	assert.Equal(t, nuc, o.PrimaryID("HP:9999999"))
	assert.True(t, o.IsSubclass("HP:9999999", cat))
}

func TestDescendants(t *testing.T) {
	o := buildTestOntology(t)
	d := o.Descendants(root)
	assert.True(t, d.Contains(root))
	assert.True(t, d.Contains(nuc))
	assert.True(t, d.Contains(eye))
	assert.True(t, d.Contains(ear))
}

func TestBFSUpward(t *testing.T) {
	o := buildTestOntology(t)
	order := o.BFSUpward(nuc)
	require.Equal(t, []TermID{nuc, cat, lens, root}, order)
}

func TestIsDescendantOfRoot(t *testing.T) {
	o := buildTestOntology(t)
	assert.True(t, o.IsDescendantOfRoot(nuc))
	assert.True(t, o.IsDescendantOfRoot(root))
	assert.False(t, o.IsDescendantOfRoot(TermID("HP:notaterm")))
}
