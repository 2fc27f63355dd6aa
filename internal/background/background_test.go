package background

import (
	"fmt"
	"testing"

	"github.com/lirical-go/lirical/internal/corpus"
	"github.com/lirical-go/lirical/internal/ontology"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	root = ontology.TermID("HP:0000118")
	lens = ontology.TermID("HP:0000517")
	cat  = ontology.TermID("HP:0000518")
	nuc  = ontology.TermID("HP:0000120")
	eye  = ontology.TermID("HP:0000478")
)

func testOntology(t *testing.T) *ontology.Ontology {
	t.Helper()
	edges := []ontology.Edge{
		{Child: lens, Parent: root},
		{Child: cat, Parent: lens},
		{Child: nuc, Parent: cat},
		{Child: eye, Parent: root},
	}
	o, err := ontology.NewOntology(edges, nil, nil, root)
	require.NoError(t, err)
	return o
}

func diseaseWithTerm(id string, term ontology.TermID, freq float64) *corpus.DiseaseRecord {
	return &corpus.DiseaseRecord{
		ID: id,
		PhenotypeFreqs: []corpus.PhenotypeFrequency{
			{Term: term, Frequency: freq},
		},
	}
}

func TestBackground_SingleDiseaseFullFrequency(t *testing.T) {
	o := testOntology(t)
	c, err := corpus.NewCorpus([]*corpus.DiseaseRecord{
		diseaseWithTerm("OMIM:1", nuc, 1.0),
	}, nil)
	require.NoError(t, err)

	idx, err := Build(o, c)
	require.NoError(t, err)

	bg, err := idx.Background(nuc)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, bg, 1e-9)
}

func TestBackground_MonotoneAlongDAG(t *testing.T) {
	o := testOntology(t)
	c, err := corpus.NewCorpus([]*corpus.DiseaseRecord{
		diseaseWithTerm("OMIM:1", nuc, 1.0),
		diseaseWithTerm("OMIM:2", cat, 0.5),
	}, nil)
	require.NoError(t, err)
	idx, err := Build(o, c)
	require.NoError(t, err)

	bgNuc, err := idx.Background(nuc)
	require.NoError(t, err)
	bgCat, err := idx.Background(cat)
	require.NoError(t, err)
	bgLens, err := idx.Background(lens)
	require.NoError(t, err)
	bgRoot, err := idx.Background(root)
	require.NoError(t, err)

	assert.LessOrEqual(t, bgNuc, bgCat)
	assert.LessOrEqual(t, bgCat, bgLens)
	assert.LessOrEqual(t, bgLens, bgRoot)
}

func TestBackground_TwoDiseasesAverage(t *testing.T) {
	// Disease A has term t at 1.0, disease B at 0.5 => background(t) == 0.75 pre-clamp.
	o := testOntology(t)
	c, err := corpus.NewCorpus([]*corpus.DiseaseRecord{
		diseaseWithTerm("OMIM:1", nuc, 1.0),
		diseaseWithTerm("OMIM:2", nuc, 0.5),
	}, nil)
	require.NoError(t, err)
	idx, err := Build(o, c)
	require.NoError(t, err)

	bg, err := idx.Background(nuc)
	require.NoError(t, err)
	assert.InDelta(t, 0.75, bg, 1e-9)
}

func TestBackground_UnannotatedTermFloorsAtFPFloor(t *testing.T) {
	o := testOntology(t)
	c, err := corpus.NewCorpus([]*corpus.DiseaseRecord{
		diseaseWithTerm("OMIM:1", nuc, 1.0),
	}, nil)
	require.NoError(t, err)
	idx, err := Build(o, c)
	require.NoError(t, err)

	bg, err := idx.Background(eye)
	require.NoError(t, err)
	assert.Equal(t, FPFloor, bg)
}

func TestBackground_UnknownTermErrors(t *testing.T) {
	o := testOntology(t)
	c, err := corpus.NewCorpus([]*corpus.DiseaseRecord{
		diseaseWithTerm("OMIM:1", nuc, 1.0),
	}, nil)
	require.NoError(t, err)
	idx, err := Build(o, c)
	require.NoError(t, err)

	_, err = idx.Background(ontology.TermID("HP:9999999"))
	require.Error(t, err)
	var uerr *UnknownTermError
	assert.ErrorAs(t, err, &uerr)
}

func TestBackground_196DiseaseCorpus(t *testing.T) {
	o := testOntology(t)
	records := make([]*corpus.DiseaseRecord, 0, 196)
	records = append(records, diseaseWithTerm("OMIM:1", nuc, 1.0))
	for i := 2; i <= 196; i++ {
		records = append(records, diseaseWithTerm(fmt.Sprintf("OMIM:%d", i), eye, 1.0))
	}
	c, err := corpus.NewCorpus(records, nil)
	require.NoError(t, err)
	idx, err := Build(o, c)
	require.NoError(t, err)

	bg, err := idx.Background(nuc)
	require.NoError(t, err)
	assert.InDelta(t, 1.0/196.0, bg, 1e-6)
}
