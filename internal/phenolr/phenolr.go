// Package phenolr computes the per-term phenotype likelihood ratio: the
// foreground frequency of an observed (or excluded) term on a candidate
// disease, divided by its background frequency in the corpus, with the
// fuzzy-match fallback policy of §4.2 when the term is not directly
// annotated on the disease.
package phenolr

import (
	"math"

	"github.com/lirical-go/lirical/internal/background"
	"github.com/lirical-go/lirical/internal/corpus"
	"github.com/lirical-go/lirical/internal/numeric"
	"github.com/lirical-go/lirical/internal/ontology"
)

// Background is the subset of background.Index the calculator needs,
// expressed as an interface so tests can substitute a fake.
type Background interface {
	Background(t ontology.TermID) (float64, error)
}

var _ Background = (*background.Index)(nil)

// Calculator computes phenotype likelihood ratios against a fixed ontology
// and background index. It holds no per-case state and is safe for
// concurrent use across diseases.
type Calculator struct {
	onto *ontology.Ontology
	bg   Background
}

// New builds a phenotype LR calculator.
func New(onto *ontology.Ontology, bg Background) *Calculator {
	return &Calculator{onto: onto, bg: bg}
}

// LR computes pheno_lr(q, D) = freqInDisease(D, q) / background(q), using
// the direct-match / fuzzy-match policy of §4.2.
func (c *Calculator) LR(q ontology.TermID, d *corpus.DiseaseRecord) (float64, error) {
	bg, err := c.bg.Background(q)
	if err != nil {
		return 0, err
	}
	numer := c.freqInDisease(q, d)
	lr := numer / bg
	if err := numeric.CheckFinite("phenolr.LR", lr); err != nil {
		return 0, err
	}
	return lr, nil
}

// ExcludedLR computes the symmetric likelihood ratio for a term reported
// as excluded in the patient: numerator is 1 - freqInDisease(D, q),
// denominator is 1 - background(q), each clamped away from 0 and 1 by
// background.FPFloor.
func (c *Calculator) ExcludedLR(q ontology.TermID, d *corpus.DiseaseRecord) (float64, error) {
	bg, err := c.bg.Background(q)
	if err != nil {
		return 0, err
	}
	numer := 1 - c.freqInDisease(q, d)
	denom := 1 - bg

	numer = numeric.Clamp(numer, background.FPFloor, 1-background.FPFloor)
	denom = numeric.Clamp(denom, background.FPFloor, 1-background.FPFloor)

	lr := numer / denom
	if err := numeric.CheckFinite("phenolr.ExcludedLR", lr); err != nil {
		return 0, err
	}
	return lr, nil
}

// freqInDisease computes the foreground numerator for q on d: a direct
// match when available, else the first fuzzy-match branch that applies
// (§4.2), else background.FPFloor.
func (c *Calculator) freqInDisease(q ontology.TermID, d *corpus.DiseaseRecord) float64 {
	if f, ok := d.FrequencyOf(q); ok {
		if f <= 0 {
			f = 1.0
		}
		return f
	}

	if v, ok := c.fuzzyBranch1(q, d); ok {
		return v
	}
	if v, ok := c.fuzzyBranch2(q, d); ok {
		return v
	}
	return background.FPFloor
}

// fuzzyBranch1 covers "query is an ancestor of some annotated term on D":
// the disease annotates a more specific term than the query, which
// entails the query. Returns the arithmetic mean of the frequency over all
// such annotated terms.
func (c *Calculator) fuzzyBranch1(q ontology.TermID, d *corpus.DiseaseRecord) (float64, bool) {
	var sum float64
	var n int
	for _, pf := range d.PhenotypeFreqs {
		if c.onto.IsSubclass(pf.Term, q) && pf.Term != q {
			f := pf.Frequency
			if f <= 0 {
				f = 1.0
			}
			sum += f
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// fuzzyBranch2 covers "query is more specific than some annotated term on
// D": the disease only entails a more general statement than the query.
// Walk from q toward the root in BFS order; the first ancestor that also
// lies in the union of ancestor closures of D's annotations is the shared
// informative ancestor td, at BFS-discovery position i (q itself is i=0).
// If td is the ontology root, there is no informative shared ancestor and
// this branch yields no match. Otherwise the score is 1/(1+ln i) for i>=1,
// or 1.0 for i=0 (td==q, meaning some annotated term on D equals q exactly
// via a subclass relation entailed by D — handled so ln(0) is never taken).
//
// The BFS discovery index i is interpreted as "BFS visit order starting at
// q" rather than "edges from q" (spec.md §9 Open Question): q is visited
// at i=0 and the first informative ancestor is necessarily found at i>=1
// once a direct match and branch 1 have both already failed, since td==q
// would have been a direct match. This is pinned by
// TestFuzzyMatchBranch2_PathLengthOne.
func (c *Calculator) fuzzyBranch2(q ontology.TermID, d *corpus.DiseaseRecord) (float64, bool) {
	anyApplies := false
	for _, pf := range d.PhenotypeFreqs {
		if c.onto.IsSubclass(q, pf.Term) {
			anyApplies = true
			break
		}
	}
	if !anyApplies {
		return 0, false
	}

	// ancestors(D) = union of ancestors(t, incl=true) over every term t
	// annotated on D (not just those entailing q): a sibling term under a
	// shared organ-system ancestor can still give the closest informative
	// match once the branch's existence condition above is satisfied.
	diseaseAncestors := make(map[ontology.TermID]struct{})
	for _, pf := range d.PhenotypeFreqs {
		anc, err := c.onto.Ancestors(pf.Term, true)
		if err != nil {
			continue
		}
		for a := range anc {
			diseaseAncestors[a] = struct{}{}
		}
	}

	path := c.onto.BFSUpward(q)
	for i, td := range path {
		if _, ok := diseaseAncestors[td]; !ok {
			continue
		}
		if td == c.onto.Root() {
			return 0, false
		}
		if i == 0 {
			return 1.0, true
		}
		return 1.0 / (1.0 + math.Log(float64(i))), true
	}
	return 0, false
}
