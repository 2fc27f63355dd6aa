// Package background computes and serves the background frequency index:
// for every ontology term reachable from the root, the fraction of the
// disease corpus annotated with that term, directly or through ontology
// propagation (§4.1).
package background

import (
	"fmt"

	"github.com/lirical-go/lirical/internal/corpus"
	"github.com/lirical-go/lirical/internal/ontology"
)

// FPFloor is the false-positive floor: the minimum background probability
// returned for any term, 1:200000, used both to avoid division by zero in
// downstream likelihood ratios and to encode the prior that an apparently
// never-seen term is more plausibly a false-positive observation than
// truly impossible.
const FPFloor = 5e-6

// UnknownTermError reports a term that could not be resolved in the
// ontology, even after alias canonicalization.
type UnknownTermError struct {
	Term ontology.TermID
}

func (e *UnknownTermError) Error() string {
	return fmt.Sprintf("unknown term: %s", e.Term)
}

// MissingBackgroundError reports a term that passed ontology validation but
// has no entry in the background map after construction. This indicates a
// construction bug, not a user error, and should fail fast.
type MissingBackgroundError struct {
	Term ontology.TermID
}

func (e *MissingBackgroundError) Error() string {
	return fmt.Sprintf("background index has no entry for term %s after construction", e.Term)
}

// Index maps ontology terms to their corpus background probability.
type Index struct {
	onto      *ontology.Ontology
	raw       map[ontology.TermID]float64 // pre-clamp, normalized probability
	corpusLen int
}

// Build constructs the background index per §4.1: seed every descendant of
// the ontology root at 0, accumulate frequency mass along the full
// ancestor closure of each disease annotation, then normalize by corpus
// size. The result is not yet clamped; clamping happens at lookup time in
// Background.
func Build(onto *ontology.Ontology, c *corpus.DiseaseCorpus) (*Index, error) {
	if c.Len() == 0 {
		return nil, fmt.Errorf("background: cannot build index from an empty corpus")
	}

	descendants := onto.Descendants(onto.Root())
	m := make(map[ontology.TermID]float64, len(descendants))
	for t := range descendants {
		m[t] = 0.0
	}

	for _, d := range c.All() {
		for _, pf := range d.PhenotypeFreqs {
			ancestors, err := onto.Ancestors(pf.Term, true)
			if err != nil {
				return nil, fmt.Errorf("background: disease %s annotates unknown term %s: %w", d.ID, pf.Term, err)
			}
			f := pf.Frequency
			if f <= 0 {
				f = 1.0
			}
			for a := range ancestors {
				m[a] += f
			}
		}
	}

	n := float64(c.Len())
	for k, v := range m {
		m[k] = v / n
	}

	return &Index{onto: onto, raw: m, corpusLen: c.Len()}, nil
}

// Background returns the clamped background probability for t, in
// [FPFloor, 1]. If t has no entry, it is canonicalized via the ontology
// alias table and retried; if it still has no entry, Background returns
// UnknownTermError (t was never a valid ontology term) or
// MissingBackgroundError (t is valid but construction missed it — a bug).
// Background never silently returns zero.
func (idx *Index) Background(t ontology.TermID) (float64, error) {
	if v, ok := idx.raw[t]; ok {
		return clampFloor(v), nil
	}

	canon := idx.onto.PrimaryID(t)
	if v, ok := idx.raw[canon]; ok {
		return clampFloor(v), nil
	}

	if !idx.onto.Has(canon) {
		return 0, &UnknownTermError{Term: t}
	}
	return 0, &MissingBackgroundError{Term: t}
}

func clampFloor(v float64) float64 {
	if v < FPFloor {
		return FPFloor
	}
	if v > 1 {
		return 1
	}
	return v
}

// RawLen returns the number of terms tracked in the pre-clamp map, for
// diagnostics and cache fingerprinting.
func (idx *Index) RawLen() int { return len(idx.raw) }

// CorpusSize returns the corpus size the index was normalized against.
func (idx *Index) CorpusSize() int { return idx.corpusLen }

// Export returns the pre-clamp raw frequency map and the corpus size it was
// normalized against, for serialization by internal/diskcache. Callers must
// not mutate the returned map.
func (idx *Index) Export() (map[ontology.TermID]float64, int) {
	return idx.raw, idx.corpusLen
}

// FromRaw rehydrates an Index from a previously exported raw map and corpus
// size, without recomputing it from the corpus. Used by internal/diskcache
// to restore a persisted background index.
func FromRaw(onto *ontology.Ontology, raw map[ontology.TermID]float64, corpusLen int) *Index {
	return &Index{onto: onto, raw: raw, corpusLen: corpusLen}
}
