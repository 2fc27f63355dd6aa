package diskcache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"

	"github.com/lirical-go/lirical/internal/corpus"
	"github.com/lirical-go/lirical/internal/ontology"
)

// Fingerprint identifies the exact (ontology, corpus) pair a cached
// background index was computed from. A persisted index is only reused when
// its fingerprint matches the current inputs; any mismatch triggers a full
// rebuild (ontology or corpus changed underneath the cache).
type Fingerprint struct {
	CorpusSize int
	TermCount  int
	Hash       string
}

// Key returns the fingerprint's cache lookup key.
func (f Fingerprint) Key() string {
	return fmt.Sprintf("%d:%d:%s", f.CorpusSize, f.TermCount, f.Hash)
}

// Compute derives a Fingerprint from the ontology and corpus that would be
// used to build a background index. The hash covers every term under the
// ontology root with its immediate parents, and every disease id with its
// annotated term/frequency pairs, in a stable, order-independent way, so
// reordering the corpus on disk does not spuriously invalidate the cache.
func Compute(onto *ontology.Ontology, c *corpus.DiseaseCorpus) Fingerprint {
	records := append([]*corpus.DiseaseRecord(nil), c.All()...)
	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })

	h := sha256.New()
	ontoTerms := onto.Descendants(onto.Root()).Slice()
	sort.Slice(ontoTerms, func(i, j int) bool { return ontoTerms[i] < ontoTerms[j] })
	for _, t := range ontoTerms {
		parents := onto.ImmediateParents(t)
		sort.Slice(parents, func(i, j int) bool { return parents[i] < parents[j] })
		fmt.Fprintf(h, "T\x00%s\x00", t)
		for _, p := range parents {
			fmt.Fprintf(h, "%s\x00", p)
		}
	}
	for _, d := range records {
		fmt.Fprintf(h, "D\x00%s\x00", d.ID)
		terms := append([]corpus.PhenotypeFrequency(nil), d.PhenotypeFreqs...)
		sort.Slice(terms, func(i, j int) bool { return terms[i].Term < terms[j].Term })
		for _, pf := range terms {
			fmt.Fprintf(h, "%s\x00%.17g\x00", pf.Term, pf.Frequency)
		}
	}

	return Fingerprint{
		CorpusSize: c.Len(),
		TermCount:  len(onto.Descendants(onto.Root())),
		Hash:       hex.EncodeToString(h.Sum(nil)),
	}
}
