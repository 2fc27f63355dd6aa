// Package corpus holds the disease corpus and gene/disease index: the
// external, read-only inputs the scoring engine consumes. Loading these
// from annotation files is a collaborator's job (out of scope here); this
// package only defines the shapes and the immutable, shared-safe
// collections built once from parsed records.
package corpus

import "github.com/lirical-go/lirical/internal/ontology"

// PhenotypeFrequency is a single (term, frequency) annotation on a disease.
type PhenotypeFrequency struct {
	Term      ontology.TermID
	Frequency float64 // in [0,1]; defaults to 1.0 when unspecified in source
}

// DiseaseRecord is one corpus entry: a disease id, its ordered phenotype
// annotations, mode-of-inheritance terms, and linked gene ids.
//
// PhenotypeFreqs is intentionally a slice, not a map: §4.2's fuzzy-match
// branch 2 requires a deterministic iteration order over a disease's
// annotations (the order the source data declared them in), and a map
// would not provide that.
type DiseaseRecord struct {
	ID               string
	Name             string
	PhenotypeFreqs   []PhenotypeFrequency
	InheritanceModes []ontology.TermID
	Genes            []string
}

// FrequencyOf returns the recorded frequency for term t on this disease,
// and whether t is directly annotated at all.
func (d *DiseaseRecord) FrequencyOf(t ontology.TermID) (float64, bool) {
	for _, pf := range d.PhenotypeFreqs {
		if pf.Term == t {
			return pf.Frequency, true
		}
	}
	return 0, false
}
