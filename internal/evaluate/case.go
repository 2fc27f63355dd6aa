// Package evaluate implements the case evaluator (§4.4): it combines
// observed and excluded phenotype terms with optional genotype evidence
// across every disease in the corpus and produces a deterministic ranked
// posterior.
package evaluate

import (
	"github.com/lirical-go/lirical/internal/genolr"
	"github.com/lirical-go/lirical/internal/ontology"
)

// CaseQuery is the per-invocation input: observed and excluded phenotype
// terms plus an optional per-gene genotype map. Genotype is nil in
// phenotype-only mode.
type CaseQuery struct {
	Observed []ontology.TermID
	Excluded []ontology.TermID
	Genotype map[string]genolr.Gene2Genotype
}

// TermContribution is the per-term breakdown of a disease's phenotype LR.
type TermContribution struct {
	Term     ontology.TermID
	Excluded bool
	LR       float64
}

// GenotypeContribution is the per-disease genotype LR breakdown.
type GenotypeContribution struct {
	LR    float64
	Genes []genolr.GeneContribution
}

// DiseaseScore is one disease's ranked result: its composite log-LR,
// posterior probability, and the per-term/per-gene contributions that
// produced it.
type DiseaseScore struct {
	DiseaseID              string
	LogLR                  float64
	Posterior              float64
	PhenotypeContributions []TermContribution
	GenotypeContribution   *GenotypeContribution
}
