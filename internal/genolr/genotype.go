// Package genolr computes the genotype likelihood ratio: the ratio of the
// likelihood of the observed pathogenic-variant burden in a disease's
// linked genes under the disease hypothesis versus under the population
// background rate (§4.3).
package genolr

// VariantCall is a single called variant considered for pathogenic burden.
type VariantCall struct {
	Pathogenicity       float64 // in [0,1]
	PopulationFrequency float64
	FilterPass          bool
}

// Gene2Genotype summarizes the per-gene genotype evidence for one case: the
// count of predicted-pathogenic alleles (pathogenicity x allele count,
// optionally clamped) and the individual variant calls that contributed to
// it. Filter-failed variants are excluded from PathogenicAlleleCount by
// the external genotype extractor (§3); this package treats the count as
// authoritative.
type Gene2Genotype struct {
	GeneID                string
	PathogenicAlleleCount float64 // lambda_obs
	Variants              []VariantCall
}

// BackgroundRateTable is the injected gene -> background pathogenic rate
// collaborator (§6 consumed interfaces).
type BackgroundRateTable interface {
	// BackgroundRate returns lambda_bg for gene, and whether gene is known.
	BackgroundRate(gene string) (float64, bool)
}

// StaticRates is a BackgroundRateTable backed by a fixed, pre-loaded map.
// Suitable for the fixture-based loader and for tests.
type StaticRates map[string]float64

// BackgroundRate implements BackgroundRateTable.
func (r StaticRates) BackgroundRate(gene string) (float64, bool) {
	v, ok := r[gene]
	return v, ok
}
