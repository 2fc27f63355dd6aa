package genolr

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/lirical-go/lirical/internal/numeric"
	"github.com/lirical-go/lirical/internal/ontology"
)

// Well-known HPO mode-of-inheritance terms.
const (
	AutosomalDominant  ontology.TermID = "HP:0000006"
	AutosomalRecessive ontology.TermID = "HP:0000007"
)

// Category explains, for reporting, why a per-gene genotype LR came out
// the way it did. Categories never influence scoring.
type Category string

const (
	CategoryNoVariantsAR    Category = "NO_VARIANTS_DETECTED_AR"
	CategoryNoVariantsAD    Category = "NO_VARIANTS_DETECTED_AD"
	CategoryPathogenicMatch Category = "PATHOGENIC_MATCH"
	CategoryHighBackground  Category = "HIGH_BACKGROUND"
	CategoryNoLinkedGene    Category = "NO_LINKED_GENE"
)

// GeneContribution is the per-gene breakdown behind a disease's genotype LR.
type GeneContribution struct {
	GeneID   string
	LR       float64
	Category Category
}

// Threshold returns the expected pathogenic allele count under the disease
// hypothesis for the given mode-of-inheritance terms: 2 for autosomal
// recessive, 1 otherwise. Per spec.md §9's Open Question, an absent or
// unrecognized mode of inheritance defaults to dominant-like (threshold 1)
// to avoid over-penalizing diseases with undocumented inheritance.
func Threshold(modes []ontology.TermID) int {
	for _, m := range modes {
		if m == AutosomalRecessive {
			return 2
		}
	}
	return 1
}

// poissonPMF evaluates the Poisson probability mass at a (possibly
// fractional) count k under rate lambda. Whole counts go through
// distuv.Poisson; distuv gives non-integer counts zero mass, so fractional
// pathogenicity-weighted burdens use the same formula with the Gamma
// function (math.Lgamma) in place of the factorial.
func poissonPMF(k, lambda float64) float64 {
	if lambda <= 0 {
		lambda = 1e-12
	}
	if k < 0 {
		k = 0
	}
	if k != math.Floor(k) {
		lg, _ := math.Lgamma(k + 1)
		return math.Exp(k*math.Log(lambda) - lambda - lg)
	}
	return distuv.Poisson{Lambda: lambda}.Prob(k)
}

// geneLR computes the likelihood ratio for a single gene: the ratio of the
// Poisson probability of observing lambdaObs alleles under the
// disease-hypothesis rate (the mode-of-inheritance threshold) versus under
// the population background rate lambdaBg (§4.3).
func geneLR(lambdaObs float64, threshold int, lambdaBg float64) (float64, Category) {
	pD := poissonPMF(lambdaObs, float64(threshold))
	pBg := poissonPMF(lambdaObs, lambdaBg)
	lr := pD / pBg

	if lambdaObs < float64(threshold) {
		if threshold >= 2 {
			return lr, CategoryNoVariantsAR
		}
		return lr, CategoryNoVariantsAD
	}
	if lr >= 1 {
		return lr, CategoryPathogenicMatch
	}
	return lr, CategoryHighBackground
}

// GenotypeLR computes the genotype likelihood ratio for a disease: the
// maximum per-gene LR over the disease's linked genes (the best candidate
// gene), per §4.3. Genes with no genotype observation or no background
// rate entry are skipped silently (not fatal). A disease with no linked genes, or none of whose
// linked genes has usable evidence, is genotype-uninformative: LR = 1.
func GenotypeLR(linkedGenes []string, modes []ontology.TermID, gt map[string]Gene2Genotype, bgRates BackgroundRateTable) (float64, []GeneContribution, error) {
	if len(linkedGenes) == 0 {
		return 1.0, nil, nil
	}

	threshold := Threshold(modes)

	best := 1.0
	bestSet := false
	var contributions []GeneContribution

	for _, gene := range linkedGenes {
		g, ok := gt[gene]
		if !ok {
			continue
		}
		lambdaBg, ok := bgRates.BackgroundRate(gene)
		if !ok {
			continue
		}
		lr, cat := geneLR(g.PathogenicAlleleCount, threshold, lambdaBg)
		if err := numeric.CheckFinite("genolr.geneLR", lr); err != nil {
			return 0, nil, err
		}
		contributions = append(contributions, GeneContribution{GeneID: gene, LR: lr, Category: cat})
		if !bestSet || lr > best {
			best = lr
			bestSet = true
		}
	}

	if !bestSet {
		return 1.0, contributions, nil
	}
	return best, contributions, nil
}
