package corpus

// GeneDiseaseIndex holds the gene<->disease multimaps and the gene id to
// symbol table, built once from external gene/disease annotation data and
// shared read-only across evaluations.
type GeneDiseaseIndex struct {
	diseaseGenes map[string][]string // disease id -> gene ids
	geneDiseases map[string][]string // gene id -> disease ids
	geneSymbols  map[string]string   // gene id -> symbol
}

// NewGeneDiseaseIndex builds an index from disease->genes links and a gene
// id->symbol table. The inverse gene->diseases map is derived here so both
// directions are O(1) lookups.
func NewGeneDiseaseIndex(diseaseGenes map[string][]string, geneSymbols map[string]string) *GeneDiseaseIndex {
	idx := &GeneDiseaseIndex{
		diseaseGenes: diseaseGenes,
		geneDiseases: make(map[string][]string),
		geneSymbols:  geneSymbols,
	}
	if idx.diseaseGenes == nil {
		idx.diseaseGenes = map[string][]string{}
	}
	if idx.geneSymbols == nil {
		idx.geneSymbols = map[string]string{}
	}
	for disease, genes := range idx.diseaseGenes {
		for _, gene := range genes {
			idx.geneDiseases[gene] = append(idx.geneDiseases[gene], disease)
		}
	}
	return idx
}

// GenesForDisease returns the gene ids linked to disease, or nil if none.
func (idx *GeneDiseaseIndex) GenesForDisease(disease string) []string {
	return idx.diseaseGenes[disease]
}

// DiseasesForGene returns the disease ids linked to gene, or nil if none.
func (idx *GeneDiseaseIndex) DiseasesForGene(gene string) []string {
	return idx.geneDiseases[gene]
}

// Symbol returns the gene symbol for gene id, or "" if unknown.
func (idx *GeneDiseaseIndex) Symbol(gene string) string {
	return idx.geneSymbols[gene]
}

// HasGene reports whether gene is linked to at least one disease or carries
// a symbol entry. A genotype map key that fails this check references a
// gene the index has never heard of (typo, wrong build, stale annotation).
func (idx *GeneDiseaseIndex) HasGene(gene string) bool {
	if _, ok := idx.geneDiseases[gene]; ok {
		return true
	}
	_, ok := idx.geneSymbols[gene]
	return ok
}
