// Package loader reads the minimal YAML fixture format lirical analyze
// consumes for its ontology, disease corpus, and gene background rate
// table. It is deliberately small: a full HPO OBO/JSON parser and a
// phenotype.hpoa annotation parser are external collaborators out of scope
// here, consumed through the same internal/ontology and internal/corpus
// types this loader also produces.
package loader

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lirical-go/lirical/internal/corpus"
	"github.com/lirical-go/lirical/internal/genolr"
	"github.com/lirical-go/lirical/internal/ontology"
)

// OntologyFixture is the on-disk shape of an ontology file.
type OntologyFixture struct {
	Root  string            `yaml:"root"`
	Names map[string]string `yaml:"names"`
	Edges []struct {
		Child  string `yaml:"child"`
		Parent string `yaml:"parent"`
	} `yaml:"edges"`
	Aliases map[string]string `yaml:"aliases"`
}

// LoadOntology reads an OntologyFixture from path and builds an
// *ontology.Ontology from it.
func LoadOntology(path string) (*ontology.Ontology, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loader: read ontology file: %w", err)
	}

	var f OntologyFixture
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("loader: parse ontology file: %w", err)
	}
	if f.Root == "" {
		return nil, fmt.Errorf("loader: ontology file %s: root is required", path)
	}

	edges := make([]ontology.Edge, 0, len(f.Edges))
	for _, e := range f.Edges {
		edges = append(edges, ontology.Edge{Child: ontology.TermID(e.Child), Parent: ontology.TermID(e.Parent)})
	}

	names := make(map[ontology.TermID]string, len(f.Names))
	for id, name := range f.Names {
		names[ontology.TermID(id)] = name
	}

	aliases := make(map[ontology.TermID]ontology.TermID, len(f.Aliases))
	for alias, primary := range f.Aliases {
		aliases[ontology.TermID(alias)] = ontology.TermID(primary)
	}

	onto, err := ontology.NewOntology(edges, names, aliases, ontology.TermID(f.Root))
	if err != nil {
		return nil, fmt.Errorf("loader: build ontology from %s: %w", path, err)
	}
	return onto, nil
}

// DiseaseFixture is the on-disk shape of one disease corpus entry.
type DiseaseFixture struct {
	ID         string `yaml:"id"`
	Name       string `yaml:"name"`
	Phenotypes []struct {
		Term      string  `yaml:"term"`
		Frequency float64 `yaml:"frequency"`
	} `yaml:"phenotypes"`
	InheritanceModes []string `yaml:"inheritance_modes"`
	Genes            []string `yaml:"genes"`
}

// GeneFixture is the on-disk shape of one gene's background rate entry.
type GeneFixture struct {
	GeneID         string  `yaml:"gene_id"`
	Symbol         string  `yaml:"symbol"`
	BackgroundRate float64 `yaml:"background_rate"`
}

// CorpusFixture is the on-disk shape of the disease corpus file.
type CorpusFixture struct {
	Diseases []DiseaseFixture `yaml:"diseases"`
	Genes    []GeneFixture    `yaml:"genes"`
}

// LoadCorpus reads a CorpusFixture from path and builds a DiseaseCorpus, a
// GeneDiseaseIndex, and a static gene background rate table from it.
func LoadCorpus(path string) (*corpus.DiseaseCorpus, *corpus.GeneDiseaseIndex, genolr.StaticRates, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loader: read corpus file: %w", err)
	}

	var f CorpusFixture
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, nil, nil, fmt.Errorf("loader: parse corpus file: %w", err)
	}

	records := make([]*corpus.DiseaseRecord, 0, len(f.Diseases))
	diseaseGenes := make(map[string][]string, len(f.Diseases))
	for _, d := range f.Diseases {
		freqs := make([]corpus.PhenotypeFrequency, 0, len(d.Phenotypes))
		for _, p := range d.Phenotypes {
			freqs = append(freqs, corpus.PhenotypeFrequency{Term: ontology.TermID(p.Term), Frequency: p.Frequency})
		}
		modes := make([]ontology.TermID, 0, len(d.InheritanceModes))
		for _, m := range d.InheritanceModes {
			modes = append(modes, ontology.TermID(m))
		}
		records = append(records, &corpus.DiseaseRecord{
			ID:               d.ID,
			Name:             d.Name,
			PhenotypeFreqs:   freqs,
			InheritanceModes: modes,
			Genes:            d.Genes,
		})
		if len(d.Genes) > 0 {
			diseaseGenes[d.ID] = d.Genes
		}
	}

	geneSymbols := make(map[string]string, len(f.Genes))
	rates := make(genolr.StaticRates, len(f.Genes))
	for _, g := range f.Genes {
		if g.Symbol != "" {
			geneSymbols[g.GeneID] = g.Symbol
		}
		rates[g.GeneID] = g.BackgroundRate
	}

	c, err := corpus.NewCorpus(records, nil)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loader: build corpus from %s: %w", path, err)
	}

	geneIdx := corpus.NewGeneDiseaseIndex(diseaseGenes, geneSymbols)
	return c, geneIdx, rates, nil
}

// CaseFixture is the on-disk shape of an ad hoc case query, used by
// `lirical analyze --hpo-terms` in place of a full phenopacket reader.
type CaseFixture struct {
	Observed []string `yaml:"observed"`
	Excluded []string `yaml:"excluded"`
	Genotype map[string]struct {
		PathogenicAlleleCount float64 `yaml:"pathogenic_allele_count"`
	} `yaml:"genotype"`
}

// LoadCase reads a CaseFixture from path and converts it to an
// evaluate-ready observed/excluded term list plus genotype map. The
// genotype map is nil (phenotype-only mode) when the fixture's genotype
// section is empty.
func LoadCase(path string) ([]ontology.TermID, []ontology.TermID, map[string]genolr.Gene2Genotype, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loader: read case file: %w", err)
	}

	var f CaseFixture
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, nil, nil, fmt.Errorf("loader: parse case file: %w", err)
	}

	observed := make([]ontology.TermID, 0, len(f.Observed))
	for _, t := range f.Observed {
		observed = append(observed, ontology.TermID(t))
	}
	excluded := make([]ontology.TermID, 0, len(f.Excluded))
	for _, t := range f.Excluded {
		excluded = append(excluded, ontology.TermID(t))
	}

	var genotype map[string]genolr.Gene2Genotype
	if len(f.Genotype) > 0 {
		genotype = make(map[string]genolr.Gene2Genotype, len(f.Genotype))
		for gene, g := range f.Genotype {
			genotype[gene] = genolr.Gene2Genotype{GeneID: gene, PathogenicAlleleCount: g.PathogenicAlleleCount}
		}
	}

	return observed, excluded, genotype, nil
}
