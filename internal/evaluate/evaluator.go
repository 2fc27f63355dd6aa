package evaluate

import (
	"context"
	"math"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/lirical-go/lirical/internal/corpus"
	"github.com/lirical-go/lirical/internal/genolr"
	"github.com/lirical-go/lirical/internal/logging"
	"github.com/lirical-go/lirical/internal/numeric"
	"github.com/lirical-go/lirical/internal/ontology"
	"github.com/lirical-go/lirical/internal/phenolr"
)

// PhenotypeLR is the subset of phenolr.Calculator the evaluator depends on.
type PhenotypeLR interface {
	LR(q ontology.TermID, d *corpus.DiseaseRecord) (float64, error)
	ExcludedLR(q ontology.TermID, d *corpus.DiseaseRecord) (float64, error)
}

var _ PhenotypeLR = (*phenolr.Calculator)(nil)

// Evaluator is the case evaluator of §4.4: a pure function of immutable
// shared state (ontology, corpus, gene index, background rates) applied to
// one CaseQuery at a time. It holds no per-case mutable state and is safe
// for concurrent use by independent callers.
type Evaluator struct {
	onto      *ontology.Ontology
	corpus    *corpus.DiseaseCorpus
	geneIndex *corpus.GeneDiseaseIndex
	pheno     PhenotypeLR
	geneRates genolr.BackgroundRateTable
	log       logging.Logger

	// Workers bounds the data-parallel fan-out across diseases; 0 means
	// runtime.NumCPU().
	Workers int
}

// New builds a case evaluator over fixed, shared-immutable inputs.
func New(onto *ontology.Ontology, c *corpus.DiseaseCorpus, geneIndex *corpus.GeneDiseaseIndex, pheno PhenotypeLR, geneRates genolr.BackgroundRateTable, log logging.Logger) *Evaluator {
	if log == nil {
		log = logging.NoOp()
	}
	return &Evaluator{
		onto:      onto,
		corpus:    c,
		geneIndex: geneIndex,
		pheno:     pheno,
		geneRates: geneRates,
		log:       log,
	}
}

// Run evaluates q against every disease in the corpus and returns a ranked,
// deterministic list of DiseaseScore. If q.Genotype is nil, scoring is
// phenotype-only (§4.4 "Phenotype-only mode"). pretestPrior, if non-nil, is
// a per-disease override of the otherwise-uniform 1/|corpus| prior; a
// disease id missing from it gets the uniform prior.
func (e *Evaluator) Run(ctx context.Context, q CaseQuery, pretestPrior map[string]float64) ([]DiseaseScore, error) {
	observed := canonicalize(e.onto, q.Observed)
	excluded := canonicalize(e.onto, q.Excluded)

	for _, t := range observed {
		if !e.onto.IsDescendantOfRoot(t) {
			return nil, &UnknownTermError{Term: string(t)}
		}
	}
	for _, t := range excluded {
		if !e.onto.IsDescendantOfRoot(t) {
			return nil, &UnknownTermError{Term: string(t)}
		}
	}
	excludedSet := ontology.NewSet(excluded...)
	for _, t := range observed {
		if excludedSet.Contains(t) {
			return nil, &InconsistentInputsError{Msg: "term " + string(t) + " is both observed and excluded"}
		}
	}

	if q.Genotype != nil {
		genes := make([]string, 0, len(q.Genotype))
		for gene := range q.Genotype {
			genes = append(genes, gene)
		}
		sort.Strings(genes)
		for _, gene := range genes {
			if !e.geneIndex.HasGene(gene) {
				e.log.Warnw("genotype map references a gene unknown to the gene index; skipping", "gene", gene)
			}
		}
	}

	diseases := e.corpus.All()
	n := len(diseases)
	if n == 0 {
		return nil, &ConfigError{Msg: "corpus is empty"}
	}

	uniformPrior := 1.0 / float64(n)

	scores := make([]DiseaseScore, n)
	logPosteriors := make([]float64, n)

	workers := e.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, d := range diseases {
		i, d := i, d
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			prior := uniformPrior
			if pretestPrior != nil {
				if p, ok := pretestPrior[d.ID]; ok {
					prior = p
				}
			}

			score, err := e.scoreDisease(d, observed, excluded, q.Genotype)
			if err != nil {
				return err
			}
			logPrior := numeric.SafeLog(prior, 1e-300)
			score.LogLR += logPrior
			if err := numeric.CheckFinite("evaluate.logLR", score.LogLR); err != nil {
				return err
			}

			scores[i] = score
			logPosteriors[i] = score.LogLR
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	logZ := numeric.LogSumExp(logPosteriors)
	for i := range scores {
		scores[i].Posterior = math.Exp(logPosteriors[i] - logZ)
	}

	sort.Slice(scores, func(i, j int) bool {
		if scores[i].Posterior != scores[j].Posterior {
			return scores[i].Posterior > scores[j].Posterior
		}
		return scores[i].DiseaseID < scores[j].DiseaseID
	})

	return scores, nil
}

// scoreDisease computes one disease's log-LR (sum of per-term phenotype
// log-LRs plus, if genotype evidence is supplied, the genotype log-LR) and
// its breakdown. It touches only its own disease record and shared
// read-only state, so it is safe to run concurrently with other diseases.
func (e *Evaluator) scoreDisease(d *corpus.DiseaseRecord, observed, excluded []ontology.TermID, gt map[string]genolr.Gene2Genotype) (DiseaseScore, error) {
	score := DiseaseScore{DiseaseID: d.ID}

	for _, t := range observed {
		lr, err := e.pheno.LR(t, d)
		if err != nil {
			return DiseaseScore{}, err
		}
		score.PhenotypeContributions = append(score.PhenotypeContributions, TermContribution{Term: t, LR: lr})
		score.LogLR += numeric.SafeLog(lr, 1e-300)
	}
	for _, t := range excluded {
		lr, err := e.pheno.ExcludedLR(t, d)
		if err != nil {
			return DiseaseScore{}, err
		}
		score.PhenotypeContributions = append(score.PhenotypeContributions, TermContribution{Term: t, Excluded: true, LR: lr})
		score.LogLR += numeric.SafeLog(lr, 1e-300)
	}

	if gt != nil {
		linkedGenes := e.geneIndex.GenesForDisease(d.ID)
		lr, contribs, err := genolr.GenotypeLR(linkedGenes, d.InheritanceModes, gt, e.geneRates)
		if err != nil {
			return DiseaseScore{}, err
		}
		score.GenotypeContribution = &GenotypeContribution{LR: lr, Genes: contribs}
		score.LogLR += numeric.SafeLog(lr, 1e-300)
	}

	if err := numeric.CheckFinite("evaluate.scoreDisease", score.LogLR); err != nil {
		return DiseaseScore{}, err
	}

	return score, nil
}

// canonicalize resolves every term through the ontology alias table and
// deduplicates while preserving first-occurrence order, so per-term log-LR
// summation happens in a fixed, input-derived order rather than map
// iteration order (§5 "no floating-point reductions whose order depends on
// scheduling").
func canonicalize(onto *ontology.Ontology, terms []ontology.TermID) []ontology.TermID {
	seen := make(ontology.Set, len(terms))
	out := make([]ontology.TermID, 0, len(terms))
	for _, t := range terms {
		c := onto.PrimaryID(t)
		if seen.Contains(c) {
			continue
		}
		seen.Add(c)
		out = append(out, c)
	}
	return out
}
