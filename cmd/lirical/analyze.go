package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lirical-go/lirical/internal/background"
	"github.com/lirical-go/lirical/internal/config"
	"github.com/lirical-go/lirical/internal/corpus"
	"github.com/lirical-go/lirical/internal/diskcache"
	"github.com/lirical-go/lirical/internal/evaluate"
	"github.com/lirical-go/lirical/internal/loader"
	"github.com/lirical-go/lirical/internal/logging"
	"github.com/lirical-go/lirical/internal/ontology"
	"github.com/lirical-go/lirical/internal/phenolr"
	"github.com/lirical-go/lirical/internal/report"
)

// Fixed filenames the fixture loader expects inside --data-dir. A full HPO
// ontology and phenotype.hpoa reader is an out-of-scope external
// collaborator; these two files stand in for it.
const (
	ontologyFileName = "hpo-ontology.yaml"
	corpusFileName   = "disease-corpus.yaml"
)

func newAnalyzeCmd() *cobra.Command {
	var (
		hpoTerms             string
		dataDir              string
		vcf                  string
		exomiserDir          string
		assembly             string
		transcriptDB         string
		backgroundFile       string
		outputFormat         string
		filterOnFilterColumn bool
		outputFile           string
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Rank candidate diseases for one case",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			applyConfigDefault(cmd, "data-dir", &dataDir, config.KeyDataDir)
			applyConfigDefault(cmd, "vcf", &vcf, config.KeyVCF)
			applyConfigDefault(cmd, "exomiser-dir", &exomiserDir, config.KeyExomiserDir)
			applyConfigDefault(cmd, "assembly", &assembly, config.KeyAssembly)
			applyConfigDefault(cmd, "transcript-db", &transcriptDB, config.KeyTranscriptDB)
			applyConfigDefault(cmd, "background-file", &backgroundFile, config.KeyBackgroundFile)
			applyConfigDefault(cmd, "output-format", &outputFormat, config.KeyOutputFormat)
			if !cmd.Flags().Changed("filter-on-filter-column") && viper.IsSet(config.KeyFilterOnFilterColumn) {
				filterOnFilterColumn = viper.GetBool(config.KeyFilterOnFilterColumn)
			}

			if hpoTerms == "" {
				return &UsageError{Msg: "--hpo-terms is required"}
			}
			if dataDir == "" {
				return &UsageError{Msg: "--data-dir is required (flag, or `lirical config set data_dir ...`)"}
			}
			return runAnalyze(cmd, analyzeArgs{
				hpoTerms:             hpoTerms,
				outputFile:           outputFile,
				raw: config.Raw{
					DataDir:              dataDir,
					ExomiserDir:          exomiserDir,
					VCF:                  vcf,
					Assembly:             assembly,
					TranscriptDB:         transcriptDB,
					BackgroundFile:       backgroundFile,
					FilterOnFilterColumn: filterOnFilterColumn,
					OutputFormat:         outputFormat,
				},
			})
		},
	}

	cmd.Flags().StringVar(&hpoTerms, "hpo-terms", "", "case query file: observed/excluded phenotype terms, optional genotype evidence (YAML)")
	cmd.Flags().StringVar(&dataDir, "data-dir", "", "directory containing the HPO ontology and disease corpus fixtures")
	cmd.Flags().StringVar(&vcf, "vcf", "", "VCF file with variant calls (requires --exomiser-dir)")
	cmd.Flags().StringVar(&exomiserDir, "exomiser-dir", "", "directory with Exomiser pathogenicity/frequency annotations")
	cmd.Flags().StringVar(&assembly, "assembly", "hg38", "genome assembly: hg19 or hg38")
	cmd.Flags().StringVar(&transcriptDB, "transcript-db", "ucsc", "transcript database: ucsc, refseq, or ensembl")
	cmd.Flags().StringVar(&backgroundFile, "background-file", "", "path to the persisted background-index cache (default: <data-dir>/background.duckdb)")
	cmd.Flags().StringVar(&outputFormat, "output-format", "tsv", "report format: tsv or html")
	cmd.Flags().BoolVar(&filterOnFilterColumn, "filter-on-filter-column", false, "drop VCF records that do not carry FILTER=PASS")
	cmd.Flags().StringVar(&outputFile, "output", "", "output file (default: stdout)")

	return cmd
}

// applyConfigDefault fills *dst from the persisted config key when flagName
// was not explicitly set on the command line, so `lirical config set ...`
// (cmd/lirical/config.go) actually changes analyze's behavior instead of
// writing to a key nothing reads.
func applyConfigDefault(cmd *cobra.Command, flagName string, dst *string, key string) {
	if cmd.Flags().Changed(flagName) {
		return
	}
	if v := viper.GetString(key); v != "" {
		*dst = v
	}
}

type analyzeArgs struct {
	hpoTerms   string
	outputFile string
	raw        config.Raw
}

func runAnalyze(cmd *cobra.Command, a analyzeArgs) error {
	cfg, err := config.Validate(a.raw)
	if err != nil {
		return err
	}

	log, syncLog, err := logging.New()
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	defer syncLog()
	runID := uuid.New().String()

	onto, err := loader.LoadOntology(filepath.Join(cfg.DataDir, ontologyFileName))
	if err != nil {
		return err
	}
	corp, geneIdx, rates, err := loader.LoadCorpus(filepath.Join(cfg.DataDir, corpusFileName))
	if err != nil {
		return err
	}

	bgIndex, err := loadOrBuildBackground(onto, corp, cfg)
	if err != nil {
		return err
	}

	pheno := phenolr.New(onto, bgIndex)
	ev := evaluate.New(onto, corp, geneIdx, pheno, rates, log)

	observed, excluded, genotype, err := loader.LoadCase(a.hpoTerms)
	if err != nil {
		return err
	}
	if cfg.GenotypeMode() && genotype == nil {
		log.Warnw("exomiser-dir/vcf supplied but the case file carries no genotype section; scoring phenotype-only", "run_id", runID, "hpo_terms", a.hpoTerms)
	}

	scores, err := ev.Run(context.Background(), evaluate.CaseQuery{Observed: observed, Excluded: excluded, Genotype: genotype}, nil)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if a.outputFile != "" {
		f, err := os.Create(a.outputFile)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	switch cfg.OutputFormat {
	case config.OutputTSV:
		w := report.NewTSVWriter(out)
		if err := w.WriteHeader(); err != nil {
			return err
		}
		if err := w.WriteAll(scores); err != nil {
			return err
		}
		if err := w.Flush(); err != nil {
			return err
		}
	case config.OutputHTML:
		return fmt.Errorf("html output is not implemented yet; use --output-format tsv")
	}

	log.Infow("analysis complete", "run_id", runID, "diseases_scored", len(scores))
	return nil
}

// loadOrBuildBackground rehydrates the background index from
// internal/diskcache when a matching fingerprint is present, otherwise
// builds it from scratch and persists the result for next time.
func loadOrBuildBackground(onto *ontology.Ontology, corp *corpus.DiseaseCorpus, cfg *config.Config) (*background.Index, error) {
	cachePath := cfg.BackgroundFile
	if cachePath == "" {
		cachePath = filepath.Join(cfg.DataDir, "background.duckdb")
	}

	store, err := diskcache.Open(afero.NewOsFs(), cachePath)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	fp := diskcache.Compute(onto, corp)
	if idx, found, err := store.Get(onto, fp); err != nil {
		return nil, err
	} else if found {
		return idx, nil
	}

	idx, err := background.Build(onto, corp)
	if err != nil {
		return nil, err
	}
	if err := store.Put(fp, idx); err != nil {
		return nil, err
	}
	return idx, nil
}
