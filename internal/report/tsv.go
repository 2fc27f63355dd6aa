// Package report renders a ranked DiseaseScore list. Only a TSV writer is
// implemented; full HTML templating is a collaborator left out of scope
// (spec.md §1 "report rendering... consumed through interfaces").
package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/lirical-go/lirical/internal/evaluate"
)

// TSVWriter writes a ranked DiseaseScore list in tab-delimited format, one
// row per disease, sorted in the order the caller supplies (Evaluator.Run
// already returns scores in posterior-descending, id-ascending order).
type TSVWriter struct {
	w *bufio.Writer
}

// NewTSVWriter creates a TSV report writer over w.
func NewTSVWriter(w io.Writer) *TSVWriter {
	return &TSVWriter{w: bufio.NewWriter(w)}
}

var tsvColumns = []string{
	"rank",
	"disease_id",
	"posterior",
	"log_lr",
	"genotype_lr",
	"observed_terms",
	"excluded_terms",
}

// WriteHeader writes the header row.
func (tw *TSVWriter) WriteHeader() error {
	_, err := tw.w.WriteString(strings.Join(tsvColumns, "\t") + "\n")
	return err
}

// WriteAll writes one row per score, in the order given, with a 1-based
// rank column.
func (tw *TSVWriter) WriteAll(scores []evaluate.DiseaseScore) error {
	for i, s := range scores {
		if err := tw.writeRow(i+1, s); err != nil {
			return fmt.Errorf("report: write row %d: %w", i+1, err)
		}
	}
	return nil
}

func (tw *TSVWriter) writeRow(rank int, s evaluate.DiseaseScore) error {
	genotypeLR := "-"
	if s.GenotypeContribution != nil {
		genotypeLR = fmt.Sprintf("%.6g", s.GenotypeContribution.LR)
	}

	var observed, excluded []string
	for _, tc := range s.PhenotypeContributions {
		if tc.Excluded {
			excluded = append(excluded, string(tc.Term))
		} else {
			observed = append(observed, string(tc.Term))
		}
	}
	if len(observed) == 0 {
		observed = []string{"-"}
	}
	if len(excluded) == 0 {
		excluded = []string{"-"}
	}

	values := []string{
		fmt.Sprintf("%d", rank),
		s.DiseaseID,
		fmt.Sprintf("%.6g", s.Posterior),
		fmt.Sprintf("%.6g", s.LogLR),
		genotypeLR,
		strings.Join(observed, ","),
		strings.Join(excluded, ","),
	}
	_, err := tw.w.WriteString(strings.Join(values, "\t") + "\n")
	return err
}

// Flush flushes any buffered data to the underlying writer.
func (tw *TSVWriter) Flush() error {
	return tw.w.Flush()
}
