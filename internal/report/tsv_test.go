package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lirical-go/lirical/internal/evaluate"
	"github.com/lirical-go/lirical/internal/ontology"
)

func TestTSVWriter_WriteAll(t *testing.T) {
	scores := []evaluate.DiseaseScore{
		{
			DiseaseID: "D1",
			LogLR:     1.2,
			Posterior: 0.7,
			PhenotypeContributions: []evaluate.TermContribution{
				{Term: ontology.TermID("HP:0001001"), LR: 2.0},
				{Term: ontology.TermID("HP:0001002"), Excluded: true, LR: 1.1},
			},
			GenotypeContribution: &evaluate.GenotypeContribution{LR: 5.0},
		},
		{DiseaseID: "D2", LogLR: -3.4, Posterior: 0.3},
	}

	var buf bytes.Buffer
	w := NewTSVWriter(&buf)
	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.WriteAll(scores))
	require.NoError(t, w.Flush())

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, strings.Join(tsvColumns, "\t"), lines[0])
	assert.Contains(t, lines[1], "D1")
	assert.Contains(t, lines[1], "HP:0001001")
	assert.Contains(t, lines[1], "HP:0001002")
	assert.Contains(t, lines[2], "D2")
	assert.Contains(t, lines[2], "-\t-") // no phenotype contributions on D2
}
