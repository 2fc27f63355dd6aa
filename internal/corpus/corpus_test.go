package corpus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lirical-go/lirical/internal/ontology"
)

const t1 ontology.TermID = "HP:0001001"

type recordingLogger struct {
	warnings []string
}

func (r *recordingLogger) Warnw(msg string, keysAndValues ...interface{}) {
	r.warnings = append(r.warnings, msg)
}
func (r *recordingLogger) Infow(string, ...interface{})  {}
func (r *recordingLogger) Errorw(string, ...interface{}) {}

func TestNewCorpus_DropsZeroPhenotypeRecordWithWarning(t *testing.T) {
	log := &recordingLogger{}
	records := []*DiseaseRecord{
		{ID: "D1", PhenotypeFreqs: []PhenotypeFrequency{{Term: t1, Frequency: 1.0}}},
		{ID: "D2"}, // no phenotype annotations at all
	}

	c, err := NewCorpus(records, log)
	require.NoError(t, err)
	require.Equal(t, 1, c.Len())

	_, ok := c.Lookup("D1")
	assert.True(t, ok)
	_, ok = c.Lookup("D2")
	assert.False(t, ok)

	require.Len(t, log.warnings, 1)
	assert.Contains(t, log.warnings[0], "no phenotypic abnormalities")
}

func TestNewCorpus_DuplicateDiseaseIDErrors(t *testing.T) {
	records := []*DiseaseRecord{
		{ID: "D1", PhenotypeFreqs: []PhenotypeFrequency{{Term: t1, Frequency: 1.0}}},
		{ID: "D1", PhenotypeFreqs: []PhenotypeFrequency{{Term: t1, Frequency: 0.5}}},
	}

	_, err := NewCorpus(records, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate disease id")
}

func TestNewCorpus_NilRecordsSkipped(t *testing.T) {
	records := []*DiseaseRecord{
		nil,
		{ID: "D1", PhenotypeFreqs: []PhenotypeFrequency{{Term: t1, Frequency: 1.0}}},
	}

	c, err := NewCorpus(records, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())
}

func TestGeneDiseaseIndex_HasGene(t *testing.T) {
	idx := NewGeneDiseaseIndex(map[string][]string{"D1": {"GENE1"}}, map[string]string{"GENE2": "SYM2"})

	assert.True(t, idx.HasGene("GENE1"))  // linked to a disease
	assert.True(t, idx.HasGene("GENE2"))  // carries a symbol only
	assert.False(t, idx.HasGene("GENE3")) // unknown to the index

	assert.Equal(t, []string{"GENE1"}, idx.GenesForDisease("D1"))
	assert.Equal(t, []string{"D1"}, idx.DiseasesForGene("GENE1"))
}
