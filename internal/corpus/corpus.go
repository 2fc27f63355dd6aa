package corpus

import (
	"fmt"

	"github.com/lirical-go/lirical/internal/logging"
)

// DiseaseCorpus is a read-only, ordered collection of disease records built
// once at load time and shared across evaluations. Iteration order is the
// order records were appended in NewCorpus, which callers should make
// deterministic (e.g. sorted by id) upstream for reproducible output.
type DiseaseCorpus struct {
	records []*DiseaseRecord
	byID    map[string]*DiseaseRecord
}

// NewCorpus builds a DiseaseCorpus from parsed records. Records with zero
// phenotype annotations are non-fatal warnings (§7): they are logged and
// dropped from scoring rather than causing the whole corpus load to fail.
func NewCorpus(records []*DiseaseRecord, log logging.Logger) (*DiseaseCorpus, error) {
	if log == nil {
		log = logging.NoOp()
	}
	c := &DiseaseCorpus{
		byID: make(map[string]*DiseaseRecord, len(records)),
	}
	for _, r := range records {
		if r == nil {
			continue
		}
		if len(r.PhenotypeFreqs) == 0 {
			log.Warnw("dropping disease record with no phenotypic abnormalities", "disease_id", r.ID)
			continue
		}
		if _, dup := c.byID[r.ID]; dup {
			return nil, fmt.Errorf("corpus: duplicate disease id %q", r.ID)
		}
		c.byID[r.ID] = r
		c.records = append(c.records, r)
	}
	return c, nil
}

// Len returns the number of disease records retained in the corpus.
func (c *DiseaseCorpus) Len() int { return len(c.records) }

// All returns the corpus's records, in load order.
func (c *DiseaseCorpus) All() []*DiseaseRecord { return c.records }

// Lookup returns the disease record for id, if present.
func (c *DiseaseCorpus) Lookup(id string) (*DiseaseRecord, bool) {
	r, ok := c.byID[id]
	return r, ok
}
