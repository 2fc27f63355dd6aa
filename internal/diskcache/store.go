// Package diskcache persists the computed background frequency index to
// disk so repeated invocations against the same ontology and corpus skip
// the O(corpus x ontology) rebuild in internal/background. Mirrors the
// schema-on-open DuckDB store and fingerprint-gated validity check the
// teacher uses for its transcript cache, but keyed on an
// ontology+corpus fingerprint instead of file size/modtime pairs.
package diskcache

import (
	"bytes"
	"database/sql"
	"encoding/gob"
	"fmt"
	"io"
	"path/filepath"

	"github.com/klauspost/compress/gzip"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/spf13/afero"

	"github.com/lirical-go/lirical/internal/background"
	"github.com/lirical-go/lirical/internal/ontology"
)

// Store manages a DuckDB-backed cache of serialized background indexes, one
// row per fingerprint.
type Store struct {
	db *sql.DB
}

// Open opens or creates a DuckDB database at path, ensuring its parent
// directory exists via fs. An empty path opens an in-memory database,
// useful for tests. fs is only used for directory preparation: the DuckDB
// driver always addresses the real filesystem, so an in-memory afero.Fs is
// only safe to pass here when path is also empty.
func Open(fs afero.Fs, path string) (*Store, error) {
	if path != "" {
		if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("diskcache: create cache directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("diskcache: open duckdb: %w", err)
	}

	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("diskcache: ensure schema: %w", err)
	}
	return s, nil
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS background_index (
		fingerprint VARCHAR PRIMARY KEY,
		corpus_size BIGINT,
		term_count BIGINT,
		payload BLOB
	)`)
	return err
}

// Close closes the underlying database connection.
func (s *Store) Close() error { return s.db.Close() }

// Put stores idx under fp's key, gzip-compressing its gob-encoded payload.
// A previously stored entry with the same fingerprint is replaced.
func (s *Store) Put(fp Fingerprint, idx *background.Index) error {
	raw, corpusLen := idx.Export()

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if err := gob.NewEncoder(gz).Encode(payload{Raw: raw, CorpusLen: corpusLen}); err != nil {
		return fmt.Errorf("diskcache: encode payload: %w", err)
	}
	if err := gz.Close(); err != nil {
		return fmt.Errorf("diskcache: flush gzip writer: %w", err)
	}

	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO background_index (fingerprint, corpus_size, term_count, payload) VALUES (?, ?, ?, ?)`,
		fp.Key(), fp.CorpusSize, fp.TermCount, buf.Bytes(),
	)
	if err != nil {
		return fmt.Errorf("diskcache: write cache row: %w", err)
	}
	return nil
}

// Get retrieves the background index stored under fp's key, rehydrated
// against onto. The second return value is false if no entry exists for
// this exact fingerprint (ontology or corpus changed since the last run).
func (s *Store) Get(onto *ontology.Ontology, fp Fingerprint) (*background.Index, bool, error) {
	row := s.db.QueryRow(`SELECT payload FROM background_index WHERE fingerprint = ?`, fp.Key())

	var blob []byte
	if err := row.Scan(&blob); err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("diskcache: read cache row: %w", err)
	}

	gz, err := gzip.NewReader(bytes.NewReader(blob))
	if err != nil {
		return nil, false, fmt.Errorf("diskcache: open gzip reader: %w", err)
	}
	defer gz.Close()

	var p payload
	if err := gob.NewDecoder(gz).Decode(&p); err != nil {
		return nil, false, fmt.Errorf("diskcache: decode payload: %w", err)
	}
	if _, err := io.Copy(io.Discard, gz); err != nil {
		return nil, false, fmt.Errorf("diskcache: drain gzip reader: %w", err)
	}

	return background.FromRaw(onto, p.Raw, p.CorpusLen), true, nil
}

type payload struct {
	Raw       map[ontology.TermID]float64
	CorpusLen int
}
