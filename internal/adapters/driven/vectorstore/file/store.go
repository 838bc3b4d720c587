// Package file provides a file-backed vector store. Records live in an
// append-only JSON-lines log inside a data directory; the full set is held
// in memory and similarity search is brute-force cosine distance, which is
// comfortably fast at the corpus sizes a local pipeline sees.
package file

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/recall-labs/recall-cli/internal/core/domain"
	"github.com/recall-labs/recall-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.VectorStore = (*Store)(nil)

// recordsFile is the log file name inside the data directory.
const recordsFile = "records.jsonl"

// record is the on-disk representation of one chunk.
type record struct {
	ID     string    `json:"id"`
	Vector []float32 `json:"vector"`
	Text   string    `json:"text"`
}

// Store is a file-backed vector store. Upserts append to the log; opening
// the store replays it with last-write-wins, so overwrites need no rebuild.
type Store struct {
	mu      sync.RWMutex
	dir     string
	log     *os.File
	records map[string]record
	order   []string // insertion order, for stable ties in search
}

// NewStore opens (or creates) a vector store in the given data directory.
// If dataDir is empty, defaults to ~/.recall/data/vectors.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".recall", "data", "vectors")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("%w: creating data directory: %v", domain.ErrStoreUnavailable, err)
	}

	s := &Store{
		dir:     dataDir,
		records: make(map[string]record),
	}

	if err := s.replay(); err != nil {
		return nil, err
	}

	log, err := os.OpenFile(s.logPath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("%w: opening record log: %v", domain.ErrStoreUnavailable, err)
	}
	s.log = log

	return s, nil
}

// Path returns the data directory.
func (s *Store) Path() string {
	return s.dir
}

func (s *Store) logPath() string {
	return filepath.Join(s.dir, recordsFile)
}

// replay loads the record log into memory, last write per id winning.
func (s *Store) replay() error {
	f, err := os.Open(s.logPath())
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: opening record log: %v", domain.ErrStoreUnavailable, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		var rec record
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			return fmt.Errorf("%w: corrupt record at line %d: %v", domain.ErrStoreUnavailable, line, err)
		}
		if _, exists := s.records[rec.ID]; !exists {
			s.order = append(s.order, rec.ID)
		}
		s.records[rec.ID] = rec
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("%w: reading record log: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// Upsert writes or overwrites a single record. Duplicate ids are not an
// error; the latest write wins.
func (s *Store) Upsert(_ context.Context, id string, vector []float32, text string) error {
	if id == "" {
		return fmt.Errorf("%w: empty chunk id", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec := record{ID: id, Vector: vector, Text: text}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	if _, err := s.log.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("%w: appending record: %v", domain.ErrStoreUnavailable, err)
	}

	if _, exists := s.records[id]; !exists {
		s.order = append(s.order, id)
	}
	s.records[id] = rec
	return nil
}

// ExistingIDs returns the set of all stored chunk ids.
func (s *Store) ExistingIDs(_ context.Context) (map[string]struct{}, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make(map[string]struct{}, len(s.records))
	for id := range s.records {
		ids[id] = struct{}{}
	}
	return ids, nil
}

// Search returns the k nearest records by cosine distance, ascending.
// k is capped at the stored count; an empty store yields an empty result.
func (s *Store) Search(_ context.Context, query []float32, k int) ([]driven.VectorHit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if k <= 0 || len(s.records) == 0 {
		return []driven.VectorHit{}, nil
	}

	hits := make([]driven.VectorHit, 0, len(s.order))
	for _, id := range s.order {
		rec := s.records[id]
		hits = append(hits, driven.VectorHit{
			ChunkID:  rec.ID,
			Text:     rec.Text,
			Distance: cosineDistance(query, rec.Vector),
		})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})

	if k > len(hits) {
		k = len(hits)
	}
	return hits[:k], nil
}

// Count returns the number of stored records.
func (s *Store) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records), nil
}

// Reset deletes all records and the backing storage, then recreates an
// empty store in the same directory.
func (s *Store) Reset(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.log != nil {
		s.log.Close()
		s.log = nil
	}
	if err := os.RemoveAll(s.dir); err != nil {
		return fmt.Errorf("%w: removing data directory: %v", domain.ErrStoreUnavailable, err)
	}
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("%w: recreating data directory: %v", domain.ErrStoreUnavailable, err)
	}

	log, err := os.OpenFile(s.logPath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return fmt.Errorf("%w: reopening record log: %v", domain.ErrStoreUnavailable, err)
	}
	s.log = log
	s.records = make(map[string]record)
	s.order = nil
	return nil
}

// Close releases the log file handle.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.log == nil {
		return nil
	}
	err := s.log.Close()
	s.log = nil
	return err
}
