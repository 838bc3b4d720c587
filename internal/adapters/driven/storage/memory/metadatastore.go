// Package memory provides an in-memory metadata store, used in tests.
package memory

import (
	"context"
	"sync"

	"github.com/recall-labs/recall-cli/internal/core/domain"
	"github.com/recall-labs/recall-cli/internal/core/ports/driven"
)

// Ensure MetadataStore implements the interface.
var _ driven.MetadataStore = (*MetadataStore)(nil)

// MetadataStore is an in-memory implementation of driven.MetadataStore.
type MetadataStore struct {
	mu       sync.RWMutex
	chunks   map[string]domain.ChunkMetadata
	segments map[string][]domain.Segment
}

// NewMetadataStore creates a new in-memory metadata store.
func NewMetadataStore() *MetadataStore {
	return &MetadataStore{
		chunks:   make(map[string]domain.ChunkMetadata),
		segments: make(map[string][]domain.Segment),
	}
}

// PutChunkMetadata writes or overwrites the record for a chunk.
func (s *MetadataStore) PutChunkMetadata(_ context.Context, meta domain.ChunkMetadata) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chunks[meta.ChunkID] = meta
	return nil
}

// GetChunkMetadata returns the record for a chunk or domain.ErrNotFound.
func (s *MetadataStore) GetChunkMetadata(_ context.Context, chunkID string) (*domain.ChunkMetadata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	meta, ok := s.chunks[chunkID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &meta, nil
}

// PutSegment appends a segment for a video.
func (s *MetadataStore) PutSegment(_ context.Context, seg domain.Segment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.segments[seg.VideoID] = append(s.segments[seg.VideoID], seg)
	return nil
}

// GetSegments returns segments for a video in insertion order.
func (s *MetadataStore) GetSegments(_ context.Context, videoID string) ([]domain.Segment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	segments := make([]domain.Segment, len(s.segments[videoID]))
	copy(segments, s.segments[videoID])
	return segments, nil
}

// Reset removes all records.
func (s *MetadataStore) Reset(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chunks = make(map[string]domain.ChunkMetadata)
	s.segments = make(map[string][]domain.Segment)
	return nil
}

// Close is a no-op for the in-memory store.
func (s *MetadataStore) Close() error {
	return nil
}
