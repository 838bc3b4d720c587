package driven

import (
	"context"

	"github.com/recall-labs/recall-cli/internal/core/domain"
)

// MetadataStore persists structured per-chunk and per-segment metadata,
// keyed by the same chunk IDs as the vector store. It answers the queries
// the vector store cannot: timing, titles, and "all segments for video X".
//
// The two stores are not updated transactionally. A chunk present in the
// vector store but missing here is expected; GetChunkMetadata returns
// domain.ErrNotFound and the caller drops the hit.
type MetadataStore interface {
	// PutChunkMetadata writes or overwrites the record for a chunk.
	PutChunkMetadata(ctx context.Context, meta domain.ChunkMetadata) error

	// GetChunkMetadata returns the record for a chunk, or
	// domain.ErrNotFound when absent.
	GetChunkMetadata(ctx context.Context, chunkID string) (*domain.ChunkMetadata, error)

	// PutSegment appends a segment for a video.
	PutSegment(ctx context.Context, seg domain.Segment) error

	// GetSegments returns all segments for a video in insertion order.
	// An unknown video id yields an empty slice, not an error.
	GetSegments(ctx context.Context, videoID string) ([]domain.Segment, error)

	// Reset drops and recreates both tables.
	Reset(ctx context.Context) error

	// Close releases resources.
	Close() error
}
