package driven

import "context"

// VectorStore persists (id, vector, text) tuples and answers nearest
// neighbour queries. The backing format is opaque but survives process
// restarts and supports incremental writes.
//
// The chunk ID is the sole key. A duplicate ID overwrites the existing
// record; the ingest orchestrator filters against ExistingIDs first.
type VectorStore interface {
	// Upsert writes or overwrites a single record.
	Upsert(ctx context.Context, id string, vector []float32, text string) error

	// ExistingIDs returns the set of all stored chunk IDs. Ingestion uses
	// it to skip chunks that are already present, avoiding redundant
	// embedding calls.
	ExistingIDs(ctx context.Context) (map[string]struct{}, error)

	// Search returns the k nearest records to the query vector, ordered
	// by ascending distance. k is capped at the stored count; an empty
	// store yields an empty result, not an error.
	Search(ctx context.Context, query []float32, k int) ([]VectorHit, error)

	// Count returns the number of stored records.
	Count(ctx context.Context) (int, error)

	// Reset deletes all records and the backing storage.
	Reset(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// VectorHit is a similarity search result.
type VectorHit struct {
	// ChunkID is the matched chunk.
	ChunkID string

	// Text is the stored chunk content.
	Text string

	// Distance is the cosine distance to the query (smaller is closer).
	Distance float64
}
