package driving

import (
	"context"

	"github.com/recall-labs/recall-cli/internal/core/domain"
)

// QueryService answers questions over the ingested corpus.
type QueryService interface {
	// Ask retrieves the nearest chunks, assembles a context window and
	// generates an answer. When nothing usable is retrieved it returns
	// the insufficient-context sentinel without calling the LLM.
	Ask(ctx context.Context, question string, opts domain.QueryOptions) (*domain.Answer, error)

	// Retrieve runs similarity search plus metadata enrichment only,
	// skipping answer generation.
	Retrieve(ctx context.Context, question string, opts domain.QueryOptions) ([]domain.RetrievalResult, error)

	// Segments returns the stored segments for a video in insertion order.
	Segments(ctx context.Context, videoID string) ([]domain.Segment, error)
}

// AdminService performs destructive maintenance.
type AdminService interface {
	// Reset deletes and recreates both stores' backing storage.
	Reset(ctx context.Context) error
}
