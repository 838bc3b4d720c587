package driving

import (
	"context"

	"github.com/recall-labs/recall-cli/internal/core/domain"
)

// IngestService ingests documents into the two stores.
type IngestService interface {
	// IngestFile loads, chunks, embeds and stores a single file.
	IngestFile(ctx context.Context, path string) (*domain.IngestReport, error)

	// IngestDocument ingests an already-loaded document. Re-ingestion of
	// the same document is idempotent: chunks whose IDs already exist in
	// the vector store are skipped without an embedding call.
	IngestDocument(ctx context.Context, doc *domain.Document) (*domain.IngestReport, error)

	// IngestBatch ingests several files. Failures are document-scoped:
	// one bad file does not abort its siblings.
	IngestBatch(ctx context.Context, paths []string) ([]*domain.IngestReport, error)
}
