package driven

import (
	"context"

	"github.com/recall-labs/recall-cli/internal/core/domain"
)

// DocumentLoader reads a source file into a Document.
type DocumentLoader interface {
	// Load reads the file at path into a Document. An unreadable or empty
	// file returns domain.ErrEmptyDocument.
	Load(ctx context.Context, path string) (*domain.Document, error)

	// Supports reports whether this loader handles the given path.
	Supports(path string) bool
}

// CommandRunner executes an external command and returns its stdout.
// Extracted as an interface so adapters that shell out (pdftotext) stay
// testable without the binary installed.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}
