// Package plaintext loads .txt and .md files as single-page documents.
package plaintext

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/recall-labs/recall-cli/internal/core/domain"
	"github.com/recall-labs/recall-cli/internal/core/ports/driven"
)

// Ensure Loader implements the interface.
var _ driven.DocumentLoader = (*Loader)(nil)

// Loader handles plain text documents.
type Loader struct{}

// New creates a new plain text loader.
func New() *Loader {
	return &Loader{}
}

// Supports reports whether this loader handles the given path.
func (l *Loader) Supports(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md":
		return true
	}
	return false
}

// Load reads the file into a single-page document. The document id is the
// base file name, so re-ingesting the same file from a different working
// directory stays idempotent.
func (l *Loader) Load(_ context.Context, path string) (*domain.Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", domain.ErrEmptyDocument, path, err)
	}
	if len(strings.TrimSpace(string(content))) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrEmptyDocument, path)
	}

	name := filepath.Base(path)
	return &domain.Document{
		ID:    name,
		Title: strings.TrimSuffix(name, filepath.Ext(name)),
		Pages: []string{string(content)},
	}, nil
}
