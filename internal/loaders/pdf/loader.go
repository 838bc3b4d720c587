// Package pdf loads PDF files by shelling out to pdftotext. The command
// runner is an interface so tests run without the binary installed.
package pdf

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/recall-labs/recall-cli/internal/core/domain"
	"github.com/recall-labs/recall-cli/internal/core/ports/driven"
)

// Ensure Loader implements the interface.
var _ driven.DocumentLoader = (*Loader)(nil)

// pdftotext separates pages with a form feed when writing to stdout.
const pageSeparator = "\f"

// execRunner runs commands with os/exec.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// Loader extracts per-page text from PDF files.
type Loader struct {
	runner driven.CommandRunner
}

// New creates a PDF loader using the system pdftotext binary.
func New() *Loader {
	return &Loader{runner: execRunner{}}
}

// NewWithRunner creates a PDF loader with a custom command runner.
func NewWithRunner(runner driven.CommandRunner) *Loader {
	return &Loader{runner: runner}
}

// Supports reports whether this loader handles the given path.
func (l *Loader) Supports(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".pdf")
}

// Load extracts the PDF text page by page. Page boundaries are preserved so
// chunk ids carry real page numbers.
func (l *Loader) Load(ctx context.Context, path string) (*domain.Document, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrEmptyDocument, path, err)
	}

	out, err := l.runner.Run(ctx, "pdftotext", "-layout", path, "-")
	if err != nil {
		return nil, fmt.Errorf("%w: extracting text from %s: %v", domain.ErrEmptyDocument, path, err)
	}

	pages := strings.Split(string(out), pageSeparator)
	// pdftotext emits a trailing form feed after the last page
	if len(pages) > 0 && strings.TrimSpace(pages[len(pages)-1]) == "" {
		pages = pages[:len(pages)-1]
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrEmptyDocument, path)
	}

	empty := true
	for _, p := range pages {
		if strings.TrimSpace(p) != "" {
			empty = false
			break
		}
	}
	if empty {
		return nil, fmt.Errorf("%w: %s", domain.ErrEmptyDocument, path)
	}

	name := filepath.Base(path)
	return &domain.Document{
		ID:    name,
		Title: strings.TrimSuffix(name, filepath.Ext(name)),
		Pages: pages,
	}, nil
}
