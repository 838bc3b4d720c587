// Package transcript loads externally resolved video transcripts. The input
// is a JSON file carrying the video id, title, canonical URL and the
// time-ordered entries; fetching the transcript from the video platform is
// someone else's job.
package transcript

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/recall-labs/recall-cli/internal/core/domain"
	"github.com/recall-labs/recall-cli/internal/core/ports/driven"
)

// Ensure Loader implements the interface.
var _ driven.DocumentLoader = (*Loader)(nil)

// fileFormat is the on-disk transcript shape.
type fileFormat struct {
	VideoID string      `json:"video_id"`
	Title   string      `json:"title"`
	URL     string      `json:"url"`
	Entries []fileEntry `json:"entries"`
}

type fileEntry struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// Loader handles transcript JSON files.
type Loader struct{}

// New creates a new transcript loader.
func New() *Loader {
	return &Loader{}
}

// Supports reports whether this loader handles the given path.
func (l *Loader) Supports(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

// Load parses the transcript file. The document id is the video id, not
// the file name, so the same video ingested from different files is
// deduplicated.
func (l *Loader) Load(_ context.Context, path string) (*domain.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", domain.ErrEmptyDocument, path, err)
	}

	var f fileFormat
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", domain.ErrInvalidInput, path, err)
	}
	if f.VideoID == "" {
		return nil, fmt.Errorf("%w: %s: missing video_id", domain.ErrInvalidInput, path)
	}
	if len(f.Entries) == 0 {
		return nil, fmt.Errorf("%w: %s: no transcript entries", domain.ErrEmptyDocument, path)
	}

	entries := make([]domain.TranscriptEntry, len(f.Entries))
	for i, e := range f.Entries {
		entries[i] = domain.TranscriptEntry{
			Text:     e.Text,
			Start:    e.Start,
			Duration: e.Duration,
		}
	}

	return &domain.Document{
		ID:         f.VideoID,
		Title:      f.Title,
		URL:        f.URL,
		Transcript: entries,
	}, nil
}
