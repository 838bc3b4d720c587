package transcript

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recall-labs/recall-cli/internal/core/domain"
)

func writeTranscript(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "video.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestSupports(t *testing.T) {
	l := New()
	assert.True(t, l.Supports("video.json"))
	assert.False(t, l.Supports("notes.txt"))
}

func TestLoad(t *testing.T) {
	path := writeTranscript(t, `{
		"video_id": "abc123",
		"title": "A Video",
		"url": "https://www.youtube.com/watch?v=abc123",
		"entries": [
			{"text": "hello", "start": 0, "duration": 2.5},
			{"text": "world", "start": 2.5, "duration": 3}
		]
	}`)

	doc, err := New().Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "abc123", doc.ID)
	assert.Equal(t, "A Video", doc.Title)
	assert.True(t, doc.IsTranscript())
	require.Len(t, doc.Transcript, 2)
	assert.Equal(t, "hello", doc.Transcript[0].Text)
	assert.Equal(t, 5.5, doc.Transcript[1].End())
}

func TestLoad_MissingVideoID(t *testing.T) {
	path := writeTranscript(t, `{"entries": [{"text": "x", "start": 0, "duration": 1}]}`)

	_, err := New().Load(context.Background(), path)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLoad_NoEntries(t *testing.T) {
	path := writeTranscript(t, `{"video_id": "abc123", "entries": []}`)

	_, err := New().Load(context.Background(), path)
	assert.ErrorIs(t, err, domain.ErrEmptyDocument)
}

func TestLoad_MalformedJSON(t *testing.T) {
	path := writeTranscript(t, `{not json`)

	_, err := New().Load(context.Background(), path)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
