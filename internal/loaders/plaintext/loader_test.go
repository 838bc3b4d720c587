package plaintext

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recall-labs/recall-cli/internal/core/domain"
)

func TestSupports(t *testing.T) {
	l := New()
	assert.True(t, l.Supports("notes.txt"))
	assert.True(t, l.Supports("README.md"))
	assert.True(t, l.Supports("UPPER.TXT"))
	assert.False(t, l.Supports("report.pdf"))
	assert.False(t, l.Supports("transcript.json"))
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("some notes here"), 0600))

	doc, err := New().Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "notes.txt", doc.ID)
	assert.Equal(t, "notes", doc.Title)
	require.Len(t, doc.Pages, 1)
	assert.Equal(t, "some notes here", doc.Pages[0])
	assert.False(t, doc.IsTranscript())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := New().Load(context.Background(), "/does/not/exist.txt")
	assert.ErrorIs(t, err, domain.ErrEmptyDocument)
}

func TestLoad_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	require.NoError(t, os.WriteFile(path, []byte("  \n "), 0600))

	_, err := New().Load(context.Background(), path)
	assert.ErrorIs(t, err, domain.ErrEmptyDocument)
}
