package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recall-labs/recall-cli/internal/core/domain"
)

func TestAskCmd_Use(t *testing.T) {
	assert.Equal(t, "ask [question]", askCmd.Use)
}

func TestAskCmd_PrintsAnswer(t *testing.T) {
	query := &mockQueryService{
		answer: &domain.Answer{
			Text: "Pawns move forward one square.",
			Results: []domain.RetrievalResult{
				{ChunkID: "rules.txt:0:0", Metadata: domain.ChunkMetadata{Title: "Chess Rules"}},
			},
		},
	}
	cleanup := setupTestServices(query, &mockIngestService{}, &mockAdminService{})
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"ask", "How do pawns move?"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Pawns move forward one square.")
	// Sources are hidden unless asked for.
	assert.NotContains(t, buf.String(), "Chess Rules")
}

func TestAskCmd_ShowsSourcesWithFlag(t *testing.T) {
	query := &mockQueryService{
		answer: &domain.Answer{
			Text: "An answer.",
			Results: []domain.RetrievalResult{
				{ChunkID: "rules.txt:0:0", Distance: 0.1, Metadata: domain.ChunkMetadata{Title: "Chess Rules"}},
			},
		},
	}
	cleanup := setupTestServices(query, &mockIngestService{}, &mockAdminService{})
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"ask", "--sources", "How do pawns move?"})
	defer func() {
		rootCmd.SetArgs(nil)
		askSources = false
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Sources:")
	assert.Contains(t, buf.String(), "Chess Rules")
}

func TestAskCmd_SentinelAnswer(t *testing.T) {
	query := &mockQueryService{
		answer: &domain.Answer{Text: domain.InsufficientContext},
	}
	cleanup := setupTestServices(query, &mockIngestService{}, &mockAdminService{})
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"ask", "Something unknown"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), domain.InsufficientContext)
}

func TestFormatSeconds(t *testing.T) {
	assert.Equal(t, "0:00", formatSeconds(0))
	assert.Equal(t, "2:15", formatSeconds(135))
	assert.Equal(t, "1:02:03", formatSeconds(3723))
	assert.Equal(t, "59:59", formatSeconds(3599))
}
