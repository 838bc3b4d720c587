package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	storagemem "github.com/recall-labs/recall-cli/internal/adapters/driven/storage/memory"
	vectormem "github.com/recall-labs/recall-cli/internal/adapters/driven/vectorstore/memory"
	"github.com/recall-labs/recall-cli/internal/core/domain"
)

func newTestQuery(llm *mockLLM) (*QueryService, *vectormem.Store, *storagemem.MetadataStore) {
	vectors := vectormem.NewStore()
	metadata := storagemem.NewMetadataStore()
	svc := NewQueryService(&mockEmbedder{}, vectors, metadata, llm)
	return svc, vectors, metadata
}

// seedChunk writes a chunk into both stores using the same embedder the
// query service uses, so distances are comparable.
func seedChunk(t *testing.T, vectors *vectormem.Store, metadata *storagemem.MetadataStore, id, text string) {
	t.Helper()
	embedder := &mockEmbedder{}
	vector, err := embedder.Embed(context.Background(), text)
	require.NoError(t, err)
	require.NoError(t, vectors.Upsert(context.Background(), id, vector, text))
	require.NoError(t, metadata.PutChunkMetadata(context.Background(), domain.ChunkMetadata{
		ChunkID: id,
		VideoID: strings.SplitN(id, ":", 2)[0],
		Title:   "Seeded",
	}))
}

func TestAsk_EmptyStoreReturnsSentinel(t *testing.T) {
	llm := &mockLLM{response: "should never be used"}
	svc, _, _ := newTestQuery(llm)

	answer, err := svc.Ask(context.Background(), "what is chess?", domain.QueryOptions{})
	require.NoError(t, err)

	assert.Equal(t, domain.InsufficientContext, answer.Text)
	assert.Empty(t, answer.Context)
	assert.Empty(t, answer.Results)
	assert.Equal(t, 0, llm.promptCount(), "sentinel answers must not call the LLM")
}

func TestAsk_AssemblesContextAndGenerates(t *testing.T) {
	llm := &mockLLM{response: "  You may move the pawn two squares.  "}
	svc, vectors, metadata := newTestQuery(llm)

	seedChunk(t, vectors, metadata, "rules.txt:0:0", "Pawns move forward one square.")
	seedChunk(t, vectors, metadata, "rules.txt:0:1", "On its first move a pawn may advance two squares.")

	answer, err := svc.Ask(context.Background(), "How do pawns move?", domain.QueryOptions{TopK: 2})
	require.NoError(t, err)

	assert.Equal(t, "You may move the pawn two squares.", answer.Text)
	assert.Len(t, answer.Results, 2)
	assert.Contains(t, answer.Context, "\n\n---\n\n")

	prompt := llm.lastPrompt()
	assert.Contains(t, prompt, "Answer the question based only on the following context:")
	assert.Contains(t, prompt, "How do pawns move?")
	assert.Contains(t, prompt, "Pawns move forward one square.")
}

func TestRetrieve_DropsHitsWithoutMetadata(t *testing.T) {
	svc, vectors, metadata := newTestQuery(&mockLLM{})

	seedChunk(t, vectors, metadata, "doc:0:0", "a chunk with metadata")

	// A vector-only record, as left behind by a crashed ingest.
	embedder := &mockEmbedder{}
	orphanVec, err := embedder.Embed(context.Background(), "an orphaned chunk")
	require.NoError(t, err)
	require.NoError(t, vectors.Upsert(context.Background(), "doc:0:9", orphanVec, "an orphaned chunk"))

	results, err := svc.Retrieve(context.Background(), "chunk", domain.QueryOptions{TopK: 5})
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, "doc:0:0", results[0].ChunkID)
	assert.Equal(t, "Seeded", results[0].Metadata.Title)
}

func TestRetrieve_OrderedByAscendingDistance(t *testing.T) {
	svc, vectors, metadata := newTestQuery(&mockLLM{})

	seedChunk(t, vectors, metadata, "a:0:0", "alpha beta gamma")
	seedChunk(t, vectors, metadata, "b:0:0", "completely different words here")
	seedChunk(t, vectors, metadata, "c:0:0", "alpha beta gamma delta")

	results, err := svc.Retrieve(context.Background(), "alpha beta gamma", domain.QueryOptions{TopK: 3})
	require.NoError(t, err)
	require.Len(t, results, 3)

	for i := 1; i < len(results); i++ {
		assert.LessOrEqual(t, results[i-1].Distance, results[i].Distance)
	}
	assert.Equal(t, "a:0:0", results[0].ChunkID, "exact text match should rank first")
}

func TestRetrieve_TopKCappedAtStoreSize(t *testing.T) {
	svc, vectors, metadata := newTestQuery(&mockLLM{})

	seedChunk(t, vectors, metadata, "only:0:0", "the only chunk")

	results, err := svc.Retrieve(context.Background(), "anything", domain.QueryOptions{TopK: 50})
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestRetrieve_EmptyQuestionReturnsNoResults(t *testing.T) {
	svc, vectors, metadata := newTestQuery(&mockLLM{})
	seedChunk(t, vectors, metadata, "doc:0:0", "some text")

	results, err := svc.Retrieve(context.Background(), "   ", domain.QueryOptions{})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestAsk_GenerationErrorPropagates(t *testing.T) {
	llm := &mockLLM{err: errEmbedUnavailable}
	svc, vectors, metadata := newTestQuery(llm)
	seedChunk(t, vectors, metadata, "doc:0:0", "some text")

	_, err := svc.Ask(context.Background(), "question", domain.QueryOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "generate answer")
}

func TestSegments_InsertionOrderAndValidation(t *testing.T) {
	svc, _, metadata := newTestQuery(&mockLLM{})

	require.NoError(t, metadata.PutSegment(context.Background(),
		domain.Segment{VideoID: "vid1", Title: "Intro", StartTime: 0, EndTime: 60}))
	require.NoError(t, metadata.PutSegment(context.Background(),
		domain.Segment{VideoID: "vid1", Title: "Body", StartTime: 60, EndTime: 300}))

	segments, err := svc.Segments(context.Background(), "vid1")
	require.NoError(t, err)
	require.Len(t, segments, 2)
	assert.Equal(t, "Intro", segments[0].Title)
	assert.Equal(t, "Body", segments[1].Title)

	segments, err = svc.Segments(context.Background(), "unknown")
	require.NoError(t, err)
	assert.Empty(t, segments)

	_, err = svc.Segments(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAdminReset_WipesBothStores(t *testing.T) {
	vectors := vectormem.NewStore()
	metadata := storagemem.NewMetadataStore()
	seedChunk(t, vectors, metadata, "doc:0:0", "some text")
	require.NoError(t, metadata.PutSegment(context.Background(),
		domain.Segment{VideoID: "doc", Title: "Intro"}))

	admin := NewAdminService(vectors, metadata)
	require.NoError(t, admin.Reset(context.Background()))

	count, err := vectors.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	_, err = metadata.GetChunkMetadata(context.Background(), "doc:0:0")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	segments, err := metadata.GetSegments(context.Background(), "doc")
	require.NoError(t, err)
	assert.Empty(t, segments)
}
