package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/recall-labs/recall-cli/internal/core/domain"
	"github.com/recall-labs/recall-cli/internal/core/ports/driven"
	"github.com/recall-labs/recall-cli/internal/core/ports/driving"
	"github.com/recall-labs/recall-cli/internal/logger"
)

// Ensure QueryService implements the interface.
var _ driving.QueryService = (*QueryService)(nil)

// DefaultTopK is the number of chunks retrieved when the caller does not ask
// for a specific count.
const DefaultTopK = 5

// contextDelimiter separates chunks in the assembled context window.
const contextDelimiter = "\n\n---\n\n"

const answerPrompt = `Answer the question based only on the following context:

%s

---

Question: %s

Answer the question using only the provided context above. If the context doesn't contain information about the topic, reply with "I don't have specific information about this topic in my knowledge base."`

// QueryService answers questions over the ingested corpus: similarity
// search against the vector store, metadata enrichment from the relational
// store, then answer generation over the assembled context.
type QueryService struct {
	embedder driven.EmbeddingService
	vectors  driven.VectorStore
	metadata driven.MetadataStore
	llm      driven.LLMService
	prompts  driven.PromptStore
}

// Ensure QueryService accepts custom prompts.
var _ driven.PromptStoreAware = (*QueryService)(nil)

// NewQueryService creates a new query service.
func NewQueryService(
	embedder driven.EmbeddingService,
	vectors driven.VectorStore,
	metadata driven.MetadataStore,
	llm driven.LLMService,
) *QueryService {
	return &QueryService{
		embedder: embedder,
		vectors:  vectors,
		metadata: metadata,
		llm:      llm,
	}
}

// SetPromptStore sets the prompt store for loading customisable prompts.
func (s *QueryService) SetPromptStore(store driven.PromptStore) {
	s.prompts = store
}

// answerTemplate returns the answer prompt, customised or default.
func (s *QueryService) answerTemplate() string {
	if s.prompts != nil {
		if tmpl, err := s.prompts.Load(driven.PromptAnswer); err == nil && tmpl != "" {
			return tmpl
		}
	}
	return answerPrompt
}

// Retrieve embeds the question, finds the nearest chunks and joins each with
// its relational metadata. Hits whose metadata is missing are dropped; the
// remaining results keep their ascending distance order.
func (s *QueryService) Retrieve(
	ctx context.Context, question string, opts domain.QueryOptions,
) ([]domain.RetrievalResult, error) {
	logger.Section("Retrieval")
	logger.Debug("Question: %q", question)

	question = strings.TrimSpace(question)
	if question == "" {
		logger.Debug("Empty question, returning no results")
		return []domain.RetrievalResult{}, nil
	}

	k := opts.TopK
	if k <= 0 {
		k = DefaultTopK
	}
	logger.Debug("Top k: %d", k)

	embedding, err := s.embedder.Embed(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("embed question: %w", err)
	}
	logger.Debug("Question embedding: %d dimensions", len(embedding))

	hits, err := s.vectors.Search(ctx, embedding, k)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}
	logger.Debug("Vector search: %d hits", len(hits))

	results := make([]domain.RetrievalResult, 0, len(hits))
	for _, hit := range hits {
		meta, err := s.metadata.GetChunkMetadata(ctx, hit.ChunkID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				// The two stores are not written transactionally, so a
				// vector without metadata can exist. Drop the hit.
				logger.Debug("No metadata for chunk %s, dropping hit", hit.ChunkID)
				continue
			}
			return nil, fmt.Errorf("get metadata for chunk %s: %w", hit.ChunkID, err)
		}

		results = append(results, domain.RetrievalResult{
			ChunkID:  hit.ChunkID,
			Text:     hit.Text,
			Distance: hit.Distance,
			Metadata: *meta,
		})
	}

	logger.Info("Retrieved %d results", len(results))
	return results, nil
}

// Ask retrieves context for the question and generates an answer. When no
// chunks survive enrichment, the insufficient-context sentinel is returned
// and the LLM is never called.
func (s *QueryService) Ask(
	ctx context.Context, question string, opts domain.QueryOptions,
) (*domain.Answer, error) {
	results, err := s.Retrieve(ctx, question, opts)
	if err != nil {
		return nil, err
	}

	if len(results) == 0 {
		logger.Info("No usable context, returning sentinel answer")
		return &domain.Answer{Text: domain.InsufficientContext}, nil
	}

	texts := make([]string, len(results))
	for i, r := range results {
		texts[i] = r.Text
	}
	contextText := strings.Join(texts, contextDelimiter)

	logger.Section("Answer Generation")
	logger.Debug("Context: %d chars from %d chunks", len(contextText), len(results))

	prompt := fmt.Sprintf(s.answerTemplate(), contextText, strings.TrimSpace(question))

	text, err := s.llm.Generate(ctx, prompt, driven.GenerateOptions{})
	if err != nil {
		return nil, fmt.Errorf("generate answer: %w", err)
	}

	return &domain.Answer{
		Text:    strings.TrimSpace(text),
		Context: contextText,
		Results: results,
	}, nil
}

// Segments returns the stored topic segments for a video in insertion order.
func (s *QueryService) Segments(ctx context.Context, videoID string) ([]domain.Segment, error) {
	videoID = strings.TrimSpace(videoID)
	if videoID == "" {
		return nil, fmt.Errorf("%w: empty video id", domain.ErrInvalidInput)
	}

	segments, err := s.metadata.GetSegments(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("get segments for %s: %w", videoID, err)
	}
	return segments, nil
}
