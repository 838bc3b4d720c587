package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, handler http.HandlerFunc) *EmbeddingService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewEmbeddingService(Config{
		BaseURL:           server.URL,
		Model:             "test-model",
		RequestsPerSecond: -1, // no rate limiting in tests
	})
}

func TestNewEmbeddingService_Defaults(t *testing.T) {
	s := NewEmbeddingService(Config{})
	assert.Equal(t, DefaultBaseURL, s.baseURL)
	assert.Equal(t, DefaultModel, s.model)
	assert.NotNil(t, s.limiter)
}

func TestEmbed(t *testing.T) {
	s := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/embeddings", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var req embedRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)
		assert.Equal(t, "hello world", req.Prompt)

		json.NewEncoder(w).Encode(embedResponse{ //nolint:errcheck
			Embedding: []float64{0.1, 0.2, 0.3},
		})
	})

	vec, err := s.Embed(context.Background(), "hello world")
	require.NoError(t, err)
	require.Len(t, vec, 3)
	assert.InDelta(t, 0.1, vec[0], 1e-6)
	assert.InDelta(t, 0.3, vec[2], 1e-6)
}

func TestEmbed_ServerError(t *testing.T) {
	s := newTestService(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	})

	_, err := s.Embed(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}

func TestEmbed_ContextCancelled(t *testing.T) {
	s := newTestService(t, func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(embedResponse{Embedding: []float64{1}}) //nolint:errcheck
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Embed(ctx, "hello")
	require.Error(t, err)
}

func TestPing(t *testing.T) {
	t.Run("reachable", func(t *testing.T) {
		s := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/tags", r.URL.Path)
			w.WriteHeader(http.StatusOK)
		})
		assert.NoError(t, s.Ping(context.Background()))
	})

	t.Run("unreachable", func(t *testing.T) {
		s := NewEmbeddingService(Config{BaseURL: "http://127.0.0.1:1"})
		assert.Error(t, s.Ping(context.Background()))
	})
}

func TestModelName(t *testing.T) {
	s := NewEmbeddingService(Config{Model: "all-minilm"})
	assert.Equal(t, "all-minilm", s.ModelName())
}
