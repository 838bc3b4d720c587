package driven

import "context"

// EmbeddingService generates vector embeddings from text.
//
// The contract assumed by the pipeline: the same text with the same model
// yields the same vector, and a failure surfaces as an error for that call
// rather than a silently missing vector.
//
// Implementations may include:
//   - Ollama (nomic-embed-text, all-minilm)
//   - Any inference server speaking the same one-text-in, one-vector-out shape
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Ping validates the service is reachable with a lightweight request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
