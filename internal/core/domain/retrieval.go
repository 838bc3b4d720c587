package domain

// InsufficientContext is the sentinel answer returned when retrieval yields
// no usable chunks. The answer generator is never called in that case.
const InsufficientContext = "I don't have specific information about this topic in my knowledge base."

// QueryOptions configures a retrieval query.
type QueryOptions struct {
	// TopK is the maximum number of chunks to retrieve (default 5).
	// Capped at the number of stored chunks.
	TopK int
}

// RetrievalResult is a single enriched retrieval hit: a chunk returned by
// similarity search, joined with its relational metadata. Request-scoped,
// never persisted.
type RetrievalResult struct {
	// ChunkID is the matched chunk.
	ChunkID string

	// Text is the chunk content from the vector store.
	Text string

	// Distance is the similarity distance (smaller is closer). Results
	// are ordered by ascending distance.
	Distance float64

	// Metadata is the relational record for the chunk. Hits whose
	// metadata is missing are dropped before reaching callers.
	Metadata ChunkMetadata
}

// Answer is the outcome of a full query: the retrieved context and the
// generated response.
type Answer struct {
	// Text is the generated answer, or InsufficientContext when no
	// chunks survived enrichment.
	Text string

	// Context is the assembled context string passed to the generator.
	Context string

	// Results are the enriched hits the context was assembled from, in
	// ascending distance order.
	Results []RetrievalResult
}
