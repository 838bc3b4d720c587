package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist. For chunk
	// metadata lookups this is an expected outcome: the retrieval
	// orchestrator drops the hit instead of failing the query.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyDocument indicates a source document was unreadable or held
	// no text. Reported per document; does not abort sibling documents.
	ErrEmptyDocument = errors.New("document is empty")

	// ErrUnsupportedType indicates an unknown document file type.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrEmbeddingService indicates an embedding call failed. Chunk-scoped:
	// ingestion continues with the remaining chunks.
	ErrEmbeddingService = errors.New("embedding service failed")

	// ErrGenerationService indicates the LLM call failed. Query-scoped.
	ErrGenerationService = errors.New("generation service failed")

	// ErrStoreUnavailable indicates the vector or relational store is
	// unreachable or corrupt. Fatal for the current operation.
	ErrStoreUnavailable = errors.New("store unavailable")
)
