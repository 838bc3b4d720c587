package chunker

import "fmt"

// ChunkID computes the deterministic chunk identifier for a (document, page,
// position) tuple, e.g. "notes.pdf:6:2". Identical tuples always yield the
// identical id, which is what makes re-ingestion idempotent: ingestion
// fetches the existing id set from the vector store and skips any chunk
// whose id is already present.
func ChunkID(documentID string, page, position int) string {
	return fmt.Sprintf("%s:%d:%d", documentID, page, position)
}
