package mcp

import (
	"github.com/recall-labs/recall-cli/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Query answers questions and runs retrieval over the corpus.
	Query driving.QueryService

	// Ingest adds documents to the corpus. Optional; when nil the ingest
	// tool is not registered.
	Ingest driving.IngestService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Query == nil {
		return ErrMissingQueryService
	}
	return nil
}
