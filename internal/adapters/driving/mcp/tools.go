package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/recall-labs/recall-cli/internal/core/domain"
)

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Question string `json:"question" jsonschema:"the question to answer from the knowledge base"`
	TopK     int    `json:"top_k,omitempty" jsonschema:"number of chunks to retrieve as context (default 5)"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	Answer  string            `json:"answer"`
	Sources []RetrievalOutput `json:"sources,omitempty"`
}

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"the text to find similar chunks for"`
	TopK  int    `json:"top_k,omitempty" jsonschema:"maximum number of chunks to return (default 5)"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Results []RetrievalOutput `json:"results"`
	Count   int               `json:"count"`
}

// RetrievalOutput represents a single retrieved chunk.
type RetrievalOutput struct {
	ChunkID   string  `json:"chunk_id"`
	Text      string  `json:"text"`
	Distance  float64 `json:"distance"`
	Title     string  `json:"title,omitempty"`
	URL       string  `json:"url,omitempty"`
	StartTime float64 `json:"start_time,omitempty"`
	EndTime   float64 `json:"end_time,omitempty"`
}

// IngestInput is the input schema for the ingest tool.
type IngestInput struct {
	Path string `json:"path" jsonschema:"path to the file to ingest"`
}

// IngestOutput is the output schema for the ingest tool.
type IngestOutput struct {
	DocumentID string `json:"document_id"`
	Added      int    `json:"added"`
	Skipped    int    `json:"skipped"`
	Failed     int    `json:"failed"`
	Segments   int    `json:"segments"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask",
		Description: "Answer a question using the ingested knowledge base",
	}, s.handleAsk)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Find the chunks most similar to a query, without generating an answer",
	}, s.handleSearch)

	if s.ports.Ingest != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "ingest",
			Description: "Ingest a local file into the knowledge base",
		}, s.handleIngest)
	}
}

// handleAsk handles the ask tool invocation.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	opts := domain.QueryOptions{TopK: input.TopK}
	answer, err := s.ports.Query.Ask(ctx, input.Question, opts)
	if err != nil {
		return nil, AskOutput{}, err
	}

	output := AskOutput{
		Answer:  answer.Text,
		Sources: retrievalOutputs(answer.Results),
	}
	return nil, output, nil
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	opts := domain.QueryOptions{TopK: input.TopK}
	results, err := s.ports.Query.Retrieve(ctx, input.Query, opts)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results: retrievalOutputs(results),
		Count:   len(results),
	}
	return nil, output, nil
}

// handleIngest handles the ingest tool invocation.
func (s *Server) handleIngest(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IngestInput,
) (*mcp.CallToolResult, IngestOutput, error) {
	report, err := s.ports.Ingest.IngestFile(ctx, input.Path)
	if err != nil {
		return nil, IngestOutput{}, err
	}

	output := IngestOutput{
		DocumentID: report.DocumentID,
		Added:      report.Added,
		Skipped:    report.Skipped,
		Failed:     report.Failed,
		Segments:   report.Segments,
	}
	return nil, output, nil
}

func retrievalOutputs(results []domain.RetrievalResult) []RetrievalOutput {
	if len(results) == 0 {
		return nil
	}
	out := make([]RetrievalOutput, len(results))
	for i := range results {
		out[i] = RetrievalOutput{
			ChunkID:   results[i].ChunkID,
			Text:      results[i].Text,
			Distance:  results[i].Distance,
			Title:     results[i].Metadata.Title,
			URL:       results[i].Metadata.URL,
			StartTime: results[i].Metadata.StartTime,
			EndTime:   results[i].Metadata.EndTime,
		}
	}
	return out
}
