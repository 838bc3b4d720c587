package mcp

import (
	"context"

	"github.com/recall-labs/recall-cli/internal/core/domain"
)

// mockQueryService is a mock implementation of driving.QueryService.
type mockQueryService struct {
	answer   *domain.Answer
	results  []domain.RetrievalResult
	segments []domain.Segment
	err      error
}

func (m *mockQueryService) Ask(
	_ context.Context,
	_ string,
	_ domain.QueryOptions,
) (*domain.Answer, error) {
	return m.answer, m.err
}

func (m *mockQueryService) Retrieve(
	_ context.Context,
	_ string,
	_ domain.QueryOptions,
) ([]domain.RetrievalResult, error) {
	return m.results, m.err
}

func (m *mockQueryService) Segments(_ context.Context, _ string) ([]domain.Segment, error) {
	return m.segments, m.err
}

// mockIngestService is a mock implementation of driving.IngestService.
type mockIngestService struct {
	report *domain.IngestReport
	err    error
}

func (m *mockIngestService) IngestFile(_ context.Context, _ string) (*domain.IngestReport, error) {
	return m.report, m.err
}

func (m *mockIngestService) IngestDocument(_ context.Context, _ *domain.Document) (*domain.IngestReport, error) {
	return m.report, m.err
}

func (m *mockIngestService) IngestBatch(_ context.Context, _ []string) ([]*domain.IngestReport, error) {
	if m.err != nil {
		return nil, m.err
	}
	return []*domain.IngestReport{m.report}, nil
}
