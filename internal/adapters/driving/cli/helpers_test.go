package cli

import (
	"context"

	"github.com/recall-labs/recall-cli/internal/core/domain"
)

// setupTestServices injects mock services and returns a cleanup function
// that restores the previous wiring.
func setupTestServices(query *mockQueryService, ingest *mockIngestService, admin *mockAdminService) func() {
	prevQuery, prevIngest, prevAdmin := queryService, ingestService, adminService

	queryService = query
	ingestService = ingest
	adminService = admin

	return func() {
		queryService, ingestService, adminService = prevQuery, prevIngest, prevAdmin
	}
}

// mockQueryService is a mock implementation of driving.QueryService.
type mockQueryService struct {
	answer   *domain.Answer
	results  []domain.RetrievalResult
	segments []domain.Segment
	err      error
}

func (m *mockQueryService) Ask(_ context.Context, _ string, _ domain.QueryOptions) (*domain.Answer, error) {
	return m.answer, m.err
}

func (m *mockQueryService) Retrieve(_ context.Context, _ string, _ domain.QueryOptions) ([]domain.RetrievalResult, error) {
	return m.results, m.err
}

func (m *mockQueryService) Segments(_ context.Context, _ string) ([]domain.Segment, error) {
	return m.segments, m.err
}

// mockIngestService is a mock implementation of driving.IngestService.
type mockIngestService struct {
	report *domain.IngestReport
	paths  []string
	err    error
}

func (m *mockIngestService) IngestFile(_ context.Context, path string) (*domain.IngestReport, error) {
	m.paths = append(m.paths, path)
	return m.report, m.err
}

func (m *mockIngestService) IngestDocument(_ context.Context, _ *domain.Document) (*domain.IngestReport, error) {
	return m.report, m.err
}

func (m *mockIngestService) IngestBatch(_ context.Context, paths []string) ([]*domain.IngestReport, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.paths = append(m.paths, paths...)
	reports := make([]*domain.IngestReport, len(paths))
	for i := range paths {
		reports[i] = m.report
	}
	return reports, nil
}

// mockAdminService is a mock implementation of driving.AdminService.
type mockAdminService struct {
	resets int
	err    error
}

func (m *mockAdminService) Reset(_ context.Context) error {
	m.resets++
	return m.err
}
