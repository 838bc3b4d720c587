package services

import (
	"context"
	"fmt"

	"github.com/recall-labs/recall-cli/internal/core/ports/driven"
	"github.com/recall-labs/recall-cli/internal/core/ports/driving"
	"github.com/recall-labs/recall-cli/internal/logger"
)

// Ensure AdminService implements the interface.
var _ driving.AdminService = (*AdminService)(nil)

// AdminService performs destructive maintenance on the stores.
type AdminService struct {
	vectors  driven.VectorStore
	metadata driven.MetadataStore
}

// NewAdminService creates a new admin service.
func NewAdminService(vectors driven.VectorStore, metadata driven.MetadataStore) *AdminService {
	return &AdminService{vectors: vectors, metadata: metadata}
}

// Reset wipes both stores. The vector store is reset first; if it fails the
// metadata store is left untouched so the two stay joinable.
func (s *AdminService) Reset(ctx context.Context) error {
	logger.Section("Reset")

	if err := s.vectors.Reset(ctx); err != nil {
		return fmt.Errorf("reset vector store: %w", err)
	}
	logger.Info("Vector store reset")

	if err := s.metadata.Reset(ctx); err != nil {
		return fmt.Errorf("reset metadata store: %w", err)
	}
	logger.Info("Metadata store reset")

	return nil
}
