package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/recall-labs/recall-cli/internal/chunker"
	"github.com/recall-labs/recall-cli/internal/core/domain"
	"github.com/recall-labs/recall-cli/internal/core/ports/driven"
	"github.com/recall-labs/recall-cli/internal/core/ports/driving"
	"github.com/recall-labs/recall-cli/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// IngestService turns source files into stored, searchable chunks. It runs
// the full pipeline: load, chunk, deduplicate, embed, store.
type IngestService struct {
	loaders   []driven.DocumentLoader
	chunker   *chunker.Chunker
	embedder  driven.EmbeddingService
	vectors   driven.VectorStore
	metadata  driven.MetadataStore
	segmenter *Segmenter
}

// NewIngestService creates a new ingest service.
func NewIngestService(
	loaders []driven.DocumentLoader,
	ch *chunker.Chunker,
	embedder driven.EmbeddingService,
	vectors driven.VectorStore,
	metadata driven.MetadataStore,
) *IngestService {
	return &IngestService{
		loaders:  loaders,
		chunker:  ch,
		embedder: embedder,
		vectors:  vectors,
		metadata: metadata,
	}
}

// SetSegmenter enables LLM topic segmentation for transcript documents.
func (s *IngestService) SetSegmenter(seg *Segmenter) {
	s.segmenter = seg
}

// IngestFile loads the file at path and ingests it.
func (s *IngestService) IngestFile(ctx context.Context, path string) (*domain.IngestReport, error) {
	for _, l := range s.loaders {
		if l.Supports(path) {
			doc, err := l.Load(ctx, path)
			if err != nil {
				return nil, fmt.Errorf("load %s: %w", path, err)
			}
			return s.IngestDocument(ctx, doc)
		}
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedType, path)
}

// IngestDocument chunks, embeds and stores a document. Chunks whose IDs are
// already in the vector store are skipped without an embedding call, so
// re-ingesting a document is cheap and safe. An embedding or store failure
// affects only its own chunk; the failed chunk is retried on the next pass.
func (s *IngestService) IngestDocument(ctx context.Context, doc *domain.Document) (*domain.IngestReport, error) {
	if doc == nil || doc.ID == "" {
		return nil, fmt.Errorf("%w: document has no id", domain.ErrInvalidInput)
	}
	if doc.Empty() && !doc.IsTranscript() {
		return nil, fmt.Errorf("%w: %s", domain.ErrEmptyDocument, doc.ID)
	}

	report := &domain.IngestReport{
		RunID:      uuid.NewString(),
		DocumentID: doc.ID,
	}

	logger.Section("Ingest " + doc.ID)
	logger.Debug("Run: %s", report.RunID)

	chunks := s.chunker.Chunk(doc)
	logger.Debug("Chunked into %d chunks", len(chunks))

	existing, err := s.vectors.ExistingIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list existing chunk ids: %w", err)
	}

	for _, chunk := range chunks {
		if _, ok := existing[chunk.ID]; ok {
			report.Skipped++
			continue
		}

		if err := s.storeChunk(ctx, doc, chunk); err != nil {
			logger.Warn("Chunk %s failed: %v", chunk.ID, err)
			report.Failed++
			report.Errors = append(report.Errors, fmt.Errorf("chunk %s: %w", chunk.ID, err))
			continue
		}
		report.Added++
	}

	if doc.IsTranscript() && s.segmenter != nil {
		report.Segments = s.storeSegments(ctx, doc, report)
	}

	logger.Info("Ingested %s: %d added, %d skipped, %d failed",
		doc.ID, report.Added, report.Skipped, report.Failed)

	return report, nil
}

// storeChunk embeds one chunk and writes it to both stores. The vector
// store write comes last: a chunk is only skipped on re-ingest once its
// vector exists, so a failure at any earlier step leaves it retryable.
func (s *IngestService) storeChunk(ctx context.Context, doc *domain.Document, chunk domain.Chunk) error {
	vector, err := s.embedder.Embed(ctx, chunk.Text)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrEmbeddingService, err)
	}

	if err := s.metadata.PutChunkMetadata(ctx, chunkMetadata(doc, chunk)); err != nil {
		return fmt.Errorf("store metadata: %w", err)
	}

	if err := s.vectors.Upsert(ctx, chunk.ID, vector, chunk.Text); err != nil {
		return fmt.Errorf("store vector: %w", err)
	}

	return nil
}

// storeSegments runs topic segmentation and persists the result. Segments
// are generated once per video: a re-ingest of a video that already has
// segments leaves them untouched and makes no LLM call.
func (s *IngestService) storeSegments(ctx context.Context, doc *domain.Document, report *domain.IngestReport) int {
	current, err := s.metadata.GetSegments(ctx, doc.ID)
	if err != nil {
		logger.Warn("Segment lookup for %s failed: %v", doc.ID, err)
		return 0
	}
	if len(current) > 0 {
		logger.Debug("Video %s already has %d segments, skipping segmentation", doc.ID, len(current))
		return 0
	}

	segments, err := s.segmenter.Segment(ctx, doc)
	if err != nil {
		// Segmentation is best effort. The chunks are already stored and
		// queryable without it.
		logger.Warn("Segmentation of %s failed: %v", doc.ID, err)
		report.Errors = append(report.Errors, fmt.Errorf("segment %s: %w", doc.ID, err))
		return 0
	}

	stored := 0
	for _, seg := range segments {
		if err := s.metadata.PutSegment(ctx, seg); err != nil {
			logger.Warn("Store segment %q failed: %v", seg.Title, err)
			report.Errors = append(report.Errors, fmt.Errorf("store segment %q: %w", seg.Title, err))
			continue
		}
		stored++
	}
	return stored
}

// IngestBatch ingests several files. A failing file is reported and does not
// abort its siblings.
func (s *IngestService) IngestBatch(ctx context.Context, paths []string) ([]*domain.IngestReport, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: no paths given", domain.ErrInvalidInput)
	}

	reports := make([]*domain.IngestReport, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return reports, err
		}

		report, err := s.IngestFile(ctx, path)
		if err != nil {
			logger.Warn("Ingest %s failed: %v", path, err)
			report = &domain.IngestReport{
				DocumentID: path,
				Errors:     []error{err},
			}
		}
		reports = append(reports, report)
	}

	return reports, nil
}

// chunkMetadata builds the relational record for a chunk. Transcript chunks
// get a deep link with a time offset appended to the video URL.
func chunkMetadata(doc *domain.Document, chunk domain.Chunk) domain.ChunkMetadata {
	url := doc.URL
	if doc.IsTranscript() && url != "" {
		url = fmt.Sprintf("%s&t=%d", url, int(chunk.StartTime))
	}
	return domain.ChunkMetadata{
		ChunkID:   chunk.ID,
		VideoID:   doc.ID,
		StartTime: chunk.StartTime,
		EndTime:   chunk.EndTime,
		Title:     doc.Title,
		URL:       url,
	}
}
