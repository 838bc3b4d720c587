// Package sqlite provides the relational metadata store backed by SQLite.
// It owns the structured timing/title metadata that the vector store cannot
// answer queries over, keyed by the same chunk ids.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/recall-labs/recall-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/recall-labs/recall-cli/internal/core/domain"
	"github.com/recall-labs/recall-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.MetadataStore = (*Store)(nil)

// Store is the SQLite-backed metadata store.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.recall/data/metadata.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".recall", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("%w: creating data directory: %v", domain.ErrStoreUnavailable, err)
	}

	dbPath := filepath.Join(dataDir, "metadata.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("%w: opening database: %v", domain.ErrStoreUnavailable, err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: running migrations: %v", domain.ErrStoreUnavailable, err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(
			"INSERT INTO schema_migrations (version) VALUES (?)", version,
		); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// PutChunkMetadata writes or overwrites the record for a chunk. The UNIQUE
// constraint on chunk_id gives upsert semantics.
func (s *Store) PutChunkMetadata(ctx context.Context, meta domain.ChunkMetadata) error {
	if meta.ChunkID == "" {
		return fmt.Errorf("%w: empty chunk id", domain.ErrInvalidInput)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO transcript_chunks (chunk_id, video_id, start_time, end_time, video_title, url)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(chunk_id) DO UPDATE SET
			video_id = excluded.video_id,
			start_time = excluded.start_time,
			end_time = excluded.end_time,
			video_title = excluded.video_title,
			url = excluded.url
	`, meta.ChunkID, meta.VideoID, meta.StartTime, meta.EndTime, meta.Title, meta.URL)
	if err != nil {
		return fmt.Errorf("%w: saving chunk metadata: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// GetChunkMetadata returns the record for a chunk, or domain.ErrNotFound
// when absent. Not-found is an expected outcome after a partial write, not
// a failure.
func (s *Store) GetChunkMetadata(ctx context.Context, chunkID string) (*domain.ChunkMetadata, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT chunk_id, video_id, start_time, end_time, video_title, url
		FROM transcript_chunks
		WHERE chunk_id = ?
	`, chunkID)

	var meta domain.ChunkMetadata
	err := row.Scan(&meta.ChunkID, &meta.VideoID, &meta.StartTime, &meta.EndTime, &meta.Title, &meta.URL)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading chunk metadata: %v", domain.ErrStoreUnavailable, err)
	}
	return &meta, nil
}

// PutSegment appends a segment for a video.
func (s *Store) PutSegment(ctx context.Context, seg domain.Segment) error {
	if seg.VideoID == "" {
		return fmt.Errorf("%w: empty video id", domain.ErrInvalidInput)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO segments (video_id, title, start_time, end_time)
		VALUES (?, ?, ?, ?)
	`, seg.VideoID, seg.Title, seg.StartTime, seg.EndTime)
	if err != nil {
		return fmt.Errorf("%w: saving segment: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// GetSegments returns all segments for a video in insertion order. An
// unknown video id yields an empty slice.
func (s *Store) GetSegments(ctx context.Context, videoID string) ([]domain.Segment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT video_id, title, start_time, end_time
		FROM segments
		WHERE video_id = ?
		ORDER BY id
	`, videoID)
	if err != nil {
		return nil, fmt.Errorf("%w: reading segments: %v", domain.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	segments := []domain.Segment{}
	for rows.Next() {
		var seg domain.Segment
		if err := rows.Scan(&seg.VideoID, &seg.Title, &seg.StartTime, &seg.EndTime); err != nil {
			return nil, fmt.Errorf("scanning segment: %w", err)
		}
		segments = append(segments, seg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating segments: %v", domain.ErrStoreUnavailable, err)
	}
	return segments, nil
}

// Reset drops both tables and reapplies migrations.
func (s *Store) Reset(ctx context.Context) error {
	for _, stmt := range []string{
		"DROP TABLE IF EXISTS transcript_chunks",
		"DROP TABLE IF EXISTS segments",
		"DROP TABLE IF EXISTS schema_migrations",
	} {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("%w: dropping tables: %v", domain.ErrStoreUnavailable, err)
		}
	}
	if err := s.migrate(migrations.FS); err != nil {
		return fmt.Errorf("%w: recreating schema: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}
