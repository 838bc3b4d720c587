package chunker

import (
	"strings"
	"testing"

	"github.com/recall-labs/recall-cli/internal/core/domain"
)

func TestNew(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		c := New()
		if c.chunkSize != DefaultChunkSize {
			t.Errorf("expected chunkSize %d, got %d", DefaultChunkSize, c.chunkSize)
		}
		if c.overlap != DefaultChunkOverlap {
			t.Errorf("expected overlap %d, got %d", DefaultChunkOverlap, c.overlap)
		}
		if c.entriesPerChunk != DefaultEntriesPerChunk {
			t.Errorf("expected entriesPerChunk %d, got %d", DefaultEntriesPerChunk, c.entriesPerChunk)
		}
	})

	t.Run("custom options", func(t *testing.T) {
		c := New(WithChunkSize(500), WithOverlap(50), WithEntriesPerChunk(5))
		if c.chunkSize != 500 || c.overlap != 50 || c.entriesPerChunk != 5 {
			t.Errorf("options not applied: %+v", c)
		}
	})

	t.Run("overlap exceeds chunk size", func(t *testing.T) {
		c := New(WithChunkSize(100), WithOverlap(150))
		if c.overlap >= c.chunkSize {
			t.Error("overlap should be reduced when it exceeds chunk size")
		}
	})

	t.Run("zero values ignored", func(t *testing.T) {
		c := New(WithChunkSize(0), WithOverlap(-1), WithEntriesPerChunk(0))
		if c.chunkSize != DefaultChunkSize || c.overlap != DefaultChunkOverlap {
			t.Errorf("expected defaults, got %+v", c)
		}
	})
}

func TestChunkID(t *testing.T) {
	tests := []struct {
		docID    string
		page     int
		position int
		want     string
	}{
		{"doc1", 0, 0, "doc1:0:0"},
		{"doc1", 0, 2, "doc1:0:2"},
		{"data/monopoly.pdf", 6, 2, "data/monopoly.pdf:6:2"},
		{"dQw4w9WgXcQ", 0, 14, "dQw4w9WgXcQ:0:14"},
	}
	for _, tt := range tests {
		if got := ChunkID(tt.docID, tt.page, tt.position); got != tt.want {
			t.Errorf("ChunkID(%q, %d, %d) = %q, want %q",
				tt.docID, tt.page, tt.position, got, tt.want)
		}
	}
}

func TestChunk_EmptyDocument(t *testing.T) {
	c := New()
	doc := &domain.Document{ID: "empty.txt", Pages: []string{""}}
	if chunks := c.Chunk(doc); len(chunks) != 0 {
		t.Errorf("expected 0 chunks for empty document, got %d", len(chunks))
	}
}

func TestChunk_SmallDocument(t *testing.T) {
	c := New()
	doc := &domain.Document{ID: "small.txt", Pages: []string{"just a few words"}}
	chunks := c.Chunk(doc)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].ID != "small.txt:0:0" {
		t.Errorf("expected id small.txt:0:0, got %s", chunks[0].ID)
	}
	if chunks[0].Text != "just a few words" {
		t.Errorf("unexpected chunk text: %q", chunks[0].Text)
	}
}

func TestChunk_TextDocument_IDsAndPages(t *testing.T) {
	c := New(WithChunkSize(50), WithOverlap(10))
	page := strings.Repeat("words on a page keep coming. ", 6)
	doc := &domain.Document{ID: "book.pdf", Pages: []string{page, page}}

	chunks := c.Chunk(doc)
	if len(chunks) < 4 {
		t.Fatalf("expected multiple chunks per page, got %d total", len(chunks))
	}

	seen := make(map[string]bool)
	position := 0
	lastPage := 0
	for _, ch := range chunks {
		want := ChunkID("book.pdf", ch.Page, ch.Position)
		if ch.ID != want {
			t.Errorf("expected id %s, got %s", want, ch.ID)
		}
		if seen[ch.ID] {
			t.Errorf("duplicate chunk id %s", ch.ID)
		}
		seen[ch.ID] = true

		// Position resets at each page boundary
		if ch.Page != lastPage {
			position = 0
			lastPage = ch.Page
		}
		if ch.Position != position {
			t.Errorf("chunk %s: expected position %d, got %d", ch.ID, position, ch.Position)
		}
		position++
	}
}

// Re-chunking the same document with the same parameters must yield
// identical ids, text and order.
func TestChunk_Deterministic(t *testing.T) {
	c := New(WithChunkSize(60), WithOverlap(12))
	doc := &domain.Document{
		ID:    "notes.txt",
		Pages: []string{strings.Repeat("deterministic chunking matters for dedup. ", 10)},
	}

	first := c.Chunk(doc)
	second := c.Chunk(doc)
	if len(first) != len(second) {
		t.Fatalf("chunk counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID || first[i].Text != second[i].Text {
			t.Errorf("chunk %d differs between runs", i)
		}
	}
}

func TestChunk_Transcript(t *testing.T) {
	entries := make([]domain.TranscriptEntry, 25)
	for i := range entries {
		entries[i] = domain.TranscriptEntry{
			Text:     "entry",
			Start:    float64(i) * 4,
			Duration: 4,
		}
	}
	doc := &domain.Document{ID: "abc123", Title: "A Video", Transcript: entries}

	c := New() // 10 entries per chunk
	chunks := c.Chunk(doc)

	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks for 25 entries, got %d", len(chunks))
	}

	// Ids follow the same docID:page:index scheme with page 0
	for i, ch := range chunks {
		if want := ChunkID("abc123", 0, i); ch.ID != want {
			t.Errorf("expected id %s, got %s", want, ch.ID)
		}
	}

	// Start/end from first and last entry of each group
	if chunks[0].StartTime != 0 || chunks[0].EndTime != 40 {
		t.Errorf("chunk 0 time range [%v, %v], want [0, 40]",
			chunks[0].StartTime, chunks[0].EndTime)
	}
	if chunks[2].StartTime != 80 || chunks[2].EndTime != 100 {
		t.Errorf("chunk 2 time range [%v, %v], want [80, 100]",
			chunks[2].StartTime, chunks[2].EndTime)
	}

	// A trailing partial group still becomes a chunk
	if got := strings.Count(chunks[2].Text, "entry"); got != 5 {
		t.Errorf("expected 5 entries in final chunk, got %d", got)
	}
}
