// Package chunker splits documents into bounded, overlapping chunks carrying
// positional metadata and deterministic identifiers.
package chunker

import (
	"github.com/recall-labs/recall-cli/internal/core/domain"
)

// DefaultChunkSize is the default number of characters per text chunk.
const DefaultChunkSize = 800

// DefaultChunkOverlap is the default number of overlapping characters
// between consecutive text chunks.
const DefaultChunkOverlap = 80

// DefaultEntriesPerChunk is the default number of transcript entries
// grouped into one chunk.
const DefaultEntriesPerChunk = 10

// Chunker splits documents into chunks. Text documents are cut by size with
// overlap; transcripts are grouped by entry count.
type Chunker struct {
	chunkSize       int
	overlap         int
	entriesPerChunk int
}

// Option configures the chunker.
type Option func(*Chunker)

// WithChunkSize sets the chunk size in characters.
func WithChunkSize(size int) Option {
	return func(c *Chunker) {
		if size > 0 {
			c.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(c *Chunker) {
		if overlap >= 0 {
			c.overlap = overlap
		}
	}
}

// WithEntriesPerChunk sets the number of transcript entries per chunk.
func WithEntriesPerChunk(n int) Option {
	return func(c *Chunker) {
		if n > 0 {
			c.entriesPerChunk = n
		}
	}
}

// New creates a chunker with the given options.
func New(opts ...Option) *Chunker {
	c := &Chunker{
		chunkSize:       DefaultChunkSize,
		overlap:         DefaultChunkOverlap,
		entriesPerChunk: DefaultEntriesPerChunk,
	}

	for _, opt := range opts {
		opt(c)
	}

	// Ensure overlap doesn't exceed chunk size
	if c.overlap >= c.chunkSize {
		c.overlap = c.chunkSize / 4
	}

	return c
}

// Chunk splits the document into an ordered sequence of chunks. An empty
// document yields an empty sequence, not an error. A fresh call re-walks the
// whole document.
func (c *Chunker) Chunk(doc *domain.Document) []domain.Chunk {
	if doc.IsTranscript() {
		return c.chunkTranscript(doc)
	}
	return c.chunkText(doc)
}

// chunkText cuts each page by the layered separator strategy and assigns
// ids of the form "docID:page:index".
func (c *Chunker) chunkText(doc *domain.Document) []domain.Chunk {
	var chunks []domain.Chunk
	for page, content := range doc.Pages {
		for i, text := range splitText(content, c.chunkSize, c.overlap) {
			chunks = append(chunks, domain.Chunk{
				ID:         ChunkID(doc.ID, page, i),
				DocumentID: doc.ID,
				Text:       text,
				Page:       page,
				Position:   i,
			})
		}
	}
	return chunks
}

// chunkTranscript groups a fixed count of entries per chunk. Entries are
// whole-token units, so no character overlap is applied.
func (c *Chunker) chunkTranscript(doc *domain.Document) []domain.Chunk {
	entries := doc.Transcript
	var chunks []domain.Chunk
	for start := 0; start < len(entries); start += c.entriesPerChunk {
		end := start + c.entriesPerChunk
		if end > len(entries) {
			end = len(entries)
		}
		group := entries[start:end]
		chunks = append(chunks, domain.Chunk{
			ID:         ChunkID(doc.ID, 0, len(chunks)),
			DocumentID: doc.ID,
			Text:       joinEntries(group),
			Page:       0,
			Position:   len(chunks),
			StartTime:  group[0].Start,
			EndTime:    group[len(group)-1].End(),
		})
	}
	return chunks
}

func joinEntries(entries []domain.TranscriptEntry) string {
	text := ""
	for i, e := range entries {
		if i > 0 {
			text += " "
		}
		text += e.Text
	}
	return text
}
