package domain

// Document is a named source of text to be ingested: a file extracted from
// PDF/TXT, or a timestamped video transcript. Documents are immutable once
// ingested; re-ingestion skips chunks that already exist.
type Document struct {
	// ID is the stable document identifier (file path or video id).
	ID string

	// Title is the human-readable title.
	Title string

	// URL is the canonical location of the source, if any.
	URL string

	// Pages holds the text of each page. Plain text documents have a
	// single page; PDFs have one entry per page.
	Pages []string

	// Transcript holds time-ordered entries for transcript documents.
	// When non-empty, Pages is ignored and the transcript chunker applies.
	Transcript []TranscriptEntry
}

// IsTranscript reports whether the document is a timestamped transcript.
func (d *Document) IsTranscript() bool {
	return len(d.Transcript) > 0
}

// Empty reports whether the document carries no text at all.
func (d *Document) Empty() bool {
	if d.IsTranscript() {
		return false
	}
	for _, p := range d.Pages {
		if p != "" {
			return false
		}
	}
	return true
}

// TranscriptEntry is a single timestamped line of a transcript.
type TranscriptEntry struct {
	// Text is the spoken text of this entry.
	Text string

	// Start is the start offset in seconds from the beginning of the video.
	Start float64

	// Duration is the length of this entry in seconds.
	Duration float64
}

// End returns the end offset of the entry in seconds.
func (e TranscriptEntry) End() float64 {
	return e.Start + e.Duration
}

// Chunk is the atomic retrieval unit: a bounded piece of document text with
// a deterministic identifier and, after embedding, a vector representation.
type Chunk struct {
	// ID is the deterministic identifier "docID:page:index". Re-chunking
	// the same document with the same parameters yields identical IDs.
	ID string

	// DocumentID links back to the source document.
	DocumentID string

	// Text is the chunk content.
	Text string

	// Page is the page number the chunk was cut from (0 for plain text
	// and transcripts).
	Page int

	// Position is the chunk index within its page.
	Position int

	// StartTime and EndTime bound the chunk in seconds for transcript
	// chunks. Both are zero for text documents.
	StartTime float64
	EndTime   float64
}

// ChunkMetadata is the structured per-chunk record held by the relational
// store, joined to the vector store by chunk ID.
type ChunkMetadata struct {
	// ChunkID is the chunk this metadata belongs to.
	ChunkID string

	// VideoID is the source document identifier.
	VideoID string

	// StartTime and EndTime bound the chunk in seconds.
	StartTime float64
	EndTime   float64

	// Title is the source document title.
	Title string

	// URL is the canonical source location, with a time offset for
	// transcript chunks.
	URL string
}

// Segment is a coarser, semantically delimited grouping of transcript
// content produced by LLM-driven segmentation. Segments live only in the
// relational store and are looked up by video id, never by similarity.
type Segment struct {
	// VideoID is the video the segment belongs to.
	VideoID string

	// Title is the section title, e.g. "Introduction".
	Title string

	// StartTime and EndTime bound the segment in seconds.
	StartTime float64
	EndTime   float64
}
