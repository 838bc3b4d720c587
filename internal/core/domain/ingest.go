package domain

// IngestReport summarises the outcome of ingesting a single document.
// Embedding failures isolate the affected chunk rather than aborting the
// document, so a report may show partial success.
type IngestReport struct {
	// RunID correlates log lines for one ingestion pass.
	RunID string

	// DocumentID is the document this report covers.
	DocumentID string

	// Added is the number of chunks newly written to both stores.
	Added int

	// Skipped is the number of chunks whose IDs already existed in the
	// vector store (no embedding call was made for them).
	Skipped int

	// Failed is the number of chunks that could not be embedded or
	// written. Failed chunks are retried on the next ingestion pass.
	Failed int

	// Segments is the number of transcript segments stored.
	Segments int

	// Errors holds the failure details: one entry per failed chunk, plus
	// any segmentation or document-level failures.
	Errors []error
}

// Complete reports whether the document was ingested without any failure.
func (r *IngestReport) Complete() bool {
	return r.Failed == 0 && len(r.Errors) == 0
}
