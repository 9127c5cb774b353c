// Package ingest orchestrates the retrieval, transformation and storage of
// article source documents.
package ingest

// FileRequest names one document to ingest. Slug and Title are optional:
// when blank they are derived from the document's metadata title.
type FileRequest struct {
	ID    string `json:"id"`
	Slug  string `json:"slug,omitempty"`
	Title string `json:"title,omitempty"`
}

// PostSummary describes one stored post in a batch result.
type PostSummary struct {
	FileID string `json:"file_id"`
	Slug   string `json:"slug"`
	Title  string `json:"title"`
}

// ItemError records why one document in a batch was not stored.
type ItemError struct {
	FileID  string `json:"file_id"`
	Message string `json:"message"`
}

// Status summarizes a batch outcome.
type Status string

const (
	// StatusSuccess means every document was stored.
	StatusSuccess Status = "success"
	// StatusPartial means some documents were stored and the rest failed
	// with expected, per-item errors.
	StatusPartial Status = "partial"
	// StatusFailed means nothing was stored.
	StatusFailed Status = "failed"
)

// Result is the outcome of one batch ingestion.
//
// Halted reports that an unexpected failure stopped the batch early; any
// documents after the failing one were never attempted and do not appear in
// either list.
type Result struct {
	Ingested []PostSummary `json:"ingested"`
	Errors   []ItemError   `json:"errors"`
	Halted   bool          `json:"halted"`
}

// Status classifies the result for callers that only need the summary.
func (r *Result) Status() Status {
	switch {
	case len(r.Errors) == 0:
		return StatusSuccess
	case len(r.Ingested) == 0:
		return StatusFailed
	default:
		return StatusPartial
	}
}

// Candidate is a remote document that has no stored post yet.
type Candidate struct {
	FileID string `json:"file_id"`
	Name   string `json:"name"`
	Slug   string `json:"slug"`
	Title  string `json:"title"`
}
