// Package models defines core data structures for documents, applicants, queries, and search results.
package models

// Document is the in-memory representation of one parsed CV.
// Documents are immutable once inserted into the document store; ingestion
// never updates an existing detail id.
type Document struct {
	// DetailID is the application detail id from the relational store.
	DetailID int64 `json:"detail_id"`
	// Path is the CV file path the text was extracted from.
	Path string `json:"path"`
	// SearchText is the normalized text used for pattern matching:
	// lowercase, punctuation stripped, whitespace collapsed.
	SearchText string `json:"-"`
	// StructuredText retains the original layout (newlines, section
	// headers) for downstream field extraction.
	StructuredText string `json:"-"`
	// Metadata carries opaque values cached at ingestion time
	// (e.g. applicant id, application role).
	Metadata map[string]string `json:"metadata,omitempty"`
}

// IngestionProgress reports how far background ingestion has gotten.
// Done transitions false to true exactly once and never reverts.
type IngestionProgress struct {
	Processed int  `json:"processed"`
	Total     int  `json:"total"`
	Done      bool `json:"done"`
}
