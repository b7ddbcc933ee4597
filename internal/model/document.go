package model

import "time"

// Document is an ingested scientific source: plain text plus metadata and
// the artifacts computed at ingestion time (extracted claims, quality score).
type Document struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Authors    []string `json:"authors,omitempty"`
	Abstract   string   `json:"abstract,omitempty"`
	Content    string   `json:"content"`
	DOI        string   `json:"doi,omitempty"`
	URL        string   `json:"url,omitempty"`
	SourceType string   `json:"source_type"` // "url" or "text"

	// ExtractedClaims are normalized claim candidates, deduplicated and
	// length-bounded. Immutable once the document is stored.
	ExtractedClaims []string `json:"extracted_claims,omitempty"`

	// MethodQualityScore is computed once at ingestion and reused by every
	// assessment against this document.
	MethodQualityScore float64 `json:"method_quality_score"`

	CreatedAt time.Time `json:"created_at"`
}

// HasSource reports whether the document carries a verifiable source
// reference (DOI or URL).
func (d *Document) HasSource() bool {
	return d.DOI != "" || d.URL != ""
}
