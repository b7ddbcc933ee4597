package model

import "time"

// Citation ties an evidence snippet back to its source document.
// DOI is preferred over URL when both are present.
type Citation struct {
	ID              string  `json:"id"`
	Text            string  `json:"text"`
	SimilarityScore float64 `json:"similarity_score"`
	DocumentTitle   string  `json:"document_title"`
	DocumentID      string  `json:"document_id"`
	SnippetIndex    int     `json:"snippet_index"`
	DOI             string  `json:"doi,omitempty"`
	URL             string  `json:"url,omitempty"`
}

// Assessment is the aggregate verdict for one (document, user claim) pair.
// Component scores and the explanation are immutable once created; only the
// feedback fields may be attached later.
type Assessment struct {
	ID         string `json:"id"`
	DocumentID string `json:"document_id"`
	UserClaim  string `json:"user_claim"`

	SimilarityScore float64 `json:"similarity_score"`
	Stance          Stance  `json:"stance"`
	EntailmentScore float64 `json:"entailment_score"`

	MethodQualityScore    float64 `json:"method_quality_score"`
	EvidenceStrengthScore float64 `json:"evidence_strength_score"`
	ConfidenceScore       float64 `json:"confidence_score"`

	Explanation      string            `json:"explanation"`
	EvidenceSnippets []EvidenceSnippet `json:"evidence_snippets"`
	Citations        []Citation        `json:"citations"`

	// ShareID is an opaque identifier for external linking, unique per
	// assessment and never reused.
	ShareID string `json:"share_id"`

	FeedbackScore   *int   `json:"feedback_score,omitempty"` // -1 or +1
	FeedbackComment string `json:"feedback_comment,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
