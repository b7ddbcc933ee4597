package model

// EvidenceSnippet is a document sentence found relevant to the user's claim
type EvidenceSnippet struct {
	Text          string  `json:"text"`
	Similarity    float64 `json:"similarity"`
	SentenceIndex int     `json:"sentence_index"`
	WordCount     int     `json:"word_count"`
}

// SimilarityResult holds the claim-to-candidates similarity computation.
// BestMatchIndex is -1 when no candidates were provided.
type SimilarityResult struct {
	SimilarityScore   float64           `json:"similarity_score"`
	BestMatchIndex    int               `json:"best_match_index"`
	BestMatchingClaim string            `json:"best_matching_claim,omitempty"`
	AllScores         []float64         `json:"all_scores"`
	SemanticScores    []float64         `json:"semantic_scores"`
	LexicalScores     []float64         `json:"lexical_scores"`
	EvidenceSnippets  []EvidenceSnippet `json:"evidence_snippets"`
}

// Stance classifies whether document evidence supports, contradicts, or is
// neutral toward a claim.
type Stance string

const (
	StanceSupports    Stance = "supports"
	StanceContradicts Stance = "contradicts"
	StanceNeutral     Stance = "neutral"
)

// StanceResult is the outcome of the lexical stance heuristic.
type StanceResult struct {
	Stance                  Stance  `json:"stance"`
	EntailmentScore         float64 `json:"entailment_score"`
	SupportIndicators       int     `json:"support_indicators"`
	ContradictionIndicators int     `json:"contradiction_indicators"`
}
