package model

// QualityBreakdown carries the per-criterion methodological quality scores.
// Every score is clamped to [0,1]; Overall is the weighted sum.
type QualityBreakdown struct {
	SampleSize       float64 `json:"sample_size"`
	Methodology      float64 `json:"methodology"`
	StatisticalRigor float64 `json:"statistical_rigor"`
	PeerReview       float64 `json:"peer_review"`
	Reproducibility  float64 `json:"reproducibility"`
	Transparency     float64 `json:"transparency"`
	Overall          float64 `json:"overall"`
}

// QualityDetails is the raw evidence behind a QualityBreakdown, used by the
// explanation synthesizer.
type QualityDetails struct {
	SampleSizesFound      []int    `json:"sample_sizes_found,omitempty"`
	MaxSampleSize         int      `json:"max_sample_size,omitempty"`
	MethodologyIndicators []string `json:"methodology_indicators,omitempty"`
	PValuesFound          []string `json:"p_values_found,omitempty"`
	DOIFound              string   `json:"doi_found,omitempty"`
	HasMethodsSection     bool     `json:"has_methods_section"`
	MentionsLimitations   bool     `json:"mentions_limitations"`
}

// QualityAssessment pairs the scores with the evidence that produced them.
type QualityAssessment struct {
	Breakdown QualityBreakdown `json:"breakdown"`
	Details   QualityDetails   `json:"details"`
}
