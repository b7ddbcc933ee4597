package explain

import (
	"strings"
	"testing"

	"github.com/veritium/veritium/internal/model"
)

func solidDocument() *model.Document {
	return &model.Document{
		ID:                 "doc-1",
		Title:              "Trial Report",
		DOI:                "10.1234/trial.1",
		ExtractedClaims:    []string{"treatment reduced symptoms"},
		MethodQualityScore: 0.7,
	}
}

func TestTierFor(t *testing.T) {
	tests := []struct {
		confidence float64
		want       confidenceTier
	}{
		{0.9, tierHigh},
		{0.7, tierHigh},
		{0.69, tierMedium},
		{0.4, tierMedium},
		{0.39, tierLow},
		{0.0, tierLow},
	}
	for _, tt := range tests {
		if got := tierFor(tt.confidence); got != tt.want {
			t.Errorf("tierFor(%f) = %d, want %d", tt.confidence, got, tt.want)
		}
	}
}

func TestExplain_HighConfidenceSupports(t *testing.T) {
	s := NewSynthesizer()
	sim := model.SimilarityResult{SimilarityScore: 0.85}
	stance := model.StanceResult{Stance: model.StanceSupports}

	text := s.Explain("exercise helps", solidDocument(), sim, stance, 0.8)

	if !strings.HasPrefix(text, "The evidence strongly supports your claim.") {
		t.Errorf("unexpected opening: %q", text)
	}
	if !strings.Contains(text, "closely matches the study's findings") {
		t.Errorf("missing similarity clause: %q", text)
	}
	if strings.Contains(text, "Limitations:") {
		t.Errorf("unexpected limitations for a solid document: %q", text)
	}
}

func TestExplain_LowConfidenceContradicts(t *testing.T) {
	s := NewSynthesizer()
	sim := model.SimilarityResult{SimilarityScore: 0.2}
	stance := model.StanceResult{Stance: model.StanceContradicts}

	text := s.Explain("exercise helps", solidDocument(), sim, stance, 0.3)

	if !strings.HasPrefix(text, "There is weak evidence against your claim.") {
		t.Errorf("unexpected opening: %q", text)
	}
	if !strings.Contains(text, "The assessment has low confidence due to limited evidence.") {
		t.Errorf("missing low-confidence limitation: %q", text)
	}
}

func TestExplain_AllLimitations(t *testing.T) {
	s := NewSynthesizer()
	doc := &model.Document{ID: "doc-2", MethodQualityScore: 0.2}
	sim := model.SimilarityResult{SimilarityScore: 0.3}
	stance := model.StanceResult{Stance: model.StanceNeutral}

	text := s.Explain("exercise helps", doc, sim, stance, 0.2)

	for _, want := range []string{
		"The assessment has low confidence due to limited evidence.",
		"No clear claims were extracted from the document.",
		"The study's methodological limitations affect result reliability.",
		"The document source could not be verified.",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("missing limitation %q in %q", want, text)
		}
	}
}

func TestEvidenceClause(t *testing.T) {
	tests := []struct {
		count int
		want  string
	}{
		{7, "Multiple relevant passages were found in the document."},
		{5, "Multiple relevant passages were found in the document."},
		{3, "Several relevant passages support this assessment."},
		{1, "Some relevant passages were identified."},
		{0, "Limited relevant evidence was found in the document."},
	}
	for _, tt := range tests {
		if got := evidenceClause(tt.count); got != tt.want {
			t.Errorf("evidenceClause(%d) = %q, want %q", tt.count, got, tt.want)
		}
	}
}

func TestMethodologySection(t *testing.T) {
	tests := []struct {
		name    string
		details model.QualityDetails
		want    []string
	}{
		{
			"large sample with stats and doi",
			model.QualityDetails{MaxSampleSize: 1500, PValuesFound: []string{"0.05"}, DOIFound: "10.1/x"},
			[]string{"Large sample size (n=1500)", "Statistical significance testing was employed.", "Published in peer-reviewed source."},
		},
		{
			"adequate sample",
			model.QualityDetails{MaxSampleSize: 150},
			[]string{"Adequate sample size (n=150)"},
		},
		{
			"small sample",
			model.QualityDetails{MaxSampleSize: 50},
			[]string{"Small sample size (n=50) limits generalizability."},
		},
		{
			"nothing found",
			model.QualityDetails{},
			[]string{"Limited methodological information available."},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := methodologySection(model.QualityAssessment{Details: tt.details})
			for _, want := range tt.want {
				if !strings.Contains(got, want) {
					t.Errorf("missing %q in %q", want, got)
				}
			}
		})
	}
}

func TestOverclaimingAssessment(t *testing.T) {
	tests := []struct {
		name       string
		claim      string
		similarity float64
		confidence float64
		want       string
	}{
		{
			"absolute language with weak match",
			"exercise always prevents heart disease",
			0.5, 0.8,
			"Caution: Your claim uses absolute language that may not be fully supported by the evidence.",
		},
		{
			"absolute language but strong match",
			"exercise always prevents heart disease",
			0.9, 0.8,
			"No significant overclaiming detected based on available evidence.",
		},
		{
			"low confidence",
			"exercise reduces risk",
			0.6, 0.3,
			"The evidence provides limited support for strong claims in this area.",
		},
		{
			"low similarity",
			"exercise reduces risk",
			0.3, 0.6,
			"Your specific claim differs substantially from the study's findings.",
		},
		{
			"no overclaiming",
			"exercise reduces risk",
			0.8, 0.8,
			"No significant overclaiming detected based on available evidence.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := overclaimingAssessment(tt.claim, tt.similarity, tt.confidence)
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExplainDetailed_Sections(t *testing.T) {
	s := NewSynthesizer()
	sim := model.SimilarityResult{
		SimilarityScore:  0.85,
		EvidenceSnippets: []model.EvidenceSnippet{{Text: "a"}, {Text: "b"}},
	}
	stance := model.StanceResult{Stance: model.StanceSupports}
	quality := model.QualityAssessment{
		Details: model.QualityDetails{MaxSampleSize: 300, DOIFound: "10.1/x"},
	}

	detailed := s.ExplainDetailed("exercise helps", solidDocument(), sim, stance, 0.8, quality)

	if !strings.HasPrefix(detailed.Summary, "The evidence strongly supports your claim.") {
		t.Errorf("unexpected summary: %q", detailed.Summary)
	}
	if !strings.Contains(detailed.Methodology, "Adequate sample size (n=300)") {
		t.Errorf("unexpected methodology section: %q", detailed.Methodology)
	}
	if !strings.Contains(detailed.EvidenceAnalysis, "High semantic similarity") {
		t.Errorf("unexpected evidence analysis: %q", detailed.EvidenceAnalysis)
	}
	if !strings.Contains(detailed.EvidenceAnalysis, "supportive stance") {
		t.Errorf("missing stance sentence: %q", detailed.EvidenceAnalysis)
	}
	if !strings.Contains(detailed.EvidenceAnalysis, "Found 2 relevant evidence passages.") {
		t.Errorf("missing evidence count: %q", detailed.EvidenceAnalysis)
	}
	if detailed.OverclaimingAssessment != "No significant overclaiming detected based on available evidence." {
		t.Errorf("unexpected overclaiming section: %q", detailed.OverclaimingAssessment)
	}
}
