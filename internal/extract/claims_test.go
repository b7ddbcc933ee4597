package extract

import (
	"strings"
	"testing"
)

func TestExtract_ConclusionPattern(t *testing.T) {
	extractor := NewExtractor()

	text := "We found that regular exercise reduced cardiovascular risk by thirty percent in adults."
	claims := extractor.Extract(text)

	if len(claims) != 1 {
		t.Fatalf("expected 1 claim, got %d: %v", len(claims), claims)
	}
	if !strings.Contains(claims[0], "regular exercise reduced cardiovascular risk") {
		t.Errorf("unexpected claim text: %q", claims[0])
	}
}

func TestExtract_StripsLeadingConjunction(t *testing.T) {
	extractor := NewExtractor()

	text := "We conclude that daily meditation improves attention span in students."
	claims := extractor.Extract(text)

	if len(claims) != 1 {
		t.Fatalf("expected 1 claim, got %d: %v", len(claims), claims)
	}
	if strings.HasPrefix(strings.ToLower(claims[0]), "that ") {
		t.Errorf("leading conjunction not stripped: %q", claims[0])
	}
	if !strings.HasPrefix(claims[0], "daily meditation") {
		t.Errorf("unexpected claim start: %q", claims[0])
	}
}

func TestExtract_RejectsShortClaims(t *testing.T) {
	extractor := NewExtractor()

	claims := extractor.Extract("We conclude it works.")
	if len(claims) != 0 {
		t.Errorf("expected no claims from a trivial statement, got %v", claims)
	}
}

func TestExtract_DeduplicatesSimilarClaims(t *testing.T) {
	extractor := NewExtractor()

	text := "We found that vitamin D supplementation reduced fracture risk in elderly patients. " +
		"Results indicate vitamin D supplementation reduced fracture risk in elderly patients."
	claims := extractor.Extract(text)

	if len(claims) != 1 {
		t.Errorf("expected deduplication to a single claim, got %d: %v", len(claims), claims)
	}
}

func TestExtract_OrdersByLengthDescending(t *testing.T) {
	extractor := NewExtractor()

	text := "We conclude that omega three fatty acids provide measurable cognitive benefits across diverse older populations worldwide. " +
		"We propose magnesium helps sleep quality somewhat."
	claims := extractor.Extract(text)

	if len(claims) != 2 {
		t.Fatalf("expected 2 claims, got %d: %v", len(claims), claims)
	}
	if len(claims[0]) < len(claims[1]) {
		t.Errorf("claims not ordered longest first: %v", claims)
	}
	if !strings.Contains(claims[0], "omega three") {
		t.Errorf("expected the longer claim first, got %q", claims[0])
	}
}

func TestExtract_MinesAbstractSection(t *testing.T) {
	extractor := NewExtractor()

	text := "Abstract: The trial enrolled adults with hypertension across four sites. " +
		"Blood pressure showed a significant reduction after eight weeks of treatment.\n\nIntroduction\nBackground material follows."
	claims := extractor.Extract(text)

	found := false
	for _, c := range claims {
		if strings.Contains(c, "significant reduction") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a claim mined from the abstract, got %v", claims)
	}
}

func TestExtract_RejectsBracketedCitation(t *testing.T) {
	extractor := NewExtractor()

	claims := extractor.Extract("We conclude that (Smith et al 2020 described outcomes).")
	if len(claims) != 0 {
		t.Errorf("expected citation-only claim to be rejected, got %v", claims)
	}
}

func TestIsValidClaim(t *testing.T) {
	tests := []struct {
		name  string
		claim string
		want  bool
	}{
		{"too short", "tiny claim", false},
		{"too long", strings.Repeat("lengthy ", 70), false},
		{"too few substantive words", "aaa bb cc dd ee ff gggggg", false},
		{"valid", "treatment produced measurable improvement across cohorts", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isValidClaim(tt.claim); got != tt.want {
				t.Errorf("isValidClaim(%q) = %v, want %v", tt.claim, got, tt.want)
			}
		})
	}
}

func TestWordJaccard(t *testing.T) {
	if sim := wordJaccard("exercise reduces risk", "exercise reduces risk"); sim != 1.0 {
		t.Errorf("identical claims should have similarity 1.0, got %f", sim)
	}
	if sim := wordJaccard("alpha beta gamma", "delta epsilon zeta"); sim != 0.0 {
		t.Errorf("disjoint claims should have similarity 0.0, got %f", sim)
	}
	if sim := wordJaccard("", "exercise reduces risk"); sim != 0.0 {
		t.Errorf("empty claim should have similarity 0.0, got %f", sim)
	}
}
