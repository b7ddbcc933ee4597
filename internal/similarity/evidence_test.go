package similarity

import (
	"context"
	"strings"
	"testing"
)

const heartDoc = `Background material on population health. ` +
	`Physical activity decreases cardiovascular disease risk in adults. ` +
	`Regular exercise reduces heart disease risk substantially over time. ` +
	`Ok. ` +
	`Meditation improves mental health outcomes in some cohorts. ` +
	`Unrelated filler sentence about laboratory equipment calibration.`

func TestLocate_RankedAndBounded(t *testing.T) {
	engine := NewEngine(nilSource{})
	claim := "Exercise reduces heart disease risk"

	snippets := engine.Locate(context.Background(), claim, heartDoc)

	if len(snippets) == 0 {
		t.Fatal("expected at least one snippet")
	}
	if len(snippets) > 10 {
		t.Fatalf("expected at most 10 snippets, got %d", len(snippets))
	}

	for i, s := range snippets {
		if len(s.Text) <= 10 {
			t.Errorf("snippet %d shorter than 10 chars: %q", i, s.Text)
		}
		if s.Similarity <= 0.1 {
			t.Errorf("snippet %d below relevance floor: %v", i, s.Similarity)
		}
		if s.Similarity < 0.0 || s.Similarity > 1.0 {
			t.Errorf("snippet %d similarity out of range: %v", i, s.Similarity)
		}
		if s.WordCount != len(strings.Fields(s.Text)) {
			t.Errorf("snippet %d word count %d does not match text", i, s.WordCount)
		}
		if i > 0 && snippets[i-1].Similarity < s.Similarity {
			t.Errorf("snippets not sorted descending at %d: %v < %v",
				i, snippets[i-1].Similarity, s.Similarity)
		}
	}
}

func TestLocate_BestSnippetMentionsClaimTerms(t *testing.T) {
	engine := NewEngine(nilSource{})
	snippets := engine.Locate(context.Background(), "Exercise reduces heart disease risk", heartDoc)

	if len(snippets) == 0 {
		t.Fatal("expected snippets")
	}
	top := strings.ToLower(snippets[0].Text)
	if !strings.Contains(top, "heart disease") && !strings.Contains(top, "cardiovascular") {
		t.Errorf("expected top snippet to be about the claim, got %q", snippets[0].Text)
	}
}

func TestLocate_EmptyDocument(t *testing.T) {
	engine := NewEngine(nilSource{})
	snippets := engine.Locate(context.Background(), "any claim at all", "")
	if len(snippets) != 0 {
		t.Errorf("expected no snippets for empty document, got %d", len(snippets))
	}
}

func TestSplitSentences_DiscardsShortFragments(t *testing.T) {
	sentences := SplitSentences("Ok. This sentence is long enough to keep! Hm? Another keeper sentence here.")
	for _, s := range sentences {
		if len(s) <= 10 {
			t.Errorf("kept fragment shorter than 10 chars: %q", s)
		}
	}
	if len(sentences) != 2 {
		t.Errorf("expected 2 sentences, got %d: %v", len(sentences), sentences)
	}
}

func TestJaccard(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"identical", "exercise reduces risk", "exercise reduces risk", 1.0},
		{"disjoint", "alpha beta", "gamma delta", 0.0},
		{"empty side", "", "exercise", 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Jaccard(tt.a, tt.b); got != tt.want {
				t.Errorf("Jaccard(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
