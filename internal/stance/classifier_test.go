package stance

import (
	"testing"

	"github.com/veritium/veritium/internal/model"
)

func TestClassify_Contradicts(t *testing.T) {
	c := NewClassifier()
	evidence := "The treatment did not work. Patients could never recover and the " +
		"approach cannot be recommended."

	result := c.Classify("the treatment works", evidence)

	if result.Stance != model.StanceContradicts {
		t.Fatalf("expected contradicts, got %s", result.Stance)
	}
	if result.ContradictionIndicators <= result.SupportIndicators {
		t.Errorf("expected contradiction indicators to dominate: %d vs %d",
			result.ContradictionIndicators, result.SupportIndicators)
	}
	if result.EntailmentScore <= 0.0 || result.EntailmentScore > 0.8 {
		t.Errorf("entailment score out of heuristic bounds: %v", result.EntailmentScore)
	}
}

func TestClassify_Supports(t *testing.T) {
	c := NewClassifier()
	evidence := "Our results confirm the hypothesis and support the association. " +
		"The data demonstrate a clear effect."

	result := c.Classify("exercise has an effect", evidence)

	if result.Stance != model.StanceSupports {
		t.Fatalf("expected supports, got %s", result.Stance)
	}
	if result.EntailmentScore <= 0.0 {
		t.Errorf("expected positive entailment score, got %v", result.EntailmentScore)
	}
}

func TestClassify_NeutralOnAbsentIndicators(t *testing.T) {
	c := NewClassifier()
	result := c.Classify("any claim", "Plain descriptive text with zero stance markers.")

	if result.Stance != model.StanceNeutral {
		t.Fatalf("expected neutral, got %s", result.Stance)
	}
	if result.EntailmentScore != 0.5 {
		t.Errorf("expected fixed neutral confidence 0.5, got %v", result.EntailmentScore)
	}
}

func TestClassify_NeutralOnBalancedIndicators(t *testing.T) {
	c := NewClassifier()
	// One indicator from each table
	result := c.Classify("any claim", "The findings confirm one aspect but leave the rest open.")

	if result.SupportIndicators != result.ContradictionIndicators {
		t.Fatalf("expected balanced counts, got %d vs %d",
			result.SupportIndicators, result.ContradictionIndicators)
	}
	if result.Stance != model.StanceNeutral {
		t.Errorf("expected neutral on balanced counts, got %s", result.Stance)
	}
	if result.EntailmentScore != 0.5 {
		t.Errorf("expected 0.5 confidence, got %v", result.EntailmentScore)
	}
}

func TestClassify_ConfidenceIsCapped(t *testing.T) {
	c := NewClassifier()
	evidence := "not no never none neither nor cannot unable failed unsuccessful " +
		"ineffective opposite contrary however although despite nevertheless"

	result := c.Classify("any claim", evidence)

	if result.Stance != model.StanceContradicts {
		t.Fatalf("expected contradicts, got %s", result.Stance)
	}
	if result.EntailmentScore != 0.8 {
		t.Errorf("expected confidence capped at 0.8, got %v", result.EntailmentScore)
	}
}

func TestClassify_CountsDistinctIndicators(t *testing.T) {
	c := NewClassifier()
	// "confirm" three times is still one distinct indicator; "but" tips the balance
	result := c.Classify("any claim", "confirm confirm confirm but unclear")

	if result.SupportIndicators != 1 {
		t.Errorf("expected 1 distinct support indicator, got %d", result.SupportIndicators)
	}
}
