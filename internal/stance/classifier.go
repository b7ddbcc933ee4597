package stance

import (
	"strings"

	"github.com/veritium/veritium/internal/model"
)

// Indicator tables are static configuration: fixed word lists, never mutated.
// This is a bounded lexical heuristic, not a trained entailment model; false
// positives from negation inside supportive contexts are accepted.
var (
	contradictionIndicators = []string{
		"not", "no", "never", "none", "neither", "nor", "cannot", "unable",
		"failed", "unsuccessful", "ineffective", "opposite", "contrary",
		"however", "but", "although", "despite", "nevertheless",
	}

	supportIndicators = []string{
		"confirm", "support", "evidence", "demonstrate", "show", "indicate",
		"suggest", "prove", "establish", "validate", "corroborate",
		"consistent", "agree", "align", "match", "correspond",
	}
)

const (
	// indicatorConfidenceStep scales distinct-indicator counts into confidence
	indicatorConfidenceStep = 0.2

	// maxIndicatorConfidence caps the heuristic's confidence
	maxIndicatorConfidence = 0.8

	// neutralConfidence is the fixed confidence for balanced indicator counts
	neutralConfidence = 0.5
)

// Classifier decides whether evidence text supports, contradicts, or is
// neutral toward a claim by counting indicator terms. It never fails: the
// worst case is a neutral result.
type Classifier struct{}

// NewClassifier creates a stance classifier
func NewClassifier() *Classifier {
	return &Classifier{}
}

// Classify counts indicators in the evidence text (not the claim) and applies
// the stance decision rule. Counts are of distinct indicators present,
// case-insensitive.
func (c *Classifier) Classify(userClaim, evidenceText string) model.StanceResult {
	evidence := strings.ToLower(evidenceText)

	contradictions := countPresent(evidence, contradictionIndicators)
	supports := countPresent(evidence, supportIndicators)

	switch {
	case contradictions > supports:
		return model.StanceResult{
			Stance:                  model.StanceContradicts,
			EntailmentScore:         indicatorConfidence(contradictions),
			SupportIndicators:       supports,
			ContradictionIndicators: contradictions,
		}
	case supports > contradictions:
		return model.StanceResult{
			Stance:                  model.StanceSupports,
			EntailmentScore:         indicatorConfidence(supports),
			SupportIndicators:       supports,
			ContradictionIndicators: contradictions,
		}
	default:
		return model.StanceResult{
			Stance:                  model.StanceNeutral,
			EntailmentScore:         neutralConfidence,
			SupportIndicators:       supports,
			ContradictionIndicators: contradictions,
		}
	}
}

func countPresent(text string, indicators []string) int {
	count := 0
	for _, ind := range indicators {
		if strings.Contains(text, ind) {
			count++
		}
	}
	return count
}

func indicatorConfidence(count int) float64 {
	confidence := float64(count) * indicatorConfidenceStep
	if confidence > maxIndicatorConfidence {
		return maxIndicatorConfidence
	}
	return confidence
}
