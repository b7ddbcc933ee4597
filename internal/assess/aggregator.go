package assess

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/montanaflynn/stats"

	"github.com/veritium/veritium/internal/model"
)

// Confidence combination weights
const (
	weightSimilarity       = 0.25
	weightEntailment       = 0.25
	weightMethodQuality    = 0.30
	weightEvidenceStrength = 0.20
)

// Evidence strength combination
const (
	strengthSimilarityWeight = 0.4
	strengthEntailmentWeight = 0.4
	strengthBonusWeight      = 0.2

	// evidenceBonusPerSnippet rewards corroborating passages, capped
	evidenceBonusPerSnippet = 0.05
	maxEvidenceBonus        = 0.2
)

// Uncertainty penalty: inconsistent component scores indicate an unreliable
// composite and must reduce reported confidence even when the mean is high.
// The coefficient and cap are tuned constants carried over from the scoring
// design; they have no derivation beyond empirical tuning.
const (
	uncertaintyWeight     = 0.5
	maxUncertaintyPenalty = 0.2
)

// Aggregator combines similarity, stance, and quality outputs into an
// Assessment with a single calibrated confidence score.
type Aggregator struct{}

// NewAggregator creates an aggregator
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Aggregate builds the assessment record for one (document, claim) pair.
// The explanation is filled in by the caller after synthesis.
func (a *Aggregator) Aggregate(
	doc *model.Document,
	userClaim string,
	simResult model.SimilarityResult,
	stanceResult model.StanceResult,
	methodQuality float64,
) *model.Assessment {
	strength := a.EvidenceStrength(simResult, stanceResult)
	confidence := a.Confidence(simResult.SimilarityScore, stanceResult.EntailmentScore, methodQuality, strength)

	return &model.Assessment{
		ID:                    uuid.New().String(),
		DocumentID:            doc.ID,
		UserClaim:             userClaim,
		SimilarityScore:       simResult.SimilarityScore,
		Stance:                stanceResult.Stance,
		EntailmentScore:       stanceResult.EntailmentScore,
		MethodQualityScore:    methodQuality,
		EvidenceStrengthScore: strength,
		ConfidenceScore:       confidence,
		EvidenceSnippets:      simResult.EvidenceSnippets,
		Citations:             a.Citations(simResult.EvidenceSnippets, doc),
		ShareID:               uuid.New().String(),
		CreatedAt:             time.Now().UTC(),
	}
}

// EvidenceStrength rewards both similarity/entailment and the volume of
// corroborating passages, with a capped bonus.
func (a *Aggregator) EvidenceStrength(simResult model.SimilarityResult, stanceResult model.StanceResult) float64 {
	bonus := float64(len(simResult.EvidenceSnippets)) * evidenceBonusPerSnippet
	if bonus > maxEvidenceBonus {
		bonus = maxEvidenceBonus
	}

	strength := strengthSimilarityWeight*simResult.SimilarityScore +
		strengthEntailmentWeight*stanceResult.EntailmentScore +
		strengthBonusWeight*bonus
	return clamp(strength)
}

// Confidence computes the weighted composite minus the uncertainty penalty
func (a *Aggregator) Confidence(similarity, entailment, methodQuality, evidenceStrength float64) float64 {
	confidence := weightSimilarity*similarity +
		weightEntailment*entailment +
		weightMethodQuality*methodQuality +
		weightEvidenceStrength*evidenceStrength

	confidence -= a.UncertaintyPenalty([]float64{similarity, entailment, methodQuality, evidenceStrength})
	return clamp(confidence)
}

// UncertaintyPenalty scales the population variance of the component scores,
// capped at maxUncertaintyPenalty. Identical components yield zero penalty.
func (a *Aggregator) UncertaintyPenalty(scores []float64) float64 {
	if len(scores) < 2 {
		return 0.0
	}

	variance, err := stats.PopulationVariance(stats.Float64Data(scores))
	if err != nil {
		return 0.0
	}

	penalty := variance * uncertaintyWeight
	if penalty > maxUncertaintyPenalty {
		return maxUncertaintyPenalty
	}
	return penalty
}

// Citations builds one record per retained evidence snippet, preferring DOI
// over URL for source linking.
func (a *Aggregator) Citations(snippets []model.EvidenceSnippet, doc *model.Document) []model.Citation {
	citations := make([]model.Citation, 0, len(snippets))
	for i, snippet := range snippets {
		c := model.Citation{
			ID:              fmt.Sprintf("citation_%d", i+1),
			Text:            snippet.Text,
			SimilarityScore: snippet.Similarity,
			DocumentTitle:   doc.Title,
			DocumentID:      doc.ID,
			SnippetIndex:    snippet.SentenceIndex,
		}
		if doc.DOI != "" {
			c.DOI = doc.DOI
		} else if doc.URL != "" {
			c.URL = doc.URL
		}
		citations = append(citations, c)
	}
	return citations
}

func clamp(score float64) float64 {
	if score < 0.0 {
		return 0.0
	}
	if score > 1.0 {
		return 1.0
	}
	return score
}
