package explain

import (
	"fmt"
	"strings"

	"github.com/veritium/veritium/internal/model"
)

// confidenceTier buckets a confidence score for template selection
type confidenceTier int

const (
	tierHigh confidenceTier = iota
	tierMedium
	tierLow
)

const (
	highConfidenceFloor   = 0.7
	mediumConfidenceFloor = 0.4
)

func tierFor(confidence float64) confidenceTier {
	switch {
	case confidence >= highConfidenceFloor:
		return tierHigh
	case confidence >= mediumConfidenceFloor:
		return tierMedium
	default:
		return tierLow
	}
}

// baseTemplates maps (tier, stance) to the opening sentence of every
// explanation. The wording is deliberately hedged in proportion to tier.
var baseTemplates = map[confidenceTier]map[model.Stance]string{
	tierHigh: {
		model.StanceSupports:    "The evidence strongly supports your claim. The document contains multiple relevant findings that align with your statement.",
		model.StanceContradicts: "The evidence strongly contradicts your claim. The document presents findings that directly oppose your statement.",
		model.StanceNeutral:     "The evidence is mixed regarding your claim. While some findings are relevant, they neither strongly support nor contradict your statement.",
	},
	tierMedium: {
		model.StanceSupports:    "The evidence moderately supports your claim. There are relevant findings, but the support is not definitive.",
		model.StanceContradicts: "The evidence suggests your claim may not be accurate. Some findings appear to contradict your statement.",
		model.StanceNeutral:     "The evidence provides limited insight into your claim. The document discusses related topics but doesn't directly address your specific statement.",
	},
	tierLow: {
		model.StanceSupports:    "There is weak evidence supporting your claim. The document mentions related concepts but doesn't provide strong validation.",
		model.StanceContradicts: "There is weak evidence against your claim. The document suggests some contradiction but it's not definitive.",
		model.StanceNeutral:     "The evidence is insufficient to evaluate your claim. The document doesn't contain enough relevant information.",
	},
}

// absoluteTerms in a user claim trigger the overclaiming caution when the
// evidence does not closely match.
var absoluteTerms = []string{
	"always", "never", "all", "none",
	"completely", "totally", "definitely", "certainly",
}

// DetailedExplanation is the sectioned variant of an explanation
type DetailedExplanation struct {
	Summary                string `json:"summary"`
	Methodology            string `json:"methodology"`
	EvidenceAnalysis       string `json:"evidence_analysis"`
	OverclaimingAssessment string `json:"overclaiming_assessment"`
}

// Synthesizer renders plain-language explanations from assessment scores.
// All output is template driven so that identical inputs always produce
// identical text.
type Synthesizer struct{}

// NewSynthesizer creates a synthesizer
func NewSynthesizer() *Synthesizer {
	return &Synthesizer{}
}

// Explain builds the single-paragraph explanation: a stance/confidence base
// sentence followed by methodology, similarity, evidence volume, and
// limitation clauses.
func (s *Synthesizer) Explain(
	userClaim string,
	doc *model.Document,
	sim model.SimilarityResult,
	stanceResult model.StanceResult,
	confidence float64,
) string {
	parts := []string{baseSentence(confidence, stanceResult.Stance)}

	parts = append(parts, methodologyClause(doc.MethodQualityScore))
	parts = append(parts, similarityClause(sim.SimilarityScore))
	parts = append(parts, evidenceClause(len(sim.EvidenceSnippets)))

	if limitations := limitationsClause(confidence, doc); limitations != "" {
		parts = append(parts, limitations)
	}

	return strings.Join(parts, " ")
}

// ExplainDetailed builds the sectioned explanation used by report output
func (s *Synthesizer) ExplainDetailed(
	userClaim string,
	doc *model.Document,
	sim model.SimilarityResult,
	stanceResult model.StanceResult,
	confidence float64,
	quality model.QualityAssessment,
) DetailedExplanation {
	return DetailedExplanation{
		Summary:                s.Explain(userClaim, doc, sim, stanceResult, confidence),
		Methodology:            methodologySection(quality),
		EvidenceAnalysis:       evidenceSection(sim, stanceResult),
		OverclaimingAssessment: overclaimingAssessment(userClaim, sim.SimilarityScore, confidence),
	}
}

func baseSentence(confidence float64, stance model.Stance) string {
	templates := baseTemplates[tierFor(confidence)]
	if sentence, ok := templates[stance]; ok {
		return sentence
	}
	return templates[model.StanceNeutral]
}

func methodologyClause(methodQuality float64) string {
	switch {
	case methodQuality >= 0.8:
		return "The study demonstrates high methodological quality with robust research design."
	case methodQuality >= 0.6:
		return "The study shows good methodological quality, though some limitations may exist."
	case methodQuality >= 0.4:
		return "The study has moderate methodological quality with noticeable limitations."
	default:
		return "The study has low methodological quality, which affects the reliability of conclusions."
	}
}

func similarityClause(similarity float64) string {
	switch {
	case similarity >= 0.8:
		return "Your claim closely matches the study's findings."
	case similarity >= 0.6:
		return "Your claim is reasonably similar to the study's findings."
	case similarity >= 0.4:
		return "Your claim has some similarity to the study's findings."
	default:
		return "Your claim has limited similarity to the study's findings."
	}
}

func evidenceClause(snippetCount int) string {
	switch {
	case snippetCount >= 5:
		return "Multiple relevant passages were found in the document."
	case snippetCount >= 3:
		return "Several relevant passages support this assessment."
	case snippetCount >= 1:
		return "Some relevant passages were identified."
	default:
		return "Limited relevant evidence was found in the document."
	}
}

func limitationsClause(confidence float64, doc *model.Document) string {
	var limitations []string

	if confidence < 0.5 {
		limitations = append(limitations, "The assessment has low confidence due to limited evidence.")
	}
	if len(doc.ExtractedClaims) == 0 {
		limitations = append(limitations, "No clear claims were extracted from the document.")
	}
	if doc.MethodQualityScore < 0.4 {
		limitations = append(limitations, "The study's methodological limitations affect result reliability.")
	}
	if !doc.HasSource() {
		limitations = append(limitations, "The document source could not be verified.")
	}

	if len(limitations) == 0 {
		return ""
	}
	return "Limitations: " + strings.Join(limitations, " ")
}

func methodologySection(quality model.QualityAssessment) string {
	var sections []string

	if size := quality.Details.MaxSampleSize; size > 0 {
		switch {
		case size >= 1000:
			sections = append(sections, fmt.Sprintf("Large sample size (n=%d) enhances result reliability.", size))
		case size >= 100:
			sections = append(sections, fmt.Sprintf("Adequate sample size (n=%d) supports findings.", size))
		default:
			sections = append(sections, fmt.Sprintf("Small sample size (n=%d) limits generalizability.", size))
		}
	}

	if len(quality.Details.PValuesFound) > 0 {
		sections = append(sections, "Statistical significance testing was employed.")
	}
	if quality.Details.DOIFound != "" {
		sections = append(sections, "Published in peer-reviewed source.")
	}

	if len(sections) == 0 {
		return "Limited methodological information available."
	}
	return strings.Join(sections, " ")
}

func evidenceSection(sim model.SimilarityResult, stanceResult model.StanceResult) string {
	var sections []string

	switch {
	case sim.SimilarityScore >= 0.8:
		sections = append(sections, "High semantic similarity between claim and findings.")
	case sim.SimilarityScore >= 0.6:
		sections = append(sections, "Moderate semantic similarity detected.")
	default:
		sections = append(sections, "Low semantic similarity with document content.")
	}

	switch stanceResult.Stance {
	case model.StanceSupports:
		sections = append(sections, "Text analysis indicates supportive stance.")
	case model.StanceContradicts:
		sections = append(sections, "Text analysis indicates contradictory stance.")
	default:
		sections = append(sections, "Text analysis indicates neutral stance.")
	}

	sections = append(sections, fmt.Sprintf("Found %d relevant evidence passages.", len(sim.EvidenceSnippets)))

	return strings.Join(sections, " ")
}

// overclaimingAssessment flags user claims that reach further than the
// evidence: absolute language with imperfect similarity ranks above the
// weaker confidence and similarity cautions.
func overclaimingAssessment(userClaim string, similarity, confidence float64) string {
	lower := strings.ToLower(userClaim)
	hasAbsolute := false
	for _, term := range absoluteTerms {
		if strings.Contains(lower, term) {
			hasAbsolute = true
			break
		}
	}

	switch {
	case hasAbsolute && similarity < 0.7:
		return "Caution: Your claim uses absolute language that may not be fully supported by the evidence."
	case confidence < 0.5:
		return "The evidence provides limited support for strong claims in this area."
	case similarity < 0.4:
		return "Your specific claim differs substantially from the study's findings."
	default:
		return "No significant overclaiming detected based on available evidence."
	}
}
