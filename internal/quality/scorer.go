package quality

import (
	"regexp"
	"strconv"

	"github.com/veritium/veritium/internal/model"
)

// Criterion weights; they sum to 1.0.
const (
	weightSampleSize       = 0.15
	weightMethodology      = 0.25
	weightStatisticalRigor = 0.20
	weightPeerReview       = 0.15
	weightReproducibility  = 0.10
	weightTransparency     = 0.15
)

// Indicator vocabularies are static configuration tables. Matching is
// whole-word and case-insensitive.
var (
	methodologyIndicators = []string{
		"randomized", "random assignment", "control group", "placebo",
		"double blind", "single blind", "systematic", "meta-analysis",
	}

	highQualityStudyTypes = []string{
		"randomized controlled trial", "rct", "systematic review",
		"meta-analysis", "longitudinal study", "cohort study",
	}

	statisticalIndicators = []string{
		"confidence interval", "significance test", "p-value",
		"statistical power", "effect size", "regression",
	}

	statisticalTests = []string{
		"t-test", "anova", "chi-square", "regression", "correlation",
		"mann-whitney", "kruskal-wallis", "wilcoxon",
	}

	reproducibilityIndicators = []string{
		"data availability", "code availability", "replication",
		"supplementary material", "methodology section",
	}

	reproducibilityElements = []string{
		"github", "repository", "supplementary", "appendix", "raw data",
		"analysis code", "protocol",
	}

	transparencyIndicators = []string{
		"limitation", "conflict of interest", "funding",
		"author contribution", "acknowledgment",
	}

	transparencyElements = []string{
		"ethical approval", "institutional review board", "irb", "consent",
		"ethics committee", "declaration",
	}
)

// Sample size threshold ladder
const (
	sampleExcellent = 1000
	sampleGood      = 100
	sampleFair      = 30
	samplePoor      = 10

	// noSampleScore is the floor when no sample size is mentioned at all
	noSampleScore = 0.1
)

var (
	sampleSizePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)n\s*=\s*(\d+)`),
		regexp.MustCompile(`(?i)sample size\s*(?:of|was|is)?\s*(\d+)`),
		regexp.MustCompile(`(?i)(\d+)\s*participants`),
		regexp.MustCompile(`(?i)(\d+)\s*subjects`),
		regexp.MustCompile(`(?i)study\s*included\s*(\d+)`),
	}

	pValueRE     = regexp.MustCompile(`(?i)p\s*[<>=]\s*(0\.\d+)`)
	effectSizeRE = regexp.MustCompile(`(?i)(?:cohen|effect size|eta|r\s*=)`)
	journalRE    = regexp.MustCompile(`(?i)\b(?:journal|published in|doi)\b`)
	doiPatternRE = regexp.MustCompile(`(?i)doi\s*:\s*10\.\d+`)
	doiValueRE   = regexp.MustCompile(`(?i)doi\s*:\s*(10\.\d+/\S+)`)
	parenYearRE  = regexp.MustCompile(`\(\d{4}\)`)
	methodsRE    = regexp.MustCompile(`(?i)\bmethods?\b`)
	limitsRE     = regexp.MustCompile(`(?i)\blimitations?\b`)
)

// wordBoundaryMatchers compiles whole-word patterns for an indicator list
func wordBoundaryMatchers(indicators []string) []*regexp.Regexp {
	matchers := make([]*regexp.Regexp, len(indicators))
	for i, ind := range indicators {
		matchers[i] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(ind) + `\b`)
	}
	return matchers
}

var (
	methodologyMatchers     = wordBoundaryMatchers(methodologyIndicators)
	studyTypeMatchers       = wordBoundaryMatchers(highQualityStudyTypes)
	statisticalMatchers     = wordBoundaryMatchers(statisticalIndicators)
	statTestMatchers        = wordBoundaryMatchers(statisticalTests)
	reproducibilityMatchers = wordBoundaryMatchers(append(append([]string{}, reproducibilityIndicators...), reproducibilityElements...))
	transparencyMatchers    = wordBoundaryMatchers(append(append([]string{}, transparencyIndicators...), transparencyElements...))
)

// Scorer rates a document's methodological rigor from textual indicators.
// It is a proxy for rigor, not a peer-review replacement.
type Scorer struct{}

// NewScorer creates a quality scorer
func NewScorer() *Scorer {
	return &Scorer{}
}

// Score computes the weighted overall quality score, clamped to [0,1]
func (s *Scorer) Score(text string) float64 {
	return s.Breakdown(text).Overall
}

// Breakdown computes all six criterion scores plus the weighted overall
func (s *Scorer) Breakdown(text string) model.QualityBreakdown {
	b := model.QualityBreakdown{
		SampleSize:       s.assessSampleSize(text),
		Methodology:      s.assessMethodology(text),
		StatisticalRigor: s.assessStatisticalRigor(text),
		PeerReview:       s.assessPeerReview(text),
		Reproducibility:  s.assessReproducibility(text),
		Transparency:     s.assessTransparency(text),
	}

	total := b.SampleSize*weightSampleSize +
		b.Methodology*weightMethodology +
		b.StatisticalRigor*weightStatisticalRigor +
		b.PeerReview*weightPeerReview +
		b.Reproducibility*weightReproducibility +
		b.Transparency*weightTransparency

	b.Overall = clamp(total)
	return b
}

// DetailedAssessment pairs the breakdown with the raw evidence behind it,
// for explanation generation.
func (s *Scorer) DetailedAssessment(text string) model.QualityAssessment {
	sizes := extractSampleSizes(text)
	maxSize := 0
	for _, n := range sizes {
		if n > maxSize {
			maxSize = n
		}
	}

	var methodologyFound []string
	for i, m := range methodologyMatchers {
		if m.MatchString(text) {
			methodologyFound = append(methodologyFound, methodologyIndicators[i])
		}
	}

	var pValues []string
	for _, match := range pValueRE.FindAllStringSubmatch(text, -1) {
		pValues = append(pValues, match[1])
	}

	doi := ""
	if match := doiValueRE.FindStringSubmatch(text); match != nil {
		doi = match[1]
	}

	return model.QualityAssessment{
		Breakdown: s.Breakdown(text),
		Details: model.QualityDetails{
			SampleSizesFound:      sizes,
			MaxSampleSize:         maxSize,
			MethodologyIndicators: methodologyFound,
			PValuesFound:          pValues,
			DOIFound:              doi,
			HasMethodsSection:     methodsRE.MatchString(text),
			MentionsLimitations:   limitsRE.MatchString(text),
		},
	}
}

// assessSampleSize maps the largest reported sample size through the
// threshold ladder. No mention at all scores the 0.1 floor.
func (s *Scorer) assessSampleSize(text string) float64 {
	sizes := extractSampleSizes(text)
	if len(sizes) == 0 {
		return noSampleScore
	}

	maxSize := 0
	for _, n := range sizes {
		if n > maxSize {
			maxSize = n
		}
	}

	switch {
	case maxSize >= sampleExcellent:
		return 1.0
	case maxSize >= sampleGood:
		return 0.8
	case maxSize >= sampleFair:
		return 0.6
	case maxSize >= samplePoor:
		return 0.4
	default:
		return 0.2
	}
}

// extractSampleSizes pulls integers from sample-size patterns, keeping only
// plausible study sizes.
func extractSampleSizes(text string) []int {
	var sizes []int
	for _, pattern := range sampleSizePatterns {
		for _, match := range pattern.FindAllStringSubmatch(text, -1) {
			n, err := strconv.Atoi(match[1])
			if err != nil {
				continue
			}
			if n >= 5 && n <= 1_000_000 {
				sizes = append(sizes, n)
			}
		}
	}
	return sizes
}

// assessMethodology counts indicator hits, with a +2 bonus per named
// high-quality study type. Normalized by indicators plus 4 bonus points.
func (s *Scorer) assessMethodology(text string) float64 {
	found := 0
	for _, m := range methodologyMatchers {
		if m.MatchString(text) {
			found++
		}
	}
	for _, m := range studyTypeMatchers {
		if m.MatchString(text) {
			found += 2
		}
	}

	maxPossible := len(methodologyIndicators) + 4
	return clamp(float64(found) / float64(maxPossible))
}

// assessStatisticalRigor counts rigor vocabulary, named tests, a p-value
// pattern, and an effect-size mention; normalized by total possible hits.
func (s *Scorer) assessStatisticalRigor(text string) float64 {
	found := 0
	for _, m := range statisticalMatchers {
		if m.MatchString(text) {
			found++
		}
	}
	for _, m := range statTestMatchers {
		if m.MatchString(text) {
			found++
		}
	}
	if pValueRE.MatchString(text) {
		found++
	}
	if effectSizeRE.MatchString(text) {
		found++
	}

	maxPossible := len(statisticalIndicators) + len(statisticalTests) + 2
	return clamp(float64(found) / float64(maxPossible))
}

// assessPeerReview is additive: journal/DOI mention, a DOI pattern, and a
// parenthetical publication year.
func (s *Scorer) assessPeerReview(text string) float64 {
	score := 0.0
	if journalRE.MatchString(text) {
		score += 0.5
	}
	if doiPatternRE.MatchString(text) {
		score += 0.3
	}
	if parenYearRE.MatchString(text) {
		score += 0.2
	}
	return clamp(score)
}

func (s *Scorer) assessReproducibility(text string) float64 {
	found := 0
	for _, m := range reproducibilityMatchers {
		if m.MatchString(text) {
			found++
		}
	}
	maxPossible := len(reproducibilityIndicators) + len(reproducibilityElements)
	return clamp(float64(found) / float64(maxPossible))
}

func (s *Scorer) assessTransparency(text string) float64 {
	found := 0
	for _, m := range transparencyMatchers {
		if m.MatchString(text) {
			found++
		}
	}
	maxPossible := len(transparencyIndicators) + len(transparencyElements)
	return clamp(float64(found) / float64(maxPossible))
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
