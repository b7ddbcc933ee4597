package extract

import (
	"regexp"
	"sort"
	"strings"
)

const (
	maxClaims = 10

	// duplicateThreshold is the word-set Jaccard similarity above which two
	// claims are considered the same finding phrased twice.
	duplicateThreshold = 0.6

	minClaimLength = 20
	maxClaimLength = 500

	// A claim must carry at least this many words longer than three
	// characters to be substantive rather than boilerplate.
	minSubstantiveWords = 3
)

// conclusionPatterns capture the sentence tail after a conclusion lead-in.
var conclusionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?is)(?:we conclude|in conclusion|our findings suggest|results indicate|evidence suggests|we found that|this study shows|our results demonstrate|the data indicate|findings reveal)(.+?)(?:\.|;|\n)`),
	regexp.MustCompile(`(?is)(?:therefore|thus|hence|consequently|in summary|to summarize)(.+?)(?:\.|;|\n)`),
	regexp.MustCompile(`(?is)(?:our study provides evidence|we provide evidence|evidence supports|results support)(.+?)(?:\.|;|\n)`),
}

// claimPatterns capture hypotheses and proposals rather than conclusions
var claimPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?is)(?:we hypothesize|we propose|we suggest|we argue|we claim|our hypothesis|we predict)(.+?)(?:\.|;|\n)`),
	regexp.MustCompile(`(?is)(?:it is likely|it is probable|we expect|we anticipate)(.+?)(?:\.|;|\n)`),
	regexp.MustCompile(`(?is)(?:the present study|this research|our investigation|this work) (?:shows|demonstrates|reveals|indicates)(.+?)(?:\.|;|\n)`),
}

// Section boundaries. The trailing group consumes the section terminator; only
// the body capture is used.
var (
	abstractSectionRE   = regexp.MustCompile(`(?is)abstract\s*[:\-]?\s*(.+?)(?:\n\s*\n|\n\s*(?:introduction|keywords|1\.))`)
	conclusionSectionRE = regexp.MustCompile(`(?is)(?:conclusion|discussion|summary)\s*[:\-]?\s*(.+?)(?:\n\s*\n|\n\s*(?:references|acknowledgments|appendix))`)
)

var (
	sentenceSplitRE = regexp.MustCompile(`[.!?]+`)
	whitespaceRE    = regexp.MustCompile(`\s+`)
	leadingConjRE   = regexp.MustCompile(`(?i)^(?:that|which|who|where|when)\s+`)
	bracketedOnlyRE = regexp.MustCompile(`^\s*[\[\(].*[\]\)]\s*$`)
)

// claimIndicators mark sentences in abstract/conclusion sections that state a
// finding rather than describe procedure.
var claimIndicators = []string{
	"significant", "significantly", "correlation", "associated", "effect",
	"increased", "decreased", "higher", "lower", "improvement", "reduction",
	"evidence", "support", "indicate", "suggest", "demonstrate", "show",
	"result", "finding", "outcome", "impact", "influence", "relationship",
}

// Extractor mines declarative claims from scientific prose
type Extractor struct{}

// NewExtractor creates a claim extractor
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns up to maxClaims deduplicated claims, longest first.
// Longer claims tend to be the more substantive statements, so length is the
// ranking signal.
func (e *Extractor) Extract(text string) []string {
	var claims []string

	for _, pattern := range conclusionPatterns {
		claims = append(claims, e.matchClaims(pattern, text)...)
	}
	for _, pattern := range claimPatterns {
		claims = append(claims, e.matchClaims(pattern, text)...)
	}

	claims = append(claims, e.extractFromSections(text)...)

	unique := dedupeClaims(claims)

	sort.SliceStable(unique, func(i, j int) bool {
		return len(unique[i]) > len(unique[j])
	})

	if len(unique) > maxClaims {
		unique = unique[:maxClaims]
	}
	return unique
}

func (e *Extractor) matchClaims(pattern *regexp.Regexp, text string) []string {
	var claims []string
	for _, match := range pattern.FindAllStringSubmatch(text, -1) {
		claim := cleanClaim(match[1])
		if isValidClaim(claim) {
			claims = append(claims, claim)
		}
	}
	return claims
}

// extractFromSections mines the abstract and conclusion/discussion sections,
// where papers state their findings most directly.
func (e *Extractor) extractFromSections(text string) []string {
	var claims []string

	if m := abstractSectionRE.FindStringSubmatch(text); m != nil {
		claims = append(claims, sentencesWithClaims(m[1])...)
	}
	if m := conclusionSectionRE.FindStringSubmatch(text); m != nil {
		claims = append(claims, sentencesWithClaims(m[1])...)
	}
	return claims
}

// sentencesWithClaims keeps sentences long enough to be meaningful that
// contain at least one claim indicator.
func sentencesWithClaims(text string) []string {
	var claims []string
	for _, sentence := range sentenceSplitRE.Split(text, -1) {
		sentence = strings.TrimSpace(sentence)
		if len(sentence) <= minClaimLength {
			continue
		}
		lower := strings.ToLower(sentence)
		for _, indicator := range claimIndicators {
			if strings.Contains(lower, indicator) {
				claims = append(claims, sentence)
				break
			}
		}
	}
	return claims
}

func cleanClaim(claim string) string {
	claim = strings.TrimSpace(claim)
	claim = whitespaceRE.ReplaceAllString(claim, " ")
	claim = leadingConjRE.ReplaceAllString(claim, "")
	return claim
}

func isValidClaim(claim string) bool {
	if len(claim) < minClaimLength || len(claim) > maxClaimLength {
		return false
	}

	substantive := 0
	for _, word := range strings.Fields(claim) {
		if len(word) > 3 {
			substantive++
		}
	}
	if substantive < minSubstantiveWords {
		return false
	}

	// Reject claims that are only a citation or parenthetical
	return !bracketedOnlyRE.MatchString(claim)
}

// dedupeClaims drops claims whose word set nearly matches an earlier one
func dedupeClaims(claims []string) []string {
	var unique []string
	for _, claim := range claims {
		duplicate := false
		for _, existing := range unique {
			if wordJaccard(claim, existing) > duplicateThreshold {
				duplicate = true
				break
			}
		}
		if !duplicate {
			unique = append(unique, claim)
		}
	}
	return unique
}

func wordJaccard(a, b string) float64 {
	wordsA := wordSet(a)
	wordsB := wordSet(b)
	if len(wordsA) == 0 || len(wordsB) == 0 {
		return 0.0
	}

	intersection := 0
	for w := range wordsA {
		if wordsB[w] {
			intersection++
		}
	}
	union := len(wordsA) + len(wordsB) - intersection
	if union == 0 {
		return 0.0
	}
	return float64(intersection) / float64(union)
}

func wordSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(s)) {
		set[w] = true
	}
	return set
}
