package similarity

import (
	"regexp"
	"strings"
)

var (
	whitespaceRE  = regexp.MustCompile(`\s+`)
	bracketCiteRE = regexp.MustCompile(`\[[^\]]*\]`)
	parenYearRE   = regexp.MustCompile(`\([^)]*\d{4}[^)]*\)`)
	sentenceEndRE = regexp.MustCompile(`[.!?]+`)
	nonAlphaNumRE = regexp.MustCompile(`[^a-z0-9]+`)
)

// Preprocess normalizes text for similarity scoring: collapses whitespace and
// strips bracketed citation markers and parenthetical author-year citations.
func Preprocess(text string) string {
	text = bracketCiteRE.ReplaceAllString(text, "")
	text = parenYearRE.ReplaceAllString(text, "")
	return whitespaceRE.ReplaceAllString(strings.TrimSpace(text), " ")
}

// SplitSentences splits text on sentence terminators, discarding fragments of
// 10 characters or fewer.
func SplitSentences(text string) []string {
	parts := sentenceEndRE.Split(text, -1)
	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if len(p) > 10 {
			sentences = append(sentences, p)
		}
	}
	return sentences
}

// tokenize lowercases and splits text into alphanumeric tokens
func tokenize(text string) []string {
	fields := nonAlphaNumRE.Split(strings.ToLower(text), -1)
	tokens := fields[:0]
	for _, f := range fields {
		if f != "" {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// wordSet builds the set of lowercase words for overlap comparison
func wordSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ToLower(text)) {
		set[w] = struct{}{}
	}
	return set
}

// Jaccard computes word-set overlap between two texts. This is the final
// fallback when neither the embedding model nor TF-IDF is usable.
func Jaccard(a, b string) float64 {
	setA := wordSet(a)
	setB := wordSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0.0
	}

	intersection := 0
	for w := range setA {
		if _, ok := setB[w]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0.0
	}
	return float64(intersection) / float64(union)
}

// Clamp bounds a score to [0,1]; every combined score passes through this
// before leaving the package.
func Clamp(score float64) float64 {
	if score < 0.0 {
		return 0.0
	}
	if score > 1.0 {
		return 1.0
	}
	return score
}
