package similarity

import (
	"context"
	"sort"
	"strings"

	"github.com/veritium/veritium/internal/model"
)

const (
	// minScoredSentenceLen is the shortest sentence worth scoring
	minScoredSentenceLen = 20

	// snippetRelevanceFloor drops sentences with negligible similarity
	snippetRelevanceFloor = 0.1

	// maxSnippets caps the ranked snippets returned by the locator
	maxSnippets = 10
)

// Locate scans the document for sentence-level passages relevant to the
// claim, ranked by similarity descending (stable on ties) and capped.
func (e *Engine) Locate(ctx context.Context, userClaim string, documentText string) []model.EvidenceSnippet {
	claim := Preprocess(userClaim)
	sentences := SplitSentences(documentText)

	type scored struct {
		index    int
		sentence string
	}
	candidates := make([]scored, 0, len(sentences))
	for i, s := range sentences {
		if len(s) >= minScoredSentenceLen {
			candidates = append(candidates, scored{index: i, sentence: s})
		}
	}
	if len(candidates) == 0 {
		return []model.EvidenceSnippet{}
	}

	texts := make([]string, len(candidates))
	for i, c := range candidates {
		texts[i] = c.sentence
	}
	similarities := e.sentenceSimilarities(ctx, claim, texts)

	snippets := make([]model.EvidenceSnippet, 0, len(candidates))
	for i, c := range candidates {
		if similarities[i] > snippetRelevanceFloor {
			snippets = append(snippets, model.EvidenceSnippet{
				Text:          c.sentence,
				Similarity:    similarities[i],
				SentenceIndex: c.index,
				WordCount:     len(strings.Fields(c.sentence)),
			})
		}
	}

	// Stable sort preserves document order among equal similarities
	sort.SliceStable(snippets, func(i, j int) bool {
		return snippets[i].Similarity > snippets[j].Similarity
	})

	if len(snippets) > maxSnippets {
		snippets = snippets[:maxSnippets]
	}
	return snippets
}

// sentenceSimilarities scores the claim against each sentence using the
// semantic signal when available, falling back to word overlap per sentence.
func (e *Engine) sentenceSimilarities(ctx context.Context, claim string, sentences []string) []float64 {
	if embedder := e.source.Embedder(); embedder != nil {
		texts := append([]string{claim}, sentences...)
		vectors, err := embedder.Embed(ctx, texts)
		if err == nil && len(vectors) == len(texts) {
			scores := make([]float64, len(sentences))
			for i := range sentences {
				scores[i] = Clamp(cosine32(vectors[0], vectors[i+1]))
			}
			return scores
		}
	}

	scores := make([]float64, len(sentences))
	for i, s := range sentences {
		scores[i] = Jaccard(claim, s)
	}
	return scores
}
