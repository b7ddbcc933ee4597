package similarity

import (
	"context"

	"github.com/veritium/veritium/internal/embed"
	"github.com/veritium/veritium/internal/model"
)

// Combination weights: the semantic signal dominates when available
const (
	semanticWeight = 0.7
	lexicalWeight  = 0.3
)

// snippetStorageLimit bounds the evidence snippets carried on a similarity result
const snippetStorageLimit = 5

// EmbedderSource supplies the shared embedder; a nil embedder means the
// semantic signal is unavailable and scoring degrades to the lexical path.
type EmbedderSource interface {
	Embedder() embed.Embedder
}

// Engine computes claim-to-candidate similarity from two independent signals:
// an embedding-based semantic signal and a TF-IDF lexical signal. Degradation
// is silent: semantic falls back to lexical, lexical falls back to word
// overlap. Scoring never returns an error.
type Engine struct {
	source EmbedderSource
}

// NewEngine creates a similarity engine backed by the shared embedder handle
func NewEngine(source EmbedderSource) *Engine {
	return &Engine{source: source}
}

// Score computes per-candidate combined similarity scores for a user claim.
// An empty candidate list yields best score 0.0 and best match index -1.
func (e *Engine) Score(ctx context.Context, userClaim string, candidates []string) model.SimilarityResult {
	claim := Preprocess(userClaim)
	cleaned := make([]string, len(candidates))
	for i, c := range candidates {
		cleaned[i] = Preprocess(c)
	}

	result := model.SimilarityResult{
		BestMatchIndex:   -1,
		AllScores:        []float64{},
		SemanticScores:   []float64{},
		LexicalScores:    []float64{},
		EvidenceSnippets: []model.EvidenceSnippet{},
	}
	if len(cleaned) == 0 {
		return result
	}

	lexical := e.lexicalScores(claim, cleaned)
	semantic := e.semanticScores(ctx, claim, cleaned, lexical)

	combined := make([]float64, len(cleaned))
	for i := range cleaned {
		combined[i] = Clamp(semanticWeight*semantic[i] + lexicalWeight*lexical[i])
	}

	// Stable argmax: ties keep the first-occurring index
	best := 0
	for i := 1; i < len(combined); i++ {
		if combined[i] > combined[best] {
			best = i
		}
	}

	result.AllScores = combined
	result.SemanticScores = semantic
	result.LexicalScores = lexical
	result.SimilarityScore = combined[best]
	result.BestMatchIndex = best
	result.BestMatchingClaim = candidates[best]
	return result
}

// Analyze runs candidate scoring and evidence location over the same
// (claim, document) pair, retaining the top snippets on the result.
func (e *Engine) Analyze(ctx context.Context, userClaim string, candidates []string, documentText string) model.SimilarityResult {
	result := e.Score(ctx, userClaim, candidates)

	snippets := e.Locate(ctx, userClaim, documentText)
	if len(snippets) > snippetStorageLimit {
		snippets = snippets[:snippetStorageLimit]
	}
	result.EvidenceSnippets = snippets
	return result
}

// semanticScores encodes the claim and candidates and scores by cosine
// similarity. When the embedding model is unavailable or fails, the semantic
// signal degrades to the lexical scores so the combination stays well-formed.
func (e *Engine) semanticScores(ctx context.Context, claim string, candidates []string, lexical []float64) []float64 {
	embedder := e.source.Embedder()
	if embedder == nil {
		return copyScores(lexical)
	}

	texts := append([]string{claim}, candidates...)
	vectors, err := embedder.Embed(ctx, texts)
	if err != nil || len(vectors) != len(texts) {
		return copyScores(lexical)
	}

	scores := make([]float64, len(candidates))
	for i := range candidates {
		scores[i] = cosine32(vectors[0], vectors[i+1])
	}
	return scores
}

// lexicalScores fits TF-IDF jointly over the claim and candidates. On
// vectorization failure (empty vocabulary) it falls back to Jaccard overlap.
func (e *Engine) lexicalScores(claim string, candidates []string) []float64 {
	vectorizer, err := fitTFIDF(append([]string{claim}, candidates...))
	if err != nil {
		scores := make([]float64, len(candidates))
		for i, c := range candidates {
			scores[i] = Jaccard(claim, c)
		}
		return scores
	}

	claimVec := vectorizer.transform(claim)
	scores := make([]float64, len(candidates))
	for i, c := range candidates {
		scores[i] = cosine(claimVec, vectorizer.transform(c))
	}
	return scores
}

func copyScores(scores []float64) []float64 {
	out := make([]float64, len(scores))
	copy(out, scores)
	return out
}
