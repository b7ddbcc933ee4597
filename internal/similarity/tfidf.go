package similarity

import (
	"errors"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// maxVocabulary caps the TF-IDF vocabulary at the most frequent terms
const maxVocabulary = 10000

// errEmptyVocabulary signals that no term survived tokenization; callers fall
// back to Jaccard word overlap.
var errEmptyVocabulary = errors.New("tfidf: empty vocabulary")

// tfidfVectorizer is fitted jointly over a small corpus (the user claim plus
// the candidate claims) and produces L2-normalized term-weight vectors.
// Unigrams and bigrams, English stopwords removed. Fitting is fully
// deterministic: vocabulary order is fixed by frequency then term.
type tfidfVectorizer struct {
	vocab map[string]int
	idf   []float64
}

// ngrams produces unigram and bigram terms from a stopword-filtered token stream
func ngrams(text string) []string {
	tokens := tokenize(text)
	filtered := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if !isStopword(t) {
			filtered = append(filtered, t)
		}
	}

	terms := make([]string, 0, 2*len(filtered))
	terms = append(terms, filtered...)
	for i := 0; i+1 < len(filtered); i++ {
		terms = append(terms, filtered[i]+" "+filtered[i+1])
	}
	return terms
}

// fitTFIDF builds a vectorizer over the documents
func fitTFIDF(docs []string) (*tfidfVectorizer, error) {
	docFreq := make(map[string]int)
	corpusFreq := make(map[string]int)

	for _, doc := range docs {
		seen := make(map[string]struct{})
		for _, term := range ngrams(doc) {
			corpusFreq[term]++
			if _, ok := seen[term]; !ok {
				seen[term] = struct{}{}
				docFreq[term]++
			}
		}
	}

	if len(corpusFreq) == 0 {
		return nil, errEmptyVocabulary
	}

	// Rank terms by corpus frequency, ties broken alphabetically, and keep
	// the top maxVocabulary. The total order keeps fitting deterministic.
	terms := make([]string, 0, len(corpusFreq))
	for term := range corpusFreq {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if corpusFreq[terms[i]] != corpusFreq[terms[j]] {
			return corpusFreq[terms[i]] > corpusFreq[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if len(terms) > maxVocabulary {
		terms = terms[:maxVocabulary]
	}

	v := &tfidfVectorizer{
		vocab: make(map[string]int, len(terms)),
		idf:   make([]float64, len(terms)),
	}
	n := float64(len(docs))
	for i, term := range terms {
		v.vocab[term] = i
		// Smoothed inverse document frequency
		v.idf[i] = math.Log((1+n)/(1+float64(docFreq[term]))) + 1
	}
	return v, nil
}

// transform produces the L2-normalized TF-IDF vector for a document
func (v *tfidfVectorizer) transform(doc string) []float64 {
	vec := make([]float64, len(v.idf))
	for _, term := range ngrams(doc) {
		if idx, ok := v.vocab[term]; ok {
			vec[idx]++
		}
	}
	for i := range vec {
		vec[i] *= v.idf[i]
	}

	norm := floats.Norm(vec, 2)
	if norm > 0 {
		floats.Scale(1/norm, vec)
	}
	return vec
}

// cosine computes cosine similarity between two float64 vectors
func cosine(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0.0
	}
	normA := floats.Norm(a, 2)
	normB := floats.Norm(b, 2)
	if normA == 0 || normB == 0 {
		return 0.0
	}
	return floats.Dot(a, b) / (normA * normB)
}

// cosine32 computes cosine similarity between two embedding vectors
func cosine32(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0.0
	}
	fa := make([]float64, len(a))
	fb := make([]float64, len(b))
	for i := range a {
		fa[i] = float64(a[i])
		fb[i] = float64(b[i])
	}
	return cosine(fa, fb)
}
