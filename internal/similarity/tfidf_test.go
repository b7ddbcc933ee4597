package similarity

import (
	"fmt"
	"testing"
)

func TestNgrams_StopwordsRemoved(t *testing.T) {
	terms := ngrams("the exercise reduces the risk")
	for _, term := range terms {
		if term == "the" {
			t.Error("stopword survived tokenization")
		}
	}

	found := map[string]bool{}
	for _, term := range terms {
		found[term] = true
	}
	for _, want := range []string{"exercise", "reduces", "risk", "exercise reduces", "reduces risk"} {
		if !found[want] {
			t.Errorf("expected term %q in %v", want, terms)
		}
	}
}

func TestFitTFIDF_EmptyVocabulary(t *testing.T) {
	if _, err := fitTFIDF([]string{"the a an", "!!!"}); err == nil {
		t.Error("expected empty-vocabulary error for stopword-only corpus")
	}
}

func TestTFIDF_SelfSimilarityIsOne(t *testing.T) {
	docs := []string{
		"exercise reduces heart disease risk",
		"meditation improves mental health",
	}
	v, err := fitTFIDF(docs)
	if err != nil {
		t.Fatalf("fit: %v", err)
	}

	vec := v.transform(docs[0])
	sim := cosine(vec, vec)
	if sim < 0.999999 || sim > 1.000001 {
		t.Errorf("self similarity = %v, want 1.0", sim)
	}
}

func TestTFIDF_SharedTermsScoreHigherThanDisjoint(t *testing.T) {
	claim := "exercise reduces heart disease risk"
	related := "physical activity reduces heart disease risk"
	unrelated := "meditation improves mental health outcomes"

	v, err := fitTFIDF([]string{claim, related, unrelated})
	if err != nil {
		t.Fatalf("fit: %v", err)
	}

	claimVec := v.transform(claim)
	simRelated := cosine(claimVec, v.transform(related))
	simUnrelated := cosine(claimVec, v.transform(unrelated))

	if simRelated <= simUnrelated {
		t.Errorf("related %v should exceed unrelated %v", simRelated, simUnrelated)
	}
	if simUnrelated != 0.0 {
		t.Errorf("disjoint documents should score 0, got %v", simUnrelated)
	}
}

func TestFitTFIDF_Deterministic(t *testing.T) {
	// The vocabulary cap ordering must not depend on map iteration
	docs := make([]string, 0, 30)
	for i := 0; i < 30; i++ {
		docs = append(docs, fmt.Sprintf("term%d appears alongside shared vocabulary entry %d", i, i%3))
	}

	v1, err := fitTFIDF(docs)
	if err != nil {
		t.Fatalf("fit: %v", err)
	}
	v2, err := fitTFIDF(docs)
	if err != nil {
		t.Fatalf("refit: %v", err)
	}

	for term, idx := range v1.vocab {
		if v2.vocab[term] != idx {
			t.Fatalf("vocabulary order differs for %q: %d vs %d", term, idx, v2.vocab[term])
		}
	}
	for i := range v1.idf {
		if v1.idf[i] != v2.idf[i] {
			t.Fatalf("idf %d differs: %v vs %v", i, v1.idf[i], v2.idf[i])
		}
	}
}
