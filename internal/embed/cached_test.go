package embed

import (
	"context"
	"testing"
	"time"

	"github.com/veritium/veritium/internal/cache"
)

type fakeEmbedder struct {
	calls int
}

func (f *fakeEmbedder) Model() string { return "fake-model" }

func (f *fakeEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	f.calls++
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		// Deterministic vector derived from the text length
		vectors[i] = []float32{float32(len(text)), 1.0, -0.5}
	}
	return vectors, nil
}

func TestCachedEmbedder_HitSkipsInner(t *testing.T) {
	inner := &fakeEmbedder{}
	store := cache.NewMemoryCache(time.Minute, time.Minute)
	embedder := NewCachedEmbedder(inner, store)

	ctx := context.Background()
	texts := []string{"exercise reduces risk", "meditation improves outcomes"}

	first, err := embedder.Embed(ctx, texts)
	if err != nil {
		t.Fatalf("first embed: %v", err)
	}
	if inner.calls != 1 {
		t.Fatalf("expected 1 inner call, got %d", inner.calls)
	}

	second, err := embedder.Embed(ctx, texts)
	if err != nil {
		t.Fatalf("second embed: %v", err)
	}
	if inner.calls != 1 {
		t.Errorf("expected cache hit, inner called %d times", inner.calls)
	}

	for i := range first {
		if len(first[i]) != len(second[i]) {
			t.Fatalf("vector %d length changed across cache round-trip", i)
		}
		for j := range first[i] {
			if first[i][j] != second[i][j] {
				t.Errorf("vector %d[%d]: cached %v, original %v", i, j, second[i][j], first[i][j])
			}
		}
	}
}

func TestCachedEmbedder_PartialMiss(t *testing.T) {
	inner := &fakeEmbedder{}
	store := cache.NewMemoryCache(time.Minute, time.Minute)
	embedder := NewCachedEmbedder(inner, store)

	ctx := context.Background()
	if _, err := embedder.Embed(ctx, []string{"a claim"}); err != nil {
		t.Fatalf("seed embed: %v", err)
	}

	vectors, err := embedder.Embed(ctx, []string{"a claim", "a new sentence"})
	if err != nil {
		t.Fatalf("mixed embed: %v", err)
	}
	if len(vectors) != 2 {
		t.Fatalf("expected 2 vectors, got %d", len(vectors))
	}
	if vectors[0] == nil || vectors[1] == nil {
		t.Error("expected both cached and fetched vectors to be present")
	}
	if inner.calls != 2 {
		t.Errorf("expected 2 inner calls (one per miss batch), got %d", inner.calls)
	}
}

func TestVectorEncodingRoundTrip(t *testing.T) {
	vec := []float32{0.25, -1.5, 3.25, 0}
	decoded, err := decodeVector(encodeVector(vec))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(decoded) != len(vec) {
		t.Fatalf("expected %d values, got %d", len(vec), len(decoded))
	}
	for i := range vec {
		if decoded[i] != vec[i] {
			t.Errorf("value %d: expected %v, got %v", i, vec[i], decoded[i])
		}
	}
}

func TestDecodeVector_InvalidLength(t *testing.T) {
	if _, err := decodeVector([]byte{1, 2, 3}); err == nil {
		t.Error("expected error for truncated vector data")
	}
}

func TestHandle_DisabledProviderReturnsNil(t *testing.T) {
	h := NewHandle(modelEmbeddingConfig(""), modelCacheConfig())
	if h.Embedder() != nil {
		t.Error("expected nil embedder when provider is disabled")
	}
	// Second call goes through the same once guard
	if h.Embedder() != nil {
		t.Error("expected nil embedder on repeat call")
	}
}
