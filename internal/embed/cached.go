package embed

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/veritium/veritium/internal/cache"
)

// CachedEmbedder caches vectors per (model, text) in a byte cache, so
// repeated assessments of the same claims and sentences skip the API.
type CachedEmbedder struct {
	inner Embedder
	store cache.Cache
}

// NewCachedEmbedder creates a caching decorator around an embedder
func NewCachedEmbedder(inner Embedder, store cache.Cache) *CachedEmbedder {
	return &CachedEmbedder{inner: inner, store: store}
}

// Model returns the inner embedder's model identifier
func (c *CachedEmbedder) Model() string {
	return c.inner.Model()
}

// Embed serves cached vectors where available and fetches the rest in one call
func (c *CachedEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))

	var missing []string
	var missingIdx []int
	for i, text := range texts {
		key := cache.EmbeddingKey(c.inner.Model(), text)
		if data, found := c.store.Get(key); found {
			if vec, err := decodeVector(data); err == nil {
				vectors[i] = vec
				continue
			}
			// Corrupt entry: drop it and refetch
			_ = c.store.Delete(key)
		}
		missing = append(missing, text)
		missingIdx = append(missingIdx, i)
	}

	if len(missing) == 0 {
		return vectors, nil
	}

	fetched, err := c.inner.Embed(ctx, missing)
	if err != nil {
		return nil, err
	}

	for j, vec := range fetched {
		i := missingIdx[j]
		vectors[i] = vec
		key := cache.EmbeddingKey(c.inner.Model(), missing[j])
		_ = c.store.Set(key, encodeVector(vec), 0)
	}
	return vectors, nil
}

func encodeVector(vec []float32) []byte {
	buf := make([]byte, 4*len(vec))
	for i, v := range vec {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

func decodeVector(data []byte) ([]float32, error) {
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("invalid vector encoding: %d bytes", len(data))
	}
	vec := make([]float32, len(data)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return vec, nil
}
