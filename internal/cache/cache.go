package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// EmbeddingKey generates a cache key for an embedding of text under a model.
// The model name is part of the key so switching models never serves stale vectors.
func EmbeddingKey(embeddingModel, text string) string {
	h := sha256.New()
	h.Write([]byte(embeddingModel))
	h.Write([]byte{0})
	h.Write([]byte(text))
	return "veritium:v1:" + hex.EncodeToString(h.Sum(nil))
}
