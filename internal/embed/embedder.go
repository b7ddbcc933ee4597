package embed

import (
	"context"
	"sync"

	"github.com/veritium/veritium/internal/cache"
	"github.com/veritium/veritium/internal/model"
)

// Embedder encodes texts into fixed-length dense vectors
type Embedder interface {
	// Embed returns one vector per input text, in input order.
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// Model returns the embedding model identifier
	Model() string
}

// Handle is the lazily-initialized shared embedding resource. It is safe for
// concurrent use: the underlying provider is constructed at most once, on
// first request, and treated as read-only thereafter. A disabled or failed
// provider yields a nil Embedder, which callers treat as "semantic signal
// unavailable" and degrade to the lexical path.
type Handle struct {
	cfg      model.EmbeddingConfig
	cacheCfg model.CacheConfig

	once     sync.Once
	embedder Embedder
}

// NewHandle creates a handle; no connection is made until Embedder is called
func NewHandle(cfg model.EmbeddingConfig, cacheCfg model.CacheConfig) *Handle {
	return &Handle{cfg: cfg, cacheCfg: cacheCfg}
}

// Embedder returns the shared embedder, initializing it on first call.
// Returns nil when embeddings are disabled or the provider cannot be built.
func (h *Handle) Embedder() Embedder {
	h.once.Do(func() {
		if h.cfg.Provider != "openai" || h.cfg.APIKey == "" {
			return
		}

		e := NewOpenAIEmbedder(h.cfg)

		if h.cacheCfg.Enabled {
			var store cache.Cache
			if h.cacheCfg.Dir != "" {
				store = cache.NewLayeredCache(h.cacheCfg.Dir, h.cacheCfg.TTL, h.cacheCfg.CleanupInterval)
			} else {
				store = cache.NewMemoryCache(h.cacheCfg.TTL, h.cacheCfg.CleanupInterval)
			}
			h.embedder = NewCachedEmbedder(e, store)
			return
		}
		h.embedder = e
	})
	return h.embedder
}
