// ABOUTME: LRU cache in front of an embedder for repeated questions
// ABOUTME: Entries expire after a TTL and are keyed by model and text digest
package llm

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"

	"github.com/harper/race-engineer/internal/logging"
)

// Embedder is an embedding provider that knows its model
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
	ModelName() string
}

type batchEmbedder interface {
	EmbedBatch(ctx context.Context, texts []string) ([][]float64, error)
}

// CachedEmbedder serves repeated Embed calls from memory
type CachedEmbedder struct {
	next   Embedder
	cache  *expirable.LRU[string, []float64]
	logger *zap.Logger
}

// NewCachedEmbedder wraps next with an expiring LRU of the given size
func NewCachedEmbedder(next Embedder, size int, ttl time.Duration, logger *zap.Logger) *CachedEmbedder {
	if size <= 0 {
		size = 1
	}
	return &CachedEmbedder{
		next:   next,
		cache:  expirable.NewLRU[string, []float64](size, nil, ttl),
		logger: logging.OrNop(logger),
	}
}

// Embed returns a cached vector or asks the wrapped embedder
func (c *CachedEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	key := cacheKey(c.next.ModelName(), text)
	if cached, ok := c.cache.Get(key); ok {
		c.logger.Debug("embedding cache hit", zap.Int("chars", len(text)))
		return cloneVector(cached), nil
	}

	vec, err := c.next.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	if len(vec) > 0 {
		c.cache.Add(key, cloneVector(vec))
	}
	return vec, nil
}

// EmbedBatch bypasses the cache; index builds embed each chunk once
func (c *CachedEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float64, error) {
	if b, ok := c.next.(batchEmbedder); ok {
		return b.EmbedBatch(ctx, texts)
	}
	vectors := make([][]float64, len(texts))
	for i, text := range texts {
		vec, err := c.next.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		vectors[i] = vec
	}
	return vectors, nil
}

// ModelName returns the wrapped embedder's model
func (c *CachedEmbedder) ModelName() string {
	return c.next.ModelName()
}

// Len returns the number of cached vectors
func (c *CachedEmbedder) Len() int {
	return c.cache.Len()
}

func cacheKey(model, text string) string {
	sum := sha256.Sum256([]byte(model + "\x00" + text))
	return hex.EncodeToString(sum[:])
}

func cloneVector(values []float64) []float64 {
	if len(values) == 0 {
		return nil
	}
	clone := make([]float64, len(values))
	copy(clone, values)
	return clone
}
