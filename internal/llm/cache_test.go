// ABOUTME: Tests for the LRU embedding cache
// ABOUTME: Verifies hits skip the provider and cached vectors are not aliased
package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingEmbedder struct {
	calls int
	err   error
}

func (c *countingEmbedder) Embed(_ context.Context, text string) ([]float64, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return []float64{float64(len(text)), 1}, nil
}

func (c *countingEmbedder) ModelName() string { return "counting" }

func TestCachedEmbedder_Hit(t *testing.T) {
	next := &countingEmbedder{}
	cached := NewCachedEmbedder(next, 8, time.Minute, nil)
	ctx := context.Background()

	first, err := cached.Embed(ctx, "safety car")
	require.NoError(t, err)
	second, err := cached.Embed(ctx, "safety car")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, next.calls)
	assert.Equal(t, 1, cached.Len())

	_, err = cached.Embed(ctx, "virtual safety car")
	require.NoError(t, err)
	assert.Equal(t, 2, next.calls)
}

func TestCachedEmbedder_ReturnsCopies(t *testing.T) {
	cached := NewCachedEmbedder(&countingEmbedder{}, 8, time.Minute, nil)
	ctx := context.Background()

	vec, err := cached.Embed(ctx, "red flag")
	require.NoError(t, err)
	vec[0] = -1

	again, err := cached.Embed(ctx, "red flag")
	require.NoError(t, err)
	assert.Equal(t, float64(len("red flag")), again[0])
}

func TestCachedEmbedder_DoesNotCacheErrors(t *testing.T) {
	next := &countingEmbedder{err: errors.New("boom")}
	cached := NewCachedEmbedder(next, 8, time.Minute, nil)

	_, err := cached.Embed(context.Background(), "yellow flag")
	require.Error(t, err)
	assert.Equal(t, 0, cached.Len())
}

func TestCachedEmbedder_EmbedBatchBypassesCache(t *testing.T) {
	next := &countingEmbedder{}
	cached := NewCachedEmbedder(next, 8, time.Minute, nil)

	vectors, err := cached.EmbedBatch(context.Background(), []string{"a", "bb"})
	require.NoError(t, err)
	require.Len(t, vectors, 2)
	assert.Equal(t, float64(2), vectors[1][0])
	assert.Equal(t, 0, cached.Len())
	assert.Equal(t, "counting", cached.ModelName())
}

func TestCacheKeyIncludesModel(t *testing.T) {
	assert.NotEqual(t, cacheKey("a", "text"), cacheKey("b", "text"))
	assert.Equal(t, cacheKey("a", "text"), cacheKey("a", "text"))
}
