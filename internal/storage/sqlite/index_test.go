// ABOUTME: Tests for index entry and meta persistence
// ABOUTME: Verifies wholesale replacement, ordering and vector round trips
package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harper/race-engineer/internal/models"
)

func openStore(t *testing.T) *IndexStore {
	t.Helper()
	db, err := OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewIndexStore(db)
}

func testMeta(buildID string) models.IndexMeta {
	return models.IndexMeta{
		BuildID:        buildID,
		SourcePath:     "data/fia2026.pdf",
		SourceSHA256:   "abc123",
		EmbeddingModel: "text-embedding-3-small",
		Dimension:      3,
		ChunkSize:      1000,
		ChunkOverlap:   200,
		CreatedAt:      time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestIndexStore_EmptyMeta(t *testing.T) {
	store := openStore(t)

	meta, err := store.Meta(context.Background())
	require.NoError(t, err)
	assert.Nil(t, meta, "no build committed yet")
}

func TestIndexStore_ReplaceAndRead(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)

	entries := []models.IndexEntry{
		{Position: 1, Page: 2, Text: "second", Vector: []float64{0, 1, 0}},
		{Position: 0, Page: 1, Text: "first", Vector: []float64{1, 0, -0.5}},
	}
	require.NoError(t, store.Replace(ctx, testMeta("build-1"), entries))

	meta, err := store.Meta(ctx)
	require.NoError(t, err)
	require.NotNil(t, meta)
	assert.Equal(t, "build-1", meta.BuildID)
	assert.Equal(t, 2, meta.EntryCount)
	assert.Equal(t, 3, meta.Dimension)
	assert.Equal(t, "text-embedding-3-small", meta.EmbeddingModel)
	assert.True(t, meta.CreatedAt.Equal(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)))

	got, err := store.Entries(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 0, got[0].Position, "entries come back in position order")
	assert.Equal(t, "first", got[0].Text)
	assert.Equal(t, []float64{1, 0, -0.5}, got[0].Vector)
	assert.Equal(t, 2, got[1].Page)
}

func TestIndexStore_ReplaceIsWholesale(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)

	first := []models.IndexEntry{
		{Position: 0, Page: 1, Text: "a", Vector: []float64{1, 0, 0}},
		{Position: 1, Page: 1, Text: "b", Vector: []float64{0, 1, 0}},
		{Position: 2, Page: 2, Text: "c", Vector: []float64{0, 0, 1}},
	}
	require.NoError(t, store.Replace(ctx, testMeta("build-1"), first))

	second := []models.IndexEntry{
		{Position: 0, Page: 5, Text: "z", Vector: []float64{1, 1, 1}},
	}
	require.NoError(t, store.Replace(ctx, testMeta("build-2"), second))

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n, "rebuild must replace, never merge")

	meta, err := store.Meta(ctx)
	require.NoError(t, err)
	assert.Equal(t, "build-2", meta.BuildID)
	assert.Equal(t, 1, meta.EntryCount)
}

func TestIndexStore_ReplaceRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)

	require.NoError(t, store.Replace(ctx, testMeta("build-1"), []models.IndexEntry{
		{Position: 0, Page: 1, Text: "kept", Vector: []float64{1, 0, 0}},
	}))

	// duplicate positions violate the primary key
	err := store.Replace(ctx, testMeta("build-2"), []models.IndexEntry{
		{Position: 0, Page: 1, Text: "x", Vector: []float64{1, 0, 0}},
		{Position: 0, Page: 1, Text: "y", Vector: []float64{1, 0, 0}},
	})
	require.Error(t, err)

	meta, err := store.Meta(ctx)
	require.NoError(t, err)
	assert.Equal(t, "build-1", meta.BuildID)

	got, err := store.Entries(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "kept", got[0].Text)
}

func TestVectorBlobRoundTrip(t *testing.T) {
	vector := []float64{0.25, -1.5, 3.14159, 0}
	assert.Equal(t, vector, blobToVector(vectorToBlob(vector)))
	assert.Empty(t, blobToVector(nil))
}
