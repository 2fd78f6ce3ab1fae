// ABOUTME: Persisted vector index with in-memory cosine similarity search
// ABOUTME: Loads entries from the SQLite index file and ranks them against a query vector
package storage

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/harper/race-engineer/internal/models"
	"github.com/harper/race-engineer/internal/storage/sqlite"
)

var (
	// ErrIndexAbsent means no committed build exists in the index directory
	ErrIndexAbsent = errors.New("index absent")
	// ErrIndexCorrupt means an index file exists but cannot be used
	ErrIndexCorrupt = errors.New("index corrupt")
	// ErrDimensionMismatch means a query vector does not match the index dimension
	ErrDimensionMismatch = errors.New("dimension mismatch")
)

// VectorIndex holds a loaded index build in memory
type VectorIndex struct {
	meta    models.IndexMeta
	entries []models.IndexEntry
}

// Exists reports whether an index file is present in dir
func Exists(dir string) bool {
	info, err := os.Stat(sqlite.PathIn(dir))
	return err == nil && !info.IsDir()
}

// OpenIndex loads the committed build in dir.
// A missing file or a file with no committed build yields ErrIndexAbsent.
func OpenIndex(ctx context.Context, dir string) (*VectorIndex, error) {
	path := sqlite.PathIn(dir)
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrIndexAbsent, path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIndexCorrupt, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrIndexCorrupt, path)
	}

	db, err := sqlite.Open(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIndexCorrupt, err)
	}
	defer func() { _ = db.Close() }()

	store := sqlite.NewIndexStore(db)
	meta, err := store.Meta(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: reading meta: %w", ErrIndexCorrupt, err)
	}
	if meta == nil {
		return nil, fmt.Errorf("%w: no committed build in %s", ErrIndexAbsent, path)
	}

	entries, err := store.Entries(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: reading entries: %w", ErrIndexCorrupt, err)
	}

	idx := &VectorIndex{meta: *meta, entries: entries}
	if err := idx.check(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIndexCorrupt, err)
	}
	return idx, nil
}

// BuildIndex writes a complete build to dir, replacing any previous one, and returns it loaded
func BuildIndex(ctx context.Context, dir string, meta models.IndexMeta, entries []models.IndexEntry) (*VectorIndex, error) {
	if len(entries) > 0 && meta.Dimension == 0 {
		meta.Dimension = len(entries[0].Vector)
	}
	meta.EntryCount = len(entries)

	idx := &VectorIndex{meta: meta, entries: entries}
	if err := idx.check(); err != nil {
		return nil, err
	}

	db, err := sqlite.Open(ctx, sqlite.PathIn(dir))
	if err != nil {
		return nil, err
	}
	defer func() { _ = db.Close() }()

	if err := sqlite.NewIndexStore(db).Replace(ctx, meta, entries); err != nil {
		return nil, fmt.Errorf("failed to persist index: %w", err)
	}
	return idx, nil
}

// RemoveIndex deletes the index file and its WAL sidecars from dir
func RemoveIndex(dir string) error {
	path := sqlite.PathIn(dir)
	for _, p := range []string{path, path + "-wal", path + "-shm"} {
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to remove %s: %w", p, err)
		}
	}
	return nil
}

// check verifies the entries agree with the meta row
func (idx *VectorIndex) check() error {
	if len(idx.entries) != idx.meta.EntryCount {
		return fmt.Errorf("meta records %d entries, found %d", idx.meta.EntryCount, len(idx.entries))
	}
	for i := range idx.entries {
		e := &idx.entries[i]
		if e.Position != i {
			return fmt.Errorf("entry at %d has position %d", i, e.Position)
		}
		if err := e.ValidateDimension(idx.meta.Dimension); err != nil {
			return err
		}
	}
	return nil
}

// Search returns up to k entries ranked by cosine similarity, highest first.
// Equal scores keep index order.
func (idx *VectorIndex) Search(ctx context.Context, query []float64, k int) ([]models.SearchResult, error) {
	if k <= 0 || len(idx.entries) == 0 {
		return []models.SearchResult{}, nil
	}
	if len(query) != idx.meta.Dimension {
		return nil, fmt.Errorf("%w: index has %d dimensions, query has %d", ErrDimensionMismatch, idx.meta.Dimension, len(query))
	}

	results := make([]models.SearchResult, 0, len(idx.entries))
	for i := range idx.entries {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		results = append(results, idx.entries[i].Result(CosineSimilarity(query, idx.entries[i].Vector)))
	}

	// Sort by similarity score (descending)
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}

// Len returns the number of entries in the index
func (idx *VectorIndex) Len() int {
	return len(idx.entries)
}

// Meta returns the build metadata
func (idx *VectorIndex) Meta() models.IndexMeta {
	return idx.meta
}

// CosineSimilarity calculates cosine similarity between two vectors
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0.0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}
