// ABOUTME: Index models for the persisted regulations vector index
// ABOUTME: Defines IndexEntry, IndexMeta and SearchResult structures
package models

import (
	"fmt"
	"time"
)

// IndexEntry is one (vector, chunk text, metadata) row of the index
type IndexEntry struct {
	Position int       `json:"position"`
	Page     int       `json:"page"`
	Text     string    `json:"text"`
	Vector   []float64 `json:"vector,omitempty"`
}

// IndexMeta describes how and from what an index was built
type IndexMeta struct {
	BuildID        string    `json:"build_id"`
	SourcePath     string    `json:"source_path"`
	SourceSHA256   string    `json:"source_sha256"`
	EmbeddingModel string    `json:"embedding_model"`
	Dimension      int       `json:"dimension"`
	ChunkSize      int       `json:"chunk_size"`
	ChunkOverlap   int       `json:"chunk_overlap"`
	EntryCount     int       `json:"entry_count"`
	CreatedAt      time.Time `json:"created_at"`
}

// SearchResult is a matched entry with its cosine similarity to the query
type SearchResult struct {
	Position int     `json:"position"`
	Page     int     `json:"page"`
	Text     string  `json:"text"`
	Score    float64 `json:"score"`
}

// ValidateDimension checks that the entry vector has the expected length
func (e *IndexEntry) ValidateDimension(expected int) error {
	if len(e.Vector) == 0 {
		return fmt.Errorf("entry %d: vector cannot be empty", e.Position)
	}
	if len(e.Vector) != expected {
		return fmt.Errorf("entry %d: dimension mismatch: expected %d, got %d", e.Position, expected, len(e.Vector))
	}
	return nil
}

// Result strips the vector and attaches a similarity score
func (e *IndexEntry) Result(score float64) SearchResult {
	return SearchResult{
		Position: e.Position,
		Page:     e.Page,
		Text:     e.Text,
		Score:    score,
	}
}
