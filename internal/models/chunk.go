// ABOUTME: Chunk represents a bounded text window cut from a document page
// ABOUTME: Chunks are identified only by their position in a build's output sequence
package models

// Chunk is an overlapping text window with page provenance
type Chunk struct {
	Position int    `json:"position"`
	Page     int    `json:"page"`
	Offset   int    `json:"offset"` // rune offset inside the page text
	Text     string `json:"text"`
}

// Len returns the chunk length in runes
func (c Chunk) Len() int {
	return len([]rune(c.Text))
}
