// ABOUTME: Tests for Chunk and Document helpers
// ABOUTME: Verifies rune-based length and page counting
package models

import "testing"

func TestChunk_Len(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"pit lane", 8},
		{"Pérez", 5},
	}

	for _, tt := range tests {
		if got := (Chunk{Text: tt.text}).Len(); got != tt.want {
			t.Errorf("Chunk{%q}.Len() = %d, want %d", tt.text, got, tt.want)
		}
	}
}

func TestDocument_PageCount(t *testing.T) {
	doc := &Document{Pages: []Page{{Number: 1, Text: "a"}, {Number: 2, Text: "b"}}}
	if doc.PageCount() != 2 {
		t.Errorf("PageCount() = %d, want 2", doc.PageCount())
	}
}
