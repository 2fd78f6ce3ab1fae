// ABOUTME: TextChunker splits page text into overlapping fixed-size windows
// ABOUTME: Cuts prefer paragraph, line, sentence then word boundaries before a hard cut
package core

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/harper/race-engineer/internal/models"
)

const (
	// DefaultChunkSize is the maximum chunk length in characters
	DefaultChunkSize = 1000
	// DefaultChunkOverlap is the number of characters shared by consecutive chunks
	DefaultChunkOverlap = 200
)

// Separators lists cut points in priority order; a hard cut is the final fallback
var Separators = []string{"\n\n", "\n", ". ", " "}

// TextChunker splits text into windows of at most maxLen runes.
// Consecutive windows of one page overlap by exactly overlap runes.
type TextChunker struct {
	maxLen  int
	overlap int
	seps    [][]rune
}

// NewTextChunker creates a chunker; overlap must be smaller than maxLen
func NewTextChunker(maxLen, overlap int) (*TextChunker, error) {
	if maxLen <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", maxLen)
	}
	if overlap < 0 || overlap >= maxLen {
		return nil, fmt.Errorf("chunk overlap must be in [0, %d), got %d", maxLen, overlap)
	}

	seps := make([][]rune, len(Separators))
	for i, s := range Separators {
		seps[i] = []rune(s)
	}
	return &TextChunker{maxLen: maxLen, overlap: overlap, seps: seps}, nil
}

// MaxLen returns the configured maximum chunk length
func (tc *TextChunker) MaxLen() int { return tc.maxLen }

// Overlap returns the configured overlap
func (tc *TextChunker) Overlap() int { return tc.overlap }

// SplitPages chunks every page in order, numbering chunks by output position
func (tc *TextChunker) SplitPages(pages []models.Page) ([]models.Chunk, error) {
	var chunks []models.Chunk

	for _, page := range pages {
		if !utf8.ValidString(page.Text) {
			return nil, fmt.Errorf("%w: page %d", ErrContent, page.Number)
		}
		if strings.TrimSpace(page.Text) == "" {
			continue
		}

		for _, w := range tc.windows([]rune(page.Text)) {
			chunks = append(chunks, models.Chunk{
				Position: len(chunks),
				Page:     page.Number,
				Offset:   w.start,
				Text:     w.text,
			})
		}
	}

	return chunks, nil
}

// Split chunks a single text
func (tc *TextChunker) Split(text string) []string {
	if text == "" {
		return nil
	}
	ws := tc.windows([]rune(text))
	out := make([]string, len(ws))
	for i, w := range ws {
		out[i] = w.text
	}
	return out
}

type window struct {
	start int
	text  string
}

func (tc *TextChunker) windows(runes []rune) []window {
	var out []window
	start := 0

	for {
		if len(runes)-start <= tc.maxLen {
			out = append(out, window{start: start, text: string(runes[start:])})
			return out
		}

		end := start + tc.cut(runes[start:start+tc.maxLen])
		out = append(out, window{start: start, text: string(runes[start:end])})

		// cut guarantees end-start > overlap, so start always advances
		start = end - tc.overlap
	}
}

// cut returns the length of the next chunk taken from a full window
func (tc *TextChunker) cut(w []rune) int {
	minEnd := tc.overlap + 1
	if half := tc.maxLen / 2; half > minEnd {
		minEnd = half
	}

	for _, sep := range tc.seps {
		if end := lastBoundary(w, sep, minEnd); end > 0 {
			return end
		}
	}
	return len(w)
}

// lastBoundary finds the last occurrence of sep in w ending at or after minEnd.
// It returns the index just past the separator, or -1.
func lastBoundary(w, sep []rune, minEnd int) int {
	for i := len(w) - len(sep); i >= 0; i-- {
		end := i + len(sep)
		if end < minEnd {
			return -1
		}
		if runesEqual(w[i:end], sep) {
			return end
		}
	}
	return -1
}

func runesEqual(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
