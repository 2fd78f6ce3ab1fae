// ABOUTME: Tests for shared utility functions used by CLI commands
// ABOUTME: Verifies truncate, oneLine, formatTime and argument parsing

package commands

import (
	"testing"
	"time"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{"short string unchanged", "hello", 10, "hello"},
		{"exact length unchanged", "hello", 5, "hello"},
		{"long string truncated", "hello world", 8, "hello..."},
		{"very short maxLen", "hello", 2, "he"},
		{"maxLen equals 3", "hello", 3, "hel"},
		{"empty string", "", 5, ""},
		{"multibyte runes", "pénalité de grille", 8, "pénal..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncate(tt.input, tt.maxLen); got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
			}
		})
	}
}

func TestOneLine(t *testing.T) {
	got := oneLine("Article 27\n\n  Pit lane\tspeed  ")
	if got != "Article 27 Pit lane speed" {
		t.Errorf("oneLine() = %q", got)
	}
}

func TestFormatTime(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{"zero", time.Time{}, "unknown"},
		{"just now", now.Add(-10 * time.Second), "just now"},
		{"minutes", now.Add(-5 * time.Minute), "5m ago"},
		{"hours", now.Add(-3 * time.Hour), "3h ago"},
		{"days", now.Add(-2 * 24 * time.Hour), "2d ago"},
		{"old", time.Date(2025, 1, 15, 0, 0, 0, 0, time.Local), "2025-01-15"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatTime(tt.t); got != tt.want {
				t.Errorf("formatTime() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseArgs(t *testing.T) {
	if n, err := parseIntArg(" 12 ", "position"); err != nil || n != 12 {
		t.Errorf("parseIntArg() = %d, %v", n, err)
	}
	if _, err := parseIntArg("P1", "position"); err == nil {
		t.Error("parseIntArg() should reject non-numbers")
	}
	if f, err := parseFloatArg("2.5", "tire"); err != nil || f != 2.5 {
		t.Errorf("parseFloatArg() = %v, %v", f, err)
	}
	if _, err := parseFloatArg("fast", "tire"); err == nil {
		t.Error("parseFloatArg() should reject non-numbers")
	}
}
