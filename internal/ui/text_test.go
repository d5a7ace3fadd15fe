package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateSimple(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{"short text unchanged", "hello", 10, "hello"},
		{"exact length unchanged", "hello", 5, "hello"},
		{"truncate with ellipsis", "hello world", 8, "hello..."},
		{"very short maxLen", "hello world", 3, "..."},
		{"empty string", "", 10, ""},
		{"unicode chars", "héllo wörld", 8, "héllo..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TruncateSimple(tt.input, tt.maxLen))
		})
	}
}

func TestFirstLine(t *testing.T) {
	assert.Equal(t, "Schedule maintenance.", FirstLine("\n  Schedule maintenance.  \nMore detail"))
	assert.Equal(t, "", FirstLine(" \n\t\n"))
}

func TestWrapText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth int
		want     string
	}{
		{"fits", "short line", 20, "short line"},
		{"wraps at words", "the quick brown fox", 10, "the quick\nbrown fox"},
		{"keeps line breaks", "a b\nc d", 3, "a b\nc d"},
		{"long word alone", "supercalifragilistic is long", 10, "supercalifragilistic\nis long"},
		{"zero width uses default", "x", 0, "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WrapText(tt.input, tt.maxWidth))
		})
	}
}
