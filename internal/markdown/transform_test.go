package markdown

import (
	"strings"
	"testing"
)

func TestEstimateReadTime(t *testing.T) {
	tests := []struct {
		name string
		body string
		wpm  int
		want int
	}{
		{"empty body floors at one minute", "", 200, 1},
		{"single word", "word", 200, 1},
		{"exact multiple", strings.Repeat("word ", 400), 200, 2},
		{"rounds up", strings.Repeat("word ", 401), 200, 3},
		{"fifteen hundred words default speed", strings.Repeat("word ", 1500), 200, 8},
		{"custom speed", strings.Repeat("word ", 600), 300, 2},
		{"zero speed falls back to default", strings.Repeat("word ", 200), 0, 1},
		{"negative speed falls back to default", strings.Repeat("word ", 201), -5, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EstimateReadTime(tt.body, tt.wpm); got != tt.want {
				t.Errorf("EstimateReadTime() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestTrim(t *testing.T) {
	tests := []struct {
		name string
		text string
		max  int
		want string
	}{
		{"empty", "", 200, ""},
		{"short text unchanged", "hello world", 200, "hello world"},
		{"exact length unchanged", strings.Repeat("a", 10), 10, strings.Repeat("a", 10)},
		{"over length trimmed with ellipsis", strings.Repeat("a", 11), 10, strings.Repeat("a", 10) + "..."},
		{"trailing space stripped before ellipsis", "hello world foo", 12, "hello world..."},
		{"zero max falls back to default", strings.Repeat("a", 150), 0, strings.Repeat("a", 150)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Trim(tt.text, tt.max); got != tt.want {
				t.Errorf("Trim() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTrimMultibyte(t *testing.T) {
	text := strings.Repeat("é", 12)
	got := Trim(text, 10)
	want := strings.Repeat("é", 10) + "..."
	if got != want {
		t.Errorf("Trim() = %q, want %q", got, want)
	}
}
