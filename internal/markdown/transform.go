package markdown

import (
	"strings"
)

const (
	// DefaultWordsPerMinute is the reading speed used when none is configured.
	DefaultWordsPerMinute = 200
	// DefaultPreviewLength bounds trimmed preview text.
	DefaultPreviewLength = 200

	ellipsis = "..."
)

// EstimateReadTime returns the estimated reading time in whole minutes for
// the supplied body, never less than one. Tokens are whitespace-delimited;
// markdown syntax is not stripped first, so formatting characters count only
// when they form standalone tokens.
func EstimateReadTime(body string, wordsPerMinute int) int {
	if wordsPerMinute <= 0 {
		wordsPerMinute = DefaultWordsPerMinute
	}
	words := len(strings.Fields(body))
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}

// Trim bounds text to maxLength characters for preview rendering. Input at or
// under the bound is returned unchanged; longer input is cut at the bound,
// right-trimmed, and suffixed with an ellipsis marker.
func Trim(text string, maxLength int) string {
	if maxLength <= 0 {
		maxLength = DefaultPreviewLength
	}
	if text == "" {
		return ""
	}
	runes := []rune(text)
	if len(runes) <= maxLength {
		return text
	}
	return strings.TrimRight(string(runes[:maxLength]), " \t\n") + ellipsis
}
