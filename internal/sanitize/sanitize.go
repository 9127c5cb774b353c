// Package sanitize normalizes untrusted HTML and form input before storage.
package sanitize

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	// scriptBlock removes script elements and their contents, including the
	// surrounding whitespace, before the allowlist pass runs.
	scriptBlock = regexp.MustCompile(`(?is)\s*<script\b[^>]*>.*?</script>\s*`)

	closingTagSpace = regexp.MustCompile(`\s+</`)
	betweenTagSpace = regexp.MustCompile(`>\s+<`)
	repeatedSpace   = regexp.MustCompile(`\s{2,}`)
)

// Sanitizer reduces stored article HTML to a fixed allowlist of structural
// elements and strips everything else, attributes included. A zero value is
// not usable; construct with New.
type Sanitizer struct {
	html  *bluemonday.Policy
	plain *bluemonday.Policy
}

// New builds a sanitizer allowing only p, b, i, ul and li elements in stored
// HTML. Script bodies are dropped rather than unwrapped.
func New() *Sanitizer {
	html := bluemonday.NewPolicy()
	html.AllowElements("p", "b", "i", "ul", "li")
	html.SkipElementsContent("script")

	return &Sanitizer{
		html:  html,
		plain: bluemonday.StrictPolicy(),
	}
}

// HTML sanitizes article markup for storage. Disallowed tags are removed
// with their text content preserved, script elements are removed entirely,
// and inter-tag whitespace is collapsed so the stored form is stable across
// formatting variations in the source.
func (s *Sanitizer) HTML(input string) string {
	if strings.TrimSpace(input) == "" {
		return ""
	}

	cleaned := scriptBlock.ReplaceAllString(input, "")
	cleaned = s.html.Sanitize(cleaned)

	cleaned = closingTagSpace.ReplaceAllString(cleaned, "</")
	cleaned = betweenTagSpace.ReplaceAllString(cleaned, "><")
	cleaned = repeatedSpace.ReplaceAllString(cleaned, " ")

	return strings.TrimSpace(cleaned)
}

// PlainFields strips all markup from free-form field values. Nil values
// become empty strings and other non-string values are coerced through fmt
// first. Used for contact-form style input where no HTML is ever legitimate.
func (s *Sanitizer) PlainFields(fields map[string]any) map[string]string {
	out := make(map[string]string, len(fields))
	for key, value := range fields {
		var text string
		switch v := value.(type) {
		case nil:
		case string:
			text = v
		default:
			text = fmt.Sprint(v)
		}
		text = scriptBlock.ReplaceAllString(text, "")
		out[key] = strings.TrimSpace(s.plain.Sanitize(text))
	}
	return out
}
