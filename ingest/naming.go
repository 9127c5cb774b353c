package ingest

import (
	"errors"
	"fmt"
	"path"
	"strings"
	"unicode"

	slug "github.com/goliatone/go-slug"
)

// ErrBadFileName marks remote file names that lack the numeric ordering
// prefix, e.g. `01_hello_world.md` or `02-another-post.txt`.
var ErrBadFileName = errors.New("ingest: file name does not match naming convention")

// SlugAndTitle derives the post slug and display title from a remote file
// name. Names carry a numeric ordering prefix, separated by "_" or "-",
// that is stripped from both, as is any file extension:
// "01_hello_world.md" yields slug "hello-world" and title "Hello World".
func SlugAndTitle(fileName string) (string, string, error) {
	base := strings.TrimSpace(fileName)
	if ext := path.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	if base == "" {
		return "", "", fmt.Errorf("%w: %q", ErrBadFileName, fileName)
	}

	sep := strings.IndexAny(base, "_-")
	if sep <= 0 || !isNumeric(base[:sep]) {
		return "", "", fmt.Errorf("%w: %q", ErrBadFileName, fileName)
	}
	rest := base[sep+1:]
	if strings.TrimSpace(rest) == "" {
		return "", "", fmt.Errorf("%w: %q", ErrBadFileName, fileName)
	}

	words := strings.FieldsFunc(rest, func(r rune) bool {
		return r == '_' || r == '-' || unicode.IsSpace(r)
	})
	if len(words) == 0 {
		return "", "", fmt.Errorf("%w: %q", ErrBadFileName, fileName)
	}

	postSlug, err := slug.Normalize(strings.Join(words, " "))
	if err != nil {
		return "", "", fmt.Errorf("%w: %q", ErrBadFileName, fileName)
	}

	return postSlug, titleCase(words), nil
}

// SlugFromTitle normalizes a metadata title into a slug.
func SlugFromTitle(title string) (string, error) {
	return slug.Normalize(title)
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func titleCase(words []string) string {
	out := make([]string, len(words))
	for i, word := range words {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		out[i] = string(runes)
	}
	return strings.Join(out, " ")
}
