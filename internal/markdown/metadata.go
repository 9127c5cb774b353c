package markdown

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingMetadata marks documents whose leading metadata block lacks one
// or more required fields.
var ErrMissingMetadata = errors.New("markdown: missing required metadata fields")

// requiredFields fixes the reporting order for missing-field errors.
var requiredFields = []string{fieldTitle, fieldCategories, fieldMetaDescription, fieldKeywords}

const (
	fieldTitle           = "title"
	fieldCategories      = "categories"
	fieldMetaDescription = "meta description"
	fieldKeywords        = "keywords"
)

// Metadata holds the parsed front block of a source document. Unrecognized
// keys are retained in Extra but ignored by the pipeline.
type Metadata struct {
	Title           string
	Categories      []string
	MetaDescription string
	Keywords        []string
	Extra           map[string]string
}

// ValidationError reports the required metadata fields a document failed to
// provide, in a fixed deterministic order.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("Missing required metadata fields: %s", strings.Join(e.Missing, ", "))
}

func (e *ValidationError) Unwrap() error {
	return ErrMissingMetadata
}

// ExtractMetadata parses the `Key: value` block at the top of raw, up to the
// first blank line, and returns the parsed metadata plus the remaining body.
//
// Keys are case-insensitive and trimmed; when a key repeats, the last
// occurrence wins. Lines that do not match `key: value` are skipped without
// halting the parse, but they also never resolve a required field. The body
// is returned unmodified except for BOM removal.
func ExtractMetadata(raw string) (Metadata, string, error) {
	raw = strings.TrimPrefix(raw, "\ufeff")

	head, body := splitMetadataBlock(raw)

	fields := map[string]string{}
	for _, line := range strings.Split(head, "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		if key == "" {
			continue
		}
		fields[key] = strings.TrimSpace(value)
	}

	meta := Metadata{
		Title:           fields[fieldTitle],
		MetaDescription: fields[fieldMetaDescription],
		Extra:           map[string]string{},
	}
	if value, ok := fields[fieldCategories]; ok {
		meta.Categories = splitList(value)
	}
	if value, ok := fields[fieldKeywords]; ok {
		meta.Keywords = []string{}
		meta.Keywords = append(meta.Keywords, splitList(value)...)
	}
	for key, value := range fields {
		switch key {
		case fieldTitle, fieldCategories, fieldMetaDescription, fieldKeywords:
		default:
			meta.Extra[key] = value
		}
	}

	if missing := missingFields(fields, meta); len(missing) > 0 {
		return Metadata{}, "", &ValidationError{Missing: missing}
	}

	return meta, body, nil
}

// splitMetadataBlock separates the leading metadata lines from the document
// body at the first blank line. Without a blank line the whole document is
// treated as metadata, which surfaces as missing required fields downstream.
// Blank-line detection tolerates CRLF endings; the body keeps whatever line
// endings the source document used.
func splitMetadataBlock(raw string) (head, body string) {
	lines := strings.Split(raw, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			return strings.Join(lines[:i], "\n"), strings.Join(lines[i+1:], "\n")
		}
	}
	return raw, ""
}

func missingFields(fields map[string]string, meta Metadata) []string {
	var missing []string
	for _, name := range requiredFields {
		switch name {
		case fieldCategories:
			// An empty categories value counts as missing: every stored post
			// carries at least one category.
			if len(meta.Categories) == 0 {
				missing = append(missing, name)
			}
		case fieldKeywords:
			// Keywords may be an empty list, but the line must be present.
			if _, ok := fields[fieldKeywords]; !ok {
				missing = append(missing, name)
			}
		default:
			if strings.TrimSpace(fields[name]) == "" {
				missing = append(missing, name)
			}
		}
	}
	return missing
}

// ExtractCategories handles the legacy single-header document layout where
// the first line is `Categories: ...` followed by a blank line and the body.
// It returns the category list and the remaining content with leading
// whitespace removed.
func ExtractCategories(raw string) ([]string, string, error) {
	raw = strings.TrimPrefix(raw, "\ufeff")
	normalized := strings.ReplaceAll(raw, "\r\n", "\n")

	first, rest, ok := strings.Cut(normalized, "\n")
	if !ok {
		return nil, "", errors.New("markdown: document must start with 'Categories:' followed by a newline")
	}
	if !strings.HasPrefix(strings.TrimSpace(first), "Categories:") {
		return nil, "", errors.New("markdown: first line must start with 'Categories:'")
	}

	value := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(first), "Categories:"))
	return splitList(value), strings.TrimLeft(rest, " \t\n"), nil
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
