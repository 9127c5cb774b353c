package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
)

// ParseOptions tunes the HTML rendering behaviour per invocation.
type ParseOptions struct {
	// Extensions selects goldmark extensions by name; empty means the
	// default technical-writing set (GFM, footnotes, definition lists).
	Extensions []string
	// HardWraps renders single newlines as <br> so author line breaks survive.
	HardWraps bool
	// SafeMode escapes raw HTML embedded in the source instead of passing
	// it through. The ingestion pipeline leaves this off and relies on the
	// sanitizer for the stored representation.
	SafeMode bool
}

// DefaultParseOptions returns the configuration used by the ingestion
// pipeline: GFM plus footnotes and definition lists, hard wraps on, raw HTML
// passed through to the sanitizer.
func DefaultParseOptions() ParseOptions {
	return ParseOptions{
		Extensions: []string{"gfm", "footnote", "definition"},
		HardWraps:  true,
	}
}

// GoldmarkParser renders Markdown into HTML using the goldmark engine. The
// parser is stateless; a single instance can be shared across batches without
// locking.
type GoldmarkParser struct {
	defaultOptions ParseOptions
}

// NewGoldmarkParser constructs a parser with the supplied defaults.
func NewGoldmarkParser(defaults ParseOptions) *GoldmarkParser {
	return &GoldmarkParser{defaultOptions: defaults}
}

// Parse renders markdown into HTML using the parser's default configuration.
// Empty or whitespace-only input yields an empty string.
func (p *GoldmarkParser) Parse(markdown []byte) ([]byte, error) {
	return p.ParseWithOptions(markdown, p.defaultOptions)
}

// ParseWithOptions renders markdown into HTML using the provided options.
func (p *GoldmarkParser) ParseWithOptions(markdown []byte, opts ParseOptions) ([]byte, error) {
	if len(bytes.TrimSpace(markdown)) == 0 {
		return []byte{}, nil
	}
	engine := newGoldmarkEngine(opts)
	var buf bytes.Buffer
	if err := engine.Convert(markdown, &buf); err != nil {
		return nil, fmt.Errorf("markdown parse: %w", err)
	}
	return buf.Bytes(), nil
}

func newGoldmarkEngine(opts ParseOptions) goldmark.Markdown {
	exts := collectExtensions(opts.Extensions)

	parserOptions := []parser.Option{
		parser.WithAutoHeadingID(),
	}

	rendererOptions := []renderer.Option{}
	if opts.HardWraps {
		rendererOptions = append(rendererOptions, html.WithHardWraps())
	}
	if !opts.SafeMode {
		rendererOptions = append(rendererOptions, html.WithUnsafe())
	}

	engineOptions := []goldmark.Option{
		goldmark.WithParserOptions(parserOptions...),
		goldmark.WithRendererOptions(rendererOptions...),
	}
	if len(exts) > 0 {
		engineOptions = append(engineOptions, goldmark.WithExtensions(exts...))
	}

	return goldmark.New(engineOptions...)
}

var extensionRegistry = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"tables":        extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"autolink":      extension.Linkify,
	"tasklist":      extension.TaskList,
	"definition":    extension.DefinitionList,
	"footnote":      extension.Footnote,
}

func collectExtensions(names []string) []goldmark.Extender {
	if len(names) == 0 {
		return []goldmark.Extender{
			extension.GFM,
			extension.Footnote,
			extension.DefinitionList,
		}
	}

	var extenders []goldmark.Extender
	seen := map[string]struct{}{}

	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		ext, ok := extensionRegistry[key]
		if !ok {
			continue
		}
		extenders = append(extenders, ext)
		seen[key] = struct{}{}
	}

	return extenders
}
