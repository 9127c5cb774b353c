package ingest

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-articles/drive"
	"github.com/goliatone/go-articles/internal/identity"
	"github.com/goliatone/go-articles/internal/logging"
	"github.com/goliatone/go-articles/internal/markdown"
	"github.com/goliatone/go-articles/internal/sanitize"
	"github.com/goliatone/go-articles/pkg/interfaces"
	"github.com/goliatone/go-articles/posts"
)

// ErrEmptyBatch marks ingestion requests that name no documents.
var ErrEmptyBatch = errors.New("ingest: batch contains no files")

var (
	errBlankFileID  = errors.New("ingest: file id is required")
	errEmptyContent = errors.New("ingest: document body is empty")
)

// Fixed per-item messages surfaced in batch results. They describe the
// failure to an operator reviewing the outcome, so they use the remote
// store's public name rather than internal error text.
const (
	msgFileNotFound     = "File not found on Google Drive"
	msgPermissionDenied = "Permission denied on Google Drive"
	msgEmptyContent     = "Document body is empty"
	msgUnexpected       = "Unexpected error occurred."
)

// Orchestrator runs document batches through the full pipeline: remote
// read, metadata extraction, markdown rendering, sanitization and storage.
type Orchestrator struct {
	store          drive.Store
	repo           posts.Repository
	parser         *markdown.GoldmarkParser
	sanitizer      *sanitize.Sanitizer
	wordsPerMinute int
	previewLength  int
	logger         interfaces.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithWordsPerMinute overrides the reading speed used for read-time
// estimates.
func WithWordsPerMinute(wpm int) Option {
	return func(o *Orchestrator) {
		if wpm > 0 {
			o.wordsPerMinute = wpm
		}
	}
}

// WithPreviewLength overrides the stored meta-description bound.
func WithPreviewLength(length int) Option {
	return func(o *Orchestrator) {
		if length > 0 {
			o.previewLength = length
		}
	}
}

// WithParser replaces the default markdown parser.
func WithParser(parser *markdown.GoldmarkParser) Option {
	return func(o *Orchestrator) {
		if parser != nil {
			o.parser = parser
		}
	}
}

// WithLogger attaches a logger to the orchestrator.
func WithLogger(logger interfaces.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// NewOrchestrator wires the pipeline over a remote store and a post
// repository.
func NewOrchestrator(store drive.Store, repo posts.Repository, opts ...Option) (*Orchestrator, error) {
	if store == nil {
		return nil, errors.New("ingest: remote store is required")
	}
	if repo == nil {
		return nil, errors.New("ingest: post repository is required")
	}

	o := &Orchestrator{
		store:          store,
		repo:           repo,
		parser:         markdown.NewGoldmarkParser(markdown.DefaultParseOptions()),
		sanitizer:      sanitize.New(),
		wordsPerMinute: markdown.DefaultWordsPerMinute,
		previewLength:  markdown.DefaultPreviewLength,
		logger:         logging.NoOp(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o, nil
}

// Ingest processes the batch in order. Expected per-document failures, a
// missing file, denied access, invalid metadata, an empty body or a
// uniqueness collision, are recorded and the batch continues. Any other
// failure records a generic item error, halts the batch leaving later
// documents unattempted, and is returned wrapped alongside the partial
// result so callers see both the progress made and the cause of the halt.
func (o *Orchestrator) Ingest(ctx context.Context, files []FileRequest) (*Result, error) {
	if len(files) == 0 {
		return nil, ErrEmptyBatch
	}

	result := &Result{
		Ingested: []PostSummary{},
		Errors:   []ItemError{},
	}

	var haltErr error
	for _, req := range files {
		summary, err := o.ingestOne(ctx, req)
		if err == nil {
			result.Ingested = append(result.Ingested, *summary)
			continue
		}

		itemID := itemErrorID(req.ID)

		if msg, expected := classifyItemError(err); expected {
			o.logger.Warn("document skipped", "file_id", itemID, "reason", msg)
			result.Errors = append(result.Errors, ItemError{FileID: itemID, Message: msg})
			continue
		}

		o.logger.Error("batch halted on unexpected failure", "file_id", itemID, "error", err)
		result.Errors = append(result.Errors, ItemError{FileID: itemID, Message: msgUnexpected})
		result.Halted = true
		haltErr = fmt.Errorf("ingest: batch halted on %s: %w", itemID, err)
		break
	}

	o.logger.Info("batch finished",
		"status", string(result.Status()),
		"ingested", len(result.Ingested),
		"errors", len(result.Errors))
	return result, haltErr
}

func (o *Orchestrator) ingestOne(ctx context.Context, req FileRequest) (*PostSummary, error) {
	if strings.TrimSpace(req.ID) == "" {
		return nil, errBlankFileID
	}

	raw, err := o.store.Read(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	meta, body, err := markdown.ExtractMetadata(raw)
	if err != nil {
		return nil, err
	}

	postSlug, title, err := o.resolveNaming(req, meta)
	if err != nil {
		return nil, err
	}

	rendered, err := o.parser.Parse([]byte(body))
	if err != nil {
		return nil, err
	}

	// Stored posts always carry content. A document whose body is empty,
	// or reduces to nothing once sanitized, is rejected before the write.
	html := o.sanitizer.HTML(string(rendered))
	if html == "" {
		return nil, errEmptyContent
	}

	post := &posts.Post{
		ID:              identity.PostUUID(req.ID),
		Title:           title,
		Slug:            postSlug,
		SourceFileID:    req.ID,
		HTMLContent:     html,
		MetaDescription: markdown.Trim(meta.MetaDescription, o.previewLength),
		Keywords:        meta.Keywords,
		Categories:      meta.Categories,
		ReadTimeMinutes: markdown.EstimateReadTime(body, o.wordsPerMinute),
	}

	if err := o.repo.Create(ctx, post); err != nil {
		return nil, err
	}

	return &PostSummary{FileID: req.ID, Slug: post.Slug, Title: post.Title}, nil
}

// resolveNaming prefers the slug and title supplied with the request and
// falls back to the document's metadata title.
func (o *Orchestrator) resolveNaming(req FileRequest, meta markdown.Metadata) (string, string, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = strings.TrimSpace(meta.Title)
	}

	postSlug := strings.TrimSpace(req.Slug)
	if postSlug == "" {
		derived, err := SlugFromTitle(title)
		if err != nil {
			return "", "", fmt.Errorf("ingest: derive slug from %q: %w", title, err)
		}
		postSlug = derived
	}

	return postSlug, title, nil
}

// classifyItemError maps pipeline failures onto the fixed per-item messages.
// The second return reports whether the failure is expected; unexpected
// failures halt the batch.
func classifyItemError(err error) (string, bool) {
	switch {
	case errors.Is(err, drive.ErrFileNotFound):
		return msgFileNotFound, true
	case errors.Is(err, drive.ErrPermissionDenied):
		return msgPermissionDenied, true
	case errors.Is(err, errBlankFileID):
		return "File id is required", true
	case errors.Is(err, errEmptyContent):
		return msgEmptyContent, true
	}

	var metaErr *markdown.ValidationError
	if errors.As(err, &metaErr) {
		return metaErr.Error(), true
	}

	var dupErr *posts.DuplicateError
	if errors.As(err, &dupErr) {
		return fmt.Sprintf("A post with this %s already exists: %s", duplicateFieldLabel(dupErr.Field), dupErr.Value), true
	}

	return msgUnexpected, false
}

// itemErrorID keys a per-item error. Items that never carried a usable id
// are recorded under "unknown" so the result still names every failure.
func itemErrorID(id string) string {
	if strings.TrimSpace(id) == "" {
		return "unknown"
	}
	return id
}

func duplicateFieldLabel(field string) string {
	if field == "source_file_id" {
		return "source file"
	}
	return field
}
