// Package articles ingests markdown documents from a remote file store and
// publishes them as sanitized, read-time annotated blog posts.
package articles

import (
	"net/http"

	"github.com/uptrace/bun"

	"github.com/goliatone/go-articles/drive"
	"github.com/goliatone/go-articles/ingest"
	drivecmd "github.com/goliatone/go-articles/internal/commands/drive"
	"github.com/goliatone/go-articles/internal/database"
	"github.com/goliatone/go-articles/internal/logging"
	"github.com/goliatone/go-articles/internal/logging/gologger"
	"github.com/goliatone/go-articles/pkg/interfaces"
	"github.com/goliatone/go-articles/posts"
)

// Module wires the ingestion pipeline: remote store, transformation stack
// and persistence, behind a single constructor.
type Module struct {
	cfg      Config
	db       *bun.DB
	store    drive.Store
	posts    posts.Repository
	ingestor *ingest.Orchestrator
	provider interfaces.LoggerProvider
	logger   interfaces.Logger
}

// Option customises module construction.
type Option func(*Module)

// WithBunDB supplies an existing database handle instead of opening one
// from Config.Storage.
func WithBunDB(db *bun.DB) Option {
	return func(m *Module) {
		m.db = db
	}
}

// WithDriveStore replaces the default HTTP-backed Drive client. Tests use
// this to inject fakes.
func WithDriveStore(store drive.Store) Option {
	return func(m *Module) {
		m.store = store
	}
}

// WithPostRepository replaces the default Bun-backed repository.
func WithPostRepository(repo posts.Repository) Option {
	return func(m *Module) {
		m.posts = repo
	}
}

// WithLoggerProvider supplies the logging backend. Without one the module
// builds a go-logger provider from Config.Logging.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(m *Module) {
		m.provider = provider
	}
}

// New constructs the module from configuration plus options.
func New(cfg Config, opts ...Option) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := &Module{cfg: cfg}
	for _, opt := range opts {
		opt(m)
	}

	if m.provider == nil {
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Logging.Level,
			Format:    cfg.Logging.Format,
			AddSource: cfg.Logging.AddSource,
		})
		if err != nil {
			return nil, err
		}
		m.provider = provider
	}
	m.logger = logging.ModuleLogger(m.provider, "articles")

	if m.db == nil && m.posts == nil {
		if cfg.Storage.DSN == "" {
			return nil, ErrStorageRequired
		}
		db, err := database.Open(database.Config{
			Driver: cfg.Storage.Driver,
			DSN:    cfg.Storage.DSN,
		})
		if err != nil {
			return nil, err
		}
		m.db = db
	}

	if m.posts == nil {
		m.posts = posts.NewBunRepository(m.db, logging.PostsLogger(m.provider))
	}

	if m.store == nil {
		clientOpts := []drive.ClientOption{
			drive.WithLogger(logging.DriveLogger(m.provider)),
		}
		if cfg.Drive.BaseURL != "" {
			clientOpts = append(clientOpts, drive.WithBaseURL(cfg.Drive.BaseURL))
		}
		m.store = drive.NewClient(http.DefaultClient, clientOpts...)
	}

	ingestor, err := ingest.NewOrchestrator(m.store, m.posts,
		ingest.WithWordsPerMinute(cfg.Content.WordsPerMinute),
		ingest.WithPreviewLength(cfg.Content.PreviewLength),
		ingest.WithLogger(logging.IngestLogger(m.provider)),
	)
	if err != nil {
		return nil, err
	}
	m.ingestor = ingestor

	return m, nil
}

// Posts exposes the post repository.
func (m *Module) Posts() posts.Repository {
	return m.posts
}

// Drive exposes the remote file store.
func (m *Module) Drive() drive.Store {
	return m.store
}

// Ingestor exposes the batch pipeline.
func (m *Module) Ingestor() *ingest.Orchestrator {
	return m.ingestor
}

// DB exposes the underlying database handle, or nil when the caller
// supplied a repository directly.
func (m *Module) DB() *bun.DB {
	return m.db
}

// Logger exposes the module's root logger.
func (m *Module) Logger() interfaces.Logger {
	return m.logger
}

// IngestFilesHandler builds the command handler for batch ingestion.
// Results are delivered through the sink, which may be nil.
func (m *Module) IngestFilesHandler(sink drivecmd.ResultSink) *drivecmd.IngestFilesHandler {
	return drivecmd.NewIngestFilesHandler(m.ingestor, m.logger, sink)
}

// SyncFolderHandler builds the command handler for folder comparison.
func (m *Module) SyncFolderHandler(candidates drivecmd.CandidateSink, results drivecmd.ResultSink) *drivecmd.SyncFolderHandler {
	return drivecmd.NewSyncFolderHandler(m.ingestor, m.logger, candidates, results)
}

// DeletePostHandler builds the command handler for post removal.
func (m *Module) DeletePostHandler() *drivecmd.DeletePostHandler {
	return drivecmd.NewDeletePostHandler(m.posts, m.logger)
}
