package articles

import (
	"errors"

	"github.com/goliatone/go-articles/internal/markdown"
)

var (
	// ErrStorageRequired is returned when neither a database handle nor a
	// storage DSN is supplied.
	ErrStorageRequired = errors.New("articles: storage configuration required")
	// ErrDriveStoreRequired is returned when no remote store is available.
	ErrDriveStoreRequired = errors.New("articles: drive store required")
	// ErrContentConfigInvalid is returned for nonsensical content tuning.
	ErrContentConfigInvalid = errors.New("articles: content configuration invalid")
)

// LoggingConfig tunes the module's structured logging.
type LoggingConfig struct {
	// Level is one of trace, debug, info, warn, error or fatal.
	Level string
	// Format is json, console or pretty.
	Format string
	// AddSource includes caller locations in log records.
	AddSource bool
}

// StorageConfig selects where posts are persisted.
type StorageConfig struct {
	// Driver is "sqlite3" or "postgres".
	Driver string
	// DSN is the driver-specific connection string.
	DSN string
}

// DriveConfig points the module at the remote file store.
type DriveConfig struct {
	// BaseURL overrides the Drive API root, mainly for tests and proxies.
	BaseURL string
	// FolderID is the default folder used by sync operations.
	FolderID string
}

// ContentConfig tunes the transformation pipeline.
type ContentConfig struct {
	// WordsPerMinute is the reading speed for read-time estimates.
	WordsPerMinute int
	// PreviewLength bounds stored meta descriptions.
	PreviewLength int
}

// Config is the module configuration consumed by New.
type Config struct {
	Logging LoggingConfig
	Storage StorageConfig
	Drive   DriveConfig
	Content ContentConfig
}

// DefaultConfig returns the baseline configuration: info-level JSON logging
// and the standard pipeline tuning.
func DefaultConfig() Config {
	return Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Content: ContentConfig{
			WordsPerMinute: markdown.DefaultWordsPerMinute,
			PreviewLength:  markdown.DefaultPreviewLength,
		},
	}
}

// Validate rejects configurations the module cannot run with.
func (c Config) Validate() error {
	if c.Content.WordsPerMinute < 0 || c.Content.PreviewLength < 0 {
		return ErrContentConfigInvalid
	}
	return nil
}
