// Package bootstrap builds configured module instances for the drive CLIs.
package bootstrap

import (
	"context"
	"fmt"
	"strings"

	articles "github.com/goliatone/go-articles"
	"github.com/goliatone/go-articles/pkg/interfaces"
)

// Options captures configuration for drive CLI bootstraps.
type Options struct {
	Driver   string
	DSN      string
	BaseURL  string
	FolderID string
	LogLevel string
	Format   string
	Migrate  bool
}

// Module wraps the articles module plus the CLI logger.
type Module struct {
	Module *articles.Module
	Logger interfaces.Logger
}

// BuildModule constructs an articles module configured from CLI flags.
func BuildModule(ctx context.Context, opts Options) (*Module, error) {
	cfg := articles.DefaultConfig()

	cfg.Storage.Driver = strings.TrimSpace(opts.Driver)
	cfg.Storage.DSN = strings.TrimSpace(opts.DSN)
	cfg.Drive.BaseURL = strings.TrimSpace(opts.BaseURL)
	cfg.Drive.FolderID = strings.TrimSpace(opts.FolderID)

	if level := strings.TrimSpace(opts.LogLevel); level != "" {
		cfg.Logging.Level = level
	}
	if format := strings.TrimSpace(opts.Format); format != "" {
		cfg.Logging.Format = format
	}

	module, err := articles.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("initialise articles module: %w", err)
	}

	if opts.Migrate {
		if db := module.DB(); db != nil {
			if err := articles.Migrate(ctx, db); err != nil {
				return nil, fmt.Errorf("apply migrations: %w", err)
			}
		}
	}

	return &Module{
		Module: module,
		Logger: module.Logger(),
	}, nil
}
