package logging

import (
	"context"
	"maps"

	"github.com/goliatone/go-articles/pkg/interfaces"
)

const (
	rootModule   = "articles"
	postsModule  = "articles.posts"
	driveModule  = "articles.drive"
	ingestModule = "articles.ingest"
)

// NoOp returns a logger that discards every entry. It is the default for
// components constructed without an explicit provider.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

func (noopLogger) Trace(string, ...any)                            {}
func (noopLogger) Debug(string, ...any)                            {}
func (noopLogger) Info(string, ...any)                             {}
func (noopLogger) Warn(string, ...any)                             {}
func (noopLogger) Error(string, ...any)                            {}
func (noopLogger) Fatal(string, ...any)                            {}
func (l noopLogger) WithContext(context.Context) interfaces.Logger { return l }

// WithFields attaches structured fields when the implementation supports the
// optional FieldsLogger extension. Nil loggers and empty maps pass through.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	if logger == nil || len(fields) == 0 {
		return logger
	}
	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		copied := make(map[string]any, len(fields))
		maps.Copy(copied, fields)
		return fieldsLogger.WithFields(copied)
	}
	return logger
}

// ModuleLogger returns a module-scoped logger, defaulting to no-op when the
// provider is nil. The module identifier travels as a structured field so
// entries can be filtered per subsystem.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{"module": module})
}

// PostsLogger returns the logger namespace reserved for the post repository.
func PostsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, postsModule)
}

// DriveLogger returns the logger namespace reserved for the remote file store.
func DriveLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, driveModule)
}

// IngestLogger returns the logger namespace reserved for batch ingestion.
func IngestLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, ingestModule)
}
