// Package drivecmd exposes the module's ingestion operations as go-command
// messages and handlers.
package drivecmd

import (
	"context"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-articles/ingest"
	"github.com/goliatone/go-articles/internal/commands"
	"github.com/goliatone/go-articles/internal/logging"
	"github.com/goliatone/go-articles/pkg/interfaces"
	"github.com/goliatone/go-articles/posts"
)

const (
	ingestOperation = "drive.ingest_files"
	syncOperation   = "drive.sync_folder"
	deleteOperation = "posts.delete_post"
)

var (
	_ command.Commander[IngestFilesCommand] = (*IngestFilesHandler)(nil)
	_ command.Commander[SyncFolderCommand]  = (*SyncFolderHandler)(nil)
	_ command.Commander[DeletePostCommand]  = (*DeletePostHandler)(nil)
)

// Ingestor is the slice of the orchestrator the command handlers need.
type Ingestor interface {
	Ingest(ctx context.Context, files []ingest.FileRequest) (*ingest.Result, error)
	FindUnpublished(ctx context.Context, folderID string) ([]ingest.Candidate, error)
}

// ResultSink receives batch results as commands complete. Handlers report
// through the sink because command execution only returns an error.
type ResultSink func(*ingest.Result)

// CandidateSink receives sync comparisons as commands complete.
type CandidateSink func([]ingest.Candidate)

// IngestFilesHandler runs document batches via the shared command
// foundation.
type IngestFilesHandler struct {
	inner *commands.Handler[IngestFilesCommand]
}

// NewIngestFilesHandler creates a handler bound to the supplied ingestor.
// The sink may be nil when the caller only cares about command success.
func NewIngestFilesHandler(ingestor Ingestor, logger interfaces.Logger, sink ResultSink, opts ...commands.HandlerOption[IngestFilesCommand]) *IngestFilesHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg IngestFilesCommand) error {
		result, err := ingestor.Ingest(ctx, msg.Files)
		if result != nil {
			logging.WithFields(baseLogger, map[string]any{
				"status":   string(result.Status()),
				"ingested": len(result.Ingested),
				"errors":   len(result.Errors),
				"halted":   result.Halted,
			}).Info("drive.command.ingest_files.completed")
			// The sink always sees the result, halted batches included,
			// so callers can report partial progress.
			if sink != nil {
				sink(result)
			}
		}
		return err
	}

	handlerOpts := []commands.HandlerOption[IngestFilesCommand]{
		// Batches run sequentially over the network with no bound on
		// size, so no timeout applies unless the caller opts in.
		commands.WithTimeout[IngestFilesCommand](0),
		commands.WithLogger[IngestFilesCommand](baseLogger),
		commands.WithOperation[IngestFilesCommand](ingestOperation),
		commands.WithMessageFields(func(msg IngestFilesCommand) map[string]any {
			return map[string]any{"files": len(msg.Files)}
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &IngestFilesHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute implements command.Commander.
func (h *IngestFilesHandler) Execute(ctx context.Context, msg IngestFilesCommand) error {
	return h.inner.Execute(ctx, msg)
}

// SyncFolderHandler compares a remote folder against stored posts,
// optionally ingesting the unpublished documents.
type SyncFolderHandler struct {
	inner *commands.Handler[SyncFolderCommand]
}

// NewSyncFolderHandler creates a handler bound to the supplied ingestor.
// Sinks may be nil.
func NewSyncFolderHandler(ingestor Ingestor, logger interfaces.Logger, candidates CandidateSink, results ResultSink, opts ...commands.HandlerOption[SyncFolderCommand]) *SyncFolderHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg SyncFolderCommand) error {
		found, err := ingestor.FindUnpublished(ctx, msg.FolderID)
		if err != nil {
			return err
		}
		logging.WithFields(baseLogger, map[string]any{
			"folder_id":   msg.FolderID,
			"unpublished": len(found),
		}).Info("drive.command.sync_folder.compared")
		if candidates != nil {
			candidates(found)
		}

		if !msg.IngestNew || len(found) == 0 {
			return nil
		}

		requests := make([]ingest.FileRequest, len(found))
		for i, c := range found {
			requests[i] = ingest.FileRequest{ID: c.FileID, Slug: c.Slug, Title: c.Title}
		}
		result, err := ingestor.Ingest(ctx, requests)
		if result != nil && results != nil {
			results(result)
		}
		return err
	}

	handlerOpts := []commands.HandlerOption[SyncFolderCommand]{
		commands.WithTimeout[SyncFolderCommand](0),
		commands.WithLogger[SyncFolderCommand](baseLogger),
		commands.WithOperation[SyncFolderCommand](syncOperation),
		commands.WithMessageFields(func(msg SyncFolderCommand) map[string]any {
			return map[string]any{
				"folder_id":  msg.FolderID,
				"ingest_new": msg.IngestNew,
			}
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &SyncFolderHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute implements command.Commander.
func (h *SyncFolderHandler) Execute(ctx context.Context, msg SyncFolderCommand) error {
	return h.inner.Execute(ctx, msg)
}

// DeletePostHandler removes stored posts by slug.
type DeletePostHandler struct {
	inner *commands.Handler[DeletePostCommand]
}

// NewDeletePostHandler creates a handler bound to the post repository.
func NewDeletePostHandler(repo posts.Repository, logger interfaces.Logger, opts ...commands.HandlerOption[DeletePostCommand]) *DeletePostHandler {
	exec := func(ctx context.Context, msg DeletePostCommand) error {
		return repo.DeleteBySlug(ctx, msg.Slug)
	}

	handlerOpts := []commands.HandlerOption[DeletePostCommand]{
		commands.WithLogger[DeletePostCommand](logger),
		commands.WithOperation[DeletePostCommand](deleteOperation),
		commands.WithMessageFields(func(msg DeletePostCommand) map[string]any {
			return map[string]any{"slug": msg.Slug}
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &DeletePostHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute implements command.Commander.
func (h *DeletePostHandler) Execute(ctx context.Context, msg DeletePostCommand) error {
	return h.inner.Execute(ctx, msg)
}
