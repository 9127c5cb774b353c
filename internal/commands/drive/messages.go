package drivecmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-articles/ingest"
)

const (
	ingestFilesMessageType = "articles.drive.ingest_files"
	syncFolderMessageType  = "articles.drive.sync_folder"
	deletePostMessageType  = "articles.posts.delete_post"
)

// IngestFilesCommand runs a batch of remote documents through the ingestion
// pipeline.
type IngestFilesCommand struct {
	// Files names the documents to ingest, in order.
	Files []ingest.FileRequest `json:"files"`
}

// Type implements command.Message.
func (IngestFilesCommand) Type() string { return ingestFilesMessageType }

// Validate ensures the batch names at least one document and every entry
// carries a file id.
func (cmd IngestFilesCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Files, validation.Required, validation.By(func(value any) error {
			files, ok := value.([]ingest.FileRequest)
			if !ok || len(files) == 0 {
				return validation.NewError("articles.drive.ingest_files.files_required", "at least one file is required")
			}
			for _, file := range files {
				if strings.TrimSpace(file.ID) == "" {
					return validation.NewError("articles.drive.ingest_files.file_id_required", "every file needs an id")
				}
			}
			return nil
		})),
	)
}

// SyncFolderCommand compares a remote folder against stored posts and,
// optionally, ingests the documents that are missing.
type SyncFolderCommand struct {
	// FolderID selects the remote folder to compare.
	FolderID string `json:"folder_id"`
	// IngestNew runs the full pipeline for unpublished documents when true;
	// otherwise the command only reports them.
	IngestNew bool `json:"ingest_new,omitempty"`
}

// Type implements command.Message.
func (SyncFolderCommand) Type() string { return syncFolderMessageType }

// Validate ensures a folder id is present before handlers execute.
func (cmd SyncFolderCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.FolderID, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("articles.drive.sync_folder.folder_id_required", "folder id is required")
			}
			return nil
		})),
	)
}

// DeletePostCommand removes a stored post by slug.
type DeletePostCommand struct {
	// Slug identifies the post to remove.
	Slug string `json:"slug"`
}

// Type implements command.Message.
func (DeletePostCommand) Type() string { return deletePostMessageType }

// Validate ensures a slug is present before handlers execute.
func (cmd DeletePostCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Slug, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("articles.posts.delete_post.slug_required", "slug is required")
			}
			return nil
		})),
	)
}
