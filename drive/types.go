// Package drive retrieves article source documents from a remote file store.
package drive

import "context"

// File is one document in a remote folder listing.
type File struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Store is the remote file store contract. Implementations classify upstream
// failures into the package's error taxonomy so callers never inspect raw
// transport errors.
type Store interface {
	// ListFolder returns the markdown documents in the given folder.
	ListFolder(ctx context.Context, folderID string) ([]File, error)
	// Read returns the plain-text content of a document.
	Read(ctx context.Context, fileID string) (string, error)
}
