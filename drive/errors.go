package drive

import (
	"errors"
	"fmt"
)

var (
	// ErrFileNotFound marks requests for documents the store does not have.
	ErrFileNotFound = errors.New("drive: file not found")
	// ErrPermissionDenied marks documents the configured credentials cannot read.
	ErrPermissionDenied = errors.New("drive: permission denied")
	// ErrAPIFailure marks any other upstream API failure.
	ErrAPIFailure = errors.New("drive: api failure")
)

// NotFoundError reports a missing document.
type NotFoundError struct {
	FileID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("drive: file %s not found", e.FileID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrFileNotFound
}

// PermissionError reports a document the caller is not allowed to read.
type PermissionError struct {
	FileID string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("drive: permission denied for file %s", e.FileID)
}

func (e *PermissionError) Unwrap() error {
	return ErrPermissionDenied
}

// APIError carries the upstream status and message for failures that are
// neither missing-file nor permission problems.
type APIError struct {
	FileID     string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("drive: api error %d: %s", e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	return ErrAPIFailure
}
