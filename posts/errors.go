package posts

import (
	"errors"
	"fmt"
)

var (
	// ErrPostNotFound marks lookups that matched no stored post.
	ErrPostNotFound = errors.New("posts: post not found")
	// ErrDuplicatePost marks writes rejected by a uniqueness constraint.
	ErrDuplicatePost = errors.New("posts: duplicate post")
)

// NotFoundError reports which slug a lookup failed for.
type NotFoundError struct {
	Slug string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("posts: no post with slug %q", e.Slug)
}

func (e *NotFoundError) Unwrap() error {
	return ErrPostNotFound
}

// DuplicateError identifies the unique field and value a write collided on,
// so callers can report which of title, slug or source file id already
// exists.
type DuplicateError struct {
	Field string
	Value string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("posts: duplicate %s %q", e.Field, e.Value)
}

func (e *DuplicateError) Unwrap() error {
	return ErrDuplicatePost
}
