package posts

import "context"

// Repository is the persistence contract for stored articles.
//
// Create returns a *DuplicateError when any uniqueness constraint fires;
// lookups return *NotFoundError wrapping ErrPostNotFound when nothing
// matches.
type Repository interface {
	Create(ctx context.Context, post *Post) error
	GetBySlug(ctx context.Context, slug string) (*Post, error)
	Identifiers(ctx context.Context) ([]Identifier, error)
	Paginate(ctx context.Context, page, perPage int) (*Page, error)
	DeleteBySlug(ctx context.Context, slug string) error
	Count(ctx context.Context) (int, error)
}
