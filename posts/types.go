// Package posts defines the stored article model and its persistence
// contract.
package posts

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Post is a published article as it exists in storage: sanitized HTML plus
// the metadata extracted from the source document. Title, Slug and
// SourceFileID are each unique across the table.
type Post struct {
	bun.BaseModel `bun:"table:blog_posts,alias:bp"`

	ID              uuid.UUID `bun:"id,pk,type:uuid"`
	Title           string    `bun:"title,notnull,unique"`
	Slug            string    `bun:"slug,notnull,unique"`
	SourceFileID    string    `bun:"source_file_id,notnull,unique"`
	HTMLContent     string    `bun:"html_content,notnull"`
	MetaDescription string    `bun:"meta_description"`
	Keywords        []string  `bun:"keywords,type:jsonb,nullzero"`
	Categories      []string  `bun:"categories,type:jsonb,nullzero"`
	ReadTimeMinutes int       `bun:"read_time_minutes"`
	CreatedAt       time.Time `bun:"created_at,nullzero,default:current_timestamp"`
	UpdatedAt       time.Time `bun:"updated_at,nullzero,default:current_timestamp"`
}

// Identifier is the projection used to compare stored posts against a remote
// folder listing without loading article bodies.
type Identifier struct {
	ID           uuid.UUID `bun:"id"`
	Slug         string    `bun:"slug"`
	Title        string    `bun:"title"`
	SourceFileID string    `bun:"source_file_id"`
	UpdatedAt    time.Time `bun:"updated_at"`
}

// Page is one page of a paginated listing, newest posts first.
type Page struct {
	Posts      []Post `json:"posts"`
	Total      int    `json:"total"`
	TotalPages int    `json:"total_pages"`
	Page       int    `json:"page"`
	PerPage    int    `json:"per_page"`
}
