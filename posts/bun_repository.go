package posts

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/lib/pq"
	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-articles/internal/logging"
	"github.com/goliatone/go-articles/pkg/interfaces"
)

// DefaultPerPage is used when a caller asks for a page without a size.
const DefaultPerPage = 10

// BunRepository persists posts through a Bun-backed database. It works
// against both the sqlite and postgres dialects; constraint violations from
// either driver are translated into *DuplicateError values.
type BunRepository struct {
	db     *bun.DB
	logger interfaces.Logger
}

// NewBunRepository constructs a Bun-backed post repository.
func NewBunRepository(db *bun.DB, logger interfaces.Logger) *BunRepository {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &BunRepository{db: db, logger: logger}
}

// Create inserts a post. The write is rejected with a *DuplicateError when
// the title, slug or source file id already exists.
func (r *BunRepository) Create(ctx context.Context, post *Post) error {
	if r.db == nil {
		return errors.New("posts: bun repository requires a database")
	}
	if post == nil {
		return errors.New("posts: post is required")
	}

	if _, err := r.db.NewInsert().Model(post).Exec(ctx); err != nil {
		if dup := translateConstraintError(err, post); dup != nil {
			r.logger.Debug("post rejected by uniqueness constraint",
				"field", dup.Field, "value", dup.Value)
			return dup
		}
		return err
	}

	r.logger.Info("post stored", "slug", post.Slug, "source_file_id", post.SourceFileID)
	return nil
}

// GetBySlug loads a single post by its slug.
func (r *BunRepository) GetBySlug(ctx context.Context, slug string) (*Post, error) {
	if r.db == nil {
		return nil, errors.New("posts: bun repository requires a database")
	}
	var post Post
	err := r.db.NewSelect().Model(&post).Where("slug = ?", slug).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{Slug: slug}
		}
		return nil, err
	}
	return &post, nil
}

// Identifiers returns the lightweight projection of every stored post,
// ordered by slug for stable comparisons.
func (r *BunRepository) Identifiers(ctx context.Context) ([]Identifier, error) {
	if r.db == nil {
		return nil, errors.New("posts: bun repository requires a database")
	}
	var ids []Identifier
	err := r.db.NewSelect().
		Model((*Post)(nil)).
		Column("id", "slug", "title", "source_file_id", "updated_at").
		Order("slug ASC").
		Scan(ctx, &ids)
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// Paginate lists posts newest first. Page numbers at or below zero resolve
// to the first page; a page past the end yields an empty result with the
// total counts intact.
func (r *BunRepository) Paginate(ctx context.Context, page, perPage int) (*Page, error) {
	if r.db == nil {
		return nil, errors.New("posts: bun repository requires a database")
	}
	if page <= 0 {
		page = 1
	}
	if perPage <= 0 {
		perPage = DefaultPerPage
	}

	total, err := r.Count(ctx)
	if err != nil {
		return nil, err
	}

	result := &Page{
		Posts:      []Post{},
		Total:      total,
		TotalPages: (total + perPage - 1) / perPage,
		Page:       page,
		PerPage:    perPage,
	}

	offset := (page - 1) * perPage
	if total == 0 || offset >= total {
		return result, nil
	}

	err = r.db.NewSelect().
		Model(&result.Posts).
		Order("created_at DESC", "slug ASC").
		Limit(perPage).
		Offset(offset).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteBySlug removes a post, reporting *NotFoundError when no row matched.
func (r *BunRepository) DeleteBySlug(ctx context.Context, slug string) error {
	if r.db == nil {
		return errors.New("posts: bun repository requires a database")
	}
	res, err := r.db.NewDelete().Model((*Post)(nil)).Where("slug = ?", slug).Exec(ctx)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return &NotFoundError{Slug: slug}
	}
	r.logger.Info("post deleted", "slug", slug)
	return nil
}

// Count returns the number of stored posts.
func (r *BunRepository) Count(ctx context.Context) (int, error) {
	if r.db == nil {
		return 0, errors.New("posts: bun repository requires a database")
	}
	return r.db.NewSelect().Model((*Post)(nil)).Count(ctx)
}

// translateConstraintError maps driver-specific unique violations onto
// *DuplicateError, identifying the offending column explicitly instead of
// string-matching generic driver messages at call sites.
func translateConstraintError(err error, post *Post) *DuplicateError {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		if sqliteErr.ExtendedCode != sqlite3.ErrConstraintUnique &&
			sqliteErr.ExtendedCode != sqlite3.ErrConstraintPrimaryKey {
			return nil
		}
		return duplicateForColumn(columnFromSQLiteMessage(sqliteErr.Error()), post)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code != "23505" {
			return nil
		}
		return duplicateForColumn(columnFromConstraintName(pqErr.Constraint), post)
	}

	return nil
}

// columnFromSQLiteMessage extracts the column from messages like
// "UNIQUE constraint failed: blog_posts.slug".
func columnFromSQLiteMessage(msg string) string {
	_, after, ok := strings.Cut(msg, "blog_posts.")
	if !ok {
		return ""
	}
	col, _, _ := strings.Cut(after, ",")
	return strings.TrimSpace(col)
}

// columnFromConstraintName maps postgres constraint names such as
// "blog_posts_slug_key" back to their column.
func columnFromConstraintName(constraint string) string {
	for _, col := range []string{"source_file_id", "title", "slug"} {
		if strings.Contains(constraint, col) {
			return col
		}
	}
	if strings.Contains(constraint, "pkey") {
		return "id"
	}
	return ""
}

func duplicateForColumn(column string, post *Post) *DuplicateError {
	switch column {
	case "title":
		return &DuplicateError{Field: "title", Value: post.Title}
	case "slug":
		return &DuplicateError{Field: "slug", Value: post.Slug}
	case "source_file_id", "id":
		return &DuplicateError{Field: "source_file_id", Value: post.SourceFileID}
	default:
		return &DuplicateError{Field: "post", Value: post.Slug}
	}
}
