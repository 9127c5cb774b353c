package articles_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	articles "github.com/goliatone/go-articles"
	"github.com/goliatone/go-articles/drive"
	"github.com/goliatone/go-articles/ingest"
	drivecmd "github.com/goliatone/go-articles/internal/commands/drive"
	"github.com/goliatone/go-articles/pkg/testsupport"
	"github.com/goliatone/go-articles/posts"
)

// fakeDrive serves documents from memory, standing in for the Drive API.
type fakeDrive struct {
	docs    map[string]string
	listing []drive.File
}

func (f *fakeDrive) ListFolder(ctx context.Context, folderID string) ([]drive.File, error) {
	return f.listing, nil
}

func (f *fakeDrive) Read(ctx context.Context, fileID string) (string, error) {
	doc, ok := f.docs[fileID]
	if !ok {
		return "", &drive.NotFoundError{FileID: fileID}
	}
	return doc, nil
}

func document(title, body string) string {
	return fmt.Sprintf("Title: %s\nCategories: engineering, go\nMeta Description: About %s\nKeywords: go, blog\n\n%s", title, title, body)
}

func newTestModule(t *testing.T, store drive.Store) *articles.Module {
	t.Helper()

	sqlDB, err := testsupport.NewSQLiteMemoryDB()
	if err != nil {
		t.Fatalf("new sqlite db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	bunDB := bun.NewDB(sqlDB, sqlitedialect.New())
	bunDB.SetMaxOpenConns(1)

	if err := articles.Migrate(context.Background(), bunDB); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	// Drop leftovers from a previous test sharing the cache.
	if _, err := bunDB.NewDelete().Model((*posts.Post)(nil)).Where("1 = 1").Exec(context.Background()); err != nil {
		t.Fatalf("clear table: %v", err)
	}

	cfg := articles.DefaultConfig()
	cfg.Logging.Format = "console"

	mod, err := articles.New(cfg,
		articles.WithBunDB(bunDB),
		articles.WithDriveStore(store),
	)
	if err != nil {
		t.Fatalf("new module: %v", err)
	}
	return mod
}

func TestModuleIngestEndToEnd(t *testing.T) {
	ctx := context.Background()

	store := &fakeDrive{docs: map[string]string{
		"f1": document("Go Concurrency Patterns", "# Patterns\n\nChannels and goroutines.\n\n- select\n- fan out"),
		"f2": document("Error Handling", "Wrap errors with context."),
	}}
	mod := newTestModule(t, store)

	result, err := mod.Ingestor().Ingest(ctx, []ingest.FileRequest{{ID: "f1"}, {ID: "f2"}})
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if result.Status() != ingest.StatusSuccess {
		t.Fatalf("status = %s, errors = %+v", result.Status(), result.Errors)
	}

	post, err := mod.Posts().GetBySlug(ctx, "go-concurrency-patterns")
	if err != nil {
		t.Fatalf("get by slug: %v", err)
	}
	if post.Title != "Go Concurrency Patterns" {
		t.Errorf("Title = %q", post.Title)
	}
	if post.SourceFileID != "f1" {
		t.Errorf("SourceFileID = %q", post.SourceFileID)
	}
	if !strings.Contains(post.HTMLContent, "<li>select") {
		t.Errorf("HTMLContent = %q", post.HTMLContent)
	}
	if strings.Contains(post.HTMLContent, "<h1") {
		t.Errorf("disallowed tag survived sanitization: %q", post.HTMLContent)
	}
	if post.ReadTimeMinutes < 1 {
		t.Errorf("ReadTimeMinutes = %d", post.ReadTimeMinutes)
	}
	if len(post.Categories) != 2 {
		t.Errorf("Categories = %v", post.Categories)
	}

	page, err := mod.Posts().Paginate(ctx, 1, 10)
	if err != nil {
		t.Fatalf("paginate: %v", err)
	}
	if page.Total != 2 {
		t.Errorf("total = %d, want 2", page.Total)
	}
}

func TestModuleReingestReportsDuplicates(t *testing.T) {
	ctx := context.Background()

	store := &fakeDrive{docs: map[string]string{
		"f1": document("Stable Post", "body"),
	}}
	mod := newTestModule(t, store)

	if _, err := mod.Ingestor().Ingest(ctx, []ingest.FileRequest{{ID: "f1"}}); err != nil {
		t.Fatalf("first ingest: %v", err)
	}

	result, err := mod.Ingestor().Ingest(ctx, []ingest.FileRequest{{ID: "f1"}})
	if err != nil {
		t.Fatalf("second ingest: %v", err)
	}
	if result.Status() != ingest.StatusFailed {
		t.Errorf("status = %s, want failed", result.Status())
	}
	if result.Halted {
		t.Error("duplicate should not halt the batch")
	}
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0].Message, "already exists") {
		t.Errorf("errors = %+v", result.Errors)
	}

	if n, err := mod.Posts().Count(ctx); err != nil || n != 1 {
		t.Errorf("count = %d, err = %v, want 1 post", n, err)
	}
}

func TestModuleSyncAndCommandHandlers(t *testing.T) {
	ctx := context.Background()

	store := &fakeDrive{
		docs: map[string]string{
			"f1": document("Published Already", "body"),
			"f2": document("Fresh Article", "new body"),
		},
		listing: []drive.File{
			{ID: "f1", Name: "01_published_already.md"},
			{ID: "f2", Name: "02_fresh_article.md"},
		},
	}
	mod := newTestModule(t, store)

	if _, err := mod.Ingestor().Ingest(ctx, []ingest.FileRequest{{ID: "f1"}}); err != nil {
		t.Fatalf("seed ingest: %v", err)
	}

	var result *ingest.Result
	handler := mod.SyncFolderHandler(nil, func(r *ingest.Result) { result = r })

	err := handler.Execute(ctx, drivecmd.SyncFolderCommand{FolderID: "folder-1", IngestNew: true})
	if err != nil {
		t.Fatalf("sync command: %v", err)
	}

	if result == nil || len(result.Ingested) != 1 {
		t.Fatalf("result = %+v", result)
	}
	if result.Ingested[0].Slug != "fresh-article" {
		t.Errorf("ingested = %+v", result.Ingested[0])
	}

	if _, err := mod.Posts().GetBySlug(ctx, "fresh-article"); err != nil {
		t.Errorf("synced post not stored: %v", err)
	}
}

func TestModuleDeleteCommand(t *testing.T) {
	ctx := context.Background()

	store := &fakeDrive{docs: map[string]string{
		"f1": document("Removable", "body"),
	}}
	mod := newTestModule(t, store)

	if _, err := mod.Ingestor().Ingest(ctx, []ingest.FileRequest{{ID: "f1"}}); err != nil {
		t.Fatalf("ingest: %v", err)
	}

	handler := mod.DeletePostHandler()
	if err := handler.Execute(ctx, drivecmd.DeletePostCommand{Slug: "removable"}); err != nil {
		t.Fatalf("delete command: %v", err)
	}

	if _, err := mod.Posts().GetBySlug(ctx, "removable"); !errors.Is(err, posts.ErrPostNotFound) {
		t.Errorf("post survived delete: %v", err)
	}
}

func TestModuleRequiresStorage(t *testing.T) {
	_, err := articles.New(articles.DefaultConfig(), articles.WithDriveStore(&fakeDrive{}))
	if !errors.Is(err, articles.ErrStorageRequired) {
		t.Fatalf("error = %v, want ErrStorageRequired", err)
	}
}
