package ingest_test

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-articles/drive"
	"github.com/goliatone/go-articles/ingest"
	"github.com/goliatone/go-articles/posts"
)

func TestFindUnpublished(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := &stubStore{
		docs: map[string]string{"f1": validDoc("Published")},
		listing: []drive.File{
			{ID: "f1", Name: "01_published.md"},
			{ID: "f2", Name: "02_new_article.md"},
			{ID: "f3", Name: "03_another_one.md"},
		},
	}
	repo := &stubRepo{}
	o := newOrchestrator(t, store, repo)

	if _, err := o.Ingest(ctx, []ingest.FileRequest{{ID: "f1"}}); err != nil {
		t.Fatalf("seed ingest: %v", err)
	}

	candidates, err := o.FindUnpublished(ctx, "folder-1")
	if err != nil {
		t.Fatalf("find unpublished: %v", err)
	}

	if len(candidates) != 2 {
		t.Fatalf("got %d candidates, want 2", len(candidates))
	}
	if candidates[0].FileID != "f2" || candidates[0].Slug != "new-article" || candidates[0].Title != "New Article" {
		t.Errorf("candidates[0] = %+v", candidates[0])
	}
	if candidates[1].FileID != "f3" || candidates[1].Slug != "another-one" {
		t.Errorf("candidates[1] = %+v", candidates[1])
	}
}

func TestFindUnpublishedSkipsUnconventionalNames(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := &stubStore{
		listing: []drive.File{
			{ID: "f1", Name: "notes.txt"},
			{ID: "f2", Name: "02_real_post.md"},
		},
	}
	o := newOrchestrator(t, store, &stubRepo{})

	candidates, err := o.FindUnpublished(ctx, "folder-1")
	if err != nil {
		t.Fatalf("find unpublished: %v", err)
	}
	if len(candidates) != 1 {
		t.Fatalf("got %d candidates, want 1", len(candidates))
	}
	if candidates[0].FileID != "f2" {
		t.Errorf("candidates[0] = %+v", candidates[0])
	}
}

func TestFindUnpublishedEmptyFolder(t *testing.T) {
	t.Parallel()

	o := newOrchestrator(t, &stubStore{}, &stubRepo{})
	candidates, err := o.FindUnpublished(context.Background(), "folder-1")
	if err != nil {
		t.Fatalf("find unpublished: %v", err)
	}
	if len(candidates) != 0 {
		t.Errorf("got %d candidates, want 0", len(candidates))
	}
}

func TestFindUnpublishedPropagatesListError(t *testing.T) {
	t.Parallel()

	store := &stubStore{listErr: &drive.APIError{StatusCode: 500, Message: "Backend Error"}}
	o := newOrchestrator(t, store, &stubRepo{})

	if _, err := o.FindUnpublished(context.Background(), "folder-1"); !errors.Is(err, drive.ErrAPIFailure) {
		t.Fatalf("error = %v, want ErrAPIFailure", err)
	}
}

var _ posts.Repository = (*stubRepo)(nil)
var _ drive.Store = (*stubStore)(nil)
