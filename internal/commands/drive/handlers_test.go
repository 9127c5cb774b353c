package drivecmd

import (
	"context"
	"errors"
	"testing"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-articles/ingest"
	"github.com/goliatone/go-articles/posts"
)

type fakeIngestor struct {
	ingested    [][]ingest.FileRequest
	result      *ingest.Result
	ingestErr   error
	candidates  []ingest.Candidate
	findErr     error
	hadDeadline bool
}

func (f *fakeIngestor) Ingest(ctx context.Context, files []ingest.FileRequest) (*ingest.Result, error) {
	f.ingested = append(f.ingested, files)
	_, f.hadDeadline = ctx.Deadline()
	if f.ingestErr != nil {
		return f.result, f.ingestErr
	}
	if f.result != nil {
		return f.result, nil
	}
	return &ingest.Result{Ingested: []ingest.PostSummary{}, Errors: []ingest.ItemError{}}, nil
}

func (f *fakeIngestor) FindUnpublished(ctx context.Context, folderID string) ([]ingest.Candidate, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.candidates, nil
}

type fakeRepo struct {
	posts.Repository
	deleted   []string
	deleteErr error
}

func (f *fakeRepo) DeleteBySlug(ctx context.Context, slug string) error {
	f.deleted = append(f.deleted, slug)
	return f.deleteErr
}

func TestIngestFilesHandlerDeliversResult(t *testing.T) {
	want := &ingest.Result{
		Ingested: []ingest.PostSummary{{FileID: "f1", Slug: "first", Title: "First"}},
		Errors:   []ingest.ItemError{},
	}
	ingestor := &fakeIngestor{result: want}

	var got *ingest.Result
	h := NewIngestFilesHandler(ingestor, nil, func(r *ingest.Result) { got = r })

	err := h.Execute(context.Background(), IngestFilesCommand{
		Files: []ingest.FileRequest{{ID: "f1"}},
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if got != want {
		t.Errorf("sink received %+v", got)
	}
	if len(ingestor.ingested) != 1 {
		t.Errorf("ingestor called %d times", len(ingestor.ingested))
	}
}

func TestIngestFilesHandlerValidatesBatch(t *testing.T) {
	h := NewIngestFilesHandler(&fakeIngestor{}, nil, nil)

	err := h.Execute(context.Background(), IngestFilesCommand{})
	if err == nil {
		t.Fatal("expected validation error for empty batch")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Errorf("expected validation category, got %v", err)
	}

	err = h.Execute(context.Background(), IngestFilesCommand{
		Files: []ingest.FileRequest{{ID: "  "}},
	})
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Errorf("expected validation category for blank id, got %v", err)
	}
}

func TestIngestFilesHandlerWrapsPipelineError(t *testing.T) {
	ingestor := &fakeIngestor{ingestErr: errors.New("boom")}
	h := NewIngestFilesHandler(ingestor, nil, nil)

	err := h.Execute(context.Background(), IngestFilesCommand{
		Files: []ingest.FileRequest{{ID: "f1"}},
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Errorf("expected command category, got %v", err)
	}
}

func TestIngestFilesHandlerDeliversHaltedResult(t *testing.T) {
	partial := &ingest.Result{
		Ingested: []ingest.PostSummary{{FileID: "f1", Slug: "first", Title: "First"}},
		Errors:   []ingest.ItemError{{FileID: "f2", Message: "Unexpected error occurred."}},
		Halted:   true,
	}
	ingestor := &fakeIngestor{result: partial, ingestErr: errors.New("backend error")}

	var got *ingest.Result
	h := NewIngestFilesHandler(ingestor, nil, func(r *ingest.Result) { got = r })

	err := h.Execute(context.Background(), IngestFilesCommand{
		Files: []ingest.FileRequest{{ID: "f1"}, {ID: "f2"}},
	})
	if err == nil {
		t.Fatal("expected halt error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Errorf("expected command category, got %v", err)
	}
	if got != partial {
		t.Errorf("sink received %+v, want the partial result", got)
	}
}

func TestIngestFilesHandlerAppliesNoDefaultDeadline(t *testing.T) {
	ingestor := &fakeIngestor{}
	h := NewIngestFilesHandler(ingestor, nil, nil)

	err := h.Execute(context.Background(), IngestFilesCommand{
		Files: []ingest.FileRequest{{ID: "f1"}},
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if ingestor.hadDeadline {
		t.Error("batch context carried a deadline without the caller opting in")
	}
}

func TestSyncFolderHandlerReportsCandidates(t *testing.T) {
	ingestor := &fakeIngestor{candidates: []ingest.Candidate{
		{FileID: "f2", Name: "02_new.md", Slug: "new", Title: "New"},
	}}

	var got []ingest.Candidate
	h := NewSyncFolderHandler(ingestor, nil, func(c []ingest.Candidate) { got = c }, nil)

	err := h.Execute(context.Background(), SyncFolderCommand{FolderID: "folder-1"})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(got) != 1 || got[0].FileID != "f2" {
		t.Errorf("candidates = %+v", got)
	}
	if len(ingestor.ingested) != 0 {
		t.Errorf("ingest ran without ingest_new: %d calls", len(ingestor.ingested))
	}
}

func TestSyncFolderHandlerIngestsNew(t *testing.T) {
	ingestor := &fakeIngestor{candidates: []ingest.Candidate{
		{FileID: "f2", Name: "02_new.md", Slug: "new", Title: "New"},
	}}

	var got *ingest.Result
	h := NewSyncFolderHandler(ingestor, nil, nil, func(r *ingest.Result) { got = r })

	err := h.Execute(context.Background(), SyncFolderCommand{FolderID: "folder-1", IngestNew: true})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(ingestor.ingested) != 1 {
		t.Fatalf("ingest called %d times, want 1", len(ingestor.ingested))
	}
	req := ingestor.ingested[0][0]
	if req.ID != "f2" || req.Slug != "new" || req.Title != "New" {
		t.Errorf("request = %+v", req)
	}
	if got == nil {
		t.Error("result sink not called")
	}
}

func TestSyncFolderHandlerValidatesFolderID(t *testing.T) {
	h := NewSyncFolderHandler(&fakeIngestor{}, nil, nil, nil)

	err := h.Execute(context.Background(), SyncFolderCommand{FolderID: "  "})
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Errorf("expected validation category, got %v", err)
	}
}

func TestDeletePostHandler(t *testing.T) {
	repo := &fakeRepo{}
	h := NewDeletePostHandler(repo, nil)

	if err := h.Execute(context.Background(), DeletePostCommand{Slug: "old-post"}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(repo.deleted) != 1 || repo.deleted[0] != "old-post" {
		t.Errorf("deleted = %v", repo.deleted)
	}

	if err := h.Execute(context.Background(), DeletePostCommand{}); !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Errorf("expected validation category for blank slug, got %v", err)
	}
}
