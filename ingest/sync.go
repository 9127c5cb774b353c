package ingest

import (
	"context"
	"errors"
)

// FindUnpublished compares the remote folder listing against stored posts
// and returns the documents that have not been ingested yet, with their
// derived slug and title. Files whose names do not follow the naming
// convention are skipped with a warning rather than failing the sync.
func (o *Orchestrator) FindUnpublished(ctx context.Context, folderID string) ([]Candidate, error) {
	files, err := o.store.ListFolder(ctx, folderID)
	if err != nil {
		return nil, err
	}

	stored, err := o.repo.Identifiers(ctx)
	if err != nil {
		return nil, err
	}

	known := make(map[string]struct{}, len(stored))
	for _, id := range stored {
		known[id.SourceFileID] = struct{}{}
	}

	candidates := []Candidate{}
	for _, file := range files {
		if _, ok := known[file.ID]; ok {
			continue
		}
		slug, title, err := SlugAndTitle(file.Name)
		if err != nil {
			if errors.Is(err, ErrBadFileName) {
				o.logger.Warn("skipping file with unconventional name", "file_id", file.ID, "name", file.Name)
				continue
			}
			return nil, err
		}
		candidates = append(candidates, Candidate{
			FileID: file.ID,
			Name:   file.Name,
			Slug:   slug,
			Title:  title,
		})
	}

	o.logger.Debug("sync comparison finished",
		"remote", len(files), "stored", len(stored), "unpublished", len(candidates))
	return candidates, nil
}
