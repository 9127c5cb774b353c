package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/goliatone/go-articles/cmd/drive/internal/bootstrap"
	"github.com/goliatone/go-articles/ingest"
	drivecmd "github.com/goliatone/go-articles/internal/commands/drive"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runSync(os.Args[1:]); err != nil {
		log.Fatalf("drive sync: %v", err)
	}
}

func runSync(args []string) error {
	fs := flag.NewFlagSet("drive-sync", flag.ExitOnError)
	driver := fs.String("db-driver", "sqlite3", "Database driver (sqlite3 or postgres)")
	dsn := fs.String("dsn", "", "Database connection string")
	baseURL := fs.String("drive-url", "", "Override for the Drive API base URL")
	folderID := fs.String("folder", "", "Remote folder to compare against stored posts")
	ingestNew := fs.Bool("ingest", false, "Ingest unpublished documents instead of only listing them")
	logLevel := fs.String("log-level", "info", "Log level")
	logFormat := fs.String("log-format", "console", "Log format (json, console, pretty)")
	migrate := fs.Bool("migrate", false, "Apply schema migrations before syncing")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *folderID == "" {
		return fmt.Errorf("folder is required")
	}

	ctx := context.Background()
	module, err := moduleBuilder(ctx, bootstrap.Options{
		Driver:   *driver,
		DSN:      *dsn,
		BaseURL:  *baseURL,
		FolderID: *folderID,
		LogLevel: *logLevel,
		Format:   *logFormat,
		Migrate:  *migrate,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}

	var (
		candidates []ingest.Candidate
		compared   bool
		result     *ingest.Result
	)
	handler := module.Module.SyncFolderHandler(
		func(c []ingest.Candidate) { candidates, compared = c, true },
		func(r *ingest.Result) { result = r },
	)

	cmd := drivecmd.SyncFolderCommand{FolderID: *folderID, IngestNew: *ingestNew}
	execErr := handler.Execute(ctx, cmd)

	// A halted ingest still delivers the comparison and the partial result;
	// print them before surfacing the failure.
	if compared {
		if repErr := reportSync(os.Stdout, candidates, result); repErr != nil && execErr == nil {
			return repErr
		}
	}
	if execErr != nil {
		return fmt.Errorf("execute sync command: %w", execErr)
	}
	return nil
}

func reportSync(w io.Writer, candidates []ingest.Candidate, result *ingest.Result) error {
	if len(candidates) == 0 {
		fmt.Fprintln(w, "no unpublished documents")
		return nil
	}

	for _, c := range candidates {
		fmt.Fprintf(w, "unpublished %s (%s) -> %s\n", c.Name, c.FileID, c.Slug)
	}

	if result == nil {
		return nil
	}
	for _, summary := range result.Ingested {
		fmt.Fprintf(w, "stored %s (%s)\n", summary.Slug, summary.FileID)
	}
	for _, itemErr := range result.Errors {
		fmt.Fprintf(w, "failed %s: %s\n", itemErr.FileID, itemErr.Message)
	}
	fmt.Fprintf(w, "status: %s\n", result.Status())

	if result.Status() == ingest.StatusFailed {
		return fmt.Errorf("sync ingest failed: %d errors", len(result.Errors))
	}
	return nil
}
