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
	if err := runIngest(os.Args[1:]); err != nil {
		log.Fatalf("drive ingest: %v", err)
	}
}

func runIngest(args []string) error {
	fs := flag.NewFlagSet("drive-ingest", flag.ExitOnError)
	driver := fs.String("db-driver", "sqlite3", "Database driver (sqlite3 or postgres)")
	dsn := fs.String("dsn", "", "Database connection string")
	baseURL := fs.String("drive-url", "", "Override for the Drive API base URL")
	payloadPath := fs.String("files", "-", "Path to the batch payload JSON, or - for stdin")
	logLevel := fs.String("log-level", "info", "Log level")
	logFormat := fs.String("log-format", "console", "Log format (json, console, pretty)")
	migrate := fs.Bool("migrate", false, "Apply schema migrations before ingesting")

	if err := fs.Parse(args); err != nil {
		return err
	}

	raw, err := readPayload(*payloadPath)
	if err != nil {
		return err
	}

	cmd, err := drivecmd.DecodeIngestPayload(raw)
	if err != nil {
		return err
	}

	ctx := context.Background()
	module, err := moduleBuilder(ctx, bootstrap.Options{
		Driver:   *driver,
		DSN:      *dsn,
		BaseURL:  *baseURL,
		LogLevel: *logLevel,
		Format:   *logFormat,
		Migrate:  *migrate,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}

	var result *ingest.Result
	handler := module.Module.IngestFilesHandler(func(r *ingest.Result) { result = r })
	execErr := handler.Execute(ctx, cmd)

	// A halted batch still delivers its partial result through the sink;
	// print the progress made before surfacing the failure.
	if result != nil {
		if repErr := reportResult(os.Stdout, result); repErr != nil && execErr == nil {
			return repErr
		}
	}
	if execErr != nil {
		return fmt.Errorf("execute ingest command: %w", execErr)
	}
	if result == nil {
		return fmt.Errorf("no result produced")
	}
	return nil
}

func readPayload(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

// reportResult prints the batch outcome and returns an error when nothing
// was stored, so the process exit code reflects the run.
func reportResult(w io.Writer, result *ingest.Result) error {
	for _, summary := range result.Ingested {
		fmt.Fprintf(w, "stored %s (%s)\n", summary.Slug, summary.FileID)
	}
	for _, itemErr := range result.Errors {
		fmt.Fprintf(w, "failed %s: %s\n", itemErr.FileID, itemErr.Message)
	}
	fmt.Fprintf(w, "status: %s\n", result.Status())

	if result.Status() == ingest.StatusFailed {
		return fmt.Errorf("batch failed: %d errors", len(result.Errors))
	}
	return nil
}
