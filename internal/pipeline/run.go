// Package pipeline orchestrates the scan, ingest, and mirror stages.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/jhalverson1/workout-data-pipeline/internal/db"
	"github.com/jhalverson1/workout-data-pipeline/internal/parse"
	"github.com/jhalverson1/workout-data-pipeline/internal/scan"
	"github.com/jhalverson1/workout-data-pipeline/internal/types"
)

// Store is the persistence surface the pipeline needs.
type Store interface {
	IngestFile(ctx context.Context, file types.SourceFile, records []types.WorkoutRecord) (*db.IngestOutcome, error)
	IsProcessed(ctx context.Context, filename string) (bool, error)
	ListWorkouts(ctx context.Context) ([]types.WorkoutRecord, error)
}

// Mirror is the external spreadsheet sink.
type Mirror interface {
	Replace(ctx context.Context, records []types.WorkoutRecord) (int, error)
}

// Options holds everything one pipeline run needs. Mirror may be nil to run
// ingestion only.
type Options struct {
	SourceDir string
	Store     Store
	Mirror    Mirror
	Logger    *slog.Logger
}

// FileStatus classifies the outcome for one scanned file.
type FileStatus string

const (
	StatusIngested FileStatus = "ingested"
	StatusSkipped  FileStatus = "skipped"
	StatusFailed   FileStatus = "failed"
)

// FileOutcome reports what happened to one scanned file.
type FileOutcome struct {
	Name        string
	Status      FileStatus
	Inserted    int
	SkippedRows int
	Err         error
}

// Result aggregates the counters of one run.
type Result struct {
	RunID           uuid.UUID
	FilesScanned    int
	FilesSkipped    int
	FilesIngested   int
	FilesFailed     int
	RecordsInserted int
	RowsSkipped     int
	Files           []FileOutcome

	MirrorRan    bool
	MirroredRows int
	MirrorErr    error
}

// Failed reports whether any stage of the run left an unrecovered error.
func (r *Result) Failed() bool {
	return r.FilesFailed > 0 || r.MirrorErr != nil
}

// Run executes one end-to-end pass: scan the source directory, ingest every
// file not yet in the ledger (one transaction per file), then mirror the
// full dataset. A per-file failure never stops the run; the file stays out
// of the ledger and the next invocation retries it. A mirror failure is
// reported but never rolls back committed ingestion.
func Run(ctx context.Context, opts Options) (*Result, error) {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	result := &Result{RunID: uuid.New()}
	log = log.With(slog.String("run_id", result.RunID.String()))

	files, err := scan.Scan(opts.SourceDir)
	if err != nil {
		return result, err
	}
	result.FilesScanned = len(files)
	log.Info("scan complete", slog.Int("files", len(files)), slog.String("dir", opts.SourceDir))

	for _, file := range files {
		outcome := processFile(ctx, opts.Store, file, log)
		result.Files = append(result.Files, outcome)
		result.RowsSkipped += outcome.SkippedRows

		switch outcome.Status {
		case StatusIngested:
			result.FilesIngested++
			result.RecordsInserted += outcome.Inserted
		case StatusSkipped:
			result.FilesSkipped++
		case StatusFailed:
			result.FilesFailed++
		}
	}

	if opts.Mirror != nil {
		result.MirrorRan = true
		result.MirroredRows, result.MirrorErr = mirror(ctx, opts.Store, opts.Mirror, log)
	}

	return result, runError(result)
}

// Sync runs the mirror stage alone, from the store's current contents.
func Sync(ctx context.Context, store Store, m Mirror, log *slog.Logger) (int, error) {
	if log == nil {
		log = slog.Default()
	}
	return mirror(ctx, store, m, log)
}

func processFile(ctx context.Context, store Store, file types.SourceFile, log *slog.Logger) FileOutcome {
	log = log.With(slog.String("file", file.Name))

	processed, err := store.IsProcessed(ctx, file.Name)
	if err != nil {
		log.Error("ledger check failed", slog.Any("error", err))
		return FileOutcome{Name: file.Name, Status: StatusFailed, Err: err}
	}
	if processed {
		log.Info("file already processed, skipping")
		return FileOutcome{Name: file.Name, Status: StatusSkipped}
	}

	parsed, err := parse.ParseFile(file.Path, file.Name)
	if err != nil {
		log.Error("parse failed", slog.Any("error", err))
		return FileOutcome{Name: file.Name, Status: StatusFailed, Err: err}
	}
	for _, row := range parsed.Skipped {
		log.Warn("row skipped", slog.Int("line", row.Line), slog.String("reason", row.Reason))
	}

	outcome, err := store.IngestFile(ctx, file, parsed.Records)
	if err != nil {
		log.Error("ingest failed, batch rolled back", slog.Any("error", err))
		return FileOutcome{Name: file.Name, Status: StatusFailed, SkippedRows: len(parsed.Skipped), Err: err}
	}
	if outcome.AlreadyProcessed {
		log.Info("file processed by another run, skipping")
		return FileOutcome{Name: file.Name, Status: StatusSkipped, SkippedRows: len(parsed.Skipped)}
	}

	log.Info("file ingested",
		slog.Int("records", outcome.Inserted),
		slog.Int("rows_skipped", len(parsed.Skipped)))
	return FileOutcome{
		Name:        file.Name,
		Status:      StatusIngested,
		Inserted:    outcome.Inserted,
		SkippedRows: len(parsed.Skipped),
	}
}

func mirror(ctx context.Context, store Store, m Mirror, log *slog.Logger) (int, error) {
	records, err := store.ListWorkouts(ctx)
	if err != nil {
		log.Error("mirror snapshot read failed", slog.Any("error", err))
		return 0, err
	}

	rows, err := m.Replace(ctx, records)
	if err != nil {
		log.Error("mirror sync failed", slog.Any("error", err))
		return 0, err
	}
	log.Info("mirror synced", slog.Int("rows", rows))
	return rows, nil
}

// runError condenses a finished run into the error the CLI exits with.
func runError(result *Result) error {
	var errs []error
	if result.FilesFailed > 0 {
		errs = append(errs, fmt.Errorf("%d of %d files failed to ingest", result.FilesFailed, result.FilesScanned))
	}
	if result.MirrorErr != nil {
		errs = append(errs, fmt.Errorf("mirror sync failed: %w", result.MirrorErr))
	}
	return errors.Join(errs...)
}
