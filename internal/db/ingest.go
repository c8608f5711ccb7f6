package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jhalverson1/workout-data-pipeline/internal/types"
)

// IngestOutcome describes what happened to one source file's batch.
type IngestOutcome struct {
	Filename         string
	Inserted         int
	AlreadyProcessed bool
}

// IngestFile inserts a file's records and its ledger entry as a single
// transaction. Either every record and the ledger row commit together, or
// none do; a failure partway leaves the file absent from the ledger so a
// later run retries it in full.
//
// The ledger is re-checked inside the transaction to guard against the file
// having been processed between scan and write, and a unique violation on
// the ledger insert is treated as "already processed" rather than an error,
// so a concurrent run that wins the race never surfaces as a failure.
func (db *DB) IngestFile(ctx context.Context, file types.SourceFile, records []types.WorkoutRecord) (*IngestOutcome, error) {
	tx, err := db.q.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction for %s: %w", file.Name, err)
	}
	defer tx.Rollback(ctx)

	processed, err := isProcessed(ctx, tx, file.Name)
	if err != nil {
		return nil, err
	}
	if processed {
		return &IngestOutcome{Filename: file.Name, AlreadyProcessed: true}, nil
	}

	for i, record := range records {
		if err := insertWorkout(ctx, tx, record); err != nil {
			return nil, fmt.Errorf("failed to insert record %d of %s: %w", i+1, file.Name, err)
		}
	}

	entry := types.ProcessedFile{
		Filename:        file.Name,
		FileCreatedAt:   file.CreatedAt,
		IngestedAt:      time.Now().UTC(),
		RecordsInserted: len(records),
	}
	if err := insertLedgerEntry(ctx, tx, entry); err != nil {
		if isUniqueViolation(err) {
			return &IngestOutcome{Filename: file.Name, AlreadyProcessed: true}, nil
		}
		return nil, fmt.Errorf("failed to record %s in ledger: %w", file.Name, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit %s: %w", file.Name, err)
	}
	return &IngestOutcome{Filename: file.Name, Inserted: len(records)}, nil
}
