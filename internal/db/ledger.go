package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"github.com/jhalverson1/workout-data-pipeline/internal/types"
)

// IsProcessed reports whether filename already has a ledger entry.
func (db *DB) IsProcessed(ctx context.Context, filename string) (bool, error) {
	return isProcessed(ctx, db.q, filename)
}

// rowQuerier is satisfied by both the pool and a transaction, so the
// processed check can run standalone or inside the ingest transaction.
type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func isProcessed(ctx context.Context, q rowQuerier, filename string) (bool, error) {
	query, args, err := psql.
		Select("1").
		From("processed_files").
		Where(squirrel.Eq{"filename": filename}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build ledger query: %w", err)
	}

	var one int
	err = q.QueryRow(ctx, query, args...).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check ledger for %s: %w", filename, err)
	}
	return true, nil
}

// ListProcessedFiles returns the full ledger ordered by ingestion time.
func (db *DB) ListProcessedFiles(ctx context.Context) ([]types.ProcessedFile, error) {
	query, args, err := psql.
		Select("id", "filename", "file_created_at", "ingested_at", "records_inserted").
		From("processed_files").
		OrderBy("ingested_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build ledger listing: %w", err)
	}

	var entries []types.ProcessedFile
	if err := pgxscan.Select(ctx, db.q, &entries, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list processed files: %w", err)
	}
	return entries, nil
}

// insertLedgerEntry appends a ledger row inside the file's transaction. The
// unique constraint on filename is the authoritative duplicate guard; the
// caller maps a unique violation to "already processed".
func insertLedgerEntry(ctx context.Context, tx pgx.Tx, entry types.ProcessedFile) error {
	query, args, err := psql.
		Insert("processed_files").
		Columns("filename", "file_created_at", "ingested_at", "records_inserted").
		Values(entry.Filename, entry.FileCreatedAt, entry.IngestedAt, entry.RecordsInserted).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build ledger insert: %w", err)
	}

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return err
	}
	return nil
}
