package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhalverson1/workout-data-pipeline/internal/types"
)

func ptr(f float64) *float64 { return &f }

func testFile() types.SourceFile {
	return types.SourceFile{
		Name:      "2024-01.csv",
		Path:      "/exports/2024-01.csv",
		CreatedAt: time.Date(2024, 1, 31, 12, 0, 0, 0, time.UTC),
	}
}

func testRecords(n int) []types.WorkoutRecord {
	start := time.Date(2024, 1, 5, 7, 30, 0, 0, time.UTC)
	records := make([]types.WorkoutRecord, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, types.WorkoutRecord{
			Name:        "Outdoor Run",
			StartTime:   start.AddDate(0, 0, i),
			EndTime:     start.AddDate(0, 0, i).Add(45 * time.Minute),
			EnergyKcal:  ptr(450),
			DurationSec: 2700,
			DistanceMi:  ptr(5.2),
			PaceMinMi:   ptr(8.65),
		})
	}
	return records
}

func expectNotInLedger(mock pgxmock.PgxPoolIface) {
	mock.ExpectQuery(`SELECT 1 FROM processed_files`).
		WithArgs("2024-01.csv").
		WillReturnError(pgx.ErrNoRows)
}

func TestIngestFileCommitsBatchAndLedgerTogether(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	expectNotInLedger(mock)
	for i := 0; i < 3; i++ {
		mock.ExpectExec(`INSERT INTO workouts`).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
	}
	mock.ExpectExec(`INSERT INTO processed_files`).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	outcome, err := New(mock).IngestFile(context.Background(), testFile(), testRecords(3))
	require.NoError(t, err)
	assert.Equal(t, 3, outcome.Inserted)
	assert.False(t, outcome.AlreadyProcessed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIngestFileRollsBackOnMidBatchFailure(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	expectNotInLedger(mock)
	mock.ExpectExec(`INSERT INTO workouts`).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(`INSERT INTO workouts`).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	outcome, err := New(mock).IngestFile(context.Background(), testFile(), testRecords(3))
	require.Error(t, err)
	assert.Nil(t, outcome)
	assert.Contains(t, err.Error(), "record 2 of 2024-01.csv")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIngestFileSkipsWhenLedgerHasEntry(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT 1 FROM processed_files`).
		WithArgs("2024-01.csv").
		WillReturnRows(pgxmock.NewRows([]string{"one"}).AddRow(1))
	mock.ExpectRollback()

	outcome, err := New(mock).IngestFile(context.Background(), testFile(), testRecords(2))
	require.NoError(t, err)
	assert.True(t, outcome.AlreadyProcessed)
	assert.Zero(t, outcome.Inserted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIngestFileTreatsLedgerUniqueViolationAsProcessed(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	expectNotInLedger(mock)
	mock.ExpectExec(`INSERT INTO workouts`).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(`INSERT INTO processed_files`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "processed_files_filename_key"})
	mock.ExpectRollback()

	outcome, err := New(mock).IngestFile(context.Background(), testFile(), testRecords(1))
	require.NoError(t, err, "a concurrent run winning the race is not an error")
	assert.True(t, outcome.AlreadyProcessed)
	assert.Zero(t, outcome.Inserted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIngestFileEmptyBatchStillRecordsFile(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	expectNotInLedger(mock)
	mock.ExpectExec(`INSERT INTO processed_files`).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	outcome, err := New(mock).IngestFile(context.Background(), testFile(), nil)
	require.NoError(t, err)
	assert.Zero(t, outcome.Inserted)
	assert.False(t, outcome.AlreadyProcessed)
	assert.NoError(t, mock.ExpectationsWereMet())
}
