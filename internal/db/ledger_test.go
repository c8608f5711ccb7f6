package db

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsProcessed(t *testing.T) {
	t.Run("known file", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`SELECT 1 FROM processed_files`).
			WithArgs("2024-01.csv").
			WillReturnRows(pgxmock.NewRows([]string{"one"}).AddRow(1))

		processed, err := New(mock).IsProcessed(context.Background(), "2024-01.csv")
		require.NoError(t, err)
		assert.True(t, processed)
	})

	t.Run("unknown file", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`SELECT 1 FROM processed_files`).
			WithArgs("2024-02.csv").
			WillReturnError(pgx.ErrNoRows)

		processed, err := New(mock).IsProcessed(context.Background(), "2024-02.csv")
		require.NoError(t, err)
		assert.False(t, processed)
	})
}

func TestListProcessedFiles(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	ingested := time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)
	rows := pgxmock.NewRows([]string{"id", "filename", "file_created_at", "ingested_at", "records_inserted"}).
		AddRow(int64(1), "2024-01.csv", ingested.AddDate(0, -1, 0), ingested, 12).
		AddRow(int64(2), "2024-02.csv", ingested.AddDate(0, 0, -1), ingested.Add(time.Hour), 9)
	mock.ExpectQuery(`SELECT id, filename, file_created_at, ingested_at, records_inserted FROM processed_files`).
		WillReturnRows(rows)

	entries, err := New(mock).ListProcessedFiles(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "2024-01.csv", entries[0].Filename)
	assert.Equal(t, 12, entries[0].RecordsInserted)
	assert.Equal(t, "2024-02.csv", entries[1].Filename)
}
