package db

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"github.com/jhalverson1/workout-data-pipeline/internal/types"
)

var workoutColumns = []string{
	"id",
	"name",
	"start_time",
	"end_time",
	"active_energy_kcal",
	"duration_sec",
	"distance_mi",
	"pace_min_mi",
	"created_at",
}

// ListWorkouts returns the complete workout dataset ordered by start time
// then id. The mirror always receives this full snapshot, never a delta.
func (db *DB) ListWorkouts(ctx context.Context) ([]types.WorkoutRecord, error) {
	query, args, err := psql.
		Select(workoutColumns...).
		From("workouts").
		OrderBy("start_time ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build workouts query: %w", err)
	}

	var records []types.WorkoutRecord
	if err := pgxscan.Select(ctx, db.q, &records, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list workouts: %w", err)
	}
	return records, nil
}

// CountWorkouts returns the number of stored workout records.
func (db *DB) CountWorkouts(ctx context.Context) (int64, error) {
	var count int64
	err := db.q.QueryRow(ctx, `SELECT count(*) FROM workouts`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count workouts: %w", err)
	}
	return count, nil
}

// insertWorkout writes a single record inside the file's transaction.
func insertWorkout(ctx context.Context, tx pgx.Tx, r types.WorkoutRecord) error {
	query, args, err := psql.
		Insert("workouts").
		Columns("name", "start_time", "end_time", "active_energy_kcal", "duration_sec", "distance_mi", "pace_min_mi").
		Values(r.Name, r.StartTime, r.EndTime, r.EnergyKcal, r.DurationSec, r.DistanceMi, r.PaceMinMi).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build workout insert: %w", err)
	}

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return err
	}
	return nil
}
