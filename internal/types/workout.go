// Package types defines the shared data structures for the workout pipeline.
package types

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// WorkoutRecord represents one completed exercise session parsed from an
// export file. There is no natural key: two distinct sessions may carry
// identical attribute values, so uniqueness is enforced only on the source
// file via the processed-file ledger.
type WorkoutRecord struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name" validate:"required"`
	StartTime   time.Time `db:"start_time" json:"start_time" validate:"required"`
	EndTime     time.Time `db:"end_time" json:"end_time" validate:"required,gtefield=StartTime"`
	EnergyKcal  *float64  `db:"active_energy_kcal" json:"active_energy_kcal,omitempty" validate:"omitempty,gte=0"`
	DurationSec float64   `db:"duration_sec" json:"duration_sec" validate:"gte=0"`
	DistanceMi  *float64  `db:"distance_mi" json:"distance_mi,omitempty" validate:"omitempty,gte=0"`
	PaceMinMi   *float64  `db:"pace_min_mi" json:"pace_min_mi,omitempty" validate:"omitempty,gte=0"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// ProcessedFile is a ledger entry marking a source file as fully ingested.
// Presence of a filename implies every row parsed from that file was
// durably committed in the same transaction that wrote the entry.
type ProcessedFile struct {
	ID              int64     `db:"id" json:"id"`
	Filename        string    `db:"filename" json:"filename"`
	FileCreatedAt   time.Time `db:"file_created_at" json:"file_created_at"`
	IngestedAt      time.Time `db:"ingested_at" json:"ingested_at"`
	RecordsInserted int       `db:"records_inserted" json:"records_inserted"`
}

// SourceFile describes a candidate export file found by the scanner.
type SourceFile struct {
	Name      string    `json:"name"`
	Path      string    `json:"path"`
	CreatedAt time.Time `json:"created_at"`
}

var validate = validator.New()

// Validate checks a record against its struct-level rules: required name and
// timestamps, end time not before start time, non-negative numeric fields.
func (r *WorkoutRecord) Validate() error {
	return validate.Struct(r)
}
