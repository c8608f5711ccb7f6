package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(f float64) *float64 { return &f }

func TestWorkoutRecordValidate(t *testing.T) {
	start := time.Date(2024, 1, 5, 7, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		record  WorkoutRecord
		wantErr bool
	}{
		{
			name: "valid",
			record: WorkoutRecord{
				Name:        "Outdoor Run",
				StartTime:   start,
				EndTime:     start.Add(45 * time.Minute),
				EnergyKcal:  ptr(450),
				DurationSec: 2700,
				DistanceMi:  ptr(5.2),
			},
		},
		{
			name: "end equals start",
			record: WorkoutRecord{
				Name:      "Outdoor Run",
				StartTime: start,
				EndTime:   start,
			},
		},
		{
			name: "end before start",
			record: WorkoutRecord{
				Name:      "Outdoor Run",
				StartTime: start,
				EndTime:   start.Add(-time.Minute),
			},
			wantErr: true,
		},
		{
			name: "missing name",
			record: WorkoutRecord{
				StartTime: start,
				EndTime:   start.Add(time.Hour),
			},
			wantErr: true,
		},
		{
			name: "negative energy",
			record: WorkoutRecord{
				Name:       "Outdoor Run",
				StartTime:  start,
				EndTime:    start.Add(time.Hour),
				EnergyKcal: ptr(-1),
			},
			wantErr: true,
		},
		{
			name: "negative duration",
			record: WorkoutRecord{
				Name:        "Outdoor Run",
				StartTime:   start,
				EndTime:     start.Add(time.Hour),
				DurationSec: -5,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.record.Validate()
			if tt.wantErr {
				require.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
