// Package parse converts exported workout CSV files into typed records.
package parse

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jhalverson1/workout-data-pipeline/internal/types"
)

// Column headers of the export format. The parser maps columns by header
// name, so column order in the file does not matter.
const (
	colType     = "Type"
	colStart    = "Start"
	colEnd      = "End"
	colEnergy   = "Active Energy (kcal)"
	colDuration = "Duration"
	colDistance = "Distance (mi)"
)

// timeLayouts are tried in order when parsing the Start/End columns.
var timeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	time.RFC3339,
}

// SkippedRow records one row rejected during parsing, with enough context
// to diagnose without re-running the pipeline.
type SkippedRow struct {
	Line   int
	Reason string
}

// FileResult holds the parsed records of one file plus every skipped row.
type FileResult struct {
	Filename string
	Records  []types.WorkoutRecord
	Skipped  []SkippedRow
}

// ParseFile reads and parses a single export file from disk.
func ParseFile(path, filename string) (*FileResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", filename, err)
	}
	defer f.Close()
	return ParseRows(f, filename)
}

// ParseRows parses CSV content into workout records. A row missing its name
// or timestamps, or whose end time precedes its start time, is skipped and
// counted, never fatal to the file. Optional numeric fields that fail to
// parse (or are negative) are stored as absent instead of rejecting the row.
func ParseRows(r io.Reader, filename string) (*FileResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header of %s: %w", filename, err)
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{colType, colStart, colEnd} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("%s: missing required column %q", filename, required)
		}
	}

	result := &FileResult{Filename: filename}
	line := 1
	for {
		line++
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.Skipped = append(result.Skipped, SkippedRow{Line: line, Reason: err.Error()})
			continue
		}

		record, reason := parseRow(row, columns)
		if reason != "" {
			result.Skipped = append(result.Skipped, SkippedRow{Line: line, Reason: reason})
			continue
		}
		result.Records = append(result.Records, *record)
	}

	return result, nil
}

func parseRow(row []string, columns map[string]int) (*types.WorkoutRecord, string) {
	name := field(row, columns, colType)
	if name == "" {
		return nil, "missing workout type"
	}

	start, err := parseTime(field(row, columns, colStart))
	if err != nil {
		return nil, fmt.Sprintf("bad start time: %v", err)
	}
	end, err := parseTime(field(row, columns, colEnd))
	if err != nil {
		return nil, fmt.Sprintf("bad end time: %v", err)
	}

	record := &types.WorkoutRecord{
		Name:       name,
		StartTime:  start,
		EndTime:    end,
		EnergyKcal: parseOptionalFloat(field(row, columns, colEnergy)),
		DistanceMi: parseOptionalFloat(field(row, columns, colDistance)),
	}

	duration, ok := parseDuration(field(row, columns, colDuration))
	if !ok {
		// Duration is derivable from the timestamps when the export omits
		// or mangles it.
		duration = end.Sub(start).Seconds()
	}
	record.DurationSec = duration
	record.PaceMinMi = pace(record.DurationSec, record.DistanceMi)

	if err := record.Validate(); err != nil {
		return nil, fmt.Sprintf("invalid record: %v", err)
	}
	return record, ""
}

func field(row []string, columns map[string]int, name string) string {
	i, ok := columns[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func parseTime(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", value)
}

// parseDuration accepts hh:mm:ss or mm:ss clock notation, or a plain number
// of seconds, and returns total seconds.
func parseDuration(value string) (float64, bool) {
	if value == "" {
		return 0, false
	}
	if !strings.Contains(value, ":") {
		seconds, err := strconv.ParseFloat(value, 64)
		if err != nil || seconds < 0 {
			return 0, false
		}
		return seconds, true
	}

	parts := strings.Split(value, ":")
	if len(parts) > 3 {
		return 0, false
	}
	total := 0.0
	for i, part := range parts {
		n, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil || n < 0 {
			return 0, false
		}
		total += n * math.Pow(60, float64(len(parts)-1-i))
	}
	return total, true
}

// parseOptionalFloat returns nil for empty, unparsable, or negative values;
// those rows are kept with the field recorded as absent.
func parseOptionalFloat(value string) *float64 {
	if value == "" {
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || f < 0 || math.IsNaN(f) {
		return nil
	}
	return &f
}

// pace computes minutes per mile when a positive distance is present.
func pace(durationSec float64, distanceMi *float64) *float64 {
	if distanceMi == nil || *distanceMi <= 0 {
		return nil
	}
	minutes := durationSec / 60.0
	p := math.Round(minutes / *distanceMi * 100)
	p /= 100
	return &p
}
