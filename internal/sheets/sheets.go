// Package sheets mirrors the workout dataset to a Google Sheet.
package sheets

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/jhalverson1/workout-data-pipeline/internal/types"
)

// timestampLayout matches what downstream dashboard consumers expect.
const timestampLayout = "2006-01-02 15:04:05"

// header is the first row written on every sync.
var header = []any{
	"Type", "Start", "End", "Active Energy (kcal)", "Duration (s)", "Distance (mi)", "Pace (min/mi)",
}

// Client is a write-only view of one spreadsheet range.
type Client struct {
	svc           *sheets.Service
	spreadsheetID string
	sheetRange    string
}

// NewClient authenticates with a service-account credentials file and
// targets the given spreadsheet range (e.g. "Sheet1").
func NewClient(ctx context.Context, credentialsFile, spreadsheetID, sheetRange string) (*Client, error) {
	svc, err := sheets.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	if sheetRange == "" {
		sheetRange = "Sheet1"
	}
	return &Client{svc: svc, spreadsheetID: spreadsheetID, sheetRange: sheetRange}, nil
}

// Replace clears the target range and writes the full dataset, header
// included. Last writer wins; there is no merge with existing content.
// Returns the number of data rows written.
func (c *Client) Replace(ctx context.Context, records []types.WorkoutRecord) (int, error) {
	_, err := c.svc.Spreadsheets.Values.
		Clear(c.spreadsheetID, c.sheetRange, &sheets.ClearValuesRequest{}).
		Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("failed to clear sheet range %s: %w", c.sheetRange, err)
	}

	body := &sheets.ValueRange{Values: Rows(records)}
	_, err = c.svc.Spreadsheets.Values.
		Update(c.spreadsheetID, c.sheetRange+"!A1", body).
		ValueInputOption("RAW").
		Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("failed to update sheet range %s: %w", c.sheetRange, err)
	}
	return len(records), nil
}

// Rows converts records into sheet cell values: header first, timestamps
// formatted as strings, absent numeric fields as empty cells.
func Rows(records []types.WorkoutRecord) [][]any {
	rows := make([][]any, 0, len(records)+1)
	rows = append(rows, header)
	for _, r := range records {
		rows = append(rows, []any{
			r.Name,
			r.StartTime.Format(timestampLayout),
			r.EndTime.Format(timestampLayout),
			optionalCell(r.EnergyKcal),
			r.DurationSec,
			optionalCell(r.DistanceMi),
			optionalCell(r.PaceMinMi),
		})
	}
	return rows
}

// optionalCell renders an absent value as an empty cell; NULLs must not
// reach the API as JSON null or the whole update is rejected.
func optionalCell(v *float64) any {
	if v == nil {
		return ""
	}
	return *v
}
