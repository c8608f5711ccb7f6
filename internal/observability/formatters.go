// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jhalverson1/workout-data-pipeline/internal/pipeline"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxFilesToShow is the number of per-file outcomes displayed
	maxFilesToShow = 10
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintRunSummary outputs a human-readable summary of a finished run.
func (p *Printer) PrintRunSummary(result *pipeline.Result) {
	if result == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Files scanned:    %d\n", result.FilesScanned))
	sb.WriteString(fmt.Sprintf("Files ingested:   %d\n", result.FilesIngested))
	sb.WriteString(fmt.Sprintf("Files skipped:    %d\n", result.FilesSkipped))
	sb.WriteString(fmt.Sprintf("Files failed:     %d\n", result.FilesFailed))
	sb.WriteString(fmt.Sprintf("Records inserted: %d\n", result.RecordsInserted))
	sb.WriteString(fmt.Sprintf("Rows skipped:     %d\n", result.RowsSkipped))

	if result.MirrorRan {
		sb.WriteString("\n")
		if result.MirrorErr != nil {
			sb.WriteString(fmt.Sprintf("Mirror:           FAILED (%v)\n", result.MirrorErr))
		} else {
			sb.WriteString(fmt.Sprintf("Mirror:           %d rows synced\n", result.MirroredRows))
		}
	}

	if len(result.Files) > 0 {
		sb.WriteString("\nFiles:\n")
		count := min(len(result.Files), maxFilesToShow)
		for i := 0; i < count; i++ {
			f := result.Files[i]
			sb.WriteString(fmt.Sprintf("  • %s: %s", f.Name, f.Status))
			if f.Status == pipeline.StatusIngested {
				sb.WriteString(fmt.Sprintf(" (%d records)", f.Inserted))
			}
			sb.WriteString("\n")
		}
		if len(result.Files) > maxFilesToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(result.Files)-maxFilesToShow))
		}
	}

	p.printBox(fmt.Sprintf("Run %s", shortID(result.RunID.String())), strings.TrimRight(sb.String(), "\n"))
}

// shortID truncates a uuid for display
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
