// Package scan lists candidate export files in the configured source directory.
package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jhalverson1/workout-data-pipeline/internal/types"
)

// exportExtension is the only extension the pipeline considers an export
// file. Anything else in the source directory is ignored rather than parsed.
const exportExtension = ".csv"

// Scan returns the CSV files in dir sorted lexicographically by filename so
// repeated runs visit files in the same order. The listing is read-only; an
// unreadable individual file is still returned and surfaces an error later at
// parse time. Scan fails only when the directory itself cannot be listed.
func Scan(dir string) ([]types.SourceFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list source directory %s: %w", dir, err)
	}

	var files []types.SourceFile
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !strings.EqualFold(filepath.Ext(entry.Name()), exportExtension) {
			continue
		}

		file := types.SourceFile{
			Name: entry.Name(),
			Path: filepath.Join(dir, entry.Name()),
		}
		// File creation time is not portably available; the modification
		// time is the closest stable stand-in for export files that are
		// written once and never touched again.
		if info, err := entry.Info(); err == nil {
			file.CreatedAt = info.ModTime()
		}
		files = append(files, file)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}
