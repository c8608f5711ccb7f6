package scan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("Type,Start,End\n"), 0o644))
}

func TestScanFiltersAndSorts(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "2024-02.csv")
	writeFile(t, dir, "2024-01.csv")
	writeFile(t, dir, "2024-03.CSV")
	writeFile(t, dir, "notes.txt")
	writeFile(t, dir, "archive.csv.bak")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.csv"), 0o755))

	files, err := Scan(dir)
	require.NoError(t, err)

	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"2024-01.csv", "2024-02.csv", "2024-03.CSV"}, names)

	for _, f := range files {
		assert.Equal(t, filepath.Join(dir, f.Name), f.Path)
		assert.False(t, f.CreatedAt.IsZero(), "scanner should capture file metadata time")
	}
}

func TestScanDeterministicOrder(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.csv")
	writeFile(t, dir, "a.csv")
	writeFile(t, dir, "c.csv")

	first, err := Scan(dir)
	require.NoError(t, err)
	second, err := Scan(dir)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestScanEmptyDirectory(t *testing.T) {
	files, err := Scan(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestScanMissingDirectory(t *testing.T) {
	_, err := Scan("/nonexistent/exports")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/nonexistent/exports")
}
