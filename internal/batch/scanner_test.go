package batch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScanFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))

	write := func(name string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(`<i class="m-2">`), 0o644))
	}
	write("a.html")
	write("b.html")
	write("c.txt")
	write(filepath.Join("sub", "d.html"))

	files, stats, err := ScanFiles([]string{filepath.Join(dir, "**", "*.html")})
	require.NoError(t, err)

	require.Len(t, files, 3)
	require.Equal(t, 3, stats.FilesScanned)
	require.Equal(t, 0, stats.FilesSkipped)

	// Sorted and deduplicated across overlapping patterns
	again, _, err := ScanFiles([]string{
		filepath.Join(dir, "**", "*.html"),
		filepath.Join(dir, "*.html"),
	})
	require.NoError(t, err)
	require.Equal(t, files, again)
}

func TestScanFilesNoMatches(t *testing.T) {
	dir := t.TempDir()

	files, stats, err := ScanFiles([]string{filepath.Join(dir, "*.css")})
	require.NoError(t, err)
	require.Empty(t, files)
	require.Equal(t, 0, stats.FilesDiscovered)
}
