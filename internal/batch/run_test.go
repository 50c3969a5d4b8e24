package batch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yacobolo/atomcss"
)

func TestRunGeneratesFromFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.html"),
		[]byte(`<div class="m-2 hover:p-4">`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.html"),
		[]byte(`<div class="flex unknown-zzz">`), 0o644))

	g := atomcss.New(&atomcss.Config{}, atomcss.DefaultPreset())
	files := []string{filepath.Join(dir, "a.html"), filepath.Join(dir, "b.html")}

	result, stats, err := Run(g, files, nil, zap.NewNop().Sugar())
	require.NoError(t, err)

	css := result.CSS()
	require.Contains(t, css, ".m-2{margin:0.5rem}")
	require.Contains(t, css, `.hover\:p-4:hover{padding:1rem}`)
	require.Contains(t, css, ".flex{display:flex}")
	require.NotContains(t, css, "unknown-zzz")

	require.Equal(t, 3, stats.Matched)
	require.Greater(t, stats.TokensSeen, 3)
	require.Equal(t, len(css), stats.CSSBytes)
}

func TestRunSkipsUnreadableFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.html"),
		[]byte(`<div class="m-2">`), 0o644))

	g := atomcss.New(&atomcss.Config{}, atomcss.DefaultPreset())
	files := []string{filepath.Join(dir, "missing.html"), filepath.Join(dir, "a.html")}

	result, _, err := Run(g, files, nil, zap.NewNop().Sugar())
	require.NoError(t, err)
	require.Contains(t, result.CSS(), ".m-2{margin:0.5rem}")
}

func TestRunFailsWhenNothingReadable(t *testing.T) {
	g := atomcss.New(&atomcss.Config{}, atomcss.DefaultPreset())

	_, _, err := Run(g, []string{"/definitely/not/here.html"}, nil, zap.NewNop().Sugar())
	require.Error(t, err)
}
