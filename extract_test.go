package atomcss

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitExtractor(t *testing.T) {
	ctx := &ExtractorContext{
		Code: `<div class="m-2 hover:p-4 text-red-500/50">
	<span class='btn'>x</span>
</div>`,
	}
	tokens, err := SplitExtractor(ctx)
	require.NoError(t, err)

	require.Contains(t, tokens, "m-2")
	require.Contains(t, tokens, "hover:p-4")
	require.Contains(t, tokens, "text-red-500/50")
	require.Contains(t, tokens, "btn")
	require.NotContains(t, tokens, "")
}

func TestHTMLClassExtractor(t *testing.T) {
	ctx := &ExtractorContext{
		Code: `<html><body>
<div class="m-2 p-4" id="main">stray tokens here</div>
<span CLASS='btn'>x</span>
<p data-class="nope">y</p>
</body></html>`,
	}
	tokens, err := HTMLClassExtractor(ctx)
	require.NoError(t, err)

	require.ElementsMatch(t, []string{"m-2", "p-4", "btn"}, tokens)
}

func TestApplyExtractorsUnion(t *testing.T) {
	g := New(testConfig(), nil)

	acc, err := g.ApplyExtractors(`<i class="m-2">`, "a.html", nil)
	require.NoError(t, err)
	acc, err = g.ApplyExtractors(`<i class="p-4">`, "b.html", acc)
	require.NoError(t, err)

	require.Contains(t, acc, "m-2")
	require.Contains(t, acc, "p-4")
}

func TestApplyExtractorsRunsAllConfigured(t *testing.T) {
	cfg := testConfig()
	cfg.Extractors = []Extractor{
		func(_ *ExtractorContext) ([]string, error) { return []string{"from-first"}, nil },
		func(ctx *ExtractorContext) ([]string, error) { return []string{"id:" + ctx.ID}, nil },
	}
	g := New(cfg, nil)

	acc, err := g.ApplyExtractors("ignored", "main.html", nil)
	require.NoError(t, err)
	require.Contains(t, acc, "from-first")
	require.Contains(t, acc, "id:main.html")
}
