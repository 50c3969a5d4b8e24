package atomcss

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestExpandVariantGroups(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "no group",
			in:   "m-2 p-4",
			want: "m-2 p-4",
		},
		{
			name: "single group",
			in:   "hover:(m-2 p-4)",
			want: "hover:m-2 hover:p-4",
		},
		{
			name: "group with sibling",
			in:   "block hover:(m-2 p-4) flex",
			want: "block hover:m-2 hover:p-4 flex",
		},
		{
			name: "nested groups",
			in:   "sm:(hover:(m-2 p-4) flex)",
			want: "sm:hover:m-2 sm:hover:p-4 sm:flex",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ExpandVariantGroups(tt.in))
		})
	}
}

func TestShortcutBasic(t *testing.T) {
	g := New(testConfig(), nil)

	result, err := g.GenerateTokens(tokens("btn"), nil)
	require.NoError(t, err)
	css := result.CSS()

	// Sub-utilities of the same bucket merge into one body, in rule order,
	// under the shortcuts layer.
	require.Contains(t, css, "/* layer: shortcuts */")
	require.Contains(t, css, ".btn{margin:0.5rem;padding:1rem}")
	require.NotContains(t, css, ".m-2")
	require.Equal(t, tokens("btn"), result.Matched)
}

func TestShortcutVariantScoping(t *testing.T) {
	g := New(testConfig(), nil)

	// Variants on the shortcut target the shortcut's own class, not the
	// sub-utilities.
	result, err := g.GenerateTokens(tokens("hover:btn"), nil)
	require.NoError(t, err)
	require.Contains(t, result.CSS(), `.hover\:btn:hover{margin:0.5rem;padding:1rem}`)
}

func TestShortcutSubTokenVariants(t *testing.T) {
	cfg := testConfig()
	cfg.Shortcuts = append(cfg.Shortcuts, Shortcut{Matcher: "card", Template: "m-2 hover:p-4"})
	g := New(cfg, nil)

	result, err := g.GenerateTokens(tokens("card"), nil)
	require.NoError(t, err)
	require.Contains(t, result.CSS(), ".card{margin:0.5rem}")
	require.Contains(t, result.CSS(), ".card:hover{padding:1rem}")
}

func TestDynamicShortcut(t *testing.T) {
	cfg := testConfig()
	cfg.Shortcuts = append(cfg.Shortcuts, Shortcut{
		Pattern: regexp.MustCompile(`^btn-(\d+)$`),
		Handler: func(match []string, _ *RuleContext) (any, error) {
			return "m-2 p-" + match[1], nil
		},
	})
	g := New(cfg, nil)

	result, err := g.GenerateTokens(tokens("btn-8"), nil)
	require.NoError(t, err)
	require.Contains(t, result.CSS(), ".btn-8{margin:0.5rem;padding:2rem}")
}

func TestShortcutExpandsNestedShortcuts(t *testing.T) {
	cfg := testConfig()
	cfg.Shortcuts = append(cfg.Shortcuts, Shortcut{Matcher: "cta", Template: "btn p-2"})
	g := New(cfg, nil)

	result, err := g.GenerateTokens(tokens("cta"), nil)
	require.NoError(t, err)
	// btn expands to m-2 p-4; p-2 follows.
	require.Contains(t, result.CSS(), ".cta{margin:0.5rem;padding:1rem;padding:0.5rem}")
}

func TestShortcutDedupesExpansion(t *testing.T) {
	cfg := testConfig()
	cfg.Shortcuts = append(cfg.Shortcuts, Shortcut{Matcher: "dup", Template: "m-2 m-2"})
	g := New(cfg, nil)

	result, err := g.GenerateTokens(tokens("dup"), nil)
	require.NoError(t, err)
	require.Contains(t, result.CSS(), ".dup{margin:0.5rem}")
	require.NotContains(t, result.CSS(), "margin:0.5rem;margin:0.5rem")
}

func TestShortcutRecursionCap(t *testing.T) {
	cfg := testConfig()
	cfg.Shortcuts = append(cfg.Shortcuts, Shortcut{Matcher: "loop", Template: "loop"})
	g := New(cfg, nil)

	// Terminates at the depth cap without error; the leftover literal never
	// matches a rule, so the token is simply unmatched.
	utils, err := g.ParseToken("loop")
	require.NoError(t, err)
	require.Nil(t, utils)
}

func TestShortcutMetaLayer(t *testing.T) {
	cfg := testConfig()
	cfg.Shortcuts = append(cfg.Shortcuts, Shortcut{
		Matcher:  "hero",
		Template: "m-2",
		Meta:     &RuleMeta{Layer: "components"},
	})
	g := New(cfg, nil)

	result, err := g.GenerateTokens(tokens("hero"), nil)
	require.NoError(t, err)
	require.Contains(t, result.GetLayer("components"), ".hero{margin:0.5rem}")
	require.Empty(t, result.GetLayer(LayerShortcuts))
}

func TestShortcutNoMergeMarker(t *testing.T) {
	cfg := testConfig()
	cfg.Rules = append(cfg.Rules, Rule{
		Matcher: "divided",
		Entries: CSSEntries{
			{Property: NoMergeProperty, Value: ""},
			{Property: "padding", Value: "1rem"},
		},
	})
	cfg.Shortcuts = append(cfg.Shortcuts, Shortcut{Matcher: "panel", Template: "m-2 divided"})
	g := New(cfg, nil)

	result, err := g.GenerateTokens(tokens("panel"), nil)
	require.NoError(t, err)
	css := result.CSS()

	// The marked entry group stays on its own; the marker never reaches the
	// output.
	require.Contains(t, css, ".panel{padding:1rem}")
	require.Contains(t, css, ".panel{margin:0.5rem}")
	require.NotContains(t, css, NoMergeProperty)
}

func TestShortcutUnmatchedSubTokenWarnsOnce(t *testing.T) {
	core, observed := observer.New(zap.WarnLevel)

	cfg := testConfig()
	cfg.Logger = zap.New(core)
	cfg.Shortcuts = append(cfg.Shortcuts, Shortcut{Matcher: "broken", Template: "missing-util m-2"})
	g := New(cfg, nil)

	result, err := g.GenerateTokens(tokens("broken"), nil)
	require.NoError(t, err)

	// The healthy sub-token still contributes.
	require.Contains(t, result.CSS(), ".broken{margin:0.5rem}")

	logs := observed.FilterMessageSnippet("missing-util").All()
	require.Len(t, logs, 1)
	require.Contains(t, logs[0].Message, `"broken"`)
}
