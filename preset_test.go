package atomcss

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func presetGen() *Generator {
	return New(&Config{}, DefaultPreset())
}

func TestPresetSpacing(t *testing.T) {
	tests := []struct {
		token string
		want  string
	}{
		{token: "m-2", want: ".m-2{margin:0.5rem}"},
		{token: "p-4", want: ".p-4{padding:1rem}"},
		{token: "pt-1", want: ".pt-1{padding-top:0.25rem}"},
		{token: "mx-4", want: ".mx-4{margin-left:1rem;margin-right:1rem}"},
		{token: "my-0.5", want: `.my-0\.5{margin-top:0.125rem;margin-bottom:0.125rem}`},
	}

	g := presetGen()
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			result, err := g.GenerateTokens(tokens(tt.token), nil)
			require.NoError(t, err)
			require.Contains(t, result.CSS(), tt.want)
		})
	}
}

func TestPresetDisplayAndSizing(t *testing.T) {
	g := presetGen()

	result, err := g.GenerateTokens(tokens("flex", "hidden", "w-full", "h-4"), nil)
	require.NoError(t, err)
	css := result.CSS()
	require.Contains(t, css, ".flex{display:flex}")
	require.Contains(t, css, ".hidden{display:none}")
	require.Contains(t, css, ".w-full{width:100%}")
	require.Contains(t, css, ".h-4{height:1rem}")
}

func TestPresetColors(t *testing.T) {
	g := presetGen()

	result, err := g.GenerateTokens(tokens("text-red-500", "bg-blue-500", "text-red-500/50"), nil)
	require.NoError(t, err)
	css := result.CSS()
	require.Contains(t, css, ".text-red-500{color:#ef4444}")
	require.Contains(t, css, ".bg-blue-500{background-color:#3b82f6}")
	require.Contains(t, css, `.text-red-500\/50{color:rgb(239 68 68 / 50%)}`)

	// Unknown palette entries go unmatched.
	result, err = g.GenerateTokens(tokens("text-magenta-500"), nil)
	require.NoError(t, err)
	require.Empty(t, result.Matched)
}

func TestPresetBreakpoints(t *testing.T) {
	g := presetGen()

	result, err := g.GenerateTokens(tokens("sm:flex", "md:flex", "flex"), nil)
	require.NoError(t, err)
	css := result.CSS()

	require.Contains(t, css, "@media (min-width: 640px){")
	require.Contains(t, css, `.sm\:flex{display:flex}`)

	// Breakpoints emit in width order, after the bare rule.
	bare := strings.Index(css, ".flex{display:flex}")
	sm := strings.Index(css, "@media (min-width: 640px)")
	md := strings.Index(css, "@media (min-width: 768px)")
	require.True(t, bare >= 0 && sm >= 0 && md >= 0)
	require.Less(t, bare, sm)
	require.Less(t, sm, md)
}

func TestPresetStateVariants(t *testing.T) {
	g := presetGen()

	result, err := g.GenerateTokens(tokens("hover:m-2", "dark:hover:text-red-500"), nil)
	require.NoError(t, err)
	css := result.CSS()
	require.Contains(t, css, `.hover\:m-2:hover{margin:0.5rem}`)
	require.Contains(t, css, `.dark .dark\:hover\:text-red-500:hover{color:#ef4444}`)
}

func TestPresetImportant(t *testing.T) {
	g := presetGen()

	result, err := g.GenerateTokens(tokens("!block"), nil)
	require.NoError(t, err)
	require.Contains(t, result.CSS(), `.\!block{display:block !important}`)
}

func TestPresetArbitraryProperty(t *testing.T) {
	g := presetGen()

	result, err := g.GenerateTokens(tokens("[color:red]"), nil)
	require.NoError(t, err)
	require.Contains(t, result.CSS(), `.\[color\:red\]{color:red}`)
}

func TestPresetPreflight(t *testing.T) {
	g := presetGen()

	result, err := g.GenerateTokens(tokens("m-2"), nil)
	require.NoError(t, err)
	css := result.CSS()
	require.Contains(t, css, "box-sizing:border-box")
	require.Less(t, strings.Index(css, "box-sizing"), strings.Index(css, ".m-2{"))
}

func TestPresetUserOverrides(t *testing.T) {
	user := &Config{
		Rules: []Rule{
			{Matcher: "m-2", Entries: CSSEntries{{Property: "margin", Value: "8px"}}},
		},
	}
	g := New(user, DefaultPreset())

	result, err := g.GenerateTokens(tokens("m-2"), nil)
	require.NoError(t, err)
	require.Contains(t, result.CSS(), ".m-2{margin:8px}")
	require.NotContains(t, result.CSS(), "0.5rem")
}
