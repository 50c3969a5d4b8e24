package atomcss

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEscapeCSS(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "plain identifier",
			in:   "m-2",
			want: "m-2",
		},
		{
			name: "variant colon",
			in:   "hover:m-2",
			want: `hover\:m-2`,
		},
		{
			name: "slash opacity",
			in:   "text-blue/50",
			want: `text-blue\/50`,
		},
		{
			name: "brackets and colon",
			in:   "[color:red]",
			want: `\[color\:red\]`,
		},
		{
			name: "bang prefix",
			in:   "!block",
			want: `\!block`,
		},
		{
			name: "unicode passes through",
			in:   "宽-2",
			want: "宽-2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, EscapeCSS(tt.in))
		})
	}
}

func TestToEscapedSelector(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "class selector",
			raw:  "m-2",
			want: ".m-2",
		},
		{
			name: "class with variant prefix",
			raw:  "hover:m-2",
			want: `.hover\:m-2`,
		},
		{
			name: "attribute equals",
			raw:  `[data-size="lg"]`,
			want: `[data-size="lg"]`,
		},
		{
			name: "attribute tilde",
			raw:  `[class~="btn"]`,
			want: `[class~="btn"]`,
		},
		{
			name: "arbitrary property token is a class",
			raw:  "[color:red]",
			want: `.\[color\:red\]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ToEscapedSelector(tt.raw))
		})
	}
}

func TestEntriesToCSS(t *testing.T) {
	entries := CSSEntries{
		{Property: "margin", Value: "0.5rem"},
		{Property: NoMergeProperty, Value: ""},
		{Property: "color", Value: "red"},
	}
	require.Equal(t, "margin:0.5rem;color:red", entriesToCSS(entries))
	require.Equal(t, "", entriesToCSS(nil))
}
