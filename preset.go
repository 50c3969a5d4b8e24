package atomcss

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Theme is the default preset's theme shape. Configs may carry any theme
// value; only the preset's own handlers assume this one.
type Theme struct {
	// Colors maps name -> shade -> hex value.
	Colors map[string]map[string]string
	// Breakpoints lists named min-width bounds, ascending by Width.
	Breakpoints []Breakpoint
	// SpacingUnit is the rem multiple behind numeric spacing utilities.
	SpacingUnit float64
}

// Breakpoint is a named min-width media query bound.
type Breakpoint struct {
	Name  string
	Width int // px
}

// DefaultTheme returns the palette and scales the default preset builds on.
func DefaultTheme() *Theme {
	return &Theme{
		SpacingUnit: 0.25,
		Breakpoints: []Breakpoint{
			{Name: "sm", Width: 640},
			{Name: "md", Width: 768},
			{Name: "lg", Width: 1024},
			{Name: "xl", Width: 1280},
		},
		Colors: map[string]map[string]string{
			"gray":  {"100": "#f3f4f6", "500": "#6b7280", "900": "#111827"},
			"red":   {"100": "#fee2e2", "500": "#ef4444", "900": "#7f1d1d"},
			"green": {"100": "#dcfce7", "500": "#22c55e", "900": "#14532d"},
			"blue":  {"100": "#dbeafe", "500": "#3b82f6", "900": "#1e3a8a"},
		},
	}
}

var (
	spacingRE   = regexp.MustCompile(`^([mp])([trblxy])?-(\d+(?:\.\d+)?)$`)
	colorRE     = regexp.MustCompile(`^(text|bg)-([a-z]+)-(\d{3})(?:/(\d{1,3}))?$`)
	sizeRE      = regexp.MustCompile(`^([wh])-(\d+(?:\.\d+)?)$`)
	arbitraryRE = regexp.MustCompile(`^\[([a-z-]+):(.+)\]$`)
	hexRE       = regexp.MustCompile(`^#([0-9a-fA-F]{6})$`)
)

// spacingSides maps the direction suffix to the affected property suffixes.
var spacingSides = map[string][]string{
	"":  {""},
	"t": {"-top"},
	"r": {"-right"},
	"b": {"-bottom"},
	"l": {"-left"},
	"x": {"-left", "-right"},
	"y": {"-top", "-bottom"},
}

// DefaultPreset returns a compact built-in rule set: spacing, sizing,
// display, colors with opacity, responsive and state variants, and a small
// preflight. It is meant as the defaults argument of New.
func DefaultPreset() *Config {
	theme := DefaultTheme()
	return &Config{
		Theme:      theme,
		Rules:      presetRules(),
		Variants:   presetVariants(theme),
		Preflights: presetPreflights(),
	}
}

func presetRules() []Rule {
	rules := []Rule{
		{Matcher: "block", Entries: CSSEntries{{Property: "display", Value: "block"}}},
		{Matcher: "inline", Entries: CSSEntries{{Property: "display", Value: "inline"}}},
		{Matcher: "inline-block", Entries: CSSEntries{{Property: "display", Value: "inline-block"}}},
		{Matcher: "flex", Entries: CSSEntries{{Property: "display", Value: "flex"}}},
		{Matcher: "grid", Entries: CSSEntries{{Property: "display", Value: "grid"}}},
		{Matcher: "hidden", Entries: CSSEntries{{Property: "display", Value: "none"}}},
		{Matcher: "w-full", Entries: CSSEntries{{Property: "width", Value: "100%"}}},
		{Matcher: "h-full", Entries: CSSEntries{{Property: "height", Value: "100%"}}},
		{Matcher: "text-sm", Entries: CSSEntries{{Property: "font-size", Value: "0.875rem"}}},
		{Matcher: "text-base", Entries: CSSEntries{{Property: "font-size", Value: "1rem"}}},
		{Matcher: "text-lg", Entries: CSSEntries{{Property: "font-size", Value: "1.125rem"}}},
		{Matcher: "text-xl", Entries: CSSEntries{{Property: "font-size", Value: "1.25rem"}}},
	}

	rules = append(rules,
		Rule{Pattern: spacingRE, Handler: spacingHandler},
		Rule{Pattern: sizeRE, Handler: sizeHandler},
		Rule{Pattern: colorRE, Handler: colorHandler},
		Rule{Pattern: arbitraryRE, Handler: arbitraryHandler},
	)
	return rules
}

func spacingHandler(match []string, ctx *RuleContext) (any, error) {
	theme, ok := ctx.Theme.(*Theme)
	if !ok {
		return nil, nil
	}
	n, err := strconv.ParseFloat(match[3], 64)
	if err != nil {
		return nil, nil
	}
	prop := "margin"
	if match[1] == "p" {
		prop = "padding"
	}
	value := formatRem(n * theme.SpacingUnit)

	var entries CSSEntries
	for _, side := range spacingSides[match[2]] {
		entries = append(entries, CSSEntry{Property: prop + side, Value: value})
	}
	return entries, nil
}

func sizeHandler(match []string, ctx *RuleContext) (any, error) {
	theme, ok := ctx.Theme.(*Theme)
	if !ok {
		return nil, nil
	}
	n, err := strconv.ParseFloat(match[2], 64)
	if err != nil {
		return nil, nil
	}
	prop := "width"
	if match[1] == "h" {
		prop = "height"
	}
	return CSSEntries{{Property: prop, Value: formatRem(n * theme.SpacingUnit)}}, nil
}

func colorHandler(match []string, ctx *RuleContext) (any, error) {
	theme, ok := ctx.Theme.(*Theme)
	if !ok {
		return nil, nil
	}
	shades, ok := theme.Colors[match[2]]
	if !ok {
		return nil, nil
	}
	hex, ok := shades[match[3]]
	if !ok {
		return nil, nil
	}
	prop := "color"
	if match[1] == "bg" {
		prop = "background-color"
	}
	value := hex
	if match[4] != "" {
		opacity, err := strconv.Atoi(match[4])
		if err != nil || opacity > 100 {
			return nil, nil
		}
		r, g, b, ok := hexToRGB(hex)
		if !ok {
			return nil, nil
		}
		value = fmt.Sprintf("rgb(%d %d %d / %d%%)", r, g, b, opacity)
	}
	return CSSEntries{{Property: prop, Value: value}}, nil
}

// arbitraryHandler implements [prop:value] tokens.
func arbitraryHandler(match []string, _ *RuleContext) (any, error) {
	return CSSEntries{{Property: match[1], Value: match[2]}}, nil
}

func presetVariants(theme *Theme) []Variant {
	variants := []Variant{
		pseudoVariant("hover"),
		pseudoVariant("focus"),
		pseudoVariant("active"),
		pseudoVariant("disabled"),
		{
			Name: "dark",
			Match: func(current string, _ *VariantContext) *VariantHandler {
				rest, ok := strings.CutPrefix(current, "dark:")
				if !ok {
					return nil
				}
				return &VariantHandler{
					Matcher: rest,
					Selector: func(sel string, _ CSSEntries) string {
						return ".dark " + sel
					},
				}
			},
		},
		{
			Name: "important",
			Match: func(current string, _ *VariantContext) *VariantHandler {
				rest, ok := strings.CutPrefix(current, "!")
				if !ok {
					return nil
				}
				return &VariantHandler{
					Matcher: rest,
					Body: func(entries CSSEntries) CSSEntries {
						out := make(CSSEntries, len(entries))
						for i, e := range entries {
							e.Value += " !important"
							out[i] = e
						}
						return out
					},
				}
			},
		},
	}

	for _, bp := range theme.Breakpoints {
		variants = append(variants, breakpointVariant(bp))
	}
	return variants
}

func pseudoVariant(name string) Variant {
	prefix := name + ":"
	return Variant{
		Name: name,
		Match: func(current string, _ *VariantContext) *VariantHandler {
			rest, ok := strings.CutPrefix(current, prefix)
			if !ok {
				return nil
			}
			return &VariantHandler{
				Matcher: rest,
				Selector: func(sel string, _ CSSEntries) string {
					return sel + ":" + name
				},
			}
		},
	}
}

func breakpointVariant(bp Breakpoint) Variant {
	prefix := bp.Name + ":"
	parent := fmt.Sprintf("@media (min-width: %dpx)", bp.Width)
	order := bp.Width
	return Variant{
		Name: bp.Name,
		Match: func(current string, _ *VariantContext) *VariantHandler {
			rest, ok := strings.CutPrefix(current, prefix)
			if !ok {
				return nil
			}
			return &VariantHandler{
				Matcher:     rest,
				Parent:      parent,
				ParentOrder: &order,
			}
		},
	}
}

func presetPreflights() []Preflight {
	return []Preflight{
		{
			Layer: LayerPreflights,
			GetCSS: func(_ *PreflightContext) (string, error) {
				return "*,::before,::after{box-sizing:border-box}\nbody{margin:0}", nil
			},
		},
	}
}

// formatRem renders a rem value without a trailing zero fraction.
func formatRem(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	return s + "rem"
}

func hexToRGB(hex string) (r, g, b int, ok bool) {
	m := hexRE.FindStringSubmatch(hex)
	if m == nil {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(m[1], 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return int(v >> 16), int(v >> 8 & 0xff), int(v & 0xff), true
}
