package atomcss

import (
	"sort"

	"go.uber.org/zap"
)

// Default layer names and weights.
const (
	LayerDefault    = "default"
	LayerShortcuts  = "shortcuts"
	LayerPreflights = "preflights"
)

// Config is the user-facing configuration. Zero values mean "unset"; Resolve
// fills in defaults and merges a defaults config underneath.
type Config struct {
	Rules      []Rule
	Shortcuts  []Shortcut
	Variants   []Variant
	Preflights []Preflight
	Extractors []Extractor

	Preprocess  []Preprocessor
	Postprocess []Postprocessor

	Blocklist []BlockEntry
	Safelist  []string

	// Theme is an opaque value passed through to rule and variant handlers.
	Theme any

	// Layers maps layer name to sort weight. Lower weights emit first.
	Layers map[string]int
	// SortLayers optionally post-sorts the layer name list.
	SortLayers func(layers []string) []string
	// ShortcutsLayer is the default layer for shortcut output.
	ShortcutsLayer string

	// MergeSelectors enables collapsing identical bodies into comma-separated
	// selector groups. Defaults to true; set to a false pointer to disable.
	MergeSelectors *bool

	// Logger receives deduplicated engine warnings. Defaults to the zap
	// global logger.
	Logger *zap.Logger
}

// staticRule is a static rule indexed by its matcher string.
type staticRule struct {
	Index   int
	Entries CSSEntries
	Meta    *RuleMeta
}

// ResolvedConfig is the immutable, normalized configuration the engine runs
// against. Build one with Resolve; do not mutate it afterwards.
type ResolvedConfig struct {
	Rules          []Rule
	RulesStaticMap map[string]staticRule
	RulesSize      int

	Shortcuts  []Shortcut
	Variants   []Variant
	Preflights []Preflight
	Extractors []Extractor

	Preprocess  []Preprocessor
	Postprocess []Postprocessor

	Blocklist []BlockEntry
	Safelist  []string

	Theme any

	Layers         map[string]int
	SortLayers     func(layers []string) []string
	ShortcutsLayer string

	MergeSelectors bool

	Logger *zap.Logger
}

// Resolve merges user config over defaults and normalizes the result.
// List-shaped fields concatenate defaults first, user last, so user rules
// win the reverse-registration scan.
func Resolve(user, defaults *Config) *ResolvedConfig {
	if user == nil {
		user = &Config{}
	}
	if defaults == nil {
		defaults = &Config{}
	}

	rc := &ResolvedConfig{
		Rules:       concat(defaults.Rules, user.Rules),
		Shortcuts:   concat(defaults.Shortcuts, user.Shortcuts),
		Variants:    concat(defaults.Variants, user.Variants),
		Preflights:  concat(defaults.Preflights, user.Preflights),
		Extractors:  concat(defaults.Extractors, user.Extractors),
		Preprocess:  concat(defaults.Preprocess, user.Preprocess),
		Postprocess: concat(defaults.Postprocess, user.Postprocess),
		Blocklist:   concat(defaults.Blocklist, user.Blocklist),
		Safelist:    concat(defaults.Safelist, user.Safelist),

		Theme:          user.Theme,
		SortLayers:     user.SortLayers,
		ShortcutsLayer: user.ShortcutsLayer,
		Logger:         user.Logger,
		MergeSelectors: true,
	}

	if rc.Theme == nil {
		rc.Theme = defaults.Theme
	}
	if rc.SortLayers == nil {
		rc.SortLayers = defaults.SortLayers
	}
	if rc.ShortcutsLayer == "" {
		rc.ShortcutsLayer = defaults.ShortcutsLayer
	}
	if rc.ShortcutsLayer == "" {
		rc.ShortcutsLayer = LayerShortcuts
	}
	if rc.Logger == nil {
		rc.Logger = defaults.Logger
	}
	if rc.Logger == nil {
		rc.Logger = zap.L()
	}

	switch {
	case user.MergeSelectors != nil:
		rc.MergeSelectors = *user.MergeSelectors
	case defaults.MergeSelectors != nil:
		rc.MergeSelectors = *defaults.MergeSelectors
	}

	// Built-in layers sit under any user-declared ones.
	rc.Layers = map[string]int{
		LayerPreflights: -2,
		LayerShortcuts:  -1,
		LayerDefault:    0,
	}
	for name, order := range defaults.Layers {
		rc.Layers[name] = order
	}
	for name, order := range user.Layers {
		rc.Layers[name] = order
	}

	if len(rc.Extractors) == 0 {
		rc.Extractors = []Extractor{SplitExtractor}
	}

	// Variants apply in weight order; the sort is stable so equal weights
	// keep registration order.
	sort.SliceStable(rc.Variants, func(i, j int) bool {
		return rc.Variants[i].Order < rc.Variants[j].Order
	})

	// Static rules live in the map only; the dynamic scan skips them.
	rc.RulesStaticMap = make(map[string]staticRule)
	for i, rule := range rc.Rules {
		if rule.Pattern == nil {
			rc.RulesStaticMap[rule.Matcher] = staticRule{
				Index:   i,
				Entries: rule.Entries,
				Meta:    rule.Meta,
			}
		}
	}
	rc.RulesSize = len(rc.Rules) - 1

	return rc
}

func concat[T any](a, b []T) []T {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	out := make([]T, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	return out
}
