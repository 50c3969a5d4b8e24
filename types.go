package atomcss

import "regexp"

// Control markers understood by the sheet assembler and the shortcut
// stringifier.
const (
	// ScopePlaceholder marks where the scope string is substituted inside a
	// selector. Selectors without it are prefixed with the scope instead.
	ScopePlaceholder = " $$ "

	// NoMergeProperty is a reserved declaration property. An entry group
	// containing it is emitted on its own instead of being merged with the
	// other entries of its shortcut bucket. It is stripped before the body
	// is stringified.
	NoMergeProperty = "--atomcss-no-merge"
)

// CSSEntry is a single property: value declaration.
type CSSEntry struct {
	Property string
	Value    string
}

// CSSEntries is an ordered declaration list.
type CSSEntries []CSSEntry

// RuleMeta carries per-rule options.
type RuleMeta struct {
	Layer    string // target layer ("" = default)
	Internal bool   // only matchable from shortcut expansion
	NoMerge  bool   // exclude from selector merging
}

// cloneMeta returns a copy of meta, or a zero-value meta when nil.
func cloneMeta(meta *RuleMeta) *RuleMeta {
	if meta == nil {
		return &RuleMeta{}
	}
	c := *meta
	return &c
}

// DynamicHandler produces declarations for a dynamic rule match.
//
// Allowed return values: nil (no match after all), a string (literal CSS
// body), CSSEntries, []CSSEntries (one utility per group), or a
// map[string]string (normalized to entries sorted by property).
type DynamicHandler func(match []string, ctx *RuleContext) (any, error)

// Rule maps a residual selector to a declaration list. Exactly one of
// Matcher (static) or Pattern (dynamic) is set.
type Rule struct {
	Matcher string
	Entries CSSEntries
	Pattern *regexp.Regexp
	Handler DynamicHandler
	Meta    *RuleMeta
}

// VariantHandler is the record a variant returns on a hit.
type VariantHandler struct {
	// Matcher is the residual string after this variant consumed its prefix.
	Matcher string
	// Body optionally rewrites the declaration list after rule matching.
	Body func(entries CSSEntries) CSSEntries
	// Selector optionally rewrites the final selector.
	Selector func(selector string, entries CSSEntries) string
	// Parent wraps the rule in an at-rule, e.g. "@media (min-width: 640px)".
	Parent string
	// ParentOrder, when set, registers an ordering weight for Parent.
	// Registration is last-writer-wins across tokens.
	ParentOrder *int
	// Layer overrides the target layer.
	Layer string
	// Order controls handler application order (ascending, default 0).
	Order int
}

// Matched is a convenience constructor for the common bare-string case:
// the variant consumed its prefix and contributes nothing else.
func Matched(residual string) *VariantHandler {
	return &VariantHandler{Matcher: residual}
}

// VariantContext is passed to variant match functions.
type VariantContext struct {
	Raw       string
	Theme     any
	Generator *Generator
}

// Variant peels a prefix or suffix from a candidate token.
type Variant struct {
	Name string
	// Match returns nil for no hit, or a handler describing the rewrite.
	Match func(current string, ctx *VariantContext) *VariantHandler
	// MultiPass permits the variant to re-apply on later passes.
	MultiPass bool
	// Order sorts variants at config resolution (ascending).
	Order int
}

// ShortcutHandler produces an expansion for a dynamic shortcut match.
// Allowed return values: nil, a string (variant groups are expanded and the
// result is split on whitespace), or a []string of sub-tokens.
type ShortcutHandler func(match []string, ctx *RuleContext) (any, error)

// Shortcut expands a residual selector into sub-tokens that re-enter the
// pipeline. Static shortcuts set Matcher plus Template or Tokens; dynamic
// ones set Pattern and Handler.
type Shortcut struct {
	Matcher  string
	Template string
	Tokens   []string
	Pattern  *regexp.Regexp
	Handler  ShortcutHandler
	Meta     *RuleMeta
}

// Util is a single rule-match result, before variant application. A util
// with Entries == nil carries a literal Body instead (a raw utility).
type Util struct {
	Order    int
	Raw      string
	Entries  CSSEntries
	Body     string
	Meta     *RuleMeta
	Handlers []*VariantHandler
}

// IsRaw reports whether the util is a literal CSS body.
func (u Util) IsRaw() bool { return u.Entries == nil }

// StringifiedUtil is the terminal form fed to the sheet assembler. An empty
// Selector means Body is emitted bare, without a selector, inside its parent
// group.
type StringifiedUtil struct {
	Order    int
	Selector string
	Body     string
	Parent   string
	Meta     *RuleMeta
}

// UtilObject is the mutable view handed to postprocess hooks after variant
// application.
type UtilObject struct {
	Selector string
	Entries  CSSEntries
	Parent   string
	Layer    string
}

// ExtractorContext is handed to every extractor in the pipeline.
type ExtractorContext struct {
	Original string
	Code     string
	ID       string
}

// Extractor yields candidate raw tokens from source text.
type Extractor func(ctx *ExtractorContext) ([]string, error)

// Preprocessor rewrites a raw token before variant matching.
type Preprocessor func(raw string) string

// Postprocessor adjusts a stringified utility in place.
type Postprocessor func(util *UtilObject)

// PreflightContext is handed to preflight CSS emitters.
type PreflightContext struct {
	Generator *Generator
	Theme     any
}

// Preflight is a block of static CSS emitted before generated rules of its
// layer.
type Preflight struct {
	GetCSS func(ctx *PreflightContext) (string, error)
	Layer  string
}

// BlockEntry excludes tokens from generation. Exactly one of Exact or
// Pattern is set.
type BlockEntry struct {
	Exact   string
	Pattern *regexp.Regexp
}

func (b BlockEntry) blocks(raw string) bool {
	if b.Pattern != nil {
		return b.Pattern.MatchString(raw)
	}
	return b.Exact == raw
}
