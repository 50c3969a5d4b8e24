package atomcss

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// attrSelectorRE recognizes raw tokens that are attribute selectors rather
// than class names: [name="value"] or [name~="value"].
var attrSelectorRE = regexp.MustCompile(`^\[(.+?)(=|~=)"(.*)"\]$`)

// EscapeCSS escapes every character disallowed in a CSS identifier with a
// backslash. Non-ASCII runes pass through untouched.
func EscapeCSS(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '-', r == '_', r >= 0x80:
			b.WriteRune(r)
		default:
			b.WriteByte('\\')
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ToEscapedSelector turns a raw token into its base selector: an escaped
// attribute selector when the token has that shape, a class selector
// otherwise.
func ToEscapedSelector(raw string) string {
	if m := attrSelectorRE.FindStringSubmatch(raw); m != nil {
		return "[" + EscapeCSS(m[1]) + m[2] + `"` + EscapeCSS(m[3]) + `"]`
	}
	return "." + EscapeCSS(raw)
}

// entriesToCSS renders a declaration list as prop:value pairs joined with
// semicolons. The no-merge control property is stripped here.
func entriesToCSS(entries CSSEntries) string {
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Property == "" || e.Property == NoMergeProperty {
			continue
		}
		parts = append(parts, e.Property+":"+e.Value)
	}
	return strings.Join(parts, ";")
}

func hasNoMergeMarker(entries CSSEntries) bool {
	for _, e := range entries {
		if e.Property == NoMergeProperty {
			return true
		}
	}
	return false
}

// applyVariants folds the collected variant handlers over a parsed utility.
// Handlers sort by order ascending and apply last-to-first, so the handler
// matched first (the leftmost prefix) contributes the outermost selector
// wrap. Postprocess hooks run on the result.
func (g *Generator) applyVariants(u Util, handlers []*VariantHandler, raw string) *UtilObject {
	sorted := make([]*VariantHandler, len(handlers))
	copy(sorted, handlers)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Order < sorted[j].Order })

	obj := &UtilObject{
		Selector: ToEscapedSelector(raw),
		Entries:  u.Entries,
	}
	for i := len(sorted) - 1; i >= 0; i-- {
		h := sorted[i]
		if h.Body != nil {
			obj.Entries = h.Body(obj.Entries)
		}
		if h.Selector != nil {
			obj.Selector = h.Selector(obj.Selector, obj.Entries)
		}
		if obj.Parent == "" && h.Parent != "" {
			obj.Parent = h.Parent
		}
		if obj.Layer == "" && h.Layer != "" {
			obj.Layer = h.Layer
		}
	}

	for _, post := range g.config.Postprocess {
		post(obj)
	}
	return obj
}

// stringifyUtil produces the terminal form of a single util, or nil when
// the body came out empty.
func (g *Generator) stringifyUtil(u Util) *StringifiedUtil {
	if u.IsRaw() {
		return &StringifiedUtil{Order: u.Order, Body: u.Body, Meta: u.Meta}
	}

	obj := g.applyVariants(u, u.Handlers, u.Raw)
	body := entriesToCSS(obj.Entries)
	if body == "" {
		return nil
	}

	meta := cloneMeta(u.Meta)
	if obj.Layer != "" {
		meta.Layer = obj.Layer
	}
	return &StringifiedUtil{
		Order:    u.Order,
		Selector: obj.Selector,
		Body:     body,
		Parent:   obj.Parent,
		Meta:     meta,
	}
}

// shortcutBucket accumulates the sub-utilities of one (selector, parent)
// pair during shortcut assembly.
type shortcutBucket struct {
	selector string
	parent   string
	layer    string
	minOrder int
	items    []shortcutItem
}

type shortcutItem struct {
	entries CSSEntries
	noMerge bool
}

// stringifyShortcuts assembles the expanded token list of a shortcut into
// stringified utils. Sub-utilities compose the parent token's variants
// outward: selectors target the shortcut's own class, not the sub-utility.
func (g *Generator) stringifyShortcuts(parent variantMatch, tokens []string, scMeta *RuleMeta) ([]StringifiedUtil, error) {
	meta := cloneMeta(scMeta)
	if meta.Layer == "" {
		meta.Layer = g.config.ShortcutsLayer
	}

	// Dedupe, first occurrence wins
	seen := make(map[string]bool, len(tokens))
	var utils []Util
	for _, tok := range tokens {
		if seen[tok] {
			continue
		}
		seen[tok] = true

		vm, err := g.matchVariants(tok, "")
		if err != nil {
			return nil, err
		}
		us, err := g.matchRules(vm, true)
		if err != nil {
			return nil, err
		}
		if len(us) == 0 {
			g.warnOnce(fmt.Sprintf("unmatched utility %q in shortcut %q", tok, parent.Raw))
			continue
		}
		utils = append(utils, us...)
	}

	// Raw bodies have no selector to retarget; they are dropped from
	// shortcut output.
	parsed := utils[:0]
	for _, u := range utils {
		if !u.IsRaw() {
			parsed = append(parsed, u)
		}
	}
	sort.SliceStable(parsed, func(i, j int) bool { return parsed[i].Order < parsed[j].Order })

	var (
		buckets []*shortcutBucket
		index   = make(map[string]*shortcutBucket)
	)
	for _, u := range parsed {
		handlers := make([]*VariantHandler, 0, len(u.Handlers)+len(parent.Handlers))
		handlers = append(handlers, u.Handlers...)
		handlers = append(handlers, parent.Handlers...)

		obj := g.applyVariants(u, handlers, parent.Raw)
		key := obj.Selector + "\x00" + obj.Parent
		b := index[key]
		if b == nil {
			b = &shortcutBucket{
				selector: obj.Selector,
				parent:   obj.Parent,
				layer:    obj.Layer,
				minOrder: u.Order,
			}
			index[key] = b
			buckets = append(buckets, b)
		}
		if u.Order < b.minOrder {
			b.minOrder = u.Order
		}
		if b.layer == "" {
			b.layer = obj.Layer
		}
		b.items = append(b.items, shortcutItem{
			entries: obj.Entries,
			noMerge: u.Meta != nil && u.Meta.NoMerge,
		})
	}

	var out []StringifiedUtil
	for _, b := range buckets {
		emit := func(entries CSSEntries, noMerge bool) {
			body := entriesToCSS(entries)
			if body == "" {
				return
			}
			m := cloneMeta(meta)
			m.NoMerge = noMerge
			if b.layer != "" {
				m.Layer = b.layer
			}
			out = append(out, StringifiedUtil{
				Order:    b.minOrder,
				Selector: b.selector,
				Body:     body,
				Parent:   b.parent,
				Meta:     m,
			})
		}

		// Four streams: the no-merge flag and the control marker each force
		// separate emission of their own kind.
		var mergedNoMerge, mergedPlain CSSEntries
		for _, it := range b.items {
			marker := hasNoMergeMarker(it.entries)
			switch {
			case it.noMerge && marker:
				emit(it.entries, true)
			case it.noMerge:
				mergedNoMerge = append(mergedNoMerge, it.entries...)
			case marker:
				emit(it.entries, false)
			default:
				mergedPlain = append(mergedPlain, it.entries...)
			}
		}
		if len(mergedNoMerge) > 0 {
			emit(mergedNoMerge, true)
		}
		if len(mergedPlain) > 0 {
			emit(mergedPlain, false)
		}
	}

	return out, nil
}
