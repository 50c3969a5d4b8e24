package atomcss

import (
	"fmt"
	"sort"
)

// RuleContext is passed to rule handlers, shortcut handlers, and
// ConstructCSS.
type RuleContext struct {
	RawSelector     string
	CurrentSelector string
	Theme           any
	Generator       *Generator
	VariantHandlers []*VariantHandler
}

// ConstructCSS synthesizes a full CSS string for an ad-hoc body using the
// current variant stack. overrideSelector replaces the raw token as the
// selector source when non-empty.
func (ctx *RuleContext) ConstructCSS(body any, overrideSelector string) (string, error) {
	entries, err := NormalizeEntries(body)
	if err != nil {
		return "", err
	}
	raw := ctx.RawSelector
	if overrideSelector != "" {
		raw = overrideSelector
	}
	obj := ctx.Generator.applyVariants(Util{
		Raw:      raw,
		Entries:  entries,
		Handlers: ctx.VariantHandlers,
	}, ctx.VariantHandlers, raw)

	css := obj.Selector + "{" + entriesToCSS(obj.Entries) + "}"
	if obj.Parent != "" {
		css = obj.Parent + "{" + css + "}"
	}
	return css, nil
}

func (g *Generator) ruleContext(m variantMatch) *RuleContext {
	return &RuleContext{
		RawSelector:     m.Raw,
		CurrentSelector: m.Current,
		Theme:           g.config.Theme,
		Generator:       g,
		VariantHandlers: m.Handlers,
	}
}

// matchRules maps a variant-matched token to zero or more utils: the static
// map first, then the dynamic rules scanned from last registered to first.
// internal exposes rules marked meta.Internal (used by shortcut expansion).
func (g *Generator) matchRules(m variantMatch, internal bool) ([]Util, error) {
	cfg := g.config

	// Static lookup
	if sr, ok := cfg.RulesStaticMap[m.Current]; ok && len(sr.Entries) > 0 {
		if internal || sr.Meta == nil || !sr.Meta.Internal {
			return []Util{{
				Order:    sr.Index,
				Raw:      m.Raw,
				Entries:  sr.Entries,
				Meta:     sr.Meta,
				Handlers: m.Handlers,
			}}, nil
		}
	}

	// Dynamic rules, last registered wins
	var ctx *RuleContext
	for i := cfg.RulesSize; i >= 0; i-- {
		rule := cfg.Rules[i]
		if rule.Pattern == nil {
			continue
		}
		if rule.Meta != nil && rule.Meta.Internal && !internal {
			continue
		}
		match := rule.Pattern.FindStringSubmatch(m.Current)
		if match == nil {
			continue
		}

		if ctx == nil {
			ctx = g.ruleContext(m)
		}
		result, err := rule.Handler(match, ctx)
		if err != nil {
			return nil, err
		}
		if result == nil {
			continue
		}

		if body, ok := result.(string); ok {
			return []Util{{Order: i, Body: body, Meta: rule.Meta}}, nil
		}

		groups, err := NormalizeEntryGroups(result)
		if err != nil {
			return nil, fmt.Errorf("rule %q: %w", rule.Pattern.String(), err)
		}
		var utils []Util
		for _, entries := range groups {
			if len(entries) == 0 {
				continue
			}
			utils = append(utils, Util{
				Order:    i,
				Raw:      m.Raw,
				Entries:  entries,
				Meta:     rule.Meta,
				Handlers: m.Handlers,
			})
		}
		if len(utils) > 0 {
			return utils, nil
		}
	}

	return nil, nil
}

// NormalizeEntries coerces a handler return value into an ordered
// declaration list. Maps are sorted by property name to keep output
// deterministic.
func NormalizeEntries(v any) (CSSEntries, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case CSSEntries:
		return val, nil
	case []CSSEntry:
		return CSSEntries(val), nil
	case map[string]string:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		entries := make(CSSEntries, 0, len(keys))
		for _, k := range keys {
			entries = append(entries, CSSEntry{Property: k, Value: val[k]})
		}
		return entries, nil
	default:
		return nil, fmt.Errorf("unsupported declaration shape %T", v)
	}
}

// NormalizeEntryGroups coerces a handler return value into one or more
// declaration lists.
func NormalizeEntryGroups(v any) ([]CSSEntries, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case []CSSEntries:
		return val, nil
	default:
		entries, err := NormalizeEntries(v)
		if err != nil {
			return nil, err
		}
		return []CSSEntries{entries}, nil
	}
}
