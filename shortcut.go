package atomcss

import (
	"fmt"
	"regexp"
	"strings"
)

// shortcutDepth caps shortcut recursion so self-referential shortcuts
// terminate.
const shortcutDepth = 3

// variantGroupRE matches one innermost variant group: prefix:(a b c).
var variantGroupRE = regexp.MustCompile(`([^\s()]+):\(([^()]+)\)`)

// ExpandVariantGroups rewrites prefix:(a b c) into prefix:a prefix:b
// prefix:c. Groups may nest; innermost groups expand first.
func ExpandVariantGroups(s string) string {
	for {
		expanded := variantGroupRE.ReplaceAllStringFunc(s, func(group string) string {
			m := variantGroupRE.FindStringSubmatch(group)
			parts := strings.Fields(m[2])
			for i, p := range parts {
				parts[i] = m[1] + ":" + p
			}
			return strings.Join(parts, " ")
		})
		if expanded == s {
			return expanded
		}
		s = expanded
	}
}

// expandShortcut resolves a residual selector against the configured
// shortcuts and recursively expands the result, depth-limited. A nil token
// slice means no shortcut matched.
func (g *Generator) expandShortcut(current string, ctx *RuleContext, depth int) ([]string, *RuleMeta, error) {
	if depth == 0 {
		return nil, nil, nil
	}

	var (
		tokens []string
		meta   *RuleMeta
		found  bool
	)

	for _, sc := range g.config.Shortcuts {
		if sc.Pattern == nil {
			if sc.Matcher != current {
				continue
			}
			if sc.Tokens != nil {
				tokens = append([]string(nil), sc.Tokens...)
			} else {
				tokens = strings.Fields(ExpandVariantGroups(sc.Template))
			}
			meta, found = sc.Meta, true
			break
		}

		match := sc.Pattern.FindStringSubmatch(current)
		if match == nil {
			continue
		}
		result, err := sc.Handler(match, ctx)
		if err != nil {
			return nil, nil, err
		}
		switch val := result.(type) {
		case nil:
			continue
		case string:
			tokens = strings.Fields(ExpandVariantGroups(val))
		case []string:
			tokens = val
		default:
			return nil, nil, fmt.Errorf("shortcut %q: unsupported expansion %T", sc.Pattern.String(), result)
		}
		meta, found = sc.Meta, true
		break
	}

	if !found {
		return nil, nil, nil
	}

	var flat []string
	for _, tok := range tokens {
		if tok == "" {
			continue
		}
		sub, _, err := g.expandShortcut(tok, ctx, depth-1)
		if err != nil {
			return nil, nil, err
		}
		if sub != nil {
			flat = append(flat, sub...)
		} else {
			flat = append(flat, tok)
		}
	}

	return flat, meta, nil
}
