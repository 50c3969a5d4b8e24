package atomcss

import (
	"sort"
	"strings"
)

// GenerateResult is the outcome of one generation run. Layer CSS is
// rendered eagerly so the result stays valid after the generator's config
// is replaced.
type GenerateResult struct {
	// Matched holds the raw tokens that produced at least one utility.
	Matched map[string]struct{}

	layers   []string
	layerCSS map[string]string
	minify   bool
}

// CSS returns the full stylesheet, layers concatenated in sorted order.
func (r *GenerateResult) CSS() string {
	return r.GetLayers(nil, nil)
}

// Layers returns the layer names in emission order.
func (r *GenerateResult) Layers() []string {
	return append([]string(nil), r.layers...)
}

// GetLayer returns the CSS of a single layer, or "" when the layer is
// unknown or empty.
func (r *GenerateResult) GetLayer(name string) string {
	return r.layerCSS[name]
}

// GetLayers concatenates the selected layers. A nil includes selects all
// layers; excludes drops names from that selection.
func (r *GenerateResult) GetLayers(includes, excludes []string) string {
	included := func(name string) bool {
		if includes != nil && !containsString(includes, name) {
			return false
		}
		return !containsString(excludes, name)
	}

	var parts []string
	for _, name := range r.layers {
		if !included(name) {
			continue
		}
		if css := r.layerCSS[name]; css != "" {
			parts = append(parts, css)
		}
	}
	sep := "\n"
	if r.minify {
		sep = ""
	}
	return strings.Join(parts, sep)
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

// cssGroup is a render unit during selector merging: one body with one or
// more selectors.
type cssGroup struct {
	selectors []string
	body      string
	noMerge   bool
	raw       bool
	dropped   bool
}

// stringifyLayer renders one layer of the sheet: preflights first, then the
// generated rules grouped by parent at-rule.
func (g *Generator) stringifyLayer(sheet map[string][]StringifiedUtil, layer string, opts *GenerateOptions) (string, error) {
	var blocks []string

	if opts.Preflights {
		for _, pf := range g.config.Preflights {
			if preflightLayer(pf) != layer {
				continue
			}
			css, err := pf.GetCSS(&PreflightContext{Generator: g, Theme: g.config.Theme})
			if err != nil {
				return "", err
			}
			if css != "" {
				blocks = append(blocks, css)
			}
		}
	}

	// Parents sort by registered order, then name
	parentOrders := g.snapshotParentOrders()
	parents := make([]string, 0, len(sheet))
	for p := range sheet {
		parents = append(parents, p)
	}
	sort.Slice(parents, func(i, j int) bool {
		oi, oj := parentOrders[parents[i]], parentOrders[parents[j]]
		if oi != oj {
			return oi < oj
		}
		return parents[i] < parents[j]
	})

	ruleSep := "\n"
	if opts.Minify {
		ruleSep = ""
	}

	for _, parent := range parents {
		items := make([]StringifiedUtil, 0, len(sheet[parent]))
		for _, u := range sheet[parent] {
			if effectiveLayer(u.Meta) == layer {
				items = append(items, u)
			}
		}
		if len(items) == 0 {
			continue
		}

		sort.SliceStable(items, func(i, j int) bool {
			if items[i].Order != items[j].Order {
				return items[i].Order < items[j].Order
			}
			return items[i].Selector < items[j].Selector
		})

		groups := make([]*cssGroup, 0, len(items))
		for _, u := range items {
			grp := &cssGroup{
				body:    u.Body,
				noMerge: u.Meta != nil && u.Meta.NoMerge,
				raw:     u.Selector == "",
			}
			if !grp.raw {
				grp.selectors = []string{applyScope(u.Selector, opts.Scope)}
			}
			groups = append(groups, grp)
		}

		// Reverse-scan merge: an earlier identical body is absorbed into the
		// last occurrence so the cascade position of the merged group is the
		// later one.
		if g.config.MergeSelectors {
			for i := len(groups) - 2; i >= 0; i-- {
				cur := groups[i]
				if cur.raw || cur.noMerge {
					continue
				}
				for j := i + 1; j < len(groups); j++ {
					later := groups[j]
					if later.dropped || later.raw || later.noMerge || later.body != cur.body {
						continue
					}
					later.selectors = append(append([]string(nil), cur.selectors...), later.selectors...)
					cur.dropped = true
					break
				}
			}
		}

		rules := make([]string, 0, len(groups))
		for _, grp := range groups {
			if grp.dropped {
				continue
			}
			if grp.raw {
				rules = append(rules, grp.body)
				continue
			}
			rules = append(rules, strings.Join(dedupeStrings(grp.selectors), ",")+"{"+grp.body+"}")
		}

		block := strings.Join(rules, ruleSep)
		if parent != "" {
			if opts.Minify {
				block = parent + "{" + block + "}"
			} else {
				block = parent + "{\n" + block + "\n}"
			}
		}
		blocks = append(blocks, block)
	}

	if len(blocks) == 0 {
		return "", nil
	}
	css := strings.Join(blocks, ruleSep)
	if !opts.Minify {
		css = "/* layer: " + layer + " */\n" + css
	}
	return css, nil
}

// applyScope substitutes the scope placeholder, or prefixes the scope when
// the selector carries no placeholder.
func applyScope(selector, scope string) string {
	if strings.Contains(selector, ScopePlaceholder) {
		if scope == "" {
			return strings.ReplaceAll(selector, ScopePlaceholder, " ")
		}
		return strings.ReplaceAll(selector, ScopePlaceholder, " "+scope+" ")
	}
	if scope != "" {
		return scope + " " + selector
	}
	return selector
}

func effectiveLayer(meta *RuleMeta) string {
	if meta != nil && meta.Layer != "" {
		return meta.Layer
	}
	return LayerDefault
}

func preflightLayer(pf Preflight) string {
	if pf.Layer != "" {
		return pf.Layer
	}
	return LayerPreflights
}

func dedupeStrings(list []string) []string {
	seen := make(map[string]bool, len(list))
	out := list[:0]
	for _, s := range list {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
