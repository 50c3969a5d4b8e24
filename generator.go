package atomcss

import (
	"sort"
	"sync"

	"go.uber.org/multierr"
)

// Generator is the engine: it holds the resolved config, the per-token
// cache, the blocklist-miss set, and the parent at-rule orders. All three
// live for the lifetime of one config and reset on SetConfig.
type Generator struct {
	mu           sync.Mutex
	config       *ResolvedConfig
	cache        map[string][]StringifiedUtil // nil value = unmatched
	blocked      map[string]struct{}
	parentOrders map[string]int
	warned       map[string]struct{}
}

// New builds a generator from a user config merged over defaults. Either
// may be nil.
func New(config, defaults *Config) *Generator {
	g := &Generator{}
	g.install(Resolve(config, defaults))
	return g
}

// SetConfig replaces the configuration and resets the cache, the blocked
// set, and the parent orders. A nil config is a no-op.
func (g *Generator) SetConfig(config, defaults *Config) {
	if config == nil {
		return
	}
	g.install(Resolve(config, defaults))
}

func (g *Generator) install(rc *ResolvedConfig) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.config = rc
	g.cache = make(map[string][]StringifiedUtil)
	g.blocked = make(map[string]struct{})
	g.parentOrders = make(map[string]int)
	g.warned = make(map[string]struct{})
}

// Config returns the resolved configuration currently in effect.
func (g *Generator) Config() *ResolvedConfig {
	return g.config
}

func (g *Generator) setParentOrder(parent string, order int) {
	g.mu.Lock()
	g.parentOrders[parent] = order
	g.mu.Unlock()
}

func (g *Generator) snapshotParentOrders() map[string]int {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make(map[string]int, len(g.parentOrders))
	for k, v := range g.parentOrders {
		out[k] = v
	}
	return out
}

// isBlocked reports whether a token is excluded by the blocklist. The empty
// token is always blocked.
func (g *Generator) isBlocked(raw string) bool {
	if raw == "" {
		return true
	}
	for _, entry := range g.config.Blocklist {
		if entry.blocks(raw) {
			return true
		}
	}
	return false
}

func (g *Generator) markBlocked(raw string) {
	g.mu.Lock()
	g.blocked[raw] = struct{}{}
	g.cache[raw] = nil
	g.mu.Unlock()
}

// ParseToken resolves one raw token to its stringified utilities. A nil
// slice with a nil error means the token is unmatched. Results are
// memoized; recomputation races are benign because the computation is a
// pure function of config and token.
func (g *Generator) ParseToken(raw string) ([]StringifiedUtil, error) {
	g.mu.Lock()
	if cached, ok := g.cache[raw]; ok {
		g.mu.Unlock()
		return cached, nil
	}
	if _, ok := g.blocked[raw]; ok {
		g.mu.Unlock()
		return nil, nil
	}
	g.mu.Unlock()

	current := raw
	for _, pre := range g.config.Preprocess {
		current = pre(current)
	}
	if g.isBlocked(current) {
		g.markBlocked(raw)
		return nil, nil
	}

	vm, err := g.matchVariants(raw, current)
	if err != nil {
		return nil, err
	}
	if len(vm.Handlers) == 0 && g.isBlocked(vm.Current) {
		g.markBlocked(raw)
		return nil, nil
	}

	utils, err := g.parseVariantMatch(vm)
	if err != nil {
		return nil, err
	}

	g.mu.Lock()
	g.cache[raw] = utils
	g.mu.Unlock()
	return utils, nil
}

// parseVariantMatch takes the shortcut path when an expansion exists, the
// rule path otherwise.
func (g *Generator) parseVariantMatch(vm variantMatch) ([]StringifiedUtil, error) {
	ctx := g.ruleContext(vm)

	tokens, scMeta, err := g.expandShortcut(vm.Current, ctx, shortcutDepth)
	if err != nil {
		return nil, err
	}
	if tokens != nil {
		return g.stringifyShortcuts(vm, tokens, scMeta)
	}

	utils, err := g.matchRules(vm, false)
	if err != nil {
		return nil, err
	}
	var out []StringifiedUtil
	for _, u := range utils {
		if su := g.stringifyUtil(u); su != nil {
			out = append(out, *su)
		}
	}
	return out, nil
}

// GenerateOptions controls one generation run.
type GenerateOptions struct {
	// ID is forwarded to extractors as the source identifier.
	ID string
	// Scope is substituted for the scope placeholder, or prefixed onto
	// selectors without one.
	Scope string
	// Preflights includes preflight CSS and registers preflight layers.
	Preflights bool
	// Safelist merges the configured safelist into the token set.
	Safelist bool
	// Minify suppresses newlines and layer comments.
	Minify bool
}

// DefaultGenerateOptions returns the options Generate uses when given nil.
func DefaultGenerateOptions() *GenerateOptions {
	return &GenerateOptions{Preflights: true, Safelist: true}
}

// Generate extracts tokens from input and generates the stylesheet for
// them. A nil opts means DefaultGenerateOptions.
func (g *Generator) Generate(input string, opts *GenerateOptions) (*GenerateResult, error) {
	if opts == nil {
		opts = DefaultGenerateOptions()
	}
	tokens, err := g.ApplyExtractors(input, opts.ID, nil)
	if err != nil {
		return nil, err
	}
	return g.GenerateTokens(tokens, opts)
}

// GenerateTokens generates the stylesheet for a pre-extracted token set.
// Tokens are parsed concurrently; output ordering is imposed by the
// assembler's sort keys, never by completion order.
func (g *Generator) GenerateTokens(tokens map[string]struct{}, opts *GenerateOptions) (*GenerateResult, error) {
	if opts == nil {
		opts = DefaultGenerateOptions()
	}

	ordered := make([]string, 0, len(tokens)+len(g.config.Safelist))
	for t := range tokens {
		ordered = append(ordered, t)
	}
	if opts.Safelist {
		for _, t := range g.config.Safelist {
			if _, ok := tokens[t]; !ok {
				ordered = append(ordered, t)
			}
		}
	}
	sort.Strings(ordered)

	// Fan out per token, join, then assemble deterministically.
	results := make([][]StringifiedUtil, len(ordered))
	var (
		wg    sync.WaitGroup
		errMu sync.Mutex
		errs  error
	)
	for i, tok := range ordered {
		wg.Add(1)
		go func(i int, tok string) {
			defer wg.Done()
			utils, err := g.ParseToken(tok)
			if err != nil {
				errMu.Lock()
				errs = multierr.Append(errs, err)
				errMu.Unlock()
				return
			}
			results[i] = utils
		}(i, tok)
	}
	wg.Wait()
	if errs != nil {
		return nil, errs
	}

	matched := make(map[string]struct{})
	sheet := make(map[string][]StringifiedUtil)
	layerSet := map[string]struct{}{LayerDefault: {}}
	for i, tok := range ordered {
		utils := results[i]
		if len(utils) == 0 {
			continue
		}
		matched[tok] = struct{}{}
		for _, u := range utils {
			sheet[u.Parent] = append(sheet[u.Parent], u)
			if u.Meta != nil && u.Meta.Layer != "" {
				layerSet[u.Meta.Layer] = struct{}{}
			}
		}
	}
	if opts.Preflights {
		for _, pf := range g.config.Preflights {
			layerSet[preflightLayer(pf)] = struct{}{}
		}
	}

	layers := g.sortedLayers(layerSet)

	layerCSS := make(map[string]string, len(layers))
	for _, layer := range layers {
		css, err := g.stringifyLayer(sheet, layer, opts)
		if err != nil {
			return nil, err
		}
		layerCSS[layer] = css
	}

	return &GenerateResult{
		Matched:  matched,
		layers:   layers,
		layerCSS: layerCSS,
		minify:   opts.Minify,
	}, nil
}

// sortedLayers orders layer names by configured weight, then name, then
// applies the SortLayers hook.
func (g *Generator) sortedLayers(layerSet map[string]struct{}) []string {
	layers := make([]string, 0, len(layerSet))
	for name := range layerSet {
		layers = append(layers, name)
	}
	sort.Slice(layers, func(i, j int) bool {
		oi, oj := g.config.Layers[layers[i]], g.config.Layers[layers[j]]
		if oi != oj {
			return oi < oj
		}
		return layers[i] < layers[j]
	})
	if g.config.SortLayers != nil {
		layers = g.config.SortLayers(layers)
	}
	return layers
}
