package atomcss

import "fmt"

// maxVariantHandlers guards against pathological configs where a variant
// keeps consuming forever.
const maxVariantHandlers = 500

// VariantOverflowError reports a token that accumulated more than
// maxVariantHandlers variant applications.
type VariantOverflowError struct {
	Token string
}

func (e *VariantOverflowError) Error() string {
	return fmt.Sprintf("too many variants applied to token %q", e.Token)
}

// variantMatch is a raw token with its variants peeled off: the residual
// string fed to the rule matcher plus the handlers collected on the way.
type variantMatch struct {
	Raw      string
	Current  string
	Handlers []*VariantHandler
}

// matchVariants repeatedly scans the configured variants against current
// (defaulting to raw) until a full pass produces no hit. Each hit restarts
// the scan from the top; a variant applies at most once unless it is marked
// multi-pass.
func (g *Generator) matchVariants(raw, current string) (variantMatch, error) {
	if current == "" {
		current = raw
	}

	ctx := &VariantContext{Raw: raw, Theme: g.config.Theme, Generator: g}
	used := make(map[int]bool)
	var handlers []*VariantHandler
	processed := current

	for {
		hit := false
		for i := range g.config.Variants {
			v := &g.config.Variants[i]
			if used[i] && !v.MultiPass {
				continue
			}
			h := v.Match(processed, ctx)
			if h == nil {
				continue
			}

			processed = h.Matcher
			if h.Parent != "" && h.ParentOrder != nil {
				g.setParentOrder(h.Parent, *h.ParentOrder)
			}
			handlers = append(handlers, h)
			used[i] = true
			hit = true
			break
		}
		if !hit {
			break
		}
		if len(handlers) > maxVariantHandlers {
			return variantMatch{}, &VariantOverflowError{Token: raw}
		}
	}

	return variantMatch{Raw: raw, Current: processed, Handlers: handlers}, nil
}
