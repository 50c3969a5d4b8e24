package atomcss

import (
	"regexp"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/html"
)

// splitRE separates candidate tokens on whitespace, quotes, and the
// delimiters that commonly surround class lists in markup and code.
var splitRE = regexp.MustCompile("\\\\?[\\s'\"`;{}<>]+")

// SplitExtractor is the default extractor: it splits source text on
// whitespace and common delimiters and keeps everything that looks like a
// candidate token.
func SplitExtractor(ctx *ExtractorContext) ([]string, error) {
	parts := splitRE.Split(ctx.Code, -1)
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		if isValidToken(p) {
			tokens = append(tokens, p)
		}
	}
	return tokens, nil
}

// HTMLClassExtractor lexes the input as HTML and extracts tokens from class
// attributes only. Pair it with SplitExtractor when sources mix markup and
// code; on its own it avoids false candidates from text content.
func HTMLClassExtractor(ctx *ExtractorContext) ([]string, error) {
	lexer := html.NewLexer(parse.NewInputString(ctx.Code))

	var tokens []string
	for {
		tt, _ := lexer.Next()
		if tt == html.ErrorToken {
			// ErrorToken at EOF is normal - just stop
			return tokens, nil
		}
		if tt != html.AttributeToken {
			continue
		}
		if !strings.EqualFold(string(lexer.Text()), "class") {
			continue
		}
		val := strings.Trim(string(lexer.AttrVal()), "\"'")
		for _, p := range strings.Fields(val) {
			if isValidToken(p) {
				tokens = append(tokens, p)
			}
		}
	}
}

// isValidToken filters out fragments the splitter produces that can never
// match a rule.
func isValidToken(s string) bool {
	if s == "" {
		return false
	}
	// Pure punctuation fragments ("=", "/>", "...") are splitter noise.
	for _, r := range s {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}

// ApplyExtractors runs every configured extractor over code and unions the
// results into acc. A nil acc allocates a fresh set.
func (g *Generator) ApplyExtractors(code, id string, acc map[string]struct{}) (map[string]struct{}, error) {
	if acc == nil {
		acc = make(map[string]struct{})
	}
	ctx := &ExtractorContext{Original: code, Code: code, ID: id}
	for _, extractor := range g.config.Extractors {
		tokens, err := extractor(ctx)
		if err != nil {
			return acc, err
		}
		for _, t := range tokens {
			acc[t] = struct{}{}
		}
	}
	return acc, nil
}
