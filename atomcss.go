// Package atomcss is an on-demand atomic-CSS generator. Given source text,
// it extracts candidate class-like tokens, matches each against a
// configured rule set, and emits a deterministic stylesheet containing only
// the rules that were referenced.
//
// # Usage
//
//	g := atomcss.New(&atomcss.Config{
//		Rules: []atomcss.Rule{
//			{Matcher: "m-2", Entries: atomcss.CSSEntries{{Property: "margin", Value: "0.5rem"}}},
//		},
//	}, atomcss.DefaultPreset())
//	result, err := g.Generate(`<div class="m-2 hover:m-2">`, nil)
//	css := result.CSS()
//
// Tokens flow through a multi-stage pipeline: extraction, variant matching
// (peeling prefixes like "hover:" off a token), rule matching (static map
// lookup or a dynamic regex scan in reverse registration order), optional
// shortcut expansion, stringification, and a merge/sort assembly step whose
// output is byte-stable for a fixed config and token set.
//
// The generator memoizes per-token results and may be driven incrementally
// by a long-lived build tool: call ParseToken per token, or Generate per
// changed source, and replace the config with SetConfig when it changes.
//
// # CLI Tool
//
// atomcss also provides a one-shot batch CLI. Install with:
//
//	go install github.com/yacobolo/atomcss/cmd/atomcss@latest
package atomcss
