// Package batch drives the atomcss engine over a file set: glob scanning,
// per-file extraction, one generation pass, and a terminal report.
package batch

import (
	"fmt"
	"os"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/yacobolo/atomcss"
)

// RunStats summarizes one batch generation for the report.
type RunStats struct {
	Scan       ScanStats
	TokensSeen int // candidate tokens after extraction
	Matched    int // tokens that produced CSS
	Layers     []string
	CSSBytes   int
}

// Run extracts tokens from every file and generates a single stylesheet.
// Unreadable files are logged and skipped; the run only fails when no file
// could be read at all.
func Run(g *atomcss.Generator, files []string, opts *atomcss.GenerateOptions, log *zap.SugaredLogger) (*atomcss.GenerateResult, RunStats, error) {
	stats := RunStats{}

	tokens := make(map[string]struct{})
	var readErrs error
	readOK := 0
	for _, file := range files {
		// #nosec G304 - paths come from the user's own glob patterns
		content, err := os.ReadFile(file)
		if err != nil {
			log.Warnf("skipping %s: %v", file, err)
			readErrs = multierr.Append(readErrs, err)
			continue
		}
		readOK++

		if _, err := g.ApplyExtractors(string(content), file, tokens); err != nil {
			return nil, stats, fmt.Errorf("extract %s: %w", file, err)
		}
	}
	if readOK == 0 && readErrs != nil {
		return nil, stats, fmt.Errorf("no readable input: %w", readErrs)
	}
	stats.TokensSeen = len(tokens)

	result, err := g.GenerateTokens(tokens, opts)
	if err != nil {
		return nil, stats, fmt.Errorf("generate: %w", err)
	}

	stats.Matched = len(result.Matched)
	stats.Layers = result.Layers()
	stats.CSSBytes = len(result.CSS())
	return result, stats, nil
}
