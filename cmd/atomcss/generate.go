package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yacobolo/atomcss"
	"github.com/yacobolo/atomcss/internal/batch"
)

var generateCmd = &cobra.Command{
	Use:     "generate",
	Aliases: []string{"gen"},
	Short:   "Generate a stylesheet from source files",
	Long: `Scan files for class-like tokens and emit the matching CSS.
Only rules that were referenced end up in the output.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runGenerate,
}

func init() {
	f := generateCmd.Flags()
	f.StringSlice("include", nil, "Glob patterns for files to scan")
	f.String("out", "atomcss.css", "Output stylesheet path (- for stdout)")
	f.String("scope", "", "Scope selector prefixed onto every rule")
	f.Bool("minify", false, "Suppress newlines and layer comments")
	f.Bool("preflights", true, "Include preflight CSS")
	f.Bool("html-only", false, "Extract from HTML class attributes only")
	f.StringSlice("safelist", nil, "Tokens always included")
	f.StringSlice("blocklist", nil, "Tokens never matched (/re/ for patterns)")
}

func runGenerate(_ *cobra.Command, _ []string) error {
	settings := buildGenerateSettings()

	logger := batch.NewLogger(settings.Verbose)
	defer func() { _ = logger.Sync() }()
	log := logger.Sugar()

	files, stats, err := batch.ScanFiles(settings.Includes)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no files matched %v", settings.Includes)
	}
	log.Debugf("scanning %d files", len(files))

	userConfig, preset := buildEngineConfig(settings)
	g := atomcss.New(userConfig, preset)

	opts := atomcss.DefaultGenerateOptions()
	opts.Scope = settings.Scope
	opts.Minify = settings.Minify
	opts.Preflights = settings.Preflights

	result, runStats, err := batch.Run(g, files, opts, log)
	if err != nil {
		return err
	}
	runStats.Scan = stats

	css := result.CSS()
	if settings.Out == "-" {
		fmt.Println(css)
	} else {
		// #nosec G306 - generated stylesheet, not a secret
		if err := os.WriteFile(settings.Out, []byte(css+"\n"), 0o644); err != nil {
			return fmt.Errorf("write failed: %w", err)
		}
	}

	if !settings.Quiet && settings.Out != "-" {
		batch.PrintReport(os.Stdout, runStats, settings.Out, batch.ShouldUseColors(settings.Color))
	}
	return nil
}
