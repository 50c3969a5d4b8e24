package main

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yacobolo/atomcss"
)

var k = koanf.New(".")

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = ".atomcss.yaml"
	}

	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// CLI flags (highest precedence — only flags that were explicitly set)
	fs := cmd.Flags()
	if err := k.Load(posflag.ProviderWithFlag(fs, ".", k, func(f *pflag.Flag) (string, interface{}) {
		if !f.Changed {
			return "", nil
		}
		return f.Name, posflag.FlagVal(fs, f)
	}), nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}

	return nil
}

// loadConfigFromPath loads configuration from a file and environment
// variables. Separated from loadConfig to allow testing without a cobra
// command.
func loadConfigFromPath(configPath string) error {
	// 1. Config file (lowest precedence among providers)
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	// 2. Environment variables (ATOMCSS_* prefix)
	if err := k.Load(env.Provider("ATOMCSS_", ".", func(s string) string {
		// ATOMCSS_GENERATE_OUT -> generate.out
		// ATOMCSS_VERBOSE -> verbose
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, "ATOMCSS_")),
			"_", ".",
		)
	}), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

// generateSettings is the CLI-level configuration for one batch run.
type generateSettings struct {
	Includes   []string
	Out        string
	Scope      string
	Minify     bool
	Preflights bool
	HTMLOnly   bool
	Safelist   []string
	Blocklist  []string
	Verbose    bool
	Quiet      bool
	Color      bool
}

// buildGenerateSettings constructs the run settings from koanf state.
func buildGenerateSettings() generateSettings {
	s := generateSettings{
		Out:        getStringWithFallback("out", "generate.out", "atomcss.css"),
		Scope:      getStringWithFallback("scope", "generate.scope", ""),
		Minify:     getBoolWithFallback("minify", "generate.minify", false),
		Preflights: getBoolWithFallback("preflights", "generate.preflights", true),
		HTMLOnly:   getBoolWithFallback("html-only", "generate.html-only", false),
		Verbose:    getBoolWithFallback("verbose", "verbose", false),
		Quiet:      getBoolWithFallback("quiet", "quiet", false),
		Color:      getBoolWithFallback("color", "color", false),
	}

	// Handle includes: check flag key first, then config key
	if includes := k.Strings("include"); len(includes) > 0 {
		s.Includes = includes
	} else if includes := k.Strings("generate.include"); len(includes) > 0 {
		s.Includes = includes
	} else {
		s.Includes = []string{"**/*.html"}
	}

	if list := k.Strings("safelist"); len(list) > 0 {
		s.Safelist = list
	} else {
		s.Safelist = k.Strings("generate.safelist")
	}
	if list := k.Strings("blocklist"); len(list) > 0 {
		s.Blocklist = list
	} else {
		s.Blocklist = k.Strings("generate.blocklist")
	}

	return s
}

// buildEngineConfig maps CLI settings onto the library's Config, layered
// over the default preset.
func buildEngineConfig(s generateSettings) (*atomcss.Config, *atomcss.Config) {
	cfg := &atomcss.Config{
		Safelist: s.Safelist,
	}
	for _, entry := range s.Blocklist {
		// Entries wrapped in slashes are patterns: /^x-/
		if len(entry) > 1 && strings.HasPrefix(entry, "/") && strings.HasSuffix(entry, "/") {
			if re, err := regexp.Compile(entry[1 : len(entry)-1]); err == nil {
				cfg.Blocklist = append(cfg.Blocklist, atomcss.BlockEntry{Pattern: re})
				continue
			}
		}
		cfg.Blocklist = append(cfg.Blocklist, atomcss.BlockEntry{Exact: entry})
	}
	if s.HTMLOnly {
		cfg.Extractors = []atomcss.Extractor{atomcss.HTMLClassExtractor}
	}
	return cfg, atomcss.DefaultPreset()
}

// getStringWithFallback checks the flag key first, then the config file key, then returns the default.
func getStringWithFallback(flagKey, configKey, defaultVal string) string {
	if v := k.String(flagKey); v != "" {
		return v
	}
	if v := k.String(configKey); v != "" {
		return v
	}
	return defaultVal
}

// getBoolWithFallback checks the flag key first, then the config file key, then returns the default.
func getBoolWithFallback(flagKey, configKey string, defaultVal bool) bool {
	if k.Exists(flagKey) {
		return k.Bool(flagKey)
	}
	if k.Exists(configKey) {
		return k.Bool(configKey)
	}
	return defaultVal
}
