package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default .atomcss.yaml config file",
	Long:  `Create a .atomcss.yaml configuration file in the current directory with sensible defaults.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")

		if _, err := os.Stat(".atomcss.yaml"); err == nil && !force {
			return fmt.Errorf(".atomcss.yaml already exists (use --force to overwrite)")
		}

		if err := os.WriteFile(".atomcss.yaml", []byte(defaultConfig), 0644); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}

		fmt.Println("Created .atomcss.yaml")
		return nil
	},
}

const defaultConfig = `# atomcss configuration
# Docs: https://github.com/yacobolo/atomcss

# Shared settings
verbose: false

# Generation settings
generate:
  include:
    - "**/*.html"
    - "web/**/*.templ"
  out: atomcss.css
  scope: ""
  minify: false
  preflights: true
  html-only: false
  safelist: []
  blocklist: []            # plain strings, or /patterns/ wrapped in slashes
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
