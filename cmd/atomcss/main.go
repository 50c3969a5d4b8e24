// Package main provides the atomcss CLI: a one-shot batch front end for the
// atomic-CSS generator engine.
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
}
