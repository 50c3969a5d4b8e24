package batch

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Terminal styles for the generation report. Lipgloss automatically
// degrades colors based on terminal capabilities.
var (
	styleHeader = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	styleGreen  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	styleGray   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// renderStyle applies a lipgloss style to text when colors are enabled.
func renderStyle(style lipgloss.Style, text string, useColors bool) string {
	if !useColors {
		return text
	}
	return style.Render(text)
}

// ShouldUseColors determines if colors should be enabled.
func ShouldUseColors(force bool) bool {
	if force {
		return true
	}
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}
	if os.Getenv("GITHUB_ACTIONS") == "true" {
		return true
	}
	if fileInfo, _ := os.Stdout.Stat(); fileInfo != nil && (fileInfo.Mode()&os.ModeCharDevice) != 0 {
		return true
	}
	return false
}

// PrintReport writes the post-generation summary.
func PrintReport(w io.Writer, stats RunStats, outPath string, useColors bool) {
	fmt.Fprintln(w, renderStyle(styleHeader, "atomcss", useColors))

	fmt.Fprintf(w, "  Files scanned:   %d", stats.Scan.FilesScanned)
	if stats.Scan.FilesSkipped > 0 {
		fmt.Fprintf(w, " %s", renderStyle(styleGray, fmt.Sprintf("(%d ignored)", stats.Scan.FilesSkipped), useColors))
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  Candidate tokens: %d\n", stats.TokensSeen)
	fmt.Fprintf(w, "  Matched tokens:  %d\n", stats.Matched)
	fmt.Fprintf(w, "  Layers:          %s\n", strings.Join(stats.Layers, ", "))
	fmt.Fprintf(w, "  Output:          %s (%d bytes)\n", outPath, stats.CSSBytes)

	fmt.Fprintln(w, renderStyle(styleGreen, "✓ stylesheet generated", useColors))
}
