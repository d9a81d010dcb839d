package outwriter

import (
	"os"

	"github.com/huangsam/gitactivity/internal/contract"
	"golang.org/x/term"
)

// getMaxTablePathWidth calculates the maximum width for paths in table output
// based on the terminal width. Files get the widest column the table allows.
func getMaxTablePathWidth(cfg *contract.Config) int {
	termWidth := 0
	if cfg.OutputFile == "" {
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err == nil {
			termWidth = detectedWidth
		}
	}
	return pathWidthFor(termWidth, cfg.OnlyFilenames)
}

// pathWidthFor derives the path column width from a terminal width.
// A non-positive width means unknown, and a conservative default is used.
func pathWidthFor(termWidth int, onlyFilenames bool) int {
	if termWidth <= 0 {
		termWidth = 80 // Conservative default for narrow terminals and CI
	}

	// Borders, separators and padding
	baseWidth := 10
	if !onlyFilenames {
		baseWidth += 24 // Added + Deleted columns with formatting
	}

	available := termWidth - baseWidth
	if available < 15 {
		// Minimum reasonable path width
		return 15
	}
	if available > 120 {
		// Maximum path width to prevent overly long rows
		return 120
	}
	return available
}
