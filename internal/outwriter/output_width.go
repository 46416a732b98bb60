package outwriter

import (
	"os"

	"github.com/huangsam/shiftgrid/internal/contract"
	"github.com/huangsam/shiftgrid/schema"
	"golang.org/x/term"
)

// getTermWidth returns the width override, the detected terminal width, or 80.
func getTermWidth(cfg *contract.Config) int {
	if cfg.Width > 0 {
		return cfg.Width
	}
	detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || detectedWidth <= 0 {
		return 80 // Conservative default for narrow terminals and CI
	}
	return detectedWidth
}

// getMaxNameWidth calculates the maximum width for person names in table output
// given the number of per-day columns the table carries.
func getMaxNameWidth(cfg *contract.Config, dayColumns, cellWidth int) int {
	// Person + Site columns with borders/padding
	baseWidth := 25 + dayColumns*cellWidth

	available := getTermWidth(cfg) - baseWidth
	if available < 10 {
		return 10
	}
	if available > 40 {
		return 40
	}
	return available
}

// dayHeader picks a compact column header for a visible day.
func dayHeader(d schema.Day, dayColumns int) string {
	if dayColumns > 14 {
		return d.Time().Format("02")
	}
	return d.Time().Format("Mon 02")
}
