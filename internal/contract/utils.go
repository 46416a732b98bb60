package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/huangsam/shiftgrid/schema"
)

// Window label constants.
const (
	BoundaryValue = "Edge"   // first or last day of a 7-day run
	InteriorValue = "Inside" // strictly inside a 7-day run
	NoneValue     = "-"
)

// Color variables for console output.
var (
	BoundaryColor = color.New(color.FgRed, color.Bold) // BoundaryColor marks the days that open or close a 7-day run.
	InteriorColor = color.New(color.FgYellow)          // InteriorColor marks the days inside a run.
	StreakColor   = color.New(color.FgMagenta)         // StreakColor highlights streaks at or over the limit.
	DayOffColor   = color.New(color.FgCyan)            // DayOffColor marks voluntary days off.
)

// GetPlainLabel returns the plain text label of a window class. This is the
// core logic used for CSV, JSON, and table printing.
func GetPlainLabel(class schema.WindowClass) string {
	switch class {
	case schema.WindowBoundary:
		return BoundaryValue
	case schema.WindowInterior:
		return InteriorValue
	default:
		return NoneValue
	}
}

// GetColorLabel returns a colored text label for console output (table).
func GetColorLabel(class schema.WindowClass) string {
	text := GetPlainLabel(class)

	switch class {
	case schema.WindowBoundary:
		return BoundaryColor.Sprint(text)
	case schema.WindowInterior:
		return InteriorColor.Sprint(text)
	default:
		return text
	}
}

// GetStreakLabel renders a streak length, highlighted when it reaches limit.
func GetStreakLabel(streak, limit int, useColors bool) string {
	if streak == 0 {
		return NoneValue
	}
	text := fmt.Sprintf("%d", streak)
	if useColors && limit > 0 && streak >= limit {
		return StreakColor.Sprint(text)
	}
	return text
}

// GetCellLabel renders one grid cell as its service with the streak count.
func GetCellLabel(cell schema.GridCell, limit int, useColors bool) string {
	if cell.Kind == "" {
		return ""
	}
	if cell.Kind == schema.DayOffKind {
		if useColors {
			return DayOffColor.Sprint("off")
		}
		return "off"
	}
	text := fmt.Sprintf("%s %s", cell.Service, GetStreakLabel(cell.Streak, limit, false))
	if !useColors {
		return text
	}
	switch cell.Window {
	case schema.WindowBoundary:
		return BoundaryColor.Sprint(text)
	case schema.WindowInterior:
		return InteriorColor.Sprint(text)
	default:
		return text
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. It falls back to os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// LogAnalysisHeader prints a concise, 2-line header for each analysis.
func LogAnalysisHeader(cfg *Config, sourceName string, selected schema.RangeOption, fallback bool) {
	label := selected.Label
	if fallback {
		label += " (default)"
	}
	if cfg.UseEmojis {
		fmt.Printf("🗂️  Source: %s (Range: %s)\n", sourceName, cfg.RangeType)
		fmt.Printf("📅 Window: %s → %s [%s]\n", selected.Start, selected.End, label)
		return
	}
	fmt.Printf("Source: %s (Range: %s)\n", sourceName, cfg.RangeType)
	fmt.Printf("Window: %s -> %s [%s]\n", selected.Start, selected.End, label)
}

// GetCacheDBFilePath returns the path to the SQLite DB file for cache storage.
func GetCacheDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".shiftgrid_cache.db"
	}
	return filepath.Join(homeDir, ".shiftgrid_cache.db")
}

// GetAnalysisDBFilePath returns the path to the SQLite DB file for analysis storage.
func GetAnalysisDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".shiftgrid_analysis.db"
	}
	return filepath.Join(homeDir, ".shiftgrid_analysis.db")
}

// TruncateText truncates text to a maximum width with an ellipsis suffix.
// Requires maxWidth > 3 so there is room for the ellipsis and some content.
func TruncateText(text string, maxWidth int) string {
	runes := []rune(text)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return text
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
