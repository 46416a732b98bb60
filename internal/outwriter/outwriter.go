// Package outwriter has output and writer logic.
package outwriter

import (
	"time"

	"github.com/huangsam/shiftgrid/internal/contract"
	"github.com/huangsam/shiftgrid/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteRanges prints the range options around the pivot.
func (ow *OutWriter) WriteRanges(opts schema.RangeOptions, selected schema.RangeOption, cfg *contract.Config) error {
	return WriteRangeOptions(opts, selected, cfg)
}

// WriteDays prints the flattened days of the selected range.
func (ow *OutWriter) WriteDays(days []schema.DayCell, cfg *contract.Config) error {
	return WriteDayCells(days, cfg)
}

// WriteStreaks prints the per-person streak results.
func (ow *OutWriter) WriteStreaks(out *schema.AnalysisOutput, cfg *contract.Config, duration time.Duration) error {
	return WriteStreakResults(out, cfg, duration)
}

// WriteWindows prints the per-person window classification.
func (ow *OutWriter) WriteWindows(out *schema.AnalysisOutput, cfg *contract.Config, duration time.Duration) error {
	return WriteWindowResults(out, cfg, duration)
}

// WriteGrid prints the schedule grid.
func (ow *OutWriter) WriteGrid(out *schema.AnalysisOutput, cfg *contract.Config, duration time.Duration) error {
	return WriteGridResults(out, cfg, duration)
}

// WriteCheck prints the streak compliance report.
func (ow *OutWriter) WriteCheck(result *schema.CheckResult, cfg *contract.Config, duration time.Duration) error {
	return WriteCheckResult(result, cfg, duration)
}
