// Package core has core logic for range bucketing, streaks and continuous windows.
package core

import (
	"context"
	"io"
	"time"

	"github.com/huangsam/shiftgrid/internal/contract"
	"github.com/huangsam/shiftgrid/internal/outwriter"
	"github.com/huangsam/shiftgrid/internal/source"
	"github.com/huangsam/shiftgrid/schema"
)

// ExecutorFunc defines the function signature for executing different analysis modes.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error

// openSource builds the schedule source for the configuration.
var openSource = source.New

// closeSource releases sources that hold a connection.
func closeSource(src contract.ScheduleSource) {
	if closer, ok := src.(io.Closer); ok {
		_ = closer.Close()
	}
}

// ExecuteRanges prints the range options around the pivot.
func ExecuteRanges(_ context.Context, cfg *contract.Config, _ contract.CacheManager) error {
	opts, selected := GetRangeOptions(cfg)
	return outwriter.NewOutWriter().WriteRanges(opts, selected, cfg)
}

// ExecuteDays prints one row per day of the selected range.
func ExecuteDays(_ context.Context, cfg *contract.Config, _ contract.CacheManager) error {
	return outwriter.NewOutWriter().WriteDays(GetDays(cfg), cfg)
}

// ExecuteStreaks runs the analysis and prints the ranked streak results.
func ExecuteStreaks(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	output, err := GetAnalysisResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteStreaks(output, cfg, time.Since(start))
}

// ExecuteWindows runs the analysis and prints the window classification.
func ExecuteWindows(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	output, err := GetAnalysisResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteWindows(output, cfg, time.Since(start))
}

// ExecuteGrid runs the analysis and prints the schedule grid.
func ExecuteGrid(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	output, err := GetAnalysisResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteGrid(output, cfg, time.Since(start))
}

// GetRangeOptions returns the options around the pivot and the selected one.
func GetRangeOptions(cfg *contract.Config) (schema.RangeOptions, schema.RangeOption) {
	b, opts := rangeOptions(cfg)
	selected, _ := b.Resolve(opts, selectionLabel(cfg, opts))
	return opts, selected
}

// GetDays flattens the selected range into day cells.
func GetDays(cfg *contract.Config) []schema.DayCell {
	b, opts := rangeOptions(cfg)
	return b.FlattenToDays(opts, selectionLabel(cfg, opts))
}

// GetAnalysisResults opens the configured source and runs the analysis.
// This is the shared entry point for the CLI, MCP and REST surfaces.
func GetAnalysisResults(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (*schema.AnalysisOutput, error) {
	src, err := openSource(cfg)
	if err != nil {
		return nil, err
	}
	defer closeSource(src)
	return runAnalysisCore(ctx, cfg, src, mgr)
}
