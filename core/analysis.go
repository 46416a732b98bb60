package core

import (
	"context"
	"fmt"
	"time"

	"github.com/huangsam/shiftgrid/core/algo"
	"github.com/huangsam/shiftgrid/core/calendar"
	"github.com/huangsam/shiftgrid/internal/contract"
	"github.com/huangsam/shiftgrid/schema"
)

// newBucketer returns a bucketer that honors the configured week start and clock.
func newBucketer(cfg *contract.Config) *calendar.Bucketer {
	b := calendar.New(cfg.WeekStart)
	b.Now = cfg.Clock()
	return b
}

// rangeOptions generates the options around the configured pivot, or around
// today when no pivot is set.
func rangeOptions(cfg *contract.Config) (*calendar.Bucketer, schema.RangeOptions) {
	b := newBucketer(cfg)
	pivot := cfg.Pivot
	if pivot == "" {
		pivot = b.DefaultPivot(cfg.RangeType)
	}
	return b, b.GenerateRangeOptions(cfg.RangeType, pivot)
}

// selectionLabel returns the configured selection, falling back to the pivot
// option in the middle of the list.
func selectionLabel(cfg *contract.Config, opts schema.RangeOptions) string {
	if cfg.Selection != "" {
		return cfg.Selection
	}
	if opts.Len() == 0 {
		return ""
	}
	return opts.Options[opts.Len()/2].Label
}

// runAnalysisCore resolves the visible range, loads the data it needs and
// computes streaks, windows, summaries and the grid.
func runAnalysisCore(ctx context.Context, cfg *contract.Config, src contract.ScheduleSource, mgr contract.CacheManager) (*schema.AnalysisOutput, error) {
	b, opts := rangeOptions(cfg)
	label := selectionLabel(cfg, opts)
	selected, fallback := b.Resolve(opts, label)
	days := b.FlattenToDays(opts, label)
	visible := schema.CellDays(days)

	if !shouldSuppressHeader(ctx) {
		contract.LogAnalysisHeader(cfg, src.Describe(), selected, fallback)
	}

	// --- 0. Begin Analysis Tracking (if configured) ---
	analysisID := beginTracking(cfg, mgr, src.Describe(), selected)

	// --- 1. Load roster and schedules, with enough history for streaks and windows ---
	roster, err := src.LoadRoster(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load roster: %w", err)
	}
	history := max(cfg.HistoryDays, algo.WindowLength-1)
	from := selected.Start.AddDays(-history)
	to := selected.End.AddDays(algo.WindowLength - 1)
	entries, err := src.LoadSchedules(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load schedules: %w", err)
	}
	roster = FilterRoster(roster, cfg.Site, visible)

	// --- 2. Memoized analytics ---
	analytics := getAnalytics(cfg, mgr)
	streaks := analytics.Streaks(roster, entries)
	status := analytics.Windows(roster, entries, visible)

	// --- 3. Summaries and grid ---
	summaries := summarizePersons(roster, streaks, status, visible)
	grid := BuildGrid(roster, entries, days, streaks, status)

	// --- 4. End Analysis Tracking ---
	endTracking(mgr, analysisID, summaries)

	ranked := algo.RankSummaries(append([]schema.PersonSummary(nil), summaries...), cfg.ResultLimit)
	return &schema.AnalysisOutput{
		RangeType: cfg.RangeType,
		Selected:  selected,
		Days:      days,
		Roster:    roster,
		Entries:   entries,
		Streaks:   streaks,
		Status:    status,
		Summaries: ranked,
		Grid:      limitGrid(grid, cfg.ResultLimit),
		Generated: cfg.Clock()(),
	}, nil
}

// summarizePersons condenses each person's streaks and windows over the visible days.
func summarizePersons(roster []schema.Person, streaks schema.StreakMap, status schema.ContinuousStatus, visible []schema.Day) []schema.PersonSummary {
	var siteDay schema.Day
	if len(visible) > 0 {
		siteDay = visible[len(visible)-1]
	}
	summaries := make([]schema.PersonSummary, 0, len(roster))
	for _, p := range roster {
		s := schema.PersonSummary{PersonID: p.ID, Name: p.Name, Site: p.SiteOn(siteDay)}
		for _, n := range algo.StreaksWithin(streaks[p.ID], visible) {
			if n == 0 {
				continue
			}
			s.ScheduledDays++
			s.MaxStreak = max(s.MaxStreak, n)
			s.LastStreak = n
		}
		classes := status[p.ID]
		for _, d := range visible {
			switch classes[d] {
			case schema.WindowBoundary:
				s.BoundaryDays++
			case schema.WindowInterior:
				s.InteriorDays++
			}
		}
		summaries = append(summaries, s)
	}
	return summaries
}

// beginTracking opens an analysis run when an analysis store is configured. It
// returns 0 when tracking is off or failed.
func beginTracking(cfg *contract.Config, mgr contract.CacheManager, sourceName string, selected schema.RangeOption) int64 {
	if mgr == nil {
		return 0
	}
	store := mgr.GetAnalysisStore()
	if store == nil {
		return 0
	}
	configParams := map[string]any{
		"range":        string(cfg.RangeType),
		"selection":    selected.Label,
		"start":        selected.Start.String(),
		"end":          selected.End.String(),
		"site":         cfg.Site,
		"source":       sourceName,
		"history_days": cfg.HistoryDays,
		"result_limit": cfg.ResultLimit,
	}
	analysisID, err := store.BeginAnalysis(time.Now(), configParams)
	if err != nil {
		contract.LogWarn("Analysis tracking initialization failed", err)
		return 0
	}
	return analysisID
}

// endTracking records the per-person summaries and closes the run.
func endTracking(mgr contract.CacheManager, analysisID int64, summaries []schema.PersonSummary) {
	if analysisID <= 0 {
		return
	}
	store := mgr.GetAnalysisStore()
	if store == nil {
		return
	}
	for _, s := range summaries {
		if err := store.RecordPersonSummary(analysisID, s); err != nil {
			contract.LogWarn(fmt.Sprintf("Failed to record summary for %s", s.PersonID), err)
		}
	}
	if err := store.EndAnalysis(analysisID, time.Now(), len(summaries)); err != nil {
		contract.LogWarn("Failed to finalize analysis tracking", err)
	}
}
