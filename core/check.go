package core

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/huangsam/shiftgrid/core/algo"
	"github.com/huangsam/shiftgrid/internal/contract"
	"github.com/huangsam/shiftgrid/internal/outwriter"
	"github.com/huangsam/shiftgrid/schema"
)

// ExecuteCheck runs the streak compliance check for CI/CD gating.
// It returns a non-zero exit code if anyone reaches the configured streak limit
// inside the visible range.
func ExecuteCheck(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	result, err := GetCheckResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	if err := outwriter.NewOutWriter().WriteCheck(result, cfg, time.Since(start)); err != nil {
		return err
	}
	if !result.Passed {
		fmt.Fprintf(os.Stderr, "%d violation(s) found\n", len(result.Violations))
		os.Exit(1)
	}
	return nil
}

// GetCheckResults runs the analysis and evaluates it against the streak limit.
func GetCheckResults(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (*schema.CheckResult, error) {
	src, err := openSource(cfg)
	if err != nil {
		return nil, err
	}
	defer closeSource(src)

	output, err := runAnalysisCore(ctx, cfg, src, mgr)
	if err != nil {
		return nil, err
	}
	return BuildCheckResult(output, cfg.MaxStreak), nil
}

// BuildCheckResult flags every person whose longest streak on a visible day
// reaches maxStreak. The earliest longest streak is reported.
func BuildCheckResult(output *schema.AnalysisOutput, maxStreak int) *schema.CheckResult {
	visible := schema.CellDays(output.Days)
	within := make(schema.StreakMap, len(output.Roster))
	for _, p := range output.Roster {
		inner := make(map[schema.Day]int)
		for i, n := range algo.StreaksWithin(output.Streaks[p.ID], visible) {
			if n > 0 {
				inner[visible[i]] = n
			}
		}
		within[p.ID] = inner
	}
	summaries := algo.Summarize(within)

	result := &schema.CheckResult{
		MaxStreak:    maxStreak,
		RangeLabel:   output.Selected.Label,
		Start:        output.Selected.Start,
		End:          output.Selected.End,
		TotalPersons: len(output.Roster),
		Violations:   []schema.CheckViolation{},
	}
	for _, p := range output.Roster {
		s := summaries[p.ID]
		result.Longest = max(result.Longest, s.MaxStreak)
		if maxStreak <= 0 || s.MaxStreak < maxStreak {
			continue
		}
		result.Violations = append(result.Violations, schema.CheckViolation{
			PersonID: p.ID,
			Name:     p.Name,
			Site:     p.SiteOn(s.MaxStreakEnd),
			Streak:   s.MaxStreak,
			Start:    s.MaxStreakEnd.AddDays(-(s.MaxStreak - 1)),
			End:      s.MaxStreakEnd,
		})
	}
	sort.SliceStable(result.Violations, func(i, j int) bool {
		if result.Violations[i].Streak != result.Violations[j].Streak {
			return result.Violations[i].Streak > result.Violations[j].Streak
		}
		return result.Violations[i].PersonID < result.Violations[j].PersonID
	})
	result.Passed = len(result.Violations) == 0
	return result
}
