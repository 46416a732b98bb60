package cmd

import (
	"github.com/spf13/cobra"

	"github.com/huangsam/shiftgrid/core"
	"github.com/huangsam/shiftgrid/internal/contract"
)

// streaksCmd ranks people by consecutive working days.
var streaksCmd = &cobra.Command{
	Use:   "streaks",
	Short: "Rank people by their consecutive working days.",
	Long: `Compute for every person and scheduled day how many days in a row they have worked.

Schedules before the range are loaded (see --history-days) so streaks that began
earlier carry into the visible days. Day-off entries break a streak.

Examples:
  # Longest streaks this week
  shiftgrid streaks

  # Top 10 for one site in January
  shiftgrid streaks --range monthly --select 2025-01 --site north --limit 10

  # Export for a spreadsheet
  shiftgrid streaks --output csv --output-file streaks.csv`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteStreaks(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot run streak analysis", err)
		}
	},
}

// windowsCmd classifies each visible day into its continuous window position.
var windowsCmd = &cobra.Command{
	Use:   "windows",
	Short: "Mark where each day sits in a continuous working window.",
	Long: `Classify each visible day of every person by its place in a run of seven
consecutive working days.

Classes:
  Edge    (1) the first or last day of a 7-day run
  Inside  (2) a day strictly inside a 7-day run
  -       (3) any other day

Examples:
  # Windows for the current week
  shiftgrid windows

  # Windows for a site, as JSON
  shiftgrid windows --site south --output json`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteWindows(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot run window analysis", err)
		}
	},
}

// gridCmd prints the per-person schedule grid.
var gridCmd = &cobra.Command{
	Use:   "grid",
	Short: "Show the schedule grid with streaks and windows per day.",
	Long: `Render one row per person and one column per visible day, combining the
scheduled service, the streak and the window class of each cell.

Examples:
  # Grid for the current week
  shiftgrid grid

  # Grid for a month written to Parquet
  shiftgrid grid --range monthly --output parquet --output-file grid.parquet`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteGrid(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot build schedule grid", err)
		}
	},
}
