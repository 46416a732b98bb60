package cmd

import (
	"github.com/spf13/cobra"

	"github.com/huangsam/shiftgrid/core"
	"github.com/huangsam/shiftgrid/internal/contract"
)

// rangesCmd lists the range options around the pivot.
var rangesCmd = &cobra.Command{
	Use:   "ranges",
	Short: "List the selectable ranges around the pivot.",
	Long: `List the range options centered on the pivot: two before, the pivot itself and two after.

The pivot defaults to the range containing today. Labels are what --pivot and --select accept:
- daily:    2025-02-05
- weekly:   2025-W06
- biweekly: 2025-W06/07
- monthly:  2025-02

Examples:
  # Weeks around the current one
  shiftgrid ranges

  # Months around February 2025, as JSON
  shiftgrid ranges --range monthly --pivot 2025-02 --output json`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteRanges(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot list ranges", err)
		}
	},
}

// daysCmd flattens the selected range into days.
var daysCmd = &cobra.Command{
	Use:   "days",
	Short: "Show every day of the selected range.",
	Long: `Flatten the selected range into its days, in order.

When the selection is not one of the listed options, the pivot range is shown
and each day is marked as a fallback.

Examples:
  # Days of the current week
  shiftgrid days

  # Days of a specific biweekly range as CSV
  shiftgrid days --range biweekly --select 2025-W06/07 --output csv`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteDays(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot list days", err)
		}
	},
}
