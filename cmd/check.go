package cmd

import (
	"github.com/spf13/cobra"

	"github.com/huangsam/shiftgrid/core"
	"github.com/huangsam/shiftgrid/internal/contract"
)

// checkCmd focused on CI/CD policy enforcement.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Fail when someone works too many days in a row (for CI/CD and cron jobs)",
	Long: `Analyze the selected range and flag every person whose streak reaches --max-streak.

Exits with a non-zero code when violations are found, so it can gate schedule
publication in a pipeline or alert from a cron job.

Default limit: 7 consecutive days

Examples:
  # Check the current week
  shiftgrid check

  # Check next month with a stricter limit
  shiftgrid check --range monthly --select 2025-03 --max-streak 6

  # Machine-readable report
  shiftgrid check --output json`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCheck(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Streak check failed", err)
		}
	},
}
