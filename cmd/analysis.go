package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/huangsam/shiftgrid/internal/contract"
	"github.com/huangsam/shiftgrid/internal/iocache"
)

// analysisCmd groups the run history commands. Like the cache commands they
// skip dataset validation.
var analysisCmd = &cobra.Command{
	Use:   "analysis",
	Short: "Inspect, export or reset the history of analysis runs",
	Long: `With --analysis-backend set, every streaks, windows, grid or check run records
its range, configuration and duration, plus one summary per person: scheduled
days, longest and last streak, and edge and inside window days.

Backends: sqlite, mysql, postgresql, none (default, nothing recorded)

Examples:
  shiftgrid analysis status --analysis-backend sqlite
  shiftgrid analysis export --analysis-backend sqlite --output-file history.parquet
  shiftgrid analysis migrate --analysis-backend sqlite
  shiftgrid analysis clear --analysis-backend sqlite`,
}

// analysisClearCmd drops the run history.
var analysisClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Drop every recorded run and person summary",
	Long: `Drop every recorded run and person summary. There is no undo, so export first
when the history matters.

Examples:
  shiftgrid analysis export --output-file before-reset.parquet
  shiftgrid analysis clear`,
	PreRunE: func(_ *cobra.Command, _ []string) error { return analysisSetup() },
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ClearAnalysis(cfg.AnalysisBackend, contract.GetAnalysisDBFilePath(), cfg.AnalysisDBConnect); err != nil {
			contract.LogFatal("Failed to clear analysis history", err)
		}
		fmt.Println("Analysis history cleared.")
	},
}

// analysisStatusCmd reports how much history is stored.
var analysisStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report the history backend, run count and table sizes",
	Long: `Report which backend holds the run history, whether it is reachable, how many
runs and person summaries it holds, and when the first and latest runs happened.

Examples:
  shiftgrid analysis status`,
	PreRunE: func(_ *cobra.Command, _ []string) error { return analysisSetup() },
	Run: func(_ *cobra.Command, _ []string) {
		store := iocache.Manager.GetAnalysisStore()
		if store == nil {
			contract.LogFatal("Failed to get analysis status", errors.New("analysis store is not configured"))
		}
		status, err := store.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get analysis status", err)
		}
		iocache.PrintAnalysisStatus(os.Stdout, status)
	},
}

// analysisExportCmd writes the run history to Parquet.
var analysisExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the run history to Parquet files",
	Long: `Write the run history to two Parquet files next to --output-file:
<output-file>.analysis_runs.parquet and <output-file>.person_summaries.parquet.

Examples:
  shiftgrid analysis export --output-file history.parquet
  duckdb -c "SELECT person_id, max(max_streak) FROM 'history.parquet.person_summaries.parquet' GROUP BY 1"`,
	PreRunE: func(_ *cobra.Command, _ []string) error { return analysisSetup() },
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ExecuteAnalysisExport(os.Stdout, iocache.Manager.GetAnalysisStore(), cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export analysis history", err)
		}
	},
}

// analysisMigrateCmd moves the history schema to a target version.
var analysisMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Move the history tables to a schema version",
	Long: `Apply or roll back the schema migrations of the run history tables.
Without --target-version the latest version is applied; 0 removes every table.

Examples:
  shiftgrid analysis migrate --analysis-backend sqlite
  shiftgrid analysis migrate --analysis-backend sqlite --target-version 0`,
	PreRunE: func(_ *cobra.Command, _ []string) error { return migrateSetup() },
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.MigrateAnalysis(cfg.AnalysisBackend, cfg.AnalysisDBConnect, viper.GetInt("target-version")); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
