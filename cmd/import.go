package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/huangsam/shiftgrid/core"
	"github.com/huangsam/shiftgrid/internal/contract"
)

// importCmd loads a JSON dataset into a database source.
var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Load a JSON dataset into a database source.",
	Long: `Create the personnel, site trace and schedule tables in the database named by
--source and --source-db-connect, then write the --dataset file into them.

Rows are keyed by ID, so importing the same file again replaces instead of duplicating.

Examples:
  # Seed a local SQLite source
  shiftgrid import --dataset roster.json --source sqlite --source-db-connect shiftgrid.db

  # Then analyze from it
  shiftgrid streaks --source sqlite --source-db-connect shiftgrid.db`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		path := input.Dataset
		if path == "" {
			path = contract.DefaultDataset
		}
		if err := core.ExecuteImport(rootCtx, os.Stdout, cfg, path); err != nil {
			contract.LogFatal("Cannot import dataset", err)
		}
	},
}
