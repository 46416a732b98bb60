// Package cmd defines the command-line interface for shiftgrid.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/huangsam/shiftgrid/internal/contract"
	"github.com/huangsam/shiftgrid/schema"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(rangesCmd)
	rootCmd.AddCommand(daysCmd)
	rootCmd.AddCommand(streaksCmd)
	rootCmd.AddCommand(windowsCmd)
	rootCmd.AddCommand(gridCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(analysisCmd)

	// Add the serve subcommands to the parent serve command
	serveCmd.AddCommand(serveTokenCmd)

	// Add the cache subcommands to the parent cache command
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatusCmd)

	// Add the analysis subcommands to the parent analysis command
	analysisCmd.AddCommand(analysisClearCmd)
	analysisCmd.AddCommand(analysisStatusCmd)
	analysisCmd.AddCommand(analysisExportCmd)
	analysisCmd.AddCommand(analysisMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().StringP("range", "r", string(schema.WeeklyRange), "Range type: daily or weekly or biweekly or monthly")
	rootCmd.PersistentFlags().String("pivot", "", "Label of the range the options are centered on (default: the range containing today)")
	rootCmd.PersistentFlags().StringP("select", "s", "", "Label of the range to show (default: the pivot)")
	rootCmd.PersistentFlags().String("week-start", "sunday", "First day of the week: sunday or monday")
	rootCmd.PersistentFlags().String("site", "", "Only include people working at this site")
	rootCmd.PersistentFlags().Int("history-days", contract.DefaultHistoryDays, "Days of schedules loaded before the range so streaks carry over")
	rootCmd.PersistentFlags().String("source", string(schema.FileSource), "Dataset source: file or sqlite or mysql or postgresql")
	rootCmd.PersistentFlags().String("dataset", contract.DefaultDataset, "Path to the JSON dataset when using the file source")
	rootCmd.PersistentFlags().String("source-db-connect", "", "Database connection string for the sqlite/mysql/postgresql source")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of people to display")
	rootCmd.PersistentFlags().Int("max-streak", contract.DefaultMaxStreak, "Consecutive days at which a streak is flagged")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().Int("memo-size", contract.DefaultMemoSize, "Number of memoized streak and window results kept in memory")
	rootCmd.PersistentFlags().String("memo-ttl", contract.DefaultMemoTTL.String(), "Lifetime of memoized results (0 keeps them until evicted)")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().String("cache-backend", string(schema.SQLiteBackend), "Cache backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("cache-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("analysis-backend", "", "Analysis tracking backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("analysis-db-connect", "", "Database connection string for analysis tracking (must differ from cache-db-connect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("emoji", "no", "Enable emojis in output headers (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of serveCmd to Viper
	serveCmd.PersistentFlags().String("api-addr", contract.DefaultAPIAddr, "Address the REST API listens on")
	serveCmd.PersistentFlags().String("api-secret", "", "HS256 secret that enables bearer auth on the REST API")
	if err := viper.BindPFlags(serveCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding serve flags", err)
	}

	// Bind all flags of serveTokenCmd to Viper
	serveTokenCmd.Flags().String("subject", "shiftgrid", "Subject claim of the issued token")
	serveTokenCmd.Flags().Duration("ttl", defaultTokenTTL, "Lifetime of the issued token")
	if err := viper.BindPFlags(serveTokenCmd.Flags()); err != nil {
		contract.LogFatal("Error binding token flags", err)
	}

	// Bind all flags of analysisMigrateCmd to Viper
	analysisMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(analysisMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding analysis migrate flags", err)
	}
}
