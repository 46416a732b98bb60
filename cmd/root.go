package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/pprof"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/huangsam/shiftgrid/internal/contract"
	"github.com/huangsam/shiftgrid/internal/iocache"
	"github.com/huangsam/shiftgrid/schema"
)

// Stamped through -ldflags by the release build.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	rootCtx = context.Background()

	// cfg is the validated configuration shared by every command.
	cfg = &contract.Config{}

	// input receives defaults, .shiftgrid.yaml, SHIFTGRID_* variables and flags before validation.
	input = &contract.ConfigRawInput{}

	profile = &contract.ProfileConfig{}

	cacheManager contract.CacheManager
)

// startProfiling begins the CPU profile; the heap profile is written by stopProfiling.
func startProfiling() error {
	if !profile.Enabled {
		return nil
	}

	cpuFile, err := os.Create(profile.Prefix + ".cpu.prof")
	if err != nil {
		return fmt.Errorf("could not create CPU profile: %w", err)
	}
	if err := pprof.StartCPUProfile(cpuFile); err != nil {
		return fmt.Errorf("could not start CPU profiling: %w", err)
	}

	// stdout carries MCP frames and piped reports
	_, err = fmt.Fprintf(os.Stderr, "Profiling enabled. CPU profile: %s.cpu.prof, Memory profile: %s.mem.prof\n", profile.Prefix, profile.Prefix)
	return err
}

// stopProfiling finishes the CPU profile and writes a heap snapshot.
func stopProfiling() error {
	if !profile.Enabled {
		return nil
	}

	pprof.StopCPUProfile()

	memFile, err := os.Create(profile.Prefix + ".mem.prof")
	if err != nil {
		return fmt.Errorf("could not create memory profile: %w", err)
	}
	defer func() { _ = memFile.Close() }()

	if err := pprof.WriteHeapProfile(memFile); err != nil {
		return fmt.Errorf("could not write memory profile: %w", err)
	}

	_, err = fmt.Fprintf(os.Stderr, "Profiling complete. Use 'go tool pprof %s.cpu.prof' to analyze.\n", profile.Prefix)
	return err
}

var rootCmd = &cobra.Command{
	Use:   "shiftgrid",
	Short: "Bucket staff schedules into ranges and track consecutive working days.",
	Long: `Shiftgrid turns a roster and its schedule entries into calendar ranges,
consecutive-day streaks and continuous working windows.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// setConfigLocation points viper at the explicit config file or the default search paths.
func setConfigLocation() {
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
		return
	}
	viper.SetConfigName(".shiftgrid")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME")
}

// initConfig registers the config search path, SHIFTGRID_ environment binding and defaults.
func initConfig() {
	setConfigLocation()

	viper.SetEnvPrefix("SHIFTGRID")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("range", schema.WeeklyRange)
	viper.SetDefault("week-start", "sunday")
	viper.SetDefault("history-days", contract.DefaultHistoryDays)
	viper.SetDefault("source", schema.FileSource)
	viper.SetDefault("dataset", contract.DefaultDataset)
	viper.SetDefault("limit", contract.DefaultResultLimit)
	viper.SetDefault("max-streak", contract.DefaultMaxStreak)
	viper.SetDefault("output", schema.TextOut)
	viper.SetDefault("memo-size", contract.DefaultMemoSize)
	viper.SetDefault("memo-ttl", contract.DefaultMemoTTL.String())
	viper.SetDefault("cache-backend", schema.SQLiteBackend)
	viper.SetDefault("cache-db-connect", "")
	viper.SetDefault("analysis-backend", "")
	viper.SetDefault("analysis-db-connect", "")
	viper.SetDefault("api-addr", contract.DefaultAPIAddr)
	viper.SetDefault("color", "yes")
	viper.SetDefault("emoji", "no")
}

// readConfigFile merges .shiftgrid.yaml when one exists; a missing file is not an error.
func readConfigFile() error {
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	return nil
}

// sharedSetup prepares the analysis commands: profiling, config resolution,
// validation and the persistent stores.
func sharedSetup(_ context.Context, _ *cobra.Command, _ []string) error {
	profilePrefix := viper.GetString("profile")
	if err := contract.ProcessProfilingConfig(profile, profilePrefix); err != nil {
		return fmt.Errorf("failed to process profiling config: %w", err)
	}
	if profile.Enabled {
		if err := startProfiling(); err != nil {
			return fmt.Errorf("failed to start profiling: %w", err)
		}
	}

	if err := readConfigFile(); err != nil {
		return err
	}

	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	if err := contract.ProcessAndValidate(cfg, input); err != nil {
		return err
	}

	if err := iocache.InitStores(cfg.CacheBackend, cfg.CacheDBConnect, cfg.AnalysisBackend, cfg.AnalysisDBConnect); err != nil {
		return fmt.Errorf("failed to open result cache or analysis store: %w", err)
	}

	return nil
}

// sharedSetupWrapper adapts sharedSetup to cobra's PreRunE signature.
func sharedSetupWrapper(cmd *cobra.Command, args []string) error {
	return sharedSetup(rootCtx, cmd, args)
}

// loadConfigFile reads the config file without validating it.
func loadConfigFile() error {
	setConfigLocation()
	return readConfigFile()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetCacheManager installs the store manager used by serve and mcp.
func SetCacheManager(mgr contract.CacheManager) {
	cacheManager = mgr
}

// StopProfiling flushes profiles started by --profile.
func StopProfiling() error {
	return stopProfiling()
}
