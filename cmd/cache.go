package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/huangsam/shiftgrid/internal/contract"
	"github.com/huangsam/shiftgrid/internal/iocache"
)

// cacheCmd groups the result cache maintenance commands. They use cacheSetup
// instead of sharedSetup, so no dataset is needed.
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or reset the streak and window result cache",
	Long: `Streaks and continuous windows are stored under a signature of the schedule
entries they came from, so a later run over unchanged schedules skips the work.

Backends: sqlite (default, under ~/.shiftgrid), mysql, postgresql, none

Examples:
  shiftgrid cache status
  shiftgrid cache clear`,
}

// cacheClearCmd drops every cached result.
var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Drop every cached result",
	Long: `Drop every cached streak and window result.

The sqlite cache file is removed; on mysql and postgresql the cache table is dropped.

Examples:
  shiftgrid cache clear
  SHIFTGRID_CACHE_BACKEND=postgresql SHIFTGRID_CACHE_DB_CONNECT="host=... dbname=..." shiftgrid cache clear`,
	PreRunE: func(_ *cobra.Command, _ []string) error { return cacheSetup() },
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ClearCache(cfg.CacheBackend, contract.GetCacheDBFilePath(), cfg.CacheDBConnect); err != nil {
			contract.LogFatal("Failed to clear cache", err)
		}
		fmt.Println("Result cache cleared.")
	},
}

// cacheStatusCmd reports the size and age of the cache.
var cacheStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report the cache backend, entry count and entry ages",
	Long: `Report which backend holds the result cache, whether it is reachable, how many
results it holds and when the newest and oldest were written.

Examples:
  shiftgrid cache status`,
	PreRunE: func(_ *cobra.Command, _ []string) error { return cacheSetup() },
	Run: func(_ *cobra.Command, _ []string) {
		store := iocache.Manager.GetResultStore()
		if store == nil {
			contract.LogFatal("Failed to get cache status", errors.New("result cache is not configured"))
		}
		status, err := store.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get cache status", err)
		}
		iocache.PrintCacheStatus(os.Stdout, status)
	},
}
