package core

import (
	"sync"

	"github.com/huangsam/shiftgrid/core/memo"
	"github.com/huangsam/shiftgrid/internal/contract"
	"github.com/huangsam/shiftgrid/schema"
)

var (
	analyticsMu sync.Mutex

	// sharedAnalytics memoizes streaks and windows across analyses in one process.
	sharedAnalytics *memo.Analytics
)

// getAnalytics returns the process-wide memo, creating it on first use with
// loaders backed by the manager's result store.
func getAnalytics(cfg *contract.Config, mgr contract.CacheManager) *memo.Analytics {
	analyticsMu.Lock()
	defer analyticsMu.Unlock()
	if sharedAnalytics != nil {
		return sharedAnalytics
	}

	var store contract.CacheStore
	if mgr != nil {
		store = mgr.GetResultStore()
	}
	size := cfg.MemoSize
	if size <= 0 {
		size = memo.DefaultSize
	}
	sharedAnalytics = memo.NewAnalytics(size, cfg.MemoTTL,
		memo.WithStreakLoader(persistentLoader[schema.StreakMap](store, streakKeyPrefix)),
		memo.WithWindowLoader(persistentLoader[schema.ContinuousStatus](store, windowKeyPrefix)),
	)
	return sharedAnalytics
}

// ResetAnalytics drops the process-wide memo so the next analysis starts cold.
func ResetAnalytics() {
	analyticsMu.Lock()
	defer analyticsMu.Unlock()
	sharedAnalytics = nil
}
