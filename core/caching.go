package core

import (
	"encoding/json"
	"time"

	"github.com/huangsam/shiftgrid/core/memo"
	"github.com/huangsam/shiftgrid/internal/contract"
)

// currentCacheVersion defines the version of the cache schema
const currentCacheVersion = 1

// cacheMaxAge is how long a stored result stays valid.
const cacheMaxAge = 7 * 24 * time.Hour

// Key prefixes for the two memoized computations.
const (
	streakKeyPrefix = "streaks"
	windowKeyPrefix = "windows"
)

// persistentLoader consults the result store before computing, and stores what
// it computes. A nil store computes directly.
func persistentLoader[V any](store contract.CacheStore, prefix string) memo.Loader[V] {
	return func(key string, compute func() V) V {
		if store == nil {
			return compute()
		}
		cacheKey := prefix + ":" + key
		if result, ok := checkCacheHit[V](store, cacheKey); ok {
			return result
		}
		return computeAndStore(store, cacheKey, compute)
	}
}

// checkCacheHit attempts to retrieve and validate a cached result
func checkCacheHit[V any](store contract.CacheStore, key string) (V, bool) {
	var result V
	data, version, ts, err := store.Get(key)
	if err != nil {
		return result, false // Cache miss
	}

	// Validate version and staleness
	if version != currentCacheVersion || time.Since(time.Unix(ts, 0)) > cacheMaxAge {
		return result, false
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return result, false
	}
	return result, true
}

// computeAndStore computes the result and stores it in cache
func computeAndStore[V any](store contract.CacheStore, key string, compute func() V) V {
	result := compute()
	if data, err := json.Marshal(result); err == nil {
		if err := store.Set(key, data, currentCacheVersion, time.Now().Unix()); err != nil {
			contract.LogWarn("Failed to store cached result", err)
		}
	}
	return result
}
