// Package memo memoizes streak and window computations in a bounded cache
// owned by the caller.
package memo

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/huangsam/shiftgrid/core/algo"
	"github.com/huangsam/shiftgrid/schema"
)

// DefaultSize is the number of results kept when no size is configured.
const DefaultSize = 128

// Cache is a size and time bounded LRU keyed by input signature.
type Cache[V any] struct {
	lru *expirable.LRU[string, V]
}

// New creates a cache holding at most size values for at most ttl each. A
// non-positive ttl keeps values until they are evicted by size.
func New[V any](size int, ttl time.Duration) *Cache[V] {
	if size <= 0 {
		size = DefaultSize
	}
	return &Cache[V]{lru: expirable.NewLRU[string, V](size, nil, ttl)}
}

// Get returns the cached value for key.
func (c *Cache[V]) Get(key string) (V, bool) {
	return c.lru.Get(key)
}

// Add stores a value under key.
func (c *Cache[V]) Add(key string, value V) {
	c.lru.Add(key, value)
}

// Invalidate drops a single key.
func (c *Cache[V]) Invalidate(key string) {
	c.lru.Remove(key)
}

// Clear drops every key.
func (c *Cache[V]) Clear() {
	c.lru.Purge()
}

// Len returns the number of cached values.
func (c *Cache[V]) Len() int {
	return c.lru.Len()
}

// Signature hashes everything a streak or window result depends on: roster
// IDs, each entry's ID, owner, date and kind, and the optional date range. Inputs
// that are equal by value produce equal signatures.
func Signature(roster []schema.Person, entries []schema.ScheduleEntry, dateRange ...schema.Day) string {
	h := sha256.New()
	for _, p := range roster {
		fmt.Fprintf(h, "p:%s\x00", p.ID)
	}
	h.Write([]byte{'|'})
	for _, e := range entries {
		fmt.Fprintf(h, "e:%s:%s:%d:%s\x00", e.ID, e.PersonID, e.Date, e.EffectiveKind())
	}
	h.Write([]byte{'|'})
	for _, d := range dateRange {
		fmt.Fprintf(h, "d:%d\x00", d)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// GetOrCompute returns the cached value for key, storing the result of
// compute on a miss.
func (c *Cache[V]) GetOrCompute(key string, compute func() V) V {
	if v, ok := c.lru.Get(key); ok {
		return v
	}
	v := compute()
	c.lru.Add(key, v)
	return v
}

// Loader resolves an in-process miss. It receives the signature and the direct
// computation, and may answer from a slower cache before computing.
type Loader[V any] func(key string, compute func() V) V

// Option configures Analytics.
type Option func(*Analytics)

// WithStreakLoader consults loader on streak misses.
func WithStreakLoader(loader Loader[schema.StreakMap]) Option {
	return func(a *Analytics) { a.streakLoader = loader }
}

// WithWindowLoader consults loader on window misses.
func WithWindowLoader(loader Loader[schema.ContinuousStatus]) Option {
	return func(a *Analytics) { a.windowLoader = loader }
}

// Analytics memoizes ComputeStreaks and ClassifyContinuousWindows.
type Analytics struct {
	streaks      *Cache[schema.StreakMap]
	windows      *Cache[schema.ContinuousStatus]
	streakLoader Loader[schema.StreakMap]
	windowLoader Loader[schema.ContinuousStatus]
}

// NewAnalytics creates memoized analytics with one cache per computation.
func NewAnalytics(size int, ttl time.Duration, opts ...Option) *Analytics {
	a := &Analytics{
		streaks: New[schema.StreakMap](size, ttl),
		windows: New[schema.ContinuousStatus](size, ttl),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Streaks returns the streak map for the inputs, computing it on a miss. A hit
// returns the cached map itself, so callers must not mutate it.
func (a *Analytics) Streaks(roster []schema.Person, entries []schema.ScheduleEntry) schema.StreakMap {
	key := Signature(roster, entries)
	return a.streaks.GetOrCompute(key, func() schema.StreakMap {
		compute := func() schema.StreakMap { return algo.ComputeStreaks(roster, entries) }
		if a.streakLoader != nil {
			return a.streakLoader(key, compute)
		}
		return compute()
	})
}

// Windows returns the window classification for the inputs, computing it on a
// miss. A hit returns the cached map itself.
func (a *Analytics) Windows(roster []schema.Person, entries []schema.ScheduleEntry, dateRange []schema.Day) schema.ContinuousStatus {
	key := Signature(roster, entries, dateRange...)
	return a.windows.GetOrCompute(key, func() schema.ContinuousStatus {
		compute := func() schema.ContinuousStatus {
			return algo.ClassifyContinuousWindows(roster, entries, dateRange)
		}
		if a.windowLoader != nil {
			return a.windowLoader(key, compute)
		}
		return compute()
	})
}

// Invalidate drops the memoized results for the inputs.
func (a *Analytics) Invalidate(roster []schema.Person, entries []schema.ScheduleEntry, dateRange []schema.Day) {
	a.streaks.Invalidate(Signature(roster, entries))
	a.windows.Invalidate(Signature(roster, entries, dateRange...))
}

// Clear drops all memoized results.
func (a *Analytics) Clear() {
	a.streaks.Clear()
	a.windows.Clear()
}

// Len returns the number of memoized streak and window results.
func (a *Analytics) Len() (streaks, windows int) {
	return a.streaks.Len(), a.windows.Len()
}
