// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/huangsam/shiftgrid/schema"
)

// ScheduleSource loads the roster and its schedule entries.
// This allows the core analysis logic to be tested without a real dataset.
type ScheduleSource interface {
	// LoadRoster returns every person on the roster.
	LoadRoster(ctx context.Context) ([]schema.Person, error)

	// LoadSchedules returns the schedule entries dated from..to inclusive.
	LoadSchedules(ctx context.Context, from, to schema.Day) ([]schema.ScheduleEntry, error)

	// Describe returns a short human-readable name for headers and run records.
	Describe() string
}

// CacheManager defines the interface for managing cache stores.
// This allows the cache layer to be mocked for testing.
type CacheManager interface {
	GetResultStore() CacheStore
	GetAnalysisStore() AnalysisStore
}

// CacheStore defines the interface for cache data storage.
// This allows mocking the store for testing.
type CacheStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	GetStatus() (schema.CacheStatus, error)
	Close() error
}

// AnalysisStore defines the interface for tracking analysis runs and their per-person results.
type AnalysisStore interface {
	// BeginAnalysis creates a new analysis run and returns its unique ID
	BeginAnalysis(startTime time.Time, configParams map[string]any) (int64, error)

	// EndAnalysis updates the analysis run with completion data
	EndAnalysis(analysisID int64, endTime time.Time, totalPersons int) error

	// RecordPersonSummary stores the streak and window results for one person
	RecordPersonSummary(analysisID int64, summary schema.PersonSummary) error

	// GetStatus returns status information about the analysis store
	GetStatus() (schema.AnalysisStatus, error)

	// GetAllAnalysisRuns returns every recorded run, oldest first
	GetAllAnalysisRuns() ([]schema.AnalysisRunRecord, error)

	// GetAllPersonSummaries returns every recorded person summary
	GetAllPersonSummaries() ([]schema.PersonSummaryRecord, error)

	// Close closes the underlying connection
	Close() error
}
