package core

import (
	"context"
	"testing"
	"time"

	"github.com/huangsam/shiftgrid/internal/contract"
	"github.com/huangsam/shiftgrid/internal/iocache"
	"github.com/huangsam/shiftgrid/schema"
)

// fakeSource serves an in-memory dataset.
type fakeSource struct {
	roster  []schema.Person
	entries []schema.ScheduleEntry
	err     error
	calls   int
}

func (f *fakeSource) Describe() string { return "fake" }

func (f *fakeSource) LoadRoster(_ context.Context) ([]schema.Person, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.roster, nil
}

func (f *fakeSource) LoadSchedules(_ context.Context, from, to schema.Day) ([]schema.ScheduleEntry, error) {
	f.calls++
	var out []schema.ScheduleEntry
	for _, e := range f.entries {
		if e.Date >= from && e.Date <= to {
			out = append(out, e)
		}
	}
	return out, nil
}

var (
	// wednesday is the fixed "today" used by the tests; its week runs Feb 2..8.
	wednesday = schema.NewDay(2025, time.February, 5)
	sunday    = schema.NewDay(2025, time.February, 2)
)

func entry(id, person string, d schema.Day, service string) schema.ScheduleEntry {
	return schema.ScheduleEntry{ID: id, PersonID: person, Date: d, Service: service, Kind: schema.KindForService(service), Cycle: 1}
}

// newFakeSource builds a roster where n-001 works ten days in a row ending
// Thursday Feb 6, n-002 works two days then takes a day off, and n-003 only
// belongs to the east site.
func newFakeSource() *fakeSource {
	src := &fakeSource{
		roster: []schema.Person{
			{ID: "n-001", Name: "Avery", Sites: []string{"north"}},
			{ID: "n-002", Name: "Blake", Sites: []string{"south"}},
			{ID: "n-003", Name: "Casey", Sites: []string{"east"}},
		},
	}
	start := schema.NewDay(2025, time.January, 28)
	for i := range 10 {
		src.entries = append(src.entries, entry("a"+start.AddDays(i).String(), "n-001", start.AddDays(i), "Ward A"))
	}
	src.entries = append(src.entries,
		entry("b1", "n-002", schema.NewDay(2025, time.February, 3), "Ward B"),
		entry("b2", "n-002", schema.NewDay(2025, time.February, 4), "Ward B"),
		entry("b3", "n-002", wednesday, schema.DayOffService),
		// Outside the loaded window
		entry("c1", "n-003", schema.NewDay(2025, time.March, 20), "Porter"),
	)
	return src
}

func testConfig() *contract.Config {
	return &contract.Config{
		RangeType:    schema.WeeklyRange,
		WeekStart:    time.Sunday,
		MaxStreak:    7,
		Output:       schema.TextOut,
		CacheBackend: schema.NoneBackend,
		Now: func() time.Time {
			return time.Date(2025, time.February, 5, 9, 30, 0, 0, time.UTC)
		},
	}
}

// newNoStoreManager returns a manager with neither a result nor an analysis store,
// and resets the shared memo around the test.
func newNoStoreManager(t *testing.T) *iocache.MockCacheManager {
	t.Helper()
	ResetAnalytics()
	t.Cleanup(ResetAnalytics)
	mgr := &iocache.MockCacheManager{}
	mgr.On("GetResultStore").Return(nil)
	mgr.On("GetAnalysisStore").Return(nil)
	return mgr
}
