package schema

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestKindForService(t *testing.T) {
	assert.Equal(t, DayOffKind, KindForService("Voluntary-Day-off"))
	assert.Equal(t, StandbyKind, KindForService("Standby"))
	assert.Equal(t, WorkKind, KindForService("Ward A"))
	assert.Equal(t, WorkKind, KindForService(""))

	assert.False(t, DayOffKind.Counts())
	assert.True(t, WorkKind.Counts())
	assert.True(t, StandbyKind.Counts())
}

func TestEffectiveKind(t *testing.T) {
	assert.Equal(t, DayOffKind, ScheduleEntry{Service: DayOffService}.EffectiveKind())
	assert.Equal(t, StandbyKind, ScheduleEntry{Service: "Ward A", Kind: StandbyKind}.EffectiveKind())
	assert.Equal(t, DayOffKind, ScheduleEntry{Service: DayOffService, Kind: WorkKind}.EffectiveKind())
}

func TestSiteOn(t *testing.T) {
	jan := func(d int) Day { return NewDay(2025, time.January, d) }

	plain := Person{ID: "p1", Sites: []string{"north", "south"}}
	assert.Equal(t, "north", plain.SiteOn(jan(1)))
	assert.Equal(t, "", Person{ID: "p2"}.SiteOn(jan(1)))

	moved := Person{
		ID:    "p3",
		Sites: []string{"east"},
		SiteTrace: []SiteChange{
			{EffectiveAt: jan(10), From: "north", To: "south"},
			{EffectiveAt: jan(20), From: "south", To: "east"},
		},
	}
	assert.Equal(t, "north", moved.SiteOn(jan(9)))
	assert.Equal(t, "south", moved.SiteOn(jan(10)))
	assert.Equal(t, "south", moved.SiteOn(jan(19)))
	assert.Equal(t, "east", moved.SiteOn(jan(25)))
}

func TestKeyedMaps(t *testing.T) {
	d := NewDay(2025, time.January, 2)
	streaks := StreakMap{"p1": {d: 2}, "p2": {}}
	assert.Equal(t, map[string]map[string]int{"p1": {"02/01/2025": 2}, "p2": {}}, streaks.Keyed())

	status := ContinuousStatus{"p1": {d: WindowInterior}}
	assert.Equal(t, map[string]map[string]string{"p1": {"02/01/2025": "2"}}, status.Keyed())
}

func TestRangeOptionsLookup(t *testing.T) {
	start := NewDay(2025, time.May, 11)
	opts := RangeOptions{Type: WeeklyRange, Options: []RangeOption{
		{Label: "2025-W20", Start: start, End: start.AddDays(6)},
		{Label: "2025-W21", Start: start.AddDays(7), End: start.AddDays(13)},
	}}
	opt, ok := opts.Lookup("2025-W21")
	assert.True(t, ok)
	assert.Equal(t, 7, opt.Days())
	assert.True(t, opt.Contains(start.AddDays(13)))
	assert.False(t, opt.Contains(start))

	_, ok = opts.Lookup("2025-W30")
	assert.False(t, ok)
	assert.Equal(t, []string{"2025-W20", "2025-W21"}, opts.Labels())
	assert.Equal(t, 2, opts.Len())
}
