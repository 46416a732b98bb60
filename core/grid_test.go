package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huangsam/shiftgrid/schema"
)

func TestFilterRoster(t *testing.T) {
	roster := []schema.Person{
		{ID: "a", Sites: []string{"north"}},
		{ID: "b", Sites: []string{"south"}, SiteTrace: []schema.SiteChange{
			{EffectiveAt: wednesday, From: "south", To: "north"},
		}},
		{ID: "c", Sites: []string{"east", "north"}},
	}

	ids := func(people []schema.Person) []string {
		out := make([]string, 0, len(people))
		for _, p := range people {
			out = append(out, p.ID)
		}
		return out
	}

	assert.Equal(t, []string{"a", "b", "c"}, ids(FilterRoster(roster, "", nil)))

	before := []schema.Day{sunday, sunday.AddDays(1)}
	assert.Equal(t, []string{"a", "c"}, ids(FilterRoster(roster, "north", before)))
	assert.Equal(t, []string{"b"}, ids(FilterRoster(roster, "South", before)))

	// The move takes effect on Wednesday
	assert.Equal(t, []string{"a", "b", "c"}, ids(FilterRoster(roster, "north", []schema.Day{wednesday})))
	assert.Empty(t, FilterRoster(roster, "west", before))
}

func TestBuildGrid(t *testing.T) {
	days := []schema.DayCell{{Date: sunday}, {Date: sunday.AddDays(1)}, {Date: sunday.AddDays(2)}}
	roster := []schema.Person{{ID: "a", Name: "Avery", Sites: []string{"north"}}}
	entries := []schema.ScheduleEntry{
		entry("1", "a", sunday, schema.DayOffService),
		entry("2", "a", sunday, "Ward A"),
		entry("3", "a", sunday.AddDays(1), "Ward B"),
		entry("4", "a", sunday.AddDays(1), "Ward C"),
		entry("5", "z", sunday, "Ward Z"),
	}
	streaks := schema.StreakMap{"a": {sunday: 1, sunday.AddDays(1): 2}}
	status := schema.ContinuousStatus{"a": {sunday: schema.WindowNone}}

	rows := BuildGrid(roster, entries, days, streaks, status)
	require.Len(t, rows, 1)
	row := rows[0]
	assert.Equal(t, "north", row.Site)
	require.Len(t, row.Cells, 3)

	// A counting entry replaces a day off on the same day
	assert.Equal(t, "Ward A", row.Cells[0].Service)
	assert.Equal(t, schema.WorkKind, row.Cells[0].Kind)
	assert.Equal(t, 1, row.Cells[0].Streak)

	// Otherwise the first entry is kept
	assert.Equal(t, "Ward B", row.Cells[1].Service)
	assert.Equal(t, 2, row.Cells[1].Streak)

	// Missing classes default to none
	assert.Equal(t, schema.WindowNone, row.Cells[1].Window)
	assert.Equal(t, "", row.Cells[2].Service)
	assert.Zero(t, row.Cells[2].Streak)
}

func TestLimitGrid(t *testing.T) {
	rows := []schema.GridRow{{PersonID: "a"}, {PersonID: "b"}, {PersonID: "c"}}
	assert.Len(t, limitGrid(rows, 2), 2)
	assert.Len(t, limitGrid(rows, 0), 3)
	assert.Len(t, limitGrid(rows, 10), 3)
}

func TestBuildGridSiteFollowsTrace(t *testing.T) {
	days := []schema.DayCell{{Date: schema.NewDay(2025, time.February, 8)}}
	roster := []schema.Person{{ID: "b", Sites: []string{"south"}, SiteTrace: []schema.SiteChange{
		{EffectiveAt: wednesday, From: "south", To: "north"},
	}}}
	rows := BuildGrid(roster, nil, days, schema.StreakMap{}, schema.ContinuousStatus{})
	require.Len(t, rows, 1)
	assert.Equal(t, "north", rows[0].Site)
}
