package algo

import (
	"sort"

	"github.com/huangsam/shiftgrid/schema"
)

// WindowLength is the number of consecutive days that make a continuous window.
const WindowLength = 7

// windowRadius bounds the local window examined around each date.
const windowRadius = WindowLength - 1

// ClassifyContinuousWindows classifies every date of the range for every roster
// member. A date is a boundary when it is the first or last day of a 7-day run
// of scheduled days, interior when it sits strictly inside one, and none
// otherwise. Only days within six of the date are examined, and the first
// 7-run found decides, so a date in the middle of a longer run can come out as
// a boundary.
func ClassifyContinuousWindows(roster []schema.Person, entries []schema.ScheduleEntry, dateRange []schema.Day) schema.ContinuousStatus {
	status := make(schema.ContinuousStatus, len(roster))
	for id, days := range countingDays(roster, entries) {
		unique := dedupe(days)
		classes := make(map[schema.Day]schema.WindowClass, len(dateRange))
		for _, d := range dateRange {
			classes[d] = classifyDay(unique, d)
		}
		status[id] = classes
	}
	return status
}

// dedupe drops repeated days from a sorted slice.
func dedupe(sorted []schema.Day) []schema.Day {
	out := make([]schema.Day, 0, len(sorted))
	for i, d := range sorted {
		if i > 0 && d == sorted[i-1] {
			continue
		}
		out = append(out, d)
	}
	return out
}

// localWindow returns the scheduled days within windowRadius of d, with d
// itself merged in, in ascending order.
func localWindow(sorted []schema.Day, d schema.Day) []schema.Day {
	lo, hi := d.AddDays(-windowRadius), d.AddDays(windowRadius)
	window := make([]schema.Day, 0, 2*windowRadius+1)
	inserted := false
	for i := sort.Search(len(sorted), func(i int) bool { return sorted[i] >= lo }); i < len(sorted); i++ {
		x := sorted[i]
		if x > hi {
			break
		}
		if !inserted && x >= d {
			if x != d {
				window = append(window, d)
			}
			inserted = true
		}
		window = append(window, x)
	}
	if !inserted {
		window = append(window, d)
	}
	return window
}

func classifyDay(sorted []schema.Day, d schema.Day) schema.WindowClass {
	window := localWindow(sorted, d)
	start := 0
	for i := range window {
		if i > 0 && window[i]-window[i-1] != 1 {
			start = i
		}
		if i-start+1 != WindowLength {
			continue
		}
		switch pos := int(d - window[start]); {
		case pos == 0 || pos == WindowLength-1:
			return schema.WindowBoundary
		case pos > 0 && pos < WindowLength-1:
			return schema.WindowInterior
		}
	}
	return schema.WindowNone
}
