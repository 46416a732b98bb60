// Package algo computes consecutive-day streaks and 7-day continuous windows.
package algo

import (
	"sort"

	"github.com/huangsam/shiftgrid/schema"
)

// countingDays groups the dates of counting entries by roster member. Entries of
// persons outside the roster are ignored. Dates are sorted and keep duplicates.
func countingDays(roster []schema.Person, entries []schema.ScheduleEntry) map[string][]schema.Day {
	byPerson := make(map[string][]schema.Day, len(roster))
	for _, p := range roster {
		byPerson[p.ID] = nil
	}
	for _, e := range entries {
		if !e.EffectiveKind().Counts() {
			continue
		}
		if _, ok := byPerson[e.PersonID]; !ok {
			continue
		}
		byPerson[e.PersonID] = append(byPerson[e.PersonID], e.Date)
	}
	for id, days := range byPerson {
		sort.SliceStable(days, func(i, j int) bool { return days[i] < days[j] })
		byPerson[id] = days
	}
	return byPerson
}

// ComputeStreaks returns, for every roster member, the length of the run of
// consecutive scheduled days ending on each scheduled day. A day exactly one
// after the previous entry extends the run; any other gap, including a repeat
// of the same day, starts a new run at 1.
func ComputeStreaks(roster []schema.Person, entries []schema.ScheduleEntry) schema.StreakMap {
	result := make(schema.StreakMap, len(roster))
	for id, days := range countingDays(roster, entries) {
		streaks := make(map[schema.Day]int, len(days))
		run := 0
		for i, d := range days {
			if i > 0 && d-days[i-1] == 1 {
				run++
			} else {
				run = 1
			}
			streaks[d] = run
		}
		result[id] = streaks
	}
	return result
}

// Summarize condenses each person's streak map.
func Summarize(streaks schema.StreakMap) map[string]schema.StreakSummary {
	out := make(map[string]schema.StreakSummary, len(streaks))
	for id, days := range streaks {
		s := schema.StreakSummary{PersonID: id, ScheduledDays: len(days)}
		first := true
		for d, n := range days {
			if n > s.MaxStreak || (n == s.MaxStreak && d < s.MaxStreakEnd) {
				s.MaxStreak = n
				s.MaxStreakEnd = d
			}
			if first || d > s.LastDay {
				s.LastDay = d
				s.LastStreak = n
				first = false
			}
		}
		out[id] = s
	}
	return out
}

// StreaksWithin returns the streak of each visible day for one person, 0 when
// the day is not scheduled.
func StreaksWithin(days map[schema.Day]int, visible []schema.Day) []int {
	out := make([]int, len(visible))
	for i, d := range visible {
		out[i] = days[d]
	}
	return out
}
