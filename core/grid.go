package core

import (
	"strings"

	"github.com/huangsam/shiftgrid/schema"
)

// FilterRoster keeps the people who belong to site on any of the days. An
// empty site keeps everyone.
func FilterRoster(roster []schema.Person, site string, days []schema.Day) []schema.Person {
	if site == "" {
		return roster
	}
	filtered := make([]schema.Person, 0, len(roster))
	for _, p := range roster {
		for _, d := range days {
			if belongsTo(p, site, d) {
				filtered = append(filtered, p)
				break
			}
		}
	}
	return filtered
}

// belongsTo resolves membership through the site trace when there is one, and
// through any assigned site otherwise.
func belongsTo(p schema.Person, site string, day schema.Day) bool {
	if len(p.SiteTrace) > 0 {
		return strings.EqualFold(p.SiteOn(day), site)
	}
	for _, s := range p.Sites {
		if strings.EqualFold(s, site) {
			return true
		}
	}
	return false
}

// BuildGrid lays out one row per person with one cell per visible day. When a
// person has several entries on one day, a counting entry wins over a day off
// and otherwise the first one seen is kept.
func BuildGrid(roster []schema.Person, entries []schema.ScheduleEntry, days []schema.DayCell, streaks schema.StreakMap, status schema.ContinuousStatus) []schema.GridRow {
	byPerson := make(map[string]map[schema.Day]schema.ScheduleEntry, len(roster))
	for _, e := range entries {
		inner, ok := byPerson[e.PersonID]
		if !ok {
			inner = make(map[schema.Day]schema.ScheduleEntry)
			byPerson[e.PersonID] = inner
		}
		prev, seen := inner[e.Date]
		if !seen || (!prev.EffectiveKind().Counts() && e.EffectiveKind().Counts()) {
			inner[e.Date] = e
		}
	}

	var siteDay schema.Day
	if len(days) > 0 {
		siteDay = days[len(days)-1].Date
	}

	rows := make([]schema.GridRow, 0, len(roster))
	for _, p := range roster {
		row := schema.GridRow{
			PersonID: p.ID,
			Name:     p.Name,
			Site:     p.SiteOn(siteDay),
			Cells:    make([]schema.GridCell, 0, len(days)),
		}
		for _, day := range days {
			cell := schema.GridCell{
				Date:   day.Date,
				Streak: streaks[p.ID][day.Date],
				Window: status[p.ID][day.Date],
			}
			if cell.Window == "" {
				cell.Window = schema.WindowNone
			}
			if e, ok := byPerson[p.ID][day.Date]; ok {
				cell.Service = e.Service
				cell.Kind = e.EffectiveKind()
			}
			row.Cells = append(row.Cells, cell)
		}
		rows = append(rows, row)
	}
	return rows
}

// limitGrid returns the first limit rows, or all of them when limit is not positive.
func limitGrid(rows []schema.GridRow, limit int) []schema.GridRow {
	if limit > 0 && len(rows) > limit {
		return rows[:limit]
	}
	return rows
}
