package schema

import "time"

// StreakMap maps person ID to day to the consecutive-day streak ending on that day.
type StreakMap map[string]map[Day]int

// Keyed renders the map with DD/MM/YYYY day keys.
func (m StreakMap) Keyed() map[string]map[string]int {
	out := make(map[string]map[string]int, len(m))
	for person, days := range m {
		inner := make(map[string]int, len(days))
		for d, n := range days {
			inner[d.Key()] = n
		}
		out[person] = inner
	}
	return out
}

// ContinuousStatus maps person ID to day to its window class.
type ContinuousStatus map[string]map[Day]WindowClass

// Keyed renders the status with DD/MM/YYYY day keys.
func (s ContinuousStatus) Keyed() map[string]map[string]string {
	out := make(map[string]map[string]string, len(s))
	for person, days := range s {
		inner := make(map[string]string, len(days))
		for d, c := range days {
			inner[d.Key()] = string(c)
		}
		out[person] = inner
	}
	return out
}

// StreakSummary condenses one person's streak map.
type StreakSummary struct {
	PersonID      string `json:"person_id"`
	ScheduledDays int    `json:"scheduled_days"`
	MaxStreak     int    `json:"max_streak"`
	MaxStreakEnd  Day    `json:"max_streak_end"`
	LastDay       Day    `json:"last_day"`
	LastStreak    int    `json:"last_streak"`
}

// PersonSummary is the per-person result recorded for an analysis run.
type PersonSummary struct {
	PersonID      string `json:"person_id"`
	Name          string `json:"name"`
	Site          string `json:"site"`
	ScheduledDays int    `json:"scheduled_days"`
	MaxStreak     int    `json:"max_streak"`
	LastStreak    int    `json:"last_streak"`
	BoundaryDays  int    `json:"boundary_days"`
	InteriorDays  int    `json:"interior_days"`
}

// GridCell is one person on one day of the grid.
type GridCell struct {
	Date    Day          `json:"date"`
	Service string       `json:"service,omitempty"`
	Kind    ScheduleKind `json:"kind,omitempty"`
	Streak  int          `json:"streak"`
	Window  WindowClass  `json:"window"`
}

// GridRow is one person across the visible days.
type GridRow struct {
	PersonID string     `json:"person_id"`
	Name     string     `json:"name"`
	Site     string     `json:"site"`
	Cells    []GridCell `json:"cells"`
}

// AnalysisOutput is everything computed for one visible range.
type AnalysisOutput struct {
	RangeType RangeType        `json:"range_type"`
	Selected  RangeOption      `json:"selected"`
	Days      []DayCell        `json:"days"`
	Roster    []Person         `json:"roster"`
	Entries   []ScheduleEntry  `json:"-"`
	Streaks   StreakMap        `json:"streaks"`
	Status    ContinuousStatus `json:"status"`
	Summaries []PersonSummary  `json:"summaries"`
	Grid      []GridRow        `json:"grid"`
	Generated time.Time        `json:"generated"`
}

// CheckViolation is a streak that reached the configured limit.
type CheckViolation struct {
	PersonID string `json:"person_id"`
	Name     string `json:"name"`
	Site     string `json:"site"`
	Streak   int    `json:"streak"`
	Start    Day    `json:"start"`
	End      Day    `json:"end"`
}

// CheckResult is the outcome of a streak compliance check.
type CheckResult struct {
	Passed       bool             `json:"passed"`
	MaxStreak    int              `json:"max_streak"`
	RangeLabel   string           `json:"range_label"`
	Start        Day              `json:"start"`
	End          Day              `json:"end"`
	TotalPersons int              `json:"total_persons"`
	Longest      int              `json:"longest"`
	Violations   []CheckViolation `json:"violations"`
}
