// Package schema has the domain types shared across shiftgrid.
package schema

// Person is a roster member.
type Person struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Sites     []string     `json:"sites,omitempty"`
	SiteTrace []SiteChange `json:"site_trace,omitempty"` // chronological
	Role      string       `json:"role,omitempty"`
}

// SiteChange records a move between sites that takes effect on a day.
type SiteChange struct {
	EffectiveAt Day    `json:"effective_at"`
	From        string `json:"from"`
	To          string `json:"to"`
}

// ScheduleEntry is one person scheduled for one service on one day.
type ScheduleEntry struct {
	ID       string       `json:"id"`
	PersonID string       `json:"person_id"`
	Date     Day          `json:"date"`
	Service  string       `json:"service"`
	Kind     ScheduleKind `json:"kind"`
	Cycle    int          `json:"cycle"`
	Site     string       `json:"site,omitempty"`
}

// Dataset is a roster together with its schedule entries.
type Dataset struct {
	Personnel []Person        `json:"personnel"`
	Schedules []ScheduleEntry `json:"schedules"`
}

// EffectiveKind returns the entry kind, deriving it from the service label when
// unset. A day-off service label is always a day off, whatever Kind says.
func (e ScheduleEntry) EffectiveKind() ScheduleKind {
	if e.Service == DayOffService {
		return DayOffKind
	}
	if e.Kind != "" {
		return e.Kind
	}
	return KindForService(e.Service)
}

// SiteOn resolves the site the person belonged to on a day. The latest trace
// change effective on or before the day wins. Before the first change the
// person was still at that change's origin. Without a trace the first assigned
// site is used.
func (p Person) SiteOn(day Day) string {
	if len(p.SiteTrace) == 0 {
		if len(p.Sites) == 0 {
			return ""
		}
		return p.Sites[0]
	}
	site := p.SiteTrace[0].From
	for _, change := range p.SiteTrace {
		if change.EffectiveAt > day {
			break
		}
		site = change.To
	}
	return site
}

// PersonIndex maps person IDs to roster members.
func PersonIndex(roster []Person) map[string]Person {
	index := make(map[string]Person, len(roster))
	for _, p := range roster {
		index[p.ID] = p
	}
	return index
}
