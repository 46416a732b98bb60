package schema

// RangeOption is one selectable calendar span.
type RangeOption struct {
	Label   string `json:"label"`
	Display string `json:"display"`
	Start   Day    `json:"start"`
	End     Day    `json:"end"`
}

// Days returns the number of days covered by the option, inclusive.
func (o RangeOption) Days() int {
	return int(o.End-o.Start) + 1
}

// Contains reports whether d falls inside the option.
func (o RangeOption) Contains(d Day) bool {
	return d >= o.Start && d <= o.End
}

// RangeOptions is a chronologically ordered set of options for one range type.
type RangeOptions struct {
	Type    RangeType     `json:"type"`
	Options []RangeOption `json:"options"`
}

// Len returns the number of options.
func (o RangeOptions) Len() int {
	return len(o.Options)
}

// Lookup finds an option by label.
func (o RangeOptions) Lookup(label string) (RangeOption, bool) {
	for _, opt := range o.Options {
		if opt.Label == label {
			return opt, true
		}
	}
	return RangeOption{}, false
}

// Labels returns the option labels in order.
func (o RangeOptions) Labels() []string {
	labels := make([]string, 0, len(o.Options))
	for _, opt := range o.Options {
		labels = append(labels, opt.Label)
	}
	return labels
}

// DayCell is one column of the schedule grid.
type DayCell struct {
	Date    Day    `json:"date"`
	Display string `json:"display"`
	Week    string `json:"week"`
	Default bool   `json:"default"` // true when the selection fell back to the range default
}

// CellDays extracts the dates of a list of cells.
func CellDays(cells []DayCell) []Day {
	days := make([]Day, 0, len(cells))
	for _, c := range cells {
		days = append(days, c.Date)
	}
	return days
}
