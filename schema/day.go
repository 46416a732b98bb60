package schema

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Layouts used at the edges of the system.
const (
	ISODateLayout = "2006-01-02"
	KeyLayout     = "02/01/2006" // day/month/year, used for keyed result maps
	MonthLayout   = "2006-01"
)

// Day is a calendar day counted from 1970-01-01. It carries no time of day or
// zone, so arithmetic never drifts across DST changes.
type Day int32

var epoch = time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)

const dayDuration = 24 * time.Hour

// DayOf returns the calendar day of t as seen in t's own location.
func DayOf(t time.Time) Day {
	y, m, d := t.Date()
	return NewDay(y, m, d)
}

// NewDay builds a Day from its calendar parts. Out-of-range parts normalize
// the way time.Date does.
func NewDay(year int, month time.Month, day int) Day {
	u := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return Day(u.Sub(epoch) / dayDuration)
}

// Time returns midnight UTC of the day.
func (d Day) Time() time.Time {
	return epoch.AddDate(0, 0, int(d))
}

// AddDays returns the day n days later (or earlier when n is negative).
func (d Day) AddDays(n int) Day {
	return d + Day(n)
}

// Weekday returns the day of the week.
func (d Day) Weekday() time.Weekday {
	return d.Time().Weekday()
}

// String renders the day as YYYY-MM-DD.
func (d Day) String() string {
	return d.Time().Format(ISODateLayout)
}

// Key renders the day as DD/MM/YYYY.
func (d Day) Key() string {
	return d.Time().Format(KeyLayout)
}

// ISOWeek renders the ISO week containing the day as GGGG-Www.
func (d Day) ISOWeek() string {
	y, w := d.Time().ISOWeek()
	return fmt.Sprintf("%04d-W%02d", y, w)
}

// MonthLabel renders the month containing the day as YYYY-MM.
func (d Day) MonthLabel() string {
	return d.Time().Format(MonthLayout)
}

// FirstOfMonth returns the first day of the month containing d.
func (d Day) FirstOfMonth() Day {
	y, m, _ := d.Time().Date()
	return NewDay(y, m, 1)
}

// LastOfMonth returns the last day of the month containing d.
func (d Day) LastOfMonth() Day {
	y, m, _ := d.Time().Date()
	return NewDay(y, m+1, 1) - 1
}

// MarshalText renders the day as YYYY-MM-DD, which also makes Day usable as a JSON map key.
func (d Day) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText parses any layout accepted by ParseDay.
func (d *Day) UnmarshalText(text []byte) error {
	parsed, err := ParseDay(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseDay parses YYYY-MM-DD, RFC3339 timestamps or DD/MM/YYYY. Anything else
// fails with ErrInvalidDate.
func ParseDay(s string) (Day, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(ISODateLayout, s); err == nil {
		return DayOf(t), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return DayOf(t), nil
	}
	if t, err := time.Parse(KeyLayout, s); err == nil {
		return DayOf(t), nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// ParseISOWeek parses a GGGG-Www label and returns the Monday of that week.
func ParseISOWeek(label string) (Day, error) {
	year, week, ok := strings.Cut(strings.TrimSpace(label), "-W")
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPivot, label)
	}
	y, err := strconv.Atoi(year)
	if err != nil || len(year) != 4 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPivot, label)
	}
	w, err := strconv.Atoi(week)
	if err != nil || w < 1 || w > 53 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPivot, label)
	}

	// January 4th always falls in ISO week 1.
	jan4 := NewDay(y, time.January, 4)
	monday := jan4.AddDays(-((int(jan4.Weekday()) + 6) % 7)).AddDays(7 * (w - 1))
	if monday.ISOWeek() != fmt.Sprintf("%04d-W%02d", y, w) {
		return 0, fmt.Errorf("%w: %q has no week %d", ErrInvalidPivot, label, w)
	}
	return monday, nil
}

// ParsePivot parses the pivot label of a range type: YYYY-MM-DD for daily,
// GGGG-Www for weekly and biweekly (the Monday is returned), YYYY-MM for
// monthly (the first of the month is returned).
func ParsePivot(rangeType RangeType, label string) (Day, error) {
	switch rangeType {
	case DailyRange:
		t, err := time.Parse(ISODateLayout, strings.TrimSpace(label))
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidPivot, label)
		}
		return DayOf(t), nil
	case WeeklyRange, BiweeklyRange:
		return ParseISOWeek(label)
	case MonthlyRange:
		t, err := time.Parse(MonthLayout, strings.TrimSpace(label))
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidPivot, label)
		}
		return DayOf(t), nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownRangeType, rangeType)
	}
}

// DaysBetween returns every day from start to end inclusive.
func DaysBetween(start, end Day) []Day {
	if end < start {
		return nil
	}
	days := make([]Day, 0, int(end-start)+1)
	for d := start; d <= end; d++ {
		days = append(days, d)
	}
	return days
}
