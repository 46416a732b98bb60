// Package calendar buckets the calendar into selectable ranges and flattens a
// selected range into grid days.
package calendar

import (
	"fmt"
	"time"

	"github.com/huangsam/shiftgrid/schema"
)

// optionRadius is how many units each side of the pivot are offered.
const optionRadius = 2

// Bucketer generates range options around a pivot.
type Bucketer struct {
	// WeekStart is the first day of a displayed week.
	WeekStart time.Weekday

	// Now is the clock used for defaults.
	Now func() time.Time
}

// New returns a Bucketer with the given week start and the wall clock.
func New(weekStart time.Weekday) *Bucketer {
	return &Bucketer{WeekStart: weekStart, Now: time.Now}
}

// Today returns the current day according to the Bucketer's clock.
func (b *Bucketer) Today() schema.Day {
	if b.Now == nil {
		return schema.DayOf(time.Now())
	}
	return schema.DayOf(b.Now())
}

// StartOfWeek returns the first day of the displayed week containing d.
func (b *Bucketer) StartOfWeek(d schema.Day) schema.Day {
	offset := (int(d.Weekday()) - int(b.WeekStart) + 7) % 7
	return d.AddDays(-offset)
}

// WeekLabel returns the ISO week of the day after the week start, which keeps
// Sunday-start weeks labeled by the ISO week of their Monday.
func (b *Bucketer) WeekLabel(d schema.Day) string {
	return b.StartOfWeek(d).AddDays(1).ISOWeek()
}

// GenerateRangeOptions returns the pivot range and two ranges on either side,
// in chronological order. An unparsable pivot or unknown range type yields no
// options.
func (b *Bucketer) GenerateRangeOptions(rangeType schema.RangeType, pivot string) schema.RangeOptions {
	opts := schema.RangeOptions{Type: rangeType}
	anchor, err := schema.ParsePivot(rangeType, pivot)
	if err != nil {
		return opts
	}

	for i := -optionRadius; i <= optionRadius; i++ {
		var opt schema.RangeOption
		switch rangeType {
		case schema.DailyRange:
			d := anchor.AddDays(i)
			opt = schema.RangeOption{Label: d.String(), Display: displayDay(d), Start: d, End: d}
		case schema.WeeklyRange:
			start := b.StartOfWeek(anchor.AddDays(7 * i))
			end := start.AddDays(6)
			opt = schema.RangeOption{Label: end.ISOWeek(), Display: displaySpan(start, end), Start: start, End: end}
		case schema.BiweeklyRange:
			start := b.StartOfWeek(anchor.AddDays(7 * i))
			end := start.AddDays(13)
			label := fmt.Sprintf("%s to %s", b.WeekLabel(start), b.WeekLabel(end))
			opt = schema.RangeOption{Label: label, Display: displaySpan(start, end), Start: start, End: end}
		case schema.MonthlyRange:
			t := anchor.Time().AddDate(0, i, 0)
			start := schema.DayOf(t)
			opt = schema.RangeOption{Label: start.MonthLabel(), Display: t.Format("January 2006"), Start: start, End: start.LastOfMonth()}
		}
		opts.Options = append(opts.Options, opt)
	}
	return opts
}

// DefaultRange returns the span shown when nothing valid is selected.
func (b *Bucketer) DefaultRange(rangeType schema.RangeType) schema.RangeOption {
	today := b.Today()
	switch rangeType {
	case schema.WeeklyRange:
		start := b.StartOfWeek(today)
		return schema.RangeOption{Label: start.AddDays(6).ISOWeek(), Start: start, End: start.AddDays(6)}
	case schema.BiweeklyRange:
		start := b.StartOfWeek(today)
		end := start.AddDays(13)
		return schema.RangeOption{Label: fmt.Sprintf("%s to %s", b.WeekLabel(start), b.WeekLabel(end)), Start: start, End: end}
	case schema.MonthlyRange:
		start := today.FirstOfMonth()
		return schema.RangeOption{Label: start.MonthLabel(), Start: start, End: start.LastOfMonth()}
	default:
		return schema.RangeOption{Label: today.String(), Start: today, End: today}
	}
}

// DefaultPivot returns the label of the range containing today.
func (b *Bucketer) DefaultPivot(rangeType schema.RangeType) string {
	today := b.Today()
	switch rangeType {
	case schema.WeeklyRange, schema.BiweeklyRange:
		return b.WeekLabel(today)
	case schema.MonthlyRange:
		return today.MonthLabel()
	default:
		return today.String()
	}
}

// Resolve returns the selected option, or the range default when the label is
// not among the options. The boolean reports whether the default was used.
func (b *Bucketer) Resolve(opts schema.RangeOptions, selected string) (schema.RangeOption, bool) {
	if opt, ok := opts.Lookup(selected); ok {
		return opt, false
	}
	return b.DefaultRange(opts.Type), true
}

// FlattenToDays expands the selected range into one cell per day, inclusive.
func (b *Bucketer) FlattenToDays(opts schema.RangeOptions, selected string) []schema.DayCell {
	opt, fallback := b.Resolve(opts, selected)
	cells := make([]schema.DayCell, 0, opt.Days())
	for _, d := range schema.DaysBetween(opt.Start, opt.End) {
		cells = append(cells, schema.DayCell{
			Date:    d,
			Display: displayDay(d),
			Week:    b.WeekLabel(d),
			Default: fallback,
		})
	}
	return cells
}

func displayDay(d schema.Day) string {
	return d.Time().Format("Mon, 02 Jan 2006")
}

func displaySpan(start, end schema.Day) string {
	return fmt.Sprintf("%s - %s", start.Time().Format("02 Jan"), end.Time().Format("02 Jan 2006"))
}
