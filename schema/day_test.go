package schema

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayArithmetic(t *testing.T) {
	assert.Equal(t, Day(0), NewDay(1970, time.January, 1))
	assert.Equal(t, Day(-1), NewDay(1969, time.December, 31))

	d := NewDay(2025, time.February, 28)
	assert.Equal(t, "2025-03-01", d.AddDays(1).String())
	assert.Equal(t, "2025-02-21", d.AddDays(-7).String())
	assert.Equal(t, time.Friday, d.Weekday())
	assert.Equal(t, "28/02/2025", d.Key())
	assert.Equal(t, "2025-02", d.MonthLabel())
	assert.Equal(t, "2025-02-01", d.FirstOfMonth().String())
	assert.Equal(t, "2024-02-29", NewDay(2024, time.February, 10).LastOfMonth().String())
}

func TestDayOfIgnoresZone(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*3600)
	late := time.Date(2025, time.March, 30, 23, 30, 0, 0, loc)
	assert.Equal(t, "2025-03-30", DayOf(late).String())
}

func TestParseDay(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"2025-01-02", "2025-01-02", false},
		{"2025-01-02T10:00:00Z", "2025-01-02", false},
		{"2025-01-02T10:00:00.123+02:00", "2025-01-02", false},
		{"02/01/2025", "2025-01-02", false},
		{" 2025-01-02 ", "2025-01-02", false},
		{"2025-13-40", "", true},
		{"yesterday", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDay(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDate)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestParseISOWeek(t *testing.T) {
	monday, err := ParseISOWeek("2025-W20")
	require.NoError(t, err)
	assert.Equal(t, "2025-05-12", monday.String())
	assert.Equal(t, time.Monday, monday.Weekday())

	monday, err = ParseISOWeek("2025-W01")
	require.NoError(t, err)
	assert.Equal(t, "2024-12-30", monday.String())

	monday, err = ParseISOWeek("2020-W53")
	require.NoError(t, err)
	assert.Equal(t, "2020-12-28", monday.String())

	for _, bad := range []string{"2021-W53", "2025-W00", "2025W20", "25-W20", "2025-Wxx"} {
		_, err := ParseISOWeek(bad)
		assert.ErrorIs(t, err, ErrInvalidPivot, bad)
	}
}

func TestParsePivot(t *testing.T) {
	d, err := ParsePivot(DailyRange, "2025-05-16")
	require.NoError(t, err)
	assert.Equal(t, "2025-05-16", d.String())

	d, err = ParsePivot(BiweeklyRange, "2025-W20")
	require.NoError(t, err)
	assert.Equal(t, "2025-05-12", d.String())

	d, err = ParsePivot(MonthlyRange, "2025-05")
	require.NoError(t, err)
	assert.Equal(t, "2025-05-01", d.String())

	_, err = ParsePivot(MonthlyRange, "May 2025")
	assert.ErrorIs(t, err, ErrInvalidPivot)

	_, err = ParsePivot("yearly", "2025")
	assert.ErrorIs(t, err, ErrUnknownRangeType)
}

func TestDayJSON(t *testing.T) {
	payload := map[Day]int{NewDay(2025, time.January, 3): 3}
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"2025-01-03":3}`, string(data))

	var back map[Day]int
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, payload, back)

	var entry ScheduleEntry
	err = json.Unmarshal([]byte(`{"id":"e1","date":"03/01/2025"}`), &entry)
	require.NoError(t, err)
	assert.Equal(t, NewDay(2025, time.January, 3), entry.Date)

	err = json.Unmarshal([]byte(`{"id":"e1","date":"someday"}`), &entry)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestDaysBetween(t *testing.T) {
	start := NewDay(2025, time.January, 30)
	days := DaysBetween(start, start.AddDays(3))
	require.Len(t, days, 4)
	assert.Equal(t, "2025-02-02", days[3].String())
	assert.Empty(t, DaysBetween(start, start.AddDays(-1)))
}
