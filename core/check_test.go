package core

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huangsam/shiftgrid/schema"
)

func TestBuildCheckResultViolations(t *testing.T) {
	mgr := newNoStoreManager(t)
	output, err := runAnalysisCore(WithSuppressHeader(context.Background()), testConfig(), newFakeSource(), mgr)
	require.NoError(t, err)

	result := BuildCheckResult(output, 7)
	assert.False(t, result.Passed)
	assert.Equal(t, "2025-W06", result.RangeLabel)
	assert.Equal(t, 3, result.TotalPersons)
	assert.Equal(t, 10, result.Longest)
	require.Len(t, result.Violations, 1)

	v := result.Violations[0]
	assert.Equal(t, "n-001", v.PersonID)
	assert.Equal(t, "north", v.Site)
	assert.Equal(t, 10, v.Streak)
	assert.Equal(t, schema.NewDay(2025, time.February, 6), v.End)
	assert.Equal(t, schema.NewDay(2025, time.January, 28), v.Start)
}

func TestBuildCheckResultPasses(t *testing.T) {
	mgr := newNoStoreManager(t)
	output, err := runAnalysisCore(WithSuppressHeader(context.Background()), testConfig(), newFakeSource(), mgr)
	require.NoError(t, err)

	result := BuildCheckResult(output, 11)
	assert.True(t, result.Passed)
	assert.Empty(t, result.Violations)
	assert.Equal(t, 10, result.Longest)
}

func TestBuildCheckResultOnlyCountsVisibleDays(t *testing.T) {
	// A long run that ended before the visible range is not a violation
	output := &schema.AnalysisOutput{
		Selected: schema.RangeOption{Label: "x", Start: sunday, End: sunday.AddDays(1)},
		Days:     []schema.DayCell{{Date: sunday}, {Date: sunday.AddDays(1)}},
		Roster:   []schema.Person{{ID: "a"}, {ID: "b"}, {ID: "c"}},
		Streaks: schema.StreakMap{
			"a": {sunday.AddDays(-1): 9},
			"b": {sunday: 8, sunday.AddDays(1): 9},
			"c": {sunday: 9},
		},
	}
	result := BuildCheckResult(output, 7)
	require.Len(t, result.Violations, 2)
	assert.Equal(t, "b", result.Violations[0].PersonID)
	assert.Equal(t, "c", result.Violations[1].PersonID)
	assert.Equal(t, sunday.AddDays(-8), result.Violations[1].Start)
}

func TestGetCheckResultsFromFile(t *testing.T) {
	mgr := newNoStoreManager(t)
	cfg := testConfig()
	cfg.SourceKind = schema.FileSource
	cfg.DatasetPath = writeDataset(t)

	result, err := GetCheckResults(WithSuppressHeader(context.Background()), cfg, mgr)
	require.NoError(t, err)
	assert.False(t, result.Passed)
	require.Len(t, result.Violations, 1)
	assert.Equal(t, "n-001", result.Violations[0].PersonID)
}
