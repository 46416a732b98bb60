package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/huangsam/shiftgrid/internal/iocache"
	"github.com/huangsam/shiftgrid/schema"
)

func TestSelectionLabel(t *testing.T) {
	cfg := testConfig()
	_, opts := rangeOptions(cfg)
	require.Equal(t, 5, opts.Len())
	assert.Equal(t, "2025-W06", selectionLabel(cfg, opts))

	cfg.Selection = "2025-W07"
	assert.Equal(t, "2025-W07", selectionLabel(cfg, opts))

	cfg.Selection = ""
	assert.Equal(t, "", selectionLabel(cfg, schema.RangeOptions{}))
}

func TestSelectionLabelBiweekly(t *testing.T) {
	cfg := testConfig()
	cfg.RangeType = schema.BiweeklyRange
	_, opts := rangeOptions(cfg)
	require.Equal(t, 5, opts.Len())
	assert.Equal(t, "2025-W06 to 2025-W07", selectionLabel(cfg, opts))
}

func TestRunAnalysisCore(t *testing.T) {
	mgr := newNoStoreManager(t)
	src := newFakeSource()
	cfg := testConfig()

	output, err := runAnalysisCore(WithSuppressHeader(context.Background()), cfg, src, mgr)
	require.NoError(t, err)

	assert.Equal(t, "2025-W06", output.Selected.Label)
	assert.Equal(t, sunday, output.Selected.Start)
	require.Len(t, output.Days, 7)
	assert.False(t, output.Days[0].Default)
	assert.Len(t, output.Roster, 3)

	// History reaches back far enough to carry the streak into the week
	assert.Equal(t, 6, output.Streaks["n-001"][sunday])
	assert.Equal(t, 10, output.Streaks["n-001"][schema.NewDay(2025, time.February, 6)])

	require.Len(t, output.Summaries, 3)
	first := output.Summaries[0]
	assert.Equal(t, "n-001", first.PersonID)
	assert.Equal(t, "north", first.Site)
	assert.Equal(t, 5, first.ScheduledDays)
	assert.Equal(t, 10, first.MaxStreak)
	assert.Equal(t, 10, first.LastStreak)
	assert.GreaterOrEqual(t, first.BoundaryDays+first.InteriorDays, 5)

	second := output.Summaries[1]
	assert.Equal(t, "n-002", second.PersonID)
	assert.Equal(t, 2, second.ScheduledDays)
	assert.Equal(t, 2, second.MaxStreak)
	assert.Zero(t, second.BoundaryDays)
	assert.Zero(t, second.InteriorDays)

	assert.Equal(t, "n-003", output.Summaries[2].PersonID)
	assert.Zero(t, output.Summaries[2].ScheduledDays)

	require.Len(t, output.Grid, 3)
	blake := output.Grid[1]
	assert.Equal(t, "n-002", blake.PersonID)
	dayOff := blake.Cells[3]
	assert.Equal(t, wednesday, dayOff.Date)
	assert.Equal(t, schema.DayOffKind, dayOff.Kind)
	assert.Zero(t, dayOff.Streak)

	mgr.AssertExpectations(t)
}

func TestRunAnalysisCoreSiteFilter(t *testing.T) {
	mgr := newNoStoreManager(t)
	cfg := testConfig()
	cfg.Site = "EAST"

	output, err := runAnalysisCore(WithSuppressHeader(context.Background()), cfg, newFakeSource(), mgr)
	require.NoError(t, err)
	require.Len(t, output.Roster, 1)
	assert.Equal(t, "n-003", output.Roster[0].ID)
	assert.NotContains(t, output.Streaks, "n-001")
}

func TestRunAnalysisCoreLimit(t *testing.T) {
	mgr := newNoStoreManager(t)
	cfg := testConfig()
	cfg.ResultLimit = 1

	output, err := runAnalysisCore(WithSuppressHeader(context.Background()), cfg, newFakeSource(), mgr)
	require.NoError(t, err)
	require.Len(t, output.Summaries, 1)
	assert.Equal(t, "n-001", output.Summaries[0].PersonID)
	assert.Len(t, output.Grid, 1)
	assert.Len(t, output.Roster, 3)
}

func TestRunAnalysisCoreFallbackSelection(t *testing.T) {
	mgr := newNoStoreManager(t)
	cfg := testConfig()
	cfg.Selection = "1999-W01"

	output, err := runAnalysisCore(WithSuppressHeader(context.Background()), cfg, newFakeSource(), mgr)
	require.NoError(t, err)
	assert.Equal(t, sunday, output.Selected.Start)
	require.NotEmpty(t, output.Days)
	assert.True(t, output.Days[0].Default)
}

func TestRunAnalysisCoreLoadError(t *testing.T) {
	mgr := newNoStoreManager(t)
	src := newFakeSource()
	src.err = errors.New("boom")

	_, err := runAnalysisCore(WithSuppressHeader(context.Background()), testConfig(), src, mgr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load roster")
}

func TestRunAnalysisCoreMemoized(t *testing.T) {
	mgr := newNoStoreManager(t)
	ctx := WithSuppressHeader(context.Background())
	src := newFakeSource()

	first, err := runAnalysisCore(ctx, testConfig(), src, mgr)
	require.NoError(t, err)
	second, err := runAnalysisCore(ctx, testConfig(), src, mgr)
	require.NoError(t, err)

	assert.Equal(t, 2, src.calls)
	assert.Equal(t, first.Streaks, second.Streaks)
	streaks, windows := getAnalytics(testConfig(), mgr).Len()
	assert.Equal(t, 1, streaks)
	assert.Equal(t, 1, windows)
}

func TestRunAnalysisCoreTracking(t *testing.T) {
	ResetAnalytics()
	t.Cleanup(ResetAnalytics)

	store := &iocache.MockAnalysisStore{}
	store.On("BeginAnalysis", mock.Anything, mock.MatchedBy(func(params map[string]any) bool {
		return params["range"] == "weekly" && params["selection"] == "2025-W06" && params["source"] == "fake"
	})).Return(int64(7), nil)
	store.On("RecordPersonSummary", int64(7), mock.Anything).Return(nil).Times(3)
	store.On("EndAnalysis", int64(7), mock.Anything, 3).Return(nil)

	mgr := &iocache.MockCacheManager{}
	mgr.On("GetResultStore").Return(nil)
	mgr.On("GetAnalysisStore").Return(store)

	_, err := runAnalysisCore(WithSuppressHeader(context.Background()), testConfig(), newFakeSource(), mgr)
	require.NoError(t, err)
	store.AssertExpectations(t)
}

func TestRunAnalysisCoreTrackingFailure(t *testing.T) {
	ResetAnalytics()
	t.Cleanup(ResetAnalytics)

	store := &iocache.MockAnalysisStore{}
	store.On("BeginAnalysis", mock.Anything, mock.Anything).Return(int64(0), errors.New("db down"))

	mgr := &iocache.MockCacheManager{}
	mgr.On("GetResultStore").Return(nil)
	mgr.On("GetAnalysisStore").Return(store)

	output, err := runAnalysisCore(WithSuppressHeader(context.Background()), testConfig(), newFakeSource(), mgr)
	require.NoError(t, err)
	assert.Len(t, output.Summaries, 3)
	store.AssertNotCalled(t, "EndAnalysis", mock.Anything, mock.Anything, mock.Anything)
}

func TestSummarizePersons(t *testing.T) {
	visible := []schema.Day{sunday, sunday.AddDays(1), sunday.AddDays(2)}
	roster := []schema.Person{{ID: "p", Name: "P", Sites: []string{"x"}}}
	streaks := schema.StreakMap{"p": {sunday: 3, sunday.AddDays(2): 1}}
	status := schema.ContinuousStatus{"p": {sunday: schema.WindowBoundary, sunday.AddDays(1): schema.WindowInterior}}

	got := summarizePersons(roster, streaks, status, visible)
	require.Len(t, got, 1)
	assert.Equal(t, schema.PersonSummary{
		PersonID: "p", Name: "P", Site: "x",
		ScheduledDays: 2, MaxStreak: 3, LastStreak: 1,
		BoundaryDays: 1, InteriorDays: 1,
	}, got[0])
}
