package parquet

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huangsam/shiftgrid/schema"
)

func readAll[T any](t *testing.T, path string) []T {
	t.Helper()
	file, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = file.Close() }()

	reader := parquet.NewGenericReader[T](file)
	defer func() { _ = reader.Close() }()

	rows := make([]T, reader.NumRows())
	n, err := reader.Read(rows)
	if err != nil && err != io.EOF {
		require.NoError(t, err)
	}
	return rows[:n]
}

func TestAnalysisRunStructTags(t *testing.T) {
	s := parquet.SchemaOf(new(AnalysisRun))
	for _, colName := range []string{
		"analysis_id", "run_uuid", "start_time", "end_time",
		"run_duration_ms", "total_persons_analyzed", "config_params",
	} {
		_, ok := s.Lookup(colName)
		assert.True(t, ok, "Column %s should exist in schema", colName)
	}
}

func TestDayRowStructTags(t *testing.T) {
	s := parquet.SchemaOf(new(DayRow))
	for _, colName := range []string{"person_id", "name", "site", "date", "week", "service", "kind", "streak", "window"} {
		_, ok := s.Lookup(colName)
		assert.True(t, ok, "Column %s should exist in schema", colName)
	}
}

func TestWriteAnalysisRunsParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "analysis_runs.parquet")

	now := time.Now()
	end := now.Add(time.Minute)
	duration := int32(60000)
	config := `{"range":"weekly"}`
	data := []AnalysisRun{
		{AnalysisID: 1, RunUUID: "a", StartTime: now, EndTime: &end, RunDurationMs: &duration, TotalPersonsAnalyzed: 12, ConfigParams: &config},
		{AnalysisID: 2, RunUUID: "b", StartTime: now},
	}
	require.NoError(t, WriteAnalysisRunsParquet(data, outputPath))

	got := readAll[AnalysisRun](t, outputPath)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].RunUUID)
	assert.Equal(t, int32(12), got[0].TotalPersonsAnalyzed)
	require.NotNil(t, got[0].EndTime)
	assert.WithinDuration(t, end, *got[0].EndTime, time.Nanosecond)
	require.NotNil(t, got[0].ConfigParams)
	assert.Equal(t, config, *got[0].ConfigParams)

	assert.Nil(t, got[1].EndTime)
	assert.Nil(t, got[1].RunDurationMs)
	assert.Nil(t, got[1].ConfigParams)
}

func TestWritePersonSummariesParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "summaries.parquet")
	site := "north"
	records := []schema.PersonSummaryRecord{
		{AnalysisID: 1, PersonID: "n-001", PersonName: "Avery", Site: &site, ScheduledDays: 9, MaxStreak: 8, LastStreak: 2, BoundaryDays: 2, InteriorDays: 5},
		{AnalysisID: 1, PersonID: "n-002", PersonName: "Blake"},
	}
	require.NoError(t, WritePersonSummariesParquet(ConvertPersonSummaryRecords(records), outputPath))

	got := readAll[PersonSummary](t, outputPath)
	require.Len(t, got, 2)
	assert.Equal(t, "n-001", got[0].PersonID)
	require.NotNil(t, got[0].Site)
	assert.Equal(t, "north", *got[0].Site)
	assert.Equal(t, int32(8), got[0].MaxStreak)
	assert.Nil(t, got[1].Site)
}

func TestWriteEmptyData(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "empty.parquet")
	require.NoError(t, WriteAnalysisRunsParquet([]AnalysisRun{}, outputPath))

	info, err := os.Stat(outputPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0), "Output file should contain schema even if empty")
}

func TestWriteInvalidPath(t *testing.T) {
	err := WritePersonSummariesParquet(nil, "/nonexistent/directory/output.parquet")
	assert.Error(t, err)
}

func TestConvertAnalysisRunRecords(t *testing.T) {
	duration := int32(5)
	runs := ConvertAnalysisRunRecords([]schema.AnalysisRunRecord{
		{AnalysisID: 3, RunUUID: "u", TotalPersons: 4, RunDurationMs: &duration},
	})
	require.Len(t, runs, 1)
	assert.Equal(t, int64(3), runs[0].AnalysisID)
	assert.Equal(t, "u", runs[0].RunUUID)
	assert.Equal(t, int32(4), runs[0].TotalPersonsAnalyzed)
	assert.Equal(t, &duration, runs[0].RunDurationMs)
}

func TestConvertGridRows(t *testing.T) {
	d := schema.NewDay(2025, time.February, 3)
	rows := ConvertGridRows([]schema.GridRow{
		{
			PersonID: "n-001", Name: "Avery", Site: "north",
			Cells: []schema.GridCell{
				{Date: d, Service: "Ward A", Kind: schema.WorkKind, Streak: 3, Window: schema.WindowInterior},
				{Date: d.AddDays(1), Window: schema.WindowNone},
			},
		},
	})
	require.Len(t, rows, 2)
	assert.Equal(t, "2025-02-03", rows[0].Date)
	assert.Equal(t, "2025-W06", rows[0].Week)
	assert.Equal(t, int32(3), rows[0].Streak)
	assert.Equal(t, "2", rows[0].Window)
	assert.Equal(t, "", rows[1].Service)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, rows))
	assert.NotZero(t, buf.Len())
}
