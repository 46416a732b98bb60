package iocache

import (
	"bytes"
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huangsam/shiftgrid/schema"
)

func TestValidateTableName(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"result_cache", false},
		{"_private", false},
		{"Table2", false},
		{"", true},
		{"2table", true},
		{"drop table;", true},
		{"name-with-dash", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateTableName(tt.name)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestQuoteTableName(t *testing.T) {
	assert.Equal(t, "`result_cache`", quoteTableName("result_cache", schema.MySQLBackend))
	assert.Equal(t, `"result_cache"`, quoteTableName("result_cache", schema.PostgreSQLBackend))
	assert.Equal(t, `"result_cache"`, quoteTableName("result_cache", schema.SQLiteBackend))
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, []string{"?", "?"}, placeholders(schema.SQLiteBackend, 2))
	assert.Equal(t, []string{"?"}, placeholders(schema.MySQLBackend, 1))
	assert.Equal(t, []string{"$1", "$2", "$3"}, placeholders(schema.PostgreSQLBackend, 3))
}

func TestGetUpsertQuery(t *testing.T) {
	sqlite := &CacheStoreImpl{tableName: resultTable, backend: schema.SQLiteBackend}
	assert.Contains(t, sqlite.getUpsertQuery(), "INSERT OR REPLACE")

	mysql := &CacheStoreImpl{tableName: resultTable, backend: schema.MySQLBackend}
	assert.Contains(t, mysql.getUpsertQuery(), "ON DUPLICATE KEY UPDATE")

	pg := &CacheStoreImpl{tableName: resultTable, backend: schema.PostgreSQLBackend}
	query := pg.getUpsertQuery()
	assert.Contains(t, query, "ON CONFLICT (cache_key)")
	assert.Contains(t, query, "$4")
}

func TestGetCreateTableQuery(t *testing.T) {
	assert.Contains(t, getCreateTableQuery(resultTable, schema.MySQLBackend), "MEDIUMBLOB")
	assert.Contains(t, getCreateTableQuery(resultTable, schema.PostgreSQLBackend), "BYTEA")
	assert.Contains(t, getCreateTableQuery(resultTable, schema.SQLiteBackend), "BLOB")
}

func TestNewCacheStoreErrors(t *testing.T) {
	_, err := NewCacheStore("bad name", schema.SQLiteBackend, "")
	assert.Error(t, err)

	_, err = NewCacheStore(resultTable, "oracle", "")
	assert.Error(t, err)
}

func TestSQLiteCacheStore(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "cache.db")
	store, err := NewCacheStore(resultTable, schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	_, _, _, err = store.Get("missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)

	now := time.Now().Unix()
	require.NoError(t, store.Set("streaks:abc", []byte(`{"n-001":{}}`), 1, now-10))
	require.NoError(t, store.Set("streaks:abc", []byte(`{"n-002":{}}`), 2, now))

	value, version, ts, err := store.Get("streaks:abc")
	require.NoError(t, err)
	assert.Equal(t, `{"n-002":{}}`, string(value))
	assert.Equal(t, 2, version)
	assert.Equal(t, now, ts)

	require.NoError(t, store.Set("windows:abc", []byte(`{}`), 1, now-100))
	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", status.Backend)
	assert.True(t, status.Connected)
	assert.Equal(t, 2, status.TotalEntries)
	assert.Equal(t, now, status.LastEntryTime.Unix())
	assert.Equal(t, now-100, status.OldestEntryTime.Unix())
	assert.Greater(t, status.TableSizeBytes, int64(0))
}

func TestNoneCacheStore(t *testing.T) {
	store, err := NewCacheStore(resultTable, schema.NoneBackend, "")
	require.NoError(t, err)

	assert.NoError(t, store.Set("k", []byte("v"), 1, 1))
	_, _, _, err = store.Get("k")
	assert.ErrorIs(t, err, sql.ErrNoRows)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.False(t, status.Connected)
	assert.NoError(t, store.Close())
}

func TestSQLiteAnalysisStore(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "analysis.db")
	store, err := NewAnalysisStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	start := time.Date(2025, 2, 10, 8, 0, 0, 0, time.UTC)
	id, err := store.BeginAnalysis(start, map[string]any{"range": "weekly"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	require.NoError(t, store.RecordPersonSummary(id, schema.PersonSummary{
		PersonID: "n-001", Name: "Avery Chen", Site: "north",
		ScheduledDays: 9, MaxStreak: 8, LastStreak: 2, BoundaryDays: 2, InteriorDays: 5,
	}))
	require.NoError(t, store.RecordPersonSummary(id, schema.PersonSummary{PersonID: "n-002", Name: "Blake"}))
	require.NoError(t, store.EndAnalysis(id, start.Add(1500*time.Millisecond), 2))

	runs, err := store.GetAllAnalysisRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	run := runs[0]
	assert.Len(t, run.RunUUID, 36)
	assert.True(t, run.StartTime.Equal(start))
	require.NotNil(t, run.EndTime)
	require.NotNil(t, run.RunDurationMs)
	assert.Equal(t, int32(1500), *run.RunDurationMs)
	assert.Equal(t, int32(2), run.TotalPersons)
	require.NotNil(t, run.ConfigParams)
	assert.JSONEq(t, `{"range":"weekly"}`, *run.ConfigParams)

	summaries, err := store.GetAllPersonSummaries()
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, "n-001", summaries[0].PersonID)
	require.NotNil(t, summaries[0].Site)
	assert.Equal(t, "north", *summaries[0].Site)
	assert.Equal(t, int32(8), summaries[0].MaxStreak)
	assert.Nil(t, summaries[1].Site)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, 1, status.TotalRuns)
	assert.Equal(t, id, status.LastRunID)
	assert.Equal(t, 2, status.TotalPersonsAnalyzed)
	assert.Equal(t, int64(1), status.TableSizes[analysisRunsTable])
	assert.Equal(t, int64(2), status.TableSizes[personSummariesTable])
}

func TestSQLiteAnalysisStoreDuplicateSummary(t *testing.T) {
	store, err := NewAnalysisStore(schema.SQLiteBackend, filepath.Join(t.TempDir(), "analysis.db"))
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	id, err := store.BeginAnalysis(time.Now(), nil)
	require.NoError(t, err)
	require.NoError(t, store.RecordPersonSummary(id, schema.PersonSummary{PersonID: "p1"}))
	assert.Error(t, store.RecordPersonSummary(id, schema.PersonSummary{PersonID: "p1"}))
}

func TestNoneAnalysisStore(t *testing.T) {
	store, err := NewAnalysisStore(schema.NoneBackend, "")
	require.NoError(t, err)

	id, err := store.BeginAnalysis(time.Now(), nil)
	require.NoError(t, err)
	assert.Zero(t, id)
	assert.NoError(t, store.RecordPersonSummary(id, schema.PersonSummary{PersonID: "p1"}))
	assert.NoError(t, store.EndAnalysis(id, time.Now(), 1))

	runs, err := store.GetAllAnalysisRuns()
	require.NoError(t, err)
	assert.Empty(t, runs)

	_, err = NewAnalysisStore("oracle", "")
	assert.Error(t, err)
}

func TestMigrateAnalysis(t *testing.T) {
	err := MigrateAnalysis(schema.NoneBackend, "", -1)
	assert.ErrorContains(t, err, "not supported")

	dbPath := filepath.Join(t.TempDir(), "migrate.db")
	require.NoError(t, MigrateAnalysis(schema.SQLiteBackend, dbPath, -1))
	require.NoError(t, MigrateAnalysis(schema.SQLiteBackend, dbPath, -1))
	require.NoError(t, MigrateAnalysis(schema.SQLiteBackend, dbPath, 1))
	require.NoError(t, MigrateAnalysis(schema.SQLiteBackend, dbPath, 0))
	require.NoError(t, MigrateAnalysis(schema.SQLiteBackend, dbPath, 2))

	// The migrated schema is usable by the store
	store, err := NewAnalysisStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	id, err := store.BeginAnalysis(time.Now(), nil)
	require.NoError(t, err)
	assert.NoError(t, store.RecordPersonSummary(id, schema.PersonSummary{PersonID: "p1"}))
}

func TestClearCache(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "cache.db")
	store, err := NewCacheStore(resultTable, schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Close())
	require.FileExists(t, dbPath)

	require.NoError(t, ClearCache(schema.SQLiteBackend, dbPath, ""))
	assert.NoFileExists(t, dbPath)

	// Clearing a missing file is fine
	assert.NoError(t, ClearCache(schema.SQLiteBackend, dbPath, ""))
	assert.Error(t, ClearCache(schema.SQLiteBackend, "", ""))
	assert.NoError(t, ClearCache(schema.NoneBackend, "", ""))
	assert.Error(t, ClearAnalysis("oracle", "", ""))
}

func TestInitStores(t *testing.T) {
	initOnce = sync.Once{}
	closeOnce = sync.Once{}
	defer func() {
		initOnce = sync.Once{}
		closeOnce = sync.Once{}
		Manager = &CacheStoreManager{}
	}()

	dir := t.TempDir()
	cachePath := filepath.Join(dir, "cache.db")
	analysisPath := filepath.Join(dir, "analysis.db")

	var wg sync.WaitGroup
	for range 3 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, InitStores(schema.SQLiteBackend, cachePath, schema.SQLiteBackend, analysisPath))
		}()
	}
	wg.Wait()

	require.NotNil(t, Manager.GetResultStore())
	require.NotNil(t, Manager.GetAnalysisStore())
	CloseStores()
	CloseStores()

	_, err := os.Stat(cachePath)
	assert.NoError(t, err)
	_, err = os.Stat(analysisPath)
	assert.NoError(t, err)
}

func TestInitStoresError(t *testing.T) {
	initOnce = sync.Once{}
	defer func() { initOnce = sync.Once{} }()

	err := InitStores("oracle", "", "", "")
	assert.Error(t, err)
}

func TestCacheStoreManager(t *testing.T) {
	results := &MockCacheStore{}
	analysis := &MockAnalysisStore{}
	mgr := NewCacheStoreManager(results, analysis)
	assert.Same(t, results, mgr.GetResultStore())
	assert.Same(t, analysis, mgr.GetAnalysisStore())
}

func TestExecuteAnalysisExport(t *testing.T) {
	dir := t.TempDir()
	store, err := NewAnalysisStore(schema.SQLiteBackend, filepath.Join(dir, "analysis.db"))
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	var buf bytes.Buffer
	assert.Error(t, ExecuteAnalysisExport(&buf, store, ""))
	assert.ErrorContains(t, ExecuteAnalysisExport(&buf, store, filepath.Join(dir, "out")), "no analysis data")

	id, err := store.BeginAnalysis(time.Now(), map[string]any{"range": "daily"})
	require.NoError(t, err)
	require.NoError(t, store.RecordPersonSummary(id, schema.PersonSummary{PersonID: "n-001", Name: "Avery"}))
	require.NoError(t, store.EndAnalysis(id, time.Now(), 1))

	out := filepath.Join(dir, "out")
	require.NoError(t, ExecuteAnalysisExport(&buf, store, out))
	assert.FileExists(t, out+".analysis_runs.parquet")
	assert.FileExists(t, out+".person_summaries.parquet")
	assert.Contains(t, buf.String(), "Exported 1 person summaries")
}

func TestPrintStatus(t *testing.T) {
	var buf bytes.Buffer
	PrintCacheStatus(&buf, schema.CacheStatus{Backend: "none"})
	assert.Equal(t, "Cache Backend: none\nConnected: false\n", buf.String())

	buf.Reset()
	PrintAnalysisStatus(&buf, schema.AnalysisStatus{
		Backend:    "sqlite",
		Connected:  true,
		TotalRuns:  1,
		TableSizes: map[string]int64{personSummariesTable: 4, analysisRunsTable: 1},
	})
	out := buf.String()
	assert.Contains(t, out, "Total Runs: 1")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte(analysisRunsTable)), bytes.Index(buf.Bytes(), []byte(personSummariesTable)))
}
