package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huangsam/shiftgrid/core"
	"github.com/huangsam/shiftgrid/internal/api"
	"github.com/huangsam/shiftgrid/internal/contract"
	"github.com/huangsam/shiftgrid/internal/iocache"
	"github.com/huangsam/shiftgrid/schema"
)

const dataset = `{
  "personnel": [
    {"id": "n-001", "name": "Avery", "sites": ["north"]},
    {"id": "n-002", "name": "Blake", "sites": ["south"]}
  ],
  "schedules": [
    {"personId": "n-001", "date": "2025-02-03", "service": "Ward A"},
    {"personId": "n-001", "date": "2025-02-04", "service": "Ward A"},
    {"personId": "n-001", "date": "2025-02-05", "service": "Ward A"},
    {"personId": "n-002", "date": "2025-02-04", "service": "Ward B"}
  ]
}`

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func setup(t *testing.T) (*iocache.MockCacheManager, *contract.Config) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	core.ResetAnalytics()
	t.Cleanup(core.ResetAnalytics)

	path := filepath.Join(t.TempDir(), "shiftgrid.json")
	require.NoError(t, os.WriteFile(path, []byte(dataset), 0o644))

	mgr := &iocache.MockCacheManager{}
	mgr.On("GetResultStore").Return(nil)
	mgr.On("GetAnalysisStore").Return(nil)

	cfg := &contract.Config{
		RangeType:   schema.WeeklyRange,
		WeekStart:   time.Sunday,
		SourceKind:  schema.FileSource,
		DatasetPath: path,
		ResultLimit: 10,
		Now: func() time.Time {
			return time.Date(2025, time.February, 5, 12, 0, 0, 0, time.UTC)
		},
	}
	return mgr, cfg
}

func get(t *testing.T, router http.Handler, target, token string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env envelope
	if rec.Header().Get("Content-Type") != "" {
		_ = json.Unmarshal(rec.Body.Bytes(), &env)
	}
	return rec, env
}

func TestHealth(t *testing.T) {
	mgr, cfg := setup(t)
	rec, _ := get(t, api.NewRouter(cfg, mgr), "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestUnknownRoute(t *testing.T) {
	mgr, cfg := setup(t)
	rec, env := get(t, api.NewRouter(cfg, mgr), "/api/v2/ranges", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, http.StatusNotFound, env.Code)
}

func TestGetRanges(t *testing.T) {
	mgr, cfg := setup(t)
	rec, env := get(t, api.NewRouter(cfg, mgr), "/api/v1/ranges?range=monthly&pivot=2025-02", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 0, env.Code)
	assert.Equal(t, "success", env.Message)

	var got struct {
		Type     string               `json:"type"`
		Selected string               `json:"selected"`
		Options  []schema.RangeOption `json:"options"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, "monthly", got.Type)
	assert.Equal(t, "2025-02", got.Selected)
	require.Len(t, got.Options, 5)
	assert.Equal(t, "2024-12", got.Options[0].Label)
}

func TestGetRanges_BadParameters(t *testing.T) {
	mgr, cfg := setup(t)
	router := api.NewRouter(cfg, mgr)

	tests := []struct {
		name   string
		target string
		want   string
	}{
		{"unknown range", "/api/v1/ranges?range=yearly", "invalid range"},
		{"pivot in the wrong format", "/api/v1/streaks?range=monthly&pivot=2025-W06", "invalid pivot"},
		{"limit not a number", "/api/v1/grid?limit=many", "invalid query parameters"},
		{"limit out of bounds", "/api/v1/grid?limit=-3", "invalid query parameters"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := get(t, router, tt.target, "")
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, http.StatusBadRequest, env.Code)
			assert.Contains(t, env.Message, tt.want)
		})
	}
}

func TestGetDays(t *testing.T) {
	mgr, cfg := setup(t)
	rec, env := get(t, api.NewRouter(cfg, mgr), "/api/v1/days?selection=2025-W07", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var days []schema.DayCell
	require.NoError(t, json.Unmarshal(env.Data, &days))
	require.Len(t, days, 7)
	assert.Equal(t, schema.NewDay(2025, time.February, 9), days[0].Date)
}

func TestGetStreaks(t *testing.T) {
	mgr, cfg := setup(t)
	rec, env := get(t, api.NewRouter(cfg, mgr), "/api/v1/streaks?limit=1", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got struct {
		Summaries []schema.PersonSummary    `json:"summaries"`
		Streaks   map[string]map[string]int `json:"streaks"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &got))
	require.Len(t, got.Summaries, 1)
	assert.Equal(t, "n-001", got.Summaries[0].PersonID)
	assert.Equal(t, 3, got.Streaks["n-001"]["05/02/2025"])
}

func TestGetWindows(t *testing.T) {
	mgr, cfg := setup(t)
	rec, env := get(t, api.NewRouter(cfg, mgr), "/api/v1/windows?site=south", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got struct {
		Days   []schema.Day                 `json:"days"`
		Status map[string]map[string]string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Len(t, got.Days, 7)
	assert.NotContains(t, got.Status, "n-001")
	assert.Equal(t, "3", got.Status["n-002"]["04/02/2025"])
}

func TestGetGrid(t *testing.T) {
	mgr, cfg := setup(t)
	rec, env := get(t, api.NewRouter(cfg, mgr), "/api/v1/grid", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got struct {
		Days []schema.DayCell `json:"days"`
		Rows []schema.GridRow `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Len(t, got.Days, 7)
	require.Len(t, got.Rows, 2)
	assert.Equal(t, "n-001", got.Rows[0].PersonID)
	assert.Len(t, got.Rows[0].Cells, 7)
}

func TestAnalysisFailure(t *testing.T) {
	mgr, cfg := setup(t)
	cfg.DatasetPath = filepath.Join(t.TempDir(), "missing.json")
	rec, env := get(t, api.NewRouter(cfg, mgr), "/api/v1/streaks", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, env.Message, "analysis failed")
}

func TestRequireAuth(t *testing.T) {
	mgr, cfg := setup(t)
	cfg.APISecret = "test-secret"
	router := api.NewRouter(cfg, mgr)

	t.Run("health stays open", func(t *testing.T) {
		rec, _ := get(t, router, "/health", "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing header", func(t *testing.T) {
		rec, env := get(t, router, "/api/v1/ranges", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, env.Message, "Authorization header required")
	})

	t.Run("wrong scheme", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/ranges", nil)
		req.Header.Set("Authorization", "Basic abc")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		token, err := api.IssueToken("other-secret", "ops", time.Hour)
		require.NoError(t, err)
		rec, env := get(t, router, "/api/v1/ranges", token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Invalid token", env.Message)
	})

	t.Run("expired token", func(t *testing.T) {
		token, err := api.IssueToken("test-secret", "ops", -time.Minute)
		require.NoError(t, err)
		rec, env := get(t, router, "/api/v1/ranges", token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Token has expired", env.Message)
	})

	t.Run("valid token", func(t *testing.T) {
		token, err := api.IssueToken("test-secret", "ops", time.Hour)
		require.NoError(t, err)
		rec, env := get(t, router, "/api/v1/ranges", token)
		assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, 0, env.Code)
	})
}

func TestIssueToken_RequiresSecret(t *testing.T) {
	_, err := api.IssueToken("", "ops", time.Hour)
	assert.Error(t, err)
}
