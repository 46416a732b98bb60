package core

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/huangsam/shiftgrid/internal/iocache"
	"github.com/huangsam/shiftgrid/schema"
)

func sampleStreaks() schema.StreakMap {
	return schema.StreakMap{"n-001": {sunday: 1, sunday.AddDays(1): 2}}
}

func TestPersistentLoaderMissStores(t *testing.T) {
	store := &iocache.MockCacheStore{}
	store.On("Get", "streaks:abc").Return(nil, 0, int64(0), errors.New("not found"))
	store.On("Set", "streaks:abc", mock.Anything, currentCacheVersion, mock.Anything).Return(nil)

	calls := 0
	loader := persistentLoader[schema.StreakMap](store, streakKeyPrefix)
	got := loader("abc", func() schema.StreakMap {
		calls++
		return sampleStreaks()
	})

	assert.Equal(t, 1, calls)
	assert.Equal(t, sampleStreaks(), got)
	store.AssertExpectations(t)

	// The stored payload decodes back to the same map
	data := store.Calls[1].Arguments.Get(1).([]byte)
	var decoded schema.StreakMap
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, sampleStreaks(), decoded)
}

func TestPersistentLoaderHit(t *testing.T) {
	data, err := json.Marshal(sampleStreaks())
	require.NoError(t, err)

	store := &iocache.MockCacheStore{}
	store.On("Get", "streaks:abc").Return(data, currentCacheVersion, time.Now().Unix(), nil)

	loader := persistentLoader[schema.StreakMap](store, streakKeyPrefix)
	got := loader("abc", func() schema.StreakMap {
		t.Fatal("compute must not run on a cache hit")
		return nil
	})
	assert.Equal(t, sampleStreaks(), got)
	store.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPersistentLoaderRejectsStaleAndOldVersions(t *testing.T) {
	data, err := json.Marshal(schema.ContinuousStatus{"n-001": {sunday: schema.WindowBoundary}})
	require.NoError(t, err)

	tests := []struct {
		name    string
		version int
		ts      int64
	}{
		{"stale", currentCacheVersion, time.Now().Add(-8 * 24 * time.Hour).Unix()},
		{"old version", currentCacheVersion + 1, time.Now().Unix()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &iocache.MockCacheStore{}
			store.On("Get", "windows:k").Return(data, tt.version, tt.ts, nil)
			store.On("Set", "windows:k", mock.Anything, currentCacheVersion, mock.Anything).Return(nil)

			computed := false
			loader := persistentLoader[schema.ContinuousStatus](store, windowKeyPrefix)
			got := loader("k", func() schema.ContinuousStatus {
				computed = true
				return schema.ContinuousStatus{}
			})
			assert.True(t, computed)
			assert.Empty(t, got)
			store.AssertExpectations(t)
		})
	}
}

func TestPersistentLoaderWithoutStore(t *testing.T) {
	loader := persistentLoader[schema.StreakMap](nil, streakKeyPrefix)
	got := loader("abc", sampleStreaks)
	assert.Equal(t, sampleStreaks(), got)
}

func TestAnalyticsUsesResultStore(t *testing.T) {
	ResetAnalytics()
	t.Cleanup(ResetAnalytics)

	store := &iocache.MockCacheStore{}
	store.On("Get", mock.Anything).Return(nil, 0, int64(0), errors.New("not found"))
	store.On("Set", mock.Anything, mock.Anything, currentCacheVersion, mock.Anything).Return(nil)

	mgr := &iocache.MockCacheManager{}
	mgr.On("GetResultStore").Return(store)
	mgr.On("GetAnalysisStore").Return(nil)

	_, err := runAnalysisCore(WithSuppressHeader(t.Context()), testConfig(), newFakeSource(), mgr)
	require.NoError(t, err)

	// One streak and one window result went through the store
	store.AssertNumberOfCalls(t, "Get", 2)
	store.AssertNumberOfCalls(t, "Set", 2)
}
