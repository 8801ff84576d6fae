package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webbuilder/internal/config"
	"webbuilder/internal/domain"
	"webbuilder/internal/service"
	"webbuilder/internal/storage"
)

func TestRetentionPruneNow(t *testing.T) {
	db, err := storage.Open(t.TempDir())
	require.NoError(t, err)
	defer db.Close()
	calls := storage.NewAPICallStore(db)

	now := time.Now()
	require.NoError(t, calls.CreateAPICall(&domain.APICall{ID: "a", Endpoint: "x", CreatedAt: now.Add(-10 * 24 * time.Hour)}))
	require.NoError(t, calls.CreateAPICall(&domain.APICall{ID: "b", Endpoint: "x", CreatedAt: now}))

	r := service.NewRetention(calls, config.RetentionConfig{Schedule: "@daily", MaxAgeDays: 7})
	var reported int64 = -1
	r.OnRun = func(n int64) { reported = n }

	n, err := r.PruneNow()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, int64(1), reported)

	left, err := calls.ListAPICalls(10)
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, "b", left[0].ID)
}

func TestRetentionStartStop(t *testing.T) {
	r := service.NewRetention(&memCalls{}, config.RetentionConfig{Schedule: "@every 1h", MaxAgeDays: 1})
	require.NoError(t, r.Start())
	r.Stop()
	r.Stop()
}

func TestRetentionBadSchedule(t *testing.T) {
	r := service.NewRetention(&memCalls{}, config.RetentionConfig{Schedule: "not a cron", MaxAgeDays: 1})
	assert.Error(t, r.Start())
}

func TestRetentionDisabled(t *testing.T) {
	r := service.NewRetention(&memCalls{}, config.RetentionConfig{Schedule: "not a cron", MaxAgeDays: 0})
	assert.NoError(t, r.Start())
}
