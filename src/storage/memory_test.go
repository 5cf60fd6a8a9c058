package storage

import (
	"bytes"
	"testing"
	"time"

	"fn-peaks/src/logger"
	"fn-peaks/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemoryDB(t *testing.T, capacity int) *MemoryDB {
	t.Helper()
	cfg := &models.MConfig{Storage: models.MStorageConfig{DBType: "memory", MemoryRuns: capacity, RetentionDays: 30}}
	db := NewMemoryDB(cfg, logger.NewLoggerWithWriter(nil, "MemoryDB", &bytes.Buffer{}))
	require.NoError(t, db.Initialize())
	return db
}

func TestMemoryDBKeepsLatestRuns(t *testing.T) {
	db := newMemoryDB(t, 2)
	now := time.Now()

	for i := 0; i < 3; i++ {
		id, err := db.SaveRun(sampleReport(now))
		require.NoError(t, err)
		assert.Equal(t, int64(i+1), id)
	}

	runs, err := db.RecentRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, int64(3), runs[0].ID)
	assert.Equal(t, int64(2), runs[1].ID)
	assert.Equal(t, 2, runs[0].Devices)
	assert.Equal(t, int64(250), runs[0].DurationMs)
}

func TestMemoryDBCleanup(t *testing.T) {
	db := newMemoryDB(t, 10)
	fixed := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	db.now = func() time.Time { return fixed }

	_, _ = db.SaveRun(sampleReport(fixed.AddDate(0, 0, -45)))
	_, _ = db.SaveRun(sampleReport(fixed.AddDate(0, 0, -1)))

	require.NoError(t, db.CleanupOldData())

	runs, err := db.RecentRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, int64(2), runs[0].ID)
}
