package storage

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"fn-peaks/src/logger"
	"fn-peaks/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport(generated time.Time) *models.MPeakReport {
	return &models.MPeakReport{
		Range:           models.MTimeRange{Start: generated.AddDate(0, 0, -2), End: generated},
		SpanDays:        2,
		GeneratedAt:     generated,
		DurationSeconds: 0.25,
		Rows: []models.MTableRow{
			{DeviceID: "FN1", Name: "One", ChannelA: models.MPeakCell{Value: 67.8}, ChannelB: models.MPeakCell{Value: -1}},
			{DeviceID: "FN2", Name: "Two", ChannelA: models.MPeakCell{Value: 12}, ChannelB: models.MPeakCell{Value: 3.5}},
		},
	}
}

func newSQLite(t *testing.T) *AsyncSQLiteDB {
	t.Helper()
	cfg := &models.MConfig{Storage: models.MStorageConfig{
		DBType:        "sqlite",
		DBPath:        filepath.Join(t.TempDir(), "runs.db"),
		RetentionDays: 30,
	}}
	db, err := NewAsyncSQLiteDB(cfg, logger.NewLoggerWithWriter(nil, "SQLiteDB", &bytes.Buffer{}))
	require.NoError(t, err)
	require.NoError(t, db.Initialize())
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSQLiteSaveAndListRuns(t *testing.T) {
	db := newSQLite(t)
	now := time.Now().UTC().Truncate(time.Second)

	first, err := db.SaveRun(sampleReport(now.Add(-time.Hour)))
	require.NoError(t, err)
	second, err := db.SaveRun(sampleReport(now))
	require.NoError(t, err)
	assert.Greater(t, second, first)

	runs, err := db.RecentRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, second, runs[0].ID)
	assert.Equal(t, now, runs[0].GeneratedAt)
	assert.Equal(t, 2, runs[0].Devices)
	assert.Equal(t, int64(250), runs[0].DurationMs)
	assert.Equal(t, now.AddDate(0, 0, -2), runs[0].RangeStart)

	var rows int
	require.NoError(t, db.DB.QueryRow("SELECT COUNT(*) FROM peak_rows WHERE run_id = ?", second).Scan(&rows))
	assert.Equal(t, 2, rows)

	var peakB float64
	require.NoError(t, db.DB.QueryRow("SELECT channel_b FROM peak_rows WHERE run_id = ? AND device_id = 'FN1'", second).Scan(&peakB))
	assert.Equal(t, -1.0, peakB)
}

func TestSQLiteRecentRunsLimit(t *testing.T) {
	db := newSQLite(t)
	for i := 0; i < 3; i++ {
		_, err := db.SaveRun(sampleReport(time.Now()))
		require.NoError(t, err)
	}

	runs, err := db.RecentRuns(2)
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestSQLiteCleanupOldData(t *testing.T) {
	db := newSQLite(t)
	_, err := db.SaveRun(sampleReport(time.Now().AddDate(0, 0, -90)))
	require.NoError(t, err)
	recent, err := db.SaveRun(sampleReport(time.Now()))
	require.NoError(t, err)

	require.NoError(t, db.CleanupOldData())

	runs, err := db.RecentRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, recent, runs[0].ID)

	var orphans int
	require.NoError(t, db.DB.QueryRow("SELECT COUNT(*) FROM peak_rows WHERE run_id <> ?", recent).Scan(&orphans))
	assert.Zero(t, orphans)
}

func TestSQLiteInitializeIsIdempotent(t *testing.T) {
	db := newSQLite(t)
	_, err := db.SaveRun(sampleReport(time.Now()))
	require.NoError(t, err)

	require.NoError(t, db.createTables())

	runs, err := db.RecentRuns(10)
	require.NoError(t, err)
	assert.Len(t, runs, 1, "existing runs survive a restart")
}

func TestNoneDB(t *testing.T) {
	var db NoneDB
	require.NoError(t, db.Initialize())
	id, err := db.SaveRun(sampleReport(time.Now()))
	require.NoError(t, err)
	assert.Zero(t, id)
	runs, err := db.RecentRuns(5)
	require.NoError(t, err)
	assert.Empty(t, runs)
}
