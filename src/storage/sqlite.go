package storage

import (
	"database/sql"
	"fmt"
	"time"

	"fn-peaks/src/logger"
	"fn-peaks/src/models"

	_ "modernc.org/sqlite"
)

// -----------------------------------------------------------------------------

type AsyncSQLiteDB struct {
	Config *models.MConfig
	DB     *sql.DB
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewAsyncSQLiteDB(cfg *models.MConfig, log *logger.Logger) (*AsyncSQLiteDB, error) {
	return &AsyncSQLiteDB{
		Config: cfg,
		Logger: log,
	}, nil
}

// -----------------------------------------------------------------------------

func (d *AsyncSQLiteDB) Initialize() error {
	dsn := d.Config.Storage.DBPath

	// Open DB
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return err
	}

	if err := db.Ping(); err != nil {
		return err
	}

	d.DB = db

	// PRAGMA optimizations
	if _, err := db.Exec("PRAGMA journal_mode = WAL;"); err != nil {
		d.Logger.Warning("Failed to set WAL mode: %v", err)
	}
	if _, err := db.Exec("PRAGMA synchronous = NORMAL;"); err != nil {
		d.Logger.Warning("Failed to set synchronous mode: %v", err)
	}

	return d.createTables()
}

// -----------------------------------------------------------------------------

func (d *AsyncSQLiteDB) createTables() error {
	query := `
		CREATE TABLE IF NOT EXISTS peak_runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			generated_at INTEGER NOT NULL,
			range_start INTEGER NOT NULL,
			range_end INTEGER NOT NULL,
			span_days INTEGER NOT NULL,
			devices INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL
		);
	`
	if _, err := d.DB.Exec(query); err != nil {
		return fmt.Errorf("failed to create peak_runs: %w", err)
	}

	query = `
		CREATE TABLE IF NOT EXISTS peak_rows (
			run_id INTEGER NOT NULL REFERENCES peak_runs(id) ON DELETE CASCADE,
			device_id TEXT NOT NULL,
			name TEXT,
			channel_a REAL,
			channel_b REAL,
			PRIMARY KEY (run_id, device_id)
		);
	`
	if _, err := d.DB.Exec(query); err != nil {
		return fmt.Errorf("failed to create peak_rows: %w", err)
	}

	return nil
}

// -----------------------------------------------------------------------------

func (d *AsyncSQLiteDB) SaveRun(report *models.MPeakReport) (int64, error) {
	tx, err := d.DB.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		INSERT INTO peak_runs (generated_at, range_start, range_end, span_days, devices, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?)
	`, report.GeneratedAt.Unix(), report.Range.Start.Unix(), report.Range.End.Unix(),
		report.SpanDays, len(report.Rows), durationMs(report))
	if err != nil {
		return 0, err
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO peak_rows (run_id, device_id, name, channel_a, channel_b)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for _, r := range report.Rows {
		if _, err := stmt.Exec(runID, r.DeviceID, r.Name, r.ChannelA.Value, r.ChannelB.Value); err != nil {
			return 0, err
		}
	}

	return runID, tx.Commit()
}

// -----------------------------------------------------------------------------

func (d *AsyncSQLiteDB) RecentRuns(limit int) ([]models.MRunRecord, error) {
	rows, err := d.DB.Query(`
		SELECT id, generated_at, range_start, range_end, span_days, devices, duration_ms
		FROM peak_runs ORDER BY id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.MRunRecord
	for rows.Next() {
		var rec models.MRunRecord
		var generated, start, end int64
		if err := rows.Scan(&rec.ID, &generated, &start, &end, &rec.SpanDays, &rec.Devices, &rec.DurationMs); err != nil {
			return nil, err
		}
		rec.GeneratedAt = time.Unix(generated, 0).UTC()
		rec.RangeStart = time.Unix(start, 0).UTC()
		rec.RangeEnd = time.Unix(end, 0).UTC()
		out = append(out, rec)
	}
	return out, rows.Err()
}

// -----------------------------------------------------------------------------

func (d *AsyncSQLiteDB) CleanupOldData() error {
	retentionDays := d.Config.Storage.RetentionDays
	cutoff := time.Now().UTC().AddDate(0, 0, -retentionDays).Unix()

	d.Logger.Debug("Cleaning up runs older than %d days (generated_at < %d)...", retentionDays, cutoff)

	if _, err := d.DB.Exec("DELETE FROM peak_rows WHERE run_id IN (SELECT id FROM peak_runs WHERE generated_at < ?)", cutoff); err != nil {
		d.Logger.Error("Cleanup peak_rows error: %v", err)
		return err
	}
	if _, err := d.DB.Exec("DELETE FROM peak_runs WHERE generated_at < ?", cutoff); err != nil {
		d.Logger.Error("Cleanup peak_runs error: %v", err)
		return err
	}

	return nil
}

// -----------------------------------------------------------------------------

func (d *AsyncSQLiteDB) Close() error {
	if d.DB != nil {
		return d.DB.Close()
	}
	return nil
}

// -----------------------------------------------------------------------------

func durationMs(report *models.MPeakReport) int64 {
	return int64(report.DurationSeconds * 1000)
}
