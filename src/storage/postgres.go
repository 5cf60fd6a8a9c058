package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"fn-peaks/src/logger"
	"fn-peaks/src/models"

	_ "github.com/lib/pq"
)

// -----------------------------------------------------------------------------

type PostgresDB struct {
	Config *models.MConfig
	DB     *sql.DB
	Schema string
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

// NewPostgresDB names the schema after the running executable.
func NewPostgresDB(cfg *models.MConfig, log *logger.Logger) (*PostgresDB, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to get executable name: %w", err)
	}
	name := filepath.Base(exe)
	name = strings.TrimSuffix(name, filepath.Ext(name))

	return &PostgresDB{
		Config: cfg,
		Schema: name,
		Logger: log,
	}, nil
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) Initialize() error {
	if d.DB == nil {
		db, err := sql.Open("postgres", d.Config.Storage.DBConnectionString)
		if err != nil {
			return err
		}
		d.DB = db
	}

	if err := d.DB.Ping(); err != nil {
		return err
	}

	// Create Schema
	if _, err := d.DB.Exec(fmt.Sprintf(`CREATE SCHEMA IF NOT EXISTS "%s"`, d.Schema)); err != nil {
		return fmt.Errorf("failed to create schema %s: %w", d.Schema, err)
	}

	if err := d.createTables(); err != nil {
		return err
	}

	d.Logger.Info("PostgresDB initialized successfully (Schema: %s)", d.Schema)
	return nil
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) table(name string) string {
	return fmt.Sprintf(`"%s"."%s"`, d.Schema, name)
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) createTables() error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id BIGSERIAL PRIMARY KEY,
			generated_at BIGINT NOT NULL,
			range_start BIGINT NOT NULL,
			range_end BIGINT NOT NULL,
			span_days INTEGER NOT NULL,
			devices INTEGER NOT NULL,
			duration_ms BIGINT NOT NULL
		);
	`, d.table("peak_runs"))
	if _, err := d.DB.Exec(query); err != nil {
		return fmt.Errorf("failed to create peak_runs: %w", err)
	}

	query = fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			run_id BIGINT NOT NULL REFERENCES %s(id) ON DELETE CASCADE,
			device_id TEXT NOT NULL,
			name TEXT,
			channel_a DOUBLE PRECISION,
			channel_b DOUBLE PRECISION,
			PRIMARY KEY (run_id, device_id)
		);
	`, d.table("peak_rows"), d.table("peak_runs"))
	if _, err := d.DB.Exec(query); err != nil {
		return fmt.Errorf("failed to create peak_rows: %w", err)
	}

	return nil
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) SaveRun(report *models.MPeakReport) (int64, error) {
	tx, err := d.DB.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var runID int64
	err = tx.QueryRow(fmt.Sprintf(`
		INSERT INTO %s (generated_at, range_start, range_end, span_days, devices, duration_ms)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id
	`, d.table("peak_runs")), report.GeneratedAt.Unix(), report.Range.Start.Unix(), report.Range.End.Unix(),
		report.SpanDays, len(report.Rows), durationMs(report)).Scan(&runID)
	if err != nil {
		return 0, err
	}

	stmt, err := tx.Prepare(fmt.Sprintf(`
		INSERT INTO %s (run_id, device_id, name, channel_a, channel_b)
		VALUES ($1, $2, $3, $4, $5)
	`, d.table("peak_rows")))
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

func (d *PostgresDB) RecentRuns(limit int) ([]models.MRunRecord, error) {
	rows, err := d.DB.Query(fmt.Sprintf(`
		SELECT id, generated_at, range_start, range_end, span_days, devices, duration_ms
		FROM %s ORDER BY id DESC LIMIT $1
	`, d.table("peak_runs")), limit)
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

func (d *PostgresDB) CleanupOldData() error {
	retentionDays := d.Config.Storage.RetentionDays
	cutoff := time.Now().UTC().AddDate(0, 0, -retentionDays).Unix()

	// peak_rows follow through ON DELETE CASCADE
	if _, err := d.DB.Exec(fmt.Sprintf(`DELETE FROM %s WHERE generated_at < $1`, d.table("peak_runs")), cutoff); err != nil {
		d.Logger.Error("Cleanup peak_runs error: %v", err)
		return err
	}

	return nil
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) Close() error {
	if d.DB != nil {
		return d.DB.Close()
	}
	return nil
}
