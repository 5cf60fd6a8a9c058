package storage

import (
	"sync"
	"time"

	"fn-peaks/src/logger"
	"fn-peaks/src/models"
	"fn-peaks/src/utils"
)

// -----------------------------------------------------------------------------

// MemoryDB keeps the latest run summaries in a ring buffer. Rows are not kept.
type MemoryDB struct {
	Config *models.MConfig
	Logger *logger.Logger

	mu     sync.Mutex
	runs   *utils.RingBuffer[models.MRunRecord]
	nextID int64
	now    func() time.Time
}

// -----------------------------------------------------------------------------

func NewMemoryDB(cfg *models.MConfig, log *logger.Logger) *MemoryDB {
	return &MemoryDB{Config: cfg, Logger: log, now: time.Now}
}

// -----------------------------------------------------------------------------

func (d *MemoryDB) Initialize() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.runs = utils.NewRingBuffer[models.MRunRecord](d.Config.Storage.MemoryRuns)
	d.Logger.Info("MemoryDB initialized (capacity: %d runs)", d.runs.Capacity())
	return nil
}

// -----------------------------------------------------------------------------

func (d *MemoryDB) SaveRun(report *models.MPeakReport) (int64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.nextID++
	d.runs.Append(models.MRunRecord{
		ID:          d.nextID,
		GeneratedAt: report.GeneratedAt.UTC(),
		RangeStart:  report.Range.Start.UTC(),
		RangeEnd:    report.Range.End.UTC(),
		SpanDays:    report.SpanDays,
		Devices:     len(report.Rows),
		DurationMs:  durationMs(report),
	})
	return d.nextID, nil
}

// -----------------------------------------------------------------------------

func (d *MemoryDB) RecentRuns(limit int) ([]models.MRunRecord, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.runs.GetLatest(limit), nil
}

// -----------------------------------------------------------------------------

func (d *MemoryDB) CleanupOldData() error {
	cutoff := d.now().UTC().AddDate(0, 0, -d.Config.Storage.RetentionDays)

	d.mu.Lock()
	removed := d.runs.Retain(func(r models.MRunRecord) bool { return !r.GeneratedAt.Before(cutoff) })
	d.mu.Unlock()

	if removed > 0 {
		d.Logger.Debug("Dropped %d runs older than %s", removed, cutoff.Format(time.RFC3339))
	}
	return nil
}

// -----------------------------------------------------------------------------

func (d *MemoryDB) Close() error {
	return nil
}
