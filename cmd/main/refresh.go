package main

import (
	"context"
	"time"

	"fn-peaks/src/helpers"
	"fn-peaks/src/interfaces"
	"fn-peaks/src/logger"
	"fn-peaks/src/models"
)

// latestRunner is the part of analysis.PeakFacade the refresh loop needs.
type latestRunner interface {
	RunLatest(ctx context.Context, spanDays int) (*models.MPeakReport, error)
}

// -----------------------------------------------------------------------------

// refresher recomputes the trailing report and pushes it to clients and the audit store.
type refresher struct {
	Runner    latestRunner
	Exchanger interfaces.IDataExchanger
	DB        interfaces.IDatabase
	Errors    *helpers.ErrorHandler
	Logger    *logger.Logger
	SpanDays  int
	runs      int
}

// -----------------------------------------------------------------------------

// refreshOnce runs one cycle. The first report only seeds the latest state.
func (r *refresher) refreshOnce(ctx context.Context) error {
	report, err := r.Runner.RunLatest(ctx, r.SpanDays)
	if r.Errors.Handle(err, "refresh") {
		return err
	}

	if r.runs == 0 {
		report.Type = "INITIAL"
		r.Exchanger.SetLatestReport(report)
	} else {
		report.Type = "UPDATE"
		r.Exchanger.Broadcast(report)
	}
	r.runs++

	if id, err := r.DB.SaveRun(report); !r.Errors.Handle(err, "save run") && id > 0 {
		r.Logger.Debug("Saved run %d (%d rows)", id, len(report.Rows))
	}
	r.Errors.Handle(r.DB.CleanupOldData(), "cleanup")
	return nil
}

// -----------------------------------------------------------------------------

// run refreshes immediately, then on every tick until ctx is done.
func (r *refresher) run(ctx context.Context, interval time.Duration) {
	r.Logger.Info("Refreshing the last %d day(s) every %s", r.SpanDays, interval)
	r.refreshOnce(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.refreshOnce(ctx)
		}
	}
}
