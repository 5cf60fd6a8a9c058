package analysis

import (
	"context"
	"time"

	"fn-peaks/src/aggregation"
	datasource "fn-peaks/src/data_source"
	"fn-peaks/src/helpers"
	"fn-peaks/src/interfaces"
	"fn-peaks/src/logger"
	"fn-peaks/src/models"
)

// -----------------------------------------------------------------------------

// PeakFacade runs the full pipeline: range check, both channel folds, merge and rows.
type PeakFacade struct {
	Config   *models.MConfig
	Channels *datasource.MultiChannelManager
	Observer interfaces.IObserver // optional
	Logger   *logger.Logger
	Location *time.Location
	now      func() time.Time
}

// -----------------------------------------------------------------------------

func NewPeakFacade(cfg *models.MConfig, channels *datasource.MultiChannelManager, obs interfaces.IObserver, loc *time.Location, log *logger.Logger) *PeakFacade {
	if loc == nil {
		loc = time.UTC
	}
	return &PeakFacade{
		Config:   cfg,
		Channels: channels,
		Observer: obs,
		Logger:   log,
		Location: loc,
		now:      time.Now,
	}
}

// -----------------------------------------------------------------------------

// SpanDays returns the number of day directories to scan for r. An inverted
// range yields 0, a range shorter than a day yields 1, and a range longer than
// maxDays whole days is a *helpers.RangeTooLargeError.
func SpanDays(r models.MTimeRange, maxDays int) (int, error) {
	d := r.End.Sub(r.Start)
	if d < 0 {
		return 0, nil
	}
	days := int(d / (24 * time.Hour))
	if days > maxDays {
		return 0, &helpers.RangeTooLargeError{Days: days, MaxDays: maxDays}
	}
	if days == 0 {
		return 1, nil
	}
	return days, nil
}

// -----------------------------------------------------------------------------

// Run validates r before touching storage, then aggregates both channels concurrently.
func (a *PeakFacade) Run(ctx context.Context, r models.MTimeRange) (*models.MPeakReport, error) {
	started := a.now()

	span, err := SpanDays(r, a.Config.Aggregation.MaxSpanDays)
	if err != nil {
		return nil, err
	}

	report := &models.MPeakReport{
		Type:     "QUERY",
		Range:    r,
		SpanDays: span,
		Columns:  Columns(a.Config),
		Devices:  make(map[string]models.MMergedDeviceRow),
		Rows:     []models.MTableRow{},
	}

	if span == 0 {
		a.Logger.Info("Inverted range %s > %s, returning empty report", r.Start.Format(time.RFC3339), r.End.Format(time.RFC3339))
		a.finish(report, started)
		return report, nil
	}

	endDate := r.End.In(a.Location)
	results := a.Channels.FetchAll(ctx, endDate, span)

	var channelA, channelB map[string]models.MDeviceAggregate
	if len(results) > 0 {
		channelA = results[0].Peaks
	}
	if len(results) > 1 {
		channelB = results[1].Peaks
	}
	for _, res := range results {
		report.Stats = append(report.Stats, res.Stats)
	}

	report.Devices = aggregation.Merge(channelA, channelB)
	report.Rows = BuildRows(report.Devices, a.Config.Aggregation.Unit)

	a.finish(report, started)
	a.Logger.Info("Report for %d day(s) ending %s: %d devices in %.3fs",
		span, endDate.Format("2006-01-02"), len(report.Devices), report.DurationSeconds)
	return report, nil
}

// -----------------------------------------------------------------------------

// RunLatest reports on the spanDays days ending at the current time. Days are
// 24h so a DST change never shortens the span.
func (a *PeakFacade) RunLatest(ctx context.Context, spanDays int) (*models.MPeakReport, error) {
	end := a.now()
	start := end.Add(-time.Duration(spanDays) * 24 * time.Hour)
	return a.Run(ctx, models.MTimeRange{Start: start, End: end})
}

// -----------------------------------------------------------------------------

func (a *PeakFacade) finish(report *models.MPeakReport, started time.Time) {
	report.GeneratedAt = a.now()
	elapsed := report.GeneratedAt.Sub(started)
	report.DurationSeconds = elapsed.Seconds()

	if a.Observer != nil {
		a.Observer.ObserveRun(elapsed)
		a.Observer.SetDevices(len(report.Devices))
	}
}

// -----------------------------------------------------------------------------

// Response builds the {"Response": {...}} envelope consumed by dashboards.
func Response(report *models.MPeakReport) models.MResponseEnvelope {
	out := models.MResponseEnvelope{Response: make(map[string]models.MFiberNodeRow, len(report.Devices))}
	for id, row := range report.Devices {
		out.Response[id] = models.MFiberNodeRow{
			Name:              row.Name,
			DsFnUtilization:   row.ChannelAPeak,
			OfdmFnUtilization: row.ChannelBPeak,
		}
	}
	return out
}
