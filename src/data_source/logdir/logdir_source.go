package logdir

import (
	"context"
	"time"

	"fn-peaks/src/aggregation"
	"fn-peaks/src/interfaces"
	"fn-peaks/src/logger"
	"fn-peaks/src/models"
	"fn-peaks/src/pathing"
	"fn-peaks/src/utils"
)

// -----------------------------------------------------------------------------

// LogDirSource aggregates one channel stored as <root>/yyyy/MM/dd day directories.
type LogDirSource struct {
	Channel  models.MChannelConfig
	Resolver *pathing.Resolver
	Engine   *aggregation.Engine
	Observer interfaces.IObserver // optional
}

// -----------------------------------------------------------------------------

func NewLogDirSource(ch models.MChannelConfig, resolver *pathing.Resolver, engine *aggregation.Engine, obs interfaces.IObserver) *LogDirSource {
	return &LogDirSource{
		Channel:  ch,
		Resolver: resolver,
		Engine:   engine,
		Observer: obs,
	}
}

// -----------------------------------------------------------------------------

func (s *LogDirSource) Name() string {
	return s.Channel.Name
}

// -----------------------------------------------------------------------------

// Fetch resolves the existing day directories and folds them. The only error
// is a context cancelled before any I/O.
func (s *LogDirSource) Fetch(ctx context.Context, endDate time.Time, spanDays int) (map[string]models.MDeviceAggregate, models.MChannelStats, error) {
	if err := ctx.Err(); err != nil {
		return nil, models.MChannelStats{Channel: s.Name()}, err
	}

	dirs, missing := s.Resolver.ResolveCounted(s.Channel.Root, endDate, spanDays)
	if s.Observer != nil {
		s.Observer.IncCounter("directories_missing", s.Name(), float64(missing))
	}

	peaks, stats := s.Engine.AggregateWithStats(dirs, s.Name())
	stats.DirectoriesMissing = missing
	return peaks, stats, nil
}

// -----------------------------------------------------------------------------

// NewSources builds one source per configured channel, in config order. Each
// channel logs under its own name. cal may be nil.
func NewSources(cfg *models.MConfig, store interfaces.IDirectoryStore, cal *utils.DayCalendar, obs interfaces.IObserver, log *logger.Logger) []interfaces.IChannelSource {
	sources := make([]interfaces.IChannelSource, 0, len(cfg.Channels))
	for _, ch := range cfg.Channels {
		chLogger := log.Named(ch.Name)
		sources = append(sources, NewLogDirSource(ch,
			pathing.NewResolver(store, chLogger, cal),
			aggregation.NewEngine(store, chLogger, obs, cfg.Aggregation.Workers),
			obs))
	}
	return sources
}
