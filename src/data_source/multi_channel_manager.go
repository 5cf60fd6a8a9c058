package datasource

import (
	"context"
	"fmt"
	"sync"
	"time"

	"fn-peaks/src/interfaces"
	"fn-peaks/src/logger"
	"fn-peaks/src/models"
)

// ChannelResult is the outcome of one channel fetch.
type ChannelResult struct {
	Name  string
	Peaks map[string]models.MDeviceAggregate
	Stats models.MChannelStats
	Err   error
}

// -----------------------------------------------------------------------------

// MultiChannelManager fans a fetch out to every channel source. Sources keep
// their configured order; the first one is authoritative for the merge.
type MultiChannelManager struct {
	Sources []interfaces.IChannelSource
	Logger  *logger.Logger
	mu      sync.RWMutex
}

// -----------------------------------------------------------------------------

func NewMultiChannelManager(sources []interfaces.IChannelSource, log *logger.Logger) *MultiChannelManager {
	return &MultiChannelManager{
		Sources: sources,
		Logger:  log,
	}
}

// -----------------------------------------------------------------------------

// GetSource retrieves a source by name
func (m *MultiChannelManager) GetSource(name string) (interfaces.IChannelSource, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, s := range m.Sources {
		if s.Name() == name {
			return s, nil
		}
	}
	return nil, fmt.Errorf("source %s not found", name)
}

// -----------------------------------------------------------------------------

// GetAllSources returns a snapshot of the sources in order
func (m *MultiChannelManager) GetAllSources() []interfaces.IChannelSource {
	m.mu.RLock()
	defer m.mu.RUnlock()

	list := make([]interfaces.IChannelSource, len(m.Sources))
	copy(list, m.Sources)
	return list
}

// -----------------------------------------------------------------------------

// FetchAll runs every source concurrently. A failing source is logged and
// returns an empty map; the others are unaffected.
func (m *MultiChannelManager) FetchAll(ctx context.Context, endDate time.Time, spanDays int) []ChannelResult {
	sources := m.GetAllSources() // Get snapshot
	results := make([]ChannelResult, len(sources))
	var wg sync.WaitGroup

	for i, src := range sources {
		wg.Add(1)
		go func(i int, s interfaces.IChannelSource) {
			defer wg.Done()
			peaks, stats, err := s.Fetch(ctx, endDate, spanDays)
			if err != nil {
				m.Logger.Error("Channel %s failed: %v", s.Name(), err)
				peaks = make(map[string]models.MDeviceAggregate)
			}
			stats.Channel = s.Name()
			results[i] = ChannelResult{Name: s.Name(), Peaks: peaks, Stats: stats, Err: err}
		}(i, src)
	}
	wg.Wait()
	return results
}
