package aggregation

import (
	"bufio"
	"io"
	"strings"

	"fn-peaks/src/interfaces"
	"fn-peaks/src/models"

	"golang.org/x/sync/errgroup"
)

// -----------------------------------------------------------------------------

// Engine folds the log files of a list of day directories into per-device peaks.
type Engine struct {
	Store    interfaces.IDirectoryStore
	Logger   interfaces.ILogger
	Observer interfaces.IObserver // optional
	Workers  int
}

// -----------------------------------------------------------------------------

func NewEngine(store interfaces.IDirectoryStore, log interfaces.ILogger, obs interfaces.IObserver, workers int) *Engine {
	if workers < 1 {
		workers = 1
	}
	return &Engine{Store: store, Logger: log, Observer: obs, Workers: workers}
}

// -----------------------------------------------------------------------------

// dirResult is the fold of one directory.
type dirResult struct {
	peaks map[string]models.MDeviceAggregate
	stats models.MChannelStats
}

// -----------------------------------------------------------------------------

// Aggregate returns the peak and first-seen name of every device found in dirs.
func (e *Engine) Aggregate(dirs []string, channel string) map[string]models.MDeviceAggregate {
	peaks, _ := e.AggregateWithStats(dirs, channel)
	return peaks
}

// -----------------------------------------------------------------------------

// AggregateWithStats is Aggregate plus processing counters. Directories may be
// folded concurrently, but results are reduced in directory order so the
// recorded names match a sequential run.
func (e *Engine) AggregateWithStats(dirs []string, channel string) (map[string]models.MDeviceAggregate, models.MChannelStats) {
	results := make([]dirResult, len(dirs))

	if e.Workers <= 1 || len(dirs) < 2 {
		for i, dir := range dirs {
			results[i] = e.processDir(dir)
		}
	} else {
		var g errgroup.Group
		g.SetLimit(e.Workers)
		for i, dir := range dirs {
			g.Go(func() error {
				results[i] = e.processDir(dir)
				return nil
			})
		}
		_ = g.Wait()
	}

	peaks := make(map[string]models.MDeviceAggregate)
	stats := models.MChannelStats{Channel: channel}
	for _, r := range results {
		reduce(peaks, r.peaks)
		stats.Add(r.stats)
	}
	stats.Devices = len(peaks)

	e.observe(stats)
	return peaks, stats
}

// -----------------------------------------------------------------------------

func (e *Engine) processDir(dir string) dirResult {
	res := dirResult{peaks: make(map[string]models.MDeviceAggregate)}

	files, err := e.Store.ListFiles(dir)
	if err != nil {
		e.Logger.Warning("Could not process path %s. Error: %v", dir, err)
		res.stats.DirectoriesFailed++
		return res
	}
	res.stats.DirectoriesScanned++

	for _, file := range files {
		peaks, parsed, skipped, err := e.readFile(file)
		if err != nil {
			e.Logger.Warning("Could not process path %s. Error: %v", file, err)
			res.stats.FilesFailed++
			continue
		}
		reduce(res.peaks, peaks)
		res.stats.FilesRead++
		res.stats.LinesParsed += parsed
		res.stats.LinesSkipped += skipped
	}
	return res
}

// -----------------------------------------------------------------------------

// readFile folds one file. On error the partial fold is discarded.
func (e *Engine) readFile(path string) (map[string]models.MDeviceAggregate, int, int, error) {
	rc, err := e.Store.Open(path)
	if err != nil {
		return nil, 0, 0, err
	}
	defer rc.Close()

	peaks := make(map[string]models.MDeviceAggregate)
	parsed, skipped := 0, 0
	reader := bufio.NewReader(rc)

	for {
		line, readErr := reader.ReadString('\n')
		if line != "" {
			line = strings.TrimRight(line, "\r\n")
			if sample, ok := ParseLine(line); ok {
				fold(peaks, sample)
				parsed++
			} else {
				skipped++
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return nil, 0, 0, readErr
		}
	}
	return peaks, parsed, skipped, nil
}

// -----------------------------------------------------------------------------

// fold applies one sample: first sighting sets the name, later ones only raise the peak.
func fold(peaks map[string]models.MDeviceAggregate, s models.MDeviceSample) {
	current, ok := peaks[s.DeviceID]
	if !ok {
		peaks[s.DeviceID] = models.MDeviceAggregate{Name: s.Name, Peak: s.Value}
		return
	}
	if s.Value > current.Peak {
		current.Peak = s.Value
		peaks[s.DeviceID] = current
	}
}

// -----------------------------------------------------------------------------

// reduce merges a later partial into acc, keeping acc's names.
func reduce(acc, later map[string]models.MDeviceAggregate) {
	for id, agg := range later {
		fold(acc, models.MDeviceSample{DeviceID: id, Name: agg.Name, Value: agg.Peak})
	}
}

// -----------------------------------------------------------------------------

func (e *Engine) observe(s models.MChannelStats) {
	if e.Observer == nil {
		return
	}
	ch := s.Channel
	e.Observer.IncCounter("directories_scanned", ch, float64(s.DirectoriesScanned))
	e.Observer.IncCounter("directories_failed", ch, float64(s.DirectoriesFailed))
	e.Observer.IncCounter("files_read", ch, float64(s.FilesRead))
	e.Observer.IncCounter("files_failed", ch, float64(s.FilesFailed))
	e.Observer.IncCounter("lines_parsed", ch, float64(s.LinesParsed))
	e.Observer.IncCounter("lines_skipped", ch, float64(s.LinesSkipped))
}
