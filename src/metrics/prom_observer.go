package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "fnpeaks"

// Counter names accepted by IncCounter.
var counterNames = []string{
	"directories_missing",
	"directories_scanned",
	"directories_failed",
	"files_read",
	"files_failed",
	"lines_parsed",
	"lines_skipped",
}

// -----------------------------------------------------------------------------

// PromObserver exports pipeline counters as Prometheus collectors.
type PromObserver struct {
	counters map[string]*prometheus.CounterVec
	runs     prometheus.Histogram
	devices  prometheus.Gauge
}

// -----------------------------------------------------------------------------

// NewPromObserver registers its collectors on reg.
func NewPromObserver(reg prometheus.Registerer) *PromObserver {
	p := &PromObserver{counters: make(map[string]*prometheus.CounterVec, len(counterNames))}

	for _, name := range counterNames {
		c := prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      name + "_total",
			Help:      "Aggregation pipeline " + name + " per channel.",
		}, []string{"channel"})
		p.counters[name] = c
		reg.MustRegister(c)
	}

	p.runs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "run_duration_seconds",
		Help:      "Wall-clock duration of one peak report.",
		Buckets:   prometheus.ExponentialBuckets(0.005, 2, 14),
	})
	p.devices = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "devices",
		Help:      "Devices in the latest merged report.",
	})
	reg.MustRegister(p.runs, p.devices)

	return p
}

// -----------------------------------------------------------------------------

func (p *PromObserver) IncCounter(name, channel string, delta float64) {
	if c, ok := p.counters[name]; ok && delta > 0 {
		c.WithLabelValues(channel).Add(delta)
	}
}

// -----------------------------------------------------------------------------

func (p *PromObserver) ObserveRun(d time.Duration) {
	p.runs.Observe(d.Seconds())
}

// -----------------------------------------------------------------------------

func (p *PromObserver) SetDevices(n int) {
	p.devices.Set(float64(n))
}

// -----------------------------------------------------------------------------

// NopObserver discards everything.
type NopObserver struct{}

func (NopObserver) IncCounter(string, string, float64) {}
func (NopObserver) ObserveRun(time.Duration)           {}
func (NopObserver) SetDevices(int)                     {}
