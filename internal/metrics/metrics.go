// Package metrics tracks run statistics for cbb-gamelogs.
//
// Counters track incrementing values (pages fetched, games skipped), gauges
// track point-in-time values (rows emitted) and timings track durations. All
// of them live in a private Prometheus registry so a finished run can be
// written out for a node-exporter textfile collector.
package metrics

import (
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

const namespace = "cbb"

// Metrics tracks operational metrics. All operations are thread-safe.
type Metrics struct {
	mu       sync.Mutex
	registry *prometheus.Registry
	counters map[string]prometheus.Counter
	gauges   map[string]prometheus.Gauge
	timings  map[string]prometheus.Summary
}

var defaultMetrics = New()

// New creates an empty tracker with its own registry.
func New() *Metrics {
	return &Metrics{
		registry: prometheus.NewRegistry(),
		counters: make(map[string]prometheus.Counter),
		gauges:   make(map[string]prometheus.Gauge),
		timings:  make(map[string]prometheus.Summary),
	}
}

// Default returns the process-wide tracker.
func Default() *Metrics {
	return defaultMetrics
}

// metricName turns "scraper.pages_fetched" into "cbb_scraper_pages_fetched".
func metricName(name string) string {
	r := strings.NewReplacer(".", "_", "-", "_", " ", "_")
	return namespace + "_" + r.Replace(name)
}

// IncrCounter increments a counter by 1, creating it on first use.
func (m *Metrics) IncrCounter(name string) {
	m.AddCounter(name, 1)
}

// AddCounter adds delta to a counter, creating it on first use.
func (m *Metrics) AddCounter(name string, delta float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.counters[name]
	if !ok {
		c = prometheus.NewCounter(prometheus.CounterOpts{Name: metricName(name) + "_total", Help: name})
		m.registry.MustRegister(c)
		m.counters[name] = c
	}
	c.Add(delta)
}

// SetGauge sets a gauge, overwriting any previous value.
func (m *Metrics) SetGauge(name string, value float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	g, ok := m.gauges[name]
	if !ok {
		g = prometheus.NewGauge(prometheus.GaugeOpts{Name: metricName(name), Help: name})
		m.registry.MustRegister(g)
		m.gauges[name] = g
	}
	g.Set(value)
}

// RecordTiming observes a duration in seconds.
func (m *Metrics) RecordTiming(name string, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.timings[name]
	if !ok {
		s = prometheus.NewSummary(prometheus.SummaryOpts{
			Name:       metricName(name) + "_seconds",
			Help:       name,
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		})
		m.registry.MustRegister(s)
		m.timings[name] = s
	}
	s.Observe(duration.Seconds())
}

// Snapshot is a point-in-time copy of every metric, keyed by the names the
// caller used.
type Snapshot struct {
	Counters map[string]float64
	Gauges   map[string]float64
	Timings  map[string]TimingStats
}

// TimingStats summarizes the observations of one timing.
type TimingStats struct {
	Count uint64
	Total time.Duration
}

// Average is zero when nothing was observed.
func (t TimingStats) Average() time.Duration {
	if t.Count == 0 {
		return 0
	}
	return t.Total / time.Duration(t.Count)
}

// GetSnapshot returns a copy of all metrics, safe to use while updates continue.
func (m *Metrics) GetSnapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := Snapshot{
		Counters: make(map[string]float64, len(m.counters)),
		Gauges:   make(map[string]float64, len(m.gauges)),
		Timings:  make(map[string]TimingStats, len(m.timings)),
	}

	var pb dto.Metric
	for name, c := range m.counters {
		pb.Reset()
		if err := c.Write(&pb); err == nil {
			snap.Counters[name] = pb.GetCounter().GetValue()
		}
	}
	for name, g := range m.gauges {
		pb.Reset()
		if err := g.Write(&pb); err == nil {
			snap.Gauges[name] = pb.GetGauge().GetValue()
		}
	}
	for name, s := range m.timings {
		pb.Reset()
		if err := s.Write(&pb); err == nil {
			sum := pb.GetSummary()
			snap.Timings[name] = TimingStats{
				Count: sum.GetSampleCount(),
				Total: time.Duration(sum.GetSampleSum() * float64(time.Second)),
			}
		}
	}

	return snap
}

// WriteTextfile writes every metric in the Prometheus text format. The file is
// written atomically.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
