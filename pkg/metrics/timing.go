// Package metrics keeps in-process timing counters for the dashboard's hot
// paths: filtering, view derivation and chart layout.
//
// Collection is on by default and can be turned off with SENTIDASH_METRICS=0.
//
//	func derive() {
//	    defer metrics.Timer(metrics.ViewDerive)()
//	    ...
//	}
package metrics

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync/atomic"
	"time"
)

var enabled atomic.Bool

func init() {
	enabled.Store(os.Getenv("SENTIDASH_METRICS") != "0")
}

// Enabled returns whether metrics collection is enabled.
func Enabled() bool { return enabled.Load() }

// SetEnabled turns collection on or off.
func SetEnabled(e bool) { enabled.Store(e) }

// TimingMetric accumulates durations for one named operation. It is safe for
// concurrent use.
type TimingMetric struct {
	name  string
	count atomic.Int64
	total atomic.Int64
	max   atomic.Int64
	min   atomic.Int64 // 0 until the first sample
}

func newTimingMetric(name string) *TimingMetric {
	return &TimingMetric{name: name}
}

// Record adds one sample.
func (m *TimingMetric) Record(d time.Duration) {
	if !Enabled() {
		return
	}
	ns := d.Nanoseconds()
	m.count.Add(1)
	m.total.Add(ns)

	for {
		old := m.max.Load()
		if ns <= old || m.max.CompareAndSwap(old, ns) {
			break
		}
	}
	for {
		old := m.min.Load()
		if old != 0 && ns >= old {
			break
		}
		if m.min.CompareAndSwap(old, ns) {
			break
		}
	}
}

// Name returns the metric name.
func (m *TimingMetric) Name() string { return m.name }

// Count returns the number of samples.
func (m *TimingMetric) Count() int64 { return m.count.Load() }

// Stats returns a consistent-enough snapshot of the counters.
func (m *TimingMetric) Stats() TimingStats {
	count := m.count.Load()
	total := m.total.Load()
	var avg int64
	if count > 0 {
		avg = total / count
	}
	return TimingStats{
		Name:    m.name,
		Count:   count,
		TotalMs: float64(total) / 1e6,
		AvgMs:   float64(avg) / 1e6,
		MaxMs:   float64(m.max.Load()) / 1e6,
		MinMs:   float64(m.min.Load()) / 1e6,
	}
}

// Reset clears all samples.
func (m *TimingMetric) Reset() {
	m.count.Store(0)
	m.total.Store(0)
	m.max.Store(0)
	m.min.Store(0)
}

// TimingStats is a snapshot of one TimingMetric.
type TimingStats struct {
	Name    string  `json:"name"`
	Count   int64   `json:"count"`
	TotalMs float64 `json:"total_ms"`
	AvgMs   float64 `json:"avg_ms"`
	MaxMs   float64 `json:"max_ms"`
	MinMs   float64 `json:"min_ms,omitempty"`
}

// Timer returns a function that records the time elapsed since Timer was
// called. Use it with defer.
func Timer(m *TimingMetric) func() {
	if !Enabled() || m == nil {
		return func() {}
	}
	start := time.Now()
	return func() { m.Record(time.Since(start)) }
}

// Operations timed by the dashboard.
var (
	AnalystFilter  = newTimingMetric("analyst_filter")
	QuestionFilter = newTimingMetric("question_filter")
	ViewDerive     = newTimingMetric("view_derive")
	ChartLayout    = newTimingMetric("chart_layout")
	DatasetLoad    = newTimingMetric("dataset_load")
	UIRender       = newTimingMetric("ui_render")
)

// AllTimingMetrics returns every registered metric.
func AllTimingMetrics() []*TimingMetric {
	return []*TimingMetric{AnalystFilter, QuestionFilter, ViewDerive, ChartLayout, DatasetLoad, UIRender}
}

// ResetAll resets every registered metric.
func ResetAll() {
	for _, m := range AllTimingMetrics() {
		m.Reset()
	}
}

// AllTimingStats returns stats for the metrics that have samples, sorted by
// total time descending.
func AllTimingStats() []TimingStats {
	all := AllTimingMetrics()
	stats := make([]TimingStats, 0, len(all))
	for _, m := range all {
		if m.Count() > 0 {
			stats = append(stats, m.Stats())
		}
	}
	sort.SliceStable(stats, func(i, j int) bool { return stats[i].TotalMs > stats[j].TotalMs })
	return stats
}

// Summary renders AllTimingStats as aligned text for the debug log.
func Summary() string {
	stats := AllTimingStats()
	if len(stats) == 0 {
		return "no samples"
	}
	var b strings.Builder
	for _, s := range stats {
		fmt.Fprintf(&b, "%-16s n=%-6d avg=%.3fms max=%.3fms total=%.1fms\n",
			s.Name, s.Count, s.AvgMs, s.MaxMs, s.TotalMs)
	}
	return strings.TrimRight(b.String(), "\n")
}
