// Package telemetry aggregates per-frame simulation statistics into
// windows and writes them to CSV for offline analysis.
package telemetry

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for one stats window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Topology at window end
	Particles int  `csv:"particles"`
	Clusters  int  `csv:"clusters"`
	Split     bool `csv:"split"`

	// Events during window
	Sculpts int `csv:"sculpts"`
	Splits  int `csv:"splits"`
	Merges  int `csv:"merges"`
	Grabs   int `csv:"grabs"`

	// Motion distribution (per-frame average speeds sampled over the
	// window)
	SpeedMean float64 `csv:"speed_mean"`
	SpeedStd  float64 `csv:"speed_std"`
	SpeedP50  float64 `csv:"speed_p50"`
	SpeedP90  float64 `csv:"speed_p90"`

	// Shape-memory drift: mean distance between current and rest
	// positions at window end.
	RestDriftMean float64 `csv:"rest_drift_mean"`
}

// ComputeSpeedStats calculates mean, standard deviation and percentiles
// from a window of speed samples.
func ComputeSpeedStats(values []float64) (mean, std, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0
	}
	mean = stat.Mean(values, nil)
	if len(values) > 1 {
		std = stat.StdDev(values, nil)
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	p50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)
	return mean, std, p50, p90
}

// Collector accumulates events within time windows and produces
// WindowStats.
type Collector struct {
	windowDurationTicks int32
	dt                  float32

	windowStartTick int32

	sculpts int
	splits  int
	merges  int
	grabs   int

	speedSamples []float64
}

// NewCollector creates a stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds.
// dt: seconds per tick.
func NewCollector(windowDurationSec float64, dt float32) *Collector {
	ticksPerWindow := int32(windowDurationSec / float64(dt))
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}
	return &Collector{
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// RecordSculpt records a tool application.
func (c *Collector) RecordSculpt() { c.sculpts++ }

// RecordSplit records a blob split.
func (c *Collector) RecordSplit() { c.splits++ }

// RecordMerge records a cluster merge.
func (c *Collector) RecordMerge() { c.merges++ }

// RecordGrab records a pin grab.
func (c *Collector) RecordGrab() { c.grabs++ }

// RecordFrame records the per-frame average speed sample.
func (c *Collector) RecordFrame(avgSpeed float32) {
	c.speedSamples = append(c.speedSamples, float64(avgSpeed))
}

// WindowReady reports whether the current window has elapsed at tick.
func (c *Collector) WindowReady(tick int32) bool {
	return tick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces the stats for the elapsed window and starts a new one.
// The caller fills in topology fields it owns (particles, clusters,
// split state, rest drift).
func (c *Collector) Flush(tick int32) WindowStats {
	mean, std, p50, p90 := ComputeSpeedStats(c.speedSamples)
	ws := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   tick,
		SimTimeSec:      float64(tick) * float64(c.dt),
		Sculpts:         c.sculpts,
		Splits:          c.splits,
		Merges:          c.merges,
		Grabs:           c.grabs,
		SpeedMean:       mean,
		SpeedStd:        std,
		SpeedP50:        p50,
		SpeedP90:        p90,
	}

	c.windowStartTick = tick
	c.sculpts = 0
	c.splits = 0
	c.merges = 0
	c.grabs = 0
	c.speedSamples = c.speedSamples[:0]
	return ws
}
