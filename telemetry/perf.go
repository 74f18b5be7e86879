package telemetry

import (
	"sort"
	"time"
)

// Phase names for the simulation step.
const (
	PhaseBlob      = "blob"
	PhaseTracked   = "tracked"
	PhaseGestures  = "gestures"
	PhaseTelemetry = "telemetry"
	PhaseRender    = "render"
)

// PerfSample holds timing data for a single tick.
type PerfSample struct {
	TickDuration time.Duration
	Phases       map[string]time.Duration
}

// PerfCollector tracks performance metrics over a rolling window.
type PerfCollector struct {
	windowSize    int
	samples       []PerfSample
	writeIndex    int
	sampleCount   int
	currentPhases map[string]time.Duration
	tickStart     time.Time
	phaseStart    time.Time
	lastPhase     string
}

// NewPerfCollector creates a new performance collector.
// windowSize: number of ticks to average over (e.g. 60 for 1 second at
// 60fps).
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		windowSize:    windowSize,
		samples:       make([]PerfSample, windowSize),
		currentPhases: make(map[string]time.Duration),
	}
}

// StartTick begins timing a new simulation tick.
func (p *PerfCollector) StartTick() {
	p.tickStart = time.Now()
	p.currentPhases = make(map[string]time.Duration)
	p.lastPhase = ""
}

// StartPhase begins timing a specific phase, ending the previous one.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.lastPhase = phase
}

// EndTick finishes timing the current tick and records the sample.
func (p *PerfCollector) EndTick() {
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}

	p.samples[p.writeIndex] = PerfSample{
		TickDuration: now.Sub(p.tickStart),
		Phases:       p.currentPhases,
	}
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
}

// Total returns the average total tick duration over the window.
func (p *PerfCollector) Total() time.Duration {
	if p.sampleCount == 0 {
		return 0
	}
	var sum time.Duration
	for i := 0; i < p.sampleCount; i++ {
		sum += p.samples[i].TickDuration
	}
	return sum / time.Duration(p.sampleCount)
}

// Avg returns the average duration of one phase over the window.
func (p *PerfCollector) Avg(phase string) time.Duration {
	if p.sampleCount == 0 {
		return 0
	}
	var sum time.Duration
	for i := 0; i < p.sampleCount; i++ {
		sum += p.samples[i].Phases[phase]
	}
	return sum / time.Duration(p.sampleCount)
}

// SortedNames returns all phase names seen in the window, sorted.
func (p *PerfCollector) SortedNames() []string {
	seen := make(map[string]bool)
	for i := 0; i < p.sampleCount; i++ {
		for name := range p.samples[i].Phases {
			seen[name] = true
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PerfStatsCSV is one perf record for CSV output.
type PerfStatsCSV struct {
	WindowEnd   int32   `csv:"window_end"`
	TotalUs     int64   `csv:"total_us"`
	BlobUs      int64   `csv:"blob_us"`
	TrackedUs   int64   `csv:"tracked_us"`
	GesturesUs  int64   `csv:"gestures_us"`
	TelemetryUs int64   `csv:"telemetry_us"`
	RenderUs    int64   `csv:"render_us"`
	BlobPct     float64 `csv:"blob_pct"`
}

// ToCSV snapshots the rolling averages into a CSV record.
func (p *PerfCollector) ToCSV(windowEnd int32) PerfStatsCSV {
	total := p.Total()
	rec := PerfStatsCSV{
		WindowEnd:   windowEnd,
		TotalUs:     total.Microseconds(),
		BlobUs:      p.Avg(PhaseBlob).Microseconds(),
		TrackedUs:   p.Avg(PhaseTracked).Microseconds(),
		GesturesUs:  p.Avg(PhaseGestures).Microseconds(),
		TelemetryUs: p.Avg(PhaseTelemetry).Microseconds(),
		RenderUs:    p.Avg(PhaseRender).Microseconds(),
	}
	if total > 0 {
		rec.BlobPct = float64(p.Avg(PhaseBlob)) / float64(total) * 100
	}
	return rec
}
