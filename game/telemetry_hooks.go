package game

import (
	"log/slog"
)

// flushTelemetry emits a stats window when one has elapsed.
func (g *Game) flushTelemetry() {
	if !g.collector.WindowReady(g.tick) {
		return
	}

	stats := g.collector.Flush(g.tick)

	// Fill in topology the collector does not own.
	st := g.blob.Stats()
	stats.Particles = st.Particles
	stats.Clusters = st.Clusters
	stats.Split = st.Split
	stats.RestDriftMean = float64(g.blob.RestDrift())

	if g.logStats {
		g.logWorldState()
		g.logPerfStats()
	}

	if g.output != nil {
		if err := g.output.WriteWindow(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.output.WritePerf(g.perf, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}
