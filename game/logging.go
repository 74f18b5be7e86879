package game

import (
	"fmt"
	"io"
	"time"
)

// logWriter is the destination for log output.
var logWriter io.Writer

// SetLogWriter sets the log output destination.
func SetLogWriter(w io.Writer) {
	logWriter = w
}

// Logf writes a formatted log message.
func Logf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if logWriter != nil {
		fmt.Fprintln(logWriter, msg)
	} else {
		fmt.Println(msg)
	}
}

// logPerfStats logs performance statistics.
func (g *Game) logPerfStats() {
	total := g.perf.Total()
	Logf("=== Perf @ Tick %d ===", g.tick)
	Logf("Total step time: %s", total.Round(time.Microsecond))

	for _, name := range g.perf.SortedNames() {
		avg := g.perf.Avg(name)
		pct := float64(0)
		if total > 0 {
			pct = float64(avg) / float64(total) * 100
		}
		Logf("  %-12s %10s  %5.1f%%", name, avg.Round(time.Microsecond), pct)
	}
	Logf("")
}

// logWorldState logs the current blob state.
func (g *Game) logWorldState() {
	st := g.blob.Stats()

	Logf("=== Tick %d ===", g.tick)
	Logf("Particles: %d, Clusters: %d, Split: %v", st.Particles, st.Clusters, st.Split)
	Logf("Avg speed: %.5f, Rest drift: %.4f", st.AvgSpeed, g.blob.RestDrift())

	left, right := g.blob.PinnedLeft(), g.blob.PinnedRight()
	if left >= 0 || right >= 0 {
		Logf("Pins: left=%d right=%d", left, right)
	}

	cs := g.cursors.Stats()
	Logf("Cursors: %d particles, %d steps run", cs.Particles, cs.StepsRun)
	Logf("")
}
