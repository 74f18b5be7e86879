// Package game wires the clay blob, the hand cursor swarm, gesture
// mapping, telemetry and rendering into an interactive session.
package game

import (
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/clay/clay"
	"github.com/pthm-cable/clay/config"
	"github.com/pthm-cable/clay/physics"
	"github.com/pthm-cable/clay/pose"
	"github.com/pthm-cable/clay/telemetry"
	"github.com/pthm-cable/clay/ui"
)

// cursorsPerHand is the particle count of the cursor swarm per hand,
// one per tracked landmark.
const cursorsPerHand = pose.NumLandmarks

// Options configures game creation.
type Options struct {
	Seed           int64
	LogStats       bool
	StatsWindowSec float64
	OutputDir      string
	Headless       bool
	StepsPerUpdate int
}

// Game holds the complete session state.
type Game struct {
	blob    *clay.Blob
	cursors *physics.TrackedSim

	gestures gestureMapper
	script   *gestureScript
	tool     Tool

	camera rl.Camera3D
	panel  *ui.TuningPanel

	perf      *telemetry.PerfCollector
	collector *telemetry.Collector
	output    *telemetry.OutputManager

	rng     *rand.Rand
	rngSeed int64

	tick           int32
	prevClusters   int
	paused         bool
	stepsPerUpdate int
	logStats       bool
	simTime        float64
	dt             float32
}

// NewGame creates a game with default options.
func NewGame() *Game {
	return NewGameWithOptions(Options{Seed: 42, StepsPerUpdate: 1})
}

// NewGameWithOptions creates a game instance from explicit options.
func NewGameWithOptions(opts Options) *Game {
	cfg := config.Cfg()

	blobOpts := cfg.BlobOptions()
	blob := clay.NewBlob(physics.Vec3{}, blobOpts)

	cursors := physics.NewTrackedSim(2*cursorsPerHand, cfg.TrackedOptions())

	stepsPerUpdate := opts.StepsPerUpdate
	if stepsPerUpdate < 1 {
		stepsPerUpdate = 1
	}
	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}

	g := &Game{
		blob:           blob,
		cursors:        cursors,
		gestures:       newGestureMapper(cfg.Gestures),
		tool:           ToolGrab,
		rng:            rand.New(rand.NewSource(opts.Seed)),
		rngSeed:        opts.Seed,
		stepsPerUpdate: stepsPerUpdate,
		logStats:       opts.LogStats,
		dt:             float32(cfg.Blob.Timestep),
		perf:           telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		collector:      telemetry.NewCollector(statsWindow, float32(cfg.Blob.Timestep)),
	}

	if opts.Headless {
		g.script = newGestureScript(blobOpts)
	} else {
		g.camera = rl.Camera3D{
			Position:   rl.Vector3{X: 0, Y: 1.5, Z: 4},
			Target:     rl.Vector3{X: 0, Y: 0, Z: 0},
			Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
			Fovy:       45,
			Projection: rl.CameraPerspective,
		}
		g.panel = ui.NewTuningPanel(10, 10, 260, blobOpts)
	}

	if opts.OutputDir != "" {
		om, err := telemetry.NewOutputManager(opts.OutputDir)
		if err != nil {
			Logf("telemetry output disabled: %v", err)
		} else {
			g.output = om
			if err := om.WriteConfig(cfg); err != nil {
				Logf("failed to write config snapshot: %v", err)
			}
		}
	}

	return g
}

// Update runs one display frame: input, gestures and simulation.
func (g *Game) Update() {
	g.handleInput()

	if g.paused {
		return
	}

	frame := g.sampleInputFrame()
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.simulationStep(frame)
	}
}

// UpdateHeadless runs simulation steps driven by the scripted gesture
// sequence, without touching raylib.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		frame := g.script.Frame(g.simTime)
		g.simulationStep(frame)
	}
}

// simulationStep advances the world by one fixed tick.
func (g *Game) simulationStep(frame pose.Frame) {
	g.perf.StartTick()

	g.perf.StartPhase(telemetry.PhaseGestures)
	g.gestures.Apply(g, frame)

	g.perf.StartPhase(telemetry.PhaseTracked)
	g.updateCursors(frame)
	g.cursors.Step(g.dt)

	g.perf.StartPhase(telemetry.PhaseBlob)
	g.blob.Step(g.dt, g.simTime)

	// Clusters rejoining shows up as a drop in the live cluster count.
	clusters := g.blob.ClusterCount()
	if clusters < g.prevClusters {
		g.collector.RecordMerge()
	}
	g.prevClusters = clusters

	g.perf.StartPhase(telemetry.PhaseTelemetry)
	g.collector.RecordFrame(g.blob.Stats().AvgSpeed)
	g.flushTelemetry()

	g.perf.EndTick()

	g.tick++
	g.simTime += float64(g.dt)
}

// updateCursors feeds hand landmarks to the cursor swarm. Absent hands
// contribute no targets, so the swarm shrinks its pairing naturally.
func (g *Game) updateCursors(frame pose.Frame) {
	targets := make([]physics.Vec3, 0, 2*cursorsPerHand)
	if frame.Left != nil {
		targets = append(targets, frame.Left.Landmarks[:]...)
	}
	if frame.Right != nil {
		targets = append(targets, frame.Right.Landmarks[:]...)
	}
	g.cursors.UpdateTargets(targets)
}

// Blob exposes the simulated blob, for tooling and tests.
func (g *Game) Blob() *clay.Blob { return g.blob }

// Tick returns the current simulation tick.
func (g *Game) Tick() int32 { return g.tick }

// Unload releases resources and flushes telemetry output.
func (g *Game) Unload() {
	if g.output != nil {
		if err := g.output.Close(); err != nil {
			Logf("failed to close telemetry output: %v", err)
		}
	}
}
