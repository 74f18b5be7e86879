package game

import (
	"math"

	"github.com/pthm-cable/clay/clay"
	"github.com/pthm-cable/clay/physics"
	"github.com/pthm-cable/clay/pose"
)

// ScriptPeriod is the length of one scripted gesture cycle in seconds.
// Exported so tooling that scores headless runs can align samples with
// the script's phases.
const ScriptPeriod = 12.0

// gestureScript synthesizes a deterministic hand session for headless
// runs: drag, recover, two-hand stretch to split, release to merge,
// then knead with a fist. Gives benchmarks and parameter sweeps a
// workload that exercises the same paths as live tracking.
type gestureScript struct {
	radius    float32
	splitDist float32
}

func newGestureScript(opts clay.Options) *gestureScript {
	return &gestureScript{
		radius:    opts.BlobRadius,
		splitDist: opts.SplitDistance,
	}
}

// Frame returns the scripted frame at simulation time t.
func (s *gestureScript) Frame(t float64) pose.Frame {
	phase := math.Mod(t, ScriptPeriod)
	f := pose.Frame{Time: t}

	switch {
	case phase < 3:
		// Orbiting drag on the surface.
		angle := phase * 1.5
		p := physics.Vec3{
			X: s.radius * 0.9 * float32(math.Cos(angle)),
			Y: s.radius * 0.3 * float32(math.Sin(angle*0.7)),
			Z: s.radius * 0.9 * float32(math.Sin(angle)),
		}
		f.Right = scriptHand(p, 1, 0)

	case phase < 5:
		// Hands off, let the shape recover.

	case phase < 8:
		// Two-hand stretch, far enough to tear.
		pull := float32((phase - 5) / 3)
		reach := s.radius*0.8 + pull*s.splitDist*0.7
		f.Left = scriptHand(physics.Vec3{X: -reach}, 1, 0)
		f.Right = scriptHand(physics.Vec3{X: reach}, 1, 0)

	case phase < 10:
		// Release, clusters drift back and merge.

	default:
		// Fist hovering above, drawing material upward.
		f.Right = scriptHand(physics.Vec3{Y: s.radius * 1.2}, 0, 1)
	}

	return f
}

// scriptHand builds a hand whose landmarks sit in a small fixed spread
// around the pinch point.
func scriptHand(pinch physics.Vec3, pinchStrength, grabStrength float32) *pose.Hand {
	h := &pose.Hand{
		PinchPoint:    pinch,
		PinchStrength: pinchStrength,
		GrabStrength:  grabStrength,
	}
	for i := range h.Landmarks {
		fi := float32(i)
		h.Landmarks[i] = pinch.Add(physics.Vec3{
			X: 0.02 * cosf(fi*2.4),
			Y: 0.015 * fi / pose.NumLandmarks,
			Z: 0.02 * sinf(fi*2.4),
		})
	}
	return h
}

func cosf(x float32) float32 { return float32(math.Cos(float64(x))) }
func sinf(x float32) float32 { return float32(math.Sin(float64(x))) }
