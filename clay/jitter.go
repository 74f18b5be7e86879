package clay

import "github.com/pthm-cable/clay/physics"

// Organic jitter: deterministic low-frequency noise that makes idle
// regions "breathe". Built from three phase-shifted sine harmonics seeded
// by particle index, so it needs no RNG state and replays identically for
// the same time values.

// pinnedJitterScale damps jitter on grabbed particles so held regions
// feel stable under the hand.
const pinnedJitterScale = 0.1

// applyJitter runs after the constraint pipeline so the offsets are not
// solved away within the same frame.
func (b *Blob) applyJitter(now float64) {
	amp := b.opts.JitterAmplitude
	if amp <= 0 {
		return
	}
	t := float32(now) * b.opts.JitterSpeed
	for i := range b.particles {
		a := amp
		if b.held(i) {
			a *= pinnedJitterScale
		}
		b.particles[i].Position = b.particles[i].Position.Add(jitterOffset(i, t).Scale(a))
	}
}

// jitterOffset evaluates the per-particle harmonic field at time t. The
// phases are derived from the particle index so neighbors drift out of
// sync instead of pulsing together.
func jitterOffset(i int, t float32) physics.Vec3 {
	p1 := float32(i) * 1.7
	p2 := float32(i) * 2.9
	p3 := float32(i) * 0.61
	return physics.Vec3{
		X: sinf(t+p1)*0.5 + sinf(t*2.3+p2)*0.3 + sinf(t*4.1+p3)*0.2,
		Y: sinf(t*1.1+p2)*0.5 + sinf(t*2.7+p3)*0.3 + sinf(t*3.7+p1)*0.2,
		Z: sinf(t*0.9+p3)*0.5 + sinf(t*2.1+p1)*0.3 + sinf(t*4.3+p2)*0.2,
	}
}
