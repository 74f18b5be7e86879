package clay

import (
	"math"

	"github.com/pthm-cable/clay/physics"
)

// Refine tools and global gestures. Every tool is deterministic: given
// identical particle positions and parameters it produces bit-identical
// output. Each returns whether it moved anything, and raises the blob's
// sculpt flag when it did.

// Stamp rate limits: a new stamp needs both elapsed time and travel
// distance since the previous one, otherwise a held press would re-stamp
// every frame and drift the surface.
const (
	minStampInterval = 0.15 // seconds
	minStampTravel   = 0.08 // world units
)

// stampMemoryCap bounds the rest-position adaptation of a stamp so
// repeated presses cannot run the memory away.
const stampMemoryCap = 0.5

// laplacianWeight is the share of the scrape displacement spent on
// smoothing toward the local neighborhood average.
const laplacianWeight = 0.35

// ApplyScrape drags particles near pos along the stroke direction and
// relaxes them toward their local neighborhood average. Displacement per
// particle is clamped to a fraction of the tool radius.
func (b *Blob) ApplyScrape(pos, dir physics.Vec3, radius, strength float32) bool {
	if radius <= 0 {
		return false
	}
	stroke := dir.Normalized(physics.Vec3{}, vecEps)
	affected, weights := b.collectWithin(pos, radius)
	if len(affected) == 0 {
		return false
	}

	maxDisp := radius * maxPullScale
	// Neighborhood averages over the affected set, captured before any
	// displacement so the pass stays order-independent.
	averages := localAverages(b.particles, affected)

	for k, i := range affected {
		w := weights[k]
		disp := stroke.Scale(strength * w)
		disp = disp.Add(averages[k].Sub(b.particles[i].Position).Scale(laplacianWeight * w))
		if l := disp.Length(); l > maxDisp {
			disp = disp.Scale(maxDisp / l)
		}
		b.particles[i].Position = b.particles[i].Position.Add(disp)
	}
	b.sculpted = true
	return true
}

// ApplyCarve is a scrape with a groove profile on top: material is pushed
// outward radially from the stroke line and pressed inward along the
// stroke direction at the groove center.
func (b *Blob) ApplyCarve(pos, dir physics.Vec3, radius, strength float32) bool {
	if !b.ApplyScrape(pos, dir, radius, strength) {
		return false
	}
	stroke := dir.Normalized(physics.Vec3{}, vecEps)
	affected, weights := b.collectWithin(pos, radius)
	maxDisp := radius * maxPullScale

	for k, i := range affected {
		w := weights[k]
		radial := b.particles[i].Position.Sub(pos)
		// Remove the stroke component so the push is perpendicular to
		// the groove.
		radial = radial.Sub(stroke.Scale(radial.Dot(stroke)))
		radialDir := radial.Normalized(physics.Vec3{}, vecEps)

		disp := radialDir.Scale(strength * 0.5 * w * (1 - w))
		disp = disp.Add(stroke.Scale(-strength * 0.4 * w * w))
		if l := disp.Length(); l > maxDisp {
			disp = disp.Scale(maxDisp / l)
		}
		b.particles[i].Position = b.particles[i].Position.Add(disp)
	}
	return true
}

// ApplyStamp presses a difference-of-Gaussians profile into the surface
// along the press normal: a narrow dimple pushed in, surrounded by a
// broader ridge (20% of the dimple weight) pushed out. Rate-limited by
// time and travel distance; returns false when throttled.
func (b *Blob) ApplyStamp(pos, normal physics.Vec3, radius, strength float32, now float64) bool {
	if radius <= 0 {
		return false
	}
	if b.stamped {
		if now-b.lastStampTime < minStampInterval {
			return false
		}
		if physics.Distance(pos, b.lastStampPos) < minStampTravel {
			return false
		}
	}

	press := normal.Normalized(physics.Vec3{Y: 1}, vecEps)
	dimpleSigma := radius * 0.4
	ridgeSigma := radius * 0.9
	reach := radius * 1.5

	moved := false
	memRate := minf(b.opts.SculptMemoryRate, stampMemoryCap)
	for i := range b.particles {
		d := physics.Distance(b.particles[i].Position, pos)
		if d > reach {
			continue
		}
		dimple := gauss(d, dimpleSigma)
		ridge := gauss(d, ridgeSigma)
		profile := -dimple + 0.2*ridge
		if absf(profile) < 1e-6 {
			continue
		}
		disp := press.Scale(strength * profile)
		b.particles[i].Position = b.particles[i].Position.Add(disp)
		// Set the impression into memory immediately, capped.
		b.restPositions[i] = b.restPositions[i].Lerp(b.particles[i].Position, memRate*dimple)
		moved = true
	}
	if !moved {
		return false
	}

	b.lastStampTime = now
	b.lastStampPos = pos
	b.stamped = true
	b.sculpted = true
	return true
}

// ApplyFlatten projects particles toward the plane through point with
// the given normal, proportional to their signed distance and radial
// falloff from point.
func (b *Blob) ApplyFlatten(point, normal physics.Vec3, radius, strength float32) bool {
	if radius <= 0 {
		return false
	}
	n := normal.Normalized(physics.Vec3{Y: 1}, vecEps)
	moved := false
	for i := range b.particles {
		rel := b.particles[i].Position.Sub(point)
		d := rel.Length()
		if d > radius {
			continue
		}
		w := physics.Smoothstep(radius, 0, d)
		signed := rel.Dot(n)
		b.particles[i].Position = b.particles[i].Position.Sub(n.Scale(signed * strength * w))
		moved = true
	}
	if moved {
		b.sculpted = true
	}
	return moved
}

// ApplyFlattenCarve combines the flatten projection with the carve
// groove profile, for bowl-like cuts into a flattened face.
func (b *Blob) ApplyFlattenCarve(point, normal, dir physics.Vec3, radius, strength float32) bool {
	flattened := b.ApplyFlatten(point, normal, radius, strength)
	carved := b.ApplyCarve(point, dir, radius, strength*0.5)
	return flattened || carved
}

// ApplyFlattenStamp combines the flatten projection with the stamp
// profile, for pressed-seal effects. The stamp half keeps its rate
// limiting; the flatten half always applies.
func (b *Blob) ApplyFlattenStamp(point, normal physics.Vec3, radius, strength float32, now float64) bool {
	flattened := b.ApplyFlatten(point, normal, radius, strength)
	stamped := b.ApplyStamp(point, normal, radius, strength*0.6, now)
	return flattened || stamped
}

// ApplySqueeze scales every particle not held by a pin toward the blob
// center by factor (< 1 compresses, > 1 inflates).
func (b *Blob) ApplySqueeze(factor float32) bool {
	if factor <= 0 || len(b.particles) == 0 {
		return false
	}
	for i := range b.particles {
		if b.held(i) {
			continue
		}
		rel := b.particles[i].Position.Sub(b.center)
		b.particles[i].Position = b.center.Add(rel.Scale(factor))
	}
	b.sculpted = true
	return true
}

// ApplyAttraction pulls particles within radius toward point with
// quadratic falloff. Used for open-hand gathering when no pin is held.
func (b *Blob) ApplyAttraction(point physics.Vec3, radius, strength float32) bool {
	if radius <= 0 {
		return false
	}
	moved := false
	for i := range b.particles {
		toPoint := point.Sub(b.particles[i].Position)
		d := toPoint.Length()
		if d > radius || d < vecEps {
			continue
		}
		falloff := 1 - d/radius
		b.particles[i].Position = b.particles[i].Position.Add(toPoint.Scale(strength * falloff * falloff))
		moved = true
	}
	if moved {
		b.sculpted = true
	}
	return moved
}

// collectWithin gathers particle indices within radius of pos with their
// squared-smoothstep weights.
func (b *Blob) collectWithin(pos physics.Vec3, radius float32) ([]int, []float32) {
	var idx []int
	var weights []float32
	for i := range b.particles {
		d := physics.Distance(b.particles[i].Position, pos)
		if d >= radius {
			continue
		}
		w := physics.Smoothstep(radius, 0, d)
		idx = append(idx, i)
		weights = append(weights, w*w)
	}
	return idx, weights
}

// localAverages returns, for each affected particle, the mean position of
// the other affected particles. With one particle the average is its own
// position.
func localAverages(particles []physics.Particle, affected []int) []physics.Vec3 {
	out := make([]physics.Vec3, len(affected))
	if len(affected) == 1 {
		out[0] = particles[affected[0]].Position
		return out
	}
	var sum physics.Vec3
	for _, i := range affected {
		sum = sum.Add(particles[i].Position)
	}
	inv := 1 / float32(len(affected)-1)
	for k, i := range affected {
		out[k] = sum.Sub(particles[i].Position).Scale(inv)
	}
	return out
}

func gauss(d, sigma float32) float32 {
	if sigma <= 0 {
		return 0
	}
	x := d / sigma
	return float32(math.Exp(float64(-x * x)))
}
