package clay

import "github.com/pthm-cable/clay/physics"

// Shape maintenance: cohesion, surface tension, rest-shape pull and
// center anchoring. All of these run once per substep inside the
// constraint pipeline.

const vecEps = 1e-4

// splitRadiusScale shrinks the effective cohesion radius per cluster
// while the blob is split.
const splitRadiusScale = 0.7

// updateClusters recomputes every cluster's center and particle count
// from the current positions.
func (b *Blob) updateClusters() {
	for c := range b.clusters {
		b.clusters[c].Center = physics.Vec3{}
		b.clusters[c].Count = 0
	}
	for i := range b.particles {
		c := b.clusterIndex(b.clusterIDs[i])
		if c < 0 {
			continue
		}
		b.clusters[c].Center = b.clusters[c].Center.Add(b.particles[i].Position)
		b.clusters[c].Count++
	}
	for c := range b.clusters {
		if b.clusters[c].Count > 0 {
			b.clusters[c].Center = b.clusters[c].Center.Scale(1 / float32(b.clusters[c].Count))
		}
	}
}

// clusterIndex returns the slice index for a cluster id, or -1. The
// cluster list never holds more than a handful of entries.
func (b *Blob) clusterIndex(id int32) int {
	for c := range b.clusters {
		if b.clusters[c].ID == id {
			return c
		}
	}
	return -1
}

// effectiveRadius is the cohesion boundary radius for the current
// topology.
func (b *Blob) effectiveRadius() float32 {
	if b.split {
		return b.opts.BlobRadius * splitRadiusScale
	}
	return b.opts.BlobRadius
}

// applyCohesion pulls any particle beyond its cluster's effective radius
// back toward the boundary, scaled by cohesionStrength*min(1, excess/r).
func (b *Blob) applyCohesion() {
	strength := b.opts.CohesionStrength
	if strength <= 0 {
		return
	}
	radius := b.effectiveRadius()
	for i := range b.particles {
		c := b.clusterIndex(b.clusterIDs[i])
		if c < 0 {
			continue
		}
		delta := b.particles[i].Position.Sub(b.clusters[c].Center)
		dist := delta.Length()
		if dist <= radius || dist < vecEps {
			continue
		}
		excess := dist - radius
		pull := strength * minf(1, excess/radius)
		// Move a fraction of the way back to the boundary point.
		b.particles[i].Position = b.particles[i].Position.Sub(delta.Scale(excess / dist * pull))
	}
}

// applySurfaceTension pulls the outer 30% shell inward with a pull
// quadratic in shell depth. Inner particles are untouched.
func (b *Blob) applySurfaceTension() {
	tension := b.opts.SurfaceTension
	if tension <= 0 {
		return
	}
	radius := b.effectiveRadius()
	shellStart := radius * 0.7
	shellDepthInv := 1 / (radius * 0.3)
	for i := range b.particles {
		c := b.clusterIndex(b.clusterIDs[i])
		if c < 0 {
			continue
		}
		delta := b.particles[i].Position.Sub(b.clusters[c].Center)
		dist := delta.Length()
		if dist <= shellStart || dist < vecEps {
			continue
		}
		depth := (dist - shellStart) * shellDepthInv
		if depth > 1 {
			depth = 1
		}
		pull := tension * depth * depth
		b.particles[i].Position = b.particles[i].Position.Sub(delta.Scale(pull / dist))
	}
}

// applyRestPull pulls every particle a small fixed fraction toward its
// rest position. This is the fast half of the two-speed shape memory:
// sculpted dents persist because the rest shape itself moved.
func (b *Blob) applyRestPull() {
	pull := b.opts.RestPull
	if pull <= 0 {
		return
	}
	for i := range b.particles {
		b.particles[i].Position = b.particles[i].Position.Lerp(b.restPositions[i], pull)
	}
}

// applyAnchoring nudges the global centroid toward the intended center.
// Skipped entirely while split so clusters can separate freely.
func (b *Blob) applyAnchoring() {
	if b.split {
		return
	}
	strength := b.opts.AnchorStrength
	if strength <= 0 {
		return
	}
	shift := b.center.Sub(b.centroid()).Scale(strength)
	if shift.LengthSq() == 0 {
		return
	}
	for i := range b.particles {
		b.particles[i].Position = b.particles[i].Position.Add(shift)
	}
}
