package clay

import "github.com/pthm-cable/clay/physics"

// Two-handed stretch and the split/merge topology state machine.

// neighborBoost is the extra stretch influence for particles inside the
// cached influence region of either grab.
const neighborBoost = 1.5

// applyTwoHandSculpt stretches (or compresses) the material between two
// held pins along the inter-pin axis, proportional to how much the pin
// separation changed since the previous frame.
func (b *Blob) applyTwoHandSculpt() {
	lp, rp := b.pins[left], b.pins[right]
	if lp == nil || rp == nil || lp.Sculpt == nil || rp.Sculpt == nil {
		return
	}

	axisVec := rp.Target.Sub(lp.Target)
	dist := axisVec.Length()
	prevDist := rp.Sculpt.PrevTarget.Sub(lp.Sculpt.PrevTarget).Length()
	if dist < vecEps || prevDist < vecEps {
		return
	}
	stretch := dist / prevDist
	if absf(stretch-1) < 1e-5 {
		return
	}

	axis := axisVec.Scale(1 / dist)
	mid := lp.Target.Add(rp.Target).Scale(0.5)

	// Influence region: a capsule around the inter-pin axis. Axial reach
	// covers the segment plus one sculpt radius on either end; the
	// perpendicular falloff band is one sculpt radius wide.
	axialReach := dist*0.5 + b.opts.SculptRadius
	band := b.opts.SculptRadius
	if band < vecEps {
		return
	}

	boosted := b.neighborSet()
	maxDisp := b.opts.SculptRadius * maxPullScale

	for i := range b.particles {
		rel := b.particles[i].Position.Sub(mid)
		proj := rel.Dot(axis)
		if absf(proj) > axialReach {
			continue
		}
		perp := rel.Sub(axis.Scale(proj)).Length()
		influence := 1 - clamp01(perp/band)
		if influence <= 0 {
			continue
		}
		boost := float32(1)
		if boosted[i] {
			boost = neighborBoost
		}
		disp := axis.Scale((stretch - 1) * proj * influence * b.opts.SculptStrength * boost)
		if l := disp.Length(); l > maxDisp {
			disp = disp.Scale(maxDisp / l)
		}
		b.particles[i].Position = b.particles[i].Position.Add(disp)
	}
	b.sculpted = true
}

// neighborSet builds a lookup of particles cached in either grab's
// influence region.
func (b *Blob) neighborSet() map[int]bool {
	set := make(map[int]bool)
	for h := range b.pins {
		pin := b.pins[h]
		if pin == nil || pin.Sculpt == nil {
			continue
		}
		for _, j := range pin.Sculpt.Neighbors {
			set[j] = true
		}
	}
	return set
}

// CheckAndApplySplit splits the blob into two clusters when both hands
// hold pins separated by more than the split distance. Particles are
// assigned by which side of the plane through the pin midpoint they fall
// on (plane normal = unit inter-pin vector). Returns true exactly once
// per transition; while already split it returns false.
func (b *Blob) CheckAndApplySplit() bool {
	if b.split {
		return false
	}
	lp, rp := b.pins[left], b.pins[right]
	if lp == nil || rp == nil {
		return false
	}
	axisVec := rp.Target.Sub(lp.Target)
	dist := axisVec.Length()
	if dist <= b.opts.SplitDistance || dist < vecEps {
		return false
	}

	normal := axisVec.Scale(1 / dist)
	mid := lp.Target.Add(rp.Target).Scale(0.5)

	idA := b.nextClusterID
	idB := b.nextClusterID + 1
	b.nextClusterID += 2

	for i := range b.particles {
		if b.particles[i].Position.Sub(mid).Dot(normal) >= 0 {
			b.clusterIDs[i] = idB
		} else {
			b.clusterIDs[i] = idA
		}
	}

	b.clusters = []Cluster{{ID: idA}, {ID: idB}}
	b.split = true
	b.updateClusters()
	return true
}

// CheckAndApplyMerge re-merges a split blob once its cluster centers come
// within the merge distance. Returns true when the merge fired.
func (b *Blob) CheckAndApplyMerge() bool {
	if !b.split || len(b.clusters) < 2 {
		return false
	}
	d := physics.Distance(b.clusters[0].Center, b.clusters[1].Center)
	if d >= b.opts.MergeDistance {
		return false
	}
	b.mergeAll()
	return true
}

// ForceMerge collapses a split blob back to a single cluster regardless
// of distance. Idempotent: returns false when the blob is not split.
func (b *Blob) ForceMerge() bool {
	if !b.split {
		return false
	}
	b.mergeAll()
	return true
}

func (b *Blob) mergeAll() {
	for i := range b.clusterIDs {
		b.clusterIDs[i] = 0
	}
	b.clusters = []Cluster{{ID: 0}}
	b.split = false
	b.updateClusters()
}

// Clusters returns a copy of the active cluster list.
func (b *Blob) Clusters() []Cluster {
	out := make([]Cluster, len(b.clusters))
	copy(out, b.clusters)
	return out
}

// ClusterID returns the cluster id of particle i, or -1 for an invalid
// index.
func (b *Blob) ClusterID(i int) int32 {
	if i < 0 || i >= len(b.clusterIDs) {
		return -1
	}
	return b.clusterIDs[i]
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
