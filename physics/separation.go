package physics

import "sort"

// bruteForceThreshold is the particle count above which SolveMinDistanceAll
// switches from O(n^2) pairwise checks to the spatial hash.
const bruteForceThreshold = 150

// degenerateDist is the separation below which a pair is left alone; a
// near-coincident pair has no usable push axis.
const degenerateDist = 1e-3

// SolveMinDistanceAll enforces a soft minimum separation between every
// particle pair. Both code paths visit the same pairs in the same order,
// so they produce identical positions for the same configuration.
func SolveMinDistanceAll(particles []Particle, minDist, strength float32) {
	if minDist <= 0 {
		return
	}
	if len(particles) <= bruteForceThreshold {
		solveMinDistanceBrute(particles, minDist, strength)
		return
	}
	solveMinDistanceHashed(particles, minDist, strength)
}

// separatePair pushes two overlapping particles apart along their
// separation axis. The correction is split evenly unless one side is
// pinned, in which case the free side absorbs all of it.
func separatePair(pa, pb *Particle, minDist, strength float32) {
	delta := pb.Position.Sub(pa.Position)
	dist := delta.Length()
	if dist >= minDist || dist <= degenerateDist {
		return
	}
	corr := delta.Scale((minDist - dist) / dist * strength * 0.5)
	switch {
	case pa.Pinned && pb.Pinned:
	case pa.Pinned:
		pb.Position = pb.Position.Add(corr.Scale(2))
	case pb.Pinned:
		pa.Position = pa.Position.Sub(corr.Scale(2))
	default:
		pa.Position = pa.Position.Sub(corr)
		pb.Position = pb.Position.Add(corr)
	}
}

func solveMinDistanceBrute(particles []Particle, minDist, strength float32) {
	for i := 0; i < len(particles); i++ {
		for j := i + 1; j < len(particles); j++ {
			separatePair(&particles[i], &particles[j], minDist, strength)
		}
	}
}

// cellKey packs signed 3D cell coordinates into a map key. 21 bits per
// axis covers any world the simulation operates in.
func cellKey(cx, cy, cz int32) uint64 {
	const mask = (1 << 21) - 1
	return uint64(uint32(cx)&mask) |
		uint64(uint32(cy)&mask)<<21 |
		uint64(uint32(cz)&mask)<<42
}

func solveMinDistanceHashed(particles []Particle, minDist, strength float32) {
	// Cell size of 2*minDist keeps every pair closer than minDist within
	// the 27-cell neighborhood.
	cellSize := 2 * minDist
	inv := 1 / cellSize

	cells := make(map[uint64][]int, len(particles))
	coords := make([][3]int32, len(particles))
	for i := range particles {
		p := particles[i].Position
		c := [3]int32{
			int32(floorf(p.X * inv)),
			int32(floorf(p.Y * inv)),
			int32(floorf(p.Z * inv)),
		}
		coords[i] = c
		key := cellKey(c[0], c[1], c[2])
		cells[key] = append(cells[key], i)
	}

	// For each particle, gather higher-indexed neighbors from the 27
	// surrounding cells and process them in ascending index order. That
	// matches the brute-force pair ordering exactly, which is what makes
	// the two paths numerically equivalent.
	scratch := make([]int, 0, 64)
	for i := range particles {
		c := coords[i]
		scratch = scratch[:0]
		for dz := int32(-1); dz <= 1; dz++ {
			for dy := int32(-1); dy <= 1; dy++ {
				for dx := int32(-1); dx <= 1; dx++ {
					bucket := cells[cellKey(c[0]+dx, c[1]+dy, c[2]+dz)]
					for _, j := range bucket {
						if j <= i {
							continue
						}
						scratch = append(scratch, j)
					}
				}
			}
		}
		sort.Ints(scratch)
		for _, j := range scratch {
			separatePair(&particles[i], &particles[j], minDist, strength)
		}
	}
}

func floorf(v float32) float32 {
	iv := float32(int32(v))
	if v < iv {
		return iv - 1
	}
	return iv
}
