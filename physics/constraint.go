package physics

// DistanceConstraint keeps two particles, referenced by index, at a rest
// length. Constraints hold indices rather than pointers; whoever resizes
// the particle array must purge constraints whose endpoints fall out of
// range (see TrackedSim.Resize).
type DistanceConstraint struct {
	A, B       int
	RestLength float32 // >= 0
	Stiffness  float32 // in [0, 1]
}

// minConstraintLength guards the division in the constraint solve against
// coincident endpoints.
const minConstraintLength = 1e-4

// SolveDistanceConstraint applies one position correction for c. The
// correction of magnitude diff*stiffness*0.5 is split between the
// endpoints in proportion to the other particle's mass; a pinned endpoint
// takes a zero share so the free endpoint absorbs the whole correction.
// Out-of-range indices are a silent no-op.
func SolveDistanceConstraint(particles []Particle, c DistanceConstraint) {
	if c.A < 0 || c.B < 0 || c.A >= len(particles) || c.B >= len(particles) {
		return
	}
	pa := &particles[c.A]
	pb := &particles[c.B]
	if pa.Pinned && pb.Pinned {
		return
	}

	delta := pb.Position.Sub(pa.Position)
	length := delta.Length()
	if length < minConstraintLength {
		return
	}
	diff := (length - c.RestLength) / length

	ratioA := pb.Mass / (pa.Mass + pb.Mass)
	ratioB := 1 - ratioA
	if pa.Pinned {
		ratioA, ratioB = 0, 1
	} else if pb.Pinned {
		ratioA, ratioB = 1, 0
	}

	corr := delta.Scale(diff * c.Stiffness * 0.5)
	pa.Position = pa.Position.Add(corr.Scale(ratioA))
	pb.Position = pb.Position.Sub(corr.Scale(ratioB))
}

// ChainConstraints builds one constraint per consecutive pair in an
// ordered chain of particle indices. Rest lengths are taken from the
// current particle positions.
func ChainConstraints(particles []Particle, indices []int, stiffness float32) []DistanceConstraint {
	if len(indices) < 2 {
		return nil
	}
	out := make([]DistanceConstraint, 0, len(indices)-1)
	for i := 0; i < len(indices)-1; i++ {
		a, b := indices[i], indices[i+1]
		out = append(out, DistanceConstraint{
			A:          a,
			B:          b,
			RestLength: Distance(particles[a].Position, particles[b].Position),
			Stiffness:  stiffness,
		})
	}
	return out
}

// RingConstraints connects each index in a cyclic ring to its k nearest
// cyclic neighbors, producing a mesh-like patch. Each unordered pair is
// emitted once.
func RingConstraints(particles []Particle, indices []int, k int, stiffness float32) []DistanceConstraint {
	n := len(indices)
	if n < 2 || k < 1 {
		return nil
	}
	if k > n/2 {
		k = n / 2
	}
	out := make([]DistanceConstraint, 0, n*k)
	for i := 0; i < n; i++ {
		for j := 1; j <= k; j++ {
			// An even ring's opposite pair would be emitted from both ends.
			if 2*j == n && i >= n/2 {
				continue
			}
			a, b := indices[i], indices[(i+j)%n]
			if a == b {
				continue
			}
			out = append(out, DistanceConstraint{
				A:          a,
				B:          b,
				RestLength: Distance(particles[a].Position, particles[b].Position),
				Stiffness:  stiffness,
			})
		}
	}
	return out
}
