package physics

import (
	"math"
	"testing"
)

func pairAt(a, b Vec3) []Particle {
	return []Particle{
		NewParticle(a, ParticleOptions{}),
		NewParticle(b, ParticleOptions{}),
	}
}

// ---------- SolveDistanceConstraint ----------

func TestSolveDistanceConstraint_Converges(t *testing.T) {
	particles := pairAt(Vec3{}, Vec3{X: 2})
	c := DistanceConstraint{A: 0, B: 1, RestLength: 1, Stiffness: 1}

	for i := 0; i < 50; i++ {
		SolveDistanceConstraint(particles, c)
	}

	got := Distance(particles[0].Position, particles[1].Position)
	if math.Abs(float64(got-1)) > 1e-3 {
		t.Errorf("expected separation ~1 after 50 iterations, got %f", got)
	}
}

func TestSolveDistanceConstraint_SymmetricSplit(t *testing.T) {
	particles := pairAt(Vec3{}, Vec3{X: 2})
	c := DistanceConstraint{A: 0, B: 1, RestLength: 1, Stiffness: 1}

	SolveDistanceConstraint(particles, c)

	// Equal masses: each endpoint takes half of the half-correction.
	if math.Abs(float64(particles[0].Position.X-0.25)) > 1e-6 {
		t.Errorf("expected A at 0.25, got %f", particles[0].Position.X)
	}
	if math.Abs(float64(particles[1].Position.X-1.75)) > 1e-6 {
		t.Errorf("expected B at 1.75, got %f", particles[1].Position.X)
	}
}

func TestSolveDistanceConstraint_MassWeighting(t *testing.T) {
	particles := []Particle{
		NewParticle(Vec3{}, ParticleOptions{Mass: 3}),
		NewParticle(Vec3{X: 2}, ParticleOptions{Mass: 1}),
	}
	c := DistanceConstraint{A: 0, B: 1, RestLength: 1, Stiffness: 1}

	SolveDistanceConstraint(particles, c)

	movedA := particles[0].Position.X
	movedB := 2 - particles[1].Position.X
	if movedA >= movedB {
		t.Errorf("heavier endpoint moved more: A=%f B=%f", movedA, movedB)
	}
	// Shares are proportional to the other endpoint's mass: 1/4 vs 3/4.
	if math.Abs(float64(movedB/movedA-3)) > 1e-4 {
		t.Errorf("expected 3:1 split, got %f:%f", movedB, movedA)
	}
}

func TestSolveDistanceConstraint_PinnedEndpointFixed(t *testing.T) {
	particles := []Particle{
		NewParticle(Vec3{}, ParticleOptions{Pinned: true}),
		NewParticle(Vec3{X: 2}, ParticleOptions{}),
	}
	c := DistanceConstraint{A: 0, B: 1, RestLength: 1, Stiffness: 1}

	SolveDistanceConstraint(particles, c)

	if particles[0].Position != (Vec3{}) {
		t.Errorf("pinned endpoint moved to %+v", particles[0].Position)
	}
	// Free endpoint absorbs the whole half-correction.
	if math.Abs(float64(particles[1].Position.X-1.5)) > 1e-6 {
		t.Errorf("expected free endpoint at 1.5, got %f", particles[1].Position.X)
	}
}

func TestSolveDistanceConstraint_BothPinnedNoOp(t *testing.T) {
	particles := []Particle{
		NewParticle(Vec3{}, ParticleOptions{Pinned: true}),
		NewParticle(Vec3{X: 2}, ParticleOptions{Pinned: true}),
	}
	c := DistanceConstraint{A: 0, B: 1, RestLength: 1, Stiffness: 1}

	SolveDistanceConstraint(particles, c)

	if particles[0].Position != (Vec3{}) || particles[1].Position != (Vec3{X: 2}) {
		t.Error("both-pinned constraint moved an endpoint")
	}
}

func TestSolveDistanceConstraint_OutOfRangeNoOp(t *testing.T) {
	particles := pairAt(Vec3{}, Vec3{X: 2})

	// None of these should panic or move anything.
	SolveDistanceConstraint(particles, DistanceConstraint{A: -1, B: 1, RestLength: 1, Stiffness: 1})
	SolveDistanceConstraint(particles, DistanceConstraint{A: 0, B: 2, RestLength: 1, Stiffness: 1})
	SolveDistanceConstraint(particles, DistanceConstraint{A: 5, B: 9, RestLength: 1, Stiffness: 1})

	if particles[0].Position != (Vec3{}) || particles[1].Position != (Vec3{X: 2}) {
		t.Error("out-of-range constraint moved a particle")
	}
}

func TestSolveDistanceConstraint_CoincidentNoOp(t *testing.T) {
	particles := pairAt(Vec3{X: 1}, Vec3{X: 1})
	c := DistanceConstraint{A: 0, B: 1, RestLength: 1, Stiffness: 1}

	SolveDistanceConstraint(particles, c)

	p0 := particles[0].Position
	if p0 != (Vec3{X: 1}) {
		t.Errorf("coincident pair moved, got %+v", p0)
	}
	if p0.X != p0.X || particles[1].Position.X != particles[1].Position.X {
		t.Error("coincident pair produced NaN")
	}
}

// ---------- Builders ----------

func TestChainConstraints_RestLengthsFromPositions(t *testing.T) {
	particles := []Particle{
		NewParticle(Vec3{}, ParticleOptions{}),
		NewParticle(Vec3{X: 1}, ParticleOptions{}),
		NewParticle(Vec3{X: 1, Y: 2}, ParticleOptions{}),
	}

	cs := ChainConstraints(particles, []int{0, 1, 2}, 0.8)

	if len(cs) != 2 {
		t.Fatalf("expected 2 constraints, got %d", len(cs))
	}
	if math.Abs(float64(cs[0].RestLength-1)) > 1e-6 {
		t.Errorf("first rest length should be 1, got %f", cs[0].RestLength)
	}
	if math.Abs(float64(cs[1].RestLength-2)) > 1e-6 {
		t.Errorf("second rest length should be 2, got %f", cs[1].RestLength)
	}
	for _, c := range cs {
		if c.Stiffness != 0.8 {
			t.Errorf("stiffness not propagated, got %f", c.Stiffness)
		}
	}
}

func TestChainConstraints_TooShort(t *testing.T) {
	particles := pairAt(Vec3{}, Vec3{X: 1})
	if cs := ChainConstraints(particles, []int{0}, 1); cs != nil {
		t.Errorf("single-index chain should produce nil, got %d constraints", len(cs))
	}
}

func TestRingConstraints_UniquePairs(t *testing.T) {
	n := 6
	particles := make([]Particle, n)
	for i := range particles {
		angle := 2 * math.Pi * float64(i) / float64(n)
		particles[i] = NewParticle(Vec3{
			X: float32(math.Cos(angle)),
			Y: float32(math.Sin(angle)),
		}, ParticleOptions{})
	}
	indices := []int{0, 1, 2, 3, 4, 5}

	// k = n/2: opposite pairs must be emitted exactly once.
	cs := RingConstraints(particles, indices, 3, 1)

	seen := make(map[[2]int]bool)
	for _, c := range cs {
		key := [2]int{c.A, c.B}
		if c.B < c.A {
			key = [2]int{c.B, c.A}
		}
		if seen[key] {
			t.Errorf("duplicate pair (%d,%d)", key[0], key[1])
		}
		seen[key] = true
	}
	// n*k minus the n/2 duplicate opposite pairs.
	want := n*3 - n/2
	if len(cs) != want {
		t.Errorf("expected %d constraints, got %d", want, len(cs))
	}
}

func TestRingConstraints_ClampsK(t *testing.T) {
	n := 4
	particles := make([]Particle, n)
	for i := range particles {
		particles[i] = NewParticle(Vec3{X: float32(i)}, ParticleOptions{})
	}

	// k beyond n/2 clamps; result must still be duplicate-free.
	cs := RingConstraints(particles, []int{0, 1, 2, 3}, 10, 1)

	seen := make(map[[2]int]bool)
	for _, c := range cs {
		key := [2]int{c.A, c.B}
		if c.B < c.A {
			key = [2]int{c.B, c.A}
		}
		if seen[key] {
			t.Errorf("duplicate pair (%d,%d)", key[0], key[1])
		}
		seen[key] = true
	}
}
