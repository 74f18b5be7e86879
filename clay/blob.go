package clay

import (
	"math"

	"github.com/pthm-cable/clay/physics"
)

// maxCatchUpSteps caps internal steps per frame, same policy as the
// tracked simulation.
const maxCatchUpSteps = 4

// maxFrameDelta clamps the external frame delta entering the accumulator.
const maxFrameDelta = 0.1

// restAdaptCooldown is the number of calm frames required before the
// global rest shape starts drifting toward current positions. Sculpted
// dents only "set" once sculpting pauses.
const restAdaptCooldown = 10

// hand selects one of the two pin slots.
type hand int

const (
	left hand = iota
	right
	numHands
)

// Blob is a sculptable particle blob. One owner drives it with one Step
// per frame; it is not safe for concurrent mutation.
type Blob struct {
	particles []physics.Particle
	// restPositions is the remembered undeformed shape, always the same
	// length as particles.
	restPositions []physics.Vec3

	opts   Options
	center physics.Vec3

	clock    float32
	sculpted bool  // a tool touched particles since the last Step
	cooldown int32 // frames since the last sculpt activity

	pins [numHands]*PinConstraint

	// Cluster topology. clusterIDs is parallel to particles.
	clusterIDs    []int32
	clusters      []Cluster
	nextClusterID int32
	split         bool

	lastStampTime float64
	lastStampPos  physics.Vec3
	stamped       bool // at least one stamp applied, gates the travel test

	positions []float32
}

// Cluster is one independently-cohering partition of the particle set.
type Cluster struct {
	ID     int32
	Center physics.Vec3
	Count  int
}

// NewBlob creates a blob of opts.ParticleCount particles seeded on a
// Fibonacci lattice over a sphere of opts.BlobRadius around center. Rest
// positions start equal to the initial positions.
func NewBlob(center physics.Vec3, opts Options) *Blob {
	opts = opts.sanitize()
	n := opts.ParticleCount

	b := &Blob{
		opts:          opts,
		center:        center,
		particles:     make([]physics.Particle, 0, n),
		restPositions: make([]physics.Vec3, 0, n),
		clusterIDs:    make([]int32, n),
		nextClusterID: 1,
		positions:     make([]float32, n*3),
	}

	// Fibonacci lattice: near-uniform point distribution on the sphere.
	golden := float32(math.Pi * (3 - math.Sqrt(5)))
	for i := 0; i < n; i++ {
		y := 1 - 2*float32(i)/float32(maxi(n-1, 1))
		r := float32(math.Sqrt(float64(maxf(0, 1-y*y))))
		theta := golden * float32(i)
		pos := physics.Vec3{
			X: cosf(theta) * r,
			Y: y,
			Z: sinf(theta) * r,
		}.Scale(opts.BlobRadius).Add(center)

		b.particles = append(b.particles, physics.NewParticle(pos, physics.ParticleOptions{
			Mass:    opts.Mass,
			Damping: opts.Damping,
		}))
		b.restPositions = append(b.restPositions, pos)
	}

	b.clusters = []Cluster{{ID: 0, Center: center, Count: n}}
	b.updateClusters()
	b.refreshPositions()
	return b
}

// SetCenter moves the intended blob center; anchoring nudges the global
// centroid toward it over the following steps.
func (b *Blob) SetCenter(c physics.Vec3) { b.center = c }

// Center returns the intended blob center.
func (b *Blob) Center() physics.Vec3 { return b.center }

// Step advances the blob by dt seconds of external time. now is the
// caller's monotonic global time in seconds, used only for jitter phase
// and stamp rate limiting.
func (b *Blob) Step(dt float32, now float64) {
	if dt < 0 {
		return
	}
	if dt > maxFrameDelta {
		dt = maxFrameDelta
	}

	// Sculpt bookkeeping first: tools ran between frames, pins may be
	// held right now. Either keeps the cooldown at zero.
	if b.sculpted || b.pins[left] != nil || b.pins[right] != nil {
		b.cooldown = 0
	} else {
		b.cooldown++
	}
	b.sculpted = false

	b.clock += dt
	steps := int(b.clock / b.opts.Timestep)
	if steps > maxCatchUpSteps {
		steps = maxCatchUpSteps
	}
	b.clock -= float32(steps) * b.opts.Timestep

	for n := 0; n < steps; n++ {
		b.stepOnce()
	}

	// Jitter is applied after the constraint pipeline so it does not get
	// solved away.
	b.applyJitter(now)

	if b.cooldown >= restAdaptCooldown {
		b.adaptRestShape()
	}

	if b.split {
		b.updateClusters()
		b.CheckAndApplyMerge()
	}

	b.refreshPositions()
}

// stepOnce runs one fixed internal step: integration, then the ordered
// constraint pipeline for every substep, then the per-step local rest
// update around active grabs.
func (b *Blob) stepOnce() {
	ts := b.opts.Timestep
	for i := range b.particles {
		b.particles[i].ApplyTargetConstraint()
		b.particles[i].Integrate(ts)
	}

	b.updateClusters()

	for it := 0; it < b.opts.Substeps; it++ {
		b.applyPinConstraints()
		if it == 0 {
			// Sculpt displacement fields are driven by per-frame target
			// deltas; applying them once per step avoids compounding the
			// same delta across substeps.
			b.applySculptFields()
		}
		b.applyCohesion()
		b.applySurfaceTension()
		b.applyRestPull()
		physics.SolveMinDistanceAll(b.particles, b.opts.MinSeparation, b.opts.SeparationStrength)
		b.applyAnchoring()
	}

	b.updateLocalRest()
}

// adaptRestShape drifts every rest position toward the current position.
// This is the slow half of the two-speed shape memory.
func (b *Blob) adaptRestShape() {
	rate := b.opts.RestShapeAdaptRate
	if rate <= 0 {
		return
	}
	for i := range b.particles {
		b.restPositions[i] = b.restPositions[i].Lerp(b.particles[i].Position, rate)
	}
}

func (b *Blob) refreshPositions() {
	for i := range b.particles {
		p := b.particles[i].Position
		b.positions[i*3+0] = p.X
		b.positions[i*3+1] = p.Y
		b.positions[i*3+2] = p.Z
	}
}

// Positions returns the flat xyz position buffer, refreshed in place on
// every Step. The rendering layer reads it once per frame.
func (b *Blob) Positions() []float32 { return b.positions }

// ParticleCount returns the fixed particle count.
func (b *Blob) ParticleCount() int { return len(b.particles) }

// IsSplit reports whether the blob is currently split into clusters.
func (b *Blob) IsSplit() bool { return b.split }

// ClusterCount returns the number of active clusters.
func (b *Blob) ClusterCount() int { return len(b.clusters) }

// Stats reports lightweight per-frame numbers for UI feedback.
type Stats struct {
	Particles int
	Clusters  int
	Split     bool
	AvgSpeed  float32
}

// Stats returns particle/cluster counts and the average implicit speed.
func (b *Blob) Stats() Stats {
	st := Stats{
		Particles: len(b.particles),
		Clusters:  len(b.clusters),
		Split:     b.split,
	}
	if len(b.particles) == 0 {
		return st
	}
	var sum float32
	for i := range b.particles {
		sum += b.particles[i].Speed()
	}
	st.AvgSpeed = sum / float32(len(b.particles))
	return st
}

// RestDrift returns the mean distance between current and remembered
// rest positions, a measure of how far the shape has been worked.
func (b *Blob) RestDrift() float32 {
	if len(b.particles) == 0 {
		return 0
	}
	var sum float32
	for i := range b.particles {
		sum += physics.Distance(b.particles[i].Position, b.restPositions[i])
	}
	return sum / float32(len(b.particles))
}

// centroid returns the mean position of all particles.
func (b *Blob) centroid() physics.Vec3 {
	if len(b.particles) == 0 {
		return b.center
	}
	var sum physics.Vec3
	for i := range b.particles {
		sum = sum.Add(b.particles[i].Position)
	}
	return sum.Scale(1 / float32(len(b.particles)))
}

// held reports whether particle i is currently grabbed by either hand.
func (b *Blob) held(i int) bool {
	for h := range b.pins {
		if b.pins[h] != nil && b.pins[h].Index == i {
			return true
		}
	}
	return false
}

func maxi(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func cosf(x float32) float32 { return float32(math.Cos(float64(x))) }
func sinf(x float32) float32 { return float32(math.Sin(float64(x))) }
