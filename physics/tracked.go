package physics

// maxCatchUpSteps caps how many internal steps a single frame may run.
// Without the cap a long stall would trigger an unbounded catch-up loop.
const maxCatchUpSteps = 4

// maxFrameDelta clamps the external frame delta before it enters the
// accumulator, bounding worst-case per-frame work after a hitch.
const maxFrameDelta = 0.1

// TrackedOptions configures a TrackedSim.
type TrackedOptions struct {
	Timestep            float32 // seconds per internal step
	Substeps            int     // constraint iterations per internal step
	Damping             float32
	TargetStiffness     float32
	MinDistance         float32 // 0 disables the separation pass
	MinDistanceStrength float32
}

// DefaultTrackedOptions returns the options used for zero values.
func DefaultTrackedOptions() TrackedOptions {
	return TrackedOptions{
		Timestep:            1.0 / 120.0,
		Substeps:            2,
		Damping:             0.9,
		TargetStiffness:     0.35,
		MinDistance:         0.02,
		MinDistanceStrength: 0.5,
	}
}

// TrackedSim drives a set of particles toward external per-particle
// targets under structural distance constraints. It is the generic
// shape-following swarm: one target per particle, updated once per frame.
type TrackedSim struct {
	Particles   []Particle
	Constraints []DistanceConstraint

	opts        TrackedOptions
	clock       float32
	targetsSeen bool
	stepsRun    int64 // internal steps executed, for tests and stats

	positions []float32
}

// NewTrackedSim creates a simulation with count particles at the origin.
func NewTrackedSim(count int, opts TrackedOptions) *TrackedSim {
	if opts.Timestep <= 0 {
		opts = DefaultTrackedOptions()
	}
	if opts.Substeps < 1 {
		opts.Substeps = 1
	}
	s := &TrackedSim{opts: opts}
	s.Particles = make([]Particle, 0, count)
	for i := 0; i < count; i++ {
		s.Particles = append(s.Particles, s.newParticle())
	}
	s.positions = make([]float32, count*3)
	return s
}

func (s *TrackedSim) newParticle() Particle {
	return NewParticle(Vec3{}, ParticleOptions{
		Mass:            1,
		Damping:         s.opts.Damping,
		TargetStiffness: s.opts.TargetStiffness,
	})
}

// Step advances the simulation by dt seconds of external time, running as
// many fixed internal steps as the accumulator allows (capped).
func (s *TrackedSim) Step(dt float32) {
	if dt < 0 {
		return
	}
	if dt > maxFrameDelta {
		dt = maxFrameDelta
	}
	s.clock += dt
	steps := int(s.clock / s.opts.Timestep)
	if steps > maxCatchUpSteps {
		steps = maxCatchUpSteps
	}
	s.clock -= float32(steps) * s.opts.Timestep

	for n := 0; n < steps; n++ {
		for i := range s.Particles {
			s.Particles[i].ApplyTargetConstraint()
			s.Particles[i].Integrate(s.opts.Timestep)
		}
		for it := 0; it < s.opts.Substeps; it++ {
			for _, c := range s.Constraints {
				SolveDistanceConstraint(s.Particles, c)
			}
			if s.opts.MinDistance > 0 {
				SolveMinDistanceAll(s.Particles, s.opts.MinDistance, s.opts.MinDistanceStrength)
			}
		}
		s.stepsRun++
	}
}

// UpdateTargets assigns one target per particle by index. Extra targets
// or extra particles are ignored. The very first call with at least one
// target teleports the paired particles onto their targets so nothing
// visibly flies in from the origin.
func (s *TrackedSim) UpdateTargets(targets []Vec3) {
	n := len(targets)
	if n > len(s.Particles) {
		n = len(s.Particles)
	}
	if !s.targetsSeen && len(targets) > 0 {
		for i := 0; i < n; i++ {
			s.Particles[i].Teleport(targets[i])
		}
		s.targetsSeen = true
		return
	}
	for i := 0; i < n; i++ {
		s.Particles[i].Target = targets[i]
	}
}

// Resize grows or shrinks the particle array. Growing appends fresh
// particles at the origin with the current options; shrinking truncates
// and drops every constraint with an out-of-range endpoint, so no
// dangling indices survive.
func (s *TrackedSim) Resize(count int) {
	if count < 0 {
		count = 0
	}
	switch {
	case count > len(s.Particles):
		for len(s.Particles) < count {
			s.Particles = append(s.Particles, s.newParticle())
		}
	case count < len(s.Particles):
		s.Particles = s.Particles[:count]
		kept := s.Constraints[:0]
		for _, c := range s.Constraints {
			if c.A < count && c.B < count {
				kept = append(kept, c)
			}
		}
		s.Constraints = kept
	}
	s.positions = make([]float32, count*3)
}

// Positions packs the current particle positions into a flat xyz buffer.
// The buffer is reused between calls; the caller reads it once per frame.
func (s *TrackedSim) Positions() []float32 {
	for i := range s.Particles {
		p := s.Particles[i].Position
		s.positions[i*3+0] = p.X
		s.positions[i*3+1] = p.Y
		s.positions[i*3+2] = p.Z
	}
	return s.positions
}

// TrackedStats reports lightweight per-frame numbers for UI feedback.
type TrackedStats struct {
	Particles   int
	Constraints int
	AvgSpeed    float32
	StepsRun    int64
}

// Stats returns counts and the average implicit speed per internal step.
func (s *TrackedSim) Stats() TrackedStats {
	st := TrackedStats{
		Particles:   len(s.Particles),
		Constraints: len(s.Constraints),
		StepsRun:    s.stepsRun,
	}
	if len(s.Particles) == 0 {
		return st
	}
	var sum float32
	for i := range s.Particles {
		sum += s.Particles[i].Speed()
	}
	st.AvgSpeed = sum / float32(len(s.Particles))
	return st
}
