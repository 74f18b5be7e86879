package physics

// Particle is the atomic simulable unit. Velocity is implicit: it is
// derived each step from the difference between Position and PrevPosition
// (Verlet integration), so there is no velocity field to keep in sync.
type Particle struct {
	Position     Vec3
	PrevPosition Vec3
	Acceleration Vec3 // accumulated force/mass, reset every Integrate

	Mass    float32 // must be > 0
	Damping float32 // implicit-velocity retention in [0, 1]

	// Pinned forces Position to Target every step and zeroes velocity.
	Pinned bool

	// Target is the soft-constraint destination; TargetStiffness in [0, 1]
	// controls how hard ApplyTargetConstraint pulls toward it.
	Target          Vec3
	TargetStiffness float32
}

// ParticleOptions configures a freshly created particle.
type ParticleOptions struct {
	Mass            float32
	Damping         float32
	TargetStiffness float32
	Pinned          bool
}

// DefaultParticleOptions returns the options used when a caller passes
// zero values.
func DefaultParticleOptions() ParticleOptions {
	return ParticleOptions{
		Mass:            1,
		Damping:         0.97,
		TargetStiffness: 0.1,
	}
}

// NewParticle creates a particle at rest: position, previous position and
// target all coincide, so the implicit velocity is zero.
func NewParticle(pos Vec3, opts ParticleOptions) Particle {
	if opts.Mass <= 0 {
		opts.Mass = 1
	}
	return Particle{
		Position:        pos,
		PrevPosition:    pos,
		Target:          pos,
		Mass:            opts.Mass,
		Damping:         opts.Damping,
		TargetStiffness: opts.TargetStiffness,
		Pinned:          opts.Pinned,
	}
}

// ApplyForce accumulates force/mass into the acceleration. No-op for
// pinned particles.
func (p *Particle) ApplyForce(f Vec3) {
	if p.Pinned {
		return
	}
	p.Acceleration = p.Acceleration.Add(f.Scale(1 / p.Mass))
}

// Integrate advances the particle by dt using Verlet integration.
// Pinned particles snap to their target with zero velocity.
func (p *Particle) Integrate(dt float32) {
	if p.Pinned {
		p.Position = p.Target
		p.PrevPosition = p.Target
		p.Acceleration = Vec3{}
		return
	}
	vel := p.Position.Sub(p.PrevPosition).Scale(p.Damping)
	p.PrevPosition = p.Position
	p.Position = p.Position.Add(vel).Add(p.Acceleration.Scale(dt * dt))
	p.Acceleration = Vec3{}
}

// ApplyTargetConstraint pulls the particle toward its target by
// TargetStiffness. No-op for pinned particles.
func (p *Particle) ApplyTargetConstraint() {
	if p.Pinned {
		return
	}
	p.Position = p.Position.Add(p.Target.Sub(p.Position).Scale(p.TargetStiffness))
}

// Teleport moves the particle instantly: position, previous position and
// target are all reset, so no implicit velocity or soft pull remains.
func (p *Particle) Teleport(pos Vec3) {
	p.Position = pos
	p.PrevPosition = pos
	p.Target = pos
}

// Speed returns the implicit per-step velocity magnitude.
func (p *Particle) Speed() float32 {
	return p.Position.Sub(p.PrevPosition).Length()
}
