// Package clay implements the deformable blob simulation: cluster-based
// cohesion, surface tension, two-speed shape memory, multi-tool sculpting
// and split/merge topology on top of the physics particle core.
package clay

// Options holds the scalar configuration of a blob. A blob copies its
// options at creation; runtime changes go through ApplyOverrides so that
// derived per-particle fields are re-propagated.
type Options struct {
	ParticleCount int
	BlobRadius    float32

	Timestep float32
	Substeps int
	Damping  float32
	Mass     float32

	// Shape maintenance rates, all per substep unless noted.
	CohesionStrength float32
	SurfaceTension   float32
	AnchorStrength   float32

	// Two-speed shape memory: particles are pulled toward their rest
	// position by RestPull every substep, while rest positions drift
	// toward current positions at RestShapeAdaptRate once per frame
	// after the sculpt cooldown expires.
	RestPull           float32
	RestShapeAdaptRate float32
	SculptMemoryRate   float32

	SculptRadius   float32
	SculptStrength float32
	PinStiffness   float32

	MinSeparation      float32
	SeparationStrength float32

	JitterAmplitude float32
	JitterSpeed     float32

	SplitDistance float32
	MergeDistance float32
}

// DefaultOptions returns a playable parameter set for a unit-radius blob.
func DefaultOptions() Options {
	return Options{
		ParticleCount: 400,
		BlobRadius:    1.0,

		Timestep: 1.0 / 120.0,
		Substeps: 3,
		Damping:  0.92,
		Mass:     1,

		CohesionStrength: 0.12,
		SurfaceTension:   0.003,
		AnchorStrength:   0.05,

		RestPull:           0.02,
		RestShapeAdaptRate: 0.01,
		SculptMemoryRate:   0.15,

		SculptRadius:   0.5,
		SculptStrength: 0.8,
		PinStiffness:   0.6,

		MinSeparation:      0.08,
		SeparationStrength: 0.5,

		JitterAmplitude: 0.0012,
		JitterSpeed:     1.2,

		SplitDistance: 2.2,
		MergeDistance: 0.9,
	}
}

// sanitize fills in values a zero-valued Options would break on.
func (o Options) sanitize() Options {
	if o.ParticleCount < 1 {
		o.ParticleCount = 1
	}
	if o.BlobRadius <= 0 {
		o.BlobRadius = 1
	}
	if o.Timestep <= 0 {
		o.Timestep = 1.0 / 120.0
	}
	if o.Substeps < 1 {
		o.Substeps = 1
	}
	if o.Mass <= 0 {
		o.Mass = 1
	}
	return o
}

// Overrides is a sparse set of option updates: nil fields are left
// untouched. ParticleCount and Timestep are deliberately absent; changing
// either means recreating the blob.
type Overrides struct {
	BlobRadius *float32

	Substeps *int
	Damping  *float32
	Mass     *float32

	CohesionStrength *float32
	SurfaceTension   *float32
	AnchorStrength   *float32

	RestPull           *float32
	RestShapeAdaptRate *float32
	SculptMemoryRate   *float32

	SculptRadius   *float32
	SculptStrength *float32
	PinStiffness   *float32

	MinSeparation      *float32
	SeparationStrength *float32

	JitterAmplitude *float32
	JitterSpeed     *float32

	SplitDistance *float32
	MergeDistance *float32
}

func setf(dst *float32, src *float32) {
	if src != nil {
		*dst = *src
	}
}

// ApplyOverrides merges the non-nil fields of ov into the blob's options
// and immediately re-propagates the per-particle fields (mass, damping)
// that derive from them.
func (b *Blob) ApplyOverrides(ov Overrides) {
	o := &b.opts

	setf(&o.BlobRadius, ov.BlobRadius)
	if ov.Substeps != nil && *ov.Substeps >= 1 {
		o.Substeps = *ov.Substeps
	}
	setf(&o.Damping, ov.Damping)
	if ov.Mass != nil && *ov.Mass > 0 {
		o.Mass = *ov.Mass
	}

	setf(&o.CohesionStrength, ov.CohesionStrength)
	setf(&o.SurfaceTension, ov.SurfaceTension)
	setf(&o.AnchorStrength, ov.AnchorStrength)

	setf(&o.RestPull, ov.RestPull)
	setf(&o.RestShapeAdaptRate, ov.RestShapeAdaptRate)
	setf(&o.SculptMemoryRate, ov.SculptMemoryRate)

	setf(&o.SculptRadius, ov.SculptRadius)
	setf(&o.SculptStrength, ov.SculptStrength)
	setf(&o.PinStiffness, ov.PinStiffness)

	setf(&o.MinSeparation, ov.MinSeparation)
	setf(&o.SeparationStrength, ov.SeparationStrength)

	setf(&o.JitterAmplitude, ov.JitterAmplitude)
	setf(&o.JitterSpeed, ov.JitterSpeed)

	setf(&o.SplitDistance, ov.SplitDistance)
	setf(&o.MergeDistance, ov.MergeDistance)

	for i := range b.particles {
		b.particles[i].Damping = o.Damping
		b.particles[i].Mass = o.Mass
	}
	for h := range b.pins {
		if b.pins[h] != nil {
			b.pins[h].Stiffness = o.PinStiffness
		}
	}
}

// Options returns a copy of the blob's current options.
func (b *Blob) Options() Options {
	return b.opts
}
