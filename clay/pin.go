package clay

import "github.com/pthm-cable/clay/physics"

// maxPullScale caps the per-frame neighbor displacement of a grab to a
// fraction of the sculpt radius, preventing tearing on fast hand motion.
const maxPullScale = 0.3

// SculptState caches the influence region of a grab. Membership and
// weights are computed once at grab time and never recomputed while the
// pin is held: a live neighbor search would flicker particles in and out
// near the radius boundary.
type SculptState struct {
	Neighbors  []int
	Weights    []float32
	PrevTarget physics.Vec3
}

// PinConstraint holds one grabbed particle to a moving target. A nil
// *PinConstraint in a pin slot means that hand is not grabbing.
type PinConstraint struct {
	Index     int
	Target    physics.Vec3
	Stiffness float32
	Sculpt    *SculptState
}

// PinParticleLeft grabs the particle nearest to point within radius with
// the left-hand slot. Returns the grabbed index, or -1 when no particle
// is in range. An existing left pin is replaced.
func (b *Blob) PinParticleLeft(point physics.Vec3, radius float32) int {
	return b.pinParticle(left, point, radius)
}

// PinParticleRight is PinParticleLeft for the right-hand slot.
func (b *Blob) PinParticleRight(point physics.Vec3, radius float32) int {
	return b.pinParticle(right, point, radius)
}

func (b *Blob) pinParticle(h hand, point physics.Vec3, radius float32) int {
	if radius <= 0 {
		return -1
	}
	best := -1
	bestDistSq := radius * radius
	for i := range b.particles {
		d := b.particles[i].Position.Sub(point).LengthSq()
		if d < bestDistSq {
			best = i
			bestDistSq = d
		}
	}
	if best < 0 {
		return -1
	}

	grabPos := b.particles[best].Position
	sc := &SculptState{PrevTarget: grabPos}
	sr := b.opts.SculptRadius
	for i := range b.particles {
		if i == best {
			continue
		}
		d := b.particles[i].Position.Sub(grabPos).Length()
		if d >= sr {
			continue
		}
		// Squared smoothstep: closer means stronger, squared for sharper
		// locality around the grab.
		w := physics.Smoothstep(sr, 0, d)
		sc.Neighbors = append(sc.Neighbors, i)
		sc.Weights = append(sc.Weights, w*w)
	}

	b.pins[h] = &PinConstraint{
		Index:     best,
		Target:    grabPos,
		Stiffness: b.opts.PinStiffness,
		Sculpt:    sc,
	}
	return best
}

// SetPinTargetLeft moves the left pin's target. No-op without an active
// left pin.
func (b *Blob) SetPinTargetLeft(target physics.Vec3) { b.setPinTarget(left, target) }

// SetPinTargetRight moves the right pin's target.
func (b *Blob) SetPinTargetRight(target physics.Vec3) { b.setPinTarget(right, target) }

func (b *Blob) setPinTarget(h hand, target physics.Vec3) {
	if b.pins[h] == nil {
		return
	}
	b.pins[h].Target = target
}

// ReleaseLeft drops the left pin.
func (b *Blob) ReleaseLeft() { b.pins[left] = nil }

// ReleaseRight drops the right pin.
func (b *Blob) ReleaseRight() { b.pins[right] = nil }

// PinnedLeft returns the particle index held by the left hand, or -1.
func (b *Blob) PinnedLeft() int { return b.pinnedIndex(left) }

// PinnedRight returns the particle index held by the right hand, or -1.
func (b *Blob) PinnedRight() int { return b.pinnedIndex(right) }

func (b *Blob) pinnedIndex(h hand) int {
	if b.pins[h] == nil {
		return -1
	}
	return b.pins[h].Index
}

// applyPinConstraints pulls each grabbed particle toward its pin target.
// Runs every substep. A stale index (particle array mutated under the
// pin) is a silent no-op.
func (b *Blob) applyPinConstraints() {
	for h := range b.pins {
		pin := b.pins[h]
		if pin == nil || pin.Index < 0 || pin.Index >= len(b.particles) {
			continue
		}
		p := &b.particles[pin.Index]
		p.Position = p.Position.Add(pin.Target.Sub(p.Position).Scale(pin.Stiffness))
	}
}

// applySculptFields applies the displacement fields driven by pin-target
// motion: the two-hand stretch first (it needs the previous targets),
// then each grab's neighbor pull, then the previous targets are advanced.
// Runs on the first substep of each internal step only.
func (b *Blob) applySculptFields() {
	b.applyTwoHandSculpt()
	for h := range b.pins {
		b.applyPullField(b.pins[h])
	}
	for h := range b.pins {
		pin := b.pins[h]
		if pin != nil && pin.Sculpt != nil {
			pin.Sculpt.PrevTarget = pin.Target
		}
	}
}

// applyPullField displaces the cached neighbors of a grab by the pin
// target's frame-to-frame delta, weighted and clamped.
func (b *Blob) applyPullField(pin *PinConstraint) {
	if pin == nil || pin.Sculpt == nil {
		return
	}
	delta := pin.Target.Sub(pin.Sculpt.PrevTarget)
	if delta.LengthSq() < vecEps*vecEps {
		return
	}
	maxDisp := b.opts.SculptRadius * maxPullScale
	for k, j := range pin.Sculpt.Neighbors {
		if j < 0 || j >= len(b.particles) || j == pin.Index {
			continue
		}
		disp := delta.Scale(pin.Sculpt.Weights[k] * b.opts.SculptStrength)
		if l := disp.Length(); l > maxDisp {
			disp = disp.Scale(maxDisp / l)
		}
		b.particles[j].Position = b.particles[j].Position.Add(disp)
	}
}

// updateLocalRest advances rest positions around active grabs faster than
// the global adaptation rate, so a grabbed dent sets into memory quickly.
// Runs once per internal step, not per substep.
func (b *Blob) updateLocalRest() {
	rate := b.opts.SculptMemoryRate
	if rate <= 0 {
		return
	}
	for h := range b.pins {
		pin := b.pins[h]
		if pin == nil || pin.Sculpt == nil {
			continue
		}
		if pin.Index >= 0 && pin.Index < len(b.particles) {
			i := pin.Index
			b.restPositions[i] = b.restPositions[i].Lerp(b.particles[i].Position, rate)
		}
		for k, j := range pin.Sculpt.Neighbors {
			if j < 0 || j >= len(b.particles) {
				continue
			}
			b.restPositions[j] = b.restPositions[j].Lerp(b.particles[j].Position, rate*pin.Sculpt.Weights[k])
		}
	}
}

// cachedNeighbor reports whether particle i is in the cached influence
// region of either active grab.
func (b *Blob) cachedNeighbor(i int) bool {
	for h := range b.pins {
		pin := b.pins[h]
		if pin == nil || pin.Sculpt == nil {
			continue
		}
		for _, j := range pin.Sculpt.Neighbors {
			if j == i {
				return true
			}
		}
	}
	return false
}
