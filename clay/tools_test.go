package clay

import (
	"testing"

	"github.com/pthm-cable/clay/physics"
)

func newToolBlob(n int) *Blob {
	return NewBlob(physics.Vec3{}, calmOptions(n))
}

// ---------- Determinism ----------

func TestTools_Deterministic(t *testing.T) {
	ops := []struct {
		name  string
		apply func(b *Blob) bool
	}{
		{"stamp", func(b *Blob) bool {
			return b.ApplyStamp(physics.Vec3{X: 1}, physics.Vec3{X: 1}, 0.4, 0.5, 1.0)
		}},
		{"carve", func(b *Blob) bool {
			return b.ApplyCarve(physics.Vec3{X: 1}, physics.Vec3{Z: 1}, 0.4, 0.3)
		}},
		{"flatten", func(b *Blob) bool {
			return b.ApplyFlatten(physics.Vec3{X: 1}, physics.Vec3{X: 1}, 0.5, 0.5)
		}},
	}

	for _, op := range ops {
		a := newToolBlob(200)
		b := newToolBlob(200)

		movedA := op.apply(a)
		movedB := op.apply(b)
		if !movedA || movedA != movedB {
			t.Fatalf("%s: inconsistent application (%v, %v)", op.name, movedA, movedB)
		}
		for i := range a.particles {
			if a.particles[i].Position != b.particles[i].Position {
				t.Fatalf("%s: particle %d diverged between identical runs", op.name, i)
			}
		}
	}
}

func TestTools_RaiseSculptFlag(t *testing.T) {
	ops := []struct {
		name  string
		apply func(b *Blob) bool
	}{
		{"scrape", func(b *Blob) bool {
			return b.ApplyScrape(physics.Vec3{X: 1}, physics.Vec3{Z: 1}, 0.4, 0.3)
		}},
		{"carve", func(b *Blob) bool {
			return b.ApplyCarve(physics.Vec3{X: 1}, physics.Vec3{Z: 1}, 0.4, 0.3)
		}},
		{"stamp", func(b *Blob) bool {
			return b.ApplyStamp(physics.Vec3{X: 1}, physics.Vec3{X: 1}, 0.4, 0.5, 1.0)
		}},
		{"flatten", func(b *Blob) bool {
			return b.ApplyFlatten(physics.Vec3{X: 1}, physics.Vec3{X: 1}, 0.5, 0.5)
		}},
		{"squeeze", func(b *Blob) bool { return b.ApplySqueeze(0.8) }},
		{"attraction", func(b *Blob) bool {
			return b.ApplyAttraction(physics.Vec3{X: 1.2}, 0.5, 0.3)
		}},
	}

	for _, op := range ops {
		b := newToolBlob(200)
		if !op.apply(b) {
			t.Errorf("%s: reported no-op on a fresh blob", op.name)
			continue
		}
		if !b.sculpted {
			t.Errorf("%s: did not raise the sculpt flag", op.name)
		}
	}
}

// ---------- Stamp ----------

func TestApplyStamp_RateLimitedByTimeAndTravel(t *testing.T) {
	b := newToolBlob(200)
	pos := physics.Vec3{X: 1}
	normal := physics.Vec3{X: 1}

	if !b.ApplyStamp(pos, normal, 0.4, 0.5, 0) {
		t.Fatal("first stamp did not apply")
	}
	if b.ApplyStamp(pos.Add(physics.Vec3{Y: 0.5}), normal, 0.4, 0.5, 0.05) {
		t.Error("stamp applied before the time interval elapsed")
	}
	if b.ApplyStamp(pos, normal, 0.4, 0.5, 0.25) {
		t.Error("stamp applied without enough travel from the last stamp")
	}
	if !b.ApplyStamp(pos.Add(physics.Vec3{Y: 0.2}), normal, 0.4, 0.5, 0.25) {
		t.Error("stamp throttled despite elapsed time and travel")
	}
}

func TestApplyStamp_DimplePushesIn(t *testing.T) {
	b := newToolBlob(200)
	pos := physics.Vec3{X: 1}

	nearest := 0
	bestDist := float32(1e9)
	for i := range b.particles {
		if d := physics.Distance(b.particles[i].Position, pos); d < bestDist {
			nearest, bestDist = i, d
		}
	}
	before := b.particles[nearest].Position
	restBefore := b.restPositions[nearest]

	if !b.ApplyStamp(pos, physics.Vec3{X: 1}, 0.4, 0.5, 0) {
		t.Fatal("stamp did not apply")
	}

	// The dimple dominates at the center: the nearest particle moves
	// against the press normal, and the impression sets into memory.
	if b.particles[nearest].Position.X >= before.X {
		t.Errorf("center particle not pressed in: %f -> %f", before.X, b.particles[nearest].Position.X)
	}
	if b.restPositions[nearest] == restBefore {
		t.Error("stamp did not update the rest position")
	}
}

// ---------- Flatten ----------

func TestApplyFlatten_ProjectsTowardPlane(t *testing.T) {
	b := newToolBlob(200)
	point := physics.Vec3{X: 1}
	n := physics.Vec3{X: 1}
	radius := float32(0.6)

	type sample struct {
		i      int
		signed float32
	}
	var affected []sample
	for i := range b.particles {
		rel := b.particles[i].Position.Sub(point)
		if rel.Length() <= radius {
			affected = append(affected, sample{i, rel.Dot(n)})
		}
	}
	if len(affected) == 0 {
		t.Fatal("no particles within flatten radius")
	}

	if !b.ApplyFlatten(point, n, radius, 0.5) {
		t.Fatal("flatten did not apply")
	}

	var sumBefore, sumAfter float32
	for _, s := range affected {
		after := b.particles[s.i].Position.Sub(point).Dot(n)
		if absf(after) > absf(s.signed)+1e-6 {
			t.Fatalf("particle %d moved away from the plane: %f -> %f", s.i, s.signed, after)
		}
		sumBefore += absf(s.signed)
		sumAfter += absf(after)
	}
	if sumAfter >= sumBefore {
		t.Errorf("plane distance did not shrink: %f -> %f", sumBefore, sumAfter)
	}
}

func TestApplyFlatten_RadiusBounded(t *testing.T) {
	b := newToolBlob(200)

	// The far side of the blob is well outside the tool radius.
	far := 0
	for i := range b.particles {
		if b.particles[i].Position.X < b.particles[far].Position.X {
			far = i
		}
	}
	before := b.particles[far].Position

	b.ApplyFlatten(physics.Vec3{X: 1}, physics.Vec3{X: 1}, 0.5, 0.5)

	if b.particles[far].Position != before {
		t.Errorf("particle outside tool radius moved: %+v", b.particles[far].Position)
	}
}

// ---------- Scrape ----------

func TestApplyScrape_ClampsDisplacement(t *testing.T) {
	b := newToolBlob(200)
	before := make([]physics.Vec3, len(b.particles))
	for i := range b.particles {
		before[i] = b.particles[i].Position
	}

	radius := float32(0.5)
	// Absurd strength: the per-particle clamp must hold regardless.
	b.ApplyScrape(physics.Vec3{X: 1}, physics.Vec3{Z: 1}, radius, 50)

	limit := radius*maxPullScale + 1e-5
	for i := range b.particles {
		if d := physics.Distance(b.particles[i].Position, before[i]); d > limit {
			t.Fatalf("particle %d moved %f, beyond clamp %f", i, d, limit)
		}
	}
}

func TestApplyScrape_OutOfRangeNoOp(t *testing.T) {
	b := newToolBlob(50)
	if b.ApplyScrape(physics.Vec3{X: 10}, physics.Vec3{Z: 1}, 0.3, 1) {
		t.Error("scrape far from the blob reported movement")
	}
	if b.sculpted {
		t.Error("no-op scrape raised the sculpt flag")
	}
}

// ---------- Global gestures ----------

func TestApplySqueeze_SkipsHeldParticles(t *testing.T) {
	b := newToolBlob(50)
	idx := b.PinParticleRight(physics.Vec3{X: 1}, 0.5)
	if idx < 0 {
		t.Fatal("grab failed")
	}
	heldPos := b.particles[idx].Position
	free := 0
	if free == idx {
		free = 1
	}
	freePos := b.particles[free].Position

	if !b.ApplySqueeze(0.5) {
		t.Fatal("squeeze reported no-op")
	}

	if b.particles[idx].Position != heldPos {
		t.Error("held particle moved under squeeze")
	}
	if want := freePos.Scale(0.5); b.particles[free].Position != want {
		t.Errorf("free particle not scaled toward center: got %+v want %+v",
			b.particles[free].Position, want)
	}
}

func TestApplySqueeze_RejectsNonPositiveFactor(t *testing.T) {
	b := newToolBlob(10)
	if b.ApplySqueeze(0) {
		t.Error("zero factor accepted")
	}
	if b.ApplySqueeze(-1) {
		t.Error("negative factor accepted")
	}
}

func TestApplyAttraction_RadiusBounded(t *testing.T) {
	b := newToolBlob(200)
	point := physics.Vec3{X: 1.2}
	radius := float32(0.5)

	nearest, far := 0, 0
	for i := range b.particles {
		if physics.Distance(b.particles[i].Position, point) <
			physics.Distance(b.particles[nearest].Position, point) {
			nearest = i
		}
		if b.particles[i].Position.X < b.particles[far].Position.X {
			far = i
		}
	}
	nearBefore := physics.Distance(b.particles[nearest].Position, point)
	farBefore := b.particles[far].Position

	if !b.ApplyAttraction(point, radius, 0.3) {
		t.Fatal("attraction reported no-op")
	}

	if d := physics.Distance(b.particles[nearest].Position, point); d >= nearBefore {
		t.Errorf("nearest particle not attracted: %f -> %f", nearBefore, d)
	}
	if b.particles[far].Position != farBefore {
		t.Error("particle outside attraction radius moved")
	}
}

func TestApplyAttraction_ZeroRadiusNoOp(t *testing.T) {
	b := newToolBlob(10)
	if b.ApplyAttraction(physics.Vec3{}, 0, 1) {
		t.Error("zero radius attraction reported movement")
	}
}
