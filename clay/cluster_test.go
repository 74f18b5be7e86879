package clay

import (
	"testing"

	"github.com/pthm-cable/clay/physics"
)

// splitBlob grabs both sides of a fresh blob, pulls the targets well past
// the split distance and splits it.
func splitBlob(t *testing.T, o Options) *Blob {
	t.Helper()
	b := NewBlob(physics.Vec3{}, o)
	if b.PinParticleLeft(physics.Vec3{X: -1}, 0.5) < 0 {
		t.Fatal("left grab failed")
	}
	if b.PinParticleRight(physics.Vec3{X: 1}, 0.5) < 0 {
		t.Fatal("right grab failed")
	}
	b.SetPinTargetLeft(physics.Vec3{X: -2})
	b.SetPinTargetRight(physics.Vec3{X: 2})
	if !b.CheckAndApplySplit() {
		t.Fatal("split did not fire")
	}
	return b
}

// ---------- Split ----------

func TestCheckAndApplySplit_RequiresBothPins(t *testing.T) {
	b := NewBlob(physics.Vec3{}, calmOptions(50))
	b.PinParticleRight(physics.Vec3{X: 1}, 0.5)
	b.SetPinTargetRight(physics.Vec3{X: 5})

	if b.CheckAndApplySplit() {
		t.Error("split fired with a single pin")
	}
}

func TestCheckAndApplySplit_RequiresSeparation(t *testing.T) {
	b := NewBlob(physics.Vec3{}, calmOptions(50))
	b.PinParticleLeft(physics.Vec3{X: -1}, 0.5)
	b.PinParticleRight(physics.Vec3{X: 1}, 0.5)

	// Pin targets sit at the grab points, 2 apart: under the threshold.
	if b.CheckAndApplySplit() {
		t.Error("split fired below the split distance")
	}
	if b.IsSplit() {
		t.Error("failed split left the blob marked split")
	}
}

func TestCheckAndApplySplit_PartitionsParticles(t *testing.T) {
	b := splitBlob(t, calmOptions(100))

	if !b.IsSplit() {
		t.Fatal("blob not marked split")
	}
	clusters := b.Clusters()
	if len(clusters) != 2 {
		t.Fatalf("expected 2 clusters, got %d", len(clusters))
	}
	if clusters[0].Count == 0 || clusters[1].Count == 0 {
		t.Fatalf("empty cluster after split: %d/%d", clusters[0].Count, clusters[1].Count)
	}
	if clusters[0].Count+clusters[1].Count != b.ParticleCount() {
		t.Fatalf("cluster counts %d+%d do not sum to %d",
			clusters[0].Count, clusters[1].Count, b.ParticleCount())
	}

	// Plane through the pin midpoint (origin), normal +X: assignment must
	// match the side each particle is on.
	for i := range b.particles {
		want := clusters[0].ID
		if b.particles[i].Position.X >= 0 {
			want = clusters[1].ID
		}
		if b.clusterIDs[i] != want {
			t.Fatalf("particle %d at x=%f assigned to cluster %d, want %d",
				i, b.particles[i].Position.X, b.clusterIDs[i], want)
		}
	}

	if b.CheckAndApplySplit() {
		t.Error("second split fired while already split")
	}
}

// ---------- Merge ----------

func TestCheckAndApplyMerge_DistanceGated(t *testing.T) {
	o := calmOptions(100)
	o.MergeDistance = 0.5
	b := splitBlob(t, o)

	// Hemisphere centers sit ~1 apart: beyond the merge distance.
	if b.CheckAndApplyMerge() {
		t.Fatal("merge fired with cluster centers beyond merge distance")
	}
	if !b.IsSplit() {
		t.Fatal("failed merge cleared split state")
	}

	md := float32(1.5)
	b.ApplyOverrides(Overrides{MergeDistance: &md})
	if !b.CheckAndApplyMerge() {
		t.Fatal("merge did not fire within merge distance")
	}
	if b.IsSplit() || b.ClusterCount() != 1 {
		t.Fatalf("merge left split=%v clusters=%d", b.IsSplit(), b.ClusterCount())
	}
	for i := 0; i < b.ParticleCount(); i++ {
		if b.ClusterID(i) != 0 {
			t.Fatalf("particle %d not back in cluster 0, got %d", i, b.ClusterID(i))
		}
	}
}

func TestForceMerge_Idempotent(t *testing.T) {
	b := NewBlob(physics.Vec3{}, calmOptions(50))
	if b.ForceMerge() {
		t.Error("force merge on an unsplit blob returned true")
	}

	b = splitBlob(t, calmOptions(50))
	if !b.ForceMerge() {
		t.Fatal("force merge on a split blob returned false")
	}
	if b.IsSplit() || b.ClusterCount() != 1 {
		t.Fatalf("force merge left split=%v clusters=%d", b.IsSplit(), b.ClusterCount())
	}
	if b.ForceMerge() {
		t.Error("second force merge returned true")
	}
}

func TestStep_AutoMergesWhileSplit(t *testing.T) {
	o := calmOptions(100)
	o.MergeDistance = 1.5
	b := splitBlob(t, o)

	// Cluster centers already within the merge distance: the next step's
	// topology pass must re-merge without any explicit call.
	b.Step(o.Timestep, 0)

	if b.IsSplit() {
		t.Error("step did not auto-merge clusters within merge distance")
	}
}

func TestClusterID_InvalidIndex(t *testing.T) {
	b := NewBlob(physics.Vec3{}, calmOptions(10))

	if b.ClusterID(-1) != -1 {
		t.Error("negative index should report -1")
	}
	if b.ClusterID(b.ParticleCount()) != -1 {
		t.Error("out-of-range index should report -1")
	}
}

// ---------- Two-hand stretch ----------

func TestStep_TwoHandStretchElongates(t *testing.T) {
	o := calmOptions(100)
	b := NewBlob(physics.Vec3{}, o)
	control := NewBlob(physics.Vec3{}, o)

	if b.PinParticleLeft(physics.Vec3{X: -1}, 0.5) < 0 ||
		b.PinParticleRight(physics.Vec3{X: 1}, 0.5) < 0 {
		t.Fatal("grabs failed")
	}

	now := 0.0
	for f := 1; f <= 10; f++ {
		reach := 1 + 0.05*float32(f)
		b.SetPinTargetLeft(physics.Vec3{X: -reach})
		b.SetPinTargetRight(physics.Vec3{X: reach})
		b.Step(1.0/60.0, now)
		control.Step(1.0/60.0, now)
		now += 1.0 / 60.0
	}

	if got, want := meanAbsX(b), meanAbsX(control); got <= want {
		t.Errorf("stretch did not elongate the blob: %f <= %f", got, want)
	}
}

func meanAbsX(b *Blob) float32 {
	var sum float32
	for i := range b.particles {
		sum += absf(b.particles[i].Position.X)
	}
	return sum / float32(len(b.particles))
}
