package pose

import (
	"math"
	"testing"

	"github.com/pthm-cable/clay/physics"
)

// ---------- DeriveTwoHand ----------

func TestDeriveTwoHand_RequiresBothHands(t *testing.T) {
	right := &Hand{PinchPoint: physics.Vec3{X: 1}}

	if DeriveTwoHand(Frame{Right: right}).Valid {
		t.Error("one-handed frame produced valid two-hand signals")
	}
	if DeriveTwoHand(Frame{}).Valid {
		t.Error("empty frame produced valid two-hand signals")
	}
}

func TestDeriveTwoHand_CenterAxisDistance(t *testing.T) {
	f := Frame{
		Left:  &Hand{PinchPoint: physics.Vec3{X: -1, Y: 1}},
		Right: &Hand{PinchPoint: physics.Vec3{X: 3, Y: 1}},
	}

	th := DeriveTwoHand(f)

	if !th.Valid {
		t.Fatal("two-handed frame not valid")
	}
	if th.Center != (physics.Vec3{X: 1, Y: 1}) {
		t.Errorf("center %+v, want (1,1,0)", th.Center)
	}
	if math.Abs(float64(th.Distance-4)) > 1e-6 {
		t.Errorf("distance %f, want 4", th.Distance)
	}
	if math.Abs(float64(th.Axis.X-1)) > 1e-6 || math.Abs(float64(th.Axis.Y)) > 1e-6 {
		t.Errorf("axis %+v, want +X", th.Axis)
	}
}

func TestDeriveTwoHand_CoincidentPinchFallbackAxis(t *testing.T) {
	p := physics.Vec3{X: 0.5, Y: 0.5}
	f := Frame{Left: &Hand{PinchPoint: p}, Right: &Hand{PinchPoint: p}}

	th := DeriveTwoHand(f)

	if !th.Valid {
		t.Fatal("coincident pinches should still be valid")
	}
	if th.Axis != (physics.Vec3{X: 1}) {
		t.Errorf("expected fallback axis +X, got %+v", th.Axis)
	}
	if th.Distance != 0 {
		t.Errorf("expected zero distance, got %f", th.Distance)
	}
}

// ---------- Thresholds ----------

func TestPinching_ThresholdAndNil(t *testing.T) {
	h := &Hand{PinchStrength: 0.7}

	if !h.Pinching(0.7) {
		t.Error("strength at threshold should count as pinching")
	}
	if h.Pinching(0.71) {
		t.Error("strength under threshold counted as pinching")
	}
	var none *Hand
	if none.Pinching(0) {
		t.Error("nil hand counted as pinching")
	}
}

func TestGrabbing_ThresholdAndNil(t *testing.T) {
	h := &Hand{GrabStrength: 0.9}

	if !h.Grabbing(0.8) {
		t.Error("closed fist not detected")
	}
	var none *Hand
	if none.Grabbing(0) {
		t.Error("nil hand counted as grabbing")
	}
}
