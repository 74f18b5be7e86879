// Package pose defines the value types the simulation consumes from an
// external hand-tracking collaborator. Nothing here touches a camera:
// landmark coordinates and gesture strengths arrive already derived, in
// the simulation's working units.
package pose

import "github.com/pthm-cable/clay/physics"

// NumLandmarks is the fixed landmark count per hand (wrist + 4 joints
// for each of 5 fingers).
const NumLandmarks = 21

// Hand is one tracked hand for one frame.
type Hand struct {
	Landmarks [NumLandmarks]physics.Vec3

	// PinchPoint is the midpoint between thumb tip and index tip;
	// PinchStrength in [0, 1] peaks when they touch.
	PinchPoint    physics.Vec3
	PinchStrength float32

	// GrabStrength in [0, 1] peaks on a closed fist.
	GrabStrength float32
}

// Frame is the per-frame tracker output: zero, one or two hands. The
// simulation samples a frame once at the start of its step and treats it
// as immutable.
type Frame struct {
	Left  *Hand
	Right *Hand
	Time  float64
}

// TwoHand holds the derived two-hand signals for gestures that need both
// hands (stretch, split).
type TwoHand struct {
	Valid    bool
	Center   physics.Vec3
	Axis     physics.Vec3 // unit vector left pinch -> right pinch
	Distance float32
}

// DeriveTwoHand computes the two-hand signals from a frame, for callers
// whose tracker does not provide them directly.
func DeriveTwoHand(f Frame) TwoHand {
	if f.Left == nil || f.Right == nil {
		return TwoHand{}
	}
	d := f.Right.PinchPoint.Sub(f.Left.PinchPoint)
	dist := d.Length()
	return TwoHand{
		Valid:    true,
		Center:   f.Left.PinchPoint.Add(f.Right.PinchPoint).Scale(0.5),
		Axis:     d.Normalized(physics.Vec3{X: 1}, 1e-4),
		Distance: dist,
	}
}

// Pinching reports whether a hand's pinch is engaged past threshold.
func (h *Hand) Pinching(threshold float32) bool {
	return h != nil && h.PinchStrength >= threshold
}

// Grabbing reports whether a hand's grab is engaged past threshold.
func (h *Hand) Grabbing(threshold float32) bool {
	return h != nil && h.GrabStrength >= threshold
}
