package game

import (
	"github.com/pthm-cable/clay/config"
	"github.com/pthm-cable/clay/physics"
	"github.com/pthm-cable/clay/pose"
)

// gestureMapper turns tracked-hand frames into blob interactions. It
// keeps the little state gestures need across frames: previous pinch
// points for stroke directions and engagement edges for grab events.
type gestureMapper struct {
	cfg config.GesturesConfig

	prevPinch   [2]physics.Vec3
	pinchActive [2]bool
}

func newGestureMapper(cfg config.GesturesConfig) gestureMapper {
	return gestureMapper{cfg: cfg}
}

// Apply maps one input frame onto the blob.
func (m *gestureMapper) Apply(g *Game, frame pose.Frame) {
	m.applyHand(g, 0, frame.Left)
	m.applyHand(g, 1, frame.Right)

	// Both hands pinched in grab mode: stretching far enough tears the
	// blob in two.
	if g.tool == ToolGrab && !g.blob.IsSplit() &&
		g.blob.PinnedLeft() >= 0 && g.blob.PinnedRight() >= 0 {
		if g.blob.CheckAndApplySplit() {
			g.collector.RecordSplit()
		}
	}

	// Closed fists attract loose material; both fists compress.
	leftFist := frame.Left.Grabbing(float32(m.cfg.GrabThreshold))
	rightFist := frame.Right.Grabbing(float32(m.cfg.GrabThreshold))
	if leftFist && rightFist {
		if g.blob.ApplySqueeze(float32(m.cfg.SqueezeFactor)) {
			g.collector.RecordSculpt()
		}
	} else if leftFist {
		m.attract(g, frame.Left)
	} else if rightFist {
		m.attract(g, frame.Right)
	}
}

// applyHand handles one hand's pinch lifecycle. h is 0 for left, 1 for
// right.
func (m *gestureMapper) applyHand(g *Game, h int, hand *pose.Hand) {
	pinching := hand.Pinching(float32(m.cfg.PinchThreshold))
	if !pinching {
		if m.pinchActive[h] && g.tool == ToolGrab {
			if h == 0 {
				g.blob.ReleaseLeft()
			} else {
				g.blob.ReleaseRight()
			}
		}
		m.pinchActive[h] = false
		return
	}

	point := hand.PinchPoint
	stroke := physics.Vec3{}
	if m.pinchActive[h] {
		stroke = point.Sub(m.prevPinch[h])
	}

	if g.tool == ToolGrab {
		m.applyGrab(g, h, point)
	} else {
		m.applyTool(g, point, stroke)
	}

	m.prevPinch[h] = point
	m.pinchActive[h] = true
}

// applyGrab pins a particle on pinch start and drags it afterwards.
func (m *gestureMapper) applyGrab(g *Game, h int, point physics.Vec3) {
	radius := float32(m.cfg.GrabRadius)
	if h == 0 {
		if g.blob.PinnedLeft() < 0 {
			if g.blob.PinParticleLeft(point, radius) >= 0 {
				g.collector.RecordGrab()
			}
		}
		g.blob.SetPinTargetLeft(point)
	} else {
		if g.blob.PinnedRight() < 0 {
			if g.blob.PinParticleRight(point, radius) >= 0 {
				g.collector.RecordGrab()
			}
		}
		g.blob.SetPinTargetRight(point)
	}
}

// applyTool runs the selected surface tool at the pinch point.
func (m *gestureMapper) applyTool(g *Game, point, stroke physics.Vec3) {
	opts := g.blob.Options()
	radius := opts.SculptRadius
	strength := opts.SculptStrength

	// Press direction: outward from the blob body at the contact point.
	normal := point.Sub(g.blob.Center()).Normalized(physics.Vec3{Y: 1}, 1e-4)

	var applied bool
	switch g.tool {
	case ToolScrape:
		applied = g.blob.ApplyScrape(point, stroke, radius, strength)
	case ToolCarve:
		applied = g.blob.ApplyCarve(point, stroke, radius, strength)
	case ToolStamp:
		applied = g.blob.ApplyStamp(point, normal, radius, strength, g.simTime)
	case ToolFlatten:
		applied = g.blob.ApplyFlatten(point, normal, radius, strength)
	case ToolFlattenCarve:
		applied = g.blob.ApplyFlattenCarve(point, normal, stroke, radius, strength)
	case ToolFlattenStamp:
		applied = g.blob.ApplyFlattenStamp(point, normal, radius, strength, g.simTime)
	}
	if applied {
		g.collector.RecordSculpt()
	}
}

func (m *gestureMapper) attract(g *Game, hand *pose.Hand) {
	if g.blob.ApplyAttraction(hand.PinchPoint, float32(m.cfg.AttractRadius), float32(m.cfg.AttractStrength)) {
		g.collector.RecordSculpt()
	}
}
