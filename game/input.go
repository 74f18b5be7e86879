package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/clay/physics"
	"github.com/pthm-cable/clay/pose"
)

// handleInput processes keyboard input and the tuning panel.
func (g *Game) handleInput() {
	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}
	if rl.IsKeyPressed(rl.KeyTab) && g.panel != nil {
		g.panel.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyM) {
		g.blob.ForceMerge()
	}

	// Number keys select the active tool.
	for t := Tool(0); t < numTools; t++ {
		if rl.IsKeyPressed(int32(rl.KeyOne) + int32(t)) {
			g.tool = t
		}
	}

	// Orbit the camera while holding left control.
	if rl.IsKeyDown(rl.KeyLeftControl) {
		rl.UpdateCamera(&g.camera, rl.CameraOrbital)
	}

	if g.panel != nil {
		if ov, changed := g.panel.Overrides(); changed {
			g.blob.ApplyOverrides(ov)
		}
	}
}

// sampleInputFrame synthesizes a tracker frame from the mouse, for
// running without a hand tracker attached. Left button drives the right
// hand's pinch, right button the left hand's, and holding shift turns
// the press into a fist.
func (g *Game) sampleInputFrame() pose.Frame {
	frame := pose.Frame{Time: g.simTime}

	point, ok := g.mouseOnBlobPlane()
	if !ok {
		return frame
	}

	var pinch, grab float32 = 1, 0
	if rl.IsKeyDown(rl.KeyLeftShift) {
		pinch, grab = 0, 1
	}

	if rl.IsMouseButtonDown(rl.MouseButtonLeft) {
		frame.Right = scriptHand(point, pinch, grab)
	}
	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		frame.Left = scriptHand(point, pinch, grab)
	}
	return frame
}

// mouseOnBlobPlane projects the mouse ray onto the camera-facing plane
// through the blob center.
func (g *Game) mouseOnBlobPlane() (physics.Vec3, bool) {
	ray := rl.GetScreenToWorldRay(rl.GetMousePosition(), g.camera)

	center := g.blob.Center()
	normal := physics.Vec3{
		X: g.camera.Position.X - g.camera.Target.X,
		Y: g.camera.Position.Y - g.camera.Target.Y,
		Z: g.camera.Position.Z - g.camera.Target.Z,
	}.Normalized(physics.Vec3{Z: 1}, 1e-4)

	origin := physics.Vec3{X: ray.Position.X, Y: ray.Position.Y, Z: ray.Position.Z}
	dir := physics.Vec3{X: ray.Direction.X, Y: ray.Direction.Y, Z: ray.Direction.Z}

	denom := dir.Dot(normal)
	if denom > -1e-6 && denom < 1e-6 {
		return physics.Vec3{}, false
	}
	t := center.Sub(origin).Dot(normal) / denom
	if t < 0 {
		return physics.Vec3{}, false
	}
	return origin.Add(dir.Scale(t)), true
}
