package game

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// clusterColors indexed by cluster slot; the blob caps out at two live
// clusters but keep a few spares for safety.
var clusterColors = []rl.Color{
	{R: 222, G: 140, B: 90, A: 255},
	{R: 110, G: 160, B: 220, A: 255},
	{R: 150, G: 210, B: 120, A: 255},
	{R: 210, G: 120, B: 190, A: 255},
}

const particleDrawRadius = 0.035

// Draw renders the scene and HUD.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Color{R: 24, G: 24, B: 28, A: 255})

	rl.BeginMode3D(g.camera)
	rl.DrawGrid(10, 0.5)
	g.drawBlob()
	g.drawCursors()
	g.drawPins()
	rl.EndMode3D()

	g.drawHUD()
	if g.panel != nil {
		g.panel.Draw()
	}

	rl.EndDrawing()
}

// drawBlob renders every particle, colored by its cluster.
func (g *Game) drawBlob() {
	positions := g.blob.Positions()
	for i := 0; i*3+2 < len(positions); i++ {
		color := clusterColors[0]
		if g.blob.IsSplit() {
			id := g.blob.ClusterID(i)
			color = clusterColors[int(id)%len(clusterColors)]
		}
		p := rl.Vector3{
			X: positions[i*3],
			Y: positions[i*3+1],
			Z: positions[i*3+2],
		}
		rl.DrawSphereEx(p, particleDrawRadius, 4, 4, color)
	}
}

// drawCursors renders the hand cursor swarm as small points.
func (g *Game) drawCursors() {
	positions := g.cursors.Positions()
	for i := 0; i*3+2 < len(positions); i++ {
		p := rl.Vector3{
			X: positions[i*3],
			Y: positions[i*3+1],
			Z: positions[i*3+2],
		}
		rl.DrawSphereEx(p, 0.012, 4, 4, rl.Color{R: 240, G: 240, B: 200, A: 180})
	}
}

// drawPins highlights grabbed particles.
func (g *Game) drawPins() {
	positions := g.blob.Positions()
	for _, idx := range []int{g.blob.PinnedLeft(), g.blob.PinnedRight()} {
		if idx < 0 || idx*3+2 >= len(positions) {
			continue
		}
		p := rl.Vector3{
			X: positions[idx*3],
			Y: positions[idx*3+1],
			Z: positions[idx*3+2],
		}
		rl.DrawSphereWires(p, particleDrawRadius*2.5, 6, 6, rl.Yellow)
	}
}

// drawHUD renders the text overlay.
func (g *Game) drawHUD() {
	st := g.blob.Stats()
	y := int32(10)
	x := int32(280)

	rl.DrawText(fmt.Sprintf("Tick: %d  FPS: %d", g.tick, rl.GetFPS()), x, y, 20, rl.White)
	y += 25
	rl.DrawText(fmt.Sprintf("Tool: %s  [1-%d]", g.tool.Name(), int(numTools)), x, y, 20, rl.White)
	y += 25
	rl.DrawText(fmt.Sprintf("Particles: %d  Clusters: %d  Speed: %.4f",
		st.Particles, st.Clusters, st.AvgSpeed), x, y, 20, rl.White)
	y += 25
	if st.Split {
		rl.DrawText("SPLIT  [M to merge]", x, y, 20, rl.Orange)
		y += 25
	}
	if g.paused {
		rl.DrawText("PAUSED", x, y, 20, rl.Yellow)
	}
}
