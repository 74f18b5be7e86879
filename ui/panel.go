// Package ui provides the in-window tuning panel for live simulation
// parameters.
package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/clay/clay"
)

// slider is one tunable parameter row.
type slider struct {
	label    string
	min, max float32
	value    float32
	format   string
	bind     func(ov *clay.Overrides, v float32)
}

// TuningPanel renders sliders for the blob parameters that are safe to
// change mid-run and reports edits as option overrides.
type TuningPanel struct {
	x, y    int32
	width   int32
	visible bool

	sliders []slider
	changed bool
}

// NewTuningPanel creates the panel seeded with current option values.
func NewTuningPanel(x, y, width int32, opts clay.Options) *TuningPanel {
	return &TuningPanel{
		x:     x,
		y:     y,
		width: width,
		sliders: []slider{
			{
				label: "Cohesion", min: 0, max: 0.5, value: opts.CohesionStrength, format: "%.3f",
				bind: func(ov *clay.Overrides, v float32) { ov.CohesionStrength = &v },
			},
			{
				label: "Surface tension", min: 0, max: 0.02, value: opts.SurfaceTension, format: "%.4f",
				bind: func(ov *clay.Overrides, v float32) { ov.SurfaceTension = &v },
			},
			{
				label: "Rest pull", min: 0, max: 0.1, value: opts.RestPull, format: "%.3f",
				bind: func(ov *clay.Overrides, v float32) { ov.RestPull = &v },
			},
			{
				label: "Damping", min: 0.8, max: 1.0, value: opts.Damping, format: "%.3f",
				bind: func(ov *clay.Overrides, v float32) { ov.Damping = &v },
			},
			{
				label: "Sculpt radius", min: 0.1, max: 1.5, value: opts.SculptRadius, format: "%.2f",
				bind: func(ov *clay.Overrides, v float32) { ov.SculptRadius = &v },
			},
			{
				label: "Sculpt strength", min: 0, max: 1.5, value: opts.SculptStrength, format: "%.2f",
				bind: func(ov *clay.Overrides, v float32) { ov.SculptStrength = &v },
			},
			{
				label: "Pin stiffness", min: 0.05, max: 1.0, value: opts.PinStiffness, format: "%.2f",
				bind: func(ov *clay.Overrides, v float32) { ov.PinStiffness = &v },
			},
			{
				label: "Min separation", min: 0, max: 0.2, value: opts.MinSeparation, format: "%.3f",
				bind: func(ov *clay.Overrides, v float32) { ov.MinSeparation = &v },
			},
			{
				label: "Jitter", min: 0, max: 0.01, value: opts.JitterAmplitude, format: "%.4f",
				bind: func(ov *clay.Overrides, v float32) { ov.JitterAmplitude = &v },
			},
		},
	}
}

// Toggle switches panel visibility.
func (p *TuningPanel) Toggle() bool {
	p.visible = !p.visible
	return p.visible
}

// Overrides returns the accumulated edits since the last call and
// whether anything changed.
func (p *TuningPanel) Overrides() (clay.Overrides, bool) {
	if !p.changed {
		return clay.Overrides{}, false
	}
	p.changed = false

	var ov clay.Overrides
	for i := range p.sliders {
		s := &p.sliders[i]
		s.bind(&ov, s.value)
	}
	return ov, true
}

// Draw renders the panel and captures slider edits.
func (p *TuningPanel) Draw() {
	if !p.visible {
		rl.DrawText("[TAB] tuning", p.x, p.y, 14, rl.Gray)
		return
	}

	const rowHeight = 38
	panelHeight := int32(len(p.sliders))*rowHeight + 40

	rl.DrawRectangle(p.x-4, p.y-4, p.width+8, panelHeight, rl.Color{R: 0, G: 0, B: 0, A: 170})
	rl.DrawText("Tuning [TAB]", p.x, p.y, 16, rl.White)

	y := p.y + 24
	for i := range p.sliders {
		s := &p.sliders[i]

		rl.DrawText(s.label, p.x, y, 12, rl.LightGray)
		newValue := gui.SliderBar(
			rl.Rectangle{X: float32(p.x), Y: float32(y + 14), Width: float32(p.width - 60), Height: 16},
			"", "",
			s.value, s.min, s.max,
		)
		rl.DrawText(fmt.Sprintf(s.format, s.value), p.x+p.width-54, y+14, 12, rl.White)

		if newValue != s.value {
			s.value = newValue
			p.changed = true
		}
		y += rowHeight
	}
}
