package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/stipple/flow"
)

// FlowBackground is the dark slate the flow pattern accumulates on.
var FlowBackground = rl.Color{R: 41, G: 51, B: 61, A: 255}

// FlowRenderer plots flow particles as round strokes. Frames are never
// cleared, so strokes build up into the pattern.
type FlowRenderer struct {
	thickness float32
}

// NewFlowRenderer creates a renderer with the given stroke thickness.
func NewFlowRenderer(thickness float32) *FlowRenderer {
	return &FlowRenderer{thickness: thickness}
}

// SetThickness changes the stroke thickness.
func (r *FlowRenderer) SetThickness(t float32) { r.thickness = t }

// Plot draws one particle position.
func (r *FlowRenderer) Plot(x, y float32, tint flow.Tint) {
	rl.DrawCircleV(rl.Vector2{X: x, Y: y}, r.thickness/2, strokeColor(tint))
}

// strokeColor is the fully saturated hue at full brightness, faded by alpha.
func strokeColor(tint flow.Tint) rl.Color {
	return rl.Fade(rl.ColorFromHSV(tint.Hue, 1, 1), tint.Alpha)
}
