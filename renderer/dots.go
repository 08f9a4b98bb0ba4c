// Package renderer draws engine output with raylib.
package renderer

import rl "github.com/gen2brain/raylib-go/raylib"

// Dot field colours: white dots on a mid-gray canvas.
var (
	Background = rl.Color{R: 100, G: 100, B: 100, A: 255}
	DotColor   = rl.White
)

// DotRenderer draws the dot field as filled circles. It satisfies
// game.Surface and must be used between BeginDrawing and EndDrawing.
type DotRenderer struct {
	Color rl.Color
}

// NewDotRenderer creates a renderer with the default dot colour.
func NewDotRenderer() *DotRenderer {
	return &DotRenderer{Color: DotColor}
}

// Clear fills the canvas with the background colour.
func (r *DotRenderer) Clear() {
	rl.ClearBackground(Background)
}

// DrawCircle draws one dot centred on (x, y).
func (r *DotRenderer) DrawCircle(x, y, diameter float32) {
	if diameter <= 0 {
		return
	}
	rl.DrawCircleV(rl.Vector2{X: x, Y: y}, diameter/2, r.Color)
}
