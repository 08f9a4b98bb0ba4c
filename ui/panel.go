package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/stipple/game"
	"github.com/pthm-cable/stipple/telemetry"
)

const (
	maxPanelWorkers = 16
	panelMargin     = 10
)

// DebugPanel is the toggleable raygui panel with run controls and the
// frame performance breakdown.
type DebugPanel struct {
	renderer *Renderer
	perf     *PerfPanel
	x, y     int32
	width    int32
	visible  bool
}

// NewDebugPanel creates a hidden panel against the right edge of a screen
// screenWidth pixels wide.
func NewDebugPanel(screenWidth, width int32) *DebugPanel {
	x, y := panelOrigin(screenWidth, width)
	return &DebugPanel{
		renderer: NewRenderer(),
		perf:     NewPerfPanel(x, y+controlsHeight, width),
		x:        x,
		y:        y,
		width:    width,
	}
}

// panelOrigin returns the top-left corner of a panel of the given width
// pinned to the top-right of the screen.
func panelOrigin(screenWidth, width int32) (int32, int32) {
	return screenWidth - width - panelMargin, panelMargin
}

const controlsHeight = 120

// Toggle switches panel visibility.
func (d *DebugPanel) Toggle() bool {
	d.visible = !d.visible
	return d.visible
}

// SetPosition moves the panel.
func (d *DebugPanel) SetPosition(x, y int32) {
	d.x, d.y = x, y
	d.perf.SetPosition(x, y+controlsHeight)
}

// Reanchor pins the panel to the top-right of a screen that changed width,
// e.g. after toggling fullscreen.
func (d *DebugPanel) Reanchor(screenWidth int32) {
	d.SetPosition(panelOrigin(screenWidth, d.width))
}

// Contains reports whether a screen point lies on the visible panel, so
// clicks on its widgets do not spawn effects.
func (d *DebugPanel) Contains(p rl.Vector2) bool {
	if !d.visible {
		return false
	}
	bounds := rl.Rectangle{X: float32(d.x), Y: float32(d.y), Width: float32(d.width), Height: float32(controlsHeight + d.perfHeight())}
	return rl.CheckCollisionPointRec(p, bounds)
}

func (d *DebugPanel) perfHeight() int32 {
	t := d.renderer.Theme
	return t.LineHeight*4 + int32(len(telemetry.Phases()))*(t.LineHeight+2) + t.Padding*2
}

// Draw renders the panel and applies any widget changes to g.
func (d *DebugPanel) Draw(g *game.Game) {
	if !d.visible {
		return
	}
	r := d.renderer
	pad := r.Theme.Padding
	r.DrawPanel(d.x, d.y, d.width, controlsHeight)

	x := float32(d.x + pad)
	y := float32(r.DrawSectionHeader(d.x+pad, d.y+pad, "Controls"))

	paused := gui.CheckBox(rl.Rectangle{X: x, Y: y, Width: 14, Height: 14}, "Paused", g.Paused())
	if paused != g.Paused() {
		g.TogglePause()
	}
	if gui.Button(rl.Rectangle{X: x + 110, Y: y - 3, Width: 80, Height: 20}, "Clear") {
		g.Clear()
	}
	y += 26

	rl.DrawText("Workers", int32(x), int32(y), r.Theme.FontSize, r.Theme.LabelColor)
	y += 16
	workers := gui.SliderBar(
		rl.Rectangle{X: x, Y: y, Width: float32(d.width - pad*2 - 40), Height: 16},
		"", "",
		float32(g.Workers()), 0, maxPanelWorkers,
	)
	if w := sliderWorkers(workers); w != g.Workers() {
		g.SetWorkers(w)
	}
	rl.DrawText(workersLabel(g.Workers()), int32(x)+d.width-pad*2-30, int32(y)+2, r.Theme.FontSize, r.Theme.ValueColor)

	d.perf.Draw(g.PerfStats())
}
