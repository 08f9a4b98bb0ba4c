package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/stipple/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title         string
	Frame         int64
	Rings         int
	Spirals       int
	HistoryPoints int
	FPS           int32
	Paused        bool
}

// HUD renders the main heads-up display.
type HUD struct{}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Rings: %d | Spirals: %d | Trail points: %d", data.Rings, data.Spirals, data.HistoryPoints),
		10, 35, 16, rl.LightGray,
	)
	rl.DrawText(
		fmt.Sprintf("Frame: %d | FPS: %d", data.Frame, data.FPS),
		10, 55, 16, rl.LightGray,
	)

	if data.Paused {
		rl.DrawText("PAUSED", 10, 75, 16, rl.Yellow)
	}
}

// Controls is the key legend shown along the bottom edge.
const Controls = "LMB: ring | RMB: spirals | Space: pause | C: clear | D: debug | F11: fullscreen"

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32) {
	rl.DrawText(Controls, 10, screenHeight-25, 14, rl.DarkGray)
}

// PerfPanel renders the frame phase breakdown.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y, width int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the panel and returns the Y position below it.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) int32 {
	r := p.renderer
	pad := r.Theme.Padding
	phases := telemetry.Phases()
	height := r.Theme.LineHeight*int32(4) + int32(len(phases))*(r.Theme.LineHeight+2) + pad*2

	r.DrawPanel(p.x, p.y, p.width, height)

	x := p.x + pad
	y := r.DrawSectionHeader(x, p.y+pad, "Frame Performance")
	y = r.DrawLabelValue(x, y, "Work avg", stats.AvgWork.String())
	y = r.DrawLabelValue(x, y, "Capacity", fmt.Sprintf("%.0f fps", stats.Capacity))
	y = r.DrawLabelValue(x, y, "Presented", fmt.Sprintf("%.1f fps", stats.FPS))
	for _, ph := range phases {
		y = r.DrawPercentBar(x, y, ph, stats.PhasePct[ph], p.width-pad*2)
	}
	return p.y + height
}
