package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/stipple/effects"
	"github.com/pthm-cable/stipple/game"
	"github.com/pthm-cable/stipple/geom"
)

// HandleInput maps this frame's raylib mouse and keyboard state onto g.
// Spawns are queued and take effect at the start of the next frame.
func HandleInput(g *game.Game, panel *DebugPanel) {
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
		if panel != nil {
			panel.Reanchor(int32(rl.GetScreenWidth()))
		}
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		g.TogglePause()
	}
	if rl.IsKeyPressed(rl.KeyC) {
		g.Clear()
	}
	if rl.IsKeyPressed(rl.KeyD) && panel != nil {
		panel.Toggle()
	}

	mouse := rl.GetMousePosition()
	at := geom.Point{X: mouse.X, Y: mouse.Y}
	g.SetPointer(at)

	if panel != nil && panel.Contains(mouse) {
		return
	}
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		g.QueueSpawn(effects.KindRing, at)
	}
	if rl.IsMouseButtonPressed(rl.MouseButtonRight) {
		g.QueueSpawn(effects.KindSpiral, at)
	}
}
