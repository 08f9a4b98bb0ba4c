// Flow-field pattern viewer: particles trace a noise-seeded vector field,
// with sliders to reshape the field and regenerate.
//
// Usage: go run ./cmd/flowfield [-config path] [-seed n]
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/stipple/config"
	"github.com/pthm-cable/stipple/flow"
	"github.com/pthm-cable/stipple/renderer"
)

const panelWidth = 300

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Int64("seed", 0, "Noise and particle seed (0 = time-based)")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	width, height := int32(cfg.Screen.Width), int32(cfg.Screen.Height)
	rl.InitWindow(width+panelWidth, height, "Flow Field")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	// strokes accumulate on a render texture that is never cleared between frames
	canvas := rl.LoadRenderTexture(width, height)
	defer rl.UnloadRenderTexture(canvas)

	params := flow.ParamsFromConfig(cfg, float32(width), float32(height))
	thickness := float32(cfg.Flow.LineThickness)
	plotter := renderer.NewFlowRenderer(thickness)

	var pattern *flow.Pattern
	regenerate := func() {
		pattern = flow.NewPattern(params, rngSeed)
		plotter.SetThickness(thickness)
		rl.BeginTextureMode(canvas)
		rl.ClearBackground(renderer.FlowBackground)
		rl.EndTextureMode()
		slog.Info("flow pattern generated",
			"seed", rngSeed,
			"cols", pattern.Field().Cols,
			"rows", pattern.Field().Rows,
			"particles", params.ParticleCount,
		)
	}
	regenerate()

	for !rl.WindowShouldClose() {
		if !pattern.Done() {
			rl.BeginTextureMode(canvas)
			pattern.Step(plotter)
			rl.EndTextureMode()
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		// render textures are stored upside down
		rl.DrawTextureRec(canvas.Texture,
			rl.Rectangle{X: 0, Y: 0, Width: float32(width), Height: -float32(height)},
			rl.Vector2{}, rl.White)

		panelX := float32(width + 15)
		panelY := float32(15)

		rl.DrawText("Flow Field", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		rl.DrawText("Noise increment (smoothness)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		params.NoiseIncrement = slider(panelX, panelY, params.NoiseIncrement, 0.01, 0.4, "%.2f")
		panelY += 40

		rl.DrawText("Magnitude (force per frame)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		params.Magnitude = slider(panelX, panelY, params.Magnitude, 0.05, 2, "%.2f")
		panelY += 40

		rl.DrawText("Cell size", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		params.CellSize = float32(int(slider(panelX, panelY, params.CellSize, 5, 50, "%.0f")))
		panelY += 40

		rl.DrawText("Line thickness", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		thickness = slider(panelX, panelY, thickness, 0.5, 3, "%.1f")
		panelY += 45

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Regenerate") {
			regenerate()
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "New Seed") {
			rngSeed = int64(rl.GetRandomValue(1, 1<<30))
			regenerate()
		}
		panelY += 45

		rl.DrawText(fmt.Sprintf("Frame: %d / %d", pattern.Frame(), params.MaxFrames), int32(panelX), int32(panelY), 16, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("Seed: %d", rngSeed), int32(panelX), int32(panelY+20), 16, rl.DarkGray)

		rl.EndDrawing()
	}
}

// slider draws a labelled slider bar and returns its new value.
func slider(x, y, value, lo, hi float32, format string) float32 {
	v := gui.SliderBar(
		rl.Rectangle{X: x, Y: y, Width: panelWidth - 90, Height: 20},
		"", "",
		value, lo, hi,
	)
	rl.DrawText(fmt.Sprintf(format, v), int32(x+panelWidth-80), int32(y+2), 16, rl.DarkGray)
	return v
}
