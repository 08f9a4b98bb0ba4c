package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/gdamore/tcell/v2"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/stipple/audio"
	"github.com/pthm-cable/stipple/config"
	"github.com/pthm-cable/stipple/game"
	"github.com/pthm-cable/stipple/renderer"
	"github.com/pthm-cable/stipple/term"
	"github.com/pthm-cable/stipple/ui"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics, driven by autoplay")
	terminal := flag.Bool("terminal", false, "Run in the terminal instead of a window")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Int("stats-window", 0, "Stats window size in frames (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxFrames := flag.Int64("max-frames", 0, "Stop after N frames (0 = unlimited)")
	withAudio := flag.Bool("audio", false, "Play a tone for each spawn (overrides config)")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	// Set up slog (JSON to stdout for structured logging)
	logOut, closeLog, err := logWriter(*terminal && !*headless, *outputDir)
	if err != nil {
		slog.Error("failed to open log", "error", err)
		os.Exit(1)
	}
	defer closeLog()
	logger := slog.New(slog.NewJSONHandler(logOut, nil))
	slog.SetDefault(logger)

	opts := game.Options{
		Seed:        rngSeed,
		Autoplay:    *headless,
		LogStats:    *logStats,
		StatsWindow: *statsWindow,
		OutputDir:   *outputDir,
	}

	switch {
	case *headless:
		err = runHeadless(cfg, opts, *maxFrames)
	case *terminal:
		err = runTerminal(cfg, opts, *maxFrames, *withAudio)
	default:
		err = runWindow(cfg, opts, *maxFrames, *withAudio)
	}
	if err != nil {
		slog.Error("run failed", "error", err)
		closeLog()
		os.Exit(1)
	}
}

// logWriter picks the log destination. The terminal host owns stdout, so
// its logs go to run.log in the output directory, or nowhere.
func logWriter(terminal bool, outputDir string) (io.Writer, func(), error) {
	if !terminal {
		return os.Stdout, func() {}, nil
	}
	if outputDir == "" {
		return io.Discard, func() {}, nil
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, nil, fmt.Errorf("creating output directory: %w", err)
	}
	f, err := os.Create(filepath.Join(outputDir, "run.log"))
	if err != nil {
		return nil, nil, fmt.Errorf("creating log file: %w", err)
	}
	return f, func() { f.Close() }, nil
}

func runHeadless(cfg *config.Config, opts game.Options, maxFrames int64) error {
	g, err := game.New(cfg, opts)
	if err != nil {
		return err
	}
	defer g.Unload()

	slog.Info("starting headless run",
		"seed", opts.Seed,
		"grid_points", g.Grid().Len(),
		"max_frames", maxFrames,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	for ctx.Err() == nil {
		g.Step()
		if maxFrames > 0 && g.FrameCount() >= maxFrames {
			slog.Info("max frames reached", "frame", g.FrameCount())
			return nil
		}
	}
	slog.Info("interrupted", "frame", g.FrameCount())
	return nil
}

func runTerminal(cfg *config.Config, opts game.Options, maxFrames int64, withAudio bool) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	h, err := term.New(screen, cfg, opts)
	if err != nil {
		return err
	}
	defer h.Close()

	cues := startAudio(cfg, withAudio)
	defer cues.Close()
	h.Game().OnSpawn(cues.Play)

	w, hgt := screen.Size()
	slog.Info("starting terminal run", "seed", opts.Seed, "cols", w, "rows", hgt, "grid_points", h.Game().Grid().Len())

	err = h.Run(context.Background(), maxFrames)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func runWindow(cfg *config.Config, opts game.Options, maxFrames int64, withAudio bool) error {
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Stipple")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.New(cfg, opts)
	if err != nil {
		return err
	}
	defer g.Unload()

	cues := startAudio(cfg, withAudio)
	defer cues.Close()
	g.OnSpawn(cues.Play)

	slog.Info("starting window", "seed", opts.Seed, "grid_points", g.Grid().Len())

	dots := renderer.NewDotRenderer()
	hud := ui.NewHUD()
	panel := ui.NewDebugPanel(int32(cfg.Screen.Width), 260)

	for !rl.WindowShouldClose() {
		ui.HandleInput(g, panel)

		rl.BeginDrawing()
		dots.Clear()
		g.Frame(dots)

		e := g.Effects()
		hud.Draw(ui.HUDData{
			Title:         "Stipple",
			Frame:         g.FrameCount(),
			Rings:         len(e.Rings()),
			Spirals:       len(e.Spirals()),
			HistoryPoints: e.HistoryPoints(),
			FPS:           rl.GetFPS(),
			Paused:        g.Paused(),
		})
		hud.DrawControls(int32(rl.GetScreenHeight()))
		panel.Draw(g)
		rl.EndDrawing()
		g.RecordPresent()

		if maxFrames > 0 && g.FrameCount() >= maxFrames {
			slog.Info("max frames reached", "frame", g.FrameCount())
			break
		}
	}
	return nil
}

// startAudio returns spawn cues, or nil when audio is off or unavailable.
func startAudio(cfg *config.Config, force bool) *audio.Cues {
	if !force && !cfg.Audio.Enabled {
		return nil
	}
	cues, err := audio.New(cfg.Audio)
	if err != nil {
		// Non-fatal, the field runs silently
		slog.Warn("audio unavailable", "error", err)
		return nil
	}
	return cues
}
