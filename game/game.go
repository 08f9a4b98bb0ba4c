// Package game drives the dot field one frame at a time: it applies queued
// input, advances the effects and recomputes every dot's diameter.
package game

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"

	"github.com/pthm-cable/stipple/config"
	"github.com/pthm-cable/stipple/effects"
	"github.com/pthm-cable/stipple/field"
	"github.com/pthm-cable/stipple/geom"
	"github.com/pthm-cable/stipple/telemetry"
)

// bookmarkHistory is the number of stats windows bookmarks compare against.
const bookmarkHistory = 10

// Surface receives the frame's draw calls.
type Surface interface {
	DrawCircle(x, y, diameter float32)
}

// SpawnRequest is a queued input event.
type SpawnRequest struct {
	Kind effects.Kind
	At   geom.Point
}

// Options configures a Game beyond the loaded config.
type Options struct {
	Seed        int64
	Autoplay    bool   // Scripted spawns and pointer path, for headless runs
	LogStats    bool   // Log field and perf stats every window
	StatsWindow int    // Frames per stats window (0 = use config)
	OutputDir   string // CSV output directory (empty = disabled)
}

// Game holds the complete engine state. It is not safe for concurrent use;
// hosts call it from a single goroutine.
type Game struct {
	cfg *config.Config

	grid    *field.Grid
	acc     *field.Accumulator
	effects *effects.Manager
	workers int

	pointer geom.Point
	pending []SpawnRequest
	onSpawn func(effects.Kind)

	autoplay *autoplay

	paused bool
	frame  int64

	// Telemetry
	perf         *telemetry.PerfCollector
	output       *telemetry.OutputManager
	bookmarks    *telemetry.BookmarkDetector
	statsWindow  int
	logStats     bool
	spawned      [2]int
	statsScratch []float64
}

// New builds a game sized to cfg.Screen.
func New(cfg *config.Config, opts Options) (*Game, error) {
	if cfg.Screen.Width <= 0 || cfg.Screen.Height <= 0 {
		return nil, errors.New("game: surface must be non-empty")
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := output.WriteConfig(cfg); err != nil {
		output.Close()
		return nil, err
	}

	statsWindow := opts.StatsWindow
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}

	w, h := cfg.Derived.ScreenW32, cfg.Derived.ScreenH32
	g := &Game{
		cfg:         cfg,
		grid:        field.NewGrid(w, h, float32(cfg.Grid.Spacing)),
		acc:         field.NewAccumulator(fieldParams(cfg)),
		effects:     effects.NewManager(effectParams(cfg), rand.New(rand.NewSource(opts.Seed))),
		workers:     cfg.Grid.Workers,
		pointer:     geom.Point{X: -w, Y: -h}, // off-surface until the host reports one
		pending:     make([]SpawnRequest, 0, 8),
		perf:        telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		output:      output,
		bookmarks:   telemetry.NewBookmarkDetector(bookmarkHistory),
		statsWindow: statsWindow,
		logStats:    opts.LogStats,
	}
	if opts.Autoplay {
		g.autoplay = newAutoplay(cfg, rand.New(rand.NewSource(opts.Seed+1)))
	}
	g.accumulate()

	if output != nil {
		slog.Info("writing output", "dir", output.Dir())
	}
	return g, nil
}

// SetPointer records the pointer position used by the next frame.
func (g *Game) SetPointer(p geom.Point) {
	g.pointer = p
}

// Pointer returns the current pointer position.
func (g *Game) Pointer() geom.Point { return g.pointer }

// QueueSpawn buffers a spawn until the start of the next frame, so a frame
// in progress never sees effects it has not advanced.
func (g *Game) QueueSpawn(kind effects.Kind, at geom.Point) {
	g.pending = append(g.pending, SpawnRequest{Kind: kind, At: at})
}

// OnSpawn registers fn to be called for every applied spawn.
func (g *Game) OnSpawn(fn func(effects.Kind)) {
	g.onSpawn = fn
}

// TogglePause flips the paused state. While paused, frames re-render the
// last diameters and queued spawns wait.
func (g *Game) TogglePause() { g.paused = !g.paused }

// Paused reports whether the field is frozen.
func (g *Game) Paused() bool { return g.paused }

// Workers returns the accumulation goroutine count (1 = serial, 0 = GOMAXPROCS).
func (g *Game) Workers() int { return g.workers }

// SetWorkers changes the accumulation goroutine count from the next frame.
func (g *Game) SetWorkers(n int) {
	if n < 0 {
		n = 0
	}
	g.workers = n
}

// Clear drops every live effect and every queued spawn.
func (g *Game) Clear() {
	g.effects.Clear()
	g.pending = g.pending[:0]
}

// Step runs one frame without drawing.
func (g *Game) Step() {
	g.Frame(nil)
}

// Frame runs one frame: queued spawns, effect advance, accumulation, then
// one DrawCircle per dot on s. s may be nil.
func (g *Game) Frame(s Surface) {
	g.perf.StartFrame()

	if !g.paused {
		g.perf.StartPhase(telemetry.PhaseSpawn)
		if g.autoplay != nil {
			g.autoplay.tick(g)
		}
		g.applyPending()

		g.perf.StartPhase(telemetry.PhaseAdvance)
		g.effects.AdvanceAll()

		g.perf.StartPhase(telemetry.PhaseAccumulate)
		g.accumulate()
		g.frame++
	}

	if s != nil {
		g.perf.StartPhase(telemetry.PhaseRender)
		g.Render(s)
	}

	if !g.paused && g.statsWindow > 0 && g.frame%int64(g.statsWindow) == 0 {
		g.perf.StartPhase(telemetry.PhaseTelemetry)
		g.flushStats()
	}

	g.perf.EndFrame()
}

// Render draws the diameters computed by the last frame.
func (g *Game) Render(s Surface) {
	for i, p := range g.grid.Points {
		s.DrawCircle(p.X, p.Y, g.grid.Diameters[i])
	}
}

func (g *Game) applyPending() {
	for _, req := range g.pending {
		g.effects.Spawn(req.Kind, req.At)
		if int(req.Kind) < len(g.spawned) {
			g.spawned[req.Kind]++
		}
		if g.onSpawn != nil {
			g.onSpawn(req.Kind)
		}
	}
	g.pending = g.pending[:0]
}

func (g *Game) accumulate() {
	rings, spirals := g.effects.Rings(), g.effects.Spirals()
	if g.workers == 1 {
		g.grid.Accumulate(g.acc, g.pointer, rings, spirals)
		return
	}
	if err := g.grid.AccumulateParallel(context.Background(), g.acc, g.pointer, rings, spirals, g.workers); err != nil {
		slog.Error("accumulating field", "error", err)
	}
}

// FieldStats summarises the current frame.
func (g *Game) FieldStats() telemetry.FieldStats {
	s, buf := telemetry.DiameterSummary(g.grid.Diameters, g.acc.Params().BaseDiameter, g.statsScratch)
	g.statsScratch = buf
	s.Frame = g.frame
	s.Rings = len(g.effects.Rings())
	s.Spirals = len(g.effects.Spirals())
	s.HistoryPoints = g.effects.HistoryPoints()
	s.RingsSpawned = g.spawned[effects.KindRing]
	s.SpiralsSpawned = g.spawned[effects.KindSpiral]
	return s
}

func (g *Game) flushStats() {
	fs := g.FieldStats()
	ps := g.perf.Stats()
	g.spawned = [2]int{}

	if g.logStats {
		fs.LogStats()
		ps.LogStats()
	}
	if err := g.output.WriteField(fs); err != nil {
		slog.Error("failed to write field stats", "error", err)
	}
	if err := g.output.WritePerf(ps, g.frame); err != nil {
		slog.Error("failed to write perf stats", "error", err)
	}

	for _, bm := range g.bookmarks.Check(fs, g.grid.Len()) {
		if g.logStats {
			bm.LogBookmark()
		}
		if err := g.output.WriteBookmark(bm); err != nil {
			slog.Error("failed to write bookmark", "error", err)
		}
	}
}

// RecordPresent marks that the host showed a frame on screen.
func (g *Game) RecordPresent() { g.perf.RecordPresent() }

// PerfStats returns the rolling performance window.
func (g *Game) PerfStats() telemetry.PerfStats { return g.perf.Stats() }

// FrameCount returns the number of frames advanced so far.
func (g *Game) FrameCount() int64 { return g.frame }

// Effects returns the effect manager for read-only inspection.
func (g *Game) Effects() *effects.Manager { return g.effects }

// Grid returns the dot grid for read-only inspection.
func (g *Game) Grid() *field.Grid { return g.grid }

// Config returns the configuration the game was built with.
func (g *Game) Config() *config.Config { return g.cfg }

// Unload flushes and closes run output.
func (g *Game) Unload() {
	if err := g.output.Close(); err != nil {
		slog.Error("closing output", "error", err)
	}
	g.output = nil
}
