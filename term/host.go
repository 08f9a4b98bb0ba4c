package term

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/stipple/config"
	"github.com/pthm-cable/stipple/effects"
	"github.com/pthm-cable/stipple/game"
	"github.com/pthm-cable/stipple/geom"
)

// Host drives a game on a tcell screen.
type Host struct {
	screen  tcell.Screen
	game    *game.Game
	canvas  *Canvas
	cellW   float32
	cellH   float32
	fps     int
	buttons tcell.ButtonMask
}

// New builds a game sized to the screen's virtual surface:
// cols·cell_width by rows·cell_height pixels. screen must be initialised.
func New(screen tcell.Screen, cfg *config.Config, opts game.Options) (*Host, error) {
	cols, rows := screen.Size()
	if cols <= 0 || rows <= 0 {
		return nil, errors.New("term: screen has no cells")
	}
	tc := cfg.Terminal
	if tc.CellWidth <= 0 || tc.CellHeight <= 0 {
		return nil, fmt.Errorf("term: cell size must be positive, got %vx%v", tc.CellWidth, tc.CellHeight)
	}

	w := int(float64(cols) * tc.CellWidth)
	h := int(float64(rows) * tc.CellHeight)
	g, err := game.New(cfg.WithScreen(w, h), opts)
	if err != nil {
		return nil, fmt.Errorf("term: %w", err)
	}

	screen.EnableMouse()
	screen.HideCursor()

	fps := tc.FPS
	if fps <= 0 {
		fps = 30
	}
	return &Host{
		screen: screen,
		game:   g,
		canvas: NewCanvas(cols, rows, float32(tc.CellWidth), float32(tc.CellHeight),
			float32(cfg.Grid.BaseDiameter), float32(cfg.Hover.MaxIncrease+cfg.Ripple.SizeIncrease)),
		cellW: float32(tc.CellWidth),
		cellH: float32(tc.CellHeight),
		fps:   fps,
	}, nil
}

// Game returns the hosted game.
func (h *Host) Game() *game.Game { return h.game }

// Canvas returns the terminal canvas.
func (h *Host) Canvas() *Canvas { return h.canvas }

// Run reads input on a separate goroutine and advances one frame per tick
// until a quit key, ctx cancellation or maxFrames (0 = unlimited).
func (h *Host) Run(ctx context.Context, maxFrames int64) error {
	events := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)

	go func() {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(h.fps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev := <-events:
			if !h.HandleEvent(ev) {
				slog.Info("quit requested", "frame", h.game.FrameCount())
				return nil
			}

		case <-ticker.C:
			h.Frame()
			if maxFrames > 0 && h.game.FrameCount() >= maxFrames {
				slog.Info("max frames reached", "frame", h.game.FrameCount())
				return nil
			}
		}
	}
}

// HandleEvent applies one terminal event. It returns false on a quit key.
func (h *Host) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
			return false
		case ev.Key() == tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case ' ':
				h.game.TogglePause()
			case 'c':
				h.game.Clear()
			}
		}

	case *tcell.EventMouse:
		col, row := ev.Position()
		at := geom.Point{
			X: (float32(col) + 0.5) * h.cellW,
			Y: (float32(row) + 0.5) * h.cellH,
		}
		h.game.SetPointer(at)

		// spawn on the press edge only; motion with a held button repeats the mask
		btns := ev.Buttons()
		pressed := btns &^ h.buttons
		h.buttons = btns
		if pressed&tcell.Button1 != 0 {
			h.game.QueueSpawn(effects.KindRing, at)
		}
		if pressed&tcell.Button2 != 0 {
			h.game.QueueSpawn(effects.KindSpiral, at)
		}

	case *tcell.EventResize:
		h.screen.Sync()
	}
	return true
}

// Frame advances the game one frame and presents it.
func (h *Host) Frame() {
	h.canvas.Reset()
	h.game.Frame(h.canvas)
	h.canvas.Flush(h.screen)
	h.drawStatus()
	h.screen.Show()
	h.game.RecordPresent()
}

func (h *Host) drawStatus() {
	e := h.game.Effects()
	status := fmt.Sprintf(" frame %d  rings %d  spirals %d ", h.game.FrameCount(), len(e.Rings()), len(e.Spirals()))
	if h.game.Paused() {
		status += "[paused] "
	}
	style := tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorLightGray)
	for i, r := range status {
		h.screen.SetContent(i, 0, r, nil, style)
	}
}

// Close releases run output. The caller still owns the screen.
func (h *Host) Close() {
	h.game.Unload()
}
