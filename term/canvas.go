// Package term runs the dot field in a terminal with tcell. Each terminal
// cell stands for a block of virtual pixels; a dot's diameter picks the
// cell's glyph and brightness.
package term

import (
	"github.com/gdamore/tcell/v2"
)

// ramp orders glyphs from empty to fully enlarged.
var ramp = []rune(" .·•●█")

var background = tcell.NewRGBColor(100, 100, 100)

// Canvas collects a frame's draw calls into terminal cells. It satisfies
// game.Surface. When several dots land in one cell the largest wins.
type Canvas struct {
	cols, rows   int
	cellW, cellH float32
	base, spread float32
	cells        []float32
}

// NewCanvas creates a cols×rows canvas. Diameters at base map to the
// smallest visible glyph and base+spread or more to the largest.
func NewCanvas(cols, rows int, cellW, cellH, base, spread float32) *Canvas {
	if spread <= 0 {
		spread = 1
	}
	return &Canvas{
		cols:   cols,
		rows:   rows,
		cellW:  cellW,
		cellH:  cellH,
		base:   base,
		spread: spread,
		cells:  make([]float32, cols*rows),
	}
}

// Size returns the canvas dimensions in cells.
func (c *Canvas) Size() (cols, rows int) { return c.cols, c.rows }

// Reset clears every cell.
func (c *Canvas) Reset() {
	clear(c.cells)
}

// DrawCircle records a dot in the cell containing (x, y).
func (c *Canvas) DrawCircle(x, y, diameter float32) {
	if x < 0 || y < 0 {
		return
	}
	col, row := int(x/c.cellW), int(y/c.cellH)
	if col >= c.cols || row >= c.rows {
		return
	}
	i := col + row*c.cols
	if diameter > c.cells[i] {
		c.cells[i] = diameter
	}
}

// At returns the largest diameter recorded in a cell.
func (c *Canvas) At(col, row int) float32 {
	return c.cells[col+row*c.cols]
}

// Level maps a diameter to a ramp index.
func (c *Canvas) Level(d float32) int {
	if d <= 0 {
		return 0
	}
	t := (d - c.base) / c.spread
	level := 1 + int(t*float32(len(ramp)-2))
	return min(max(level, 1), len(ramp)-1)
}

// Glyph returns the ramp rune for level.
func Glyph(level int) rune {
	return ramp[min(max(level, 0), len(ramp)-1)]
}

// Style returns the cell style for level: brighter as the dot grows.
func Style(level int) tcell.Style {
	g := int32(160 + 95*level/(len(ramp)-1))
	return tcell.StyleDefault.
		Foreground(tcell.NewRGBColor(g, g, g)).
		Background(background)
}

// Flush writes the canvas to s. It does not call Show.
func (c *Canvas) Flush(s tcell.Screen) {
	for row := 0; row < c.rows; row++ {
		for col := 0; col < c.cols; col++ {
			level := c.Level(c.cells[col+row*c.cols])
			s.SetContent(col, row, Glyph(level), nil, Style(level))
		}
	}
}
