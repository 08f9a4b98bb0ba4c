package flow

import (
	"math"

	"github.com/ojrac/opensimplex-go"
)

// Vector is a 2D force.
type Vector struct {
	X, Y float32
}

// VectorField is a static grid of unit-direction forces scaled to a fixed
// magnitude, one per cell, row-major.
type VectorField struct {
	Cols, Rows int
	CellSize   float32
	Vectors    []Vector
}

// NewVectorField samples normalized noise over a w×h surface. Each cell's
// angle is noise·4π, with the noise offset advancing by increment per cell.
func NewVectorField(w, h, cellSize, increment, magnitude float32, seed int64) *VectorField {
	f := &VectorField{CellSize: cellSize}
	if cellSize <= 0 || w <= 0 || h <= 0 {
		return f
	}
	f.Cols = int(w / cellSize)
	f.Rows = int(h / cellSize)
	f.Vectors = make([]Vector, f.Cols*f.Rows)

	noise := opensimplex.NewNormalized(seed)
	yoff := 0.0
	for y := 0; y < f.Rows; y++ {
		xoff := 0.0
		for x := 0; x < f.Cols; x++ {
			angle := noise.Eval2(xoff, yoff) * 2 * math.Pi * 2
			sin, cos := math.Sincos(angle)
			f.Vectors[x+y*f.Cols] = Vector{
				X: float32(cos) * magnitude,
				Y: float32(sin) * magnitude,
			}
			xoff += float64(increment)
		}
		yoff += float64(increment)
	}
	return f
}

// At returns the force of the cell containing (x, y). ok is false outside
// the field, including the partial cells past the last full column or row.
func (f *VectorField) At(x, y float32) (v Vector, ok bool) {
	if x < 0 || y < 0 || f.CellSize <= 0 {
		return Vector{}, false
	}
	col := int(x / f.CellSize)
	row := int(y / f.CellSize)
	if col >= f.Cols || row >= f.Rows {
		return Vector{}, false
	}
	return f.Vectors[col+row*f.Cols], true
}
