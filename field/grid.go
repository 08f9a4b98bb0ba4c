package field

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/pthm-cable/stipple/effects"
	"github.com/pthm-cable/stipple/geom"
)

// minChunk is the smallest slice of points handed to one worker.
// Below it, goroutine overhead outweighs the split.
const minChunk = 256

// Grid is the fixed set of sample points and their most recent diameters.
type Grid struct {
	Points    []geom.Point
	Diameters []float32
}

// NewGrid lays out points every spacing pixels, starting at spacing and
// stopping short of each edge. Points are ordered column by column.
func NewGrid(width, height, spacing float32) *Grid {
	g := &Grid{}
	if spacing <= 0 {
		return g
	}
	cols := countSteps(width, spacing)
	rows := countSteps(height, spacing)
	g.Points = make([]geom.Point, 0, cols*rows)
	for i := 1; i <= cols; i++ {
		x := float32(i) * spacing
		for j := 1; j <= rows; j++ {
			g.Points = append(g.Points, geom.Point{X: x, Y: float32(j) * spacing})
		}
	}
	g.Diameters = make([]float32, len(g.Points))
	return g
}

// countSteps returns how many multiples of spacing lie strictly inside (0, extent).
func countSteps(extent, spacing float32) int {
	n := 0
	for float32(n+1)*spacing < extent {
		n++
	}
	return n
}

// Len returns the number of points.
func (g *Grid) Len() int { return len(g.Points) }

// Accumulate recomputes every diameter on the calling goroutine.
func (g *Grid) Accumulate(acc *Accumulator, pointer geom.Point, rings []effects.Ring, spirals []effects.Spiral) {
	g.accumulateRange(acc, pointer, rings, spirals, 0, len(g.Points))
}

// AccumulateParallel recomputes every diameter across up to workers goroutines.
// Each point is still computed by exactly one goroutine in the same order as
// Accumulate, so the results are identical. The effect slices must not be
// mutated until it returns.
func (g *Grid) AccumulateParallel(ctx context.Context, acc *Accumulator, pointer geom.Point, rings []effects.Ring, spirals []effects.Spiral, workers int) error {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	n := len(g.Points)
	chunk := (n + workers - 1) / workers
	if workers == 1 || chunk < minChunk {
		g.Accumulate(acc, pointer, rings, spirals)
		return nil
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			g.accumulateRange(acc, pointer, rings, spirals, start, end)
			return nil
		})
	}
	return eg.Wait()
}

func (g *Grid) accumulateRange(acc *Accumulator, pointer geom.Point, rings []effects.Ring, spirals []effects.Spiral, start, end int) {
	for i := start; i < end; i++ {
		g.Diameters[i] = acc.Diameter(g.Points[i], pointer, rings, spirals)
	}
}
