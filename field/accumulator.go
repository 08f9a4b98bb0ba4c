// Package field holds the grid of sample points and the per-frame influence
// pass that turns pointer proximity and live effects into dot diameters.
package field

import (
	"github.com/pthm-cable/stipple/effects"
	"github.com/pthm-cable/stipple/geom"
)

// Params tunes how strongly each influence source enlarges a dot.
type Params struct {
	BaseDiameter float32

	HoverRadius      float32
	HoverMaxIncrease float32

	RippleWidth        float32
	RippleSizeIncrease float32

	TrailInfluenceRadius float32
	TrailPeakStrength    float32
}

// DefaultParams returns the stock tuning.
func DefaultParams() Params {
	return Params{
		BaseDiameter:         5,
		HoverRadius:          100,
		HoverMaxIncrease:     10,
		RippleWidth:          50,
		RippleSizeIncrease:   10,
		TrailInfluenceRadius: 40,
		TrailPeakStrength:    5,
	}
}

// Accumulator folds every influence source into a single diameter per point.
// It only reads effect state.
type Accumulator struct {
	p Params
}

// NewAccumulator creates an accumulator.
func NewAccumulator(p Params) *Accumulator {
	return &Accumulator{p: p}
}

// Params returns the accumulator tuning.
func (a *Accumulator) Params() Params { return a.p }

// Diameter returns the rendered diameter of the dot at g.
// All contributions are additive; overlapping effects compound.
func (a *Accumulator) Diameter(g, pointer geom.Point, rings []effects.Ring, spirals []effects.Spiral) float32 {
	d := a.p.BaseDiameter + a.Hover(g, pointer)
	for i := range spirals {
		d += a.SpiralContribution(g, &spirals[i])
	}
	for i := range rings {
		d += a.RingContribution(g, &rings[i])
	}
	return d
}

// Hover returns the pointer-proximity enlargement at g, zero beyond the hover radius.
func (a *Accumulator) Hover(g, pointer geom.Point) float32 {
	dist := geom.Distance(g, pointer)
	if dist >= a.p.HoverRadius {
		return 0
	}
	return geom.ScaleBetweenRanges(a.p.HoverRadius-dist, 0, a.p.HoverRadius, 0, a.p.HoverMaxIncrease)
}

// SpiralContribution sums the age-weighted influence of s's trail at g.
func (a *Accumulator) SpiralContribution(g geom.Point, s *effects.Spiral) float32 {
	reach := s.Radius + a.p.TrailInfluenceRadius
	// bounding-box reject before touching the trail
	if geom.Abs(s.Origin.X-g.X) > reach || geom.Abs(s.Origin.Y-g.Y) > reach {
		return 0
	}

	n := s.History.Len()
	if n == 0 {
		return 0
	}
	radius := a.p.TrailInfluenceRadius
	invLen := 1 / float32(n)

	var sum float32
	for i := 0; i < n; i++ {
		dist := geom.Distance(g, s.History.At(i))
		if dist >= radius {
			continue
		}
		strength := a.p.TrailPeakStrength - dist/radius
		sum += strength * float32(i+1) * invLen
	}
	return sum
}

// RingContribution returns r's enlargement at g, peaking on the ring's edge.
func (a *Accumulator) RingContribution(g geom.Point, r *effects.Ring) float32 {
	off := geom.Abs(geom.Distance(g, r.Origin) - r.Radius)
	if off >= a.p.RippleWidth {
		return 0
	}
	return (1 - off/a.p.RippleWidth) * a.p.RippleSizeIncrease
}
