package effects

import (
	"math"

	"github.com/pthm-cable/stipple/geom"
)

// Spiral is a point rotating outward from its origin, leaving a bounded trail.
type Spiral struct {
	Origin        geom.Point
	Angle         float32
	Radius        float32
	RotationSpeed float32 // radians per frame
	RadiusSpeed   float32 // pixels per frame
	MaxRadius     float32
	History       History
}

// NewSpiral creates a spiral at origin with an empty trail.
// The maximum radius is extended by radiusSpeed*historyLength past reach so
// the tail has left the surface before the spiral is removed.
func NewSpiral(origin geom.Point, angle, rotationSpeed, radiusSpeed float32, historyLength int, reach float32) Spiral {
	return Spiral{
		Origin:        origin,
		Angle:         angle,
		RotationSpeed: rotationSpeed,
		RadiusSpeed:   radiusSpeed,
		MaxRadius:     reach + radiusSpeed*float32(historyLength),
		History:       NewHistory(historyLength),
	}
}

// Update advances the head along the spiral and records it in the trail.
func (s *Spiral) Update() {
	s.Radius += s.RadiusSpeed
	s.Angle += s.RotationSpeed

	sin, cos := math.Sincos(float64(s.Angle))
	s.History.Push(geom.Point{
		X: s.Origin.X + s.Radius*float32(cos),
		Y: s.Origin.Y + s.Radius*float32(sin),
	})
}

// IsDead reports whether the head has travelled past the maximum radius.
func (s *Spiral) IsDead() bool {
	return s.Radius > s.MaxRadius
}
