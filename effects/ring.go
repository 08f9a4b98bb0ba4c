package effects

import "github.com/pthm-cable/stipple/geom"

// Ring is an expanding circle centred on its spawn point.
type Ring struct {
	Origin    geom.Point
	Radius    float32
	MaxRadius float32
	Increment float32
}

// NewRing creates a ring at origin with zero radius.
// maxRadius is normally the surface diagonal so the ring reaches every corner.
func NewRing(origin geom.Point, increment, maxRadius float32) Ring {
	return Ring{
		Origin:    origin,
		MaxRadius: maxRadius,
		Increment: increment,
	}
}

// Update grows the ring by its fixed increment.
func (r *Ring) Update() {
	r.Radius += r.Increment
}

// IsDead reports whether the ring has grown past its maximum radius.
func (r *Ring) IsDead() bool {
	return r.Radius > r.MaxRadius
}
