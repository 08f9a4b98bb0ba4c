// Package flow generates the flow-field pattern: particles drift over a
// static noise-seeded vector field and leave their positions plotted each
// frame.
package flow

// Position is a particle's location on the surface.
type Position struct {
	X, Y float32
}

// Velocity is a particle's per-frame displacement.
type Velocity struct {
	X, Y float32
}

// Acceleration accumulates field forces until the next update.
type Acceleration struct {
	X, Y float32
}

// Tint holds a particle's stroke colour.
type Tint struct {
	Hue   float32 // 0..360
	Alpha float32 // 0..1
}
