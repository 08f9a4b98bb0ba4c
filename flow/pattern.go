package flow

import (
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/stipple/config"
)

// Params configures a pattern run.
type Params struct {
	Width, Height  float32
	ParticleCount  int
	MaxFrames      int
	NoiseIncrement float32
	CellSize       float32
	Magnitude      float32
	MaxSpeed       float32
}

// ParamsFromConfig reads the flow section for a w×h surface.
func ParamsFromConfig(cfg *config.Config, w, h float32) Params {
	f := cfg.Flow
	return Params{
		Width:          w,
		Height:         h,
		ParticleCount:  f.ParticleCount,
		MaxFrames:      f.MaxFrames,
		NoiseIncrement: float32(f.NoiseIncrement),
		CellSize:       float32(f.CellSize),
		Magnitude:      float32(f.Magnitude),
		MaxSpeed:       float32(f.MaxSpeed),
	}
}

// Plotter receives one point per particle per frame.
type Plotter interface {
	Plot(x, y float32, tint Tint)
}

// Pattern owns the particle world and the vector field they follow.
type Pattern struct {
	params Params
	field  *VectorField
	frame  int

	world  *ecs.World
	mapper *ecs.Map4[Position, Velocity, Acceleration, Tint]
	filter *ecs.Filter4[Position, Velocity, Acceleration, Tint]
}

// NewPattern seeds the field and scatters the particles uniformly.
func NewPattern(p Params, seed int64) *Pattern {
	world := ecs.NewWorld()
	pat := &Pattern{
		params: p,
		field:  NewVectorField(p.Width, p.Height, p.CellSize, p.NoiseIncrement, p.Magnitude, seed),
		world:  world,
		mapper: ecs.NewMap4[Position, Velocity, Acceleration, Tint](world),
		filter: ecs.NewFilter4[Position, Velocity, Acceleration, Tint](world),
	}

	rng := rand.New(rand.NewSource(seed))
	for i := 0; i < p.ParticleCount; i++ {
		pos := Position{X: rng.Float32() * p.Width, Y: rng.Float32() * p.Height}
		tint := Tint{Hue: rng.Float32() * 360, Alpha: 0.3 + rng.Float32()*0.5}
		pat.mapper.NewEntity(&pos, &Velocity{}, &Acceleration{}, &tint)
	}
	return pat
}

// Field returns the vector field.
func (p *Pattern) Field() *VectorField { return p.field }

// Frame returns the number of frames stepped.
func (p *Pattern) Frame() int { return p.frame }

// Done reports whether the particles have stopped.
func (p *Pattern) Done() bool {
	return p.params.MaxFrames > 0 && p.frame >= p.params.MaxFrames
}

// Step moves every particle once and plots it on pl (which may be nil).
// It returns false once the pattern is done.
func (p *Pattern) Step(pl Plotter) bool {
	if p.Done() {
		return false
	}
	maxSpeed := p.params.MaxSpeed

	query := p.filter.Query()
	for query.Next() {
		pos, vel, acc, tint := query.Get()

		// follow
		if force, ok := p.field.At(pos.X, pos.Y); ok {
			acc.X += force.X
			acc.Y += force.Y
		}

		// update
		vel.X += acc.X
		vel.Y += acc.Y
		if speed := float32(math.Hypot(float64(vel.X), float64(vel.Y))); maxSpeed > 0 && speed > maxSpeed {
			scale := maxSpeed / speed
			vel.X *= scale
			vel.Y *= scale
		}
		pos.X += vel.X
		pos.Y += vel.Y
		acc.X, acc.Y = 0, 0

		if pl != nil {
			pl.Plot(pos.X, pos.Y, *tint)
		}
	}
	p.frame++
	return true
}

// Each calls fn with every particle's position and tint.
func (p *Pattern) Each(fn func(Position, Tint)) {
	query := p.filter.Query()
	for query.Next() {
		pos, _, _, tint := query.Get()
		fn(*pos, *tint)
	}
}
