package game

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/stipple/config"
	"github.com/pthm-cable/stipple/effects"
	"github.com/pthm-cable/stipple/geom"
)

// autoplay stands in for a user when no input device is attached: it queues
// spawns at random positions on fixed intervals and sweeps the pointer
// along a Lissajous curve.
type autoplay struct {
	rng            *rand.Rand
	width, height  float32
	ringInterval   int64
	spiralInterval int64
}

func newAutoplay(cfg *config.Config, rng *rand.Rand) *autoplay {
	return &autoplay{
		rng:            rng,
		width:          cfg.Derived.ScreenW32,
		height:         cfg.Derived.ScreenH32,
		ringInterval:   int64(cfg.Autoplay.RingInterval),
		spiralInterval: int64(cfg.Autoplay.SpiralInterval),
	}
}

// tick queues this frame's scripted input on g.
func (a *autoplay) tick(g *Game) {
	f := g.frame
	g.SetPointer(a.pointerAt(f))

	if a.ringInterval > 0 && f%a.ringInterval == 0 {
		g.QueueSpawn(effects.KindRing, a.randomPoint())
	}
	if a.spiralInterval > 0 && f%a.spiralInterval == 0 {
		g.QueueSpawn(effects.KindSpiral, a.randomPoint())
	}
}

func (a *autoplay) pointerAt(frame int64) geom.Point {
	t := float64(frame)
	return geom.Point{
		X: a.width/2 + a.width/3*float32(math.Sin(t*0.013)),
		Y: a.height/2 + a.height/3*float32(math.Sin(t*0.021)),
	}
}

func (a *autoplay) randomPoint() geom.Point {
	return geom.Point{
		X: a.rng.Float32() * a.width,
		Y: a.rng.Float32() * a.height,
	}
}
