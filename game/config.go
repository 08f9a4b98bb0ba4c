package game

import (
	"github.com/pthm-cable/stipple/config"
	"github.com/pthm-cable/stipple/effects"
	"github.com/pthm-cable/stipple/field"
)

// effectParams converts the spawn-related config sections.
func effectParams(cfg *config.Config) effects.Params {
	s := cfg.Spiral
	return effects.Params{
		RingIncrement:    float32(cfg.Ripple.RadiusIncrement),
		SpiralBatch:      s.BatchCount,
		HistoryLength:    s.HistoryLength,
		MinAngle:         float32(s.MinAngle),
		MaxAngle:         float32(s.MaxAngle),
		MinRotationSpeed: float32(s.MinRotationSpeed),
		MaxRotationSpeed: float32(s.MaxRotationSpeed),
		MinLinearSpeed:   float32(s.MinLinearSpeed),
		MaxLinearSpeed:   float32(s.MaxLinearSpeed),
		Reach:            cfg.Derived.Diagonal,
	}
}

// fieldParams converts the influence-related config sections.
func fieldParams(cfg *config.Config) field.Params {
	return field.Params{
		BaseDiameter:         float32(cfg.Grid.BaseDiameter),
		HoverRadius:          float32(cfg.Hover.Radius),
		HoverMaxIncrease:     float32(cfg.Hover.MaxIncrease),
		RippleWidth:          float32(cfg.Ripple.Width),
		RippleSizeIncrease:   float32(cfg.Ripple.SizeIncrease),
		TrailInfluenceRadius: float32(cfg.Spiral.InfluenceRadius),
		TrailPeakStrength:    float32(cfg.Spiral.PeakStrength),
	}
}
