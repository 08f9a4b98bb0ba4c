// Package audio plays short tones when effects spawn.
package audio

import (
	"fmt"
	"math"
	"time"

	"github.com/gopxl/beep"
	beepfx "github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// toneGain scales cue tones below full scale.
const toneGain = 0.4

// Tone returns a sine tone of the given frequency that ends after d.
func Tone(rate beep.SampleRate, freq float64, d time.Duration) (beep.Streamer, error) {
	sine, err := generators.SineTone(rate, freq)
	if err != nil {
		return nil, fmt.Errorf("tone %.0fHz: %w", freq, err)
	}
	return &beepfx.Volume{
		Streamer: beep.Take(rate.N(d), sine),
		Base:     2,
		Volume:   math.Log2(toneGain),
	}, nil
}
