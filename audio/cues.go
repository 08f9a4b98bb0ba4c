package audio

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/pthm-cable/stipple/config"
	"github.com/pthm-cable/stipple/effects"
)

// Cues plays one tone per spawned effect. A nil *Cues is valid and silent.
type Cues struct {
	rate     beep.SampleRate
	duration time.Duration
	freqs    [2]float64
	mixer    *beep.Mixer
}

// New initialises the speaker. Audio is optional: callers log the error
// and continue with nil cues.
func New(cfg config.AudioConfig) (*Cues, error) {
	c := newCues(cfg)
	if err := speaker.Init(c.rate, c.rate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("initializing speaker: %w", err)
	}
	speaker.Play(c.mixer)
	return c, nil
}

func newCues(cfg config.AudioConfig) *Cues {
	c := &Cues{
		rate:     beep.SampleRate(cfg.SampleRate),
		duration: time.Duration(cfg.DurationMS) * time.Millisecond,
		mixer:    &beep.Mixer{},
	}
	c.freqs[effects.KindRing] = cfg.RingFreq
	c.freqs[effects.KindSpiral] = cfg.SpiralFreq
	return c
}

// streamer builds the tone for kind.
func (c *Cues) streamer(kind effects.Kind) (beep.Streamer, error) {
	if int(kind) >= len(c.freqs) {
		return nil, fmt.Errorf("no tone for effect kind %v", kind)
	}
	return Tone(c.rate, c.freqs[kind], c.duration)
}

// Play queues the tone for kind on the mixer.
func (c *Cues) Play(kind effects.Kind) {
	if c == nil {
		return
	}
	s, err := c.streamer(kind)
	if err != nil {
		return
	}
	speaker.Lock()
	c.mixer.Add(s)
	speaker.Unlock()
}

// Close stops playback.
func (c *Cues) Close() {
	if c == nil {
		return
	}
	speaker.Clear()
}
