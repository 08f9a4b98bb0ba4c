// Package config provides configuration loading and access for the field.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Grid      GridConfig      `yaml:"grid"`
	Hover     HoverConfig     `yaml:"hover"`
	Ripple    RippleConfig    `yaml:"ripple"`
	Spiral    SpiralConfig    `yaml:"spiral"`
	Autoplay  AutoplayConfig  `yaml:"autoplay"`
	Terminal  TerminalConfig  `yaml:"terminal"`
	Audio     AudioConfig     `yaml:"audio"`
	Flow      FlowConfig      `yaml:"flow"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// GridConfig holds the dot grid layout.
type GridConfig struct {
	Spacing      float64 `yaml:"spacing"`       // Distance between neighbouring dots
	BaseDiameter float64 `yaml:"base_diameter"` // Undisturbed dot size
	Workers      int     `yaml:"workers"`       // Accumulation goroutines (1 = serial, 0 = GOMAXPROCS)
}

// HoverConfig holds pointer-proximity enlargement.
type HoverConfig struct {
	Radius      float64 `yaml:"radius"`
	MaxIncrease float64 `yaml:"max_increase"` // Added diameter directly under the pointer
}

// RippleConfig holds the expanding ring effect.
type RippleConfig struct {
	Width           float64 `yaml:"width"`            // Half-thickness of the ring band
	SizeIncrease    float64 `yaml:"size_increase"`    // Added diameter on the ring edge
	RadiusIncrement float64 `yaml:"radius_increment"` // Growth per frame
}

// SpiralConfig holds the rotating trail effect.
type SpiralConfig struct {
	BatchCount       int     `yaml:"batch_count"`    // Spirals per secondary press
	HistoryLength    int     `yaml:"history_length"` // Trail positions kept per spiral
	MinAngle         float64 `yaml:"min_angle"`
	MaxAngle         float64 `yaml:"max_angle"`
	MinRotationSpeed float64 `yaml:"min_rotation_speed"`
	MaxRotationSpeed float64 `yaml:"max_rotation_speed"`
	MinLinearSpeed   float64 `yaml:"min_linear_speed"`
	MaxLinearSpeed   float64 `yaml:"max_linear_speed"`
	InfluenceRadius  float64 `yaml:"influence_radius"`
	PeakStrength     float64 `yaml:"peak_strength"` // Strength of a trail point at distance zero
}

// AutoplayConfig drives scripted spawns in headless runs.
type AutoplayConfig struct {
	RingInterval   int `yaml:"ring_interval"`   // Frames between rings (0 = never)
	SpiralInterval int `yaml:"spiral_interval"` // Frames between spiral batches (0 = never)
}

// TerminalConfig holds the terminal host's virtual surface.
type TerminalConfig struct {
	CellWidth  float64 `yaml:"cell_width"`  // Virtual pixels per terminal column
	CellHeight float64 `yaml:"cell_height"` // Virtual pixels per terminal row
	FPS        int     `yaml:"fps"`
}

// AudioConfig holds spawn cue settings.
type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	SampleRate int     `yaml:"sample_rate"`
	RingFreq   float64 `yaml:"ring_freq"`
	SpiralFreq float64 `yaml:"spiral_freq"`
	DurationMS int     `yaml:"duration_ms"`
}

// FlowConfig holds the flow-field pattern parameters.
type FlowConfig struct {
	ParticleCount  int     `yaml:"particle_count"`
	MaxFrames      int     `yaml:"max_frames"`      // Particles stop moving after this many frames
	NoiseIncrement float64 `yaml:"noise_increment"` // Noise offset step per cell (smaller = smoother)
	CellSize       float64 `yaml:"cell_size"`
	Magnitude      float64 `yaml:"magnitude"` // Force added per frame
	LineThickness  float64 `yaml:"line_thickness"`
	MaxSpeed       float64 `yaml:"max_speed"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow int `yaml:"stats_window"` // Frames per stats window
	PerfWindow  int `yaml:"perf_window"`  // Frames averaged by the perf collector
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ScreenW32 float32 // Screen.Width as float32
	ScreenH32 float32 // Screen.Height as float32
	Diagonal  float32 // Screen diagonal, the reach of every effect
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Validate rejects configurations the engine cannot run with.
// A zero-area surface or a degenerate interpolation range would otherwise
// divide by zero inside the per-frame pass.
func (c *Config) Validate() error {
	var errs []error
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		errs = append(errs, fmt.Errorf("screen: surface must be non-empty, got %dx%d", c.Screen.Width, c.Screen.Height))
	}
	if c.Grid.Spacing <= 0 {
		errs = append(errs, fmt.Errorf("grid: spacing must be positive, got %v", c.Grid.Spacing))
	}
	if c.Hover.Radius <= 0 {
		errs = append(errs, fmt.Errorf("hover: radius must be positive, got %v", c.Hover.Radius))
	}
	if c.Ripple.Width <= 0 {
		errs = append(errs, fmt.Errorf("ripple: width must be positive, got %v", c.Ripple.Width))
	}
	if c.Spiral.InfluenceRadius <= 0 {
		errs = append(errs, fmt.Errorf("spiral: influence_radius must be positive, got %v", c.Spiral.InfluenceRadius))
	}
	if c.Spiral.HistoryLength < 1 {
		errs = append(errs, fmt.Errorf("spiral: history_length must be at least 1, got %d", c.Spiral.HistoryLength))
	}
	if c.Spiral.MinLinearSpeed > c.Spiral.MaxLinearSpeed ||
		c.Spiral.MinRotationSpeed > c.Spiral.MaxRotationSpeed ||
		c.Spiral.MinAngle > c.Spiral.MaxAngle {
		errs = append(errs, errors.New("spiral: every min_* must not exceed its max_*"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
	w, h := float64(c.Screen.Width), float64(c.Screen.Height)
	c.Derived.Diagonal = float32(math.Sqrt(w*w + h*h))
}

// WithScreen returns a copy of c sized for a w×h surface.
func (c *Config) WithScreen(w, h int) *Config {
	out := *c
	out.Screen.Width = w
	out.Screen.Height = h
	out.computeDerived()
	return &out
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
