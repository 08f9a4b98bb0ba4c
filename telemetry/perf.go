package telemetry

import (
	"log/slog"
	"slices"
	"time"
)

// Phase names for a frame.
const (
	PhaseSpawn      = "spawn"
	PhaseAdvance    = "advance"
	PhaseAccumulate = "accumulate"
	PhaseRender     = "render"
	PhaseTelemetry  = "telemetry"
)

// phaseOrder is the order phases are reported in.
var phaseOrder = []string{PhaseSpawn, PhaseAdvance, PhaseAccumulate, PhaseRender, PhaseTelemetry}

// Phases returns the frame phases in report order.
func Phases() []string {
	return slices.Clone(phaseOrder)
}

// PerfSample holds timing data for a single frame.
type PerfSample struct {
	Work   time.Duration
	Phases map[string]time.Duration
}

// PerfCollector keeps a rolling window of per-frame phase timings.
type PerfCollector struct {
	now     func() time.Time
	samples []PerfSample
	next    int
	filled  int

	phases     map[string]time.Duration
	frameStart time.Time
	phaseStart time.Time
	phase      string

	// Wall-clock time between presented frames
	lastPresent time.Time
	presentGap  time.Duration
}

// NewPerfCollector creates a collector averaging over window frames.
func NewPerfCollector(window int) *PerfCollector {
	if window < 1 {
		window = 60
	}
	return &PerfCollector{
		now:     time.Now,
		samples: make([]PerfSample, window),
		phases:  make(map[string]time.Duration),
	}
}

// StartFrame begins timing the work of a new frame.
func (p *PerfCollector) StartFrame() {
	p.frameStart = p.now()
	p.phases = make(map[string]time.Duration)
	p.phase = ""
}

// StartPhase closes the running phase, if any, and starts timing phase.
func (p *PerfCollector) StartPhase(phase string) {
	now := p.now()
	p.closePhase(now)
	p.phaseStart = now
	p.phase = phase
}

// EndFrame closes the running phase and stores the frame's sample.
func (p *PerfCollector) EndFrame() {
	now := p.now()
	p.closePhase(now)

	p.samples[p.next] = PerfSample{
		Work:   now.Sub(p.frameStart),
		Phases: p.phases,
	}
	p.next = (p.next + 1) % len(p.samples)
	if p.filled < len(p.samples) {
		p.filled++
	}
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.phase != "" {
		p.phases[p.phase] += now.Sub(p.phaseStart)
		p.phase = ""
	}
}

// RecordPresent records that a frame was shown on screen.
func (p *PerfCollector) RecordPresent() {
	now := p.now()
	if !p.lastPresent.IsZero() {
		p.presentGap = now.Sub(p.lastPresent)
	}
	p.lastPresent = now
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	AvgWork time.Duration
	MinWork time.Duration
	MaxWork time.Duration

	// Average time and share of work per phase
	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64

	// Frames per second the work alone would allow
	Capacity float64

	// Presented frame rate (graphical hosts)
	PresentGap time.Duration
	FPS        float64
}

// Stats aggregates the current window.
func (p *PerfCollector) Stats() PerfStats {
	out := PerfStats{
		PhaseAvg:   make(map[string]time.Duration),
		PhasePct:   make(map[string]float64),
		PresentGap: p.presentGap,
	}
	if p.presentGap > 0 {
		out.FPS = float64(time.Second) / float64(p.presentGap)
	}
	if p.filled == 0 {
		return out
	}

	var total time.Duration
	sums := make(map[string]time.Duration)
	for i := 0; i < p.filled; i++ {
		s := p.samples[i]
		total += s.Work
		if i == 0 || s.Work < out.MinWork {
			out.MinWork = s.Work
		}
		out.MaxWork = max(out.MaxWork, s.Work)
		for phase, d := range s.Phases {
			sums[phase] += d
		}
	}

	n := time.Duration(p.filled)
	out.AvgWork = total / n
	for phase, sum := range sums {
		out.PhaseAvg[phase] = sum / n
		if out.AvgWork > 0 {
			out.PhasePct[phase] = float64(out.PhaseAvg[phase]) / float64(out.AvgWork) * 100
		}
	}
	if out.AvgWork > 0 {
		out.Capacity = float64(time.Second) / float64(out.AvgWork)
	}
	return out
}

// LogStats logs the stats at info level.
func (s PerfStats) LogStats() {
	slog.Info("perf", "perf", s)
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_frame_us", s.AvgWork.Microseconds()),
		slog.Int64("min_frame_us", s.MinWork.Microseconds()),
		slog.Int64("max_frame_us", s.MaxWork.Microseconds()),
		slog.Int("capacity_fps", int(s.Capacity)),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Int("fps", int(s.FPS)))
	}
	for _, phase := range phaseOrder {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			attrs = append(attrs, slog.Float64(phase+"_pct", float64(int(pct*10))/10))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	WindowEnd     int64   `csv:"window_end"`
	AvgFrameUS    int64   `csv:"avg_frame_us"`
	MinFrameUS    int64   `csv:"min_frame_us"`
	MaxFrameUS    int64   `csv:"max_frame_us"`
	CapacityFPS   float64 `csv:"capacity_fps"`
	FPS           float64 `csv:"fps"`
	SpawnPct      float64 `csv:"spawn_pct"`
	AdvancePct    float64 `csv:"advance_pct"`
	AccumulatePct float64 `csv:"accumulate_pct"`
	RenderPct     float64 `csv:"render_pct"`
	TelemetryPct  float64 `csv:"telemetry_pct"`
}

// ToCSV flattens the stats for the window ending at frame windowEnd.
func (s PerfStats) ToCSV(windowEnd int64) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:     windowEnd,
		AvgFrameUS:    s.AvgWork.Microseconds(),
		MinFrameUS:    s.MinWork.Microseconds(),
		MaxFrameUS:    s.MaxWork.Microseconds(),
		CapacityFPS:   s.Capacity,
		FPS:           s.FPS,
		SpawnPct:      s.PhasePct[PhaseSpawn],
		AdvancePct:    s.PhasePct[PhaseAdvance],
		AccumulatePct: s.PhasePct[PhaseAccumulate],
		RenderPct:     s.PhasePct[PhaseRender],
		TelemetryPct:  s.PhasePct[PhaseTelemetry],
	}
}
