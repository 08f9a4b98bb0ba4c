package telemetry

import (
	"testing"
	"time"
)

func TestPerfCollector_PhasesTracked(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartFrame()
		pc.StartPhase(PhaseAdvance)
		time.Sleep(100 * time.Microsecond)
		pc.StartPhase(PhaseAccumulate)
		time.Sleep(200 * time.Microsecond)
		pc.EndFrame()
	}

	stats := pc.Stats()
	if stats.AvgWork <= 0 {
		t.Error("expected positive average frame work")
	}
	if _, ok := stats.PhaseAvg[PhaseAdvance]; !ok {
		t.Error("expected advance phase to be tracked")
	}
	if _, ok := stats.PhaseAvg[PhaseAccumulate]; !ok {
		t.Error("expected accumulate phase to be tracked")
	}
	if stats.MinWork > stats.AvgWork || stats.AvgWork > stats.MaxWork {
		t.Errorf("min/avg/max out of order: %v %v %v", stats.MinWork, stats.AvgWork, stats.MaxWork)
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	pc := NewPerfCollector(5)
	pc.now = clock.now

	// Frame i takes i+1 ms; only the last five (8..12 ms) stay in the window.
	for i := 0; i < 12; i++ {
		pc.StartFrame()
		pc.StartPhase(PhaseAdvance)
		clock.advance(time.Duration(i+1) * time.Millisecond)
		pc.EndFrame()
	}

	stats := pc.Stats()
	if stats.AvgWork != 10*time.Millisecond {
		t.Errorf("AvgWork = %v, want 10ms", stats.AvgWork)
	}
	if stats.MinWork != 8*time.Millisecond || stats.MaxWork != 12*time.Millisecond {
		t.Errorf("min/max = %v/%v, want 8ms/12ms", stats.MinWork, stats.MaxWork)
	}
	if stats.Capacity != 100 {
		t.Errorf("Capacity = %v, want 100", stats.Capacity)
	}
}

// fakeClock advances only when told to.
type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestPerfCollector_PhasePercentages(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	pc := NewPerfCollector(10)
	pc.now = clock.now

	for i := 0; i < 5; i++ {
		pc.StartFrame()
		pc.StartPhase("fast")
		clock.advance(10 * time.Microsecond)
		pc.StartPhase("slow")
		clock.advance(90 * time.Microsecond)
		pc.EndFrame()
	}

	stats := pc.Stats()
	if stats.AvgWork != 100*time.Microsecond {
		t.Errorf("AvgWork = %v, want 100µs", stats.AvgWork)
	}
	if stats.PhasePct["fast"] != 10 || stats.PhasePct["slow"] != 90 {
		t.Errorf("expected fast 10%%, slow 90%%, got %v%% and %v%%", stats.PhasePct["fast"], stats.PhasePct["slow"])
	}
	if stats.PhaseAvg["slow"] != 90*time.Microsecond {
		t.Errorf("slow PhaseAvg = %v, want 90µs", stats.PhaseAvg["slow"])
	}
}

func TestPerfCollector_EmptyStats(t *testing.T) {
	stats := NewPerfCollector(10).Stats()

	if stats.AvgWork != 0 {
		t.Error("expected zero average for empty collector")
	}
	if stats.PhaseAvg == nil || stats.PhasePct == nil {
		t.Error("expected non-nil phase maps")
	}
}

func TestPerfCollector_PresentTiming(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	pc := NewPerfCollector(10)
	pc.now = clock.now

	pc.RecordPresent()
	clock.advance(20 * time.Millisecond)
	pc.RecordPresent()

	stats := pc.Stats()
	if stats.PresentGap != 20*time.Millisecond {
		t.Errorf("expected present gap 20ms, got %v", stats.PresentGap)
	}
	if stats.FPS != 50 {
		t.Errorf("expected 50 FPS with 20ms frames, got %v", stats.FPS)
	}
}

func TestPerfStats_ToCSV(t *testing.T) {
	s := PerfStats{
		AvgWork: 1500 * time.Microsecond,
		PhasePct: map[string]float64{
			PhaseAdvance:    10,
			PhaseAccumulate: 85,
		},
	}

	row := s.ToCSV(600)
	if row.WindowEnd != 600 || row.AvgFrameUS != 1500 {
		t.Errorf("unexpected row: %+v", row)
	}
	if row.AccumulatePct != 85 || row.AdvancePct != 10 || row.RenderPct != 0 {
		t.Errorf("unexpected phase columns: %+v", row)
	}
}

func TestPhasesOrder(t *testing.T) {
	got := Phases()
	want := []string{PhaseSpawn, PhaseAdvance, PhaseAccumulate, PhaseRender, PhaseTelemetry}
	if len(got) != len(want) {
		t.Fatalf("Phases() = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Phases()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	got[0] = "mutated"
	if Phases()[0] != PhaseSpawn {
		t.Error("Phases() exposes internal slice")
	}
}
