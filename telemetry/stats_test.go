package telemetry

import (
	"math"
	"testing"
)

func TestDiameterSummary(t *testing.T) {
	diameters := []float32{5, 5, 5, 5, 5, 5, 5, 5, 10, 15}
	s, buf := DiameterSummary(diameters, 5, nil)

	if math.Abs(s.DiameterMean-6.5) > 1e-9 {
		t.Errorf("mean = %v, want 6.5", s.DiameterMean)
	}
	if s.DiameterP50 != 5 {
		t.Errorf("p50 = %v, want 5", s.DiameterP50)
	}
	if s.DiameterMax != 15 {
		t.Errorf("max = %v, want 15", s.DiameterMax)
	}
	if s.Disturbed != 2 {
		t.Errorf("disturbed = %d, want 2", s.Disturbed)
	}
	if s.DiameterStd <= 0 {
		t.Errorf("std = %v, want positive", s.DiameterStd)
	}
	if len(buf) != len(diameters) {
		t.Errorf("scratch length %d, want %d", len(buf), len(diameters))
	}
}

func TestDiameterSummaryUniformField(t *testing.T) {
	s, _ := DiameterSummary([]float32{5, 5, 5, 5}, 5, make([]float64, 0, 4))
	if s.DiameterStd != 0 || s.DiameterMean != 5 || s.DiameterP90 != 5 {
		t.Errorf("undisturbed field stats: %+v", s)
	}
	if s.Disturbed != 0 {
		t.Errorf("disturbed = %d, want 0", s.Disturbed)
	}
}

func TestDiameterSummaryEmpty(t *testing.T) {
	s, _ := DiameterSummary(nil, 5, nil)
	if s.DiameterMean != 0 || s.DiameterMax != 0 {
		t.Errorf("empty input should give zeros, got %+v", s)
	}
}

func TestDiameterSummaryReusesScratch(t *testing.T) {
	scratch := make([]float64, 0, 16)
	_, buf := DiameterSummary([]float32{1, 2, 3}, 0, scratch)
	if &buf[0] != &scratch[:1][0] {
		t.Error("expected scratch buffer to be reused")
	}
}
