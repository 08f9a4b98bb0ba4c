// Package telemetry records how the field and the frame loop behave over time.
package telemetry

import (
	"log/slog"
	"slices"

	"gonum.org/v1/gonum/stat"
)

// FieldStats summarises one stats window, sampled at its last frame.
type FieldStats struct {
	Frame         int64 `csv:"frame"`
	Rings         int   `csv:"rings"`
	Spirals       int   `csv:"spirals"`
	HistoryPoints int   `csv:"history_points"`

	// Spawns during the window
	RingsSpawned   int `csv:"rings_spawned"`
	SpiralsSpawned int `csv:"spirals_spawned"`

	// Diameter distribution over every dot
	DiameterMean float64 `csv:"diameter_mean"`
	DiameterStd  float64 `csv:"diameter_std"`
	DiameterP50  float64 `csv:"diameter_p50"`
	DiameterP90  float64 `csv:"diameter_p90"`
	DiameterMax  float64 `csv:"diameter_max"`

	// Dots larger than the base diameter
	Disturbed int `csv:"disturbed"`
}

// DiameterSummary computes distribution statistics over diameters.
// scratch is reused for the sorted copy when it has enough capacity.
func DiameterSummary(diameters []float32, base float32, scratch []float64) (s FieldStats, buf []float64) {
	buf = scratch[:0]
	for _, d := range diameters {
		buf = append(buf, float64(d))
		if d > base {
			s.Disturbed++
		}
	}
	if len(buf) == 0 {
		return s, buf
	}

	s.DiameterMean, s.DiameterStd = stat.PopMeanStdDev(buf, nil)
	slices.Sort(buf)
	s.DiameterP50 = stat.Quantile(0.5, stat.LinInterp, buf, nil)
	s.DiameterP90 = stat.Quantile(0.9, stat.LinInterp, buf, nil)
	s.DiameterMax = buf[len(buf)-1]
	return s, buf
}

// LogValue implements slog.LogValuer for structured logging.
func (s FieldStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("frame", s.Frame),
		slog.Int("rings", s.Rings),
		slog.Int("spirals", s.Spirals),
		slog.Int("history_points", s.HistoryPoints),
		slog.Int("rings_spawned", s.RingsSpawned),
		slog.Int("spirals_spawned", s.SpiralsSpawned),
		slog.Float64("diameter_mean", s.DiameterMean),
		slog.Float64("diameter_std", s.DiameterStd),
		slog.Float64("diameter_p50", s.DiameterP50),
		slog.Float64("diameter_p90", s.DiameterP90),
		slog.Float64("diameter_max", s.DiameterMax),
		slog.Int("disturbed", s.Disturbed),
	)
}

// LogStats logs the window stats using slog.
func (s FieldStats) LogStats() {
	slog.Info("stats", "field", s)
}
