package geom

import (
	"math"
	"testing"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name string
		a, b Point
		want float32
	}{
		{"same point", Point{3, 4}, Point{3, 4}, 0},
		{"3-4-5", Point{0, 0}, Point{3, 4}, 5},
		{"negative coords", Point{-1, -1}, Point{2, 3}, 5},
		{"horizontal", Point{10, 7}, Point{-20, 7}, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Distance(tt.a, tt.b)
			if math.Abs(float64(got-tt.want)) > 1e-5 {
				t.Errorf("Distance(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			if back := Distance(tt.b, tt.a); back != got {
				t.Errorf("distance not symmetric: %v vs %v", got, back)
			}
		})
	}
}

func TestScaleBetweenRanges(t *testing.T) {
	tests := []struct {
		name                               string
		value, minSrc, maxSrc, minDst, max float32
		want                               float32
	}{
		{"lower bound", 0, 0, 100, 0, 10, 0},
		{"upper bound", 100, 0, 100, 0, 10, 10},
		{"midpoint", 50, 0, 100, 0, 10, 5},
		{"offset ranges", 15, 10, 20, 100, 200, 150},
		{"inverted destination", 25, 0, 100, 10, 0, 7.5},
		{"extrapolates", 200, 0, 100, 0, 10, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScaleBetweenRanges(tt.value, tt.minSrc, tt.maxSrc, tt.minDst, tt.max)
			if math.Abs(float64(got-tt.want)) > 1e-5 {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDiagonal(t *testing.T) {
	if got := Diagonal(800, 600); got != 1000 {
		t.Errorf("Diagonal(800, 600) = %v, want 1000", got)
	}
	if got := Diagonal(0, 0); got != 0 {
		t.Errorf("Diagonal(0, 0) = %v, want 0", got)
	}
}

func TestAbs(t *testing.T) {
	if Abs(-2.5) != 2.5 || Abs(2.5) != 2.5 || Abs(0) != 0 {
		t.Error("Abs returned wrong magnitude")
	}
}
