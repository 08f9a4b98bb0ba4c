package field

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/pthm-cable/stipple/effects"
	"github.com/pthm-cable/stipple/geom"
)

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-4
}

func TestNewGridLayout(t *testing.T) {
	g := NewGrid(100, 70, 20)

	// x: 20,40,60,80  y: 20,40,60
	if g.Len() != 12 {
		t.Fatalf("expected 12 points, got %d", g.Len())
	}
	if g.Points[0] != (geom.Point{X: 20, Y: 20}) {
		t.Errorf("first point = %v", g.Points[0])
	}
	if g.Points[1] != (geom.Point{X: 20, Y: 40}) {
		t.Errorf("points should be column-major, second = %v", g.Points[1])
	}
	if g.Points[11] != (geom.Point{X: 80, Y: 60}) {
		t.Errorf("last point = %v", g.Points[11])
	}
	if len(g.Diameters) != g.Len() {
		t.Errorf("diameter buffer length %d != %d", len(g.Diameters), g.Len())
	}
	for _, p := range g.Points {
		if p.X >= 100 || p.Y >= 70 {
			t.Errorf("point %v lies on or past the edge", p)
		}
	}
}

func TestNewGridFineSpacingStaysInside(t *testing.T) {
	const w, h, spacing = 128, 72, 0.1
	g := NewGrid(w, h, spacing)
	if g.Len() == 0 {
		t.Fatal("expected points")
	}

	var maxX, maxY float32
	for _, p := range g.Points {
		if p.X >= w || p.Y >= h {
			t.Fatalf("point %v lies on or past the edge", p)
		}
		maxX = max(maxX, p.X)
		maxY = max(maxY, p.Y)
	}
	// The layout runs up to the last multiple short of each edge.
	if maxX < w-2*spacing || maxY < h-2*spacing {
		t.Errorf("layout stops early: max point (%v, %v)", maxX, maxY)
	}
}

func TestNewGridDegenerate(t *testing.T) {
	if g := NewGrid(0, 600, 20); g.Len() != 0 {
		t.Errorf("zero-width grid has %d points", g.Len())
	}
	if g := NewGrid(800, 600, 0); g.Len() != 0 {
		t.Errorf("zero-spacing grid has %d points", g.Len())
	}
}

func TestHoverZeroOutsideRadius(t *testing.T) {
	acc := NewAccumulator(DefaultParams())
	pointer := geom.Point{X: 400, Y: 300}

	for _, d := range []float32{100, 101, 250, 1000} {
		g := geom.Point{X: 400 + d, Y: 300}
		if got := acc.Hover(g, pointer); got != 0 {
			t.Errorf("hover at distance %v = %v, want 0", d, got)
		}
	}
}

func TestHoverAtPointerIsMax(t *testing.T) {
	p := DefaultParams()
	acc := NewAccumulator(p)
	pointer := geom.Point{X: 40, Y: 60}

	if got := acc.Hover(pointer, pointer); got != p.HoverMaxIncrease {
		t.Errorf("hover at pointer = %v, want %v", got, p.HoverMaxIncrease)
	}
	// halfway in
	if got := acc.Hover(geom.Point{X: 90, Y: 60}, pointer); !approx(got, p.HoverMaxIncrease/2) {
		t.Errorf("hover at half radius = %v, want %v", got, p.HoverMaxIncrease/2)
	}
}

func TestRingContributionScenario(t *testing.T) {
	p := DefaultParams()
	acc := NewAccumulator(p)

	r := effects.NewRing(geom.Point{X: 400, Y: 300}, 10, geom.Diagonal(800, 600))
	for range 5 {
		r.Update()
	}

	near := acc.RingContribution(geom.Point{X: 445, Y: 300}, &r)
	if near <= 0 {
		t.Errorf("point at distance 45 should be influenced, got %v", near)
	}
	if want := (1 - float32(5)/50) * p.RippleSizeIncrease; !approx(near, want) {
		t.Errorf("contribution = %v, want %v", near, want)
	}

	if far := acc.RingContribution(geom.Point{X: 900, Y: 300}, &r); far != 0 {
		t.Errorf("point at distance 500 should be unaffected, got %v", far)
	}

	onEdge := acc.RingContribution(geom.Point{X: 400, Y: 350}, &r)
	if !approx(onEdge, p.RippleSizeIncrease) {
		t.Errorf("point on the ring edge = %v, want %v", onEdge, p.RippleSizeIncrease)
	}
}

func TestSpiralContributionAgeWeighting(t *testing.T) {
	p := DefaultParams()
	acc := NewAccumulator(p)

	s := effects.NewSpiral(geom.Point{X: 0, Y: 0}, 0, 0, 10, 2, 1000)
	s.Update() // head at (10, 0)
	s.Update() // head at (20, 0)

	g := geom.Point{X: 10, Y: 0}
	// oldest at distance 0, weight 1/2; newest at distance 10, weight 2/2
	want := (p.TrailPeakStrength-0)*0.5 + (p.TrailPeakStrength-10/p.TrailInfluenceRadius)*1
	if got := acc.SpiralContribution(g, &s); !approx(got, want) {
		t.Errorf("spiral contribution = %v, want %v", got, want)
	}
}

func TestSpiralBoundingBoxReject(t *testing.T) {
	acc := NewAccumulator(DefaultParams())
	s := effects.NewSpiral(geom.Point{X: 0, Y: 0}, 0, 0.1, 5, 10, 1000)
	for range 5 {
		s.Update()
	}
	// radius 25, influence 40: anything past 65 on either axis is rejected
	if got := acc.SpiralContribution(geom.Point{X: 66, Y: 0}, &s); got != 0 {
		t.Errorf("point outside bounding box got %v", got)
	}
	empty := effects.NewSpiral(geom.Point{}, 0, 0.1, 5, 10, 1000)
	if got := acc.SpiralContribution(geom.Point{}, &empty); got != 0 {
		t.Errorf("spiral with empty trail contributed %v", got)
	}
}

// bruteSpiral is the spiral contribution without the bounding-box reject.
func bruteSpiral(p Params, g geom.Point, s *effects.Spiral) float32 {
	var sum float32
	n := s.History.Len()
	for i, pos := range s.History.All() {
		d := geom.Distance(g, pos)
		if d < p.TrailInfluenceRadius {
			sum += (p.TrailPeakStrength - d/p.TrailInfluenceRadius) * float32(i+1) / float32(n)
		}
	}
	return sum
}

func TestBoundingBoxDoesNotChangeResult(t *testing.T) {
	p := DefaultParams()
	acc := NewAccumulator(p)
	rng := rand.New(rand.NewSource(11))
	m := effects.NewManager(effects.DefaultParams(400, 300), rng)
	m.SpawnSpiralBatch(geom.Point{X: 200, Y: 150}, 5)
	for range 25 {
		m.AdvanceAll()
	}

	grid := NewGrid(400, 300, 10)
	for _, pt := range grid.Points {
		for i := range m.Spirals() {
			s := &m.Spirals()[i]
			if got, want := acc.SpiralContribution(pt, s), bruteSpiral(p, pt, s); !approx(got, want) {
				t.Fatalf("point %v: got %v, brute force %v", pt, got, want)
			}
		}
	}
}

func TestDiameterIsSumOfIndependentContributions(t *testing.T) {
	p := DefaultParams()
	acc := NewAccumulator(p)

	g := geom.Point{X: 100, Y: 100}
	pointer := geom.Point{X: 130, Y: 100}

	s := effects.NewSpiral(geom.Point{X: 100, Y: 100}, 0, 0.05, 4, 30, 1000)
	for range 6 {
		s.Update()
	}
	r := effects.NewRing(geom.Point{X: 60, Y: 100}, 10, 1000)
	for range 4 {
		r.Update()
	}

	spirals := []effects.Spiral{s}
	rings := []effects.Ring{r}

	hover := acc.Hover(g, pointer)
	spiral := acc.SpiralContribution(g, &spirals[0])
	ring := acc.RingContribution(g, &rings[0])
	if hover == 0 || spiral == 0 || ring == 0 {
		t.Fatalf("scene should exercise every source: hover=%v spiral=%v ring=%v", hover, spiral, ring)
	}

	onlySpiral := acc.Diameter(g, geom.Point{X: -1000, Y: -1000}, nil, spirals) - p.BaseDiameter
	onlyRing := acc.Diameter(g, geom.Point{X: -1000, Y: -1000}, rings, nil) - p.BaseDiameter
	if !approx(onlySpiral, spiral) || !approx(onlyRing, ring) {
		t.Errorf("isolated contributions differ: spiral %v/%v ring %v/%v", onlySpiral, spiral, onlyRing, ring)
	}

	got := acc.Diameter(g, pointer, rings, spirals)
	want := p.BaseDiameter + hover + spiral + ring
	if !approx(got, want) {
		t.Errorf("Diameter = %v, want %v", got, want)
	}
}

func TestOverlappingRingsCompound(t *testing.T) {
	p := DefaultParams()
	acc := NewAccumulator(p)
	r := effects.NewRing(geom.Point{}, 10, 1000)
	r.Update()

	g := geom.Point{X: 10, Y: 0}
	one := acc.Diameter(g, geom.Point{X: 5000}, []effects.Ring{r}, nil)
	two := acc.Diameter(g, geom.Point{X: 5000}, []effects.Ring{r, r}, nil)
	if !approx(two-p.BaseDiameter, 2*(one-p.BaseDiameter)) {
		t.Errorf("overlapping rings did not compound: one=%v two=%v", one, two)
	}
}

func TestAccumulateParallelMatchesSerial(t *testing.T) {
	acc := NewAccumulator(DefaultParams())
	m := effects.NewManager(effects.DefaultParams(1280, 720), rand.New(rand.NewSource(5)))
	m.SpawnRing(geom.Point{X: 300, Y: 200})
	m.SpawnSpiralBatch(geom.Point{X: 800, Y: 400}, 5)
	for range 30 {
		m.AdvanceAll()
	}
	pointer := geom.Point{X: 640, Y: 360}

	serial := NewGrid(1280, 720, 10)
	serial.Accumulate(acc, pointer, m.Rings(), m.Spirals())

	parallel := NewGrid(1280, 720, 10)
	if err := parallel.AccumulateParallel(context.Background(), acc, pointer, m.Rings(), m.Spirals(), 4); err != nil {
		t.Fatalf("AccumulateParallel: %v", err)
	}

	for i := range serial.Diameters {
		if serial.Diameters[i] != parallel.Diameters[i] {
			t.Fatalf("point %d: serial %v, parallel %v", i, serial.Diameters[i], parallel.Diameters[i])
		}
	}
}

func TestAccumulateParallelCancelled(t *testing.T) {
	acc := NewAccumulator(DefaultParams())
	g := NewGrid(1280, 720, 5)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := g.AccumulateParallel(ctx, acc, geom.Point{}, nil, nil, 4); err == nil {
		t.Error("expected context error")
	}
}

func benchmarkScene(b *testing.B) (*Grid, *Accumulator, *effects.Manager) {
	b.Helper()
	acc := NewAccumulator(DefaultParams())
	m := effects.NewManager(effects.DefaultParams(1920, 1080), rand.New(rand.NewSource(9)))
	for i := 0; i < 4; i++ {
		m.SpawnRing(geom.Point{X: float32(200 + i*300), Y: 500})
		m.SpawnSpiralBatch(geom.Point{X: float32(300 + i*300), Y: 400}, 5)
	}
	for range 40 {
		m.AdvanceAll()
	}
	return NewGrid(1920, 1080, 20), acc, m
}

func BenchmarkAccumulate(b *testing.B) {
	g, acc, m := benchmarkScene(b)
	pointer := geom.Point{X: 960, Y: 540}
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		g.Accumulate(acc, pointer, m.Rings(), m.Spirals())
	}
}

func BenchmarkAccumulateParallel(b *testing.B) {
	g, acc, m := benchmarkScene(b)
	pointer := geom.Point{X: 960, Y: 540}
	ctx := context.Background()
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		_ = g.AccumulateParallel(ctx, acc, pointer, m.Rings(), m.Spirals(), 0)
	}
}
