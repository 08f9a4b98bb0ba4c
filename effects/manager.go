package effects

import (
	"math"

	"github.com/pthm-cable/stipple/geom"
)

// Params configures how the manager builds new effects.
type Params struct {
	RingIncrement float32

	SpiralBatch      int
	HistoryLength    int
	MinAngle         float32
	MaxAngle         float32
	MinRotationSpeed float32
	MaxRotationSpeed float32
	MinLinearSpeed   float32
	MaxLinearSpeed   float32

	// Reach is the distance an effect must cover to clear the surface,
	// normally the surface diagonal.
	Reach float32
}

// DefaultParams returns the stock tuning for the given surface size.
func DefaultParams(width, height float32) Params {
	return Params{
		RingIncrement:    10,
		SpiralBatch:      5,
		HistoryLength:    30,
		MinAngle:         0,
		MaxAngle:         2 * math.Pi,
		MinRotationSpeed: 0.01,
		MaxRotationSpeed: 0.05,
		MinLinearSpeed:   5,
		MaxLinearSpeed:   10,
		Reach:            geom.Diagonal(width, height),
	}
}

// Manager owns the live rings and spirals.
// The slices returned by Rings and Spirals are read-only views that stay
// valid until the next call that mutates the manager.
type Manager struct {
	params  Params
	rng     Rand
	rings   []Ring
	spirals []Spiral
}

// NewManager creates an empty manager.
func NewManager(params Params, rng Rand) *Manager {
	return &Manager{
		params:  params,
		rng:     rng,
		rings:   make([]Ring, 0, 16),
		spirals: make([]Spiral, 0, 64),
	}
}

// Params returns the spawn parameters.
func (m *Manager) Params() Params { return m.params }

// SpawnRing adds a ring at origin.
func (m *Manager) SpawnRing(origin geom.Point) {
	m.AddRing(NewRing(origin, m.params.RingIncrement, m.params.Reach))
}

// SpawnSpiralBatch adds count spirals at origin, each with independently
// sampled angle, rotation speed and radius speed.
func (m *Manager) SpawnSpiralBatch(origin geom.Point, count int) {
	p := m.params
	for range count {
		angle := uniform(m.rng, p.MinAngle, p.MaxAngle)
		rot := uniform(m.rng, p.MinRotationSpeed, p.MaxRotationSpeed)
		lin := uniform(m.rng, p.MinLinearSpeed, p.MaxLinearSpeed)
		m.AddSpiral(NewSpiral(origin, angle, rot, lin, p.HistoryLength, p.Reach))
	}
}

// Spawn dispatches on kind using the configured batch size for spirals.
func (m *Manager) Spawn(kind Kind, origin geom.Point) {
	switch kind {
	case KindRing:
		m.SpawnRing(origin)
	case KindSpiral:
		m.SpawnSpiralBatch(origin, m.params.SpiralBatch)
	}
}

// AddRing appends a pre-built ring.
func (m *Manager) AddRing(r Ring) {
	m.rings = append(m.rings, r)
}

// AddSpiral appends a pre-built spiral.
func (m *Manager) AddSpiral(s Spiral) {
	m.spirals = append(m.spirals, s)
}

// AdvanceAll updates every live effect once and removes the ones that died.
func (m *Manager) AdvanceAll() {
	m.spirals = advance(m.spirals)
	m.rings = advance(m.rings)
}

// advance walks s from the back, updating each element and swap-removing the
// dead ones. The element swapped into slot i comes from the tail, which has
// already been visited, so nothing is skipped or updated twice.
func advance[T any, P interface {
	*T
	Effect
}](s []T) []T {
	var zero T
	for i := len(s) - 1; i >= 0; i-- {
		e := P(&s[i])
		e.Update()
		if !e.IsDead() {
			continue
		}
		last := len(s) - 1
		s[i] = s[last]
		s[last] = zero
		s = s[:last]
	}
	return s
}

// Rings returns the live rings.
func (m *Manager) Rings() []Ring { return m.rings }

// Spirals returns the live spirals.
func (m *Manager) Spirals() []Spiral { return m.spirals }

// Len returns the total number of live effects.
func (m *Manager) Len() int { return len(m.rings) + len(m.spirals) }

// HistoryPoints returns the number of trail positions across all spirals.
func (m *Manager) HistoryPoints() int {
	n := 0
	for i := range m.spirals {
		n += m.spirals[i].History.Len()
	}
	return n
}

// Clear drops every live effect.
func (m *Manager) Clear() {
	clear(m.rings)
	clear(m.spirals)
	m.rings = m.rings[:0]
	m.spirals = m.spirals[:0]
}
