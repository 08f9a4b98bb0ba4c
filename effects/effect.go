// Package effects implements the transient disturbances that perturb the dot
// field: expanding rings and rotating spirals, plus the manager that owns them.
package effects

// Kind identifies an effect variant.
type Kind uint8

const (
	KindRing Kind = iota
	KindSpiral
)

func (k Kind) String() string {
	switch k {
	case KindRing:
		return "ring"
	case KindSpiral:
		return "spiral"
	}
	return "unknown"
}

// Effect is the per-frame contract shared by every effect variant.
// Once IsDead reports true it stays true; the manager removes the effect in
// the same AdvanceAll call.
type Effect interface {
	Update()
	IsDead() bool
}

// Rand is the random source used to sample spiral parameters.
// *math/rand.Rand satisfies it.
type Rand interface {
	Float32() float32
}

// uniform draws from [lo, hi) using r.
func uniform(r Rand, lo, hi float32) float32 {
	return lo + r.Float32()*(hi-lo)
}
