package effects

import (
	"iter"

	"github.com/pthm-cable/stipple/geom"
)

// History is a fixed-capacity FIFO of positions. Once full, every Push
// overwrites the oldest entry. Index 0 is always the oldest position.
type History struct {
	buf   []geom.Point
	start int
	n     int
}

// NewHistory allocates a history holding at most capacity positions.
func NewHistory(capacity int) History {
	if capacity < 1 {
		capacity = 1
	}
	return History{buf: make([]geom.Point, capacity)}
}

// Push appends p, evicting the oldest entry when at capacity.
func (h *History) Push(p geom.Point) {
	c := len(h.buf)
	if h.n < c {
		h.buf[(h.start+h.n)%c] = p
		h.n++
		return
	}
	h.buf[h.start] = p
	h.start = (h.start + 1) % c
}

// Len returns the number of stored positions.
func (h *History) Len() int { return h.n }

// Cap returns the maximum number of stored positions.
func (h *History) Cap() int { return len(h.buf) }

// At returns the i-th position, oldest first.
func (h *History) At(i int) geom.Point {
	return h.buf[(h.start+i)%len(h.buf)]
}

// Newest returns the most recently pushed position.
func (h *History) Newest() (geom.Point, bool) {
	if h.n == 0 {
		return geom.Point{}, false
	}
	return h.At(h.n - 1), true
}

// All yields (age index, position) pairs from oldest to newest.
func (h *History) All() iter.Seq2[int, geom.Point] {
	return func(yield func(int, geom.Point) bool) {
		for i := 0; i < h.n; i++ {
			if !yield(i, h.At(i)) {
				return
			}
		}
	}
}
