// Package geom holds the small geometry helpers shared by the field and the effects.
package geom

import "math"

// Point is a position on the drawing surface, in pixels.
type Point struct {
	X, Y float32
}

// Distance returns the Euclidean distance between a and b.
// Called once per (point, effect sample) pair every frame, so it stays a
// plain sum of squares and a single square root.
func Distance(a, b Point) float32 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return float32(math.Sqrt(float64(dx*dx + dy*dy)))
}

// ScaleBetweenRanges linearly maps value from [minSrc, maxSrc] to [minDst, maxDst].
// The source range must not be degenerate; minSrc == maxSrc divides by zero.
func ScaleBetweenRanges(value, minSrc, maxSrc, minDst, maxDst float32) float32 {
	return (value-minSrc)*(maxDst-minDst)/(maxSrc-minSrc) + minDst
}

// Diagonal returns the length of a w×h rectangle's diagonal.
func Diagonal(w, h float32) float32 {
	return float32(math.Sqrt(float64(w*w + h*h)))
}

// Abs returns |x| without the float64 round trip of math.Abs.
func Abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
