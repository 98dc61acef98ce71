// Package physics provides axis-aligned collision tests and small geometry helpers.
package physics

import "math"

// Rect is an axis-aligned box with its top-left corner at (X, Y).
type Rect struct {
	X, Y float64
	W, H float64
}

// Square returns a size×size box at (x, y).
func Square(x, y, size float64) Rect {
	return Rect{X: x, Y: y, W: size, H: size}
}

// Overlaps reports whether two boxes intersect. Touching edges count as
// overlap, matching the inclusive pixel test of the panel.
func (r Rect) Overlaps(o Rect) bool {
	return r.X <= o.X+o.W && o.X <= r.X+r.W &&
		r.Y <= o.Y+o.H && o.Y <= r.Y+r.H
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.X + r.W
}

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.H
}

// Angle returns the heading in radians from (ax, ay) to (bx, by).
// Screen y grows downward, so upward headings are negative.
func Angle(ax, ay, bx, by float64) float64 {
	return math.Atan2(by-ay, bx-ax)
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampInt limits v to [lo, hi].
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
