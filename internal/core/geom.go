// Package core provides fundamental types and utilities shared by the game,
// the beat sources and the platform layer. It has no external dependencies
// (especially no Bubble Tea) so gameplay stays pure and testable.
package core

import "cmp"

// Rect is an axis-aligned box in screen cells.
type Rect struct {
	X, Y int // Top-left corner
	W, H int
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate just past the right edge.
func (r Rect) Right() int { return r.X + r.W }

// Bottom returns the y-coordinate just past the bottom edge.
func (r Rect) Bottom() int { return r.Y + r.H }

// Centered returns a w×h rectangle centered inside r.
func (r Rect) Centered(w, h int) Rect {
	return NewRect(r.X+(r.W-w)/2, r.Y+(r.H-h)/2, w, h)
}

// Clamp restricts v to [lo, hi].
func Clamp[T cmp.Ordered](v, lo, hi T) T {
	return min(max(v, lo), hi)
}
