// Package transport maps pointer gestures onto a playback position and
// renders the position rail. The mapping is pure: identical inputs always
// give identical outputs, independent of how often it is called.
package transport

import "math"

// DefaultTolerance is the half-height of the band around the rail that
// accepts a drag start.
const DefaultTolerance = 10

// Rail is the horizontal track the handle moves along.
type Rail struct {
	StartX    float64
	EndX      float64
	Y         float64
	Tolerance float64
}

// LayoutFor builds a rail spanning a region of the given width, inset by
// padding on both sides, at row y.
func LayoutFor(left, width, padding, y, tolerance float64) Rail {
	return Rail{
		StartX:    left + padding,
		EndX:      left + width - padding,
		Y:         y,
		Tolerance: tolerance,
	}
}

// Width returns EndX - StartX. It can be zero or negative for degenerate
// layouts.
func (r Rail) Width() float64 {
	return r.EndX - r.StartX
}

// Hit reports whether a gesture starting at (x, y) grabs the rail.
func (r Rail) Hit(x, y float64) bool {
	return x >= r.StartX && x <= r.EndX &&
		y >= r.Y-r.Tolerance && y <= r.Y+r.Tolerance
}

// Value maps a pointer x coordinate to a position in [0, maxValue].
// A rail without width maps everything to 0.
func (r Rail) Value(pointerX float64, maxValue int) int {
	w := r.Width()
	if w <= 0 || maxValue <= 0 {
		return 0
	}
	v := math.Round((pointerX - r.StartX) / w * float64(maxValue))
	if v < 0 {
		return 0
	}
	if v > float64(maxValue) {
		return maxValue
	}
	return int(v)
}

// HandleX maps a position back to the x coordinate of the handle.
func (r Rail) HandleX(value, maxValue int) float64 {
	if maxValue <= 0 {
		return r.StartX
	}
	value = min(max(value, 0), maxValue)
	return r.StartX + float64(value)/float64(maxValue)*r.Width()
}
