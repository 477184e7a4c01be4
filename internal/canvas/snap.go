package canvas

import (
	"math"

	"stickies/internal/domain"
)

// RoundHalfUp is the rounding rule used by Snap: a value exactly halfway
// between two grid lines goes to the larger one (24 → 32 and -24 → -16 on a
// 16 unit grid).
const RoundHalfUp = "half-up"

// Snap returns the multiple of unit nearest to value. A non-positive unit
// disables snapping.
func Snap(value, unit float64) float64 {
	if unit <= 0 {
		return value
	}
	return math.Floor(value/unit+0.5) * unit
}

// SnapPoint snaps both coordinates of p.
func SnapPoint(p domain.Point, unit float64) domain.Point {
	return domain.Point{X: Snap(p.X, unit), Y: Snap(p.Y, unit)}
}

// SnapRect rounds each of left, top, width and height independently.
func SnapRect(r domain.Rect, unit float64) domain.Rect {
	return domain.Rect{
		X: Snap(r.X, unit),
		Y: Snap(r.Y, unit),
		W: Snap(r.W, unit),
		H: Snap(r.H, unit),
	}
}
