package domain

import "math"

// Point is a location or a displacement in canvas pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is an axis-aligned rectangle in canvas pixels.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"width"`
	H float64 `json:"height"`
}

func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Intersects reports whether r and o overlap.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.Right() && r.Right() > o.X &&
		r.Y < o.Bottom() && r.Bottom() > o.Y
}

// Bounds is the canvas area cards are restricted to. The canvas starts at the
// origin; a zero extent leaves the far edge of that axis open.
type Bounds struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// ClampRect moves r so it lies inside b. The left and top edges never go
// below zero. A rect larger than b is pinned to the origin on that axis.
func (b Bounds) ClampRect(r Rect) Rect {
	r.X = clamp(r.X, 0, farEdge(b.Width, r.W))
	r.Y = clamp(r.Y, 0, farEdge(b.Height, r.H))
	return r
}

func farEdge(extent, size float64) float64 {
	if extent <= 0 {
		return math.Inf(1)
	}
	return extent - size
}

// RestrictEdges shrinks the right and bottom edges of r so they do not cross
// b. The left and top edges are not moved.
func (b Bounds) RestrictEdges(r Rect) Rect {
	if b.Width > 0 && r.Right() > b.Width {
		r.W = max(b.Width-r.X, 0)
	}
	if b.Height > 0 && r.Bottom() > b.Height {
		r.H = max(b.Height-r.Y, 0)
	}
	return r
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		return lo
	}
	return min(max(v, lo), hi)
}

// Size is a card extent in grid units.
type Size struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// Fit raises w and h to at least s.
func (s Size) Fit(w, h float64) (float64, float64) {
	return max(w, s.Width), max(h, s.Height)
}
