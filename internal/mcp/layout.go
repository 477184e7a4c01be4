package mcpserver

import (
	"stickies/internal/canvas"
	"stickies/internal/domain"
)

const (
	Padding = 2.0  // grid units between cards
	MaxRowW = 96.0 // grid units before a row wraps
)

// LayoutEngine places cards on the grid so MCP-created cards don't overlap
// existing ones.
type LayoutEngine struct {
	unit    float64 // pixels per grid unit
	padding float64 // pixels
	maxRowW float64 // pixels
}

func NewLayoutEngine(unit float64) *LayoutEngine {
	return &LayoutEngine{
		unit:    unit,
		padding: Padding * unit,
		maxRowW: MaxRowW * unit,
	}
}

func (le *LayoutEngine) snap(v float64) float64 {
	return canvas.Snap(v, le.unit)
}

// NextPosition finds the first grid position, scanning rows top to bottom,
// where a card of w by h grid units clears every existing card by the padding.
func (le *LayoutEngine) NextPosition(existing []domain.Card, w, h float64) (float64, float64) {
	if len(existing) == 0 {
		return 0, 0
	}

	occupied := make([]domain.Rect, len(existing))
	for i, c := range existing {
		r := c.Rect(le.unit)
		occupied[i] = domain.Rect{
			X: r.X - le.padding,
			Y: r.Y - le.padding,
			W: r.W + le.padding*2,
			H: r.H + le.padding*2,
		}
	}

	candidate := domain.Rect{W: w * le.unit, H: h * le.unit}
	for y := 0.0; y < 100000; y += le.unit {
		for x := 0.0; x < le.maxRowW; x += le.unit {
			candidate.X, candidate.Y = x, y
			overlaps := false
			for _, occ := range occupied {
				if candidate.Intersects(occ) {
					overlaps = true
					break
				}
			}
			if !overlaps {
				return x, y
			}
		}
	}

	// below everything
	maxY := 0.0
	for _, c := range existing {
		maxY = max(maxY, c.Rect(le.unit).Bottom())
	}
	return 0, le.snap(maxY + le.padding)
}

// Arrange lays cards out left to right in rows starting at (startX, startY)
// and returns them with updated positions.
func (le *LayoutEngine) Arrange(cards []domain.Card, startX, startY float64) []domain.Card {
	x := le.snap(startX)
	y := le.snap(startY)
	rowHeight := 0.0

	for i := range cards {
		r := cards[i].Rect(le.unit)
		if x > le.snap(startX) && x+r.W > le.maxRowW {
			x = le.snap(startX)
			y += le.snap(rowHeight + le.padding)
			rowHeight = 0
		}
		cards[i].X = x
		cards[i].Y = y
		rowHeight = max(rowHeight, r.H)
		x += le.snap(r.W + le.padding)
	}
	return cards
}
