package domain

import (
	"maps"
	"sort"
)

// Card is a positioned, sized, stacked note on the board.
// Width and Height are measured in grid units, X and Y in canvas pixels.
type Card struct {
	ID     string  `json:"-"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Z      int64   `json:"z"`
	Text   string  `json:"text"`
}

// Rect returns the card's rectangle in pixels for the given grid unit.
func (c Card) Rect(unit float64) Rect {
	return Rect{X: c.X, Y: c.Y, W: c.Width * unit, H: c.Height * unit}
}

// CardPatch carries the fields an upsert should overwrite. Nil fields are left
// untouched.
type CardPatch struct {
	X      *float64 `json:"x,omitempty"`
	Y      *float64 `json:"y,omitempty"`
	Width  *float64 `json:"width,omitempty"`
	Height *float64 `json:"height,omitempty"`
	Z      *int64   `json:"z,omitempty"`
	Text   *string  `json:"text,omitempty"`
}

// Apply merges the patch into c.
func (p CardPatch) Apply(c *Card) {
	if p.X != nil {
		c.X = *p.X
	}
	if p.Y != nil {
		c.Y = *p.Y
	}
	if p.Width != nil {
		c.Width = *p.Width
	}
	if p.Height != nil {
		c.Height = *p.Height
	}
	if p.Z != nil {
		c.Z = *p.Z
	}
	if p.Text != nil {
		c.Text = *p.Text
	}
}

// PositionPatch is a patch that only moves a card.
func PositionPatch(x, y float64) CardPatch {
	return CardPatch{X: &x, Y: &y}
}

// SizePatch is a patch that only resizes a card.
func SizePatch(w, h float64) CardPatch {
	return CardPatch{Width: &w, Height: &h}
}

// ZPatch is a patch that only restacks a card.
func ZPatch(z int64) CardPatch {
	return CardPatch{Z: &z}
}

// TextPatch is a patch that only edits a card's content.
func TextPatch(text string) CardPatch {
	return CardPatch{Text: &text}
}

// FullPatch overwrites every field of a card.
func FullPatch(c Card) CardPatch {
	return CardPatch{X: &c.X, Y: &c.Y, Width: &c.Width, Height: &c.Height, Z: &c.Z, Text: &c.Text}
}

// Snapshot is the complete keyed mapping of every card on the board.
type Snapshot map[string]Card

// Clone returns a copy that shares nothing with s.
func (s Snapshot) Clone() Snapshot {
	if s == nil {
		return Snapshot{}
	}
	return maps.Clone(s)
}

// Cards returns the cards with IDs populated, ordered bottom to top.
// Ties on Z are broken by ID so the order is stable.
func (s Snapshot) Cards() []Card {
	out := make([]Card, 0, len(s))
	for id, c := range s {
		c.ID = id
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Z != out[j].Z {
			return out[i].Z < out[j].Z
		}
		return out[i].ID < out[j].ID
	})
	return out
}
