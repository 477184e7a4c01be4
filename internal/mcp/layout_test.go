package mcpserver

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"stickies/internal/domain"
)

func TestNextPosition_EmptyCanvas(t *testing.T) {
	le := NewLayoutEngine(16)
	x, y := le.NextPosition(nil, 20, 10)
	assert.Equal(t, 0.0, x)
	assert.Equal(t, 0.0, y)
}

func TestNextPosition_BesideExistingCard(t *testing.T) {
	le := NewLayoutEngine(16)
	existing := []domain.Card{{X: 0, Y: 0, Width: 20, Height: 10}}

	x, y := le.NextPosition(existing, 20, 10)
	// 20 units wide plus 2 units of padding
	assert.Equal(t, 352.0, x)
	assert.Equal(t, 0.0, y)
}

func TestNextPosition_NoOverlap(t *testing.T) {
	le := NewLayoutEngine(16)
	existing := []domain.Card{
		{X: 0, Y: 0, Width: 20, Height: 10},
		{X: 352, Y: 0, Width: 20, Height: 10},
		{X: 704, Y: 32, Width: 40, Height: 30},
	}
	x, y := le.NextPosition(existing, 20, 10)

	placed := domain.Rect{X: x, Y: y, W: 320, H: 160}
	for _, c := range existing {
		assert.False(t, placed.Intersects(c.Rect(16)), "overlaps card at (%.0f, %.0f)", c.X, c.Y)
	}
	assert.Zero(t, int(x)%16)
	assert.Zero(t, int(y)%16)
}

func TestArrange(t *testing.T) {
	le := NewLayoutEngine(16)
	cards := []domain.Card{
		{ID: "1", Width: 30, Height: 10},
		{ID: "2", Width: 30, Height: 20},
		{ID: "3", Width: 30, Height: 10},
		{ID: "4", Width: 30, Height: 10},
	}

	arranged := le.Arrange(cards, 0, 0)

	// 96 units per row fits three 30 unit cards with padding
	assert.Equal(t, 0.0, arranged[0].X)
	assert.Equal(t, 512.0, arranged[1].X)
	assert.Equal(t, 1024.0, arranged[2].X)
	assert.Equal(t, 0.0, arranged[3].X)
	assert.Equal(t, 352.0, arranged[3].Y)

	for i := range arranged {
		for j := i + 1; j < len(arranged); j++ {
			a, b := arranged[i].Rect(16), arranged[j].Rect(16)
			assert.False(t, a.Intersects(b), "cards %d and %d overlap", i, j)
		}
	}
}

func TestSnap(t *testing.T) {
	le := NewLayoutEngine(16)
	tests := []struct {
		input, want float64
	}{
		{0, 0},
		{7, 0},
		{8, 16},
		{16, 16},
		{100, 96},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, le.snap(tt.input), "snap(%.0f)", tt.input)
	}
}
