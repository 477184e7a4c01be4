package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBounds_ClampRect(t *testing.T) {
	tests := []struct {
		name   string
		bounds Bounds
		in     Rect
		want   Rect
	}{
		{"open canvas keeps the origin", Bounds{}, Rect{X: -48, Y: -16, W: 160, H: 160}, Rect{X: 0, Y: 0, W: 160, H: 160}},
		{"open canvas allows far positions", Bounds{}, Rect{X: 4096, Y: 8192, W: 160, H: 160}, Rect{X: 4096, Y: 8192, W: 160, H: 160}},
		{"right and bottom edges", Bounds{Width: 640, Height: 480}, Rect{X: 600, Y: 400, W: 160, H: 160}, Rect{X: 480, Y: 320, W: 160, H: 160}},
		{"only one axis bounded", Bounds{Width: 640}, Rect{X: 600, Y: -32, W: 160, H: 160}, Rect{X: 480, Y: 0, W: 160, H: 160}},
		{"larger than canvas pins to origin", Bounds{Width: 100, Height: 100}, Rect{X: 32, Y: 32, W: 160, H: 160}, Rect{X: 0, Y: 0, W: 160, H: 160}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.bounds.ClampRect(tt.in))
		})
	}
}

func TestBounds_RestrictEdges(t *testing.T) {
	b := Bounds{Width: 640, Height: 480}
	got := b.RestrictEdges(Rect{X: 320, Y: 320, W: 480, H: 320})
	assert.Equal(t, Rect{X: 320, Y: 320, W: 320, H: 160}, got)
}
