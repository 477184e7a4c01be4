package canvas

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"stickies/internal/domain"
)

func TestSnap(t *testing.T) {
	tests := []struct {
		value, unit, want float64
	}{
		{0, 16, 0},
		{7, 16, 0},
		{8, 16, 16}, // half rounds up
		{24, 16, 32},
		{25, 16, 32},
		{40, 16, 48},
		{-7, 16, 0},
		{-8, 16, 0}, // half rounds toward +inf
		{-24, 16, -16},
		{-25, 16, -32},
		{100, 30, 90},
		{13.5, 0, 13.5}, // snapping disabled
		{13.5, -4, 13.5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Snap(tt.value, tt.unit), "Snap(%v, %v)", tt.value, tt.unit)
	}
}

func TestSnap_Idempotent(t *testing.T) {
	for _, unit := range []float64{1, 8, 16, 30} {
		for x := -200.0; x <= 200; x += 0.75 {
			once := Snap(x, unit)
			assert.Equal(t, once, Snap(once, unit), "unit %v x %v", unit, x)
		}
	}
}

func TestSnapRect_EachEdgeIndependently(t *testing.T) {
	got := SnapRect(domain.Rect{X: 7, Y: 9, W: 150, H: 200}, 16)
	assert.Equal(t, domain.Rect{X: 0, Y: 16, W: 144, H: 208}, got)
}
