package canvas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stickies/internal/domain"
)

func TestDrag_SnapsEveryStep(t *testing.T) {
	s, kv := newTestStore(t)
	seed(t, s, domain.Card{ID: "a", Width: 10, Height: 10, Z: 2})
	rec := &recorder{}
	d := NewDragController(s, testSettings(), rec, nil)

	require.NoError(t, d.Start("a"))

	var xs []float64
	for _, dx := range []float64{10, 10, 5} {
		c, ok := d.Move(domain.Point{X: dx})
		require.True(t, ok)
		xs = append(xs, c.X)
		// every step is already durable
		assert.Equal(t, c.X, NewStore(kv, testMin, nil).Load()["a"].X)
	}
	// raw 10 → 16, raw 20 → 16, raw 25 → 32
	assert.Equal(t, []float64{16, 16, 32}, xs)

	c, ok := d.End(domain.Point{})
	require.True(t, ok)
	assert.Equal(t, domain.Point{X: 32, Y: 0}, domain.Point{X: c.X, Y: c.Y})

	_, active := d.Active()
	assert.False(t, active)
	assert.Equal(t, []string{"a:true", "a:false"}, rec.markers)
}

func TestDrag_StartRaisesZ(t *testing.T) {
	s, _ := newTestStore(t)
	seed(t, s,
		domain.Card{ID: "a", Width: 10, Height: 10, Z: 2},
		domain.Card{ID: "b", Width: 10, Height: 10, Z: 3},
		domain.Card{ID: "c", Width: 10, Height: 10, Z: 4},
	)
	d := NewDragController(s, testSettings(), nil, nil)

	require.NoError(t, d.Start("a"))
	snap := s.All()
	assert.Equal(t, int64(5), snap["a"].Z)
	assert.Equal(t, int64(3), snap["b"].Z)
	assert.Equal(t, int64(4), snap["c"].Z)
}

func TestDrag_BoundsAppliedOnlyAtEnd(t *testing.T) {
	s, _ := newTestStore(t)
	seed(t, s, domain.Card{ID: "a", X: 320, Y: 0, Width: 10, Height: 10})
	settings := testSettings()
	settings.Bounds = domain.Bounds{Width: 640, Height: 480}
	d := NewDragController(s, settings, nil, nil)

	require.NoError(t, d.Start("a"))
	c, _ := d.Move(domain.Point{X: 200, Y: -50})
	// transiently outside: right edge 528+160 > 640, top < 0
	assert.Equal(t, 528.0, c.X)
	assert.Equal(t, -48.0, c.Y)

	c, _ = d.End(domain.Point{})
	assert.Equal(t, 480.0, c.X) // 640 - 10*16
	assert.Equal(t, 0.0, c.Y)
	stored, _ := s.Get("a")
	assert.Equal(t, c, stored)
}

func TestDrag_EndNeverLeavesTheOrigin(t *testing.T) {
	s, _ := newTestStore(t)
	seed(t, s, domain.Card{ID: "a", Width: 10, Height: 10})
	d := NewDragController(s, DefaultSettings(), nil, nil)

	require.NoError(t, d.Start("a"))
	c, _ := d.Move(domain.Point{X: -500, Y: -300})
	assert.Equal(t, -496.0, c.X)

	c, ok := d.End(domain.Point{})
	require.True(t, ok)
	assert.Equal(t, domain.Point{}, domain.Point{X: c.X, Y: c.Y})
	stored, _ := s.Get("a")
	assert.Equal(t, 0.0, stored.X)
	assert.Equal(t, 0.0, stored.Y)
}

func TestDrag_CancelKeepsLastStep(t *testing.T) {
	s, _ := newTestStore(t)
	seed(t, s, domain.Card{ID: "a", Width: 10, Height: 10})
	d := NewDragController(s, testSettings(), nil, nil)

	require.NoError(t, d.Start("a"))
	d.Move(domain.Point{X: 33, Y: 47})
	d.Cancel()

	c, _ := s.Get("a")
	assert.Equal(t, 32.0, c.X)
	assert.Equal(t, 48.0, c.Y)
	_, ok := d.Move(domain.Point{X: 100})
	assert.False(t, ok, "idle controller ignores moves")
}

func TestDrag_Errors(t *testing.T) {
	s, _ := newTestStore(t)
	seed(t, s, domain.Card{ID: "a", Width: 10, Height: 10})
	d := NewDragController(s, testSettings(), nil, nil)

	assert.ErrorIs(t, d.Start("missing"), domain.ErrNotFound)
	require.NoError(t, d.Start("a"))
	assert.ErrorIs(t, d.Start("a"), domain.ErrGestureActive)
}

func TestDrag_CardRemovedMidGesture(t *testing.T) {
	s, _ := newTestStore(t)
	seed(t, s, domain.Card{ID: "a", Width: 10, Height: 10})
	d := NewDragController(s, testSettings(), nil, nil)

	require.NoError(t, d.Start("a"))
	require.NoError(t, s.Remove("a"))

	_, ok := d.Move(domain.Point{X: 16})
	assert.False(t, ok)
	_, exists := s.Get("a")
	assert.False(t, exists, "drag must not resurrect a deleted card")
}
