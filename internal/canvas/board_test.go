package canvas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stickies/internal/domain"
)

func TestBoard_RoutesGestures(t *testing.T) {
	s, _ := newTestStore(t)
	seed(t, s, domain.Card{ID: "a", Width: 10, Height: 10, Z: 2})
	b := NewBoard(s, testSettings(), nil, nil)

	g, err := b.PointerDown(PointerEvent{Target: TargetCard, CardID: "a"})
	require.NoError(t, err)
	assert.Equal(t, GestureDrag, g)

	b.PointerMove(PointerEvent{Delta: domain.Point{X: 10}})
	b.PointerMove(PointerEvent{Delta: domain.Point{X: 10}})
	out, err := b.PointerUp(PointerEvent{Delta: domain.Point{X: 5}})
	require.NoError(t, err)
	require.NotNil(t, out.Card)
	assert.Equal(t, 32.0, out.Card.X)
	assert.Equal(t, GestureNone, b.Active())

	g, err = b.PointerDown(PointerEvent{Target: TargetEdgeBottom, CardID: "a"})
	require.NoError(t, err)
	assert.Equal(t, GestureResize, g)
	b.PointerMove(PointerEvent{Rect: domain.Rect{W: 160, H: 320}})
	out, err = b.PointerUp(PointerEvent{})
	require.NoError(t, err)
	assert.Equal(t, 20.0, out.Card.Height)
}

func TestBoard_SetBoundsAppliesToLaterGestures(t *testing.T) {
	s, _ := newTestStore(t)
	seed(t, s, domain.Card{ID: "a", Width: 10, Height: 10, Z: 2})
	b := NewBoard(s, testSettings(), nil, nil)
	b.SetBounds(domain.Bounds{Width: 320, Height: 240})

	_, err := b.PointerDown(PointerEvent{Target: TargetCard, CardID: "a"})
	require.NoError(t, err)
	out, err := b.PointerUp(PointerEvent{Delta: domain.Point{X: 1000, Y: 1000}})
	require.NoError(t, err)
	// 320 - 10*16, 240 - 10*16
	assert.Equal(t, 160.0, out.Card.X)
	assert.Equal(t, 80.0, out.Card.Y)

	_, err = b.PointerDown(PointerEvent{Target: TargetEdgeCorner, CardID: "a"})
	require.NoError(t, err)
	b.PointerMove(PointerEvent{Rect: domain.Rect{W: 400, H: 400}})
	out, err = b.PointerUp(PointerEvent{})
	require.NoError(t, err)
	assert.Equal(t, 10.0, out.Card.Width)
	assert.Equal(t, 10.0, out.Card.Height)
}

func TestBoard_TextSurfaceIsIgnored(t *testing.T) {
	s, _ := newTestStore(t)
	seed(t, s, domain.Card{ID: "a", Width: 10, Height: 10, Z: 2})
	b := NewBoard(s, testSettings(), nil, nil)

	g, err := b.PointerDown(PointerEvent{Target: TargetCardText, CardID: "a"})
	require.NoError(t, err)
	assert.Equal(t, GestureNone, g)

	b.PointerMove(PointerEvent{Delta: domain.Point{X: 100}})
	c, _ := s.Get("a")
	assert.Equal(t, 0.0, c.X)
	assert.Equal(t, int64(2), c.Z, "no bring-to-front without a drag")
}

func TestBoard_MarqueeBelowThresholdIsSilent(t *testing.T) {
	s, _ := newTestStore(t)
	b := NewBoard(s, testSettings(), nil, nil)

	_, err := b.PointerDown(PointerEvent{Target: TargetCanvas, At: domain.Point{}})
	require.NoError(t, err)
	b.PointerMove(PointerEvent{At: domain.Point{X: 150, Y: 200}})
	out, err := b.PointerUp(PointerEvent{})
	require.NoError(t, err)
	assert.False(t, out.Created)
	assert.Empty(t, s.All())

	_, err = b.PointerDown(PointerEvent{Target: TargetCanvas, At: domain.Point{}})
	require.NoError(t, err)
	b.PointerMove(PointerEvent{At: domain.Point{X: 200, Y: 200}})
	out, err = b.PointerUp(PointerEvent{})
	require.NoError(t, err)
	assert.True(t, out.Created)
	assert.Len(t, s.All(), 1)
}

func TestBoard_OneGestureAtATime(t *testing.T) {
	s, _ := newTestStore(t)
	seed(t, s, domain.Card{ID: "a", Width: 10, Height: 10})
	b := NewBoard(s, testSettings(), nil, nil)

	_, err := b.PointerDown(PointerEvent{Target: TargetCard, CardID: "a"})
	require.NoError(t, err)
	_, err = b.PointerDown(PointerEvent{Target: TargetCanvas})
	assert.ErrorIs(t, err, domain.ErrGestureActive)

	b.PointerCancel()
	assert.Equal(t, GestureNone, b.Active())
	_, err = b.PointerDown(PointerEvent{Target: TargetEdgeLeft, CardID: "a"})
	assert.ErrorIs(t, err, domain.ErrNotResizable)
	assert.Equal(t, GestureNone, b.Active())
}
