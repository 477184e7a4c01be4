package canvas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stickies/internal/domain"
)

func TestMarquee_BelowThresholdCreatesNothing(t *testing.T) {
	s, kv := newTestStore(t)
	m := NewMarqueeCreator(s, testSettings(), nil, nil)

	require.NoError(t, m.Begin(domain.Point{X: 0, Y: 0}))
	r, shown := m.Move(domain.Point{X: 150, Y: 200})
	require.True(t, shown)
	assert.Equal(t, domain.Rect{W: 144, H: 208}, r)

	_, err := m.End()
	assert.ErrorIs(t, err, domain.ErrThresholdNotMet)
	assert.Empty(t, s.All())
	assert.Zero(t, kv.Writes)
	assert.False(t, m.Pending())
}

func TestMarquee_CommitCreatesOneCard(t *testing.T) {
	s, _ := newTestStore(t)
	seed(t, s, domain.Card{ID: "existing", Width: 10, Height: 10, Z: 3})
	rec := &recorder{}
	m := NewMarqueeCreator(s, testSettings(), rec, nil)

	require.NoError(t, m.Begin(domain.Point{X: 32, Y: 32}))
	m.Move(domain.Point{X: 232, Y: 232})

	c, err := m.End()
	require.NoError(t, err)
	assert.Equal(t, "card-1", c.ID)
	assert.Equal(t, 32.0, c.X)
	assert.Equal(t, 32.0, c.Y)
	// a 200px drag rounds to a 208px preview: 13 grid units
	assert.Equal(t, 13.0, c.Width)
	assert.Equal(t, 13.0, c.Height)
	assert.Equal(t, int64(4), c.Z)
	assert.Equal(t, "New note", c.Text)

	snap := s.All()
	assert.Len(t, snap, 2)
	assert.Contains(t, snap, "card-1")
	assert.Equal(t, 1, rec.hidden, "preview is removed on commit")
}

func TestMarquee_NoiseThreshold(t *testing.T) {
	s, _ := newTestStore(t)
	m := NewMarqueeCreator(s, testSettings(), nil, nil)

	require.NoError(t, m.Begin(domain.Point{X: 100, Y: 100}))
	_, shown := m.Move(domain.Point{X: 105, Y: 95})
	assert.False(t, shown, "5px is still noise")

	_, shown = m.Move(domain.Point{X: 106, Y: 100})
	assert.True(t, shown)

	// back inside the noise radius: the last preview stays
	r, shown := m.Move(domain.Point{X: 101, Y: 101})
	assert.True(t, shown)
	assert.Equal(t, domain.Rect{X: 96, Y: 96, W: 0, H: 0}, r)
}

func TestMarquee_DragUpAndLeft(t *testing.T) {
	s, _ := newTestStore(t)
	m := NewMarqueeCreator(s, testSettings(), nil, nil)

	require.NoError(t, m.Begin(domain.Point{X: 400, Y: 400}))
	r, _ := m.Move(domain.Point{X: 200, Y: 180})
	assert.Equal(t, domain.Rect{X: 208, Y: 176, W: 208, H: 224}, r)

	c, err := m.End()
	require.NoError(t, err)
	assert.Equal(t, 208.0, c.X)
	assert.Equal(t, 13.0, c.Width)
	assert.Equal(t, 14.0, c.Height)
}

func TestMarquee_ClickWithoutMoveIsDiscarded(t *testing.T) {
	s, _ := newTestStore(t)
	m := NewMarqueeCreator(s, testSettings(), nil, nil)

	require.NoError(t, m.Begin(domain.Point{X: 10, Y: 10}))
	_, err := m.End()
	assert.ErrorIs(t, err, domain.ErrThresholdNotMet)
	assert.Empty(t, s.All())
}

func TestMarquee_Cancel(t *testing.T) {
	s, _ := newTestStore(t)
	rec := &recorder{}
	m := NewMarqueeCreator(s, testSettings(), rec, nil)

	require.NoError(t, m.Begin(domain.Point{}))
	m.Move(domain.Point{X: 300, Y: 300})
	m.Cancel()

	assert.False(t, m.Pending())
	assert.Equal(t, 1, rec.hidden)
	_, err := m.End()
	assert.ErrorIs(t, err, domain.ErrThresholdNotMet)
}
