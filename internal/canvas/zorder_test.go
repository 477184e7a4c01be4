package canvas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stickies/internal/domain"
)

func TestNextZ(t *testing.T) {
	assert.Equal(t, int64(2), NextZ(nil))
	assert.Equal(t, int64(2), NextZ(domain.Snapshot{"a": {Z: 0}}))
	assert.Equal(t, int64(8), NextZ(domain.Snapshot{"a": {Z: 3}, "b": {Z: 7}}))
}

func TestPlaceOnTop_StrictlyIncreasing(t *testing.T) {
	s, _ := newTestStore(t)

	var zs []int64
	for _, id := range []string{"a", "b", "c"} {
		c, err := PlaceOnTop(s, domain.Card{ID: id, Width: 20, Height: 10})
		require.NoError(t, err)
		zs = append(zs, c.Z)
	}
	assert.Equal(t, []int64{2, 3, 4}, zs)
}

func TestBringToFront_LeavesOthersAlone(t *testing.T) {
	s, _ := newTestStore(t)
	seed(t, s,
		domain.Card{ID: "a", Width: 10, Height: 10, Z: 2},
		domain.Card{ID: "b", Width: 10, Height: 10, Z: 3},
		domain.Card{ID: "c", Width: 10, Height: 10, Z: 4},
	)

	c, err := BringToFront(s, "a")
	require.NoError(t, err)
	assert.Equal(t, int64(5), c.Z)

	snap := s.All()
	assert.Equal(t, int64(3), snap["b"].Z)
	assert.Equal(t, int64(4), snap["c"].Z)

	_, err = BringToFront(s, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
