package canvas

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"stickies/internal/domain"
	"stickies/internal/storage"
)

var testMin = domain.Size{Width: 6, Height: 6}

func newTestStore(t *testing.T) (*Store, *storage.MemoryKV) {
	t.Helper()
	kv := storage.NewMemoryKV()
	s := NewStore(kv, testMin, nil)
	s.Load()
	return s, kv
}

func testSettings() Settings {
	n := 0
	s := DefaultSettings()
	s.NewID = func() string {
		n++
		return fmt.Sprintf("card-%d", n)
	}
	return s
}

func seed(t *testing.T, s *Store, cards ...domain.Card) {
	t.Helper()
	for _, c := range cards {
		_, err := s.Upsert(c.ID, domain.FullPatch(c))
		require.NoError(t, err)
	}
}

// recorder captures observer calls.
type recorder struct {
	changed  []domain.Card
	markers  []string
	previews []domain.Rect
	hidden   int
}

func (r *recorder) CardChanged(c domain.Card) { r.changed = append(r.changed, c) }

func (r *recorder) MarkerChanged(id string, moving bool) {
	r.markers = append(r.markers, fmt.Sprintf("%s:%v", id, moving))
}

func (r *recorder) PreviewChanged(rect domain.Rect, visible bool) {
	if !visible {
		r.hidden++
		return
	}
	r.previews = append(r.previews, rect)
}
