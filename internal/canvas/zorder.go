package canvas

import "stickies/internal/domain"

// baseZ is the floor NextZ counts up from, so the first card lands at 2.
const baseZ int64 = 1

// NextZ returns a stacking order strictly above every card in snap.
// Other cards are never renumbered, so values only grow.
func NextZ(snap domain.Snapshot) int64 {
	top := baseZ
	for _, c := range snap {
		top = max(top, c.Z)
	}
	return top + 1
}

// BringToFront raises the card above every other card and persists it.
func BringToFront(store *Store, id string) (domain.Card, error) {
	if _, ok := store.Get(id); !ok {
		return domain.Card{}, domain.ErrNotFound
	}
	return store.UpsertFunc(id, raise)
}

// PlaceOnTop stores a new card under c.ID with a z above every existing card.
func PlaceOnTop(store *Store, c domain.Card) (domain.Card, error) {
	return store.UpsertFunc(c.ID, func(live domain.Snapshot) domain.CardPatch {
		c.Z = NextZ(live)
		return domain.FullPatch(c)
	})
}

func raise(live domain.Snapshot) domain.CardPatch {
	return domain.ZPatch(NextZ(live))
}
