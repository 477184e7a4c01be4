package canvas

import (
	"log/slog"
	"math"

	"stickies/internal/domain"
)

// marqueeState is either marqueeIdle or marqueePending.
type marqueeState interface {
	isMarqueeState()
}

type marqueeIdle struct{}

type marqueePending struct {
	anchor  domain.Point
	preview *domain.Rect // nil until the pointer leaves the noise radius
}

func (marqueeIdle) isMarqueeState()    {}
func (marqueePending) isMarqueeState() {}

// MarqueeCreator turns a drag on empty canvas into a new card.
type MarqueeCreator struct {
	store    *Store
	settings Settings
	obs      Observer
	log      *slog.Logger
	state    marqueeState
}

func NewMarqueeCreator(store *Store, settings Settings, obs Observer, log *slog.Logger) *MarqueeCreator {
	if obs == nil {
		obs = NopObserver{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &MarqueeCreator{
		store:    store,
		settings: settings.withDefaults(),
		obs:      obs,
		log:      log,
		state:    marqueeIdle{},
	}
}

// Pending reports whether a marquee gesture is in progress.
func (m *MarqueeCreator) Pending() bool {
	_, ok := m.state.(marqueePending)
	return ok
}

// Preview returns the rectangle currently shown, if any.
func (m *MarqueeCreator) Preview() (domain.Rect, bool) {
	p, ok := m.state.(marqueePending)
	if !ok || p.preview == nil {
		return domain.Rect{}, false
	}
	return *p.preview, true
}

// Begin anchors a marquee at p.
func (m *MarqueeCreator) Begin(p domain.Point) error {
	if m.Pending() {
		return domain.ErrGestureActive
	}
	m.state = marqueePending{anchor: p}
	return nil
}

// Move updates the preview once the pointer is further than the noise
// threshold from the anchor. Edges are grid aligned independently, so the
// preview can jump relative to the pointer.
func (m *MarqueeCreator) Move(p domain.Point) (domain.Rect, bool) {
	st, ok := m.state.(marqueePending)
	if !ok {
		return domain.Rect{}, false
	}
	dx := p.X - st.anchor.X
	dy := p.Y - st.anchor.Y
	if math.Abs(dx) > m.settings.NoiseThreshold || math.Abs(dy) > m.settings.NoiseThreshold {
		r := SnapRect(domain.Rect{
			X: min(st.anchor.X, p.X),
			Y: min(st.anchor.Y, p.Y),
			W: math.Abs(dx),
			H: math.Abs(dy),
		}, m.settings.GridUnit)
		st.preview = &r
		m.state = st
		m.obs.PreviewChanged(r, true)
	}
	return m.Preview()
}

// End creates a card from the preview when both sides reach MinCreatePx.
// A smaller or absent preview returns ErrThresholdNotMet and changes nothing.
func (m *MarqueeCreator) End() (domain.Card, error) {
	preview, shown := m.Preview()
	m.Cancel()
	if !shown || preview.W < m.settings.MinCreatePx || preview.H < m.settings.MinCreatePx {
		return domain.Card{}, domain.ErrThresholdNotMet
	}

	unit := m.settings.GridUnit
	c, err := PlaceOnTop(m.store, domain.Card{
		ID:     m.settings.NewID(),
		X:      preview.X,
		Y:      preview.Y,
		Width:  preview.W / unit,
		Height: preview.H / unit,
		Text:   m.settings.DefaultText,
	})
	if err != nil {
		return c, err
	}
	m.obs.CardChanged(c)
	return c, nil
}

// Cancel discards the gesture and its preview.
func (m *MarqueeCreator) Cancel() {
	if _, shown := m.Preview(); shown {
		m.obs.PreviewChanged(domain.Rect{}, false)
	}
	m.state = marqueeIdle{}
}
