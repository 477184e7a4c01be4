package canvas

import (
	"log/slog"
	"math"

	"stickies/internal/domain"
)

// Edge identifies the part of a card a resize gesture grabbed.
type Edge string

const (
	EdgeRight  Edge = "right"
	EdgeBottom Edge = "bottom"
	EdgeCorner Edge = "corner" // bottom-right
	EdgeLeft   Edge = "left"
	EdgeTop    Edge = "top"
)

// Resizable reports whether a gesture on e may resize a card. The left and
// top edges stay anchored.
func (e Edge) Resizable() bool {
	return e == EdgeRight || e == EdgeBottom || e == EdgeCorner
}

// ResizeController turns a pointer drag on a card's right or bottom edge into
// grid-unit sizes, persisted on every step.
type ResizeController struct {
	store    *Store
	settings Settings
	obs      Observer
	log      *slog.Logger

	active bool
	id     string
	edge   Edge
}

func NewResizeController(store *Store, settings Settings, obs Observer, log *slog.Logger) *ResizeController {
	if obs == nil {
		obs = NopObserver{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &ResizeController{store: store, settings: settings.withDefaults(), obs: obs, log: log}
}

// Active returns the id of the card being resized.
func (r *ResizeController) Active() (string, bool) {
	return r.id, r.active
}

func (r *ResizeController) Start(id string, edge Edge) error {
	if r.active {
		return domain.ErrGestureActive
	}
	if !edge.Resizable() {
		return domain.ErrNotResizable
	}
	if _, ok := r.store.Get(id); !ok {
		return domain.ErrNotFound
	}
	r.active = true
	r.id = id
	r.edge = edge
	r.obs.MarkerChanged(id, true)
	return nil
}

// Move recomputes the size from the rectangle the platform reports for the
// card. Only the grabbed edges change; the result is kept inside the canvas
// and never below the minimum size.
func (r *ResizeController) Move(rect domain.Rect) (domain.Card, bool) {
	if !r.active {
		return domain.Card{}, false
	}
	c, ok := r.store.Get(r.id)
	if !ok {
		r.Cancel()
		return domain.Card{}, false
	}
	unit := r.settings.GridUnit

	// left and top edges are anchored to the stored card
	cur := c.Rect(unit)
	rect.X, rect.Y = cur.X, cur.Y
	switch r.edge {
	case EdgeRight:
		rect.H = cur.H
	case EdgeBottom:
		rect.W = cur.W
	}
	rect = r.settings.Bounds.RestrictEdges(rect)

	w := math.Trunc(rect.W / unit)
	h := math.Trunc(rect.H / unit)
	updated, err := r.store.Upsert(r.id, domain.SizePatch(w, h))
	if err != nil {
		r.log.Error("resize: persist size", "card", r.id, "err", err)
	}
	r.obs.CardChanged(updated)
	return updated, true
}

// End finishes the gesture. Sizes were already committed by Move.
func (r *ResizeController) End() {
	r.Cancel()
}

func (r *ResizeController) Cancel() {
	if !r.active {
		return
	}
	r.obs.MarkerChanged(r.id, false)
	r.active = false
	r.id = ""
	r.edge = ""
}
