package canvas

import (
	"log/slog"

	"stickies/internal/domain"
)

// DragController turns a pointer drag on a card into snapped position updates.
// Positions are persisted on every step so an interrupted gesture leaves the
// store matching the last frame shown.
type DragController struct {
	store    *Store
	settings Settings
	obs      Observer
	log      *slog.Logger

	active bool
	id     string
	raw    domain.Point // unsnapped position accumulated from deltas
}

func NewDragController(store *Store, settings Settings, obs Observer, log *slog.Logger) *DragController {
	if obs == nil {
		obs = NopObserver{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &DragController{store: store, settings: settings.withDefaults(), obs: obs, log: log}
}

// Active returns the id of the card being dragged.
func (d *DragController) Active() (string, bool) {
	return d.id, d.active
}

// Start grabs the card and raises it above every other card.
func (d *DragController) Start(id string) error {
	if d.active {
		return domain.ErrGestureActive
	}
	c, ok := d.store.Get(id)
	if !ok {
		return domain.ErrNotFound
	}

	d.active = true
	d.id = id
	d.raw = domain.Point{X: c.X, Y: c.Y}
	d.obs.MarkerChanged(id, true)

	raised, err := d.store.UpsertFunc(id, raise)
	if err != nil {
		d.log.Error("drag: persist z-order", "card", id, "err", err)
		return nil
	}
	d.obs.CardChanged(raised)
	return nil
}

// Move adds delta to the running position and commits the snapped result.
// The canvas bounds are not applied until End.
func (d *DragController) Move(delta domain.Point) (domain.Card, bool) {
	if !d.active {
		return domain.Card{}, false
	}
	if _, ok := d.store.Get(d.id); !ok {
		// removed underneath us
		d.Cancel()
		return domain.Card{}, false
	}
	d.raw.X += delta.X
	d.raw.Y += delta.Y
	pos := SnapPoint(d.raw, d.settings.GridUnit)
	return d.commit(pos), true
}

// End applies the final delta, keeps the whole card inside the canvas and
// commits the settled position.
func (d *DragController) End(delta domain.Point) (domain.Card, bool) {
	if !d.active {
		return domain.Card{}, false
	}
	defer d.reset()

	c, ok := d.store.Get(d.id)
	if !ok {
		return domain.Card{}, false
	}
	d.raw.X += delta.X
	d.raw.Y += delta.Y
	pos := SnapPoint(d.raw, d.settings.GridUnit)

	r := c.Rect(d.settings.GridUnit)
	r.X, r.Y = pos.X, pos.Y
	r = d.settings.Bounds.ClampRect(r)
	return d.commit(domain.Point{X: r.X, Y: r.Y}), true
}

// Cancel abandons the gesture. The store already holds the last step.
func (d *DragController) Cancel() {
	if d.active {
		d.reset()
	}
}

func (d *DragController) commit(pos domain.Point) domain.Card {
	c, err := d.store.Upsert(d.id, domain.PositionPatch(pos.X, pos.Y))
	if err != nil {
		d.log.Error("drag: persist position", "card", d.id, "err", err)
	}
	d.obs.CardChanged(c)
	return c
}

func (d *DragController) reset() {
	d.obs.MarkerChanged(d.id, false)
	d.active = false
	d.id = ""
	d.raw = domain.Point{}
}
