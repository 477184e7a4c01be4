package canvas

import (
	"errors"
	"log/slog"
	"sync"

	"stickies/internal/domain"
)

// Target is what a pointer-down landed on.
type Target string

const (
	TargetCanvas     Target = "canvas"      // empty canvas: marquee
	TargetCard       Target = "card"        // card body: drag
	TargetCardText   Target = "card-text"   // text surface: ignored
	TargetEdgeRight  Target = "edge-right"  // resize
	TargetEdgeBottom Target = "edge-bottom" // resize
	TargetEdgeCorner Target = "edge-corner" // resize
	TargetEdgeLeft   Target = "edge-left"   // not resizable
	TargetEdgeTop    Target = "edge-top"    // not resizable
)

func (t Target) edge() (Edge, bool) {
	switch t {
	case TargetEdgeRight:
		return EdgeRight, true
	case TargetEdgeBottom:
		return EdgeBottom, true
	case TargetEdgeCorner:
		return EdgeCorner, true
	case TargetEdgeLeft:
		return EdgeLeft, true
	case TargetEdgeTop:
		return EdgeTop, true
	}
	return "", false
}

// PointerEvent is one platform pointer report.
type PointerEvent struct {
	Target Target       `json:"target"`
	CardID string       `json:"cardId"`
	At     domain.Point `json:"at"`    // pointer position in canvas space
	Delta  domain.Point `json:"delta"` // movement since the previous report
	Rect   domain.Rect  `json:"rect"`  // resized card rectangle, resize only
}

// Gesture names the controller that owns the pointer.
type Gesture string

const (
	GestureNone    Gesture = ""
	GestureDrag    Gesture = "drag"
	GestureResize  Gesture = "resize"
	GestureMarquee Gesture = "marquee"
)

// Outcome reports what a finished gesture produced.
type Outcome struct {
	Gesture Gesture      `json:"gesture"`
	Card    *domain.Card `json:"card,omitempty"`    // card moved, resized or created
	Created bool         `json:"created,omitempty"` // marquee committed
}

// Board routes pointer events to the gesture controllers. Only one gesture
// runs at a time; events are serialized the way a UI event queue would.
type Board struct {
	mu      sync.Mutex
	store   *Store
	drag    *DragController
	resize  *ResizeController
	marquee *MarqueeCreator
	active  Gesture
	log     *slog.Logger
}

func NewBoard(store *Store, settings Settings, obs Observer, log *slog.Logger) *Board {
	if log == nil {
		log = slog.Default()
	}
	return &Board{
		store:   store,
		drag:    NewDragController(store, settings, obs, log),
		resize:  NewResizeController(store, settings, obs, log),
		marquee: NewMarqueeCreator(store, settings, obs, log),
		log:     log,
	}
}

// SetBounds changes the canvas area used by later gesture steps, for when the
// frontend reports its real size.
func (b *Board) SetBounds(bounds domain.Bounds) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.drag.settings.Bounds = bounds
	b.resize.settings.Bounds = bounds
	b.marquee.settings.Bounds = bounds
}

// Store returns the store the board writes to.
func (b *Board) Store() *Store {
	return b.store
}

// Active returns the gesture in progress.
func (b *Board) Active() Gesture {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.active
}

// PointerDown starts the gesture matching ev.Target. A press on a card's text
// surface starts nothing.
func (b *Board) PointerDown(ev PointerEvent) (Gesture, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.active != GestureNone {
		return b.active, domain.ErrGestureActive
	}

	var err error
	switch {
	case ev.Target == TargetCanvas:
		if err = b.marquee.Begin(ev.At); err == nil {
			b.active = GestureMarquee
		}
	case ev.Target == TargetCard:
		if err = b.drag.Start(ev.CardID); err == nil {
			b.active = GestureDrag
		}
	case ev.Target == TargetCardText:
		return GestureNone, nil
	default:
		edge, ok := ev.Target.edge()
		if !ok {
			return GestureNone, nil
		}
		if err = b.resize.Start(ev.CardID, edge); err == nil {
			b.active = GestureResize
		}
	}
	return b.active, err
}

// PointerMove advances the active gesture.
func (b *Board) PointerMove(ev PointerEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.active {
	case GestureDrag:
		if _, ok := b.drag.Move(ev.Delta); !ok {
			b.active = GestureNone
		}
	case GestureResize:
		if _, ok := b.resize.Move(ev.Rect); !ok {
			b.active = GestureNone
		}
	case GestureMarquee:
		b.marquee.Move(ev.At)
	}
}

// PointerUp finishes the active gesture. A marquee below the minimum size is
// discarded silently.
func (b *Board) PointerUp(ev PointerEvent) (Outcome, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := Outcome{Gesture: b.active}
	defer func() { b.active = GestureNone }()

	switch b.active {
	case GestureDrag:
		if c, ok := b.drag.End(ev.Delta); ok {
			out.Card = &c
		}
	case GestureResize:
		id, _ := b.resize.Active()
		b.resize.End()
		if c, ok := b.store.Get(id); ok {
			out.Card = &c
		}
	case GestureMarquee:
		c, err := b.marquee.End()
		if errors.Is(err, domain.ErrThresholdNotMet) {
			b.log.Debug("marquee: discarded", "reason", err)
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out.Card = &c
		out.Created = true
	}
	return out, nil
}

// PointerCancel abandons the active gesture, leaving the store as of the last
// applied step.
func (b *Board) PointerCancel() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.drag.Cancel()
	b.resize.Cancel()
	b.marquee.Cancel()
	b.active = GestureNone
}
