package service

import (
	"context"

	"stickies/internal/canvas"
	"stickies/internal/domain"
)

// CardView is a card as the frontend and MCP clients see it.
type CardView struct {
	ID     string  `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Z      int64   `json:"z"`
	Text   string  `json:"text"`
}

func viewOf(c domain.Card) CardView {
	return CardView{ID: c.ID, X: c.X, Y: c.Y, Width: c.Width, Height: c.Height, Z: c.Z, Text: c.Text}
}

// Views lists every card bottom to top.
func Views(snap domain.Snapshot) []CardView {
	cards := snap.Cards()
	out := make([]CardView, len(cards))
	for i, c := range cards {
		out[i] = viewOf(c)
	}
	return out
}

// EmitterObserver forwards gesture updates to the frontend as events.
type EmitterObserver struct {
	ctx     context.Context
	emitter EventEmitter
}

var _ canvas.Observer = (*EmitterObserver)(nil)

func NewEmitterObserver(ctx context.Context, emitter EventEmitter) *EmitterObserver {
	return &EmitterObserver{ctx: ctx, emitter: emitter}
}

func (o *EmitterObserver) CardChanged(c domain.Card) {
	o.emitter.Emit(o.ctx, EventCardChanged, viewOf(c))
}

func (o *EmitterObserver) MarkerChanged(id string, moving bool) {
	o.emitter.Emit(o.ctx, EventCardMarker, map[string]any{"id": id, "moving": moving})
}

func (o *EmitterObserver) PreviewChanged(r domain.Rect, visible bool) {
	o.emitter.Emit(o.ctx, EventMarqueePreview, map[string]any{"rect": r, "visible": visible})
}
