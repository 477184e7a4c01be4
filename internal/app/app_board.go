package app

import (
	"stickies/internal/canvas"
	"stickies/internal/domain"
	"stickies/internal/service"
)

// ============================================================
// Board
// ============================================================

// LoadBoard returns every card, bottom of the stack first.
func (a *App) LoadBoard() []service.CardView {
	return a.core.Board.ListCards()
}

// GridUnit is the pixel size of one grid unit, for the frontend's layout.
func (a *App) GridUnit() float64 {
	return a.core.Config.GridUnit
}

// SetCanvasBounds records the canvas element's size in pixels. Gestures and
// explicit moves keep cards inside it from then on.
func (a *App) SetCanvasBounds(width, height float64) {
	b := domain.Bounds{Width: max(width, 0), Height: max(height, 0)}
	a.board.SetBounds(b)
	a.core.Board.SetBounds(b)
}

// ============================================================
// Pointer gestures
// ============================================================

func (a *App) PointerDown(ev canvas.PointerEvent) (canvas.Gesture, error) {
	return a.board.PointerDown(ev)
}

func (a *App) PointerMove(ev canvas.PointerEvent) {
	a.board.PointerMove(ev)
}

func (a *App) PointerUp(ev canvas.PointerEvent) (canvas.Outcome, error) {
	return a.board.PointerUp(ev)
}

func (a *App) PointerCancel() {
	a.board.PointerCancel()
}

// ============================================================
// Cards
// ============================================================

func (a *App) NewCard(x, y float64) (service.CardView, error) {
	return a.core.Board.NewCard(a.ctx, domain.Point{X: x, Y: y})
}

func (a *App) UpdateCardContent(id, text string) (service.CardView, error) {
	return a.core.Board.UpdateContent(a.ctx, id, text)
}

func (a *App) BringToFront(id string) (service.CardView, error) {
	return a.core.Board.BringToFront(a.ctx, id)
}

// DeleteCard removes a card after a confirmation dialog. Declining is not an
// error for the frontend.
func (a *App) DeleteCard(id string) (bool, error) {
	err := a.core.Board.DeleteCard(a.ctx, id, a.confirm)
	if service.IsDeclined(err) {
		return false, nil
	}
	return err == nil, err
}

// RenderCard renders a card's text as HTML.
func (a *App) RenderCard(id string) (string, error) {
	return a.core.Board.RenderCard(id)
}
