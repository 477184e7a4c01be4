package app

import (
	"strings"

	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"
)

// ============================================================
// Embedded terminal editor
// ============================================================

// TerminalWrite sends input from xterm.js to the PTY.
func (a *App) TerminalWrite(data string) error {
	return a.editor.Write(data)
}

// TerminalResize resizes the PTY.
func (a *App) TerminalResize(cols, rows int) error {
	return a.editor.Resize(uint16(cols), uint16(rows))
}

// OpenCardInEditor opens the card's text in the configured editor.
func (a *App) OpenCardInEditor(id string) error {
	card, err := a.core.Board.GetCard(id)
	if err != nil {
		return err
	}
	return a.editor.Open(id, card.Text)
}

// CloseEditor kills the editor without saving its text to the card.
func (a *App) CloseEditor() {
	a.editor.Close()
}

// onEditorSave pushes the saved text to the frontend as a live preview.
func (a *App) onEditorSave(id, text string) {
	wailsRuntime.EventsEmit(a.ctx, "card:preview", map[string]string{
		"id":   id,
		"text": strings.TrimRight(text, "\n"),
	})
}

// onEditorExit commits the edited text to the card.
func (a *App) onEditorExit(id, text string, err error) {
	if err != nil {
		wailsRuntime.LogErrorf(a.ctx, "Editor for card %s: %v", id, err)
	} else if _, err := a.core.Board.UpdateContent(a.ctx, id, strings.TrimRight(text, "\n")); err != nil {
		wailsRuntime.LogErrorf(a.ctx, "Save edited card %s: %v", id, err)
	}
	wailsRuntime.EventsEmit(a.ctx, "terminal:exit", map[string]string{"id": id})
}
