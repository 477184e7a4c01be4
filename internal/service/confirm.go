package service

import (
	"context"
	"fmt"

	"stickies/internal/canvas"
)

// Action names a destructive operation awaiting confirmation.
type Action string

const (
	ActionDelete Action = "delete"
	ActionImport Action = "import"
)

// Prompt is a yes/no question put to the user before a destructive change.
type Prompt struct {
	Action  Action             `json:"action"`
	Title   string             `json:"title"`
	Message string             `json:"message"`
	CardID  string             `json:"cardId,omitempty"`
	Plan    *canvas.ImportPlan `json:"plan,omitempty"`
}

// Confirmer asks the user to approve a destructive change. The flow calling
// it does not continue until it returns.
type Confirmer interface {
	Confirm(ctx context.Context, p Prompt) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, p Prompt) (bool, error)

func (f ConfirmFunc) Confirm(ctx context.Context, p Prompt) (bool, error) { return f(ctx, p) }

// AlwaysConfirm approves everything, for --yes style flags and tests.
var AlwaysConfirm = ConfirmFunc(func(context.Context, Prompt) (bool, error) { return true, nil })

// NeverConfirm declines everything.
var NeverConfirm = ConfirmFunc(func(context.Context, Prompt) (bool, error) { return false, nil })

func deletePrompt(id string) Prompt {
	return Prompt{
		Action:  ActionDelete,
		Title:   "Delete note",
		Message: "Delete this note? This cannot be undone.",
		CardID:  id,
	}
}

func importPrompt(plan canvas.ImportPlan) Prompt {
	return Prompt{
		Action: ActionImport,
		Title:  "Import notes",
		Message: fmt.Sprintf("Import %d notes: %d will overwrite existing notes, %d are new. Continue?",
			plan.Total, plan.Existing, plan.New),
		Plan: &plan,
	}
}
