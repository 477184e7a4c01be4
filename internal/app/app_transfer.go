package app

import (
	"fmt"
	"os"

	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"stickies/internal/canvas"
	"stickies/internal/service"
)

// ============================================================
// Export / import
// ============================================================

var jsonFilter = []wailsRuntime.FileFilter{{DisplayName: "Board snapshot (*.json)", Pattern: "*.json"}}

// ExportBoard saves the board to a file the user picks. It returns the path
// written, or "" when the dialog was cancelled.
func (a *App) ExportBoard() (string, error) {
	art := a.core.Board.Export()
	path, err := wailsRuntime.SaveFileDialog(a.ctx, wailsRuntime.SaveDialogOptions{
		Title:           "Export notes",
		DefaultFilename: art.Name,
		Filters:         jsonFilter,
	})
	if err != nil || path == "" {
		return "", err
	}
	if err := os.WriteFile(path, art.Data, 0644); err != nil {
		return "", fmt.Errorf("export: %w", err)
	}
	return path, nil
}

// ImportBoard merges a file the user picks into the board after a
// confirmation showing what will change. Cancelling either dialog returns a
// nil plan.
func (a *App) ImportBoard() (*canvas.ImportPlan, error) {
	path, err := wailsRuntime.OpenFileDialog(a.ctx, wailsRuntime.OpenDialogOptions{
		Title:   "Import notes",
		Filters: jsonFilter,
	})
	if err != nil || path == "" {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("import: %w", err)
	}
	plan, err := a.core.Board.Import(a.ctx, data, a.confirm)
	if service.IsDeclined(err) {
		return nil, nil
	}
	if err != nil {
		a.emitter.Emit(a.ctx, service.EventImportFailed, map[string]string{"error": err.Error()})
		return nil, err
	}
	return &plan, nil
}

// BackupNow writes a backup immediately and returns its path.
func (a *App) BackupNow() (string, error) {
	return a.backups.RunOnce(a.ctx)
}
