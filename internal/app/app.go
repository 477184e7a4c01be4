package app

import (
	"context"
	"encoding/base64"
	"log/slog"
	"path/filepath"

	"github.com/mark3labs/mcp-go/server"
	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"stickies/internal/canvas"
	"stickies/internal/editor"
	mcpserver "stickies/internal/mcp"
	"stickies/internal/service"
	"stickies/internal/watch"
)

// App is the main Wails application struct.
// All exported methods are available as Wails bindings.
type App struct {
	ctx  context.Context
	core *Core
	log  *slog.Logger

	emitter service.EventEmitter
	confirm service.Confirmer
	board   *canvas.Board
	backups *service.BackupService
	inbox   *service.InboxService
	watcher *watch.Watcher
	editor  *editor.Session
	boardW  *boardWatcher
	mcp     *mcpserver.Server
	mcpHTTP *server.StreamableHTTPServer
}

// New creates a new App over an opened Core.
func New(core *Core) *App {
	return &App{core: core, log: core.Log}
}

// Startup is called when the app starts.
func (a *App) Startup(ctx context.Context) {
	a.ctx = ctx
	a.emitter = wailsEmitter{ctx: ctx}
	a.confirm = dialogConfirmer{ctx: ctx}
	cfg := a.core.Config

	// Services built by Open emit nowhere until the runtime exists
	a.core.Board = service.NewBoardService(a.core.Store, cfg.Settings(), cfg.DefaultCard, a.emitter, a.log)
	a.board = canvas.NewBoard(a.core.Store, cfg.Settings(), service.NewEmitterObserver(ctx, a.emitter), a.log)

	if err := a.core.Store.LoadErr(); err != nil {
		wailsRuntime.LogWarningf(ctx, "Starting with an empty board: %v", err)
	}

	watcher, err := watch.New(a.log)
	if err != nil {
		wailsRuntime.LogErrorf(ctx, "Failed to create file watcher: %v", err)
	}
	a.watcher = watcher

	if watcher != nil {
		a.inbox = service.NewInboxService(a.core.Board, a.confirm, a.emitter, cfg.InboxDir, a.log)
		if err := a.inbox.Start(ctx, watcher); err != nil {
			wailsRuntime.LogErrorf(ctx, "Failed to watch inbox %s: %v", cfg.InboxDir, err)
		}
	}

	a.backups = a.core.Backups()
	if err := a.backups.Start(ctx, cfg.Backup.Schedule); err != nil {
		wailsRuntime.LogErrorf(ctx, "Backups disabled: %v", err)
	}

	// Embedded terminal: PTY output → base64 → frontend event
	a.editor = editor.New(editor.Options{
		Editor: cfg.Editor,
		Dir:    filepath.Join(cfg.DataDir, "edit"),
		OnData: func(data []byte) {
			wailsRuntime.EventsEmit(ctx, "terminal:data", base64.StdEncoding.EncodeToString(data))
		},
		OnSave: a.onEditorSave,
		OnExit: a.onEditorExit,
	}, watcher, a.log)

	a.boardW = newBoardWatcher(ctx, a.core, a.emitter, a.log)
	a.boardW.Start()

	a.startMCP()
}

// Shutdown is called when the app is closing.
func (a *App) Shutdown(ctx context.Context) {
	a.stopMCP(ctx)
	if a.boardW != nil {
		a.boardW.Stop()
	}
	if a.editor != nil {
		a.editor.Close()
	}
	if a.backups != nil {
		a.backups.Stop()
	}
	if a.inbox != nil {
		a.inbox.Stop()
	}
	if a.watcher != nil {
		a.watcher.Close()
	}
	if a.core != nil {
		a.core.Close()
	}
}

// BeforeClose saves the window size for the next launch.
func (a *App) BeforeClose(ctx context.Context) bool {
	w, h := wailsRuntime.WindowGetSize(ctx)
	if err := a.core.Window.SaveWindowSize(w, h); err != nil {
		a.log.Warn("app: save window size", "err", err)
	}
	return false
}

// ── Runtime adapters ───────────────────────────────────────

// wailsEmitter delivers service events to the frontend.
type wailsEmitter struct {
	ctx context.Context
}

func (e wailsEmitter) Emit(_ context.Context, event string, data any) {
	wailsRuntime.EventsEmit(e.ctx, event, data)
}

// dialogConfirmer asks with a native yes/no dialog.
type dialogConfirmer struct {
	ctx context.Context
}

func (d dialogConfirmer) Confirm(_ context.Context, p service.Prompt) (bool, error) {
	answer, err := wailsRuntime.MessageDialog(d.ctx, wailsRuntime.MessageDialogOptions{
		Type:          wailsRuntime.QuestionDialog,
		Title:         p.Title,
		Message:       p.Message,
		Buttons:       []string{"Yes", "No"},
		DefaultButton: "No",
		CancelButton:  "No",
	})
	if err != nil {
		return false, err
	}
	return answer == "Yes", nil
}
