package app

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"stickies/internal/canvas"
	"stickies/internal/domain"
	"stickies/internal/service"
	"stickies/internal/storage"
)

// boardWatcher polls the database for writes made by other processes (the
// standalone MCP server, CLI imports) and reloads the board when it sees one.
// It also surfaces approvals the standalone server is waiting on.
type boardWatcher struct {
	ctx     context.Context
	core    *Core
	emitter service.EventEmitter
	log     *slog.Logger
	every   time.Duration

	mu          sync.Mutex
	lastVersion int64
	emitted     map[string]bool // approval ids already shown
	stopCh      chan struct{}
	done        chan struct{}
}

func newBoardWatcher(ctx context.Context, core *Core, emitter service.EventEmitter, log *slog.Logger) *boardWatcher {
	w := &boardWatcher{
		ctx:     ctx,
		core:    core,
		emitter: emitter,
		log:     log,
		every:   2 * time.Second,
		emitted: map[string]bool{},
	}
	// A write between polls can pick up another process's board first; the
	// frontend hears about it the same way either path happens.
	core.Store.OnSync(func(snap domain.Snapshot) {
		w.log.Info("board watcher: reloaded external change", "cards", len(snap))
		w.emitter.Emit(w.ctx, service.EventBoardReloaded, service.Views(snap))
	})
	return w
}

// Start begins the polling loop. Should be called once on app startup.
func (w *boardWatcher) Start() {
	w.lastVersion, _ = w.core.KV.Version(canvas.BoardKey)
	w.stopCh = make(chan struct{})
	w.done = make(chan struct{})
	go w.pollLoop()
}

// Stop terminates the polling loop.
func (w *boardWatcher) Stop() {
	if w.stopCh != nil {
		close(w.stopCh)
		<-w.done
		w.stopCh = nil
	}
}

func (w *boardWatcher) pollLoop() {
	defer close(w.done)
	ticker := time.NewTicker(w.every)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.check()
		case <-w.stopCh:
			return
		case <-w.ctx.Done():
			return
		}
	}
}

func (w *boardWatcher) check() {
	w.checkBoard()
	w.checkApprovals()
}

// checkBoard reloads when the stored board differs from what this process
// last wrote. Our own writes bump the version too, so the text is compared.
func (w *boardWatcher) checkBoard() {
	version, err := w.core.KV.Version(canvas.BoardKey)
	if err != nil {
		return
	}
	w.mu.Lock()
	changed := version != w.lastVersion
	w.lastVersion = version
	w.mu.Unlock()
	if !changed {
		return
	}

	stored, ok, err := w.core.KV.Get(canvas.BoardKey)
	if err != nil || !ok || stored == w.core.Store.Raw() {
		return
	}
	w.core.Store.Reload()
}

func (w *boardWatcher) checkApprovals() {
	pending, err := w.core.Approvals.Pending()
	if err != nil {
		return
	}

	live := make(map[string]bool, len(pending))
	for _, p := range pending {
		live[p.ID] = true
		w.mu.Lock()
		sent := w.emitted[p.ID]
		w.emitted[p.ID] = true
		w.mu.Unlock()
		if sent {
			continue
		}
		w.emitter.Emit(w.ctx, "mcp:approval-required", approvalEvent(p))
	}

	// forget approvals the standalone server has already cleaned up
	w.mu.Lock()
	for id := range w.emitted {
		if !live[id] {
			delete(w.emitted, id)
		}
	}
	w.mu.Unlock()
}

func approvalEvent(a storage.Approval) map[string]string {
	return map[string]string{
		"id":          a.ID,
		"tool":        a.Tool,
		"description": a.Description,
		"createdAt":   a.CreatedAt.UTC().Format(time.RFC3339),
		"metadata":    a.Metadata,
	}
}
