package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"stickies/internal/domain"
	"stickies/internal/watch"
)

// ─────────────────────────────────────────────────────────────
// Inbox Service: imports files dropped into a directory
// ─────────────────────────────────────────────────────────────

// InboxService runs the import flow for every .json file that appears in the
// inbox directory, then files it under processed/ or failed/.
type InboxService struct {
	board   *BoardService
	confirm Confirmer
	emitter EventEmitter
	dir     string
	log     *slog.Logger
	guard   JobGuard
	watcher *watch.Watcher
}

func NewInboxService(board *BoardService, confirm Confirmer, emitter EventEmitter, dir string, log *slog.Logger) *InboxService {
	if emitter == nil {
		emitter = NoopEmitter{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &InboxService{board: board, confirm: confirm, emitter: emitter, dir: dir, log: log}
}

// Start watches the inbox with w. Files already waiting are imported first.
func (s *InboxService) Start(ctx context.Context, w *watch.Watcher) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return err
	}
	s.watcher = w
	if err := w.WatchDir(s.dir, ".json", func(path string) { s.Process(ctx, path) }); err != nil {
		return err
	}
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".json" {
			s.Process(ctx, filepath.Join(s.dir, e.Name()))
		}
	}
	return nil
}

// Stop stops watching the inbox and gives imports in flight a few seconds to
// finish.
func (s *InboxService) Stop() {
	if s.watcher != nil {
		s.watcher.Unwatch(s.dir)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.guard.Wait(ctx); err != nil {
		s.log.Warn("inbox: stopped with imports in flight", "files", s.guard.Running())
	}
}

// Process imports one inbox file. Duplicate events for a file being imported
// are ignored, as are files already moved away.
func (s *InboxService) Process(ctx context.Context, path string) {
	_ = s.guard.Run(path, func() error {
		s.process(ctx, path)
		return nil
	})
}

func (s *InboxService) process(ctx context.Context, path string) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return
	}
	if err != nil {
		s.log.Warn("inbox: read", "file", path, "err", err)
		return
	}

	plan, err := s.board.Import(ctx, data, s.confirm)
	switch {
	case err == nil:
		s.log.Info("inbox: imported", "file", filepath.Base(path), "new", plan.New, "existing", plan.Existing)
		s.move(path, "processed")
	case errors.Is(err, domain.ErrDeclined):
		s.log.Info("inbox: import declined", "file", filepath.Base(path))
		s.move(path, "declined")
	default:
		s.log.Warn("inbox: import failed", "file", filepath.Base(path), "err", err)
		s.emitter.Emit(ctx, EventImportFailed, map[string]string{"file": filepath.Base(path), "error": err.Error()})
		s.move(path, "failed")
	}
}

func (s *InboxService) move(path, sub string) {
	dst := filepath.Join(s.dir, sub)
	if err := os.MkdirAll(dst, 0755); err != nil {
		s.log.Warn("inbox: mkdir", "dir", dst, "err", err)
		return
	}
	if err := os.Rename(path, filepath.Join(dst, filepath.Base(path))); err != nil {
		s.log.Warn("inbox: move", "file", path, "err", err)
	}
}
