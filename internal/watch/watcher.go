// Package watch notifies the board about files changed on disk: exports
// dropped into the import inbox and card text saved by an external editor.
package watch

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultSettle is how long a file must stay quiet before its handler runs.
const DefaultSettle = 250 * time.Millisecond

// Handler is called with the absolute path of a created or written file, once
// writes to it have settled. Handlers run off the event loop, so a slow one
// does not hold back events for other files.
type Handler func(path string)

type dirWatch struct {
	ext string
	fn  Handler
}

// Watcher dispatches fsnotify events to per-file and per-directory handlers.
type Watcher struct {
	watcher *fsnotify.Watcher
	log     *slog.Logger

	mu      sync.RWMutex
	files   map[string]Handler  // abs file path -> handler
	dirs    map[string]dirWatch // abs dir path -> handler for matching files
	settle  time.Duration
	pending map[string]*time.Timer
	closed  bool
	running sync.WaitGroup
	done    chan struct{}
}

// New starts a watcher. Close releases it.
func New(log *slog.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if log == nil {
		log = slog.Default()
	}
	w := &Watcher{
		watcher: fw,
		log:     log,
		files:   make(map[string]Handler),
		dirs:    make(map[string]dirWatch),
		settle:  DefaultSettle,
		pending: make(map[string]*time.Timer),
		done:    make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// WatchFile calls fn whenever path is written.
func (w *Watcher) WatchFile(path string, fn Handler) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	w.mu.Lock()
	w.files[abs] = fn
	w.mu.Unlock()

	// fsnotify watches directories; editors often replace the file on save
	return w.watcher.Add(filepath.Dir(abs))
}

// WatchDir calls fn for every file with extension ext created or written in
// dir. An empty ext matches every file.
func (w *Watcher) WatchDir(dir, ext string, fn Handler) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return err
	}
	w.mu.Lock()
	w.dirs[abs] = dirWatch{ext: strings.ToLower(ext), fn: fn}
	w.mu.Unlock()
	return w.watcher.Add(abs)
}

// Unwatch stops reporting path, whether it was a file or a directory.
func (w *Watcher) Unwatch(path string) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.files, abs)
	if _, ok := w.dirs[abs]; ok {
		delete(w.dirs, abs)
		_ = w.watcher.Remove(abs)
	}
}

// SetSettle changes the quiet period used for later events.
func (w *Watcher) SetSettle(d time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.settle = d
}

// Close stops the watcher, drops events still settling and waits for running
// handlers to return.
func (w *Watcher) Close() error {
	err := w.watcher.Close()
	<-w.done

	w.mu.Lock()
	w.closed = true
	for path, t := range w.pending {
		if t.Stop() {
			w.running.Done()
		}
		delete(w.pending, path)
	}
	w.mu.Unlock()

	w.running.Wait()
	return err
}

func (w *Watcher) loop() {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if abs, err := filepath.Abs(event.Name); err == nil && w.handlerFor(abs) != nil {
				w.schedule(abs)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch: watcher error", "err", err)
		}
	}
}

// schedule (re)starts the quiet period for path. Each new write pushes the
// handler back, so a file copied in several chunks is reported once.
func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if t, ok := w.pending[path]; ok && t.Stop() {
		t.Reset(w.settle)
		return
	}
	w.running.Add(1)
	var t *time.Timer
	t = time.AfterFunc(w.settle, func() { w.fire(path, t) })
	w.pending[path] = t
}

func (w *Watcher) fire(path string, t *time.Timer) {
	defer w.running.Done()
	w.mu.Lock()
	if w.pending[path] == t {
		delete(w.pending, path)
	}
	w.mu.Unlock()

	// looked up now: the file may have been unwatched while settling
	if fn := w.handlerFor(path); fn != nil {
		fn(path)
	}
}

func (w *Watcher) handlerFor(name string) Handler {
	abs, err := filepath.Abs(name)
	if err != nil {
		return nil
	}
	w.mu.RLock()
	defer w.mu.RUnlock()
	if fn, ok := w.files[abs]; ok {
		return fn
	}
	if d, ok := w.dirs[filepath.Dir(abs)]; ok {
		if d.ext == "" || strings.ToLower(filepath.Ext(abs)) == d.ext {
			return d.fn
		}
	}
	return nil
}
