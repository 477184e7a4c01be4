package service

import (
	"context"
	"errors"
	"slices"
	"sync"
)

// ErrJobRunning is returned by JobGuard.Run when the key is already running.
var ErrJobRunning = errors.New("job already running")

// JobGuard allows one run per key at a time: an inbox file being imported,
// the backup job. Stop paths use Wait to let runs in flight finish.
type JobGuard struct {
	mu      sync.Mutex
	running map[string]bool
	wg      sync.WaitGroup
}

// Run calls fn unless key is already running, in which case it returns
// ErrJobRunning without calling fn.
func (g *JobGuard) Run(key string, fn func() error) error {
	g.mu.Lock()
	if g.running[key] {
		g.mu.Unlock()
		return ErrJobRunning
	}
	if g.running == nil {
		g.running = make(map[string]bool)
	}
	g.running[key] = true
	g.wg.Add(1)
	g.mu.Unlock()

	defer func() {
		g.mu.Lock()
		delete(g.running, key)
		g.mu.Unlock()
		g.wg.Done()
	}()
	return fn()
}

// Running lists the keys in flight, sorted.
func (g *JobGuard) Running() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	keys := make([]string, 0, len(g.running))
	for k := range g.running {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Wait blocks until nothing is running. It returns ctx.Err() if ctx ends
// first.
func (g *JobGuard) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		g.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
