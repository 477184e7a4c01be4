package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"stickies/internal/storage"
)

// ─────────────────────────────────────────────────────────────
// Backup Service: scheduled exports of the board
// ─────────────────────────────────────────────────────────────

const backupJob = "backup"

// BackupService writes export artifacts to a directory on a cron schedule and
// prunes old ones.
type BackupService struct {
	board   *BoardService
	backups *storage.BackupLog
	dir     string
	keep    int
	log     *slog.Logger
	guard   JobGuard

	cronSched *cron.Cron
}

// NewBackupService creates a BackupService. backups may be nil.
func NewBackupService(board *BoardService, backups *storage.BackupLog, dir string, keep int, log *slog.Logger) *BackupService {
	if log == nil {
		log = slog.Default()
	}
	return &BackupService{board: board, backups: backups, dir: dir, keep: keep, log: log}
}

// Start schedules backups with a cron expression (robfig syntax, including
// descriptors like "@every 1h"). An empty schedule does nothing.
func (s *BackupService) Start(ctx context.Context, schedule string) error {
	s.Stop()
	if schedule == "" {
		return nil
	}
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		_, err := s.RunOnce(ctx)
		switch {
		case errors.Is(err, ErrJobRunning):
			s.log.Debug("backup cron: previous run still going")
		case err != nil:
			s.log.Error("backup cron: run failed", "err", err)
		}
	})
	if err != nil {
		return fmt.Errorf("backup cron: invalid schedule %q: %w", schedule, err)
	}
	c.Start()
	s.cronSched = c
	s.log.Info("backup cron: scheduled", "schedule", schedule, "dir", s.dir)
	return nil
}

// Stop cancels the schedule and waits for a running backup to finish.
func (s *BackupService) Stop() {
	if s.cronSched != nil {
		<-s.cronSched.Stop().Done()
		s.cronSched = nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.guard.Wait(ctx); err != nil {
		s.log.Warn("backup: stopped with a run in flight", "err", err)
	}
}

// RunOnce writes one backup now and returns its path. While another run is in
// progress it returns ErrJobRunning.
func (s *BackupService) RunOnce(ctx context.Context) (string, error) {
	var path string
	err := s.guard.Run(backupJob, func() error {
		var err error
		path, err = s.run()
		return err
	})
	return path, err
}

func (s *BackupService) run() (string, error) {
	art := s.board.Export()
	rec := storage.BackupRecord{Path: s.freePath(art.Name), Cards: len(s.board.Store().All()), Bytes: len(art.Data)}

	err := s.write(rec.Path, art.Data)
	if err != nil {
		rec.Error = err.Error()
	}
	if s.backups != nil {
		if lerr := s.backups.Record(&rec); lerr != nil {
			s.log.Warn("backup: record run", "err", lerr)
		}
	}
	if err != nil {
		return "", err
	}
	s.prune()
	s.log.Debug("backup: written", "path", rec.Path, "cards", rec.Cards)
	return rec.Path, nil
}

// freePath returns dir/name, or dir/name-N.json when that file already exists.
func (s *BackupService) freePath(name string) string {
	path := filepath.Join(s.dir, name)
	base := strings.TrimSuffix(name, ".json")
	for n := 2; ; n++ {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			return path
		}
		path = filepath.Join(s.dir, fmt.Sprintf("%s-%d.json", base, n))
	}
}

func (s *BackupService) write(path string, data []byte) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("create backup dir: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write backup: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write backup: %w", err)
	}
	return nil
}

// prune keeps the newest s.keep exports. Names embed a sortable timestamp.
func (s *BackupService) prune() {
	if s.keep <= 0 {
		return
	}
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), "stickies-") && strings.HasSuffix(e.Name(), ".json") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	for len(names) > s.keep {
		if err := os.Remove(filepath.Join(s.dir, names[0])); err != nil {
			s.log.Warn("backup: prune", "file", names[0], "err", err)
		}
		names = names[1:]
	}
}
