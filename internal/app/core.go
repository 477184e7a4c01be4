package app

import (
	"fmt"
	"log/slog"

	"stickies/internal/canvas"
	"stickies/internal/config"
	"stickies/internal/service"
	"stickies/internal/storage"
)

// Core is the storage and services every entry point shares: the desktop
// app, the standalone MCP server and the CLI commands.
type Core struct {
	Config    config.Config
	DB        *storage.DB
	KV        *storage.KVStore
	Store     *canvas.Store
	Board     *service.BoardService
	BackupLog *storage.BackupLog
	Approvals *storage.ApprovalStore
	Window    *service.WindowSettingsService
	Log       *slog.Logger
}

// Open opens the database and loads the board. A board that cannot be read
// starts empty; only a database that cannot be opened is an error.
func Open(cfg config.Config, emitter service.EventEmitter, log *slog.Logger) (*Core, error) {
	if log == nil {
		log = slog.Default()
	}
	db, err := storage.New(cfg.DBPath(), cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	kv := storage.NewKVStore(db)
	store := canvas.NewStore(kv, cfg.MinCard, log)
	store.Load()

	return &Core{
		Config:    cfg,
		DB:        db,
		KV:        kv,
		Store:     store,
		Board:     service.NewBoardService(store, cfg.Settings(), cfg.DefaultCard, emitter, log),
		BackupLog: storage.NewBackupLog(db),
		Approvals: storage.NewApprovalStore(db),
		Window:    service.NewWindowSettingsService(kv),
		Log:       log,
	}, nil
}

// Backups returns a backup service writing to the configured directory.
func (c *Core) Backups() *service.BackupService {
	return service.NewBackupService(c.Board, c.BackupLog, c.Config.Backup.Dir, c.Config.Backup.Keep, c.Log)
}

func (c *Core) Close() error {
	return c.DB.Close()
}
