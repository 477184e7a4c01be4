package storage

import (
	"fmt"
	"time"
)

// BackupRecord is one scheduled or manual export run.
type BackupRecord struct {
	ID        int64     `json:"id"`
	Path      string    `json:"path"`
	Cards     int       `json:"cards"`
	Bytes     int       `json:"bytes"`
	Error     string    `json:"error"`
	CreatedAt time.Time `json:"createdAt"`
}

// BackupLog records backup runs in SQLite.
type BackupLog struct {
	db *DB
}

func NewBackupLog(db *DB) *BackupLog {
	return &BackupLog{db: db}
}

func (l *BackupLog) Record(r *BackupRecord) error {
	r.CreatedAt = time.Now()
	res, err := l.db.Conn().Exec(
		`INSERT INTO backups (path, cards, bytes, error, created_at) VALUES (?, ?, ?, ?, ?)`,
		r.Path, r.Cards, r.Bytes, r.Error, r.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("record backup: %w", err)
	}
	r.ID, _ = res.LastInsertId()
	return nil
}

// Recent returns the newest backup runs first.
func (l *BackupLog) Recent(limit int) ([]BackupRecord, error) {
	rows, err := l.db.Conn().Query(
		`SELECT id, path, cards, bytes, error, created_at FROM backups ORDER BY id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []BackupRecord
	for rows.Next() {
		var r BackupRecord
		if err := rows.Scan(&r.ID, &r.Path, &r.Cards, &r.Bytes, &r.Error, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
