package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"
)

// KVStore is a durable text key-value medium backed by the kv table.
// Writes are synchronous and in-process, so it tolerates the write rate of a
// drag gesture persisting on every pointer move.
type KVStore struct {
	db *DB
}

func NewKVStore(db *DB) *KVStore {
	return &KVStore{db: db}
}

// Get returns the value stored under key. ok is false when the key is absent.
func (s *KVStore) Get(key string) (string, bool, error) {
	var value string
	err := s.db.Conn().QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	return value, true, nil
}

// Put stores value under key, replacing any previous value.
func (s *KVStore) Put(key, value string) error {
	_, err := s.db.Conn().Exec(
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}

// Version returns a fingerprint of the last write to key. It changes whenever
// any process writes the key, which lets a watcher detect external writers.
func (s *KVStore) Version(key string) (int64, error) {
	var v int64
	err := s.db.Conn().QueryRow(`SELECT updated_at FROM kv WHERE key = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	return v, err
}

// MemoryKV is an in-memory medium for tests and dry runs.
type MemoryKV struct {
	mu     sync.Mutex
	values map[string]string
	Writes int
	// FailPut makes every Put return this error when set.
	FailPut error
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: make(map[string]string)}
}

func (m *MemoryKV) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryKV) Put(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailPut != nil {
		return m.FailPut
	}
	m.values[key] = value
	m.Writes++
	return nil
}
