package service

import (
	"strconv"

	"stickies/internal/storage"
)

// ─────────────────────────────────────────────────────────────
// Window Size Persistence
// ─────────────────────────────────────────────────────────────
//
// Saves and restores the main window size between sessions, stored next to
// the board in the kv table.

// WindowSize holds the saved window dimensions.
type WindowSize struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Medium is the key-value store window settings are kept in.
type Medium interface {
	Get(key string) (string, bool, error)
	Put(key, value string) error
}

// WindowSettingsService persists window size between sessions.
type WindowSettingsService struct {
	kv Medium
}

// NewWindowSettingsService creates a WindowSettingsService.
func NewWindowSettingsService(kv Medium) *WindowSettingsService {
	return &WindowSettingsService{kv: kv}
}

var _ Medium = (*storage.KVStore)(nil)

const (
	settingWindowWidth  = "window_width"
	settingWindowHeight = "window_height"
	defaultWindowWidth  = 1280
	defaultWindowHeight = 800
)

// LoadWindowSize returns the saved window dimensions, or sensible defaults.
func (s *WindowSettingsService) LoadWindowSize() WindowSize {
	size := WindowSize{Width: defaultWindowWidth, Height: defaultWindowHeight}
	if s.kv == nil {
		return size
	}
	if w := s.intSetting(settingWindowWidth); w >= 800 {
		size.Width = w
	}
	if h := s.intSetting(settingWindowHeight); h >= 600 {
		size.Height = h
	}
	return size
}

// SaveWindowSize persists the current window dimensions.
func (s *WindowSettingsService) SaveWindowSize(width, height int) error {
	if s.kv == nil {
		return nil
	}
	if err := s.kv.Put(settingWindowWidth, strconv.Itoa(width)); err != nil {
		return err
	}
	return s.kv.Put(settingWindowHeight, strconv.Itoa(height))
}

func (s *WindowSettingsService) intSetting(key string) int {
	v, ok, err := s.kv.Get(key)
	if err != nil || !ok {
		return 0
	}
	n, _ := strconv.Atoi(v)
	return n
}
