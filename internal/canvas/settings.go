package canvas

import (
	"github.com/google/uuid"

	"stickies/internal/domain"
)

// Settings are the geometry rules shared by the gesture controllers.
type Settings struct {
	GridUnit       float64       // pixels per grid unit
	Bounds         domain.Bounds // canvas restriction area
	NoiseThreshold float64       // marquee displacement ignored as jitter
	MinCreatePx    float64       // marquee width and height needed to create a card
	DefaultText    string
	NewID          func() string
}

// DefaultSettings matches the classic board: a 16px grid, 5px of marquee
// jitter and a 160px (10 unit) minimum marquee.
func DefaultSettings() Settings {
	return Settings{
		GridUnit:       16,
		NoiseThreshold: 5,
		MinCreatePx:    160,
		DefaultText:    "New note",
		NewID:          NewCardID,
	}
}

func (s Settings) withDefaults() Settings {
	d := DefaultSettings()
	if s.GridUnit <= 0 {
		s.GridUnit = d.GridUnit
	}
	if s.NoiseThreshold < 0 {
		s.NoiseThreshold = d.NoiseThreshold
	}
	if s.NewID == nil {
		s.NewID = d.NewID
	}
	return s
}

// NewCardID returns a time-ordered unique card id.
func NewCardID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// Observer receives presentation updates from the gesture controllers.
type Observer interface {
	CardChanged(c domain.Card)
	MarkerChanged(id string, moving bool)
	PreviewChanged(r domain.Rect, visible bool)
}

// NopObserver ignores every update.
type NopObserver struct{}

func (NopObserver) CardChanged(domain.Card)          {}
func (NopObserver) MarkerChanged(string, bool)       {}
func (NopObserver) PreviewChanged(domain.Rect, bool) {}
