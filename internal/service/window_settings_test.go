package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stickies/internal/service"
	"stickies/internal/storage"
)

func TestWindowSettings_DefaultsAndRoundTrip(t *testing.T) {
	kv := storage.NewMemoryKV()
	s := service.NewWindowSettingsService(kv)

	assert.Equal(t, service.WindowSize{Width: 1280, Height: 800}, s.LoadWindowSize())

	require.NoError(t, s.SaveWindowSize(1600, 900))
	assert.Equal(t, service.WindowSize{Width: 1600, Height: 900}, s.LoadWindowSize())

	// implausibly small sizes fall back to defaults
	require.NoError(t, s.SaveWindowSize(200, 100))
	assert.Equal(t, service.WindowSize{Width: 1280, Height: 800}, s.LoadWindowSize())
}
