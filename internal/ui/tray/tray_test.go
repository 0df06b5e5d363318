package tray

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToggleLabel(t *testing.T) {
	manager := New(nil, Callbacks{})
	assert.Equal(t, "Start", manager.toggleLabel())
	assert.Equal(t, "Ready", manager.statusLabel)

	manager.SetRunning(true, false)
	assert.Equal(t, "Pause", manager.toggleLabel())

	manager.SetRunning(false, false)
	assert.Equal(t, "Resume", manager.toggleLabel())

	manager.SetStatus("Work 12:00 (0/4)")
	assert.Equal(t, "Work 12:00 (0/4)", manager.statusLabel)
}

func TestCallIgnoresNilHandler(t *testing.T) {
	assert.NotPanics(t, func() { call(nil)() })

	called := false
	call(func() { called = true })()
	assert.True(t, called)
}
