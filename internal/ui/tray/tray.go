package tray

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow        func()
	OnTogglePause func()
	OnReset       func()
	OnPreferences func()
	OnQuit        func()
}

// Manager handles system tray state.
type Manager struct {
	app         desktop.App
	callbacks   Callbacks
	running     bool
	idle        bool
	statusLabel string
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:         app,
		callbacks:   callbacks,
		idle:        true,
		statusLabel: "Ready",
	}
	manager.refreshMenu()
	return manager
}

// SetStatus updates the status label.
func (manager *Manager) SetStatus(status string) {
	if manager.statusLabel == status {
		return
	}
	manager.statusLabel = status
	manager.refreshMenu()
}

// SetRunning updates the start/pause item.
func (manager *Manager) SetRunning(running, idle bool) {
	if manager.running == running && manager.idle == idle {
		return
	}
	manager.running = running
	manager.idle = idle
	manager.refreshMenu()
}

func (manager *Manager) toggleLabel() string {
	switch {
	case manager.running:
		return "Pause"
	case manager.idle:
		return "Start"
	default:
		return "Resume"
	}
}

func (manager *Manager) refreshMenu() {
	if manager.app == nil {
		return
	}
	status := fyne.NewMenuItem(manager.statusLabel, nil)
	status.Disabled = true

	reset := fyne.NewMenuItem("Reset", call(manager.callbacks.OnReset))
	reset.Disabled = manager.idle && !manager.running

	prefs := fyne.NewMenuItem("Preferences", call(manager.callbacks.OnPreferences))
	prefs.Disabled = !manager.idle

	quit := fyne.NewMenuItem("Quit", call(manager.callbacks.OnQuit))
	quit.IsQuit = true

	manager.app.SetSystemTrayMenu(fyne.NewMenu("Pomodoro",
		status,
		fyne.NewMenuItem("Show timer", call(manager.callbacks.OnShow)),
		fyne.NewMenuItem(manager.toggleLabel(), call(manager.callbacks.OnTogglePause)),
		reset,
		prefs,
		fyne.NewMenuItemSeparator(),
		quit,
	))
}

func call(handler func()) func() {
	return func() {
		if handler != nil {
			handler()
		}
	}
}
