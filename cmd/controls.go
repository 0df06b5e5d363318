package main

import (
	"pomodoro/internal/core/model"
	"pomodoro/internal/core/timekeeper"
)

// sessionControls routes the window, keyboard and tray commands to the
// keeper. Starting from Idle applies the current settings and begins a
// fresh session; any other start resumes the paused phase.
type sessionControls struct {
	keeper  *timekeeper.TimeKeeper
	session func() model.SessionConfig
}

func (controls sessionControls) start() {
	if controls.keeper.Snapshot().Phase == timekeeper.PhaseIdle {
		controls.keeper.StartSession(controls.session())
		return
	}
	controls.keeper.Start()
}

func (controls sessionControls) toggle() {
	if controls.keeper.Snapshot().Running {
		controls.keeper.Pause()
		return
	}
	controls.start()
}

// trayStatus returns the tray status line for an event. Ticks only move the
// countdown, which the tray does not show, so they report false.
func trayStatus(event timekeeper.Event) (string, bool) {
	if event.Type == timekeeper.EventTick {
		return "", false
	}
	return event.Snapshot.Summary(), true
}

// closeThenQuit flushes the keeper off the calling goroutine so a slow
// store never blocks the UI, then quits.
func closeThenQuit(closeKeeper, quit func()) {
	go func() {
		closeKeeper()
		quit()
	}()
}
