package timekeeper

import (
	"time"

	"pomodoro/internal/core/model"
)

// Phase represents the current TimeKeeper mode.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseWork       Phase = "work"
	PhaseShortBreak Phase = "short_break"
	PhaseLongBreak  Phase = "long_break"
)

// IsBreak reports whether the phase is a short or long break.
func (phase Phase) IsBreak() bool {
	return phase == PhaseShortBreak || phase == PhaseLongBreak
}

// Label returns a human readable phase name.
func (phase Phase) Label() string {
	switch phase {
	case PhaseWork:
		return "Work"
	case PhaseShortBreak:
		return "Break"
	case PhaseLongBreak:
		return "Long Break"
	default:
		return "Ready"
	}
}

// State is the mutable part of a session.
type State struct {
	Phase     Phase
	Remaining int
	Completed int
	Running   bool
}

// Snapshot is a point-in-time copy of a session handed to views and stores.
type Snapshot struct {
	State
	Config model.SessionConfig
}

// EventType defines the type of TimeKeeper event.
type EventType string

const (
	EventStateChange EventType = "state_change"
	EventTick        EventType = "tick"
	EventComplete    EventType = "complete"
	EventRestored    EventType = "restored"
)

// Event represents a TimeKeeper update for observers.
type Event struct {
	Type     EventType
	Snapshot Snapshot
	// Cycles is the number of work phases finished, set on EventComplete.
	Cycles int
	At     time.Time
}
