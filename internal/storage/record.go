package storage

import (
	"time"

	"pomodoro/internal/core/model"
	"pomodoro/internal/core/timekeeper"
)

const (
	TimerRunning = "running"
	TimerPaused  = "paused"
	TimerStopped = "stopped"
)

// Record is the persisted form of a session. Lengths are stored in minutes,
// runtime state in seconds.
type Record struct {
	Cycles           int    `json:"cycles" yaml:"cycles"`
	PomodoroLength   int    `json:"pomodoro_length" yaml:"pomodoro_length"`
	BreakTime        int    `json:"break_time" yaml:"break_time"`
	LongBreak        int    `json:"long_break" yaml:"long_break"`
	TimerState       string `json:"timer_state" yaml:"timer_state"`
	RemainingSeconds int    `json:"remaining_seconds" yaml:"remaining_seconds"`
	CurrentCycle     int    `json:"current_cycle" yaml:"current_cycle"`
	Phase            string `json:"phase,omitempty" yaml:"phase,omitempty"`
}

// RecordFromSnapshot converts a snapshot to its persisted form.
func RecordFromSnapshot(snapshot timekeeper.Snapshot) Record {
	timerState := TimerPaused
	switch {
	case snapshot.Running:
		timerState = TimerRunning
	case snapshot.Phase == timekeeper.PhaseIdle:
		timerState = TimerStopped
	}

	return Record{
		Cycles:           snapshot.Config.TotalCycles,
		PomodoroLength:   toMinutes(snapshot.Config.Work),
		BreakTime:        toMinutes(snapshot.Config.ShortBreak),
		LongBreak:        toMinutes(snapshot.Config.LongBreak),
		TimerState:       timerState,
		RemainingSeconds: snapshot.Remaining,
		CurrentCycle:     snapshot.Completed,
		Phase:            string(snapshot.Phase),
	}
}

// Snapshot converts the record back. Without an explicit phase, an active
// timer is shown as Work and anything else as Idle.
func (record Record) Snapshot() timekeeper.Snapshot {
	config := model.SessionConfig{
		TotalCycles: record.Cycles,
		Work:        time.Duration(record.PomodoroLength) * time.Minute,
		ShortBreak:  time.Duration(record.BreakTime) * time.Minute,
		LongBreak:   time.Duration(record.LongBreak) * time.Minute,
	}.Normalize()

	phase := timekeeper.Phase(record.Phase)
	switch phase {
	case timekeeper.PhaseIdle, timekeeper.PhaseWork, timekeeper.PhaseShortBreak, timekeeper.PhaseLongBreak:
	default:
		phase = timekeeper.PhaseIdle
		if record.TimerState == TimerRunning || record.TimerState == TimerPaused {
			phase = timekeeper.PhaseWork
		}
	}

	return timekeeper.Snapshot{
		State: timekeeper.State{
			Phase:     phase,
			Remaining: record.RemainingSeconds,
			Completed: record.CurrentCycle,
			Running:   record.TimerState == TimerRunning && phase != timekeeper.PhaseIdle,
		},
		Config: config,
	}
}

func toMinutes(duration time.Duration) int {
	minutes := int(duration / time.Minute)
	if minutes == 0 && duration > 0 {
		return 1
	}
	return minutes
}
