package timekeeper

import "pomodoro/internal/core/model"

// Transition is the outcome of advancing a session by one tick.
type Transition struct {
	State State
	// PhaseChanged is set when the tick moved the session into a new phase.
	PhaseChanged bool
	// Complete is set when the final work phase of the session expired.
	Complete bool
	// Cycles holds the completed work phases at the moment of completion.
	Cycles int
}

// Advance applies one tick to state. It has no side effects.
//
// A phase expires on the tick that observes zero remaining seconds, so a
// phase of N seconds spans N+1 ticks.
func Advance(state State, config model.SessionConfig) Transition {
	if state.Remaining > 0 {
		state.Remaining--
		return Transition{State: state}
	}

	switch state.Phase {
	case PhaseWork:
		state.Completed++
		if state.Completed >= config.TotalCycles {
			return Transition{
				State:        State{Phase: PhaseIdle},
				PhaseChanged: true,
				Complete:     true,
				Cycles:       state.Completed,
			}
		}
		state.Phase = NextBreak(state.Completed, config.TotalCycles)
		if state.Phase == PhaseLongBreak {
			state.Remaining = config.LongBreakSeconds()
		} else {
			state.Remaining = config.ShortBreakSeconds()
		}
	case PhaseShortBreak, PhaseLongBreak:
		state.Phase = PhaseWork
		state.Remaining = config.WorkSeconds()
	default:
		// Idle never ticks.
		return Transition{State: state}
	}

	return Transition{State: state, PhaseChanged: true}
}

// NextBreak picks the break that follows the given number of finished work
// phases: the last cycle of every full round earns the long break.
func NextBreak(completed, totalCycles int) Phase {
	if totalCycles > 0 && completed%totalCycles == 0 {
		return PhaseLongBreak
	}
	return PhaseShortBreak
}

// ResetState returns the state every reset lands in.
func ResetState(config model.SessionConfig) State {
	return State{Phase: PhaseIdle, Remaining: config.WorkSeconds()}
}
