package main

import (
	"fmt"

	"pomodoro/internal/core/timekeeper"
)

func phaseMessage(phase timekeeper.Phase) string {
	switch {
	case phase == timekeeper.PhaseWork:
		return "Time to focus."
	case !phase.IsBreak():
		return ""
	case phase == timekeeper.PhaseLongBreak:
		return "Take a long break, you earned it."
	default:
		return "Take a short break."
	}
}

func completionMessage(cycles int) string {
	if cycles == 1 {
		return "Session complete: 1 pomodoro done!"
	}
	return fmt.Sprintf("Session complete: %d pomodoros done!", cycles)
}
