package timer

import (
	"image/color"

	"pomodoro/internal/core/timekeeper"
)

var (
	workColor       = color.NRGBA{R: 239, G: 68, B: 68, A: 255}
	shortBreakColor = color.NRGBA{R: 34, G: 197, B: 94, A: 255}
	longBreakColor  = color.NRGBA{R: 59, G: 130, B: 246, A: 255}
	idleColor       = color.NRGBA{R: 156, G: 163, B: 175, A: 255}
)

// PhaseColor returns the accent color for a phase.
func PhaseColor(phase timekeeper.Phase) color.Color {
	switch phase {
	case timekeeper.PhaseWork:
		return workColor
	case timekeeper.PhaseShortBreak:
		return shortBreakColor
	case timekeeper.PhaseLongBreak:
		return longBreakColor
	default:
		return idleColor
	}
}
