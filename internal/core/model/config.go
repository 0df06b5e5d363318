package model

import (
	"strconv"
	"strings"
	"time"
)

const (
	DefaultTotalCycles = 4
	DefaultWork        = 25 * time.Minute
	DefaultShortBreak  = 5 * time.Minute
	DefaultLongBreak   = 15 * time.Minute
)

// SessionConfig contains the user-supplied settings for one pomodoro run.
type SessionConfig struct {
	TotalCycles int
	Work        time.Duration
	ShortBreak  time.Duration
	LongBreak   time.Duration
}

// DefaultSessionConfig returns the classic 4 x 25/5/15 schedule.
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		TotalCycles: DefaultTotalCycles,
		Work:        DefaultWork,
		ShortBreak:  DefaultShortBreak,
		LongBreak:   DefaultLongBreak,
	}
}

// Normalize replaces every non-positive field with its default.
// Durations are truncated to whole seconds.
func (config SessionConfig) Normalize() SessionConfig {
	if config.TotalCycles <= 0 {
		config.TotalCycles = DefaultTotalCycles
	}
	config.Work = positiveOr(config.Work, DefaultWork)
	config.ShortBreak = positiveOr(config.ShortBreak, DefaultShortBreak)
	config.LongBreak = positiveOr(config.LongBreak, DefaultLongBreak)
	return config
}

// WorkSeconds returns the work phase length in seconds.
func (config SessionConfig) WorkSeconds() int {
	return int(config.Work / time.Second)
}

// ShortBreakSeconds returns the short break length in seconds.
func (config SessionConfig) ShortBreakSeconds() int {
	return int(config.ShortBreak / time.Second)
}

// LongBreakSeconds returns the long break length in seconds.
func (config SessionConfig) LongBreakSeconds() int {
	return int(config.LongBreak / time.Second)
}

// ParseSessionConfig builds a config from raw form input expressed in minutes.
// Fields that are empty, non-numeric or non-positive fall back to defaults.
func ParseSessionConfig(cycles, workMinutes, shortMinutes, longMinutes string) SessionConfig {
	config := DefaultSessionConfig()
	if value, ok := parsePositiveInt(cycles); ok {
		config.TotalCycles = value
	}
	if value, ok := parsePositiveInt(workMinutes); ok {
		config.Work = time.Duration(value) * time.Minute
	}
	if value, ok := parsePositiveInt(shortMinutes); ok {
		config.ShortBreak = time.Duration(value) * time.Minute
	}
	if value, ok := parsePositiveInt(longMinutes); ok {
		config.LongBreak = time.Duration(value) * time.Minute
	}
	return config
}

func positiveOr(value, fallback time.Duration) time.Duration {
	value = value.Truncate(time.Second)
	if value <= 0 {
		return fallback
	}
	return value
}

func parsePositiveInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}
