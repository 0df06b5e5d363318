package timekeeper

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pomodoro/internal/core/model"
)

func TestFormatRemaining(t *testing.T) {
	tests := map[int]string{
		0:    "00:00",
		59:   "00:59",
		60:   "01:00",
		1500: "25:00",
		6001: "100:01",
		-3:   "00:00",
	}
	for seconds, want := range tests {
		assert.Equal(t, want, FormatRemaining(seconds), "seconds %d", seconds)
	}
}

func TestSnapshotStatus(t *testing.T) {
	snapshot := Snapshot{
		State:  State{Phase: PhaseWork, Remaining: 1499, Completed: 1, Running: true},
		Config: model.DefaultSessionConfig(),
	}
	assert.Equal(t, "Work 24:59 (1/4)", snapshot.Status())

	snapshot.Running = false
	assert.Equal(t, "Work 24:59 (1/4) paused", snapshot.Status())

	snapshot.State = State{Phase: PhaseLongBreak, Remaining: 61, Completed: 4}
	assert.Equal(t, "Long Break 01:01 (4/4) paused", snapshot.Status())

	snapshot.State = State{Phase: PhaseIdle, Remaining: 1500}
	assert.Equal(t, "Ready 25:00 (0/4)", snapshot.Status())
}

func TestSnapshotSummary(t *testing.T) {
	snapshot := Snapshot{
		State:  State{Phase: PhaseShortBreak, Remaining: 200, Completed: 2, Running: true},
		Config: model.DefaultSessionConfig(),
	}
	assert.Equal(t, "Break (2/4)", snapshot.Summary())

	snapshot.Remaining = 199
	assert.Equal(t, "Break (2/4)", snapshot.Summary())

	snapshot.Running = false
	assert.Equal(t, "Break (2/4) paused", snapshot.Summary())

	snapshot.State = State{Phase: PhaseIdle, Remaining: 1500}
	assert.Equal(t, "Ready (0/4)", snapshot.Summary())
}

func TestPhaseIsBreak(t *testing.T) {
	assert.True(t, PhaseShortBreak.IsBreak())
	assert.True(t, PhaseLongBreak.IsBreak())
	assert.False(t, PhaseWork.IsBreak())
	assert.False(t, PhaseIdle.IsBreak())
}
