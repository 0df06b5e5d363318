package timekeeper

import "fmt"

// FormatRemaining renders seconds as MM:SS.
func FormatRemaining(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// Summary is the status line without the countdown, e.g. "Work (1/4)".
func (snapshot Snapshot) Summary() string {
	summary := fmt.Sprintf("%s (%d/%d)", snapshot.Phase.Label(), snapshot.Completed, snapshot.Config.TotalCycles)
	if !snapshot.Running && snapshot.Phase != PhaseIdle {
		summary += " paused"
	}
	return summary
}

// Status summarises the snapshot in one line, e.g. "Work 24:59 (1/4)".
func (snapshot Snapshot) Status() string {
	status := fmt.Sprintf("%s %s (%d/%d)",
		snapshot.Phase.Label(),
		FormatRemaining(snapshot.Remaining),
		snapshot.Completed,
		snapshot.Config.TotalCycles,
	)
	if !snapshot.Running && snapshot.Phase != PhaseIdle {
		status += " paused"
	}
	return status
}
