package storage

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomodoro/internal/core/model"
	"pomodoro/internal/core/timekeeper"
)

const restoreDocument = `{"cycles":4,"pomodoro_length":25,"break_time":5,"long_break":15,"timer_state":"running","remaining_seconds":120,"current_cycle":1}`

func TestRecordSnapshotFromBackendDocument(t *testing.T) {
	var record Record
	require.NoError(t, json.Unmarshal([]byte(restoreDocument), &record))

	snapshot := record.Snapshot()

	assert.Equal(t, timekeeper.PhaseWork, snapshot.Phase)
	assert.Equal(t, 120, snapshot.Remaining)
	assert.Equal(t, 1, snapshot.Completed)
	assert.Equal(t, model.DefaultSessionConfig(), snapshot.Config)
}

func TestRecordPhaseFallback(t *testing.T) {
	tests := map[string]timekeeper.Phase{
		TimerRunning: timekeeper.PhaseWork,
		TimerPaused:  timekeeper.PhaseWork,
		TimerStopped: timekeeper.PhaseIdle,
		"":           timekeeper.PhaseIdle,
	}
	for timerState, want := range tests {
		record := Record{TimerState: timerState, RemainingSeconds: 60}
		assert.Equal(t, want, record.Snapshot().Phase, "timer_state %q", timerState)
	}

	explicit := Record{TimerState: TimerPaused, Phase: "long_break"}
	assert.Equal(t, timekeeper.PhaseLongBreak, explicit.Snapshot().Phase)
}

func TestRecordFromSnapshot(t *testing.T) {
	snapshot := timekeeper.Snapshot{
		State: timekeeper.State{Phase: timekeeper.PhaseShortBreak, Remaining: 42, Completed: 2},
		Config: model.SessionConfig{
			TotalCycles: 6,
			Work:        50 * time.Minute,
			ShortBreak:  10 * time.Minute,
			LongBreak:   30 * time.Second,
		},
	}

	record := RecordFromSnapshot(snapshot)

	assert.Equal(t, Record{
		Cycles:           6,
		PomodoroLength:   50,
		BreakTime:        10,
		LongBreak:        1,
		TimerState:       TimerPaused,
		RemainingSeconds: 42,
		CurrentCycle:     2,
		Phase:            "short_break",
	}, record)

	snapshot.Running = true
	assert.Equal(t, TimerRunning, RecordFromSnapshot(snapshot).TimerState)

	idle := timekeeper.Snapshot{State: timekeeper.State{Phase: timekeeper.PhaseIdle}}
	assert.Equal(t, TimerStopped, RecordFromSnapshot(idle).TimerState)
}

func TestHTTPStoreRoundTrip(t *testing.T) {
	backend := newFakeBackend(nil)
	server := httptest.NewServer(backend.handler())
	defer server.Close()

	store, err := NewHTTPStore(server.URL+fakeBasePath+"/", time.Second)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = store.Load(ctx)
	assert.ErrorIs(t, err, timekeeper.ErrNoState)

	snapshot := timekeeper.Snapshot{
		State:  timekeeper.State{Phase: timekeeper.PhaseWork, Remaining: 300, Completed: 1, Running: true},
		Config: model.DefaultSessionConfig(),
	}
	require.NoError(t, store.Save(ctx, snapshot))

	var sent map[string]any
	require.NoError(t, json.Unmarshal(backend.last, &sent))
	assert.EqualValues(t, 25, sent["pomodoro_length"])
	assert.Equal(t, "running", sent["timer_state"])

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, snapshot, loaded)
	assert.Equal(t, 1, backend.sessions())
	assert.Equal(t, 2, backend.returning)
}

func TestHTTPStoreSessionsFollowCookies(t *testing.T) {
	backend := newFakeBackend(nil)
	server := httptest.NewServer(backend.handler())
	defer server.Close()
	ctx := context.Background()

	first, err := NewHTTPStore(server.URL+fakeBasePath, time.Second)
	require.NoError(t, err)
	second, err := NewHTTPStore(server.URL+fakeBasePath, time.Second)
	require.NoError(t, err)

	working := timekeeper.Snapshot{
		State:  timekeeper.State{Phase: timekeeper.PhaseWork, Remaining: 90},
		Config: model.DefaultSessionConfig(),
	}
	require.NoError(t, first.Save(ctx, working))

	_, err = second.Load(ctx)
	assert.ErrorIs(t, err, timekeeper.ErrNoState)

	loaded, err := first.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, working, loaded)
}

func TestHTTPStoreServesBackendDocument(t *testing.T) {
	backend := newFakeBackend([]byte(restoreDocument))
	server := httptest.NewServer(backend.handler())
	defer server.Close()

	store, err := NewHTTPStore(server.URL+fakeBasePath, time.Second)
	require.NoError(t, err)

	keeper := timekeeper.New(model.SessionConfig{}, timekeeper.Config{
		Clock: timekeeper.NewManualClock(),
		Store: store,
	})
	defer keeper.Close()

	require.True(t, keeper.Restore(context.Background()))
	state := keeper.Snapshot().State
	assert.Equal(t, timekeeper.State{Phase: timekeeper.PhaseWork, Remaining: 120, Completed: 1}, state)
}

func TestHTTPStoreErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	store, err := NewHTTPStore(server.URL, time.Second)
	require.NoError(t, err)

	_, err = store.Load(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, timekeeper.ErrNoState)
	assert.Contains(t, err.Error(), "500")

	err = store.Save(context.Background(), timekeeper.Snapshot{})
	assert.Error(t, err)

	_, err = NewHTTPStore("  ", time.Second)
	assert.Error(t, err)
}

func TestHTTPStoreUnreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	store, err := NewHTTPStore(url, 200*time.Millisecond)
	require.NoError(t, err)

	_, err = store.Load(context.Background())
	assert.Error(t, err)
	assert.NotErrorIs(t, err, timekeeper.ErrNoState)
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", stateFileName)
	store := NewFileStore(path)
	ctx := context.Background()

	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, timekeeper.ErrNoState)

	snapshot := timekeeper.Snapshot{
		State:  timekeeper.State{Phase: timekeeper.PhaseLongBreak, Remaining: 61, Completed: 4},
		Config: model.SessionConfig{TotalCycles: 8, Work: 25 * time.Minute, ShortBreak: 5 * time.Minute, LongBreak: 20 * time.Minute},
	}
	require.NoError(t, store.Save(ctx, snapshot))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, snapshot, loaded)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "timer_state: paused")
}

func TestFileStoreCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), stateFileName)
	require.NoError(t, os.WriteFile(path, []byte("cycles: [oops"), 0o644))

	_, err := NewFileStore(path).Load(context.Background())
	assert.Error(t, err)
	assert.NotErrorIs(t, err, timekeeper.ErrNoState)
}

func TestSettingsFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), settingsFileName)

	prefs, err := LoadSettingsFile(path)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultPreferences(), prefs)

	prefs.Session = model.SessionConfig{TotalCycles: 3, Work: 40 * time.Minute, ShortBreak: 8 * time.Minute, LongBreak: 25 * time.Minute}
	prefs.SoundEnabled = false
	require.NoError(t, SaveSettingsFile(path, prefs))

	loaded, err := LoadSettingsFile(path)
	require.NoError(t, err)
	assert.Equal(t, prefs, loaded)
}

func TestSettingsFileIgnoresInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), settingsFileName)
	require.NoError(t, os.WriteFile(path, []byte("cycles: -2\npomodoro_length: 30\nbreak_time: 0\n"), 0o644))

	prefs, err := LoadSettingsFile(path)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultTotalCycles, prefs.Session.TotalCycles)
	assert.Equal(t, 30*time.Minute, prefs.Session.Work)
	assert.Equal(t, model.DefaultShortBreak, prefs.Session.ShortBreak)
	assert.True(t, prefs.SoundEnabled)
}
