package timekeeper

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"pomodoro/internal/core/model"
)

// View renders session snapshots. Render is called with the TimeKeeper lock
// held and must not block or call back into the TimeKeeper synchronously.
type View interface {
	Render(snapshot Snapshot)
}

// Config contains runtime options for TimeKeeper.
type Config struct {
	TickInterval time.Duration
	Clock        Clock
	View         View
	Store        Store
	SaveTimeout  time.Duration
}

// TimeKeeper is a state machine that drives a pomodoro session.
type TimeKeeper struct {
	mu      sync.Mutex
	config  model.SessionConfig
	options Config
	state   State
	ticker  Ticker
	events  []chan Event
	saver   *saver
	closed  bool

	// generation identifies the live ticker. Callbacks from older tickers
	// carry a stale value and are ignored.
	generation uint64
}

// New creates an idle TimeKeeper with the provided session configuration.
func New(config model.SessionConfig, options Config) *TimeKeeper {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	if options.Clock == nil {
		options.Clock = SystemClock
	}

	keeper := &TimeKeeper{
		config:  config.Normalize(),
		options: options,
	}
	keeper.state = ResetState(keeper.config)
	if options.Store != nil {
		keeper.saver = newSaver(options.Store, options.SaveTimeout)
	}
	return keeper
}

// SetView injects the view rendered after every mutation.
func (keeper *TimeKeeper) SetView(view View) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.options.View = view
	keeper.renderLocked()
}

// Subscribe registers a new observer channel.
func (keeper *TimeKeeper) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.closed {
		close(ch)
		return ch
	}
	keeper.events = append(keeper.events, ch)
	return ch
}

// Snapshot returns a copy of the current session.
func (keeper *TimeKeeper) Snapshot() Snapshot {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.snapshotLocked()
}

// Restore loads the last stored session. A restored session is never
// resumed automatically; it waits for an explicit Start.
func (keeper *TimeKeeper) Restore(ctx context.Context) bool {
	if keeper.options.Store == nil {
		return false
	}

	snapshot, err := keeper.options.Store.Load(ctx)
	if err != nil {
		if errors.Is(err, ErrNoState) {
			log.Debug().Msg("no stored session, using defaults")
		} else {
			log.Warn().Err(err).Msg("restore session state, using defaults")
		}
		return false
	}

	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.state.Running {
		log.Warn().Msg("restore skipped, session already running")
		return false
	}

	keeper.config = snapshot.Config.Normalize()
	keeper.state = sanitize(snapshot.State, keeper.config)
	log.Info().
		Str("phase", string(keeper.state.Phase)).
		Int("remaining", keeper.state.Remaining).
		Int("completed", keeper.state.Completed).
		Msg("session restored")

	keeper.renderLocked()
	keeper.emitLocked(Event{Type: EventRestored, Snapshot: keeper.snapshotLocked(), At: time.Now()})
	return true
}

// Start launches the countdown. From Idle it begins a fresh session;
// otherwise it resumes the current phase. Calling Start while running
// is a no-op.
func (keeper *TimeKeeper) Start() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.startLocked()
}

// StartSession applies config and begins a fresh session.
func (keeper *TimeKeeper) StartSession(config model.SessionConfig) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.state.Running {
		return
	}
	keeper.config = config.Normalize()
	keeper.state = ResetState(keeper.config)
	keeper.startLocked()
}

// Pause freezes the countdown without changing the phase.
func (keeper *TimeKeeper) Pause() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if !keeper.state.Running {
		return
	}
	keeper.stopTickerLocked()
	keeper.state.Running = false
	keeper.publishLocked(EventStateChange)
}

// Toggle pauses a running session and starts or resumes any other.
func (keeper *TimeKeeper) Toggle() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.state.Running {
		keeper.stopTickerLocked()
		keeper.state.Running = false
		keeper.publishLocked(EventStateChange)
		return
	}
	keeper.startLocked()
}

// Reset stops the countdown and returns to Idle from any state.
func (keeper *TimeKeeper) Reset() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.stopTickerLocked()
	keeper.state = ResetState(keeper.config)
	keeper.publishLocked(EventStateChange)
}

// UpdateConfig replaces the session configuration. An idle session also
// picks up the new work length.
func (keeper *TimeKeeper) UpdateConfig(config model.SessionConfig) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.config = config.Normalize()
	if keeper.state.Completed > keeper.config.TotalCycles {
		keeper.state.Completed = keeper.config.TotalCycles
	}
	if keeper.state.Phase == PhaseIdle {
		keeper.state = ResetState(keeper.config)
	}
	keeper.publishLocked(EventStateChange)
}

// Close stops the countdown, closes observers and flushes pending saves.
func (keeper *TimeKeeper) Close() {
	keeper.mu.Lock()
	if keeper.closed {
		keeper.mu.Unlock()
		return
	}
	keeper.closed = true
	keeper.stopTickerLocked()
	events := keeper.events
	keeper.events = nil
	keeper.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
	if keeper.saver != nil {
		keeper.saver.close()
	}
}

func (keeper *TimeKeeper) startLocked() {
	if keeper.state.Running || keeper.closed {
		return
	}
	if keeper.ticker != nil {
		log.Error().Msg("timekeeper: stale ticker on start")
		keeper.stopTickerLocked()
	}
	if keeper.state.Phase == PhaseIdle {
		keeper.state = State{Phase: PhaseWork, Remaining: keeper.config.WorkSeconds()}
	}
	keeper.state.Running = true
	keeper.generation++
	generation := keeper.generation
	keeper.ticker = keeper.options.Clock.Every(keeper.options.TickInterval, func() {
		keeper.tick(generation)
	})
	keeper.publishLocked(EventStateChange)
}

func (keeper *TimeKeeper) stopTickerLocked() {
	keeper.generation++
	if keeper.ticker != nil {
		keeper.ticker.Stop()
		keeper.ticker = nil
	}
}

func (keeper *TimeKeeper) tick(generation uint64) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if generation != keeper.generation || !keeper.state.Running || keeper.ticker == nil {
		return
	}
	if keeper.state.Remaining < 0 {
		log.Error().Int("remaining", keeper.state.Remaining).Msg("timekeeper: negative remaining time")
		keeper.state.Remaining = 0
	}

	transition := Advance(keeper.state, keeper.config)
	keeper.state = transition.State

	if transition.Complete {
		keeper.stopTickerLocked()
		log.Info().Int("cycles", transition.Cycles).Msg("session complete")
		keeper.publishLocked(EventStateChange)
		keeper.emitLocked(Event{
			Type:     EventComplete,
			Snapshot: keeper.snapshotLocked(),
			Cycles:   transition.Cycles,
			At:       time.Now(),
		})
		return
	}

	keeper.state.Running = true
	if transition.PhaseChanged {
		log.Debug().
			Str("phase", string(keeper.state.Phase)).
			Int("completed", keeper.state.Completed).
			Msg("phase changed")
		keeper.publishLocked(EventStateChange)
		return
	}
	keeper.publishLocked(EventTick)
}

// publishLocked renders, queues a save and notifies observers.
func (keeper *TimeKeeper) publishLocked(eventType EventType) {
	snapshot := keeper.snapshotLocked()
	keeper.renderLocked()
	if keeper.saver != nil {
		keeper.saver.push(snapshot)
	}
	keeper.emitLocked(Event{Type: eventType, Snapshot: snapshot, At: time.Now()})
}

func (keeper *TimeKeeper) renderLocked() {
	if keeper.options.View != nil {
		keeper.options.View.Render(keeper.snapshotLocked())
	}
}

func (keeper *TimeKeeper) snapshotLocked() Snapshot {
	return Snapshot{State: keeper.state, Config: keeper.config}
}

func (keeper *TimeKeeper) emitLocked(event Event) {
	for _, ch := range keeper.events {
		select {
		case ch <- event:
		default:
		}
	}
}

func sanitize(state State, config model.SessionConfig) State {
	state.Running = false
	switch state.Phase {
	case PhaseWork, PhaseShortBreak, PhaseLongBreak:
	default:
		return ResetState(config)
	}
	if state.Remaining < 0 {
		state.Remaining = 0
	}
	if state.Completed < 0 {
		state.Completed = 0
	}
	if state.Completed > config.TotalCycles {
		state.Completed = config.TotalCycles
	}
	return state
}
