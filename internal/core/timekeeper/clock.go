package timekeeper

import (
	"sync"
	"time"
)

// Ticker is a handle to a repeating callback.
type Ticker interface {
	Stop()
}

// Clock schedules repeating callbacks.
type Clock interface {
	Every(interval time.Duration, fn func()) Ticker
}

// SystemClock is the default Clock backed by time.Ticker.
var SystemClock Clock = systemClock{}

type systemClock struct{}

func (systemClock) Every(interval time.Duration, fn func()) Ticker {
	ticker := &systemTicker{stopCh: make(chan struct{})}
	go ticker.run(interval, fn)
	return ticker
}

type systemTicker struct {
	once   sync.Once
	stopCh chan struct{}
}

func (ticker *systemTicker) run(interval time.Duration, fn func()) {
	timeTicker := time.NewTicker(interval)
	defer timeTicker.Stop()

	for {
		select {
		case <-ticker.stopCh:
			return
		case <-timeTicker.C:
			// A Stop racing with a pending tick wins.
			select {
			case <-ticker.stopCh:
				return
			default:
			}
			fn()
		}
	}
}

func (ticker *systemTicker) Stop() {
	ticker.once.Do(func() {
		close(ticker.stopCh)
	})
}

// ManualClock is a Clock driven by Advance. Callbacks run synchronously on
// the goroutine calling Advance.
type ManualClock struct {
	mu      sync.Mutex
	now     time.Duration
	nextID  int
	tickers map[int]*manualTicker
}

// NewManualClock creates a ManualClock at virtual time zero.
func NewManualClock() *ManualClock {
	return &ManualClock{tickers: make(map[int]*manualTicker)}
}

type manualTicker struct {
	clock    *ManualClock
	id       int
	interval time.Duration
	next     time.Duration
	fn       func()
}

func (ticker *manualTicker) Stop() {
	ticker.clock.mu.Lock()
	delete(ticker.clock.tickers, ticker.id)
	ticker.clock.mu.Unlock()
}

// Every registers fn to fire each interval of virtual time.
func (clock *ManualClock) Every(interval time.Duration, fn func()) Ticker {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	clock.nextID++
	ticker := &manualTicker{
		clock:    clock,
		id:       clock.nextID,
		interval: interval,
		next:     clock.now + interval,
		fn:       fn,
	}
	clock.tickers[ticker.id] = ticker
	return ticker
}

// Active returns the number of live tickers.
func (clock *ManualClock) Active() int {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	return len(clock.tickers)
}

// Advance moves virtual time forward, firing due callbacks in order.
func (clock *ManualClock) Advance(delta time.Duration) {
	clock.mu.Lock()
	target := clock.now + delta
	clock.mu.Unlock()

	for {
		clock.mu.Lock()
		due := clock.nextDueLocked(target)
		if due == nil {
			clock.now = target
			clock.mu.Unlock()
			return
		}
		clock.now = due.next
		due.next += due.interval
		fn := due.fn
		clock.mu.Unlock()

		fn()
	}
}

// Tick advances virtual time by n seconds.
func (clock *ManualClock) Tick(n int) {
	clock.Advance(time.Duration(n) * time.Second)
}

func (clock *ManualClock) nextDueLocked(target time.Duration) *manualTicker {
	var due *manualTicker
	for _, ticker := range clock.tickers {
		if ticker.next > target {
			continue
		}
		if due == nil || ticker.next < due.next || (ticker.next == due.next && ticker.id < due.id) {
			due = ticker
		}
	}
	return due
}
