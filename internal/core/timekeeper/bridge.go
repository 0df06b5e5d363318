package timekeeper

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// ErrNoState is returned by a Store that holds no session yet.
var ErrNoState = errors.New("no stored session")

// Store persists session snapshots outside the process.
type Store interface {
	Save(ctx context.Context, snapshot Snapshot) error
	Load(ctx context.Context) (Snapshot, error)
}

const defaultSaveTimeout = 5 * time.Second

// saver pushes snapshots to a Store on its own goroutine. Only the newest
// pending snapshot is kept, so a slow store never backs up the ticker.
type saver struct {
	store   Store
	timeout time.Duration

	mu     sync.Mutex
	closed bool
	queue  chan Snapshot
	done   chan struct{}
}

func newSaver(store Store, timeout time.Duration) *saver {
	if timeout <= 0 {
		timeout = defaultSaveTimeout
	}
	s := &saver{
		store:   store,
		timeout: timeout,
		queue:   make(chan Snapshot, 1),
		done:    make(chan struct{}),
	}
	go s.run()
	return s
}

func (s *saver) push(snapshot Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	for {
		select {
		case s.queue <- snapshot:
			return
		default:
		}
		select {
		case <-s.queue:
		default:
		}
	}
}

func (s *saver) run() {
	defer close(s.done)
	for snapshot := range s.queue {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		err := s.store.Save(ctx, snapshot)
		cancel()
		if err != nil {
			log.Warn().Err(err).Str("phase", string(snapshot.Phase)).Msg("save session state")
		}
	}
}

// close flushes the pending snapshot and waits for the worker to exit.
func (s *saver) close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	close(s.queue)
	s.mu.Unlock()
	<-s.done
}
