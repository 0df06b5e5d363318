package celebrate

import (
	"context"
	"image/color"
	"math/rand"
	"sync"
	"time"
)

// Range defines a duration range with random sampling.
type Range struct {
	Min time.Duration
	Max time.Duration
}

// Random returns a random duration within the range.
func (value Range) Random(rng *rand.Rand) time.Duration {
	if value.Max <= value.Min {
		return value.Min
	}
	delta := value.Max - value.Min
	return value.Min + time.Duration(rng.Int63n(int64(delta)))
}

// Frame is one step of the celebration.
type Frame struct {
	Text  string
	Color color.Color
}

// Config contains animation timing values.
type Config struct {
	Duration      time.Duration
	FrameDuration Range
	Frames        []Frame
}

// DefaultConfig returns a short confetti-like flash.
func DefaultConfig() Config {
	return Config{
		Duration: 4 * time.Second,
		FrameDuration: Range{
			Min: 120 * time.Millisecond,
			Max: 260 * time.Millisecond,
		},
		Frames: []Frame{
			{Text: "Done!", Color: color.NRGBA{R: 239, G: 68, B: 68, A: 255}},
			{Text: "Well done!", Color: color.NRGBA{R: 234, G: 179, B: 8, A: 255}},
			{Text: "Done!", Color: color.NRGBA{R: 34, G: 197, B: 94, A: 255}},
			{Text: "Well done!", Color: color.NRGBA{R: 59, G: 130, B: 246, A: 255}},
			{Text: "Done!", Color: color.NRGBA{R: 168, G: 85, B: 247, A: 255}},
		},
	}
}

// Engine plays celebration frames through an update callback.
type Engine struct {
	mu       sync.Mutex
	config   Config
	update   func(Frame)
	onFinish func()
	cancel   context.CancelFunc
	rng      *rand.Rand
}

// New creates a new celebration engine.
func New(config Config, update func(Frame)) *Engine {
	return &Engine{
		config: config,
		update: update,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// SetOnFinish sets a callback fired when a celebration runs to the end.
func (engine *Engine) SetOnFinish(handler func()) {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	engine.onFinish = handler
}

// Play starts a celebration, replacing any running one.
func (engine *Engine) Play(ctx context.Context) {
	engine.mu.Lock()
	if engine.cancel != nil {
		engine.cancel()
	}
	runCtx, cancel := context.WithTimeout(ctx, engine.config.Duration)
	engine.cancel = cancel
	engine.mu.Unlock()

	go engine.run(runCtx)
}

// Stop terminates any active celebration.
func (engine *Engine) Stop() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.cancel != nil {
		engine.cancel()
		engine.cancel = nil
	}
}

func (engine *Engine) run(ctx context.Context) {
	frames := engine.config.Frames
	if len(frames) == 0 {
		return
	}
	for index := 0; ; index++ {
		engine.update(frames[index%len(frames)])
		if !sleepWithContext(ctx, engine.nextDelay()) {
			break
		}
	}

	if ctx.Err() != context.DeadlineExceeded {
		return
	}
	engine.mu.Lock()
	handler := engine.onFinish
	engine.mu.Unlock()
	if handler != nil {
		handler()
	}
}

func (engine *Engine) nextDelay() time.Duration {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.config.FrameDuration.Random(engine.rng)
}

func sleepWithContext(ctx context.Context, duration time.Duration) bool {
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
