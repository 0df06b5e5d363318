package celebrate

import (
	"context"
	"image/color"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRangeRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	fixed := Range{Min: time.Second, Max: time.Second}
	assert.Equal(t, time.Second, fixed.Random(rng))

	spread := Range{Min: 10 * time.Millisecond, Max: 20 * time.Millisecond}
	for i := 0; i < 50; i++ {
		value := spread.Random(rng)
		assert.GreaterOrEqual(t, value, spread.Min)
		assert.Less(t, value, spread.Max)
	}
}

func TestPlayRunsFramesAndFinishes(t *testing.T) {
	var mu sync.Mutex
	var seen []string
	finished := make(chan struct{})

	engine := New(Config{
		Duration:      60 * time.Millisecond,
		FrameDuration: Range{Min: 5 * time.Millisecond, Max: 5 * time.Millisecond},
		Frames: []Frame{
			{Text: "a", Color: color.White},
			{Text: "b", Color: color.Black},
		},
	}, func(frame Frame) {
		mu.Lock()
		seen = append(seen, frame.Text)
		mu.Unlock()
	})
	engine.SetOnFinish(func() { close(finished) })

	engine.Play(context.Background())

	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("celebration did not finish")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.GreaterOrEqual(t, len(seen), 2)
	assert.Equal(t, "a", seen[0])
	assert.Equal(t, "b", seen[1])
}

func TestStopSkipsFinish(t *testing.T) {
	finished := make(chan struct{}, 1)
	engine := New(Config{
		Duration:      time.Minute,
		FrameDuration: Range{Min: time.Millisecond, Max: time.Millisecond},
		Frames:        DefaultConfig().Frames,
	}, func(Frame) {})
	engine.SetOnFinish(func() { finished <- struct{}{} })

	engine.Play(context.Background())
	engine.Stop()

	select {
	case <-finished:
		t.Fatal("stopped celebration must not report finish")
	case <-time.After(50 * time.Millisecond):
	}
}
