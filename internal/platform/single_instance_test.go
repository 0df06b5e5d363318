package platform

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPortFromNameIsStable(t *testing.T) {
	port := portFromName("Pomodoro")
	assert.Equal(t, port, portFromName("Pomodoro"))
	assert.GreaterOrEqual(t, port, 20000)
	assert.LessOrEqual(t, port, 39999)
}

func TestSingleInstance(t *testing.T) {
	appName := fmt.Sprintf("pomodoro-test-%d", time.Now().UnixNano())

	guard, err := AcquireSingleInstance(appName)
	if err != nil {
		t.Skipf("port for %s unavailable: %v", appName, err)
	}
	defer func() { _ = guard.Release() }()

	shown := make(chan struct{}, 1)
	guard.Serve(func() { shown <- struct{}{} })

	_, err = AcquireSingleInstance(appName)
	assert.ErrorIs(t, err, ErrAlreadyRunning)

	require.NoError(t, RequestShow(appName))
	select {
	case <-shown:
	case <-time.After(2 * time.Second):
		t.Fatal("show request not delivered")
	}

	require.NoError(t, guard.Release())
	require.NoError(t, guard.Release())
	assert.Error(t, RequestShow(appName))
}
