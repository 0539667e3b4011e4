package expiry

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/FloatBookingService/pkg/logger"
)

type scriptedExpirer struct {
	mu      sync.Mutex
	results []int
	err     error
	calls   int
}

func (e *scriptedExpirer) Execute(context.Context) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls++
	if e.err != nil {
		return 0, e.err
	}
	if len(e.results) == 0 {
		return 0, nil
	}
	n := e.results[0]
	e.results = e.results[1:]
	return n, nil
}

func (e *scriptedExpirer) callCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.calls
}

func TestWorker_TickDrainsFullBatches(t *testing.T) {
	e := &scriptedExpirer{results: []int{10, 10, 3}}
	w := NewWorker(e, time.Hour, 10, logger.Nop())

	w.tick(context.Background())
	assert.Equal(t, 3, e.callCount())
}

func TestWorker_TickStopsOnError(t *testing.T) {
	e := &scriptedExpirer{err: errors.New("db down")}
	w := NewWorker(e, time.Hour, 10, logger.Nop())

	w.tick(context.Background())
	assert.Equal(t, 1, e.callCount())
}

func TestWorker_RunUntilCancelled(t *testing.T) {
	e := &scriptedExpirer{}
	w := NewWorker(e, 5*time.Millisecond, 10, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return e.callCount() >= 3 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
}
