package workers

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type countingSweeper struct {
	calls atomic.Int32
}

func (s *countingSweeper) Sweep() int {
	s.calls.Add(1)
	return 1
}

func TestSessionWorker_SweepsUntilCancelled(t *testing.T) {
	store := &countingSweeper{}
	w := NewSessionWorker(store, 5*time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	w.Start(ctx)

	assert.Eventually(t, func() bool { return store.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()

	time.Sleep(20 * time.Millisecond)
	stopped := store.calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, stopped, store.calls.Load())
}

func TestSessionWorker_RunOnce(t *testing.T) {
	store := &countingSweeper{}
	w := NewSessionWorker(store, time.Hour, nil)
	assert.Equal(t, 1, w.RunOnce())
}
