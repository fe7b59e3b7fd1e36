package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeWorker struct {
	*BaseWorker
	run func(ctx context.Context) error
}

func newFakeWorker(name string, run func(ctx context.Context) error) *fakeWorker {
	return &fakeWorker{BaseWorker: NewBaseWorker(name, zap.NewNop()), run: run}
}

func (w *fakeWorker) Run(ctx context.Context) error {
	return w.run(ctx)
}

func TestWorkerManager_RunsAll(t *testing.T) {
	m := NewWorkerManager(2, zap.NewNop())

	var done atomic.Int32
	for _, name := range []string{"a", "b", "c", "d"} {
		m.Register(newFakeWorker(name, func(ctx context.Context) error {
			done.Add(1)
			return nil
		}))
	}

	require.NoError(t, m.Run(context.Background()))
	assert.Equal(t, int32(4), done.Load())
}

func TestWorkerManager_RespectsLimit(t *testing.T) {
	m := NewWorkerManager(2, zap.NewNop())

	var running, peak atomic.Int32
	for i := 0; i < 6; i++ {
		m.Register(newFakeWorker("w", func(ctx context.Context) error {
			n := running.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(10 * time.Millisecond)
			running.Add(-1)
			return nil
		}))
	}

	require.NoError(t, m.Run(context.Background()))
	assert.LessOrEqual(t, peak.Load(), int32(2))
}

func TestWorkerManager_JoinsFailures(t *testing.T) {
	m := NewWorkerManager(4, zap.NewNop())

	errA := errors.New("bad header")
	errC := errors.New("bad timestamp")
	var ran atomic.Int32

	m.Register(newFakeWorker("a.csv", func(ctx context.Context) error { ran.Add(1); return errA }))
	m.Register(newFakeWorker("b.csv", func(ctx context.Context) error { ran.Add(1); return nil }))
	m.Register(newFakeWorker("c.csv", func(ctx context.Context) error { ran.Add(1); return errC }))

	err := m.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, errA)
	assert.ErrorIs(t, err, errC)
	assert.Contains(t, err.Error(), "a.csv")
	assert.Contains(t, err.Error(), "c.csv")
	assert.Equal(t, int32(3), ran.Load(), "a failure must not stop other workers")
}

func TestWorkerManager_CancelledContext(t *testing.T) {
	m := NewWorkerManager(1, zap.NewNop())
	m.Register(newFakeWorker("a", func(ctx context.Context) error { return nil }))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := m.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWorkerManager_Empty(t *testing.T) {
	assert.NoError(t, NewWorkerManager(0, zap.NewNop()).Run(context.Background()))
}
