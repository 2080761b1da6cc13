package task

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStartedExecutor(t *testing.T, cfg ExecutorConfig) *Executor {
	t.Helper()

	executor := NewExecutor(cfg, slog.Default())
	executor.Start()
	t.Cleanup(executor.Stop)
	return executor
}

func TestExecutorSubmitResolvesValue(t *testing.T) {
	t.Parallel()

	executor := newStartedExecutor(t, ExecutorConfig{WorkerCount: 2, QueueSize: 8})

	deferred, err := executor.Submit(func(ctx context.Context) (any, error) {
		return 42, nil
	})
	require.NoError(t, err)

	value, err := deferred.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, value)
}

func TestExecutorSubmitPropagatesError(t *testing.T) {
	t.Parallel()

	executor := newStartedExecutor(t, ExecutorConfig{WorkerCount: 1, QueueSize: 8})

	wantErr := errors.New("job failed")
	deferred, err := executor.Submit(func(ctx context.Context) (any, error) {
		return nil, wantErr
	})
	require.NoError(t, err)

	value, err := deferred.Wait(context.Background())
	assert.Nil(t, value)
	assert.ErrorIs(t, err, wantErr)
}

func TestExecutorQueueFull(t *testing.T) {
	t.Parallel()

	executor := newStartedExecutor(t, ExecutorConfig{WorkerCount: 1, QueueSize: 1})

	release := make(chan struct{})
	defer close(release)

	// Occupy the single worker and fill the single queue slot; the next
	// submission after that must be refused.
	blocker := func(ctx context.Context) (any, error) {
		<-release
		return nil, nil
	}

	var err error
	require.Eventually(t, func() bool {
		_, err = executor.Submit(blocker)
		return errors.Is(err, ErrQueueFull)
	}, time.Second, 5*time.Millisecond)
	assert.ErrorIs(t, err, ErrQueueFull)
}

func TestExecutorWaitHonorsContext(t *testing.T) {
	t.Parallel()

	executor := newStartedExecutor(t, ExecutorConfig{WorkerCount: 1, QueueSize: 8})

	release := make(chan struct{})
	defer close(release)

	deferred, err := executor.Submit(func(ctx context.Context) (any, error) {
		<-release
		return nil, nil
	})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = deferred.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestExecutorRecoversFromPanic(t *testing.T) {
	t.Parallel()

	executor := newStartedExecutor(t, ExecutorConfig{WorkerCount: 1, QueueSize: 8})

	deferred, err := executor.Submit(func(ctx context.Context) (any, error) {
		panic("job exploded")
	})
	require.NoError(t, err)

	_, err = deferred.Wait(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "job panicked")

	// The worker must survive to run subsequent jobs.
	deferred, err = executor.Submit(func(ctx context.Context) (any, error) {
		return "still alive", nil
	})
	require.NoError(t, err)

	value, err := deferred.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "still alive", value)
}

func TestExecutorStopDrainsQueuedJobs(t *testing.T) {
	t.Parallel()

	executor := NewExecutor(ExecutorConfig{WorkerCount: 2, QueueSize: 16}, slog.Default())
	executor.Start()

	var mu sync.Mutex
	ran := 0

	deferreds := make([]*Deferred, 0, 10)
	for i := 0; i < 10; i++ {
		d, err := executor.Submit(func(ctx context.Context) (any, error) {
			mu.Lock()
			ran++
			mu.Unlock()
			return nil, nil
		})
		require.NoError(t, err)
		deferreds = append(deferreds, d)
	}

	executor.Stop()

	mu.Lock()
	assert.Equal(t, 10, ran, "all queued jobs should run before Stop returns")
	mu.Unlock()

	for _, d := range deferreds {
		_, err := d.Wait(context.Background())
		assert.NoError(t, err)
	}

	// Submission after Stop is refused.
	_, err := executor.Submit(func(ctx context.Context) (any, error) {
		return nil, nil
	})
	assert.ErrorIs(t, err, ErrExecutorClosed)
}
