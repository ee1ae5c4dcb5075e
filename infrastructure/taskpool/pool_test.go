package taskpool_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"media-gateway/infrastructure/taskpool"
)

func TestExecute_ReturnsTaskResult(t *testing.T) {
	pool := taskpool.New(2)
	defer pool.Close()

	value, err := pool.Execute(context.Background(), func(ctx context.Context) (interface{}, error) {
		return "done", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "done", value)
}

func TestExecute_PropagatesTaskError(t *testing.T) {
	pool := taskpool.New(1)
	defer pool.Close()

	boom := errors.New("boom")
	_, err := pool.Execute(context.Background(), func(ctx context.Context) (interface{}, error) {
		return nil, boom
	})

	assert.ErrorIs(t, err, boom)
}

func TestExecute_TimeoutBeatsSlowTask(t *testing.T) {
	pool := taskpool.New(1)
	defer pool.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	started := time.Now()
	_, err := pool.Execute(ctx, func(taskCtx context.Context) (interface{}, error) {
		select {
		case <-time.After(2 * time.Second):
			return "too late", nil
		case <-taskCtx.Done():
			return nil, taskCtx.Err()
		}
	})

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(started), time.Second, "caller must not wait for the slow task")
}

func TestExecute_ConcurrencyNeverExceedsPoolSize(t *testing.T) {
	const poolSize = 3
	pool := taskpool.New(poolSize)
	defer pool.Close()

	var running, peak int64
	results := make(chan error, 10)
	for i := 0; i < 10; i++ {
		go func() {
			_, err := pool.Execute(context.Background(), func(ctx context.Context) (interface{}, error) {
				n := atomic.AddInt64(&running, 1)
				for {
					old := atomic.LoadInt64(&peak)
					if n <= old || atomic.CompareAndSwapInt64(&peak, old, n) {
						break
					}
				}
				time.Sleep(20 * time.Millisecond)
				atomic.AddInt64(&running, -1)
				return nil, nil
			})
			results <- err
		}()
	}

	for i := 0; i < 10; i++ {
		require.NoError(t, <-results)
	}
	assert.LessOrEqual(t, atomic.LoadInt64(&peak), int64(poolSize))
}

func TestExecute_QueuedTaskSkippedWhenSubmitterGaveUp(t *testing.T) {
	pool := taskpool.New(1)
	defer pool.Close()

	// Occupy the only worker.
	started := make(chan struct{})
	release := make(chan struct{})
	busy := make(chan error, 1)
	go func() {
		_, err := pool.Execute(context.Background(), func(ctx context.Context) (interface{}, error) {
			close(started)
			<-release
			return nil, nil
		})
		busy <- err
	}()
	<-started

	// This submission queues behind the busy worker and times out there.
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	var executed atomic.Bool
	_, err := pool.Execute(ctx, func(taskCtx context.Context) (interface{}, error) {
		executed.Store(true)
		return nil, nil
	})
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	close(release)
	require.NoError(t, <-busy)
	assert.False(t, executed.Load(), "a task whose submitter timed out while queued must not run")
}
