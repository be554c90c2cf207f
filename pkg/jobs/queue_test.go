package jobs

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueProcessesJobs(t *testing.T) {
	var (
		mu   sync.Mutex
		seen []string
	)
	done := make(chan struct{}, 3)
	q := NewQueue("test", func(ctx context.Context, job Job[string]) error {
		mu.Lock()
		seen = append(seen, job.Payload)
		mu.Unlock()
		done <- struct{}{}
		return nil
	}, QueueConfig{Workers: 1})
	q.Start(context.Background())
	defer q.Stop()

	for _, p := range []string{"a", "b", "c"} {
		require.NoError(t, q.Enqueue(Job[string]{ID: p, Payload: p}))
	}
	for i := 0; i < 3; i++ {
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("job not processed")
		}
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"a", "b", "c"}, seen)
}

func TestQueueRetriesFailedJob(t *testing.T) {
	var attempts int32
	done := make(chan struct{})
	q := NewQueue("retry", func(ctx context.Context, job Job[int]) error {
		if atomic.AddInt32(&attempts, 1) < 3 {
			return errors.New("transient")
		}
		close(done)
		return nil
	}, QueueConfig{MaxRetries: 3, RetryDelay: time.Millisecond})
	q.Start(context.Background())
	defer q.Stop()

	require.NoError(t, q.Enqueue(Job[int]{ID: "1"}))
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("job never succeeded")
	}
	assert.Equal(t, int32(3), atomic.LoadInt32(&attempts))
}

func TestQueueEnqueueBeforeStart(t *testing.T) {
	q := NewQueue("idle", func(ctx context.Context, job Job[int]) error { return nil }, QueueConfig{})
	assert.Error(t, q.Enqueue(Job[int]{ID: "1"}))
}

func TestQueueStopDrainsBuffer(t *testing.T) {
	var handled int32
	q := NewQueue("drain", func(ctx context.Context, job Job[int]) error {
		atomic.AddInt32(&handled, 1)
		return nil
	}, QueueConfig{Workers: 1, BufferSize: 8})

	// Fill the buffer without workers consuming it.
	q.mu.Lock()
	q.ctx, q.cancel = context.WithCancel(context.Background())
	q.started = true
	q.mu.Unlock()
	for i := 0; i < 4; i++ {
		require.NoError(t, q.Enqueue(Job[int]{Payload: i}))
	}

	q.Stop()
	assert.Equal(t, int32(4), atomic.LoadInt32(&handled))
}
