package queue

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryQueue(t *testing.T) {
	q := NewInMemoryQueue(2)

	require.NoError(t, q.Enqueue("a"))
	require.NoError(t, q.Enqueue("b"))
	assert.ErrorIs(t, q.Enqueue("c"), ErrQueueFull)
	assert.Equal(t, 2, q.Size())

	item, err := q.Dequeue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "a", item)

	items, err := q.ReadAllMessages()
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"b"}, items)
	assert.Equal(t, 0, q.Size())
}

func TestInMemoryQueueDefaultSize(t *testing.T) {
	q := NewInMemoryQueue(0)
	for i := 0; i < QueueBufferSize; i++ {
		require.NoError(t, q.Enqueue(i))
	}
	assert.ErrorIs(t, q.Enqueue(QueueBufferSize), ErrQueueFull)
}

func TestInMemoryQueueDequeueContext(t *testing.T) {
	q := NewInMemoryQueue(1)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := q.Dequeue(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestInMemoryQueueClose(t *testing.T) {
	q := NewInMemoryQueue(1)

	done := make(chan error, 1)
	go func() {
		_, err := q.Dequeue(context.Background())
		done <- err
	}()

	q.Close()
	q.Close()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, ErrQueueClosed)
	case <-time.After(time.Second):
		t.Fatal("Dequeue did not return after Close")
	}
	assert.ErrorIs(t, q.Enqueue("late"), ErrQueueClosed)
}
