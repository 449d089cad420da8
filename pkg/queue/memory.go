// queue package

package queue

import (
	"context"
	"sync"
)

const (
	// QueueBufferSize represents the default maximum size of a queue
	QueueBufferSize = 64
)

// InMemoryQueue implements an in-memory queue.
type InMemoryQueue struct {
	ch        chan interface{}
	done      chan struct{}
	closeOnce sync.Once
}

// NewInMemoryQueue creates a new queue holding at most size items.
// A non-positive size falls back to QueueBufferSize.
func NewInMemoryQueue(size int) *InMemoryQueue {
	if size <= 0 {
		size = QueueBufferSize
	}
	return &InMemoryQueue{
		ch:   make(chan interface{}, size),
		done: make(chan struct{}),
	}
}

// Enqueue adds an item to the end of the queue without blocking.
func (q *InMemoryQueue) Enqueue(item interface{}) error {
	select {
	case <-q.done:
		return ErrQueueClosed
	default:
	}

	select {
	case q.ch <- item:
		return nil
	default:
		return ErrQueueFull
	}
}

// Dequeue removes and returns the item from the front of the queue,
// blocking until one is available, the queue is closed or ctx is done.
func (q *InMemoryQueue) Dequeue(ctx context.Context) (interface{}, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-q.done:
		return nil, ErrQueueClosed
	case item := <-q.ch:
		return item, nil
	}
}

// Size returns the current size of the queue.
func (q *InMemoryQueue) Size() int {
	return len(q.ch)
}

// ReadAllMessages reads all pending messages in the queue
func (q *InMemoryQueue) ReadAllMessages() ([]interface{}, error) {
	var messages []interface{}
	for {
		select {
		case item := <-q.ch:
			messages = append(messages, item)
		default:
			return messages, nil
		}
	}
}

// Close stops the queue. Pending items are dropped by the consumer.
func (q *InMemoryQueue) Close() {
	q.closeOnce.Do(func() {
		close(q.done)
	})
}
