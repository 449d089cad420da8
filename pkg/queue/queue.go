package queue

import (
	"context"
	"errors"
)

var (
	// ErrQueueFull is returned by Enqueue when the queue has no free slot.
	ErrQueueFull = errors.New("queue is full")
	// ErrQueueClosed is returned once the queue has been closed.
	ErrQueueClosed = errors.New("queue is closed")
)

// Queue represents a bounded queue with a non-blocking producer side.
type Queue interface {
	Enqueue(item interface{}) error
	Dequeue(ctx context.Context) (interface{}, error)
	Size() int
	ReadAllMessages() ([]interface{}, error)
	Close()
}
