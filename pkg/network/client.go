package network

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cbodonnell/ghist/pkg/game"
	"github.com/cbodonnell/ghist/pkg/log"
	"github.com/cbodonnell/ghist/pkg/messages"
	"github.com/cbodonnell/ghist/pkg/queue"
	"github.com/gorilla/websocket"
)

const (
	// WriteTimeout bounds a single frame write to a client
	WriteTimeout = 5 * time.Second
)

// Client is one WebSocket connection. It implements sessions.Pusher by
// queueing frames for a dedicated writer goroutine, so pushing never blocks on the socket.
type Client struct {
	id    uint32
	conn  *websocket.Conn
	codec messages.Codec
	queue *queue.InMemoryQueue
}

// NewClient wraps conn with an outbound queue holding at most queueSize frames.
func NewClient(conn *websocket.Conn, codec messages.Codec, queueSize int) *Client {
	return &Client{
		conn:  conn,
		codec: codec,
		queue: queue.NewInMemoryQueue(queueSize),
	}
}

// Push queues a frame for delivery. It fails when the client is too slow to keep up
// or has already been closed.
func (c *Client) Push(frame []byte) error {
	if err := c.queue.Enqueue(frame); err != nil {
		return fmt.Errorf("failed to queue frame: %w", err)
	}
	return nil
}

// Close stops the writer and drops undelivered frames.
func (c *Client) Close() {
	c.queue.Close()
}

// writePump delivers queued frames until the queue is closed, ctx is done or a write fails.
func (c *Client) writePump(ctx context.Context) error {
	frameType := websocket.TextMessage
	if c.codec.Binary() {
		frameType = websocket.BinaryMessage
	}

	for {
		item, err := c.queue.Dequeue(ctx)
		if err != nil {
			if errors.Is(err, queue.ErrQueueClosed) || errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}

		frame, ok := item.([]byte)
		if !ok {
			log.Error("Dropping unexpected outbound item %T for client %d", item, c.id)
			continue
		}

		c.conn.SetWriteDeadline(time.Now().Add(WriteTimeout))
		if err := c.conn.WriteMessage(frameType, frame); err != nil {
			return fmt.Errorf("failed to write frame: %v", err)
		}
	}
}

// readPump decodes inbound frames into commands for g until the connection fails.
// Malformed frames are logged and skipped.
func (c *Client) readPump(g Game) error {
	c.conn.SetReadLimit(messages.MessageBufferSize)

	for {
		_, b, err := c.conn.ReadMessage()
		if err != nil {
			return err
		}

		msg, err := c.codec.DecodeMessage(b)
		if err != nil {
			log.Warn("Failed to decode message from client %d: %v", c.id, err)
			continue
		}

		command, err := game.CommandFromMessage(c.codec, msg)
		if err != nil {
			log.Warn("Discarding message from client %d: %v", c.id, err)
			continue
		}

		g.HandleCommand(c.id, command)
	}
}
