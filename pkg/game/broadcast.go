package game

import (
	"fmt"

	"github.com/cbodonnell/ghist/pkg/log"
	"github.com/cbodonnell/ghist/pkg/messages"
	"github.com/cbodonnell/ghist/pkg/metrics"
	"github.com/cbodonnell/ghist/pkg/sessions"
)

// Broadcaster encodes server messages once and pushes them to sessions.
// Delivery is fire-and-forget: a failed push is logged and never retried.
type Broadcaster struct {
	codec    messages.Codec
	registry *sessions.Registry
	metrics  *metrics.Metrics
}

func NewBroadcaster(codec messages.Codec, registry *sessions.Registry, m *metrics.Metrics) *Broadcaster {
	return &Broadcaster{
		codec:    codec,
		registry: registry,
		metrics:  m,
	}
}

// Broadcast sends payload to every registered session and returns the number of successful pushes.
// Only an encoding failure is returned as an error.
func (b *Broadcaster) Broadcast(msgType messages.MessageType, payload interface{}) (int, error) {
	frame, err := messages.Encode(b.codec, msgType, payload)
	if err != nil {
		b.metrics.IncEncodeFailure()
		return 0, err
	}

	delivered := 0
	for _, session := range b.registry.GetSessions() {
		if err := session.Pusher.Push(frame); err != nil {
			log.Debug("Failed to push %s to client %d: %v", msgType, session.ID, err)
			b.metrics.IncPushFailure()
			continue
		}
		delivered++
	}
	b.metrics.IncBroadcast()

	return delivered, nil
}

// Send pushes a single message to one session.
func (b *Broadcaster) Send(pusher sessions.Pusher, msgType messages.MessageType, payload interface{}) error {
	frame, err := messages.Encode(b.codec, msgType, payload)
	if err != nil {
		b.metrics.IncEncodeFailure()
		return err
	}
	if err := pusher.Push(frame); err != nil {
		b.metrics.IncPushFailure()
		return fmt.Errorf("failed to push %s: %v", msgType, err)
	}
	return nil
}
