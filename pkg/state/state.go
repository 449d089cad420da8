package state

import (
	"context"

	"github.com/cbodonnell/ghist/pkg/messages"
)

// StateManager provides shared access to the latest game snapshot.
// Implementations must be thread-safe.
type StateManager interface {
	// Get returns a copy of the latest snapshot.
	Get(ctx context.Context) (*messages.ServerGameUpdate, error)
	// Set replaces the latest snapshot.
	Set(ctx context.Context, gameState *messages.ServerGameUpdate) error
}
