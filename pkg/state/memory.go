package state

import (
	"context"
	"fmt"
	"sync"

	"github.com/cbodonnell/ghist/pkg/messages"
)

type InMemoryStateManager struct {
	lock      sync.RWMutex
	gameState *messages.ServerGameUpdate
}

func NewInMemoryStateManager() *InMemoryStateManager {
	return &InMemoryStateManager{
		gameState: &messages.ServerGameUpdate{
			Players: []*messages.PlayerStateUpdate{},
			Mobs:    []*messages.MobStateUpdate{},
		},
	}
}

func (m *InMemoryStateManager) Get(ctx context.Context) (*messages.ServerGameUpdate, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.gameState.Copy(), nil
}

func (m *InMemoryStateManager) Set(ctx context.Context, gameState *messages.ServerGameUpdate) error {
	if gameState == nil {
		return fmt.Errorf("game state is nil")
	}

	m.lock.Lock()
	defer m.lock.Unlock()
	m.gameState = gameState
	return nil
}
