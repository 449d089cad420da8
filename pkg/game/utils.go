package game

import (
	"github.com/cbodonnell/ghist/pkg/game/types"
	"github.com/cbodonnell/ghist/pkg/messages"
)

// ServerGameUpdateFromState builds a snapshot of every player and mob, ordered by ID.
// The result shares no memory with the game state.
func ServerGameUpdateFromState(tick uint64, state *types.GameState) *messages.ServerGameUpdate {
	players := make([]*messages.PlayerStateUpdate, 0, len(state.Players))
	state.ForEachPlayer(func(clientID uint32, playerState *types.PlayerState) {
		players = append(players, PlayerStateUpdateFromState(clientID, playerState))
	})

	mobs := make([]*messages.MobStateUpdate, 0, len(state.Mobs))
	state.ForEachMob(func(mobID uint32, mobState *types.MobState) {
		mobs = append(mobs, &messages.MobStateUpdate{
			MobID:    mobID,
			Kind:     uint8(mobState.Kind),
			Position: mobState.Position,
			Health:   uint8(mobState.Health),
		})
	})

	return &messages.ServerGameUpdate{
		Tick:      tick,
		Timestamp: state.Timestamp,
		Players:   players,
		Mobs:      mobs,
	}
}

func PlayerStateUpdateFromState(clientID uint32, playerState *types.PlayerState) *messages.PlayerStateUpdate {
	return &messages.PlayerStateUpdate{
		ClientID:  clientID,
		Name:      playerState.Name,
		Position:  playerState.Position,
		Health:    uint8(playerState.Health),
		MouseDown: playerState.MouseDown,
	}
}
