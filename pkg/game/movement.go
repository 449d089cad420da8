package game

import (
	"github.com/cbodonnell/ghist/pkg/game/constants"
	"github.com/cbodonnell/ghist/pkg/game/types"
	"github.com/cbodonnell/ghist/pkg/kinematic"
)

// IntegratePlayers advances every player by its input scaled to one tick.
func IntegratePlayers(gameState *types.GameState) {
	gameState.ForEachPlayer(func(clientID uint32, player *types.PlayerState) {
		player.SetPosition(kinematic.Displacement(player.Position, player.Input, constants.PlayerStepScale))
	})
}
