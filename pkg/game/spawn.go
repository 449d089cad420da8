package game

import (
	"math/rand"

	"github.com/cbodonnell/ghist/pkg/game/constants"
	"github.com/cbodonnell/ghist/pkg/game/types"
	"github.com/cbodonnell/ghist/pkg/kinematic"
)

// SpawnMobs populates the game state with a random number of skeletons at random positions.
// Mob IDs start at 1. It returns the number of mobs spawned.
func SpawnMobs(gameState *types.GameState, rng *rand.Rand) int {
	count := constants.MobCountMin + rng.Intn(constants.MobCountMax-constants.MobCountMin+1)
	for i := 1; i <= count; i++ {
		position := kinematic.NewVector(
			rng.Float64()*constants.ArenaWidth,
			rng.Float64()*constants.ArenaHeight,
		)
		gameState.AddMob(uint32(i), types.NewMobState(types.MobKindSkeleton, position))
	}
	return count
}
