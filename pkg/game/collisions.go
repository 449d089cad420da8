package game

import (
	"github.com/cbodonnell/ghist/pkg/game/constants"
	"github.com/solarlune/resolv"
)

// NewCollisionSpace creates the broad phase space covering the arena.
// One extra cell on each axis holds entities sitting exactly on the far edge.
func NewCollisionSpace() *resolv.Space {
	cell := constants.CollisionCellSize
	return resolv.NewSpace(
		int(constants.ArenaWidth)+cell,
		int(constants.ArenaHeight)+cell,
		cell,
		cell,
	)
}
