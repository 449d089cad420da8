package types

import (
	"github.com/cbodonnell/ghist/pkg/game/constants"
	"github.com/cbodonnell/ghist/pkg/kinematic"
)

const (
	CollisionSpaceTagPlayer string = "player"
)

// Health is the coarse health state of an entity.
type Health uint8

const (
	HealthDamaged Health = iota + 1
	HealthFull
)

func (h Health) String() string {
	switch h {
	case HealthDamaged:
		return "damaged"
	case HealthFull:
		return "full"
	default:
		return "unknown"
	}
}

// MobKind identifies the behavior a mob is stepped with.
type MobKind uint8

const (
	MobKindSkeleton MobKind = iota + 1
)

func (k MobKind) String() string {
	switch k {
	case MobKindSkeleton:
		return "skeleton"
	default:
		return "unknown"
	}
}

var (
	arenaMin = kinematic.NewVector(0, 0)
	arenaMax = kinematic.NewVector(constants.ArenaWidth, constants.ArenaHeight)
)

// ClampToArena bounds a position to the arena.
func ClampToArena(v kinematic.Vector) kinematic.Vector {
	return v.Clamp(arenaMin, arenaMax)
}
