package ai

import (
	"math/rand"

	"github.com/cbodonnell/ghist/pkg/game/constants"
	"github.com/cbodonnell/ghist/pkg/game/types"
	"github.com/cbodonnell/ghist/pkg/log"
)

// Behavior advances one mob by one tick.
type Behavior interface {
	Step(mob *types.MobState, rng *rand.Rand)
}

// BehaviorFunc adapts a function to a Behavior.
type BehaviorFunc func(mob *types.MobState, rng *rand.Rand)

func (f BehaviorFunc) Step(mob *types.MobState, rng *rand.Rand) {
	f(mob, rng)
}

// Registry dispatches mobs to the behavior registered for their kind.
type Registry struct {
	behaviors map[types.MobKind]Behavior
	warned    map[types.MobKind]bool
}

func NewRegistry() *Registry {
	return &Registry{
		behaviors: make(map[types.MobKind]Behavior),
		warned:    make(map[types.MobKind]bool),
	}
}

// NewDefaultRegistry returns a registry with a behavior for every known mob kind.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(types.MobKindSkeleton, &WanderBehavior{Range: constants.MobWanderRange})
	return r
}

// Register sets the behavior for kind, replacing any previous one.
func (r *Registry) Register(kind types.MobKind, behavior Behavior) {
	r.behaviors[kind] = behavior
}

// Step advances every mob in the game state once. Mobs of an unregistered kind stay put.
func (r *Registry) Step(gameState *types.GameState, rng *rand.Rand) {
	gameState.ForEachMob(func(mobID uint32, mob *types.MobState) {
		behavior, ok := r.behaviors[mob.Kind]
		if !ok {
			if !r.warned[mob.Kind] {
				log.Warn("No behavior registered for mob kind %s, mob %d will not move", mob.Kind, mobID)
				r.warned[mob.Kind] = true
			}
			return
		}
		behavior.Step(mob, rng)
	})
}
