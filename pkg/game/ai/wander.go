package ai

import (
	"math/rand"

	"github.com/cbodonnell/ghist/pkg/game/types"
	"github.com/cbodonnell/ghist/pkg/kinematic"
)

// WanderBehavior moves a mob by an independent uniform offset in [-Range, Range] on each axis.
type WanderBehavior struct {
	Range float64
}

func (w *WanderBehavior) Step(mob *types.MobState, rng *rand.Rand) {
	dx := (rng.Float64()*2 - 1) * w.Range
	dy := (rng.Float64()*2 - 1) * w.Range
	mob.SetPosition(mob.Position.Add(kinematic.NewVector(dx, dy)))
}
