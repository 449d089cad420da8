package types

import (
	"github.com/cbodonnell/ghist/pkg/kinematic"
)

type MobState struct {
	Kind     MobKind
	Position kinematic.Vector
	Health   Health
}

func NewMobState(kind MobKind, position kinematic.Vector) *MobState {
	return &MobState{
		Kind:     kind,
		Position: ClampToArena(position),
		Health:   HealthFull,
	}
}

// SetPosition moves the mob, clamped to the arena.
func (m *MobState) SetPosition(position kinematic.Vector) {
	m.Position = ClampToArena(position)
}
