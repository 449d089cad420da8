package types

import (
	"github.com/cbodonnell/ghist/pkg/game/constants"
	"github.com/cbodonnell/ghist/pkg/kinematic"
	"github.com/solarlune/resolv"
)

type PlayerState struct {
	Name     string
	Position kinematic.Vector
	// Input is the last movement vector submitted by the client
	Input     kinematic.Vector
	Health    Health
	MouseDown bool
	// Object is the padded broad phase box, kept in sync by SetPosition
	Object *resolv.Object
}

// NewPlayerState creates a player at the given position with full health and no input.
func NewPlayerState(name string, position kinematic.Vector) *PlayerState {
	p := &PlayerState{
		Name:   name,
		Health: HealthFull,
		Object: resolv.NewObject(
			0, 0,
			constants.PlayerWidth+2*constants.CollisionPadding,
			constants.PlayerHeight+2*constants.CollisionPadding,
			CollisionSpaceTagPlayer,
		),
	}
	p.SetPosition(position)
	return p
}

// SetPosition moves the player, clamped to the arena.
func (p *PlayerState) SetPosition(position kinematic.Vector) {
	p.Position = ClampToArena(position)
	if p.Object == nil {
		return
	}
	p.Object.Position.X = p.Position.X - constants.PlayerWidth/2 - constants.CollisionPadding
	p.Object.Position.Y = p.Position.Y - constants.PlayerHeight/2 - constants.CollisionPadding
	if p.Object.Space != nil {
		p.Object.Update()
	}
}

// Bounds returns the exact hitbox of the player centered on its position.
func (p *PlayerState) Bounds() (minX, minY, maxX, maxY float64) {
	return p.Position.X - constants.PlayerWidth/2,
		p.Position.Y - constants.PlayerHeight/2,
		p.Position.X + constants.PlayerWidth/2,
		p.Position.Y + constants.PlayerHeight/2
}

// Overlaps reports whether the hitboxes of p and other intersect. Touching edges do not count.
func (p *PlayerState) Overlaps(other *PlayerState) bool {
	aMinX, aMinY, aMaxX, aMaxY := p.Bounds()
	bMinX, bMinY, bMaxX, bMaxY := other.Bounds()
	return aMinX < bMaxX && bMinX < aMaxX && aMinY < bMaxY && bMinY < aMaxY
}
