package types

import (
	"sort"

	"github.com/cbodonnell/ghist/pkg/kinematic"
	"github.com/solarlune/resolv"
)

// GameState is the entity store of the simulation.
// It is not safe for concurrent use; callers serialize access.
type GameState struct {
	// Timestamp is the time at which the game state was last stepped
	Timestamp int64
	// Players maps client IDs to player states
	Players map[uint32]*PlayerState
	// Mobs maps mob IDs to mob states
	Mobs map[uint32]*MobState
	// CollisionSpace is a resolv.Space holding the player broad phase boxes
	CollisionSpace *resolv.Space
}

func NewGameState(collisionSpace *resolv.Space) *GameState {
	return &GameState{
		Timestamp:      0,
		Players:        make(map[uint32]*PlayerState),
		Mobs:           make(map[uint32]*MobState),
		CollisionSpace: collisionSpace,
	}
}

func (g *GameState) SetTimestamp(timestamp int64) {
	g.Timestamp = timestamp
}

// CreatePlayer adds a player for clientID at position.
// It returns false and leaves the existing player untouched if one is already present.
func (g *GameState) CreatePlayer(clientID uint32, name string, position kinematic.Vector) (*PlayerState, bool) {
	if existing, ok := g.Players[clientID]; ok {
		return existing, false
	}
	player := NewPlayerState(name, position)
	if g.CollisionSpace != nil {
		g.CollisionSpace.Add(player.Object)
	}
	g.Players[clientID] = player
	return player, true
}

// RemovePlayer deletes the player for clientID. It returns false if there was none.
func (g *GameState) RemovePlayer(clientID uint32) bool {
	player, ok := g.Players[clientID]
	if !ok {
		return false
	}
	if g.CollisionSpace != nil && player.Object != nil && player.Object.Space != nil {
		g.CollisionSpace.Remove(player.Object)
	}
	delete(g.Players, clientID)
	return true
}

// SetInput replaces the movement input of a player. It returns false if there is no such player.
func (g *GameState) SetInput(clientID uint32, input kinematic.Vector) bool {
	player, ok := g.Players[clientID]
	if !ok {
		return false
	}
	player.Input = input
	return true
}

// SetMouse records the pointer state of a player. It returns false if there is no such player.
func (g *GameState) SetMouse(clientID uint32, down bool) bool {
	player, ok := g.Players[clientID]
	if !ok {
		return false
	}
	player.MouseDown = down
	return true
}

func (g *GameState) AddMob(id uint32, state *MobState) {
	g.Mobs[id] = state
}

// ForEachPlayer calls fn for every player in ascending client ID order.
func (g *GameState) ForEachPlayer(fn func(clientID uint32, player *PlayerState)) {
	for _, id := range sortedKeys(g.Players) {
		fn(id, g.Players[id])
	}
}

// ForEachMob calls fn for every mob in ascending mob ID order.
func (g *GameState) ForEachMob(fn func(mobID uint32, mob *MobState)) {
	for _, id := range sortedKeys(g.Mobs) {
		fn(id, g.Mobs[id])
	}
}

func sortedKeys[V any](m map[uint32]V) []uint32 {
	keys := make([]uint32, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
