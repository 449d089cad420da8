package game

import (
	"github.com/cbodonnell/ghist/pkg/game/types"
	"github.com/solarlune/resolv"
)

// playerPair is an unordered pair of client IDs, stored with a < b.
type playerPair struct {
	a, b uint32
}

func newPlayerPair(x, y uint32) playerPair {
	if x > y {
		x, y = y, x
	}
	return playerPair{a: x, b: y}
}

// ProximityDetector turns player hitbox overlaps into health transitions.
// A player is damaged while it overlaps at least one other player.
// Health only changes when a pair starts or stops overlapping.
type ProximityDetector struct {
	pairs  map[playerPair]struct{}
	counts map[uint32]int
}

func NewProximityDetector() *ProximityDetector {
	return &ProximityDetector{
		pairs:  make(map[playerPair]struct{}),
		counts: make(map[uint32]int),
	}
}

// Detect compares the overlaps in gameState with those seen on the previous call
// and updates player health accordingly. Pairs with a player that has left count as separated.
func (d *ProximityDetector) Detect(gameState *types.GameState) {
	current := d.overlappingPairs(gameState)

	for p := range d.pairs {
		if _, ok := current[p]; ok {
			continue
		}
		d.separate(gameState, p.a)
		d.separate(gameState, p.b)
	}

	for p := range current {
		if _, ok := d.pairs[p]; ok {
			continue
		}
		d.touch(gameState, p.a)
		d.touch(gameState, p.b)
	}

	d.pairs = current
}

// OverlapCount returns the number of players clientID overlapped on the last Detect.
func (d *ProximityDetector) OverlapCount(clientID uint32) int {
	return d.counts[clientID]
}

func (d *ProximityDetector) touch(gameState *types.GameState, clientID uint32) {
	d.counts[clientID]++
	if player, ok := gameState.Players[clientID]; ok {
		player.Health = types.HealthDamaged
	}
}

func (d *ProximityDetector) separate(gameState *types.GameState, clientID uint32) {
	d.counts[clientID]--
	if d.counts[clientID] > 0 {
		return
	}
	delete(d.counts, clientID)
	if player, ok := gameState.Players[clientID]; ok {
		player.Health = types.HealthFull
	}
}

// overlappingPairs uses the collision space as a broad phase and the exact hitboxes as the narrow phase.
func (d *ProximityDetector) overlappingPairs(gameState *types.GameState) map[playerPair]struct{} {
	owners := make(map[*resolv.Object]uint32, len(gameState.Players))
	for clientID, player := range gameState.Players {
		if player.Object != nil {
			owners[player.Object] = clientID
		}
	}

	pairs := make(map[playerPair]struct{})
	addIfOverlapping := func(clientID uint32, player *types.PlayerState, otherID uint32) {
		if otherID == clientID {
			return
		}
		other, ok := gameState.Players[otherID]
		if !ok || !player.Overlaps(other) {
			return
		}
		pairs[newPlayerPair(clientID, otherID)] = struct{}{}
	}

	for clientID, player := range gameState.Players {
		if player.Object == nil || player.Object.Space == nil {
			// not indexed, check against everyone
			for otherID := range gameState.Players {
				addIfOverlapping(clientID, player, otherID)
			}
			continue
		}
		collision := player.Object.Check(0, 0, types.CollisionSpaceTagPlayer)
		if collision == nil {
			continue
		}
		for _, obj := range collision.Objects {
			if otherID, ok := owners[obj]; ok {
				addIfOverlapping(clientID, player, otherID)
			}
		}
	}

	return pairs
}
