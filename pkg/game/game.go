package game

import (
	"context"
	"math/rand"
	"time"

	"github.com/cbodonnell/ghist/pkg/game/ai"
	"github.com/cbodonnell/ghist/pkg/game/constants"
	"github.com/cbodonnell/ghist/pkg/game/types"
	"github.com/cbodonnell/ghist/pkg/kinematic"
	"github.com/cbodonnell/ghist/pkg/log"
	"github.com/cbodonnell/ghist/pkg/messages"
	"github.com/cbodonnell/ghist/pkg/metrics"
	"github.com/cbodonnell/ghist/pkg/sessions"
	"github.com/cbodonnell/ghist/pkg/state"
	"github.com/google/uuid"
	"github.com/sasha-s/go-deadlock"
)

const (
	// DefaultGameLoopInterval is the delay between the end of one tick and the start of the next
	DefaultGameLoopInterval = 5 * time.Millisecond
)

type GameManager struct {
	// mu serializes every access to gameState, detector, rng and tick
	mu               deadlock.Mutex
	// broadcastMu orders outbound frames: a snapshot is queued before any change
	// to the session set that follows it. Acquired before mu.
	broadcastMu      deadlock.Mutex
	gameState        *types.GameState
	detector         *ProximityDetector
	behaviors        *ai.Registry
	rng              *rand.Rand
	tick             uint64
	registry         *sessions.Registry
	broadcaster      *Broadcaster
	stateManager     state.StateManager
	metrics          *metrics.Metrics
	gameLoopInterval time.Duration
	serverID         string
}

// NewGameManagerOptions contains options for creating a new GameManager.
type NewGameManagerOptions struct {
	Registry *sessions.Registry
	Codec    messages.Codec
	// StateManager receives a copy of every snapshot. Optional.
	StateManager state.StateManager
	// Metrics is optional.
	Metrics *metrics.Metrics
	// Behaviors defaults to ai.NewDefaultRegistry.
	Behaviors        *ai.Registry
	GameLoopInterval time.Duration
	// Seed drives mob spawning and AI. Runs with the same seed and inputs are reproducible.
	Seed int64
}

func NewGameManager(opts NewGameManagerOptions) *GameManager {
	behaviors := opts.Behaviors
	if behaviors == nil {
		behaviors = ai.NewDefaultRegistry()
	}
	interval := opts.GameLoopInterval
	if interval <= 0 {
		interval = DefaultGameLoopInterval
	}

	gm := &GameManager{
		gameState:        types.NewGameState(NewCollisionSpace()),
		detector:         NewProximityDetector(),
		behaviors:        behaviors,
		rng:              rand.New(rand.NewSource(opts.Seed)),
		registry:         opts.Registry,
		broadcaster:      NewBroadcaster(opts.Codec, opts.Registry, opts.Metrics),
		stateManager:     opts.StateManager,
		metrics:          opts.Metrics,
		gameLoopInterval: interval,
		serverID:         uuid.NewString(),
	}

	count := SpawnMobs(gm.gameState, gm.rng)
	log.Info("Spawned %d mobs with seed %d", count, opts.Seed)

	return gm
}

// ServerID identifies this server instance to clients.
func (gm *GameManager) ServerID() string {
	return gm.serverID
}

// Start runs the game loop until ctx is done.
// The next tick is scheduled one interval after the previous one finished; missed ticks are not caught up.
func (gm *GameManager) Start(ctx context.Context) error {
	log.Info("Starting game loop with interval %s", gm.gameLoopInterval)

	timer := time.NewTimer(gm.gameLoopInterval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("Game loop stopped after %d ticks", gm.Tick())
			return nil
		case t := <-timer.C:
			gm.gameTick(ctx, t)
			timer.Reset(gm.gameLoopInterval)
		}
	}
}

// Tick returns the number of completed ticks.
func (gm *GameManager) Tick() uint64 {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	return gm.tick
}

// gameTick runs one iteration of the game loop.
func (gm *GameManager) gameTick(ctx context.Context, t time.Time) {
	start := time.Now()

	gm.broadcastMu.Lock()
	serverGameUpdate := gm.step(t)
	if _, err := gm.broadcaster.Broadcast(messages.MessageTypeServerGameUpdate, serverGameUpdate); err != nil {
		log.Error("Failed to broadcast game state for tick %d: %v", serverGameUpdate.Tick, err)
	}
	gm.broadcastMu.Unlock()

	if gm.stateManager != nil {
		if err := gm.stateManager.Set(ctx, serverGameUpdate); err != nil {
			log.Error("Failed to store game state for tick %d: %v", serverGameUpdate.Tick, err)
		}
	}

	gm.metrics.ObserveTick(time.Since(start))
}

// step advances the simulation and returns a snapshot of the result.
func (gm *GameManager) step(t time.Time) *messages.ServerGameUpdate {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	gm.tick++
	gm.gameState.SetTimestamp(t.UnixMilli())
	IntegratePlayers(gm.gameState)
	gm.behaviors.Step(gm.gameState, gm.rng)
	gm.detector.Detect(gm.gameState)

	return ServerGameUpdateFromState(gm.tick, gm.gameState)
}

// Connect registers a new session and acknowledges it with its client ID.
// The welcome is the first frame the session receives.
// The player is only created once the client sends a join.
func (gm *GameManager) Connect(pusher sessions.Pusher) uint32 {
	gm.broadcastMu.Lock()
	defer gm.broadcastMu.Unlock()

	clientID := gm.registry.Register(pusher)
	gm.metrics.IncConnect()
	log.Debug("Client %d connected", clientID)

	welcome := &messages.ServerWelcome{
		ClientID: clientID,
		ServerID: gm.serverID,
		Position: kinematic.NewVector(constants.PlayerStartingX, constants.PlayerStartingY),
	}
	if err := gm.broadcaster.Send(pusher, messages.MessageTypeServerWelcome, welcome); err != nil {
		log.Warn("Failed to welcome client %d: %v", clientID, err)
	}

	return clientID
}

// Disconnect unregisters a session, removes its player and notifies the remaining sessions.
// No snapshot containing the player is queued after the notice.
// Disconnecting an unknown session does nothing.
func (gm *GameManager) Disconnect(clientID uint32) {
	gm.broadcastMu.Lock()
	defer gm.broadcastMu.Unlock()

	if !gm.registry.Unregister(clientID) {
		return
	}
	gm.metrics.IncDisconnect()

	gm.mu.Lock()
	removed := gm.gameState.RemovePlayer(clientID)
	gm.mu.Unlock()

	log.Debug("Client %d disconnected (player removed: %t)", clientID, removed)

	playerDisconnect := &messages.ServerPlayerDisconnect{
		ClientID: clientID,
	}
	if _, err := gm.broadcaster.Broadcast(messages.MessageTypeServerPlayerDisconnect, playerDisconnect); err != nil {
		log.Error("Failed to broadcast disconnect of client %d: %v", clientID, err)
	}
}
