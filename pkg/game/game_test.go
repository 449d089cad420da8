package game

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	mocks "github.com/cbodonnell/ghist/mocks/github.com/cbodonnell/ghist/pkg/sessions"
	"github.com/cbodonnell/ghist/pkg/game/constants"
	"github.com/cbodonnell/ghist/pkg/game/types"
	"github.com/cbodonnell/ghist/pkg/kinematic"
	"github.com/cbodonnell/ghist/pkg/messages"
	"github.com/cbodonnell/ghist/pkg/metrics"
	"github.com/cbodonnell/ghist/pkg/queue"
	"github.com/cbodonnell/ghist/pkg/sessions"
	"github.com/cbodonnell/ghist/pkg/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// queuePusher buffers pushed frames so tests can inspect them.
type queuePusher struct {
	q *queue.InMemoryQueue
}

func newQueuePusher() *queuePusher {
	return &queuePusher{q: queue.NewInMemoryQueue(256)}
}

func (p *queuePusher) Push(b []byte) error {
	return p.q.Enqueue(b)
}

// drain returns every frame pushed since the last drain, decoded into messages.
func (p *queuePusher) drain(t *testing.T, codec messages.Codec) []*messages.Message {
	items, err := p.q.ReadAllMessages()
	require.NoError(t, err)
	var out []*messages.Message
	for _, item := range items {
		m, err := codec.DecodeMessage(item.([]byte))
		require.NoError(t, err)
		out = append(out, m)
	}
	return out
}

// recordingPusher keeps every frame it is given, in order.
type recordingPusher struct {
	mu     sync.Mutex
	frames [][]byte
}

func (p *recordingPusher) Push(b []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.frames = append(p.frames, b)
	return nil
}

func (p *recordingPusher) decode(t *testing.T, codec messages.Codec) []*messages.Message {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]*messages.Message, 0, len(p.frames))
	for _, b := range p.frames {
		m, err := codec.DecodeMessage(b)
		require.NoError(t, err)
		out = append(out, m)
	}
	return out
}

// runFastLoop starts gm with a near-zero tick interval and returns a function that stops it.
func runFastLoop(t *testing.T, gm *GameManager) (stop func()) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		gm.Start(ctx)
	}()
	return func() {
		cancel()
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatal("game loop did not stop")
		}
	}
}

func newTestGameManager(t *testing.T) (*GameManager, messages.Codec) {
	codec := messages.NewJSONCodec()
	gm := NewGameManager(NewGameManagerOptions{
		Registry:         sessions.NewRegistry(),
		Codec:            codec,
		StateManager:     state.NewInMemoryStateManager(),
		Metrics:          metrics.New(),
		GameLoopInterval: time.Millisecond,
		Seed:             1,
	})
	return gm, codec
}

func decodeGameUpdate(t *testing.T, codec messages.Codec, m *messages.Message) *messages.ServerGameUpdate {
	require.Equal(t, messages.MessageTypeServerGameUpdate, m.Type)
	update := &messages.ServerGameUpdate{}
	require.NoError(t, codec.DecodePayload(m, update))
	return update
}

func findPlayer(update *messages.ServerGameUpdate, clientID uint32) *messages.PlayerStateUpdate {
	for _, p := range update.Players {
		if p.ClientID == clientID {
			return p
		}
	}
	return nil
}

func TestGameManager_Connect(t *testing.T) {
	gm, codec := newTestGameManager(t)
	pusher := newQueuePusher()

	clientID := gm.Connect(pusher)
	require.NotZero(t, clientID)
	assert.True(t, gm.registry.Exists(clientID))
	assert.Empty(t, gm.gameState.Players, "a player is only created on join")

	frames := pusher.drain(t, codec)
	require.Len(t, frames, 1)
	assert.Equal(t, messages.MessageTypeServerWelcome, frames[0].Type)

	welcome := &messages.ServerWelcome{}
	require.NoError(t, codec.DecodePayload(frames[0], welcome))
	assert.Equal(t, clientID, welcome.ClientID)
	assert.Equal(t, gm.ServerID(), welcome.ServerID)
	assert.Equal(t, kinematic.NewVector(constants.PlayerStartingX, constants.PlayerStartingY), welcome.Position)
}

func TestGameManager_HandleCommand(t *testing.T) {
	start := kinematic.NewVector(constants.PlayerStartingX, constants.PlayerStartingY)

	tests := []struct {
		name     string
		commands func(clientID uint32) []types.Command
		// sender overrides the client the commands are sent from; 0 uses the connected client
		sender uint32
		want   *types.PlayerState
	}{
		{
			name: "join creates the player",
			commands: func(uint32) []types.Command {
				return []types.Command{types.JoinCommand{Name: "ann"}}
			},
			want: &types.PlayerState{Name: "ann", Position: start, Health: types.HealthFull},
		},
		{
			name: "join is idempotent",
			commands: func(uint32) []types.Command {
				return []types.Command{
					types.JoinCommand{Name: "ann"},
					types.MoveCommand{Input: kinematic.NewVector(1, 0)},
					types.JoinCommand{Name: "bob"},
				}
			},
			want: &types.PlayerState{Name: "ann", Position: start, Input: kinematic.NewVector(1, 0), Health: types.HealthFull},
		},
		{
			name: "move before join has no effect",
			commands: func(uint32) []types.Command {
				return []types.Command{
					types.MoveCommand{Input: kinematic.NewVector(1, 1)},
					types.ClickCommand{MouseDown: true},
				}
			},
			want: nil,
		},
		{
			name: "move and click after join",
			commands: func(uint32) []types.Command {
				return []types.Command{
					types.JoinCommand{},
					types.MoveCommand{Input: kinematic.NewVector(-1, 0.5)},
					types.ClickCommand{MouseDown: true},
				}
			},
			want: &types.PlayerState{Position: start, Input: kinematic.NewVector(-1, 0.5), Health: types.HealthFull, MouseDown: true},
		},
		{
			name: "join from an unregistered client",
			commands: func(uint32) []types.Command {
				return []types.Command{types.JoinCommand{Name: "ghost"}}
			},
			sender: 424242,
			want:   nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gm, _ := newTestGameManager(t)
			clientID := gm.Connect(newQueuePusher())
			sender := clientID
			if tt.sender != 0 {
				sender = tt.sender
			}

			for _, cmd := range tt.commands(sender) {
				gm.HandleCommand(sender, cmd)
			}

			got, ok := gm.gameState.Players[sender]
			if tt.want == nil {
				assert.False(t, ok, "no player should exist")
				assert.Empty(t, gm.gameState.Players)
				return
			}
			require.True(t, ok)
			detached := *got
			detached.Object = nil
			assert.Equal(t, tt.want, &detached, fmt.Sprintf("player state mismatch for %s", tt.name))
		})
	}
}

func TestGameManager_gameTickMovement(t *testing.T) {
	gm, _ := newTestGameManager(t)
	clientID := gm.Connect(newQueuePusher())
	gm.HandleCommand(clientID, types.JoinCommand{Name: "ann"})
	gm.HandleCommand(clientID, types.MoveCommand{Input: kinematic.NewVector(1, 0)})

	gm.gameTick(context.Background(), time.Now())
	assert.Equal(t, kinematic.NewVector(402, 400), gm.gameState.Players[clientID].Position)

	// input persists until replaced
	gm.gameTick(context.Background(), time.Now())
	assert.Equal(t, kinematic.NewVector(404, 400), gm.gameState.Players[clientID].Position)

	gm.HandleCommand(clientID, types.MoveCommand{Input: kinematic.NewVector(0, 0)})
	gm.gameTick(context.Background(), time.Now())
	assert.Equal(t, kinematic.NewVector(404, 400), gm.gameState.Players[clientID].Position)
}

func TestGameManager_gameTickClampsPlayers(t *testing.T) {
	gm, _ := newTestGameManager(t)
	clientID := gm.Connect(newQueuePusher())
	gm.HandleCommand(clientID, types.JoinCommand{})
	gm.HandleCommand(clientID, types.MoveCommand{Input: kinematic.NewVector(-100, 100)})

	for i := 0; i < 5; i++ {
		gm.gameTick(context.Background(), time.Now())
	}
	assert.Equal(t, kinematic.NewVector(0, 800), gm.gameState.Players[clientID].Position)
}

func TestGameManager_broadcastEveryTick(t *testing.T) {
	gm, codec := newTestGameManager(t)
	p1 := newQueuePusher()
	p2 := newQueuePusher()
	id1 := gm.Connect(p1)
	id2 := gm.Connect(p2)
	gm.HandleCommand(id1, types.JoinCommand{Name: "ann"})
	p1.drain(t, codec)
	p2.drain(t, codec)

	gm.gameTick(context.Background(), time.UnixMilli(1000))

	f1, err := p1.q.ReadAllMessages()
	require.NoError(t, err)
	f2, err := p2.q.ReadAllMessages()
	require.NoError(t, err)
	require.Len(t, f1, 1)
	require.Len(t, f2, 1)
	assert.Equal(t, f1[0], f2[0], "every session receives the same frame")

	m, err := codec.DecodeMessage(f1[0].([]byte))
	require.NoError(t, err)
	update := decodeGameUpdate(t, codec, m)
	assert.Equal(t, uint64(1), update.Tick)
	assert.Equal(t, int64(1000), update.Timestamp)
	require.Len(t, update.Players, 1, "only joined sessions have players")
	assert.Equal(t, id1, update.Players[0].ClientID)
	assert.Equal(t, "ann", update.Players[0].Name)
	assert.Nil(t, findPlayer(update, id2))
	assert.Len(t, update.Mobs, len(gm.gameState.Mobs))

	latest, err := gm.stateManager.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, update.Tick, latest.Tick)
}

func TestGameManager_Disconnect(t *testing.T) {
	gm, codec := newTestGameManager(t)
	leaving := newQueuePusher()
	staying := newQueuePusher()
	leavingID := gm.Connect(leaving)
	stayingID := gm.Connect(staying)
	gm.HandleCommand(leavingID, types.JoinCommand{Name: "ann"})
	gm.HandleCommand(stayingID, types.JoinCommand{Name: "bob"})
	leaving.drain(t, codec)
	staying.drain(t, codec)

	gm.Disconnect(leavingID)

	assert.Empty(t, leaving.drain(t, codec), "the leaving session is not notified")
	frames := staying.drain(t, codec)
	require.Len(t, frames, 1)
	assert.Equal(t, messages.MessageTypeServerPlayerDisconnect, frames[0].Type)
	notice := &messages.ServerPlayerDisconnect{}
	require.NoError(t, codec.DecodePayload(frames[0], notice))
	assert.Equal(t, leavingID, notice.ClientID)

	gm.gameTick(context.Background(), time.Now())
	frames = staying.drain(t, codec)
	require.Len(t, frames, 1)
	update := decodeGameUpdate(t, codec, frames[0])
	assert.Nil(t, findPlayer(update, leavingID))
	assert.NotNil(t, findPlayer(update, stayingID))

	// a second disconnect is a no-op
	gm.Disconnect(leavingID)
	assert.Empty(t, staying.drain(t, codec))
}

func TestGameManager_pushFailureIsolation(t *testing.T) {
	gm, _ := newTestGameManager(t)

	failing := mocks.NewPusher(t)
	failing.EXPECT().Push(mock.Anything).Return(errors.New("connection closed")).Once()
	healthy := mocks.NewPusher(t)
	healthy.EXPECT().Push(mock.Anything).Return(nil).Once()

	gm.registry.Register(failing)
	gm.registry.Register(healthy)

	assert.NotPanics(t, func() {
		gm.gameTick(context.Background(), time.Now())
	})
	assert.Equal(t, int64(1), gm.metrics.Snapshot()["push_failures"])
	assert.Equal(t, int64(1), gm.metrics.Snapshot()["broadcasts"])
}

func TestGameManager_mobsStayInArena(t *testing.T) {
	gm, _ := newTestGameManager(t)
	require.GreaterOrEqual(t, len(gm.gameState.Mobs), constants.MobCountMin)
	require.LessOrEqual(t, len(gm.gameState.Mobs), constants.MobCountMax)

	for i := 0; i < 1000; i++ {
		gm.gameTick(context.Background(), time.Now())
		gm.gameState.ForEachMob(func(mobID uint32, mob *types.MobState) {
			require.True(t, mob.Position.X >= 0 && mob.Position.X <= constants.ArenaWidth, "mob %d out of bounds", mobID)
			require.True(t, mob.Position.Y >= 0 && mob.Position.Y <= constants.ArenaHeight, "mob %d out of bounds", mobID)
		})
	}
}

func TestGameManager_seedIsReproducible(t *testing.T) {
	run := func(seed int64) *messages.ServerGameUpdate {
		gm := NewGameManager(NewGameManagerOptions{
			Registry: sessions.NewRegistry(),
			Codec:    messages.NewJSONCodec(),
			Seed:     seed,
		})
		var update *messages.ServerGameUpdate
		for i := 0; i < 100; i++ {
			update = gm.step(time.UnixMilli(int64(i)))
		}
		return update
	}

	assert.Equal(t, run(5), run(5))
	assert.NotEqual(t, run(5).Mobs, run(6).Mobs)
}

func TestGameManager_proximityHealth(t *testing.T) {
	gm, codec := newTestGameManager(t)
	p1 := newQueuePusher()
	id1 := gm.Connect(p1)
	id2 := gm.Connect(newQueuePusher())
	gm.HandleCommand(id1, types.JoinCommand{})
	gm.HandleCommand(id2, types.JoinCommand{})
	p1.drain(t, codec)

	// both players spawn on the same spot
	gm.gameTick(context.Background(), time.Now())
	frames := p1.drain(t, codec)
	require.Len(t, frames, 1)
	update := decodeGameUpdate(t, codec, frames[0])
	assert.Equal(t, uint8(types.HealthDamaged), findPlayer(update, id1).Health)
	assert.Equal(t, uint8(types.HealthDamaged), findPlayer(update, id2).Health)

	// 2 units per tick, separated once more than a hitbox width apart
	gm.HandleCommand(id1, types.MoveCommand{Input: kinematic.NewVector(1, 0)})
	for i := 0; i < 17; i++ {
		gm.gameTick(context.Background(), time.Now())
	}
	assert.Equal(t, types.HealthFull, gm.gameState.Players[id1].Health)
	assert.Equal(t, types.HealthFull, gm.gameState.Players[id2].Health)
}

func TestGameManager_Start(t *testing.T) {
	gm, _ := newTestGameManager(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- gm.Start(ctx)
	}()

	assert.Eventually(t, func() bool { return gm.Tick() >= 3 }, time.Second, time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("game loop did not stop")
	}
}

func TestGameManager_noSnapshotAfterRemovalNotice(t *testing.T) {
	gm, codec := newTestGameManager(t)
	gm.gameLoopInterval = time.Microsecond
	observer := &recordingPusher{}
	gm.Connect(observer)

	stop := runFastLoop(t, gm)
	const rounds = 1000
	for i := 0; i < rounds; i++ {
		id := gm.Connect(newQueuePusher())
		gm.HandleCommand(id, types.JoinCommand{Name: "blink"})
		time.Sleep(20 * time.Microsecond)
		gm.Disconnect(id)
	}
	stop()

	removed := make(map[uint32]bool)
	updates := 0
	for _, m := range observer.decode(t, codec) {
		switch m.Type {
		case messages.MessageTypeServerPlayerDisconnect:
			notice := &messages.ServerPlayerDisconnect{}
			require.NoError(t, codec.DecodePayload(m, notice))
			removed[notice.ClientID] = true
		case messages.MessageTypeServerGameUpdate:
			updates++
			update := decodeGameUpdate(t, codec, m)
			for _, p := range update.Players {
				require.False(t, removed[p.ClientID], "tick %d still contains removed player %d", update.Tick, p.ClientID)
			}
		}
	}
	assert.Len(t, removed, rounds)
	assert.Positive(t, updates)
}

func TestGameManager_welcomeIsFirstFrame(t *testing.T) {
	gm, codec := newTestGameManager(t)
	gm.gameLoopInterval = time.Microsecond

	stop := runFastLoop(t, gm)
	pushers := make([]*recordingPusher, 200)
	for i := range pushers {
		pushers[i] = &recordingPusher{}
		gm.Connect(pushers[i])
		time.Sleep(10 * time.Microsecond)
	}
	stop()

	for i, p := range pushers {
		frames := p.decode(t, codec)
		require.NotEmpty(t, frames, "session %d got no frames", i)
		assert.Equal(t, messages.MessageTypeServerWelcome, frames[0].Type, "session %d", i)
	}
}
