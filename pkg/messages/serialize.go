package messages

import (
	"encoding/json"
	"fmt"

	gamestatefb "github.com/cbodonnell/ghist/flatbuffers/gamestate"
	messagefb "github.com/cbodonnell/ghist/flatbuffers/message"
	"github.com/cbodonnell/ghist/pkg/kinematic"
	flatbuffers "github.com/google/flatbuffers/go"
	"github.com/klauspost/compress/zstd"
)

// FlatbuffersCodec wraps messages in a flatbuffer envelope compressed with zstd.
// Game updates are encoded as flatbuffers, other payloads as JSON.
type FlatbuffersCodec struct {
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

func NewFlatbuffersCodec() (*FlatbuffersCodec, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd writer: %v", err)
	}
	decoder, err := zstd.NewReader(nil, zstd.WithDecoderMaxMemory(1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd reader: %v", err)
	}
	return &FlatbuffersCodec{
		encoder: encoder,
		decoder: decoder,
	}, nil
}

func (c *FlatbuffersCodec) Name() string { return CodecFlatbuffers }

func (c *FlatbuffersCodec) Binary() bool { return true }

func (c *FlatbuffersCodec) EncodePayload(t MessageType, v interface{}) ([]byte, error) {
	if t == MessageTypeServerGameUpdate {
		update, ok := v.(*ServerGameUpdate)
		if !ok {
			return nil, fmt.Errorf("expected *ServerGameUpdate, got %T", v)
		}
		return SerializeGameState(update)
	}
	return json.Marshal(v)
}

func (c *FlatbuffersCodec) DecodePayload(m *Message, v interface{}) error {
	if len(m.Payload) == 0 {
		return fmt.Errorf("empty payload")
	}
	if m.Type == MessageTypeServerGameUpdate {
		update, ok := v.(*ServerGameUpdate)
		if !ok {
			return fmt.Errorf("expected *ServerGameUpdate, got %T", v)
		}
		decoded, err := DeserializeGameState(m.Payload)
		if err != nil {
			return err
		}
		*update = *decoded
		return nil
	}
	return json.Unmarshal(m.Payload, v)
}

func (c *FlatbuffersCodec) EncodeMessage(m *Message) ([]byte, error) {
	b, err := SerializeMessageFlatbuffer(m)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize message: %v", err)
	}
	return c.encoder.EncodeAll(b, nil), nil
}

func (c *FlatbuffersCodec) DecodeMessage(data []byte) (*Message, error) {
	b, err := c.decoder.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress message: %v", err)
	}

	message, err := DeserializeMessageFlatbuffer(b)
	if err != nil {
		return nil, fmt.Errorf("failed to deserialize message: %v", err)
	}

	return message, nil
}

func SerializeMessageFlatbuffer(m *Message) ([]byte, error) {
	builder := flatbuffers.NewBuilder(len(m.Payload) + 32)

	payload := builder.CreateByteVector(m.Payload)

	messagefb.MessageStart(builder)
	messagefb.MessageAddClientId(builder, m.ClientID)
	messagefb.MessageAddType(builder, byte(m.Type))
	messagefb.MessageAddPayload(builder, payload)
	messageOffset := messagefb.MessageEnd(builder)
	builder.Finish(messageOffset)
	b := builder.FinishedBytes()

	return b, nil
}

// DeserializeMessageFlatbuffer reads an envelope. Malformed buffers are reported as errors.
func DeserializeMessageFlatbuffer(b []byte) (message *Message, err error) {
	defer func() {
		if r := recover(); r != nil {
			message, err = nil, fmt.Errorf("malformed message flatbuffer: %v", r)
		}
	}()

	if len(b) < flatbuffers.SizeUOffsetT {
		return nil, fmt.Errorf("message flatbuffer too short: %d bytes", len(b))
	}

	message = &Message{}
	messageFlatbuffer := messagefb.GetRootAsMessage(b, 0)
	message.ClientID = messageFlatbuffer.ClientId()
	message.Type = MessageType(messageFlatbuffer.Type())
	message.Payload = append([]byte(nil), messageFlatbuffer.PayloadBytes()...)

	return message, nil
}

func SerializeGameState(state *ServerGameUpdate) ([]byte, error) {
	builder := flatbuffers.NewBuilder(1024)
	gameState := SerializeGameStateFlatbuffer(builder, state)
	builder.Finish(gameState)
	return builder.FinishedBytes(), nil
}

func DeserializeGameState(b []byte) (*ServerGameUpdate, error) {
	gameState, err := DeserializeGameStateFlatbuffer(b)
	if err != nil {
		return nil, fmt.Errorf("failed to deserialize game state: %v", err)
	}

	return gameState, nil
}

func SerializeGameStateFlatbuffer(builder *flatbuffers.Builder, state *ServerGameUpdate) flatbuffers.UOffsetT {
	playerStates := make([]flatbuffers.UOffsetT, 0, len(state.Players))
	for _, p := range state.Players {
		playerStates = append(playerStates, SerializePlayerStateFlatbuffer(builder, p))
	}
	gamestatefb.GameStateStartPlayersVector(builder, len(playerStates))
	for i := len(playerStates) - 1; i >= 0; i-- {
		builder.PrependUOffsetT(playerStates[i])
	}
	players := builder.EndVector(len(playerStates))

	mobStates := make([]flatbuffers.UOffsetT, 0, len(state.Mobs))
	for _, m := range state.Mobs {
		mobStates = append(mobStates, SerializeMobStateFlatbuffer(builder, m))
	}
	gamestatefb.GameStateStartMobsVector(builder, len(mobStates))
	for i := len(mobStates) - 1; i >= 0; i-- {
		builder.PrependUOffsetT(mobStates[i])
	}
	mobs := builder.EndVector(len(mobStates))

	gamestatefb.GameStateStart(builder)
	gamestatefb.GameStateAddTick(builder, state.Tick)
	gamestatefb.GameStateAddTimestamp(builder, state.Timestamp)
	gamestatefb.GameStateAddPlayers(builder, players)
	gamestatefb.GameStateAddMobs(builder, mobs)
	gameState := gamestatefb.GameStateEnd(builder)

	return gameState
}

func serializePositionFlatbuffer(builder *flatbuffers.Builder, v kinematic.Vector) flatbuffers.UOffsetT {
	gamestatefb.PositionStart(builder)
	gamestatefb.PositionAddX(builder, v.X)
	gamestatefb.PositionAddY(builder, v.Y)
	return gamestatefb.PositionEnd(builder)
}

func SerializePlayerStateFlatbuffer(builder *flatbuffers.Builder, state *PlayerStateUpdate) flatbuffers.UOffsetT {
	name := builder.CreateString(state.Name)
	position := serializePositionFlatbuffer(builder, state.Position)

	gamestatefb.PlayerStateStart(builder)
	gamestatefb.PlayerStateAddClientId(builder, state.ClientID)
	gamestatefb.PlayerStateAddName(builder, name)
	gamestatefb.PlayerStateAddPosition(builder, position)
	gamestatefb.PlayerStateAddHealth(builder, state.Health)
	gamestatefb.PlayerStateAddMouseDown(builder, state.MouseDown)
	playerState := gamestatefb.PlayerStateEnd(builder)

	return playerState
}

func SerializeMobStateFlatbuffer(builder *flatbuffers.Builder, state *MobStateUpdate) flatbuffers.UOffsetT {
	position := serializePositionFlatbuffer(builder, state.Position)

	gamestatefb.MobStateStart(builder)
	gamestatefb.MobStateAddMobId(builder, state.MobID)
	gamestatefb.MobStateAddKind(builder, state.Kind)
	gamestatefb.MobStateAddPosition(builder, position)
	gamestatefb.MobStateAddHealth(builder, state.Health)
	mobState := gamestatefb.MobStateEnd(builder)

	return mobState
}

func DeserializeGameStateFlatbuffer(b []byte) (gameState *ServerGameUpdate, err error) {
	defer func() {
		if r := recover(); r != nil {
			gameState, err = nil, fmt.Errorf("malformed game state flatbuffer: %v", r)
		}
	}()

	gameState = &ServerGameUpdate{}
	gameStateFlatbuffer := gamestatefb.GetRootAsGameState(b, 0)
	gameState.Tick = gameStateFlatbuffer.Tick()
	gameState.Timestamp = gameStateFlatbuffer.Timestamp()

	gameState.Players = make([]*PlayerStateUpdate, 0, gameStateFlatbuffer.PlayersLength())
	for i := 0; i < gameStateFlatbuffer.PlayersLength(); i++ {
		playerState := &gamestatefb.PlayerState{}
		if !gameStateFlatbuffer.Players(playerState, i) {
			return nil, fmt.Errorf("failed to get player state at index %d", i)
		}
		gameState.Players = append(gameState.Players, &PlayerStateUpdate{
			ClientID:  playerState.ClientId(),
			Name:      string(playerState.Name()),
			Position:  deserializePositionFlatbuffer(playerState.Position(nil)),
			Health:    playerState.Health(),
			MouseDown: playerState.MouseDown(),
		})
	}

	gameState.Mobs = make([]*MobStateUpdate, 0, gameStateFlatbuffer.MobsLength())
	for i := 0; i < gameStateFlatbuffer.MobsLength(); i++ {
		mobState := &gamestatefb.MobState{}
		if !gameStateFlatbuffer.Mobs(mobState, i) {
			return nil, fmt.Errorf("failed to get mob state at index %d", i)
		}
		gameState.Mobs = append(gameState.Mobs, &MobStateUpdate{
			MobID:    mobState.MobId(),
			Kind:     mobState.Kind(),
			Position: deserializePositionFlatbuffer(mobState.Position(nil)),
			Health:   mobState.Health(),
		})
	}

	return gameState, nil
}

func deserializePositionFlatbuffer(p *gamestatefb.Position) kinematic.Vector {
	if p == nil {
		return kinematic.Vector{}
	}
	return kinematic.NewVector(p.X(), p.Y())
}
