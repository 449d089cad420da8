package messages

import (
	"github.com/cbodonnell/ghist/pkg/kinematic"
)

const (
	// MessageBufferSize represents the maximum size of an inbound message
	MessageBufferSize = 1024
)

// MessageType identifies the payload carried by a Message.
type MessageType uint8

// Message types
const (
	MessageTypeClientJoin MessageType = iota + 1
	MessageTypeClientMove
	MessageTypeClientClick
	MessageTypeServerWelcome
	MessageTypeServerGameUpdate
	MessageTypeServerPlayerDisconnect
)

func (t MessageType) String() string {
	switch t {
	case MessageTypeClientJoin:
		return "ClientJoin"
	case MessageTypeClientMove:
		return "ClientMove"
	case MessageTypeClientClick:
		return "ClientClick"
	case MessageTypeServerWelcome:
		return "ServerWelcome"
	case MessageTypeServerGameUpdate:
		return "ServerGameUpdate"
	case MessageTypeServerPlayerDisconnect:
		return "ServerPlayerDisconnect"
	default:
		return "Unknown"
	}
}

// Message represents a generic message for serialization/deserialization.
// The payload is encoded by the same codec as the envelope.
type Message struct {
	// ClientID 0 means the message is from the server
	ClientID uint32
	Type     MessageType
	Payload  []byte
}

// ClientJoin asks the server to create the sender's player.
type ClientJoin struct {
	Name string `json:"name" msgpack:"name"`
}

// ClientMove replaces the sender's movement input.
type ClientMove struct {
	X float64 `json:"x" msgpack:"x"`
	Y float64 `json:"y" msgpack:"y"`
}

// ClientClick reports the sender's pointer state.
type ClientClick struct {
	MouseDown bool `json:"mouseDown" msgpack:"mouseDown"`
}

// ServerWelcome acknowledges a new connection.
type ServerWelcome struct {
	ClientID uint32           `json:"clientID" msgpack:"clientID"`
	ServerID string           `json:"serverID" msgpack:"serverID"`
	Position kinematic.Vector `json:"position" msgpack:"position"`
}

// ServerGameUpdate is the full world snapshot sent every tick.
type ServerGameUpdate struct {
	Tick      uint64               `json:"tick" msgpack:"tick"`
	Timestamp int64                `json:"timestamp" msgpack:"timestamp"`
	Players   []*PlayerStateUpdate `json:"players" msgpack:"players"`
	Mobs      []*MobStateUpdate    `json:"mobs" msgpack:"mobs"`
}

type PlayerStateUpdate struct {
	ClientID  uint32           `json:"clientID" msgpack:"clientID"`
	Name      string           `json:"name,omitempty" msgpack:"name,omitempty"`
	Position  kinematic.Vector `json:"position" msgpack:"position"`
	Health    uint8            `json:"health" msgpack:"health"`
	MouseDown bool             `json:"mouseDown" msgpack:"mouseDown"`
}

type MobStateUpdate struct {
	MobID    uint32           `json:"mobID" msgpack:"mobID"`
	Kind     uint8            `json:"kind" msgpack:"kind"`
	Position kinematic.Vector `json:"position" msgpack:"position"`
	Health   uint8            `json:"health" msgpack:"health"`
}

// Copy returns a deep copy of the update.
func (u *ServerGameUpdate) Copy() *ServerGameUpdate {
	c := &ServerGameUpdate{
		Tick:      u.Tick,
		Timestamp: u.Timestamp,
		Players:   make([]*PlayerStateUpdate, 0, len(u.Players)),
		Mobs:      make([]*MobStateUpdate, 0, len(u.Mobs)),
	}
	for _, p := range u.Players {
		pc := *p
		c.Players = append(c.Players, &pc)
	}
	for _, m := range u.Mobs {
		mc := *m
		c.Mobs = append(c.Mobs, &mc)
	}
	return c
}

// ServerPlayerDisconnect notifies the remaining sessions that a player left.
type ServerPlayerDisconnect struct {
	ClientID uint32 `json:"clientID" msgpack:"clientID"`
}
