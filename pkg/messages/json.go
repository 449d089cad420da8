package messages

import (
	"encoding/json"
	"fmt"
)

type jsonMessage struct {
	ClientID uint32          `json:"clientID"`
	Type     MessageType     `json:"type"`
	Payload  json.RawMessage `json:"payload"`
}

// JSONCodec encodes messages as JSON text frames for browser clients.
type JSONCodec struct{}

func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

func (c *JSONCodec) Name() string { return CodecJSON }

func (c *JSONCodec) Binary() bool { return false }

func (c *JSONCodec) EncodePayload(t MessageType, v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

func (c *JSONCodec) DecodePayload(m *Message, v interface{}) error {
	if len(m.Payload) == 0 {
		return fmt.Errorf("empty payload")
	}
	return json.Unmarshal(m.Payload, v)
}

func (c *JSONCodec) EncodeMessage(m *Message) ([]byte, error) {
	return json.Marshal(jsonMessage{
		ClientID: m.ClientID,
		Type:     m.Type,
		Payload:  m.Payload,
	})
}

func (c *JSONCodec) DecodeMessage(b []byte) (*Message, error) {
	var jm jsonMessage
	if err := json.Unmarshal(b, &jm); err != nil {
		return nil, fmt.Errorf("failed to unmarshal message: %v", err)
	}
	return &Message{
		ClientID: jm.ClientID,
		Type:     jm.Type,
		Payload:  []byte(jm.Payload),
	}, nil
}
