package messages

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

type msgpackMessage struct {
	ClientID uint32             `msgpack:"clientID"`
	Type     MessageType        `msgpack:"type"`
	Payload  msgpack.RawMessage `msgpack:"payload"`
}

// MsgpackCodec encodes messages as MessagePack binary frames.
type MsgpackCodec struct{}

func NewMsgpackCodec() *MsgpackCodec {
	return &MsgpackCodec{}
}

func (c *MsgpackCodec) Name() string { return CodecMsgpack }

func (c *MsgpackCodec) Binary() bool { return true }

func (c *MsgpackCodec) EncodePayload(t MessageType, v interface{}) ([]byte, error) {
	return msgpack.Marshal(v)
}

func (c *MsgpackCodec) DecodePayload(m *Message, v interface{}) error {
	if len(m.Payload) == 0 {
		return fmt.Errorf("empty payload")
	}
	return msgpack.Unmarshal(m.Payload, v)
}

func (c *MsgpackCodec) EncodeMessage(m *Message) ([]byte, error) {
	return msgpack.Marshal(&msgpackMessage{
		ClientID: m.ClientID,
		Type:     m.Type,
		Payload:  m.Payload,
	})
}

func (c *MsgpackCodec) DecodeMessage(b []byte) (*Message, error) {
	var mm msgpackMessage
	if err := msgpack.Unmarshal(b, &mm); err != nil {
		return nil, fmt.Errorf("failed to unmarshal message: %v", err)
	}
	return &Message{
		ClientID: mm.ClientID,
		Type:     mm.Type,
		Payload:  []byte(mm.Payload),
	}, nil
}
