package messages

import (
	"fmt"
)

// Codec turns messages into wire frames and back.
// Implementations are safe for concurrent use.
type Codec interface {
	// Name is the configuration name of the codec.
	Name() string
	// Binary reports whether frames should be sent as binary rather than text.
	Binary() bool
	EncodePayload(t MessageType, v interface{}) ([]byte, error)
	DecodePayload(m *Message, v interface{}) error
	EncodeMessage(m *Message) ([]byte, error)
	DecodeMessage(b []byte) (*Message, error)
}

const (
	CodecJSON        = "json"
	CodecMsgpack     = "msgpack"
	CodecFlatbuffers = "flatbuffers"
)

// NewCodec returns the codec registered under name.
func NewCodec(name string) (Codec, error) {
	switch name {
	case CodecJSON:
		return NewJSONCodec(), nil
	case CodecMsgpack:
		return NewMsgpackCodec(), nil
	case CodecFlatbuffers:
		return NewFlatbuffersCodec()
	default:
		return nil, fmt.Errorf("unknown codec: %s", name)
	}
}

// Encode builds a server originated frame carrying v.
func Encode(c Codec, t MessageType, v interface{}) ([]byte, error) {
	payload, err := c.EncodePayload(t, v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s payload: %v", t, err)
	}
	b, err := c.EncodeMessage(&Message{Type: t, Payload: payload})
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s message: %v", t, err)
	}
	return b, nil
}

// Decode parses a frame and its payload into v.
func Decode(c Codec, b []byte, v interface{}) (*Message, error) {
	m, err := c.DecodeMessage(b)
	if err != nil {
		return nil, err
	}
	if err := c.DecodePayload(m, v); err != nil {
		return nil, fmt.Errorf("failed to decode %s payload: %v", m.Type, err)
	}
	return m, nil
}
