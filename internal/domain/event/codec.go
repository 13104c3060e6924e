package event

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnknownType marks an envelope whose discriminator is outside the
// trusted allowlist. Consumers acknowledge and skip these.
var ErrUnknownType = errors.New("unknown event type")

// Codec decodes envelopes and their payload variants. Only the types in
// the allowlist are decoded; everything else is reported as unknown so
// newer producers do not break older consumers.
type Codec struct {
	trusted map[string]struct{}
}

func NewCodec(trustedTypes []string) *Codec {
	trusted := make(map[string]struct{}, len(trustedTypes))
	for _, t := range trustedTypes {
		trusted[t] = struct{}{}
	}
	return &Codec{trusted: trusted}
}

// DecodeMessage parses the wire envelope. A malformed envelope is a
// decode error; a well-formed envelope of an untrusted type is
// ErrUnknownType.
func (c *Codec) DecodeMessage(value []byte) (Message, error) {
	var msg Message
	if err := json.Unmarshal(value, &msg); err != nil {
		return Message{}, fmt.Errorf("decode envelope: %w", err)
	}
	if msg.Type == "" {
		return Message{}, fmt.Errorf("decode envelope: missing type discriminator")
	}
	if _, ok := c.trusted[msg.Type]; !ok {
		return msg, fmt.Errorf("%w: %s", ErrUnknownType, msg.Type)
	}
	return msg, nil
}

// DecodePayload unmarshals the raw payload into the variant struct for
// the envelope's discriminator.
func DecodePayload(msg Message, v any) error {
	if err := json.Unmarshal(msg.Payload, v); err != nil {
		return fmt.Errorf("decode %s payload: %w", msg.Type, err)
	}
	return nil
}
