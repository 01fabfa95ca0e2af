package ws

import (
	"campus-chat/domain/event"
	"campus-chat/errors"
	"encoding/json"
	"fmt"
)

// Envelope is the frame exchanged in both directions.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type outbound struct {
	Event event.Type `json:"event"`
	Data  any        `json:"data"`
}

// Encode renders an outbound event as an envelope frame.
func Encode(e event.Event) ([]byte, error) {
	raw, err := json.Marshal(outbound{Event: e.Type, Data: e.Payload})
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", e.Type, err)
	}
	return raw, nil
}

// Decode parses an inbound frame. Malformed frames are validation errors.
func Decode(raw []byte) (Envelope, error) {
	var envelope Envelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return Envelope{}, errors.Validation(fmt.Errorf("malformed frame: %w", err))
	}
	if envelope.Event == "" {
		return Envelope{}, errors.Validation(fmt.Errorf("frame without event name"))
	}
	return envelope, nil
}

// decodeData fills cmd from the envelope payload. A missing payload leaves
// cmd zero valued so the command validation reports the missing fields.
func decodeData(data json.RawMessage, cmd any) error {
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	if err := json.Unmarshal(data, cmd); err != nil {
		return errors.Validation(fmt.Errorf("malformed payload: %w", err))
	}
	return nil
}
