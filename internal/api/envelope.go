package api

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Response-shape variants. The legacy admin backend answers with bare arrays
// and objects; the hosted backend wraps payloads in {success, data} and keeps
// auth tokens at the top level.
const (
	VariantBare     = "bare"
	VariantEnvelope = "envelope"
)

// normalize reduces a raw 2xx body to the entity payload. Bare bodies pass
// through untouched. Envelope bodies are unwrapped: a declared failure turns
// into an error even though the transport said 200, and the data field (when
// present) replaces the envelope. Envelope responses that carry their payload
// at the top level (login does) also pass through whole.
func (c *Client) normalize(body []byte) ([]byte, error) {
	if c.variant != VariantEnvelope {
		return body, nil
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		// Some endpoints on the envelope backend still answer with bare
		// arrays; there is nothing to unwrap.
		return body, nil
	}

	var env struct {
		Success *bool           `json:"success"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, fmt.Errorf("decode envelope: %v: %w", err, ErrData)
	}

	if env.Success != nil && !*env.Success {
		msg := env.Message
		if msg == "" {
			msg = "request declined"
		}
		return nil, fmt.Errorf("%s: %w", msg, ErrOperationRejected)
	}

	if len(env.Data) > 0 {
		return env.Data, nil
	}
	return body, nil
}
