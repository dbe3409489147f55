package agent

import (
	"encoding/json"
	"fmt"
)

// History is the append-only conversation ledger for one session. It is
// created empty when the session begins and lives exactly as long as the
// session; it is never mutated in place, only appended to (or reset
// wholesale).
//
// History is not safe for concurrent use; a session runs one turn at a
// time (see Agent.HandleTurn).
type History struct {
	messages []Message
}

// NewHistory returns an empty ledger.
func NewHistory() *History {
	return &History{}
}

// Append adds a message to the end of the ledger.
func (h *History) Append(msg Message) {
	h.messages = append(h.messages, msg)
}

// Messages returns a defensive copy of the ledger.
func (h *History) Messages() []Message {
	out := make([]Message, len(h.messages))
	for i, msg := range h.messages {
		out[i] = msg.clone()
	}
	return out
}

// Len returns the number of messages in the ledger.
func (h *History) Len() int { return len(h.messages) }

// Reset discards all messages.
func (h *History) Reset() { h.messages = nil }

// messageEnvelope is the serialized form of one ledger entry. The type tag
// keeps the ledger parseable after arbitrary multi-turn growth.
type messageEnvelope struct {
	Type MessageKind     `json:"type"`
	Data json.RawMessage `json:"data"`
}

// MarshalJSON encodes the ledger as a tagged-union array. The encoded form
// is the canonical representation a caller may persist between process
// restarts.
func (h *History) MarshalJSON() ([]byte, error) {
	envelopes := make([]messageEnvelope, 0, len(h.messages))
	for i, msg := range h.messages {
		data, err := json.Marshal(msg)
		if err != nil {
			return nil, fmt.Errorf("encode message %d: %w", i, err)
		}
		envelopes = append(envelopes, messageEnvelope{Type: msg.Kind(), Data: data})
	}
	return json.Marshal(envelopes)
}

// UnmarshalJSON decodes a ledger previously produced by MarshalJSON.
func (h *History) UnmarshalJSON(data []byte) error {
	var envelopes []messageEnvelope
	if err := json.Unmarshal(data, &envelopes); err != nil {
		return err
	}

	messages := make([]Message, 0, len(envelopes))
	for i, env := range envelopes {
		msg, err := decodeMessage(env)
		if err != nil {
			return fmt.Errorf("decode message %d: %w", i, err)
		}
		messages = append(messages, msg)
	}

	h.messages = messages
	return nil
}

func decodeMessage(env messageEnvelope) (Message, error) {
	switch env.Type {
	case KindUserInput:
		var msg UserInput
		if err := json.Unmarshal(env.Data, &msg); err != nil {
			return nil, err
		}
		return msg, nil
	case KindAssistantResponse:
		var msg AssistantResponse
		if err := json.Unmarshal(env.Data, &msg); err != nil {
			return nil, err
		}
		return msg, nil
	case KindToolCalls:
		var msg ToolCalls
		if err := json.Unmarshal(env.Data, &msg); err != nil {
			return nil, err
		}
		return msg, nil
	case KindToolResults:
		var msg ToolResults
		if err := json.Unmarshal(env.Data, &msg); err != nil {
			return nil, err
		}
		return msg, nil
	default:
		return nil, fmt.Errorf("unknown message type %q", env.Type)
	}
}
