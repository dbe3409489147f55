// Package agent implements the conversational core of the wayfinding
// assistant: the message ledger, the tool registry and executor, the
// iteration policy, and the orchestration loop that drives a model
// provider until it produces a final answer.
package agent

// MessageKind discriminates the four message variants in the ledger.
type MessageKind string

const (
	KindUserInput         MessageKind = "user_input"
	KindAssistantResponse MessageKind = "assistant_response"
	KindToolCalls         MessageKind = "tool_calls"
	KindToolResults       MessageKind = "tool_results"
)

// Message is one entry in the conversation ledger. It is a closed union:
// the only implementations are UserInput, AssistantResponse, ToolCalls and
// ToolResults. Consumers switch exhaustively on the concrete type or on
// Kind().
type Message interface {
	Kind() MessageKind

	// clone returns a deep copy so ledger reads cannot alias loop-internal
	// slices or maps.
	clone() Message
}

// UserInput is appended when the caller submits a new turn.
type UserInput struct {
	Text string `json:"text"`
}

func (m UserInput) Kind() MessageKind { return KindUserInput }
func (m UserInput) clone() Message    { return m }

// AssistantResponse is appended when the model ends a turn with final text.
type AssistantResponse struct {
	Text string `json:"text"`
}

func (m AssistantResponse) Kind() MessageKind { return KindAssistantResponse }
func (m AssistantResponse) clone() Message    { return m }

// ToolCalls is appended when the model requests one or more tool
// executions in a single step. It is always followed by exactly one
// ToolResults message of the same length and name order.
type ToolCalls struct {
	Invocations []Invocation `json:"invocations"`
}

func (m ToolCalls) Kind() MessageKind { return KindToolCalls }

func (m ToolCalls) clone() Message {
	out := ToolCalls{Invocations: make([]Invocation, len(m.Invocations))}
	for i, inv := range m.Invocations {
		out.Invocations[i] = inv.Clone()
	}
	return out
}

// ToolResults is appended after the executor runs the invocations from the
// immediately preceding ToolCalls message.
type ToolResults struct {
	Results []Outcome `json:"results"`
}

func (m ToolResults) Kind() MessageKind { return KindToolResults }

func (m ToolResults) clone() Message {
	out := ToolResults{Results: make([]Outcome, len(m.Results))}
	for i, res := range m.Results {
		res.Value = deepCopyValue(res.Value)
		if res.Error != nil {
			msg := *res.Error
			res.Error = &msg
		}
		out.Results[i] = res
	}
	return out
}

// Invocation is a single requested tool call. ContinuationToken carries
// provider-issued reasoning-continuity metadata (for Gemini, the thought
// signature bytes); the core stores and replays it unmodified and never
// interprets it.
type Invocation struct {
	Name              string         `json:"name"`
	Args              map[string]any `json:"args"`
	ContinuationToken []byte         `json:"continuation_token,omitempty"`
}

// Clone deep-copies the invocation so callers can retain it across turns
// without observing later mutation of the args map or token bytes.
func (inv Invocation) Clone() Invocation {
	out := Invocation{Name: inv.Name}
	if inv.Args != nil {
		out.Args = deepCopyValue(inv.Args).(map[string]any)
	}
	if len(inv.ContinuationToken) > 0 {
		out.ContinuationToken = append([]byte(nil), inv.ContinuationToken...)
	}
	return out
}

// deepCopyValue copies the JSON-shaped object graphs that tool args and
// outcome values are made of (maps, slices, scalars), so ledger reads
// cannot alias nested containers. Other kinds pass through as-is.
func deepCopyValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = deepCopyValue(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = deepCopyValue(item)
		}
		return out
	case []byte:
		return append([]byte(nil), val...)
	default:
		return v
	}
}

// Outcome is the normalized result of executing one invocation. Exactly one
// of Value/Error is meaningful, but both fields are always present in the
// JSON shape (null, not omitted) so downstream consumers see a stable
// structure.
type Outcome struct {
	Name  string  `json:"name"`
	Value any     `json:"value"`
	Error *string `json:"error"`
}

// Succeeded reports whether the invocation produced a value without error.
func (o Outcome) Succeeded() bool { return o.Error == nil && o.Value != nil }

// Failed reports whether the invocation produced an error.
func (o Outcome) Failed() bool { return o.Error != nil }
