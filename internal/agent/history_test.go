package agent

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func sampleHistory() *History {
	h := NewHistory()
	h.Append(UserInput{Text: "where can I get coffee?"})
	h.Append(ToolCalls{Invocations: []Invocation{
		{
			Name:              "search_places",
			Args:              map[string]any{"query": "coffee"},
			ContinuationToken: []byte{0x01, 0x02, 0xfe},
		},
	}})
	h.Append(ToolResults{Results: []Outcome{
		{Name: "search_places", Value: map[string]any{"count": float64(1)}},
	}})
	h.Append(AssistantResponse{Text: "Central Cafe is on floor 1."})
	return h
}

func TestHistoryJSONRoundTrip(t *testing.T) {
	h := sampleHistory()

	data, err := json.Marshal(h)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var restored History
	if err := json.Unmarshal(data, &restored); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if restored.Len() != h.Len() {
		t.Fatalf("expected %d messages, got %d", h.Len(), restored.Len())
	}

	msgs := restored.Messages()
	if msgs[0].(UserInput).Text != "where can I get coffee?" {
		t.Error("user input text lost")
	}

	calls := msgs[1].(ToolCalls)
	inv := calls.Invocations[0]
	if inv.Name != "search_places" || inv.Args["query"] != "coffee" {
		t.Errorf("invocation not restored: %+v", inv)
	}
	if !bytes.Equal(inv.ContinuationToken, []byte{0x01, 0x02, 0xfe}) {
		t.Errorf("continuation token not byte-identical: %v", inv.ContinuationToken)
	}

	results := msgs[2].(ToolResults)
	if results.Results[0].Name != "search_places" || results.Results[0].Error != nil {
		t.Errorf("outcome not restored: %+v", results.Results[0])
	}

	if msgs[3].(AssistantResponse).Text != "Central Cafe is on floor 1." {
		t.Error("assistant response text lost")
	}
}

func TestHistoryEncodingShape(t *testing.T) {
	t.Run("Entries are type-tagged", func(t *testing.T) {
		data, err := json.Marshal(sampleHistory())
		if err != nil {
			t.Fatalf("marshal failed: %v", err)
		}

		var raw []map[string]json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			t.Fatalf("unexpected encoding shape: %v", err)
		}
		want := []string{`"user_input"`, `"tool_calls"`, `"tool_results"`, `"assistant_response"`}
		for i, env := range raw {
			if string(env["type"]) != want[i] {
				t.Errorf("entry %d: expected type %s, got %s", i, want[i], env["type"])
			}
		}
	})

	t.Run("Outcome keeps null value and error fields", func(t *testing.T) {
		data, err := json.Marshal(Outcome{Name: "search", Error: strPtr("timeout")})
		if err != nil {
			t.Fatalf("marshal failed: %v", err)
		}
		if string(data) != `{"name":"search","value":null,"error":"timeout"}` {
			t.Errorf("unexpected encoding %s", data)
		}

		data, err = json.Marshal(Outcome{Name: "search", Value: 3})
		if err != nil {
			t.Fatalf("marshal failed: %v", err)
		}
		if string(data) != `{"name":"search","value":3,"error":null}` {
			t.Errorf("unexpected encoding %s", data)
		}
	})

	t.Run("Unknown type tag is rejected", func(t *testing.T) {
		var h History
		err := json.Unmarshal([]byte(`[{"type":"telepathy","data":{}}]`), &h)
		if err == nil || !strings.Contains(err.Error(), "unknown message type") {
			t.Fatalf("expected unknown-type error, got %v", err)
		}
	})
}

func TestHistoryDefensiveCopy(t *testing.T) {
	h := NewHistory()
	h.Append(ToolCalls{Invocations: []Invocation{
		{Name: "search_places", Args: map[string]any{"query": "coffee"}, ContinuationToken: []byte{9}},
	}})

	msgs := h.Messages()
	got := msgs[0].(ToolCalls)
	got.Invocations[0].Args["query"] = "tampered"
	got.Invocations[0].ContinuationToken[0] = 0

	fresh := h.Messages()[0].(ToolCalls)
	if fresh.Invocations[0].Args["query"] != "coffee" {
		t.Error("ledger args aliased by a read")
	}
	if fresh.Invocations[0].ContinuationToken[0] != 9 {
		t.Error("ledger token bytes aliased by a read")
	}
}

func TestHistoryDefensiveCopyNested(t *testing.T) {
	t.Run("Nested args containers are not aliased", func(t *testing.T) {
		h := NewHistory()
		h.Append(ToolCalls{Invocations: []Invocation{{
			Name: "search_places",
			Args: map[string]any{
				"filters": map[string]any{"category": "coffee"},
				"floors":  []any{1, 2},
			},
		}}})

		got := h.Messages()[0].(ToolCalls).Invocations[0].Args
		got["filters"].(map[string]any)["category"] = "tampered"
		got["floors"].([]any)[0] = 99

		fresh := h.Messages()[0].(ToolCalls).Invocations[0].Args
		if fresh["filters"].(map[string]any)["category"] != "coffee" {
			t.Error("nested args map aliased by a read")
		}
		if fresh["floors"].([]any)[0] != 1 {
			t.Error("nested args slice aliased by a read")
		}
	})

	t.Run("Outcome values and errors are not aliased", func(t *testing.T) {
		h := NewHistory()
		errMsg := "timeout"
		h.Append(ToolResults{Results: []Outcome{
			{Name: "search_places", Value: map[string]any{"places": []any{"Central Cafe"}}},
			{Name: "get_directions", Error: &errMsg},
		}})

		got := h.Messages()[0].(ToolResults).Results
		got[0].Value.(map[string]any)["places"].([]any)[0] = "tampered"
		*got[1].Error = "tampered"

		fresh := h.Messages()[0].(ToolResults).Results
		if fresh[0].Value.(map[string]any)["places"].([]any)[0] != "Central Cafe" {
			t.Error("outcome value aliased by a read")
		}
		if *fresh[1].Error != "timeout" {
			t.Error("outcome error aliased by a read")
		}
	})
}
