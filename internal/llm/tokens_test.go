package llm

import (
	"testing"

	"github.com/codefionn/wayfinder/internal/agent"
)

func TestEstimateHistoryTokens(t *testing.T) {
	history := []agent.Message{
		agent.UserInput{Text: "where can I get coffee near gate A1?"},
		agent.AssistantResponse{Text: "Central Cafe is on floor 1, about two minutes away."},
	}

	t.Run("Counts grow with content", func(t *testing.T) {
		small := EstimateHistoryTokens("gpt-4o", "", history[:1])
		large := EstimateHistoryTokens("gpt-4o", "You are a venue assistant.", history)
		if small <= 0 {
			t.Fatalf("expected positive estimate, got %d", small)
		}
		if large <= small {
			t.Errorf("expected estimate to grow with content: %d <= %d", large, small)
		}
	})

	t.Run("Unknown model still estimates", func(t *testing.T) {
		got := EstimateHistoryTokens("some-future-model", "", history)
		if got <= 0 {
			t.Errorf("expected positive fallback estimate, got %d", got)
		}
	})

	t.Run("Tool messages contribute", func(t *testing.T) {
		withTools := append(history, agent.ToolCalls{Invocations: []agent.Invocation{
			{Name: "search_places", Args: map[string]any{"query": "coffee"}},
		}})
		if EstimateHistoryTokens("gpt-4o", "", withTools) <= EstimateHistoryTokens("gpt-4o", "", history) {
			t.Error("expected tool calls to add to the estimate")
		}
	})
}
