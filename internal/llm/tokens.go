package llm

import (
	"encoding/json"
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"

	"github.com/codefionn/wayfinder/internal/agent"
)

const perMessageOverhead = 4

// EstimateHistoryTokens returns a token estimate for the conversation as
// it will be sent to the provider. Models without a registered tiktoken
// encoding fall back to cl100k_base, then to a characters/4 heuristic, so
// the number is indicative rather than exact.
func EstimateHistoryTokens(modelID, instruction string, history []agent.Message) int {
	encoder := encodingForModel(modelID)

	total := tokenCount(encoder, instruction)
	for _, msg := range history {
		total += perMessageOverhead
		switch m := msg.(type) {
		case agent.UserInput:
			total += tokenCount(encoder, m.Text)
		case agent.AssistantResponse:
			total += tokenCount(encoder, m.Text)
		case agent.ToolCalls:
			if data, err := json.Marshal(m.Invocations); err == nil {
				total += tokenCount(encoder, string(data))
			}
		case agent.ToolResults:
			if data, err := json.Marshal(m.Results); err == nil {
				total += tokenCount(encoder, string(data))
			}
		}
	}
	return total
}

func encodingForModel(modelID string) *tiktoken.Tiktoken {
	encoder, err := tiktoken.EncodingForModel(modelID)
	if err == nil {
		return encoder
	}
	fallback, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		return nil
	}
	return fallback
}

func tokenCount(encoder *tiktoken.Tiktoken, text string) int {
	if text == "" {
		return 0
	}
	if encoder != nil {
		return len(encoder.Encode(text, nil, nil))
	}
	runes := utf8.RuneCountInString(text)
	return (runes + 3) / 4
}
