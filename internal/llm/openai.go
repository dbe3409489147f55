package llm

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"github.com/codefionn/wayfinder/internal/agent"
	"github.com/codefionn/wayfinder/internal/logger"
)

const defaultOpenAIModel = "gpt-4o"

// OpenAIProvider talks to the Chat Completions API through openai-go.
// Call/result pairing works like the Anthropic adapter: tool call IDs are
// synthesized per request and reused by the tool messages that follow.
type OpenAIProvider struct {
	client      openai.Client
	model       string
	temperature float64
	maxTokens   int
	log         *logger.Logger
}

// NewOpenAIProvider creates an OpenAI-backed provider.
func NewOpenAIProvider(apiKey string, opts Options) *OpenAIProvider {
	model := opts.Model
	if model == "" {
		model = defaultOpenAIModel
	}
	return &OpenAIProvider{
		client:      openai.NewClient(option.WithAPIKey(apiKey)),
		model:       model,
		temperature: opts.Temperature,
		maxTokens:   opts.MaxTokens,
		log:         opts.logger().WithPrefix("llm/openai"),
	}
}

func (p *OpenAIProvider) Name() string { return "openai" }

func (p *OpenAIProvider) Generate(ctx context.Context, history []agent.Message, tools []*agent.Descriptor, instruction string) (*agent.Reply, error) {
	params := openai.ChatCompletionNewParams{
		Model:    shared.ChatModel(p.model),
		Messages: historyToOpenAI(history, instruction),
	}
	if p.temperature > 0 {
		params.Temperature = openai.Float(p.temperature)
	}
	if p.maxTokens > 0 {
		params.MaxTokens = openai.Int(int64(p.maxTokens))
	}
	if len(tools) > 0 {
		params.Tools = openaiTools(tools)
	}

	p.log.Debug("request to %s: %d messages, ~%d tokens, %d tools",
		p.model, len(history), EstimateHistoryTokens(p.model, instruction, history), len(tools))
	resp, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, classifyOpenAIError(err)
	}
	return p.replyFromCompletion(resp, len(tools) > 0), nil
}

func historyToOpenAI(history []agent.Message, instruction string) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(history)+1)
	if instruction != "" {
		out = append(out, openai.SystemMessage(instruction))
	}
	var pendingIDs []string
	for _, msg := range history {
		switch m := msg.(type) {
		case agent.UserInput:
			out = append(out, openai.UserMessage(m.Text))
		case agent.AssistantResponse:
			out = append(out, openai.AssistantMessage(m.Text))
		case agent.ToolCalls:
			pendingIDs = pendingIDs[:0]
			calls := make([]openai.ChatCompletionMessageToolCallParam, 0, len(m.Invocations))
			for _, inv := range m.Invocations {
				id := "call_" + uuid.NewString()
				pendingIDs = append(pendingIDs, id)
				args := "{}"
				if inv.Args != nil {
					if data, err := json.Marshal(inv.Args); err == nil {
						args = string(data)
					}
				}
				calls = append(calls, openai.ChatCompletionMessageToolCallParam{
					ID: id,
					Function: openai.ChatCompletionMessageToolCallFunctionParam{
						Name:      inv.Name,
						Arguments: args,
					},
				})
			}
			assistant := openai.ChatCompletionAssistantMessageParam{ToolCalls: calls}
			out = append(out, openai.ChatCompletionMessageParamUnion{OfAssistant: &assistant})
		case agent.ToolResults:
			for i, res := range m.Results {
				id := ""
				if i < len(pendingIDs) {
					id = pendingIDs[i]
				}
				out = append(out, openai.ToolMessage(outcomeContent(res), id))
			}
		}
	}
	return out
}

func openaiTools(tools []*agent.Descriptor) []openai.ChatCompletionToolParam {
	out := make([]openai.ChatCompletionToolParam, 0, len(tools))
	for _, tool := range tools {
		fn := shared.FunctionDefinitionParam{
			Name:        tool.Name,
			Description: openai.String(tool.Description),
		}
		if len(tool.Parameters) > 0 {
			fn.Parameters = shared.FunctionParameters(tool.Parameters)
		}
		out = append(out, openai.ChatCompletionToolParam{Function: fn})
	}
	return out
}

func (p *OpenAIProvider) replyFromCompletion(resp *openai.ChatCompletion, toolsOffered bool) *agent.Reply {
	reply := &agent.Reply{}
	if resp == nil || len(resp.Choices) == 0 {
		return reply
	}
	choice := resp.Choices[0]
	reply.Text = choice.Message.Content
	for _, tc := range choice.Message.ToolCalls {
		if tc.Function.Name == "" {
			continue
		}
		if !toolsOffered {
			p.log.Warn("model emitted tool call %q with no tools offered, dropping", tc.Function.Name)
			continue
		}
		var args map[string]any
		if tc.Function.Arguments != "" {
			if err := json.Unmarshal([]byte(tc.Function.Arguments), &args); err != nil {
				p.log.Warn("tool call %q has undecodable arguments: %v", tc.Function.Name, err)
			}
		}
		reply.Invocations = append(reply.Invocations, agent.Invocation{
			Name: tc.Function.Name,
			Args: args,
		})
	}
	return reply
}

func classifyOpenAIError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode == 408 || apiErr.StatusCode == 429 || apiErr.StatusCode >= 500:
			return &agent.ProviderUnavailableError{Provider: "openai", Err: err}
		case apiErr.StatusCode >= 400:
			return &agent.ProviderRejectedError{Provider: "openai", Err: err}
		}
	}
	return &agent.ProviderUnavailableError{Provider: "openai", Err: err}
}
