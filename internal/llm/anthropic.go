package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/google/uuid"

	"github.com/codefionn/wayfinder/internal/agent"
	"github.com/codefionn/wayfinder/internal/logger"
)

const (
	defaultAnthropicModel     = "claude-sonnet-4-20250514"
	defaultAnthropicMaxTokens = 4096
)

// AnthropicProvider talks to the Messages API through anthropic-sdk-go.
//
// The wire protocol pairs tool_use and tool_result blocks by ID, but the
// ledger identifies calls positionally. IDs are synthesized per request;
// they only have to be consistent between a call and its result within
// the same request body.
type AnthropicProvider struct {
	client      sdk.Client
	model       string
	temperature float64
	maxTokens   int
	log         *logger.Logger
}

// NewAnthropicProvider creates a Claude-backed provider.
func NewAnthropicProvider(apiKey string, opts Options) *AnthropicProvider {
	model := opts.Model
	if model == "" {
		model = defaultAnthropicModel
	}
	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultAnthropicMaxTokens
	}
	return &AnthropicProvider{
		client:      sdk.NewClient(option.WithAPIKey(apiKey)),
		model:       model,
		temperature: opts.Temperature,
		maxTokens:   maxTokens,
		log:         opts.logger().WithPrefix("llm/anthropic"),
	}
}

func (p *AnthropicProvider) Name() string { return "anthropic" }

func (p *AnthropicProvider) Generate(ctx context.Context, history []agent.Message, tools []*agent.Descriptor, instruction string) (*agent.Reply, error) {
	params := sdk.MessageNewParams{
		Model:     sdk.Model(p.model),
		MaxTokens: int64(p.maxTokens),
		Messages:  historyToAnthropic(history),
	}
	if instruction != "" {
		params.System = []sdk.TextBlockParam{{Text: instruction}}
	}
	if p.temperature > 0 {
		params.Temperature = sdk.Float(p.temperature)
	}
	if len(tools) > 0 {
		params.Tools = anthropicTools(tools)
	}

	p.log.Debug("request to %s: %d messages, ~%d tokens, %d tools",
		p.model, len(history), EstimateHistoryTokens(p.model, instruction, history), len(tools))
	msg, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return nil, classifyAnthropicError(err)
	}
	return p.replyFromMessage(msg, len(tools) > 0), nil
}

// historyToAnthropic maps the ledger onto Messages API turns. A tool-calls
// message becomes an assistant turn of tool_use blocks; the results message
// that follows it becomes a user turn of tool_result blocks reusing the
// same synthesized IDs.
func historyToAnthropic(history []agent.Message) []sdk.MessageParam {
	out := make([]sdk.MessageParam, 0, len(history))
	var pendingIDs []string
	for _, msg := range history {
		switch m := msg.(type) {
		case agent.UserInput:
			out = append(out, sdk.NewUserMessage(sdk.NewTextBlock(m.Text)))
		case agent.AssistantResponse:
			out = append(out, sdk.NewAssistantMessage(sdk.NewTextBlock(m.Text)))
		case agent.ToolCalls:
			pendingIDs = pendingIDs[:0]
			blocks := make([]sdk.ContentBlockParamUnion, 0, len(m.Invocations))
			for _, inv := range m.Invocations {
				id := "toolu_" + uuid.NewString()
				pendingIDs = append(pendingIDs, id)
				args := inv.Args
				if args == nil {
					args = map[string]any{}
				}
				blocks = append(blocks, sdk.NewToolUseBlock(id, args, inv.Name))
			}
			out = append(out, sdk.NewAssistantMessage(blocks...))
		case agent.ToolResults:
			blocks := make([]sdk.ContentBlockParamUnion, 0, len(m.Results))
			for i, res := range m.Results {
				id := ""
				if i < len(pendingIDs) {
					id = pendingIDs[i]
				}
				blocks = append(blocks, sdk.NewToolResultBlock(id, outcomeContent(res), res.Error != nil))
			}
			out = append(out, sdk.NewUserMessage(blocks...))
		}
	}
	return out
}

// outcomeContent renders a tool outcome as the text body of a tool_result
// block: the error string on failure, the JSON-encoded value on success.
func outcomeContent(res agent.Outcome) string {
	if res.Error != nil {
		return *res.Error
	}
	data, err := json.Marshal(res.Value)
	if err != nil {
		return fmt.Sprintf("%v", res.Value)
	}
	return string(data)
}

func anthropicTools(tools []*agent.Descriptor) []sdk.ToolUnionParam {
	out := make([]sdk.ToolUnionParam, 0, len(tools))
	for _, tool := range tools {
		schema := sdk.ToolInputSchemaParam{}
		if props, ok := tool.Parameters["properties"].(map[string]any); ok {
			schema.Properties = props
		}
		if req, ok := tool.Parameters["required"].([]string); ok {
			schema.Required = req
		} else if raw, ok := tool.Parameters["required"].([]any); ok {
			for _, r := range raw {
				if s, ok := r.(string); ok {
					schema.Required = append(schema.Required, s)
				}
			}
		}
		u := sdk.ToolUnionParamOfTool(schema, tool.Name)
		if tool.Description != "" {
			u.OfTool.Description = sdk.String(tool.Description)
		}
		out = append(out, u)
	}
	return out
}

func (p *AnthropicProvider) replyFromMessage(msg *sdk.Message, toolsOffered bool) *agent.Reply {
	reply := &agent.Reply{}
	if msg == nil {
		return reply
	}
	for _, block := range msg.Content {
		switch block.Type {
		case "text":
			reply.Text += block.Text
		case "tool_use":
			if !toolsOffered {
				p.log.Warn("model emitted tool_use %q with no tools offered, dropping", block.Name)
				continue
			}
			var args map[string]any
			if len(block.Input) > 0 {
				if err := json.Unmarshal(block.Input, &args); err != nil {
					p.log.Warn("tool_use %q has undecodable input: %v", block.Name, err)
				}
			}
			reply.Invocations = append(reply.Invocations, agent.Invocation{
				Name: block.Name,
				Args: args,
			})
		}
	}
	return reply
}

func classifyAnthropicError(err error) error {
	var apiErr *sdk.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode == 408 || apiErr.StatusCode == 429 || apiErr.StatusCode >= 500:
			return &agent.ProviderUnavailableError{Provider: "anthropic", Err: err}
		case apiErr.StatusCode >= 400:
			return &agent.ProviderRejectedError{Provider: "anthropic", Err: err}
		}
	}
	return &agent.ProviderUnavailableError{Provider: "anthropic", Err: err}
}
