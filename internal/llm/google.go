package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"google.golang.org/genai"

	"github.com/codefionn/wayfinder/internal/agent"
	"github.com/codefionn/wayfinder/internal/logger"
)

const defaultGoogleModel = "gemini-2.5-flash"

// GoogleProvider talks to the Gemini API through google.golang.org/genai.
//
// Gemini attaches a thought signature to function-call parts when thinking
// is enabled. The signature must be echoed back verbatim on subsequent
// requests or the model loses its reasoning chain, so it rides along on
// agent.Invocation.ContinuationToken and is restored during conversion.
type GoogleProvider struct {
	client      *genai.Client
	model       string
	temperature float64
	maxTokens   int
	log         *logger.Logger
}

// NewGoogleProvider creates a Gemini-backed provider.
func NewGoogleProvider(ctx context.Context, apiKey string, opts Options) (*GoogleProvider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	model := opts.Model
	if model == "" {
		model = defaultGoogleModel
	}
	return &GoogleProvider{
		client:      client,
		model:       model,
		temperature: opts.Temperature,
		maxTokens:   opts.MaxTokens,
		log:         opts.logger().WithPrefix("llm/google"),
	}, nil
}

func (p *GoogleProvider) Name() string { return "google" }

// Generate sends the conversation to Gemini and translates the response.
// A MALFORMED_FUNCTION_CALL finish reason is retried exactly once before
// being surfaced as a ProviderUnavailableError.
func (p *GoogleProvider) Generate(ctx context.Context, history []agent.Message, tools []*agent.Descriptor, instruction string) (*agent.Reply, error) {
	contents := historyToGenAI(history)
	cfg := p.generateConfig(tools, instruction)
	p.log.Debug("request to %s: %d messages, ~%d tokens, %d tools",
		p.model, len(history), EstimateHistoryTokens(p.model, instruction, history), len(tools))

	resp, err := p.client.Models.GenerateContent(ctx, p.model, contents, cfg)
	if err != nil {
		return nil, classifyGoogleError(err)
	}

	if finishReason(resp) == genai.FinishReasonMalformedFunctionCall {
		p.log.Warn("malformed function call from model %s, retrying once", p.model)
		resp, err = p.client.Models.GenerateContent(ctx, p.model, contents, cfg)
		if err != nil {
			return nil, classifyGoogleError(err)
		}
		if finishReason(resp) == genai.FinishReasonMalformedFunctionCall {
			return nil, &agent.ProviderUnavailableError{
				Provider: "google",
				Err:      fmt.Errorf("malformed function call persisted after retry"),
			}
		}
	}

	return p.replyFromResponse(resp, len(tools) > 0), nil
}

func (p *GoogleProvider) generateConfig(tools []*agent.Descriptor, instruction string) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{}
	if instruction != "" {
		cfg.SystemInstruction = genai.NewContentFromText(instruction, genai.RoleUser)
	}
	if p.temperature > 0 {
		t := float32(p.temperature)
		cfg.Temperature = &t
	}
	if p.maxTokens > 0 {
		cfg.MaxOutputTokens = int32(p.maxTokens)
	}
	if len(tools) > 0 {
		decls := make([]*genai.FunctionDeclaration, 0, len(tools))
		for _, tool := range tools {
			decls = append(decls, &genai.FunctionDeclaration{
				Name:                 tool.Name,
				Description:          tool.Description,
				ParametersJsonSchema: tool.Parameters,
			})
		}
		cfg.Tools = []*genai.Tool{{FunctionDeclarations: decls}}
		cfg.ToolConfig = &genai.ToolConfig{
			FunctionCallingConfig: &genai.FunctionCallingConfig{
				Mode: genai.FunctionCallingConfigModeAuto,
			},
		}
	}
	return cfg
}

// historyToGenAI maps the ledger onto Gemini contents. Tool calls become
// model-role function-call parts carrying their thought signatures, tool
// results become user-role function responses.
func historyToGenAI(history []agent.Message) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history))
	for _, msg := range history {
		switch m := msg.(type) {
		case agent.UserInput:
			contents = append(contents, genai.NewContentFromText(m.Text, genai.RoleUser))
		case agent.AssistantResponse:
			contents = append(contents, genai.NewContentFromText(m.Text, genai.RoleModel))
		case agent.ToolCalls:
			parts := make([]*genai.Part, 0, len(m.Invocations))
			for _, inv := range m.Invocations {
				part := genai.NewPartFromFunctionCall(inv.Name, inv.Args)
				if len(inv.ContinuationToken) > 0 {
					part.ThoughtSignature = inv.ContinuationToken
				}
				parts = append(parts, part)
			}
			contents = append(contents, genai.NewContentFromParts(parts, genai.RoleModel))
		case agent.ToolResults:
			parts := make([]*genai.Part, 0, len(m.Results))
			for _, res := range m.Results {
				payload := map[string]any{}
				if res.Error != nil {
					payload["error"] = *res.Error
				} else {
					payload["output"] = res.Value
				}
				parts = append(parts, genai.NewPartFromFunctionResponse(res.Name, payload))
			}
			contents = append(contents, genai.NewContentFromParts(parts, genai.RoleUser))
		}
	}
	return contents
}

func (p *GoogleProvider) replyFromResponse(resp *genai.GenerateContentResponse, toolsOffered bool) *agent.Reply {
	reply := &agent.Reply{}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return reply
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if part == nil {
			continue
		}
		if part.Thought {
			continue
		}
		if part.FunctionCall != nil {
			if !toolsOffered {
				p.log.Warn("model emitted function call %q with no tools offered, dropping", part.FunctionCall.Name)
				continue
			}
			inv := agent.Invocation{
				Name: part.FunctionCall.Name,
				Args: part.FunctionCall.Args,
			}
			if len(part.ThoughtSignature) > 0 {
				inv.ContinuationToken = append([]byte(nil), part.ThoughtSignature...)
				p.log.Debug("function call %q carries thought signature %016x (%d bytes)",
					inv.Name, xxhash.Sum64(inv.ContinuationToken), len(inv.ContinuationToken))
			}
			reply.Invocations = append(reply.Invocations, inv)
			continue
		}
		if part.Text != "" {
			reply.Text += part.Text
		}
	}
	return reply
}

func finishReason(resp *genai.GenerateContentResponse) genai.FinishReason {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	return resp.Candidates[0].FinishReason
}

// classifyGoogleError sorts SDK failures into the retryable and
// non-retryable halves of the provider error contract. Rate limits and
// server errors are transient, other HTTP 4xx responses are not.
func classifyGoogleError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Code == 429 || apiErr.Code >= 500 {
			return &agent.ProviderUnavailableError{Provider: "google", Err: err}
		}
		if apiErr.Code >= 400 {
			return &agent.ProviderRejectedError{Provider: "google", Err: err}
		}
	}
	return &agent.ProviderUnavailableError{Provider: "google", Err: err}
}
