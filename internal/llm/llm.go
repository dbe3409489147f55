// Package llm provides agent.Provider implementations backed by the
// Gemini, Anthropic and OpenAI SDKs, plus a factory that picks the
// adapter from configuration.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/codefionn/wayfinder/internal/agent"
	"github.com/codefionn/wayfinder/internal/config"
	"github.com/codefionn/wayfinder/internal/logger"
)

// Options carries the generation knobs shared by all adapters.
type Options struct {
	Model       string
	Temperature float64
	MaxTokens   int
	Logger      *logger.Logger
}

func (o *Options) logger() *logger.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return logger.Global()
}

// New builds the provider named by cfg.Provider, resolving the API key
// from the environment. Unknown provider names are an error listing the
// supported ones.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (agent.Provider, error) {
	name := config.CanonicalProviderName(cfg.Provider)

	apiKey := config.ResolveAPIKey(name)
	if apiKey == "" {
		hints := config.EnvVarHints(name)
		if len(hints) == 0 {
			return nil, fmt.Errorf("unknown provider %q (supported: google, anthropic, openai)", cfg.Provider)
		}
		return nil, fmt.Errorf("no API key for provider %q: set %s", name, strings.Join(hints, " or "))
	}

	opts := Options{
		Model:       cfg.Model,
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxTokens,
		Logger:      log,
	}

	switch name {
	case "google":
		return NewGoogleProvider(ctx, apiKey, opts)
	case "anthropic":
		return NewAnthropicProvider(apiKey, opts), nil
	case "openai":
		return NewOpenAIProvider(apiKey, opts), nil
	default:
		return nil, fmt.Errorf("unknown provider %q (supported: google, anthropic, openai)", cfg.Provider)
	}
}
