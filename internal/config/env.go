package config

import (
	"os"
	"strings"
)

// providerEnvVars maps canonical provider names to the environment variables
// that can supply their API keys. Multiple variables allow aliases
// (e.g., GEMINI_API_KEY and GOOGLE_API_KEY).
var providerEnvVars = map[string][]string{
	"google":    {"GEMINI_API_KEY", "GOOGLE_API_KEY", "GOOGLE_GENAI_API_KEY"},
	"anthropic": {"ANTHROPIC_API_KEY"},
	"openai":    {"OPENAI_API_KEY"},
}

// CanonicalProviderName normalizes provider aliases so they share the same
// environment-variable mapping.
func CanonicalProviderName(name string) string {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "google", "googleai", "gemini":
		return "google"
	case "claude":
		return "anthropic"
	default:
		return strings.ToLower(strings.TrimSpace(name))
	}
}

// ResolveAPIKey returns the API key for a provider from the environment.
// The returned value is trimmed; empty string signals that no key is
// available.
func ResolveAPIKey(providerName string) string {
	canonical := CanonicalProviderName(providerName)
	for _, envVar := range providerEnvVars[canonical] {
		if value := strings.TrimSpace(os.Getenv(envVar)); value != "" {
			return value
		}
	}
	return ""
}

// EnvVarHints returns the known environment variables for a provider. This
// is useful for contextual help when no key is set.
func EnvVarHints(providerName string) []string {
	hints := providerEnvVars[CanonicalProviderName(providerName)]
	out := make([]string, len(hints))
	copy(out, hints)
	return out
}
