package llm

import (
	"context"

	"smartparking/internal/config"
)

// Provider generates a completion for a prompt. Implementations wrap one
// concrete model backend; callers treat failures as a signal to fall back
// to their deterministic path, never as a fatal error.
type Provider interface {
	GenerateCompletion(ctx context.Context, prompt string) (string, error)
}

// NewProvider builds the configured backend, or nil when no backend is
// configured. A nil provider is valid: every caller has a rule-based
// fallback.
func NewProvider(cfg *config.Config) Provider {
	switch cfg.LLMProvider {
	case "gemini":
		if cfg.GeminiAPIKey != "" {
			return NewGeminiProvider(cfg.GeminiAPIKey, cfg.GeminiModel)
		}
	default:
		if cfg.OpenAIAPIKey != "" {
			return NewOpenAIProvider(cfg.OpenAIAPIKey, cfg.OpenAIModel)
		}
	}
	return nil
}
