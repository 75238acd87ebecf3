package llm

import (
	"context"
	"fmt"

	"github.com/sandevgo/wayfarer/internal/config"
	"github.com/sandevgo/wayfarer/internal/core"
	"github.com/sandevgo/wayfarer/pkg/log"
)

// NewProvider creates the appropriate AIProvider based on configuration.
func NewProvider(ctx context.Context, cfg *config.AppConfig) (core.AIProvider, error) {
	log.FromCtx(ctx).Info().
		Str("provider", cfg.LLMProvider).
		Str("model", cfg.ChatModel).
		Msg("starting llm provider")

	switch cfg.LLMProvider {
	case "openai":
		return NewOpenAI(cfg.OpenAIAPIKey, cfg.ChatModel), nil
	case "openrouter":
		return NewOpenRouter(cfg.OpenRouterAPIKey, cfg.ChatModel), nil
	case "custom":
		return NewCustomOpenAI(cfg.CustomOpenAIBaseURL, cfg.CustomOpenAIAPIKey, cfg.ChatModel), nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.LLMProvider)
	}
}
