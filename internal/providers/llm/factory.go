package llm

import (
	"context"
	"fmt"

	"github.com/sandevgo/sanibot/internal/config"
	"github.com/sandevgo/sanibot/internal/core"
	"github.com/sandevgo/sanibot/pkg/log"
)

// NewGenerator creates the answer generator named by configuration.
// Provider-specific configuration is parsed only for the selected backend.
func NewGenerator(ctx context.Context, cfg *config.AppConfig, gen *config.GenerationConfig) (core.Generator, error) {
	log.FromCtx(ctx).Info().
		Str("generator", cfg.Generator).
		Msg("starting answer generator")

	switch cfg.Generator {
	case "ollama":
		return NewOllama(config.NewOllamaConfig(ctx), gen), nil
	case "openai":
		return NewOpenAI(config.NewOpenAIConfig(ctx), gen), nil
	case "gemini":
		return NewGemini(ctx, config.NewGeminiConfig(ctx), gen)
	default:
		return nil, fmt.Errorf("unknown generator: %s", cfg.Generator)
	}
}
