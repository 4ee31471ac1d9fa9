package config

import (
	"context"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/sanibot/pkg/log"
)

// GenerationConfig carries sampling parameters shared by all generators.
type GenerationConfig struct {
	Temperature float64       `env:"SANI_TEMPERATURE" envDefault:"0.7"`
	TopP        float64       `env:"SANI_TOP_P" envDefault:"0.9"`
	MaxTokens   int           `env:"SANI_MAX_TOKENS" envDefault:"500"`
	Timeout     time.Duration `env:"SANI_GENERATION_TIMEOUT" envDefault:"60s"`
}

func NewGenerationConfig(ctx context.Context) *GenerationConfig {
	c := &GenerationConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Generation config")
	}
	return c
}
