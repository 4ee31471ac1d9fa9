package config

import (
	"context"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/sanibot/pkg/log"
)

type EngineConfig struct {
	// Dataset path override; empty means <runtime>/dataset.json
	DatasetPath  string `env:"SANI_DATASET_PATH"`
	WatchDataset bool   `env:"SANI_WATCH_DATASET" envDefault:"false"`

	// Ranking backend: fuzzy or tfidf
	Ranker string `env:"SANI_RANKER" envDefault:"fuzzy"`

	// Conversation memory
	MemoryWindow int           `env:"SANI_MEMORY_WINDOW" envDefault:"5"`
	SessionTTL   time.Duration `env:"SANI_SESSION_TTL" envDefault:"30m"`

	// Response cache
	CacheCapacity int           `env:"SANI_CACHE_SIZE" envDefault:"100"`
	CacheTTL      time.Duration `env:"SANI_CACHE_TTL" envDefault:"24h"`
	FlushInterval time.Duration `env:"SANI_FLUSH_INTERVAL" envDefault:"5m"`

	// Prompt assembly
	TokenBudget int `env:"SANI_TOKEN_BUDGET" envDefault:"1800"`

	// Suggestions returned per answer
	SuggestionLimit int `env:"SANI_SUGGESTION_LIMIT" envDefault:"3"`
}

func NewEngineConfig(ctx context.Context) *EngineConfig {
	c := &EngineConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Engine config")
	}
	return c
}
