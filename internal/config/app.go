package config

import (
	"context"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/sanibot/pkg/log"
)

type AppConfig struct {
	RuntimePath string `env:"SANI_RUNTIME_PATH" envDefault:".sanibot"`
	// Which answer generator backs the engine
	Generator string `env:"SANI_GENERATOR" envDefault:"ollama"`

	// Transport Flags
	EnableTelegram bool `env:"ENABLE_TELEGRAM" envDefault:"false"`
	EnableHTTP     bool `env:"ENABLE_HTTP" envDefault:"true"`
	EnableCLI      bool `env:"ENABLE_CLI" envDefault:"false"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	return c
}

func (c AppConfig) GetRuntimePath() string {
	return underHome(c.RuntimePath)
}

func (c AppConfig) GetDatabasePath() string {
	return filepath.Join(c.GetRuntimePath(), "sanibot.db")
}

func (c AppConfig) GetDatasetPath() string {
	return filepath.Join(c.GetRuntimePath(), "dataset.json")
}
