package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/sandevgo/sanibot/internal/catalog"
	"github.com/sandevgo/sanibot/internal/config"
	"github.com/sandevgo/sanibot/internal/core"
	"github.com/sandevgo/sanibot/internal/engine"
	"github.com/sandevgo/sanibot/internal/engine/cache"
	"github.com/sandevgo/sanibot/internal/engine/intent"
	"github.com/sandevgo/sanibot/internal/engine/memory"
	"github.com/sandevgo/sanibot/internal/engine/prompt"
	"github.com/sandevgo/sanibot/internal/engine/rank"
	"github.com/sandevgo/sanibot/internal/providers/llm"
	"github.com/sandevgo/sanibot/internal/service/analytics"
	"github.com/sandevgo/sanibot/internal/service/command"
	"github.com/sandevgo/sanibot/internal/service/state"
	"github.com/sandevgo/sanibot/internal/storage/sqlite"
	"github.com/sandevgo/sanibot/internal/transport/cli"
	sanihttp "github.com/sandevgo/sanibot/internal/transport/http"
	"github.com/sandevgo/sanibot/internal/transport/telegram"
	"github.com/sandevgo/sanibot/pkg/log"
	"github.com/sandevgo/sanibot/pkg/srv"
)

// app holds the wired assistant plus the background services behind it, so
// one-shot commands can reach the engine without starting any transport.
type app struct {
	cfg      *config.AppConfig
	engine   *engine.Engine
	commands core.CmdRouter
	usage    *analytics.Service
	services []srv.Service
}

// NewServices wires the whole assistant and returns everything start runs.
func NewServices(ctx context.Context) []srv.Service {
	logger := log.FromCtx(ctx)
	a := newApp(ctx)

	transports, err := initTransports(ctx, a)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize transports")
	}

	// Transports go first so shutdown stops incoming traffic before the
	// flushers and the database wind down behind them.
	return append(transports, a.services...)
}

func newApp(ctx context.Context) *app {
	logger := log.FromCtx(ctx)

	// init env
	if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
		logger.Fatal().Err(err).Msg("failed to init env")
	}

	// 1. Configuration
	appCfg := config.NewAppConfig(ctx)
	engCfg := config.NewEngineConfig(ctx)

	// 2. Storage
	db, err := sqlite.NewDB(ctx, appCfg.GetDatabasePath())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize storage")
	}

	// 3. Facility catalog
	cat, err := catalog.Load(datasetPath(appCfg, engCfg))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load facility dataset")
	}

	// 4. Answer generator
	generator, err := llm.NewGenerator(ctx, appCfg, config.NewGenerationConfig(ctx))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize answer generator")
	}

	// 5. Conversation memory
	sessions := memory.NewSessions(engCfg.MemoryWindow, engCfg.SessionTTL)

	// 6. Response cache
	respCache := cache.New(ctx, engCfg.CacheCapacity, engCfg.CacheTTL, sqlite.NewCacheRepo(db))
	cacheFlusher := cache.NewFlusher(respCache)
	cacheFlusher.Interval = engCfg.FlushInterval

	// 7. Usage analytics
	usage := analytics.NewService(sqlite.NewInteractionRepo(db))
	usageFlusher := analytics.NewFlusher(usage)
	usageFlusher.Interval = engCfg.FlushInterval

	// 8. Ranking backends; the configured one goes first and starts active
	rankers := []rank.Ranker{rank.NewFuzzy(cat), rank.NewTFIDF(cat)}
	if engCfg.Ranker == "tfidf" {
		rankers[0], rankers[1] = rankers[1], rankers[0]
	}

	// 9. Engine
	eng := engine.New(
		engCfg,
		cat,
		intent.NewClassifier(),
		sessions,
		respCache,
		prompt.NewBuilder(engCfg.TokenBudget),
		generator,
		usage,
		rankers...,
	)

	// 10. Slash commands shared by Telegram and the CLI
	commands := command.New(command.NewCommands(state.NewGlobalState(eng), usage, respCache, sessions, eng))

	services := []srv.Service{
		memory.NewJanitor(sessions),
		cacheFlusher,
		usageFlusher,
	}
	if engCfg.WatchDataset {
		services = append(services, catalog.NewWatcher(cat))
	}
	if closer, ok := generator.(interface{ Close() error }); ok {
		services = append(services, srv.NewCleanup(closer.Close))
	}
	// The database closes last so the final flushes still have a live
	// connection.
	services = append(services, srv.NewCleanup(db.Close))

	return &app{
		cfg:      appCfg,
		engine:   eng,
		commands: commands,
		usage:    usage,
		services: services,
	}
}

// close runs the shutdown hooks in order, flushing whatever the run produced.
func (a *app) close(ctx context.Context) {
	logger := log.FromCtx(ctx)
	for _, s := range a.services {
		if err := s.Shutdown(ctx); err != nil {
			logger.Error().Err(err).Msgf("%T failed to shutdown", s)
		}
	}
}

// datasetPath prefers the explicit override, then the runtime default.
func datasetPath(appCfg *config.AppConfig, engCfg *config.EngineConfig) string {
	if engCfg.DatasetPath != "" {
		return engCfg.DatasetPath
	}
	return appCfg.GetDatasetPath()
}

func initTransports(ctx context.Context, a *app) ([]srv.Service, error) {
	var services []srv.Service

	if a.cfg.EnableHTTP {
		services = append(services, sanihttp.NewServer(ctx, config.NewHTTPConfig(ctx), a.engine, a.usage))
	}

	if a.cfg.EnableTelegram {
		bot, err := telegram.NewBot(ctx, config.NewTelegramConfig(ctx), a.engine, a.commands)
		if err != nil {
			return nil, err
		}
		services = append(services, bot)
	}

	if a.cfg.EnableCLI {
		rl, err := cli.NewReadLine(a.engine, a.commands, a.cfg)
		if err != nil {
			return nil, err
		}
		services = append(services, rl)
	}

	return services, nil
}

func initEnv(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)
	envFile := filepath.Join(runtimePath, ".env")

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}
