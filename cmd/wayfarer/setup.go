package main

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/sandevgo/wayfarer/internal/config"
	"github.com/sandevgo/wayfarer/internal/providers/embed"
	"github.com/sandevgo/wayfarer/internal/providers/llm"
	"github.com/sandevgo/wayfarer/internal/providers/vecstore"
	"github.com/sandevgo/wayfarer/internal/service/conversation"
	"github.com/sandevgo/wayfarer/internal/service/memory"
	"github.com/sandevgo/wayfarer/internal/service/retrieval"
	"github.com/sandevgo/wayfarer/internal/storage/sqlite"
	"github.com/sandevgo/wayfarer/internal/transport/httpapi"
	"github.com/sandevgo/wayfarer/pkg/log"
	"github.com/sandevgo/wayfarer/pkg/srv"
)

func NewServices(ctx context.Context) []srv.Service {
	logger := log.FromCtx(ctx)
	services := make([]srv.Service, 0)

	// init env
	if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
		logger.Fatal().Err(err).Msg("failed to init env")
	}

	// 1. Configuration
	appCfg := config.NewAppConfig(ctx)

	// 2. Storage
	db, trips, convs, err := initStorage(ctx, appCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize storage")
	}
	services = append(services, srv.NewCleanup(db.Close))

	// 3. AI Provider
	aiProvider, err := llm.NewProvider(ctx, appCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize LLM provider")
	}

	// 4. Embedder & Vector Index
	embedder := embed.NewOpenAI(config.NewEmbeddingConfig(ctx))
	index, err := vecstore.NewIndex(ctx, appCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize vector index")
	}

	// 5. Pipeline services
	ret := retrieval.NewService(embedder, index, appCfg.RAGSimilarityThreshold)
	mem := memory.NewManager(appCfg, aiProvider)
	turns := conversation.NewService(appCfg, aiProvider, mem, ret)

	// 6. Transport
	api := httpapi.NewServer(appCfg.ListenAddr, httpapi.NewHandlers(trips, convs, turns))
	services = append(services, api)

	return services
}

func initStorage(ctx context.Context, cfg *config.AppConfig) (*sql.DB, *sqlite.TripsRepo, *sqlite.ConversationsRepo, error) {
	db, err := sqlite.NewDB(ctx, cfg.GetDatabasePath())
	if err != nil {
		return nil, nil, nil, err
	}
	return db, sqlite.NewTripsRepo(db), sqlite.NewConversationsRepo(db), nil
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
