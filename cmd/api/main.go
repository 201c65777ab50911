// Command api serves the trust score and roadmap engine over HTTP.
//
//	@title						Financial Literacy Trust Engine API
//	@version					1.0
//	@description				Trust scores and financial roadmaps derived from a user's question history.
//	@BasePath					/
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/arthsaathi/finlit-engine/internal/api"
	"github.com/arthsaathi/finlit-engine/internal/core/ports"
	"github.com/arthsaathi/finlit-engine/internal/core/rules"
	"github.com/arthsaathi/finlit-engine/internal/core/service"
	"github.com/arthsaathi/finlit-engine/internal/infrastructure/db/memory"
	"github.com/arthsaathi/finlit-engine/internal/infrastructure/db/mongo"
	"github.com/arthsaathi/finlit-engine/internal/infrastructure/db/redis"
	"github.com/arthsaathi/finlit-engine/internal/infrastructure/http/handlers"
	"github.com/arthsaathi/finlit-engine/internal/pkg/config"
	"github.com/arthsaathi/finlit-engine/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "finlit-engine",
	})

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Str("storage", cfg.StorageBackend).
		Bool("auth", cfg.AuthEnabled()).
		Msg("starting finlit engine")

	readiness := handlers.NewHealthDependenciesHandler(log)

	store, closeStore, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open storage")
	}
	defer closeStore()
	readiness.Add("storage", store)

	var dedup service.DedupChecker
	if cfg.Redis.Addr != "" {
		rdb, err := redis.Connect(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer func() {
			if cerr := rdb.Close(); cerr != nil {
				log.Error().Err(cerr).Msg("error closing redis")
			}
		}()
		dedup = redis.NewDedupChecker(rdb, cfg.Query.DedupTTL)
		readiness.Add("redis", handlers.RedisPinger(rdb))
	} else {
		log.Info().Msg("REDIS_ADDR not set, duplicate query guard disabled")
	}

	trust := service.NewTrustService(store, store, log)
	roadmaps := service.NewRoadmapService(store, store, rules.NewDefaultEngine(), log)
	queries := service.NewQueryService(store, store, trust, dedup, log)

	e := api.NewRouter(api.Dependencies{
		Trust:          trust,
		Roadmaps:       roadmaps,
		Queries:        queries,
		Readiness:      readiness,
		JWTSecret:      cfg.JWTSecret,
		RequestTimeout: cfg.RequestTimeout,
		Log:            log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()
	log.Info().Str("port", cfg.Port).Msg("http server listening")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// openStorage builds the configured ports.Storage and a function releasing it.
func openStorage(ctx context.Context, cfg *config.Config, log zerolog.Logger) (ports.Storage, func(), error) {
	if cfg.StorageBackend != config.StorageMongo {
		log.Warn().Msg("using in-memory storage, data will not survive a restart")
		return memory.NewStore(cfg.Query.HistoryLimit), func() {}, nil
	}

	client, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		return nil, nil, err
	}

	store := mongo.NewStore(client, db, cfg.Query.HistoryLimit, log)
	if err := store.EnsureIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to ensure mongo indexes")
	}

	closeFn := func() {
		if err := store.Close(context.Background()); err != nil {
			log.Error().Err(err).Msg("error closing mongo")
		}
	}
	return store, closeFn, nil
}
