package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/omnicorp/fieldops-api/internal/api"
	"github.com/omnicorp/fieldops-api/internal/core/service"
	"github.com/omnicorp/fieldops-api/internal/infrastructure/ai"
	"github.com/omnicorp/fieldops-api/internal/infrastructure/config"
	mongodb "github.com/omnicorp/fieldops-api/internal/infrastructure/db/mongo"
	redisdb "github.com/omnicorp/fieldops-api/internal/infrastructure/db/redis"
	"github.com/omnicorp/fieldops-api/internal/infrastructure/queue"
	"github.com/omnicorp/fieldops-api/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})
	log.Info().Str("env", cfg.Env).Str("port", cfg.Port).Msg("starting fieldops api")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	// --- Repositories and stores ---
	identityRepo := mongodb.NewIdentityRepository(db)
	orderRepo := mongodb.NewOrderRepository(db)
	auditRepo := mongodb.NewAuditRepository(db)
	sessions := redisdb.NewSessionStore(rdb)
	schedule := redisdb.NewScheduleStore(rdb)

	if err := identityRepo.EnsureIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to ensure user indexes")
	}
	if err := orderRepo.EnsureIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to ensure order indexes")
	}

	// --- Audit pipeline ---
	dispatcher := queue.NewDispatcher(0, auditRepo, log)
	dispatcher.Start(ctx)

	// --- Services ---
	identitySvc := service.NewIdentityService(
		identityRepo,
		sessions,
		service.MasterCredential{Email: cfg.Auth.MasterEmail, Secret: cfg.Auth.MasterSecret},
		service.IdentityOptions{EnforceUniqueEmail: cfg.Auth.EnforceUniqueEmail},
		cfg.JWTSecret,
		24*time.Hour,
		log,
	)
	orderSvc := service.NewOrderService(
		orderRepo,
		schedule,
		dispatcher,
		service.OrderOptions{StrictTransitions: cfg.Orders.StrictTransitions},
		log,
	)
	gateway := ai.NewGeminiGateway(cfg.Gemini.APIKey, cfg.Gemini.Model)
	assistantSvc := service.NewAssistantService(gateway, orderRepo, log)

	if err := identitySvc.EnsureSeedUsers(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to seed default users")
	}

	e := api.NewRouter(api.Dependencies{
		Identity:  identitySvc,
		Orders:    orderSvc,
		Assistant: assistantSvc,
		DB:        db,
		Redis:     rdb,
		JWTSecret: cfg.JWTSecret,
		Logger:    log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
