package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/edupay/tuition-system/internal/api"
	"github.com/edupay/tuition-system/internal/api/handler"
	"github.com/edupay/tuition-system/internal/infrastructure/db/memory"
	mongostore "github.com/edupay/tuition-system/internal/infrastructure/db/mongo"
	redisstore "github.com/edupay/tuition-system/internal/infrastructure/db/redis"
	"github.com/edupay/tuition-system/internal/infrastructure/gateway"
	"github.com/edupay/tuition-system/internal/pkg/config"
	"github.com/edupay/tuition-system/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}
	if cfg.Paystack.SecretKey == "" || cfg.Paystack.WebhookSecret == "" {
		log.Fatal().Msg("PAYSTACK_SECRET_KEY and PAYSTACK_WEBHOOK_SECRET are required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps := api.Dependencies{
		Checks: map[string]handler.ReadinessCheck{},
	}

	switch cfg.StoreBackend {
	case "mongo":
		client, db, err := mongostore.Connect(ctx, mongostore.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("mongo connection failed")
		}
		defer func() {
			if err := client.Disconnect(context.Background()); err != nil {
				log.Warn().Err(err).Msg("mongo disconnect failed")
			}
		}()
		if err := mongostore.EnsureIndexes(ctx, db); err != nil {
			log.Fatal().Err(err).Msg("mongo index creation failed")
		}
		deps.Schools = mongostore.NewSchoolRepository(db)
		deps.Students = mongostore.NewStudentRepository(db)
		deps.Checks["mongo"] = func(ctx context.Context) error {
			return client.Ping(ctx, nil)
		}
		log.Info().Str("database", cfg.Mongo.Database).Msg("using mongo store backend")
	case "memory":
		deps.Schools = memory.NewSchoolRepository()
		deps.Students = memory.NewStudentRepository()
		log.Info().Msg("using in-memory store backend")
	default:
		log.Fatal().Str("backend", cfg.StoreBackend).Msg("unknown store backend")
	}

	if cfg.Redis.Addr != "" {
		rdb, err := redisstore.Connect(ctx, redisstore.Config{
			Addr: cfg.Redis.Addr,
			DB:   cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("redis connection failed")
		}
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Warn().Err(err).Msg("redis close failed")
			}
		}()
		deps.Dedup = redisstore.NewDeliveryDedup(rdb)
		deps.Checks["redis"] = func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}
		log.Info().Str("addr", cfg.Redis.Addr).Msg("webhook delivery dedup enabled")
	}

	deps.Gateway = gateway.NewClient(cfg.Paystack.SecretKey, cfg.Paystack.BaseURL, log)

	e := api.NewRouter(cfg, deps, log)

	go func() {
		log.Info().Str("port", cfg.Port).Msg("starting http server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}
