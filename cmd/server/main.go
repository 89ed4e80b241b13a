package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Themiya19/Quotation-System-sub001/internal/api"
	"github.com/Themiya19/Quotation-System-sub001/internal/core/domain"
	"github.com/Themiya19/Quotation-System-sub001/internal/infrastructure/config"
	mongodb "github.com/Themiya19/Quotation-System-sub001/internal/infrastructure/db/mongo"
	redisdb "github.com/Themiya19/Quotation-System-sub001/internal/infrastructure/db/redis"
	"github.com/Themiya19/Quotation-System-sub001/internal/infrastructure/watch"
	"github.com/Themiya19/Quotation-System-sub001/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Storage connections ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(shutdownCtx)
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	// --- Services and seed data ---
	svc := api.NewServices(cfg, db, rdb, log)

	if err := bootstrap(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("bootstrap failed")
	}

	// --- Role drift watcher ---
	drift := watch.NewDrift(svc.Sessions, cfg.Session.DriftInterval, log)
	drift.Start(ctx)
	defer drift.Stop()

	// --- HTTP server ---
	e, err := api.NewRouter(cfg, svc, db, rdb, log)
	if err != nil {
		log.Fatal().Err(err).Msg("router setup failed")
	}

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("quotation service started")

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
}

// bootstrap creates indexes and seeds the default role and feature tables.
// Idempotent: seeding only writes into empty namespaces.
func bootstrap(ctx context.Context, db *mongo.Database) error {
	if err := mongodb.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := mongodb.NewQuotationRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}

	roles := mongodb.NewRoleRepository(db)
	features := mongodb.NewFeatureRepository(db)
	for _, ns := range []string{domain.NamespaceInternal, domain.NamespaceExternal} {
		if err := roles.EnsureDefaults(ctx, ns); err != nil {
			return err
		}
		if err := features.EnsureDefaults(ctx, ns); err != nil {
			return err
		}
	}
	return nil
}
