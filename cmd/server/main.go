// @title                       Furniture Storefront API
// @version                     1.0
// @description                 Catalog, cart and checkout for store and restaurant buyers.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/furniture-store/storefront/internal/api"
	"github.com/furniture-store/storefront/internal/core/ports"
	"github.com/furniture-store/storefront/internal/core/service"
	mongostore "github.com/furniture-store/storefront/internal/infrastructure/db/mongo"
	redisstore "github.com/furniture-store/storefront/internal/infrastructure/db/redis"
	"github.com/furniture-store/storefront/internal/infrastructure/db/sqlite"
	"github.com/furniture-store/storefront/internal/infrastructure/githubstore"
	"github.com/furniture-store/storefront/internal/infrastructure/queue"
	"github.com/furniture-store/storefront/internal/pkg/config"
	"github.com/furniture-store/storefront/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := logger.New(logger.Options{})
		bootLog.Fatal().Err(err).Msg("failed to load configuration")
	}
	log := logger.New(logger.Options{Level: cfg.LogLevel, Pretty: cfg.IsDevelopment(), Service: "storefront"})

	// --- Fallback tier ---
	var (
		local       ports.FallbackStore
		idempotency ports.IdempotencyStore
		closers     []func()
	)
	switch cfg.FallbackDriver {
	case config.FallbackSQLite:
		kv, err := sqlite.Open(cfg.SQLite.Path)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to open sqlite fallback")
		}
		local = kv
		closers = append(closers, func() { _ = kv.Close() })
		log.Info().Str("path", cfg.SQLite.Path).Msg("sqlite fallback ready")
	default:
		rdb, err := redisstore.Connect(ctx, redisstore.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect redis")
		}
		local = redisstore.NewKVStore(rdb)
		idempotency = redisstore.NewIdempotencyStore(rdb)
		closers = append(closers, func() { _ = rdb.Close() })
		log.Info().Str("addr", cfg.Redis.Addr).Msg("redis fallback ready")
	}

	// --- Remote tier ---
	var (
		remote ports.DocumentStore
		tokens service.TokenConfigurer
	)
	switch cfg.RemoteDriver {
	case config.RemoteMongo:
		docs, err := mongostore.Open(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database, Collection: cfg.Mongo.Collection})
		if err != nil {
			// the fallback tier serves until the remote comes back
			log.Warn().Err(err).Msg("mongo unavailable, running on fallback only")
			break
		}
		remote = docs
		closers = append(closers, func() { _ = docs.Close(context.Background()) })
	default:
		gh, err := githubstore.New(githubstore.Config{
			Token:   cfg.GitHub.Token,
			Owner:   cfg.GitHub.Owner,
			Repo:    cfg.GitHub.Repo,
			Branch:  cfg.GitHub.Branch,
			BaseURL: cfg.GitHub.BaseURL,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("invalid github configuration")
		}
		remote, tokens = gh, gh
	}

	// --- Mirror workers ---
	mirror := queue.NewDispatcher(cfg.MirrorWorkers, local, log)
	mirror.Start(ctx)

	// --- Services ---
	store := service.NewStore(service.StoreConfig{Remote: remote, Local: local, Mirror: mirror, DataDir: cfg.DataDir}, log)
	catalog := service.NewCatalogService(store, log)
	remoteSettings := service.NewRemoteSettings(tokens, local, catalog, log)
	if err := remoteSettings.Restore(ctx); err != nil {
		log.Warn().Err(err).Msg("could not restore remote token")
	}

	auth := service.NewAuthService(store, service.NewSessionStore(local), cfg.JWTSecret, cfg.TokenTTL, log)
	carts := service.NewCartService(catalog, log)
	checkout := service.NewCheckoutService(carts, catalog, idempotency, cfg.WhatsAppNumber, log)

	if err := catalog.Load(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to load catalog")
	}
	auth.InitializeDefaultUsers(ctx)

	e := api.NewRouter(api.Deps{
		Auth:      auth,
		Catalog:   catalog,
		Carts:     carts,
		Checkout:  checkout,
		Dashboard: service.NewDashboardService(catalog),
		Remote:    remoteSettings,
		Tiers:     store,
		JWTSecret: cfg.JWTSecret,
		Logger:    log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Msg("HTTP server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	shutdown(e.Shutdown, log)
	cancel()
	for _, c := range closers {
		c()
	}
	log.Info().Msg("stopped")
}

func shutdown(stop func(context.Context) error, log zerolog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := stop(ctx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown")
	}
}
