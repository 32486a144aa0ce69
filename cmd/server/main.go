package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogapp "github.com/esimhub/backend/internal/application/catalog"
	orderingapp "github.com/esimhub/backend/internal/application/ordering"
	tokenapp "github.com/esimhub/backend/internal/application/token"
	usageapp "github.com/esimhub/backend/internal/application/usage"
	"github.com/esimhub/backend/internal/infrastructure/cache"
	"github.com/esimhub/backend/internal/infrastructure/config"
	"github.com/esimhub/backend/internal/infrastructure/esim"
	"github.com/esimhub/backend/internal/infrastructure/logger"
	"github.com/esimhub/backend/internal/infrastructure/persistence"
	"github.com/esimhub/backend/internal/infrastructure/scheduler"
	"github.com/esimhub/backend/internal/infrastructure/search"
	"github.com/esimhub/backend/internal/interfaces/http/handler"
	"github.com/esimhub/backend/internal/interfaces/http/middleware"
	"github.com/esimhub/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format, cfg.Log.Output)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting eSIM hub backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("error closing database", zap.Error(err))
		}
	}()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	// Provider client with the shared session-token store.
	tokenStore := esim.NewRedisTokenStore(redisClient)
	providerClient, err := esim.NewTSIMClient(&esim.TSIMConfig{
		Account:        cfg.Provider.Account,
		Secret:         cfg.Provider.Secret,
		BaseURL:        cfg.Provider.BaseURL,
		BaseURLV2:      cfg.Provider.BaseURLV2,
		AccessToken:    cfg.Provider.AccessToken,
		Username:       cfg.Provider.Username,
		Password:       cfg.Provider.Password,
		TimeoutSeconds: cfg.Provider.TimeoutSeconds,
	}, tokenStore)
	if err != nil {
		log.Fatal("failed to create provider client", zap.Error(err))
	}

	// Repositories
	regionRepo := persistence.NewGormRegionRepository(db.DB)
	collectionRepo := persistence.NewGormCollectionRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	currencyRepo := persistence.NewGormCurrencyRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)

	// Application services
	syncService := catalogapp.NewSyncService(providerClient, regionRepo, collectionRepo, productRepo, log)
	seedService := catalogapp.NewSeedService(currencyRepo, log)
	provisioningService := orderingapp.NewProvisioningService(orderRepo, providerClient, log)
	refreshService := tokenapp.NewRefreshService(providerClient, tokenStore, cfg.Sync.TokenTTL, cfg.Sync.TokenRefreshAhead, log)

	var usageCache usageapp.Cache
	if cfg.UsageCache.Backend == "redis" {
		usageCache = cache.NewRedisUsageCache(redisClient, cfg.UsageCache.TTL, log)
	} else {
		memCache := cache.NewUsageCache(cfg.UsageCache.Capacity, cfg.UsageCache.TTL)
		defer memCache.Close()
		usageCache = memCache
	}
	usageService := usageapp.NewService(providerClient, usageCache, log)

	var indexer handler.CollectionIndexer
	if cfg.Search.Host != "" {
		indexer = search.NewMeiliCollectionIndexer(cfg.Search.Host, cfg.Search.APIKey, collectionRepo)
	}

	// Background jobs
	jobs := scheduler.New(log)
	if cfg.Sync.Enabled {
		jobs.Register(scheduler.Job{
			Name:     "catalog-sync",
			Interval: cfg.Sync.Interval,
			Run: func(ctx context.Context) error {
				if _, err := syncService.SyncRegions(ctx); err != nil {
					return err
				}
				_, err := syncService.SyncCatalog(ctx)
				return err
			},
		})
	}
	if cfg.Sync.TokenRefreshEnabled {
		jobs.Register(scheduler.Job{
			Name:       "token-refresh",
			Interval:   cfg.Sync.TokenRefreshAhead / 2,
			RunAtStart: true,
			Run: func(ctx context.Context) error {
				_, err := refreshService.EnsureFresh(ctx)
				return err
			},
		})
	}
	if cfg.Sync.IndexEnabled && indexer != nil {
		idx := indexer
		jobs.Register(scheduler.Job{
			Name:     "collection-index",
			Interval: cfg.Sync.IndexInterval,
			Run: func(ctx context.Context) error {
				_, err := idx.IndexAll(ctx)
				return err
			},
		})
	}
	jobs.Start(context.Background())
	defer jobs.Stop()

	// HTTP server
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))

	router.NewRouter(engine).
		Register(handler.NewCatalogHandler(syncService, seedService, indexer)).
		Register(handler.NewOrderHandler(provisioningService)).
		Register(handler.NewUsageHandler(usageService)).
		Setup()

	healthHandler := handler.NewHealthHandler(db)
	healthHandler.RegisterRoutes(&engine.RouterGroup)

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info("server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("server forced to shutdown", zap.Error(err))
	}
	log.Info("server exited gracefully")
}
