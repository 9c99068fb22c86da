package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clashfinder/api/cache"
	grpcserver "clashfinder/api/grpc"
	"clashfinder/api/modules"
	"clashfinder/api/routes"
	"clashfinder/fetcher/assets"
	"clashfinder/fetcher/regionmanager"
	"clashfinder/fetcher/requests"
	"clashfinder/pkg/config"
	"clashfinder/pkg/logger"
	"clashfinder/pkg/redis"

	"github.com/joho/godotenv"
)

func main() {
	// Load the environment variables if not running on Docker.
	if os.Getenv("ENVIRONMENT") != "docker" {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file, using the environment")
		}
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Couldn't initialize the configuration: %v", err)
	}

	appLogger, err := logger.CreateLogger(cfg.Bucket, cfg.Server.LogLevel)
	if err != nil {
		log.Fatalf("Couldn't create the logger: %v", err)
	}
	defer appLogger.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Cache backend, the catalog is only shared through redis.
	var (
		store        cache.Store
		catalogStore assets.KeyValueStore
	)
	switch cfg.Cache.Backend {
	case "redis":
		client, err := redis.NewClient(cfg.Redis)
		if err != nil {
			log.Fatalf("Couldn't connect to redis: %v", err)
		}
		defer client.Close()

		store = cache.NewRedisStore(client, appLogger)
		catalogStore = client
	default:
		memCache := cache.NewMemCache(time.Minute)
		defer memCache.Close()

		store = memCache
	}

	client := requests.NewClient(requests.ClientOptions{
		ApiKey:     cfg.Riot.ApiKey,
		HostFormat: cfg.Riot.HostFormat,
		Timeout:    cfg.Riot.RequestTimeout,
		Retry: requests.RetryPolicy{
			MaxAttempts: cfg.Riot.MaxAttempts,
			BaseDelay:   cfg.Riot.BaseBackoff,
			MaxDelay:    cfg.Riot.MaxBackoff,
		},
		Logger: appLogger,
	})
	riot := regionmanager.NewRegionManager(client, cfg.Riot)

	// The names must be ready before the first page is served.
	catalogCache := cache.NewCatalogCache(assets.NewDDragon(assets.DDragonURL), catalogStore, cfg.Assets.Language, appLogger)
	if err := catalogCache.Load(ctx); err != nil {
		log.Fatalf("Couldn't load the DDragon catalog: %v", err)
	}
	catalogCache.StartRefresh(cfg.Assets.RefreshInterval)
	defer catalogCache.Close()

	module, err := modules.NewModule(&modules.ModuleDependencies{
		Config:  cfg,
		Logger:  appLogger,
		Store:   store,
		Riot:    riot,
		Catalog: catalogCache,
	})
	if err != nil {
		log.Fatalf("Couldn't create the module: %v", err)
	}

	router := routes.NewRouter(module.Router)
	router.SetupRoutes(
		module.HomeHandler,
		module.PlayerHandler,
		module.ClashHandler,
		module.AssetsHandler,
	)
	server := router.Server(":" + cfg.Server.Port)

	lis, err := net.Listen("tcp", ":"+cfg.Server.HealthPort)
	if err != nil {
		log.Fatalf("Couldn't listen on the health port: %v", err)
	}
	health := grpcserver.NewHealthServer()
	go func() {
		if err := health.Serve(lis); err != nil {
			appLogger.Errorf("Health server stopped: %v", err)
		}
	}()

	go func() {
		appLogger.Infof("Listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Errorf("HTTP server failed: %v", err)
			stop()
		}
	}()
	health.SetServing(true)

	<-ctx.Done()
	appLogger.Infof("Shutting down")
	health.SetServing(false)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Errorf("Couldn't shut down the HTTP server: %v", err)
	}
	health.Stop()

	if cfg.Bucket.Enabled() {
		if err := appLogger.UploadToS3Bucket(shutdownCtx, logger.ObjectKey("api", time.Now())); err != nil {
			log.Printf("Couldn't upload the logs: %v", err)
		}
	}
}
