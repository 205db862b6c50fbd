package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MahendraD2/CashFlowManagement/internal/analysis"
	"github.com/MahendraD2/CashFlowManagement/internal/cache"
	"github.com/MahendraD2/CashFlowManagement/internal/logging"
	"github.com/MahendraD2/CashFlowManagement/internal/server"
	"github.com/MahendraD2/CashFlowManagement/internal/store"
	"github.com/MahendraD2/CashFlowManagement/pkg/constants"
	"github.com/MahendraD2/CashFlowManagement/pkg/validation"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

var version = "dev"

func main() {
	configLocation := flag.String("config", constants.DefaultServerConfigFile, "path to server configuration file")
	address := flag.String("address", "", "listen address override")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, warning, error)")
	flag.Parse()

	// A missing .env file is fine; the environment may already be set.
	_ = godotenv.Load()

	cfg, err := server.LoadConfig(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load server configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}
	cfg.ApplyEnv(os.Getenv)
	if *address != "" {
		cfg.Address = *address
	}

	level := cfg.Logging.Level
	if *logLevel != "" {
		level = *logLevel
	}
	if err := validation.ValidateLogLevel(level); err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"invalid logging configuration\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	if err := validation.ValidateLogFormat(cfg.Logging.Format); err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"invalid logging configuration\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	if err := validation.ValidateRedisAddress(cfg.Cache.RedisAddress); err != nil {
		logger.Fatal(err.Error(), zap.String("op", "main"))
	}
	if err := validation.ValidateDatabaseURL(cfg.Store.DatabaseURL); err != nil {
		logger.Fatal(err.Error(), zap.String("op", "main"))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	resultCache, closeCache := openCache(ctx, logger, cfg)
	defer closeCache()

	runStore, closeStore := openStore(ctx, logger, cfg)
	defer closeStore()

	sim := analysis.NewSimulator(logger, cfg.Simulation)
	service := analysis.NewService(logger, sim, resultCache, runStore)

	srv := &http.Server{
		Addr:              cfg.Address,
		Handler:           server.NewHandler(logger, service, cfg.UploadSizeBytes(), version),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown failed",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
	}()

	logger.Info("server listening",
		zap.String("op", "main"),
		zap.String("address", cfg.Address),
		zap.Int64("maxUploadSize", cfg.UploadSizeBytes()),
		zap.String("version", version),
	)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server failed",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}

// openCache connects to Redis when an address is configured and falls back to
// an in-process cache otherwise.
func openCache(ctx context.Context, logger *zap.Logger, cfg *server.Config) (cache.CacheRepository, func()) {
	if cfg.Cache.RedisAddress == "" {
		return cache.NewMemoryCache(), func() {}
	}

	var ttl time.Duration
	if cfg.Cache.TTL != "" {
		parsed, err := time.ParseDuration(cfg.Cache.TTL)
		if err != nil {
			logger.Fatal("invalid cache ttl",
				zap.String("op", "main.openCache"),
				zap.String("ttl", cfg.Cache.TTL),
				zap.Error(err),
			)
		}
		ttl = parsed
	}

	redisCache := cache.NewRedisCache(cfg.Cache.RedisAddress, ttl)
	if err := redisCache.Ping(ctx); err != nil {
		logger.Warn("redis unreachable, caching in memory",
			zap.String("op", "main.openCache"),
			zap.String("address", cfg.Cache.RedisAddress),
			zap.Error(err),
		)
		_ = redisCache.Close()
		return cache.NewMemoryCache(), func() {}
	}

	logger.Info("caching results in redis",
		zap.String("op", "main.openCache"),
		zap.String("address", cfg.Cache.RedisAddress),
		zap.Duration("ttl", ttl),
	)
	return redisCache, func() { _ = redisCache.Close() }
}

// openStore connects to PostgreSQL when a database URL is configured and
// keeps saved runs in memory otherwise.
func openStore(ctx context.Context, logger *zap.Logger, cfg *server.Config) (store.Store, func()) {
	if cfg.Store.DatabaseURL == "" {
		return store.NewMemoryStore(), func() {}
	}

	connectCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	pgStore, err := store.NewPostgresStore(connectCtx, cfg.Store.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to open run store",
			zap.String("op", "main.openStore"),
			zap.Error(err),
		)
	}

	logger.Info("saving runs to postgres",
		zap.String("op", "main.openStore"),
	)
	return pgStore, pgStore.Close
}
