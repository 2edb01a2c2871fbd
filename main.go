package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"easyqarz/config"
	httpLayer "easyqarz/http"
	"easyqarz/logging"
	"easyqarz/repository"
	"easyqarz/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped with error", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *zap.Logger) error {
	loanRepo := repository.NewLoanRepositoryMemory(cfg.Audit.MaxEntries)

	cache, closeCache, err := newCache(cfg.Cache, logger)
	if err != nil {
		return err
	}
	defer closeCache()

	loanService := service.NewLoanService(loanRepo, cache, logger)
	loanHandler := httpLayer.NewLoanHandler(loanService, logger)

	tenureService := service.NewTenureRecommendationService(logger)
	tenureHandler := httpLayer.NewTenureRecommendationHandler(tenureService, logger)

	rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimit.Capacity, cfg.RateLimit.Window)
	defer rateLimiter.Stop()

	server := &http.Server{
		Addr: cfg.Server.Addr,
		Handler: httpLayer.NewRouter(httpLayer.RouterDeps{
			Loans:   loanHandler,
			Tenures: tenureHandler,
			Limiter: rateLimiter,
			Logger:  logger,
		}),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server started", zap.String("addr", cfg.Server.Addr), zap.String("cache", cfg.Cache.Driver))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("listen on %s: %w", cfg.Server.Addr, err)
	case sig := <-quit:
		logger.Info("shutting down server", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("server exited")
	return nil
}

// newCache returns the configured cache and a function releasing it.
func newCache(cfg config.CacheConfig, logger *zap.Logger) (repository.CacheRepository, func(), error) {
	if cfg.Driver != config.CacheDriverRedis {
		return repository.NewMemoryCache(cfg.TTL), func() {}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cache, err := repository.NewRedisCache(ctx, repository.RedisOptions{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
		TTL:      cfg.TTL,
	})
	if err != nil {
		return nil, nil, err
	}
	return cache, func() {
		if err := cache.Close(); err != nil {
			logger.Warn("failed to close redis cache", zap.Error(err))
		}
	}, nil
}
