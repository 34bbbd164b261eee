package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/iac-studio/projects/internal/api"
	"github.com/iac-studio/projects/internal/api/handlers"
	mw "github.com/iac-studio/projects/internal/api/middleware"
	"github.com/iac-studio/projects/internal/cache"
	"github.com/iac-studio/projects/internal/repository"
	"github.com/iac-studio/projects/internal/services"
	"github.com/iac-studio/projects/pkg/config"
	"github.com/iac-studio/projects/pkg/database"
	"github.com/iac-studio/projects/pkg/logger"
	"github.com/iac-studio/projects/pkg/metrics"
)

func main() {
	cfg := config.MustLoad()

	log, err := logger.Init(cfg.LogLevel, cfg.LogFormat, zap.String("env", cfg.AppEnv))
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	log.Info("starting projects api",
		zap.String("addr", cfg.HTTPAddr),
		zap.String("db_driver", cfg.DBDriver),
		zap.String("response_mode", cfg.ResponseMode),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	verbose := cfg.AppEnv == "development" || cfg.AppEnv == "test"
	db, err := database.Open(ctx, cfg.DBDriver, cfg.DatabaseURL, verbose)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	log.Info("database connected")

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	readMetrics := metrics.NewReadMetrics(reg)

	var reader services.ProjectReader = repository.NewProjectRepository(db)
	if cfg.CacheEnabled() {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       0,
		})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn("redis unreachable, reads will fall through to the database", zap.Error(err))
		}
		reader = cache.NewProjectReader(reader, cache.NewRedisStore(rdb), cfg.CacheTTL, readMetrics)
		log.Info("project cache enabled", zap.String("redis_addr", cfg.RedisAddr), zap.Duration("ttl", cfg.CacheTTL))
	}

	svc := services.NewProjectService(reader, cfg.ReadTimeout, readMetrics)

	trusted, err := mw.ParseTrustedProxies(cfg.TrustedProxies)
	if err != nil {
		log.Fatal("invalid TRUSTED_PROXIES", zap.Error(err))
	}
	limiter := mw.NewLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, trusted)
	go limiter.Run(ctx, 5*time.Minute, 10*time.Minute)

	if cfg.JWTSecret == "" {
		log.Warn("JWT_SECRET not set, project routes are public")
	}

	router := api.NewRouter(api.Dependencies{
		HMACSecret:      []byte(cfg.JWTSecret),
		CORSOrigins:     cfg.AllowedOrigins(),
		Limiter:         limiter,
		Gatherer:        reg,
		HealthHandler:   handlers.NewHealthHandler(database.Pinger{DB: db}),
		ProjectsHandler: handlers.NewProjectsHandler(svc, cfg.ResponseMode),
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-errCh:
		log.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown error", zap.Error(err))
	} else {
		log.Info("server exited gracefully")
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
