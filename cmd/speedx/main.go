package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"speedx/internal/analysis"
	"speedx/internal/api/v1/handler"
	"speedx/internal/api/v1/middleware"
	"speedx/internal/api/v1/router"
	"speedx/internal/config"
	"speedx/internal/debug"
	"speedx/internal/history"
	"speedx/internal/log"
	"speedx/internal/service"
	"speedx/internal/storage"
	"speedx/internal/view"
)

func init() {
	log.InitLogger(os.Getenv("IS_DEV") == "true")
	config.LoadEnv()
}

func main() {
	defer log.Sync()

	cfg := config.AppConfig

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, err := storage.New(ctx, storage.Options{
		Driver:        cfg.StorageDriver,
		Path:          cfg.StoragePath,
		SQLitePath:    cfg.SQLitePath,
		RedisAddr:     cfg.RedisAddr,
		RedisPassword: cfg.RedisPassword,
		RedisDB:       cfg.RedisDB,
	}, log.Logger)
	if err != nil {
		log.Logger.Fatal("Failed to open storage", zap.Error(err))
	}
	defer backend.Close()

	store, err := history.Load(ctx, backend, cfg.StorageKey, log.Logger)
	if err != nil {
		log.Logger.Fatal("Failed to load history", zap.Error(err))
	}

	renderer, err := view.NewRenderer()
	if err != nil {
		log.Logger.Fatal("Failed to build renderer", zap.Error(err))
	}

	analyzer := service.NewAnalyzer(analysis.NewClient(cfg.AnalyzerURL, cfg.AnalyzerTimeout), store)

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	go limiter.Run(ctx)

	r := router.New(handler.New(analyzer, renderer), router.Options{
		RateLimiter:       limiter,
		BasicAuthUser:     cfg.BasicAuthUser,
		BasicAuthPass:     cfg.BasicAuthPass,
		CORSAllowedOrigin: cfg.CORSAllowedOrigin,
	})

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	metricsServer := &http.Server{
		Addr:              cfg.MetricsAddr,
		Handler:           router.NewMetricsRouter(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Logger.Info("Server started",
			zap.String("addr", cfg.HTTPAddr),
			zap.String("analyzer_url", cfg.AnalyzerURL),
			zap.String("storage_driver", cfg.StorageDriver),
			zap.Bool("basic_auth", cfg.BasicAuthEnabled()),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Pprof only enabled in dev env
	if cfg.IsDev {
		debug.StartPprof(cfg.PprofAddr)
	}

	go func() {
		log.Logger.Info("Metrics server started", zap.String("addr", cfg.MetricsAddr))
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Logger.Fatal("Metrics server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Logger.Info("Shutting down server gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Logger.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		log.Logger.Error("Metrics server forced to shutdown", zap.Error(err))
	}
	log.Logger.Info("Server exited successfully")
}
