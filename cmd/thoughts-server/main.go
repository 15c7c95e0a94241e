package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"thoughts-api/internal/config"
	"thoughts-api/internal/handler"
	"thoughts-api/internal/middleware"
	"thoughts-api/internal/observability"
	"thoughts-api/internal/service"
)

func main() {
	cfg := config.Load()

	observability.InitLogger(cfg.LogLevel, cfg.LogFormat)

	slog.Info("starting thoughts server",
		slog.String("environment", cfg.Environment),
		slog.String("store_driver", cfg.StoreDriver))

	connCtx, connCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer connCancel()

	repo, closeStore, err := openStore(connCtx, cfg)
	if err != nil {
		slog.Error("failed to open store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeStore()

	thoughtService := service.NewThoughtService(repo, service.WithTimeout(cfg.StoreTimeout))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r := handler.NewRouter(handler.RouterConfig{
		Thoughts:          thoughtService,
		Store:             thoughtService,
		Driver:            cfg.StoreDriver,
		AllowedOrigins:    middleware.ParseOrigins(cfg.AllowedOrigins),
		Limiter:           middleware.NewRateLimiter(ctx, cfg.RateLimitRPS, cfg.RateLimitBurst),
		OpenAPIValidation: cfg.OpenAPIValidationEnabled(),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("thoughts server listening", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("shutting down server", slog.String("signal", sig.String()))
	case err := <-serverErr:
		slog.Error("server error", slog.String("error", err.Error()))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", slog.String("error", err.Error()))
	}

	slog.Info("server stopped gracefully")
}
