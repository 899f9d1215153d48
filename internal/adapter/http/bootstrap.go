package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"todoweb/internal/adapter/http/routes"
	"todoweb/pkg/config"
	"todoweb/pkg/tracing"

	"go.uber.org/zap"
)

// StartServer serves until ctx is cancelled, then drains in-flight
// requests and closes the stores.
func StartServer(ctx context.Context, metrics *tracing.AppMetrics, logger *config.LokiLogger, cfg *config.AppConfig) error {
	if cfg.UsesDevelopmentSecret() {
		logger.Logger.Warn("SECRET_KEY is not set, session cookies are signed with the development key")
	}

	container, err := NewContainer(ctx, cfg, logger, metrics)

	if err != nil {
		return err
	}

	defer func() {
		if err := container.Close(); err != nil {
			logger.Logger.Error("Failed to close stores", zap.Error(err))
		}
	}()

	router, err := routes.SetupRouterWithConfig(container.Handlers(), metrics, logger, cfg)

	if err != nil {
		return err
	}

	logger.Logger.Info("Server starting",
		zap.String("port", cfg.Port),
		zap.String("environment", cfg.Environment),
		zap.Bool("auth_enabled", cfg.AuthEnabled),
		zap.String("database_driver", cfg.DatabaseDriver),
		zap.Bool("redis_sessions", cfg.RedisURL != ""),
		zap.Bool("rate_limit_enabled", cfg.RateLimitEnabled),
		zap.Bool("https_enforced", cfg.EnforceHTTPS))

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}

		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Logger.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
