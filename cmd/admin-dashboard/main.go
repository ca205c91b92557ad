// cmd/admin-dashboard/main.go
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

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"quickload-admin/internal/api"
	"quickload-admin/internal/common/config"
	"quickload-admin/internal/common/database"
	apphttp "quickload-admin/internal/common/http"
	"quickload-admin/internal/common/logger"
	"quickload-admin/internal/common/observability"
	"quickload-admin/internal/dashboard"
	"quickload-admin/internal/identity"
	"quickload-admin/internal/service"
	"quickload-admin/internal/session"
	"quickload-admin/internal/state"
)

// retryWithBackoff retries a startup dependency check with exponential backoff.
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		boot := logger.New("info", "console")
		boot.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.FromConfig(cfg.Logging)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting admin dashboard",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
		zap.String("backend", cfg.API.BaseURL),
	)

	obs := observability.New(cfg.App.Name, log)
	defer obs.Shutdown()
	tracing := observability.NewTracing(cfg.App.Name)
	defer tracing.Shutdown()

	// --- Session store ---
	var store session.Store = session.NewMemoryStore()
	if cfg.Session.UsesRedis() {
		rdb := database.NewRedis(cfg.Database.Redis)
		defer rdb.Close()

		err = retryWithBackoff(func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return rdb.Ping(ctx)
		}, 5, time.Second, zapLog, "Redis connection")
		if err != nil {
			zapLog.Fatal("session store unavailable", zap.Error(err), zap.String("redis", cfg.Database.Redis.String()))
		}
		store = session.NewRedisStore(rdb.Client, cfg.Session.KeyPrefix, config.GetDuration(cfg.Session.TTL))
		zapLog.Info("Session store: redis", zap.String("redis", cfg.Database.Redis.String()))
	} else {
		zapLog.Info("Session store: memory")
	}

	// --- Backend clients ---
	timeout := config.GetDuration(cfg.API.Timeout)
	plain := apphttp.NewPlain(cfg.API.BaseURL, timeout, log)
	authenticated := apphttp.NewAuthenticated(cfg.API.BaseURL, timeout, store, log)
	services := service.New(api.New(plain, authenticated, log), log)

	var provider dashboard.IdentityProvider
	if cfg.Identity.Firebase.APIKey != "" {
		provider = identity.NewFirebase(
			cfg.Identity.Firebase.BaseURL,
			cfg.Identity.Firebase.APIKey,
			config.GetDuration(cfg.Identity.Firebase.Timeout),
			log,
		)
	} else {
		zapLog.Warn("FIREBASE_API_KEY not set, phone sign-in disabled")
	}

	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := dashboard.NewRouter(dashboard.Options{
		Services:       services,
		Store:          store,
		Identity:       provider,
		State:          state.Deps{Logger: log, Obs: obs},
		Logger:         log,
		Tracing:        tracing,
		PageSize:       cfg.Dashboard.PageSize,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
	}

	go func() {
		zapLog.Info("Dashboard listening", zap.String("address", cfg.Server.Address))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Fatal("Dashboard server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, draining requests...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error during shutdown", zap.Error(err))
	}

	zapLog.Info("Admin dashboard stopped gracefully")
}
