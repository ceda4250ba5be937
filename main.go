package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/yashrajoria/storefront/app"
	"github.com/yashrajoria/storefront/config"
	"github.com/yashrajoria/storefront/logger"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Initialize(os.Getenv("APP_ENV"))
		zap.L().Fatal("Failed to load configuration", zap.Error(err))
	}

	logger.Initialize(cfg.AppEnv)
	defer logger.Sync()

	startCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	a, err := app.New(startCtx, cfg)
	if err != nil {
		cancel()
		zap.L().Fatal("Failed to start storefront", zap.Error(err))
	}

	if cfg.SeedOnStart {
		if err := a.Seed(startCtx); err != nil {
			zap.L().Error("Seeding failed", zap.Error(err))
		}
	}
	cancel()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           a.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zap.L().Info("Storefront API starting", zap.String("port", cfg.Port), zap.String("env", cfg.AppEnv))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.L().Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zap.L().Info("Shutting down Storefront API...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Error("Server forced to shutdown", zap.Error(err))
	}
	a.Close()

	zap.L().Info("Storefront API stopped gracefully")
}
