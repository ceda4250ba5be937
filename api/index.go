// Package handler is the serverless entry point. The platform calls Handler
// for every request; the app is built on the first call and reused.
package handler

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/yashrajoria/storefront/app"
	"github.com/yashrajoria/storefront/config"
	"github.com/yashrajoria/storefront/logger"

	"go.uber.org/zap"
)

var (
	once    sync.Once
	current *app.App
	initErr error
)

func instance() (*app.App, error) {
	once.Do(func() {
		cfg, err := config.Load()
		if err != nil {
			logger.Initialize("production")
			initErr = err
			return
		}
		logger.Initialize(cfg.AppEnv)

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()

		a, err := app.New(ctx, cfg)
		if err != nil {
			initErr = err
			return
		}
		if cfg.SeedOnStart {
			if err := a.Seed(ctx); err != nil {
				zap.L().Error("Seeding failed", zap.Error(err))
			}
		}
		current = a
	})
	return current, initErr
}

// Handler serves one request through the shared app. A failed start is
// reported as a 500 envelope on every request.
func Handler(w http.ResponseWriter, r *http.Request) {
	a, err := instance()
	if err != nil {
		zap.L().Error("Storefront unavailable", zap.Error(err))
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"success":false,"message":"Server configuration error"}`))
		return
	}
	a.Engine.ServeHTTP(w, r)
}
