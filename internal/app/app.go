package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/sandeepkv93/identity-core/internal/config"
	"github.com/sandeepkv93/identity-core/internal/health"
	"github.com/sandeepkv93/identity-core/internal/observability"
)

const (
	httpDrainShare          = 2
	defaultShutdownDeadline = 20 * time.Second
)

type App struct {
	Config          *config.Config
	Logger          *slog.Logger
	Server          *http.Server
	Observability   *observability.Runtime
	DB              *gorm.DB
	Redis           redis.UniversalClient
	Readiness       *health.ProbeRunner
	ShutdownTimeout time.Duration
}

func New(
	cfg *config.Config,
	logger *slog.Logger,
	server *http.Server,
	runtime *observability.Runtime,
	db *gorm.DB,
	redisClient redis.UniversalClient,
	readiness *health.ProbeRunner,
) *App {
	timeout := defaultShutdownDeadline
	if cfg != nil && cfg.ShutdownTimeout > 0 {
		timeout = cfg.ShutdownTimeout
	}
	return &App{
		Config:          cfg,
		Logger:          logger,
		Server:          server,
		Observability:   runtime,
		DB:              db,
		Redis:           redisClient,
		Readiness:       readiness,
		ShutdownTimeout: timeout,
	}
}

// Serve blocks until the server stops. A graceful Shutdown yields nil.
func (a *App) Serve() error {
	a.Logger.Info("server starting", "addr", a.Server.Addr)
	if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains HTTP first, then flushes telemetry and closes the stores.
// Half of the deadline is reserved for the HTTP drain.
func (a *App) Shutdown(ctx context.Context) error {
	totalCtx, totalCancel := context.WithTimeout(ctx, a.ShutdownTimeout)
	defer totalCancel()

	var errs []error
	if a.Server != nil {
		httpCtx, httpCancel := context.WithTimeout(totalCtx, a.ShutdownTimeout/httpDrainShare)
		if err := a.Server.Shutdown(httpCtx); err != nil {
			a.Logger.Error("failed to shutdown http server", "error", err)
			errs = append(errs, err)
		}
		httpCancel()
	}

	if a.Observability != nil {
		if err := a.Observability.Shutdown(totalCtx); err != nil {
			a.Logger.Error("failed to shutdown observability", "error", err)
			errs = append(errs, err)
		}
	}

	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			a.Logger.Error("failed to close redis client", "error", err)
			errs = append(errs, err)
		}
	}
	if a.DB != nil {
		if sqlDB, err := a.DB.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				a.Logger.Error("failed to close database connection", "error", err)
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
