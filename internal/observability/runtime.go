package observability

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sandeepkv93/identity-core/internal/config"

	"go.opentelemetry.io/otel/attribute"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const serviceNamespace = "identity"

// Runtime owns the OTel providers for the identity service. A nil provider
// means the signal is disabled.
type Runtime struct {
	LoggerProvider *sdklog.LoggerProvider
	MeterProvider  *sdkmetric.MeterProvider
	TracerProvider *sdktrace.TracerProvider
}

// InitRuntime brings up logs, metrics and traces in that order and unwinds
// the ones already started when a later signal fails.
func InitRuntime(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Runtime, error) {
	rt := &Runtime{}
	lp, err := InitLogs(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	rt.LoggerProvider = lp

	mp, err := InitMetrics(ctx, cfg, logger)
	if err != nil {
		_ = rt.Shutdown(ctx)
		return nil, err
	}
	rt.MeterProvider = mp

	tp, err := InitTracing(ctx, cfg, logger)
	if err != nil {
		_ = rt.Shutdown(ctx)
		return nil, err
	}
	rt.TracerProvider = tp

	logger.Info("observability runtime ready",
		"service", cfg.OTELServiceName,
		"environment", deploymentEnvironment(cfg),
		"logs", cfg.OTELLogsEnabled,
		"metrics", cfg.OTELMetricsEnabled,
		"tracing", cfg.OTELTracingEnabled,
	)
	return rt, nil
}

func (r *Runtime) Shutdown(ctx context.Context) error {
	if r == nil {
		return nil
	}
	var errs []error
	if r.LoggerProvider != nil {
		if err := r.LoggerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown logs: %w", err))
		}
	}
	if r.MeterProvider != nil {
		if err := r.MeterProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown metrics: %w", err))
		}
	}
	if r.TracerProvider != nil {
		if err := r.TracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown traces: %w", err))
		}
	}
	return errors.Join(errs...)
}

// serviceResource is shared by every exported signal so logs, metrics and
// traces of one process carry the same identity.
func serviceResource(ctx context.Context, cfg *config.Config) (*sdkresource.Resource, error) {
	return sdkresource.New(ctx,
		sdkresource.WithAttributes(
			attribute.String("service.name", cfg.OTELServiceName),
			attribute.String("service.namespace", serviceNamespace),
			attribute.String("deployment.environment", deploymentEnvironment(cfg)),
		),
	)
}

// OTEL_ENVIRONMENT wins over APP_ENV when both are set.
func deploymentEnvironment(cfg *config.Config) string {
	if cfg.OTELEnvironment != "" {
		return cfg.OTELEnvironment
	}
	return cfg.Env
}
