package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestRedisMetricsHookCountsStreamCommands(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer func() { _ = provider.Shutdown(ctx) }()

	hook, err := newRedisMetricsHook(provider.Meter("redis-test"), client.PoolStats)
	if err != nil {
		t.Fatalf("create hook: %v", err)
	}
	client.AddHook(hook)

	if err := client.XAdd(ctx, &redis.XAddArgs{Stream: "mail", Values: map[string]any{"email": "a@x.com"}}).Err(); err != nil {
		t.Fatalf("xadd: %v", err)
	}
	if err := client.Get(ctx, "missing").Err(); !errors.Is(err, redis.Nil) {
		t.Fatalf("expected redis.Nil, got %v", err)
	}

	if got := hook.cmdTotalAtomic.Load(); got != 2 {
		t.Fatalf("expected 2 commands, got %d", got)
	}
	if got := hook.cmdErrorAtomic.Load(); got != 0 {
		t.Fatalf("expected nil replies not to count as errors, got %d", got)
	}

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		t.Fatalf("collect: %v", err)
	}
	if _, ok := collectLabelCardinality(t, rm)["redis.command.total"]; !ok {
		t.Fatal("expected redis.command.total datapoints")
	}
}

func TestRedisCommandStatusAndClassification(t *testing.T) {
	if redisCommandStatus(nil) != "success" || redisCommandStatus(redis.Nil) != "miss" || redisCommandStatus(errors.New("x")) != "error" {
		t.Fatal("unexpected status mapping")
	}
	if classifyRedisError(errors.New("i/o timeout")) != "timeout" {
		t.Fatal("expected timeout classification")
	}
	if classifyRedisError(errors.New("dial tcp: connection refused")) != "connection" {
		t.Fatal("expected connection classification")
	}
	if clampRatio(2) != 1 || clampRatio(-1) != 0 {
		t.Fatal("expected clamped ratio")
	}
}
