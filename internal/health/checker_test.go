package health

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type stubChecker struct {
	name  string
	err   error
	delay time.Duration
	calls *atomic.Int32
}

func (s stubChecker) Name() string { return s.name }

func (s stubChecker) Check(ctx context.Context) error {
	if s.calls != nil {
		s.calls.Add(1)
	}
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return s.err
}

func TestProbeRunnerReady(t *testing.T) {
	runner := NewProbeRunner(200*time.Millisecond,
		stubChecker{name: "db"},
		nil,
		stubChecker{name: "redis"},
	)
	ready, results := runner.Ready(context.Background())
	if !ready {
		t.Fatal("expected ready")
	}
	if len(results) != 2 || results[0].Name != "db" || results[1].Name != "redis" {
		t.Fatalf("unexpected results: %+v", results)
	}
}

func TestProbeRunnerUnready(t *testing.T) {
	runner := NewProbeRunner(200*time.Millisecond,
		stubChecker{name: "db"},
		stubChecker{name: "redis", err: errors.New("down")},
	)
	ready, results := runner.Ready(context.Background())
	if ready {
		t.Fatal("expected unready")
	}
	if results[1].Healthy || results[1].Error != "down" {
		t.Fatalf("unexpected redis result: %+v", results[1])
	}
}

func TestProbeRunnerTimeoutAndConcurrency(t *testing.T) {
	var calls atomic.Int32
	runner := NewProbeRunner(50*time.Millisecond,
		stubChecker{name: "slow-a", delay: time.Second, calls: &calls},
		stubChecker{name: "slow-b", delay: time.Second, calls: &calls},
	)
	start := time.Now()
	ready, results := runner.Ready(context.Background())
	if ready {
		t.Fatal("expected unready on timeout")
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Fatalf("expected concurrent timeouts, took %s", elapsed)
	}
	if calls.Load() != 2 {
		t.Fatalf("expected 2 calls, got %d", calls.Load())
	}
	for _, res := range results {
		if res.Error != context.DeadlineExceeded.Error() {
			t.Fatalf("expected deadline error, got %+v", res)
		}
	}
}

func TestNilRunnerIsReady(t *testing.T) {
	var runner *ProbeRunner
	ready, results := runner.Ready(context.Background())
	if !ready || results != nil {
		t.Fatalf("expected ready with no results, got %v %+v", ready, results)
	}
}

func TestDBChecker(t *testing.T) {
	if NewDBChecker(nil) != nil {
		t.Fatal("expected nil checker for nil db")
	}
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	c := NewDBChecker(db)
	if err := c.Check(context.Background()); err != nil {
		t.Fatalf("expected healthy db, got %v", err)
	}
	sqlDB, _ := db.DB()
	_ = sqlDB.Close()
	if err := c.Check(context.Background()); err == nil {
		t.Fatal("expected closed db to fail")
	}
}

func TestRedisChecker(t *testing.T) {
	if NewRedisChecker(nil, "mail:events") != nil {
		t.Fatal("expected nil checker for nil client")
	}
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	c := NewRedisChecker(client, "mail:events")

	if err := c.Check(context.Background()); err != nil {
		t.Fatalf("expected healthy redis, got %v", err)
	}
	if err := client.XAdd(context.Background(), &redis.XAddArgs{Stream: "mail:events", Values: map[string]any{"event": "x"}}).Err(); err != nil {
		t.Fatalf("xadd: %v", err)
	}
	if err := c.Check(context.Background()); err != nil {
		t.Fatalf("expected healthy stream, got %v", err)
	}

	if err := mr.Set("mail:broken", "oops"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := NewRedisChecker(client, "mail:broken").Check(context.Background()); err == nil {
		t.Fatal("expected wrong-type key to fail")
	}
}
