package health

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type DBChecker struct {
	db *gorm.DB
}

// NewDBChecker returns nil for a nil db.
func NewDBChecker(db *gorm.DB) Checker {
	if db == nil {
		return nil
	}
	return &DBChecker{db: db}
}

func (c *DBChecker) Name() string { return "db" }

func (c *DBChecker) Check(ctx context.Context) error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// RedisChecker probes the mail stream broker. It also requires the stream
// key to be writable as a stream when it already exists.
type RedisChecker struct {
	client redis.UniversalClient
	stream string
}

// NewRedisChecker returns nil for a nil client.
func NewRedisChecker(client redis.UniversalClient, stream string) Checker {
	if client == nil {
		return nil
	}
	return &RedisChecker{client: client, stream: stream}
}

func (c *RedisChecker) Name() string { return "redis" }

func (c *RedisChecker) Check(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return err
	}
	if c.stream == "" {
		return nil
	}
	kind, err := c.client.Type(ctx, c.stream).Result()
	if err != nil {
		return err
	}
	if kind != "none" && kind != "stream" {
		return errors.New("mail stream key holds a " + kind)
	}
	return nil
}
