package service

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sandeepkv93/identity-core/internal/observability"
)

// RedisStreamMailDispatcher appends mail events to a redis stream. The
// returned entry id is the acknowledgment.
type RedisStreamMailDispatcher struct {
	client redis.UniversalClient
	stream string
	maxLen int64
}

func NewRedisStreamMailDispatcher(client redis.UniversalClient, stream string, maxLen int64) *RedisStreamMailDispatcher {
	if stream == "" {
		stream = "mail:events"
	}
	return &RedisStreamMailDispatcher{client: client, stream: stream, maxLen: maxLen}
}

func (d *RedisStreamMailDispatcher) Dispatch(ctx context.Context, msg MailMessage) error {
	args := &redis.XAddArgs{
		Stream: d.stream,
		Values: map[string]any{
			"event":     msg.Event,
			"email":     msg.Email,
			"link":      msg.Link,
			"queued_at": time.Now().UTC().Format(time.RFC3339Nano),
		},
	}
	if d.maxLen > 0 {
		args.MaxLen = d.maxLen
		args.Approx = true
	}
	id, err := d.client.XAdd(ctx, args).Result()
	if err != nil {
		observability.RecordMailDispatch(ctx, "redis", msg.Event, "error")
		return fmt.Errorf("xadd %s: %w", d.stream, err)
	}
	if id == "" {
		observability.RecordMailDispatch(ctx, "redis", msg.Event, "error")
		return fmt.Errorf("xadd %s: empty entry id", d.stream)
	}
	observability.RecordMailDispatch(ctx, "redis", msg.Event, "success")
	return nil
}
