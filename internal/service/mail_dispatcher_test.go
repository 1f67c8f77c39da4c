package service

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisStreamMailDispatcherAppendsEntry(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	d := NewRedisStreamMailDispatcher(client, "mail:test", 100)
	err := d.Dispatch(context.Background(), MailMessage{Event: EventAuthRegister, Email: "a@x.com", Link: "http://b/api/auth/verify?token=t"})
	require.NoError(t, err)

	entries, err := client.XRange(context.Background(), "mail:test", "-", "+").Result()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, EventAuthRegister, entries[0].Values["event"])
	assert.Equal(t, "a@x.com", entries[0].Values["email"])
	assert.Equal(t, "http://b/api/auth/verify?token=t", entries[0].Values["link"])
	assert.NotEmpty(t, entries[0].Values["queued_at"])
}

func TestRedisStreamMailDispatcherDefaultsStream(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	d := NewRedisStreamMailDispatcher(client, "", 0)
	require.NoError(t, d.Dispatch(context.Background(), MailMessage{Event: EventAuthRegister, Email: "a@x.com"}))

	n, err := client.XLen(context.Background(), "mail:events").Result()
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestRedisStreamMailDispatcherSurfacesFailure(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	mr.Close()

	d := NewRedisStreamMailDispatcher(client, "mail:test", 0)
	err := d.Dispatch(context.Background(), MailMessage{Event: EventAuthRegister, Email: "a@x.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xadd mail:test")
}

func TestLogMailDispatcherLogsLink(t *testing.T) {
	var buf bytes.Buffer
	d := NewLogMailDispatcher(slog.New(slog.NewJSONHandler(&buf, nil)))

	require.NoError(t, d.Dispatch(context.Background(), MailMessage{Event: EventAuthRegister, Email: "a@x.com", Link: "http://f/verify-account?token=t"}))
	out := buf.String()
	assert.True(t, strings.Contains(out, `"link":"http://f/verify-account?token=t"`), out)
	assert.Contains(t, out, `"event":"auth_register"`)
}
