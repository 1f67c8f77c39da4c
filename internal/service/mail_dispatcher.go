package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/sandeepkv93/identity-core/internal/observability"
)

// EventAuthRegister is the single event consumed by the external mail sender.
const EventAuthRegister = "auth_register"

type MailMessage struct {
	Event string
	Email string
	Link  string
}

// MailDispatcher hands a message to the mail subsystem. A nil error means
// the message was accepted, not delivered.
type MailDispatcher interface {
	Dispatch(ctx context.Context, msg MailMessage) error
}

type LogMailDispatcher struct {
	logger *slog.Logger
}

func NewLogMailDispatcher(logger *slog.Logger) *LogMailDispatcher {
	return &LogMailDispatcher{logger: logger}
}

func (d *LogMailDispatcher) Dispatch(ctx context.Context, msg MailMessage) error {
	d.logger.InfoContext(ctx, "mail dispatched",
		"event", msg.Event,
		"email", msg.Email,
		"link", msg.Link,
		"queued_at", time.Now().UTC(),
	)
	observability.RecordMailDispatch(ctx, "log", msg.Event, "success")
	return nil
}
