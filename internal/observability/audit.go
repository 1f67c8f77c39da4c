package observability

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

const auditEventVersion = 1

// AuditInput describes one state-changing auth decision.
type AuditInput struct {
	EventName string
	Command   string
	Subject   string
	Outcome   string
	Reason    string
}

type AuditEvent struct {
	EventVersion int    `json:"event_version"`
	EventName    string `json:"event_name"`
	Command      string `json:"command"`
	Subject      string `json:"subject"`
	Outcome      string `json:"outcome"`
	Reason       string `json:"reason"`
	RequestID    string `json:"request_id"`
	TS           string `json:"ts"`
}

func BuildAuditEvent(ctx context.Context, in AuditInput) AuditEvent {
	reason := in.Reason
	if reason == "" {
		reason = "ok"
	}
	return AuditEvent{
		EventVersion: auditEventVersion,
		EventName:    in.EventName,
		Command:      in.Command,
		Subject:      in.Subject,
		Outcome:      in.Outcome,
		Reason:       reason,
		RequestID:    chimiddleware.GetReqID(ctx),
		TS:           time.Now().UTC().Format(time.RFC3339),
	}
}

func (e AuditEvent) Validate() error {
	var missing []string
	if e.EventName == "" {
		missing = append(missing, "event_name")
	}
	if e.Command == "" {
		missing = append(missing, "command")
	}
	if e.Outcome == "" {
		missing = append(missing, "outcome")
	}
	if e.TS == "" {
		missing = append(missing, "ts")
	}
	if len(missing) > 0 {
		return errors.New("audit event missing " + strings.Join(missing, ", "))
	}
	return nil
}

// EmitAudit logs the event at info level. Invalid events are logged as warnings.
func EmitAudit(ctx context.Context, logger *slog.Logger, in AuditInput) {
	if logger == nil {
		logger = slog.Default()
	}
	ev := BuildAuditEvent(ctx, in)
	if err := ev.Validate(); err != nil {
		logger.WarnContext(ctx, "audit event rejected", "error", err, "event_name", ev.EventName)
		return
	}
	logger.InfoContext(ctx, "audit",
		"event_version", ev.EventVersion,
		"event_name", ev.EventName,
		"command", ev.Command,
		"subject", ev.Subject,
		"outcome", ev.Outcome,
		"reason", ev.Reason,
		"request_id", ev.RequestID,
		"ts", ev.TS,
	)
}
