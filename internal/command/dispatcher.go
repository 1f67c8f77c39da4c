// Package command routes named auth commands to the flows and renders the
// response envelope.
package command

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/sandeepkv93/identity-core/internal/apperror"
	"github.com/sandeepkv93/identity-core/internal/observability"
	"github.com/sandeepkv93/identity-core/internal/service"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/text/language"
)

const (
	UserCreate           = "user_create"
	UserLogin            = "user_login"
	UserVerify           = "user_verify"
	UserConfirm          = "user_confirm"
	UserOAuthLogin       = "user_oauth_login"
	UserGetAccounts      = "user_get_accounts"
	UserDeleteAccount    = "user_delete_account"
	UserGet              = "user_get"
	UserFindAccount      = "user_find_account"
	UserCheckVerify      = "user_check_verify"
	LinkAccountWithEmail = "link_account_with_email"
)

type handlerFunc func(ctx context.Context, payload []byte) (result, error)

type route struct {
	handle handlerFunc
	// audit names the audit event; empty for read-only commands.
	audit string
}

type Dispatcher struct {
	flows    service.AuthFlows
	messages *Messages
	logger   *slog.Logger
	routes   map[string]route
}

func NewDispatcher(flows service.AuthFlows, messages *Messages, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	d := &Dispatcher{flows: flows, messages: messages, logger: logger}
	d.routes = map[string]route{
		UserCreate:           {handle: d.register, audit: "auth.register"},
		UserLogin:            {handle: d.login, audit: "auth.login"},
		UserVerify:           {handle: d.verify, audit: "auth.verify"},
		UserConfirm:          {handle: d.confirm},
		UserOAuthLogin:       {handle: d.oauthLogin, audit: "account.bind"},
		UserGetAccounts:      {handle: d.getAccounts},
		UserDeleteAccount:    {handle: d.deleteAccount, audit: "account.delete"},
		UserGet:              {handle: d.getUser},
		UserFindAccount:      {handle: d.findAccount},
		UserCheckVerify:      {handle: d.checkVerify},
		LinkAccountWithEmail: {handle: d.linkAccount, audit: "account.link"},
	}
	return d
}

// Commands lists the registered command names in sorted order.
func (d *Dispatcher) Commands() []string {
	names := make([]string, 0, len(d.routes))
	for name := range d.routes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dispatch runs one command and always returns an envelope; failures are
// reported through its status.
func (d *Dispatcher) Dispatch(ctx context.Context, tag language.Tag, name string, payload []byte) Envelope {
	start := time.Now()
	r, known := d.routes[name]
	flow := name
	if !known {
		flow = "unknown"
	}
	ctx, span := observability.StartSpan(ctx, "command."+flow, attribute.String("command.name", flow))

	var (
		res result
		err error
	)
	if known {
		res, err = r.handle(ctx, payload)
	} else {
		err = apperror.New(apperror.KindValidation, "unknown command "+name)
	}
	if err != nil {
		res = d.failure(err, known)
	}

	kind := apperror.KindOf(err)
	outcome := "success"
	switch {
	case res.status >= http.StatusInternalServerError:
		outcome = "error"
		observability.EndSpan(span, err)
	case err != nil:
		outcome = "rejected"
		span.SetAttributes(attribute.String("error.kind", string(kind)))
		span.End()
	default:
		span.End()
	}
	observability.RecordAuthFlow(ctx, flow, outcome, string(kind), time.Since(start))

	attrs := []any{
		"command", flow,
		"status", res.status,
		"duration_ms", time.Since(start).Milliseconds(),
	}
	switch {
	case outcome == "error":
		d.logger.ErrorContext(ctx, "command failed", append(attrs, "error_kind", kind, "error", err)...)
	case err != nil:
		d.logger.InfoContext(ctx, "command rejected", append(attrs, "error_kind", kind, "error", err)...)
	default:
		d.logger.InfoContext(ctx, "command handled", attrs...)
	}

	if known && r.audit != "" {
		reason := ""
		if err != nil {
			reason = string(kind)
		}
		observability.EmitAudit(ctx, d.logger, observability.AuditInput{
			EventName: r.audit,
			Command:   name,
			Subject:   auditSubject(payload),
			Outcome:   outcome,
			Reason:    reason,
		})
	}
	return d.render(tag, res)
}

func (d *Dispatcher) render(tag language.Tag, res result) Envelope {
	return Envelope{
		Status:  res.status,
		Message: d.messages.Text(tag, res.message),
		User:    res.user,
		Data:    res.data,
		Token:   res.token,
		Link:    res.link,
	}
}

func (d *Dispatcher) failure(err error, known bool) result {
	if !known {
		return result{status: http.StatusBadRequest, message: MsgUnknownCommand}
	}
	kind := apperror.KindOf(err)
	return result{status: kind.Status(), message: messageFor(err, kind)}
}

func messageFor(err error, kind apperror.Kind) MessageKey {
	if kind.Status() >= http.StatusInternalServerError {
		return MsgSystemError
	}
	switch {
	case errors.Is(err, service.ErrAccountExists), errors.Is(err, service.ErrAccountLinked):
		return MsgAccountExists
	case errors.Is(err, service.ErrEmailNotFound):
		return MsgEmailNotFound
	case errors.Is(err, service.ErrEmailUnverified):
		return MsgEmailUnverified
	case errors.Is(err, service.ErrIncorrectPassword):
		return MsgIncorrectPassword
	case errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrAccountNotFound):
		return MsgAccountNotFound
	}
	switch kind {
	case apperror.KindNotFound:
		return MsgAccountNotFound
	case apperror.KindConflict:
		return MsgAccountExists
	case apperror.KindInvalidToken:
		return MsgInvalidToken
	case apperror.KindExpiredToken:
		return MsgExpiredToken
	default:
		return MsgInvalidRequest
	}
}

// decode reads a JSON payload; an empty payload decodes as {}.
func decode(payload []byte, v any) error {
	if len(bytes.TrimSpace(payload)) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, v); err != nil {
		return apperror.Wrap(apperror.KindValidation, "decode payload", err)
	}
	return nil
}

func auditSubject(payload []byte) string {
	var probe struct {
		Email  string `json:"email"`
		UserID string `json:"userId"`
		ID     string `json:"id"`
		User   struct {
			UserID string `json:"userId"`
		} `json:"user"`
	}
	if json.Unmarshal(payload, &probe) != nil {
		return ""
	}
	for _, s := range []string{probe.Email, probe.UserID, probe.User.UserID, probe.ID} {
		if s != "" {
			return s
		}
	}
	return ""
}
