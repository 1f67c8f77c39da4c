package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sandeepkv93/identity-core/internal/command"
	"github.com/sandeepkv93/identity-core/internal/http/middleware"
	"github.com/sandeepkv93/identity-core/internal/service"
	servicegomock "github.com/sandeepkv93/identity-core/internal/service/gomock"
	"go.uber.org/mock/gomock"
)

func newCommandRouterForTest(t *testing.T, timeout time.Duration) (http.Handler, *servicegomock.MockAuthFlows) {
	t.Helper()
	ctrl := gomock.NewController(t)
	flows := servicegomock.NewMockAuthFlows(ctrl)
	msgs, err := command.NewMessages("en")
	if err != nil {
		t.Fatalf("messages: %v", err)
	}
	d := command.NewDispatcher(flows, msgs, slog.New(slog.NewTextHandler(io.Discard, nil)))
	h := NewCommandHandler(d, msgs, timeout)

	r := chi.NewRouter()
	r.Use(middleware.BodyLimit(64))
	r.Get("/api/v1/commands", h.List)
	r.Post("/api/v1/commands/{command}", h.Execute)
	return r, flows
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var env map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal response: %v body=%s", err, rr.Body.String())
	}
	return env
}

func TestCommandHandlerExecute(t *testing.T) {
	t.Run("login success mirrors status", func(t *testing.T) {
		r, flows := newCommandRouterForTest(t, time.Second)
		flows.EXPECT().Login(gomock.Any(), "a@x.com", "pw").Return(&service.LoginResult{User: &service.UserView{ID: "u-1"}, Token: "tok"}, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/commands/user_login", strings.NewReader(`{"email":"a@x.com","password":"pw"}`))
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
		}
		env := decodeEnvelope(t, rr)
		if env["token"] != "tok" || env["status"] != float64(200) {
			t.Fatalf("unexpected envelope %v", env)
		}
		if got := rr.Header().Get("Content-Language"); got != "en" {
			t.Fatalf("expected en content language, got %q", got)
		}
	})

	t.Run("vietnamese via accept-language", func(t *testing.T) {
		r, flows := newCommandRouterForTest(t, time.Second)
		flows.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, service.ErrIncorrectPassword)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/commands/user_login", strings.NewReader(`{"email":"a@x.com","password":"bad"}`))
		req.Header.Set("Accept-Language", "vi-VN,vi;q=0.9")
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		if rr.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rr.Code)
		}
		if env := decodeEnvelope(t, rr); env["message"] != "Mật khẩu không chính xác" {
			t.Fatalf("unexpected message %v", env["message"])
		}
	})

	t.Run("lang query wins over header", func(t *testing.T) {
		r, _ := newCommandRouterForTest(t, time.Second)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/commands/nope?lang=vi", strings.NewReader(`{}`))
		req.Header.Set("Accept-Language", "en")
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		if rr.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rr.Code)
		}
		if env := decodeEnvelope(t, rr); env["message"] != "Lệnh không được hỗ trợ" {
			t.Fatalf("unexpected message %v", env["message"])
		}
	})

	t.Run("request timeout reaches flows", func(t *testing.T) {
		r, flows := newCommandRouterForTest(t, 20*time.Millisecond)
		flows.EXPECT().GetUser(gomock.Any(), "u-1").DoAndReturn(func(ctx context.Context, _ string) (*service.UserView, error) {
			if _, ok := ctx.Deadline(); !ok {
				t.Fatal("expected a deadline on the flow context")
			}
			return &service.UserView{ID: "u-1"}, nil
		})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/commands/user_get", strings.NewReader(`{"userId":"u-1"}`))
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rr.Code)
		}
	})

	t.Run("oversized body", func(t *testing.T) {
		r, _ := newCommandRouterForTest(t, time.Second)
		body := `{"email":"` + strings.Repeat("a", 128) + `@x.com"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/commands/user_login", strings.NewReader(body))
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		if rr.Code != http.StatusRequestEntityTooLarge {
			t.Fatalf("expected 413, got %d", rr.Code)
		}
	})
}

func TestCommandHandlerList(t *testing.T) {
	r, _ := newCommandRouterForTest(t, time.Second)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/commands", nil))

	var body struct {
		Commands []string `json:"commands"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(body.Commands) != 11 {
		t.Fatalf("expected 11 commands, got %v", body.Commands)
	}
}
