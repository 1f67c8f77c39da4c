package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sandeepkv93/identity-core/internal/command"
	"github.com/sandeepkv93/identity-core/internal/http/response"
)

// LangParam overrides Accept-Language for envelope messages.
const LangParam = "lang"

type CommandHandler struct {
	dispatcher *command.Dispatcher
	messages   *command.Messages
	timeout    time.Duration
}

func NewCommandHandler(dispatcher *command.Dispatcher, messages *command.Messages, timeout time.Duration) *CommandHandler {
	return &CommandHandler{dispatcher: dispatcher, messages: messages, timeout: timeout}
}

// Execute runs the command named in the path with the request body as its
// payload. The HTTP status mirrors the envelope status.
func (h *CommandHandler) Execute(w http.ResponseWriter, r *http.Request) {
	tag := h.messages.Resolve(r.URL.Query().Get(LangParam), r.Header.Get("Accept-Language"))
	w.Header().Set("Content-Language", tag.String())

	payload, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			response.Error(w, r, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", "request body too large", nil)
			return
		}
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "unable to read request body", nil)
		return
	}

	ctx := r.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}
	env := h.dispatcher.Dispatch(ctx, tag, chi.URLParam(r, "command"), payload)
	response.JSON(w, r, env.Status, env)
}

// List returns the registered command names.
func (h *CommandHandler) List(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusOK, map[string]any{"commands": h.dispatcher.Commands()})
}
