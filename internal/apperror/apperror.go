// Package apperror carries a machine-readable kind alongside every failure the
// auth flows can produce, so the command boundary can pick an envelope status
// without string matching.
package apperror

import (
	"errors"
	"net/http"
)

// Kind classifies an error for logging, metrics and envelope mapping.
type Kind string

const (
	KindValidation     Kind = "VALIDATION"
	KindNotFound       Kind = "NOT_FOUND"
	KindConflict       Kind = "CONFLICT"
	KindAuthentication Kind = "AUTHENTICATION"
	KindSigning        Kind = "SIGNING"
	KindInvalidToken   Kind = "INVALID_TOKEN"
	KindExpiredToken   Kind = "EXPIRED_TOKEN"
	KindInternal       Kind = "INTERNAL"
)

// Status maps a kind to the http-style status carried by response envelopes.
// Business rejections are 400; anything the caller cannot fix is 500.
func (k Kind) Status() int {
	switch k {
	case KindValidation, KindNotFound, KindConflict, KindAuthentication, KindInvalidToken, KindExpiredToken:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Error is the typed error returned by stores, the token issuer and the flows.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// Internal wraps an unclassified failure. A nil cause yields nil.
func Internal(message string, cause error) error {
	if cause == nil {
		return nil
	}
	return Wrap(KindInternal, message, cause)
}

// KindOf returns the kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
