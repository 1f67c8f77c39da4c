package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestKindOfWalksWrappedChain(t *testing.T) {
	base := New(KindConflict, "account already linked")
	wrapped := fmt.Errorf("oauth login: %w", base)

	if got := KindOf(wrapped); got != KindConflict {
		t.Fatalf("expected %s, got %s", KindConflict, got)
	}
	if !errors.Is(wrapped, base) {
		t.Fatal("expected errors.Is to match the sentinel")
	}
	if !IsKind(wrapped, KindConflict) {
		t.Fatal("expected IsKind to match")
	}
}

func TestKindOfDefaultsToInternal(t *testing.T) {
	if got := KindOf(errors.New("boom")); got != KindInternal {
		t.Fatalf("expected internal, got %s", got)
	}
	if got := KindOf(nil); got != "" {
		t.Fatalf("expected empty kind for nil, got %s", got)
	}
}

func TestKindStatusMatrix(t *testing.T) {
	cases := map[Kind]int{
		KindValidation:     http.StatusBadRequest,
		KindNotFound:       http.StatusBadRequest,
		KindConflict:       http.StatusBadRequest,
		KindAuthentication: http.StatusBadRequest,
		KindInvalidToken:   http.StatusBadRequest,
		KindExpiredToken:   http.StatusBadRequest,
		KindSigning:        http.StatusInternalServerError,
		KindInternal:       http.StatusInternalServerError,
	}
	for kind, want := range cases {
		if got := kind.Status(); got != want {
			t.Fatalf("%s: expected %d, got %d", kind, want, got)
		}
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Wrap(KindInternal, "find user", cause)
	if !errors.Is(err, cause) {
		t.Fatal("expected cause in chain")
	}
	if err.Error() != "find user: connection reset" {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if Internal("noop", nil) != nil {
		t.Fatal("expected nil for nil cause")
	}
}
