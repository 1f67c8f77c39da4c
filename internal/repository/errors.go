package repository

import (
	"context"
	"errors"

	"github.com/sandeepkv93/identity-core/internal/observability"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrDuplicateEmail   = errors.New("email already exists")
	ErrRoleNotFound     = errors.New("role not found")
	ErrAccountNotFound  = errors.New("account not found")
	ErrDuplicateAccount = errors.New("account already exists")
)

// translate maps gorm sentinels onto repository sentinels.
func translate(err error, notFound, duplicate error) error {
	switch {
	case err == nil:
		return nil
	case notFound != nil && errors.Is(err, gorm.ErrRecordNotFound):
		return notFound
	case duplicate != nil && errors.Is(err, gorm.ErrDuplicatedKey):
		return duplicate
	default:
		return err
	}
}

func recordOperation(ctx context.Context, repo, op string, err error) {
	outcome := "success"
	switch {
	case err == nil:
	case errors.Is(err, ErrUserNotFound), errors.Is(err, ErrRoleNotFound), errors.Is(err, ErrAccountNotFound):
		outcome = "not_found"
	case errors.Is(err, ErrDuplicateEmail), errors.Is(err, ErrDuplicateAccount):
		outcome = "conflict"
	default:
		outcome = "error"
	}
	observability.RecordRepositoryOperation(ctx, repo, op, outcome)
}
