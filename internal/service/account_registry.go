package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sandeepkv93/identity-core/internal/apperror"
	"github.com/sandeepkv93/identity-core/internal/domain"
	"github.com/sandeepkv93/identity-core/internal/repository"
)

// AccountRegistry owns provider accounts bound to users.
type AccountRegistry struct {
	accounts repository.AccountRepository
}

func NewAccountRegistry(accounts repository.AccountRepository) *AccountRegistry {
	return &AccountRegistry{accounts: accounts}
}

func (r *AccountRegistry) FindByProviderAndKey(ctx context.Context, provider, key string) (*domain.Account, error) {
	a, err := r.accounts.FindByProviderAndKey(ctx, provider, key)
	return a, accountLookupError(err)
}

func (r *AccountRegistry) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	a, err := r.accounts.FindByID(ctx, id)
	return a, accountLookupError(err)
}

// Create checks the (provider, key) pair first and relies on the unique index
// for concurrent inserts. Both paths yield ErrAccountLinked.
func (r *AccountRegistry) Create(ctx context.Context, userID, provider, key, avatar string) (*domain.Account, error) {
	_, err := r.accounts.FindByProviderAndKey(ctx, provider, key)
	switch {
	case err == nil:
		return nil, ErrAccountLinked
	case !errors.Is(err, repository.ErrAccountNotFound):
		return nil, apperror.Internal("account store", err)
	}
	a := &domain.Account{UserID: userID, Provider: provider, ExternalKey: key, Avatar: avatar}
	if err := r.accounts.Create(ctx, a); err != nil {
		if errors.Is(err, repository.ErrDuplicateAccount) {
			return nil, fmt.Errorf("%w: %w", ErrAccountLinked, err)
		}
		return nil, apperror.Internal("create account", err)
	}
	return a, nil
}

func (r *AccountRegistry) ListByUser(ctx context.Context, userID string) ([]domain.Account, error) {
	accounts, err := r.accounts.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperror.Internal("list accounts", err)
	}
	return accounts, nil
}

func (r *AccountRegistry) Delete(ctx context.Context, id string) error {
	return accountLookupError(r.accounts.DeleteByID(ctx, id))
}

func accountLookupError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrAccountNotFound):
		return ErrAccountNotFound
	default:
		return apperror.Internal("account store", err)
	}
}
