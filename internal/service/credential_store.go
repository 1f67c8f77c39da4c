package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sandeepkv93/identity-core/internal/apperror"
	"github.com/sandeepkv93/identity-core/internal/domain"
	"github.com/sandeepkv93/identity-core/internal/repository"
)

// NewUser carries the fields for CredentialStore.Create. Role is a display
// name and defaults to USER.
type NewUser struct {
	Email           string
	Password        string
	Role            string
	IsInputPassword bool
	EmailVerified   bool
}

// CredentialUpdate is a partial overwrite; nil fields are kept. A new
// Password counts as user supplied unless IsInputPassword says otherwise.
type CredentialUpdate struct {
	Password        *string
	IsInputPassword *bool
	Role            *string
}

// CredentialStore owns user records and their password credentials.
type CredentialStore struct {
	users  repository.UserRepository
	roles  repository.RoleRepository
	hasher PasswordHasher
}

func NewCredentialStore(users repository.UserRepository, roles repository.RoleRepository, hasher PasswordHasher) *CredentialStore {
	return &CredentialStore{users: users, roles: roles, hasher: hasher}
}

func (s *CredentialStore) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, err := s.users.FindByEmail(ctx, email)
	return u, userLookupError(err)
}

func (s *CredentialStore) FindByID(ctx context.Context, id string) (*domain.User, error) {
	u, err := s.users.FindByID(ctx, id)
	return u, userLookupError(err)
}

func (s *CredentialStore) FindVerifiedByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, err := s.users.FindVerifiedByEmail(ctx, email)
	return u, userLookupError(err)
}

// Create hashes the password and inserts a new user. A concurrent insert of
// the same email surfaces as ErrAccountExists wrapping repository.ErrDuplicateEmail.
func (s *CredentialStore) Create(ctx context.Context, in NewUser) (*domain.User, error) {
	roleID, err := s.resolveRole(ctx, in.Role)
	if err != nil {
		return nil, err
	}
	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, apperror.Internal("hash password", err)
	}
	u := &domain.User{
		Email:           in.Email,
		PasswordHash:    hash,
		IsInputPassword: in.IsInputPassword,
		EmailVerified:   in.EmailVerified,
		RoleID:          roleID,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, fmt.Errorf("%w: %w", ErrAccountExists, err)
		}
		return nil, apperror.Internal("create user", err)
	}
	return u, nil
}

// CreatePlaceholder inserts an unverified user whose password is its own
// email. The credential is deterministic; callers must not treat it as a
// secret.
func (s *CredentialStore) CreatePlaceholder(ctx context.Context, email string) (*domain.User, error) {
	return s.Create(ctx, NewUser{Email: email, Password: email, IsInputPassword: false})
}

// UpdateByEmail overwrites credential fields in place. It does not check the
// verified flag.
func (s *CredentialStore) UpdateByEmail(ctx context.Context, email string, in CredentialUpdate) error {
	var update repository.UserUpdate
	if in.Password != nil {
		hash, err := s.hasher.Hash(*in.Password)
		if err != nil {
			return apperror.Internal("hash password", err)
		}
		isInput := true
		if in.IsInputPassword != nil {
			isInput = *in.IsInputPassword
		}
		update.PasswordHash = &hash
		update.IsInputPassword = &isInput
	}
	if in.Role != nil {
		roleID, err := s.resolveRole(ctx, *in.Role)
		if err != nil {
			return err
		}
		update.RoleID = &roleID
	}
	return userLookupError(s.users.UpdateByEmail(ctx, email, update))
}

// MarkVerified is monotonic: verifying twice succeeds.
func (s *CredentialStore) MarkVerified(ctx context.Context, id string) error {
	return userLookupError(s.users.MarkEmailVerified(ctx, id))
}

func (s *CredentialStore) ComparePassword(plaintext, hash string) bool {
	return s.hasher.Compare(plaintext, hash)
}

func (s *CredentialStore) resolveRole(ctx context.Context, name string) (uint, error) {
	name = domain.NormalizeRoleName(name)
	if name == "" {
		return domain.RoleUserID, nil
	}
	role, err := s.roles.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrRoleNotFound) {
			return 0, fmt.Errorf("%w: %q", ErrUnknownRole, name)
		}
		return 0, apperror.Internal("resolve role", err)
	}
	return role.ID, nil
}

func userLookupError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrUserNotFound):
		return ErrUserNotFound
	default:
		return apperror.Internal("user store", err)
	}
}
