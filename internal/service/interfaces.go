package service

import (
	"context"
	"time"

	"github.com/sandeepkv93/identity-core/internal/security"
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(password, encoded string) bool
}

type TokenSigner interface {
	Issue(claims security.Claims, ttl time.Duration) (string, error)
	IssueSession(claims security.Claims) (string, error)
	Verify(token string) (security.Claims, error)
}

// AuthFlows is the set of flows exposed to the command layer.
type AuthFlows interface {
	Register(ctx context.Context, in RegisterInput) (*RegisterResult, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	VerifyAccount(ctx context.Context, in VerifyInput) (*UserView, error)
	ConfirmAccount(ctx context.Context, email, role string) (string, error)
	OAuthLogin(ctx context.Context, in OAuthUser) ([]AccountView, error)
	GetAccounts(ctx context.Context, userID string) ([]AccountView, error)
	DeleteAccount(ctx context.Context, accountID, userID string) ([]AccountView, error)
	GetUser(ctx context.Context, userID string) (*UserView, error)
	FindAccountByProvider(ctx context.Context, key, provider string) (*FindAccountResult, error)
	CheckVerify(ctx context.Context, email, provider, key string) (string, error)
	LinkAccountWithEmail(ctx context.Context, email, provider, key string) (*LinkResult, error)
}
