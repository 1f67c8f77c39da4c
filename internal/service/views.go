package service

import (
	"time"

	"github.com/sandeepkv93/identity-core/internal/domain"
	"github.com/sandeepkv93/identity-core/internal/security"
)

// UserView is the user record returned by flows and embedded in session
// tokens. It never carries the password hash.
type UserView struct {
	ID              string     `json:"id"`
	Email           string     `json:"email"`
	IsInputPassword bool       `json:"isInputPassword"`
	EmailVerified   bool       `json:"emailVerified"`
	EmailVerifiedAt *time.Time `json:"emailVerifiedAt,omitempty"`
	Role            string     `json:"role"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

func newUserView(u *domain.User) *UserView {
	return &UserView{
		ID:              u.ID,
		Email:           u.Email,
		IsInputPassword: u.IsInputPassword,
		EmailVerified:   u.EmailVerified,
		EmailVerifiedAt: u.EmailVerifiedAt,
		Role:            u.RoleName(),
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}

func (v *UserView) sessionClaims() security.Claims {
	return security.Claims{
		"id":              v.ID,
		"email":           v.Email,
		"isInputPassword": v.IsInputPassword,
		"emailVerified":   v.EmailVerified,
		"role":            v.Role,
	}
}

type AccountView struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Provider  string    `json:"provider"`
	Key       string    `json:"key"`
	Avatar    string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func newAccountViews(accounts []domain.Account) []AccountView {
	out := make([]AccountView, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, AccountView{
			ID:        a.ID,
			UserID:    a.UserID,
			Provider:  a.Provider,
			Key:       a.ExternalKey,
			Avatar:    a.Avatar,
			CreatedAt: a.CreatedAt,
		})
	}
	return out
}

type RegisterInput struct {
	Email         string
	Password      string
	Role          string
	EmailVerified bool
}

// RegisterResult carries the stored user only. The verification link is
// delivered by mail and never returned to the caller.
type RegisterResult struct {
	User *UserView
}

type LoginResult struct {
	User  *UserView
	Token string
}

// VerifyInput names the user either directly by ID or through the
// registration link token.
type VerifyInput struct {
	ID    string
	Token string
}

type OAuthUser struct {
	UserID   string
	Provider string
	Key      string
	Picture  string
}

// FindAccountResult has a nil User when no account is linked yet.
type FindAccountResult struct {
	User  *UserView `json:"user"`
	Token string    `json:"token,omitempty"`
}

type LinkResult struct {
	User    *UserView
	Account AccountView
}
