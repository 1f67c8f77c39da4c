package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"net/url"
	"strings"
	"time"

	"github.com/sandeepkv93/identity-core/internal/apperror"
	"github.com/sandeepkv93/identity-core/internal/domain"
	"github.com/sandeepkv93/identity-core/internal/observability"
	"github.com/sandeepkv93/identity-core/internal/repository"
	"github.com/sandeepkv93/identity-core/internal/security"

	"go.opentelemetry.io/otel/attribute"
)

const (
	verifyPath        = "/api/auth/verify"
	verifyAccountPath = "/verify-account"
	verifyUserPath    = "/verify-user"

	defaultLinkTTL = 30 * 24 * time.Hour

	// purposeClaim binds a link token to the flow that issued it.
	purposeClaim       = "typ"
	purposeRegister    = "register"
	purposeConfirm     = "confirm"
	purposeCheckVerify = "check_verify"
)

// AuthConfig holds the link bases and lifetime used by the emailed flows.
type AuthConfig struct {
	BackendURL  string
	FrontendURL string
	LinkTTL     time.Duration
}

type AuthService struct {
	cfg      AuthConfig
	creds    *CredentialStore
	accounts *AccountRegistry
	tokens   TokenSigner
	mailer   MailDispatcher
	logger   *slog.Logger
}

var _ AuthFlows = (*AuthService)(nil)

func NewAuthService(
	cfg AuthConfig,
	creds *CredentialStore,
	accounts *AccountRegistry,
	tokens TokenSigner,
	mailer MailDispatcher,
	logger *slog.Logger,
) *AuthService {
	if cfg.LinkTTL <= 0 {
		cfg.LinkTTL = defaultLinkTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		cfg:      cfg,
		creds:    creds,
		accounts: accounts,
		tokens:   tokens,
		mailer:   mailer,
		logger:   logger,
	}
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (_ *RegisterResult, err error) {
	ctx, span := observability.StartSpan(ctx, "auth.register", attribute.Bool("auth.email_verified", in.EmailVerified))
	defer func() { observability.EndSpan(span, err) }()

	email, err := normalizeEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if in.Password == "" {
		return nil, ErrPasswordRequired
	}
	user, err := s.storeRegistration(ctx, email, in)
	if err != nil {
		return nil, err
	}
	if in.EmailVerified {
		if err := s.creds.MarkVerified(ctx, user.ID); err != nil {
			return nil, err
		}
	}
	user, err = s.creds.FindByID(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	if !in.EmailVerified {
		token, err := s.issueLinkToken(ctx, purposeRegister, security.Claims{"id": user.ID})
		if err != nil {
			return nil, err
		}
		if err := s.dispatch(ctx, user.Email, buildLink(s.cfg.BackendURL, verifyPath, token)); err != nil {
			return nil, err
		}
	}
	return &RegisterResult{User: newUserView(user)}, nil
}

// storeRegistration overwrites an unverified row in place or creates a new
// one. Losing an insert race to a concurrent registration falls back to the
// overwrite path once.
func (s *AuthService) storeRegistration(ctx context.Context, email string, in RegisterInput) (*domain.User, error) {
	role := domain.NormalizeRoleName(in.Role)
	if role == "" {
		role = domain.RoleUser
	}
	for attempt := 0; attempt < 2; attempt++ {
		existing, err := s.creds.FindByEmail(ctx, email)
		switch {
		case err == nil:
			if existing.EmailVerified {
				return nil, ErrAccountExists
			}
			password := in.Password
			if err := s.creds.UpdateByEmail(ctx, email, CredentialUpdate{Password: &password, Role: &role}); err != nil {
				return nil, err
			}
			return existing, nil
		case !errors.Is(err, ErrUserNotFound):
			return nil, err
		}

		created, err := s.creds.Create(ctx, NewUser{
			Email:           email,
			Password:        in.Password,
			Role:            role,
			IsInputPassword: true,
		})
		if err == nil {
			return created, nil
		}
		if !errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, err
		}
		s.logger.InfoContext(ctx, "registration insert raced, retrying as overwrite", "email", email)
	}
	return nil, ErrAccountExists
}

func (s *AuthService) Login(ctx context.Context, email, password string) (_ *LoginResult, err error) {
	ctx, span := observability.StartSpan(ctx, "auth.login")
	defer func() { observability.EndSpan(span, err) }()

	email, err = normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	user, err := s.creds.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrEmailNotFound
		}
		return nil, err
	}
	if !user.EmailVerified {
		return nil, ErrEmailUnverified
	}
	if !s.creds.ComparePassword(password, user.PasswordHash) {
		return nil, ErrIncorrectPassword
	}
	view := newUserView(user)
	token, err := s.issueSessionToken(ctx, view)
	if err != nil {
		return nil, err
	}
	return &LoginResult{User: view, Token: token}, nil
}

// VerifyAccount marks the user verified. A link token takes precedence over a
// raw id.
func (s *AuthService) VerifyAccount(ctx context.Context, in VerifyInput) (_ *UserView, err error) {
	ctx, span := observability.StartSpan(ctx, "auth.verify")
	defer func() { observability.EndSpan(span, err) }()

	id := strings.TrimSpace(in.ID)
	if token := strings.TrimSpace(in.Token); token != "" {
		claims, err := s.verifyToken(ctx, purposeRegister, token)
		if err != nil {
			return nil, err
		}
		claimID, ok := claims.StringClaim("id")
		if !ok || claimID == "" {
			return nil, apperror.New(apperror.KindInvalidToken, "token carries no user id")
		}
		id = claimID
	}
	if id == "" {
		return nil, fmt.Errorf("%w: id", ErrMissingField)
	}
	if err := s.creds.MarkVerified(ctx, id); err != nil {
		return nil, err
	}
	user, err := s.creds.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return newUserView(user), nil
}

// ConfirmAccount mails a signed {email, role} link. Nothing is persisted.
func (s *AuthService) ConfirmAccount(ctx context.Context, email, role string) (_ string, err error) {
	ctx, span := observability.StartSpan(ctx, "auth.confirm")
	defer func() { observability.EndSpan(span, err) }()

	email, err = normalizeEmail(email)
	if err != nil {
		return "", err
	}
	role = domain.NormalizeRoleName(role)
	if role == "" {
		role = domain.RoleUser
	}
	if !isKnownRole(role) {
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}
	token, err := s.issueLinkToken(ctx, purposeConfirm, security.Claims{"email": email, "role": role})
	if err != nil {
		return "", err
	}
	link := buildLink(s.cfg.FrontendURL, verifyAccountPath, token)
	if err := s.dispatch(ctx, email, link); err != nil {
		return "", err
	}
	return link, nil
}

func (s *AuthService) OAuthLogin(ctx context.Context, in OAuthUser) (_ []AccountView, err error) {
	provider := domain.NormalizeProvider(in.Provider)
	ctx, span := observability.StartSpan(ctx, "auth.oauth_login", attribute.String("auth.provider", provider))
	defer func() { observability.EndSpan(span, err) }()

	key := strings.TrimSpace(in.Key)
	userID := strings.TrimSpace(in.UserID)
	if key == "" {
		return nil, fmt.Errorf("%w: key", ErrMissingField)
	}
	if userID == "" {
		return nil, fmt.Errorf("%w: userId", ErrMissingField)
	}

	_, err = s.accounts.FindByProviderAndKey(ctx, provider, key)
	switch {
	case err == nil:
		return nil, ErrAccountLinked
	case !errors.Is(err, ErrAccountNotFound):
		return nil, err
	}
	if _, err := s.creds.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	if _, err := s.accounts.Create(ctx, userID, provider, key, in.Picture); err != nil {
		return nil, err
	}
	return s.listAccounts(ctx, userID)
}

func (s *AuthService) GetAccounts(ctx context.Context, userID string) (_ []AccountView, err error) {
	ctx, span := observability.StartSpan(ctx, "auth.get_accounts")
	defer func() { observability.EndSpan(span, err) }()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: userId", ErrMissingField)
	}
	return s.listAccounts(ctx, userID)
}

// DeleteAccount removes an account owned by userID. An account owned by
// someone else is reported as not found.
func (s *AuthService) DeleteAccount(ctx context.Context, accountID, userID string) (_ []AccountView, err error) {
	ctx, span := observability.StartSpan(ctx, "auth.delete_account")
	defer func() { observability.EndSpan(span, err) }()

	accountID = strings.TrimSpace(accountID)
	userID = strings.TrimSpace(userID)
	if accountID == "" {
		return nil, fmt.Errorf("%w: accountId", ErrMissingField)
	}
	if userID == "" {
		return nil, fmt.Errorf("%w: userId", ErrMissingField)
	}
	account, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.UserID != userID {
		return nil, ErrAccountNotFound
	}
	if err := s.accounts.Delete(ctx, accountID); err != nil {
		return nil, err
	}
	return s.listAccounts(ctx, userID)
}

func (s *AuthService) GetUser(ctx context.Context, userID string) (_ *UserView, err error) {
	ctx, span := observability.StartSpan(ctx, "auth.get_user")
	defer func() { observability.EndSpan(span, err) }()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: userId", ErrMissingField)
	}
	user, err := s.creds.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return newUserView(user), nil
}

// FindAccountByProvider returns a nil User, not an error, when the pair is
// not linked yet.
func (s *AuthService) FindAccountByProvider(ctx context.Context, key, provider string) (_ *FindAccountResult, err error) {
	provider = domain.NormalizeProvider(provider)
	ctx, span := observability.StartSpan(ctx, "auth.find_account", attribute.String("auth.provider", provider))
	defer func() { observability.EndSpan(span, err) }()

	key = strings.TrimSpace(key)
	if key == "" {
		return nil, fmt.Errorf("%w: key", ErrMissingField)
	}
	account, err := s.accounts.FindByProviderAndKey(ctx, provider, key)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return &FindAccountResult{}, nil
		}
		return nil, err
	}
	user, err := s.creds.FindByID(ctx, account.UserID)
	if err != nil {
		return nil, err
	}
	view := newUserView(user)
	token, err := s.issueSessionToken(ctx, view)
	if err != nil {
		return nil, err
	}
	return &FindAccountResult{User: view, Token: token}, nil
}

// CheckVerify mails a signed {email, provider, key} link. Nothing is
// persisted.
func (s *AuthService) CheckVerify(ctx context.Context, email, provider, key string) (_ string, err error) {
	ctx, span := observability.StartSpan(ctx, "auth.check_verify")
	defer func() { observability.EndSpan(span, err) }()

	email, err = normalizeEmail(email)
	if err != nil {
		return "", err
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", fmt.Errorf("%w: key", ErrMissingField)
	}
	claims := security.Claims{"email": email, "provider": domain.NormalizeProvider(provider), "key": key}
	token, err := s.issueLinkToken(ctx, purposeCheckVerify, claims)
	if err != nil {
		return "", err
	}
	link := buildLink(s.cfg.FrontendURL, verifyUserPath, token)
	if err := s.dispatch(ctx, email, link); err != nil {
		return "", err
	}
	return link, nil
}

// LinkAccountWithEmail binds (provider, key) to the user owning email,
// creating an unverified placeholder user when none exists. Repeating the
// call with the same arguments returns the same binding.
func (s *AuthService) LinkAccountWithEmail(ctx context.Context, email, provider, key string) (_ *LinkResult, err error) {
	provider = domain.NormalizeProvider(provider)
	ctx, span := observability.StartSpan(ctx, "auth.link_account", attribute.String("auth.provider", provider))
	defer func() { observability.EndSpan(span, err) }()

	email, err = normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, fmt.Errorf("%w: key", ErrMissingField)
	}
	user, err := s.linkTarget(ctx, email)
	if err != nil {
		return nil, err
	}
	account, err := s.findOrCreateAccount(ctx, user.ID, provider, key)
	if err != nil {
		return nil, err
	}
	views := newAccountViews([]domain.Account{*account})
	return &LinkResult{User: newUserView(user), Account: views[0]}, nil
}

func (s *AuthService) linkTarget(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.creds.FindVerifiedByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}
	// The verified lookup missed, so any row left for this email is unverified.
	// Its password was never proven by the mailbox owner, so it is reset to
	// placeholder credentials before the provider account is bound.
	_, err = s.creds.FindByEmail(ctx, email)
	if err == nil {
		placeholder := false
		if err := s.creds.UpdateByEmail(ctx, email, CredentialUpdate{Password: &email, IsInputPassword: &placeholder}); err != nil {
			return nil, err
		}
		return s.creds.FindByEmail(ctx, email)
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}
	user, err = s.creds.CreatePlaceholder(ctx, email)
	if errors.Is(err, repository.ErrDuplicateEmail) {
		return s.creds.FindByEmail(ctx, email)
	}
	return user, err
}

func (s *AuthService) findOrCreateAccount(ctx context.Context, userID, provider, key string) (*domain.Account, error) {
	account, err := s.accounts.FindByProviderAndKey(ctx, provider, key)
	switch {
	case err == nil:
		if account.UserID != userID {
			return nil, ErrAccountLinked
		}
		return account, nil
	case !errors.Is(err, ErrAccountNotFound):
		return nil, err
	}
	account, err = s.accounts.Create(ctx, userID, provider, key, "")
	if errors.Is(err, repository.ErrDuplicateAccount) {
		return s.findOrCreateAccount(ctx, userID, provider, key)
	}
	return account, err
}

func (s *AuthService) listAccounts(ctx context.Context, userID string) ([]AccountView, error) {
	accounts, err := s.accounts.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return newAccountViews(accounts), nil
}

func (s *AuthService) issueLinkToken(ctx context.Context, purpose string, claims security.Claims) (string, error) {
	claims[purposeClaim] = purpose
	token, err := s.tokens.Issue(claims, s.cfg.LinkTTL)
	observability.RecordAuthTokenEvent(ctx, purpose, tokenOutcome(err))
	return token, err
}

func (s *AuthService) issueSessionToken(ctx context.Context, view *UserView) (string, error) {
	token, err := s.tokens.IssueSession(view.sessionClaims())
	observability.RecordAuthTokenEvent(ctx, "session", tokenOutcome(err))
	return token, err
}

func (s *AuthService) verifyToken(ctx context.Context, purpose, token string) (security.Claims, error) {
	claims, err := s.tokens.Verify(token)
	outcome := "verified"
	switch apperror.KindOf(err) {
	case "":
	case apperror.KindExpiredToken:
		outcome = "expired"
	case apperror.KindInvalidToken:
		outcome = "invalid"
	default:
		outcome = "error"
	}
	if err == nil {
		if got, _ := claims.StringClaim(purposeClaim); got != purpose {
			outcome = "invalid"
			err = apperror.New(apperror.KindInvalidToken, "token was not issued for this flow")
		}
	}
	observability.RecordAuthTokenEvent(ctx, purpose, outcome)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

func (s *AuthService) dispatch(ctx context.Context, email, link string) error {
	msg := MailMessage{Event: EventAuthRegister, Email: email, Link: link}
	if err := s.mailer.Dispatch(ctx, msg); err != nil {
		return apperror.Internal("dispatch mail", err)
	}
	return nil
}

func tokenOutcome(err error) string {
	if err != nil {
		return "error"
	}
	return "issued"
}

func normalizeEmail(raw string) (string, error) {
	email := domain.NormalizeEmail(raw)
	if email == "" {
		return "", fmt.Errorf("%w: email", ErrMissingField)
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", ErrInvalidEmail
	}
	return email, nil
}

func isKnownRole(name string) bool {
	for _, r := range domain.DefaultRoles() {
		if r.Name == name {
			return true
		}
	}
	return false
}

func buildLink(base, path, token string) string {
	return base + path + "?token=" + url.QueryEscape(token)
}
