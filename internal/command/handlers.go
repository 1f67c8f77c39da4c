package command

import (
	"context"
	"net/http"

	"github.com/sandeepkv93/identity-core/internal/service"
)

type registerRequest struct {
	Email         string `json:"email"`
	Password      string `json:"password"`
	Role          string `json:"role"`
	EmailVerified bool   `json:"emailVerified"`
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type verifyRequest struct {
	ID    string `json:"id"`
	Token string `json:"token"`
}

type confirmRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

type oauthLoginRequest struct {
	User struct {
		UserID   string `json:"userId"`
		Provider string `json:"provider"`
		Key      string `json:"key"`
		Picture  string `json:"picture"`
	} `json:"user"`
}

type userRequest struct {
	UserID string `json:"userId"`
}

type deleteAccountRequest struct {
	AccountID string `json:"accountId"`
	UserID    string `json:"userId"`
}

type providerKeyRequest struct {
	Email    string `json:"email"`
	Provider string `json:"provider"`
	Key      string `json:"key"`
}

func (d *Dispatcher) register(ctx context.Context, payload []byte) (result, error) {
	var req registerRequest
	if err := decode(payload, &req); err != nil {
		return result{}, err
	}
	res, err := d.flows.Register(ctx, service.RegisterInput{
		Email:         req.Email,
		Password:      req.Password,
		Role:          req.Role,
		EmailVerified: req.EmailVerified,
	})
	if err != nil {
		return result{}, err
	}
	return result{status: http.StatusCreated, message: MsgAccountCreated}.withUser(res.User), nil
}

func (d *Dispatcher) login(ctx context.Context, payload []byte) (result, error) {
	var req credentialsRequest
	if err := decode(payload, &req); err != nil {
		return result{}, err
	}
	res, err := d.flows.Login(ctx, req.Email, req.Password)
	if err != nil {
		return result{}, err
	}
	return ok(MsgLoginSucceeded).withUser(res.User).withToken(res.Token), nil
}

func (d *Dispatcher) verify(ctx context.Context, payload []byte) (result, error) {
	var req verifyRequest
	if err := decode(payload, &req); err != nil {
		return result{}, err
	}
	user, err := d.flows.VerifyAccount(ctx, service.VerifyInput{ID: req.ID, Token: req.Token})
	if err != nil {
		return result{}, err
	}
	return ok(MsgEmailVerified).withUser(user), nil
}

func (d *Dispatcher) confirm(ctx context.Context, payload []byte) (result, error) {
	var req confirmRequest
	if err := decode(payload, &req); err != nil {
		return result{}, err
	}
	link, err := d.flows.ConfirmAccount(ctx, req.Email, req.Role)
	if err != nil {
		return result{}, err
	}
	return ok(MsgMailSent).withLink(link), nil
}

func (d *Dispatcher) oauthLogin(ctx context.Context, payload []byte) (result, error) {
	var req oauthLoginRequest
	if err := decode(payload, &req); err != nil {
		return result{}, err
	}
	accounts, err := d.flows.OAuthLogin(ctx, service.OAuthUser{
		UserID:   req.User.UserID,
		Provider: req.User.Provider,
		Key:      req.User.Key,
		Picture:  req.User.Picture,
	})
	if err != nil {
		return result{}, err
	}
	return ok(MsgLinkCreated).withData(accounts), nil
}

func (d *Dispatcher) getAccounts(ctx context.Context, payload []byte) (result, error) {
	var req userRequest
	if err := decode(payload, &req); err != nil {
		return result{}, err
	}
	accounts, err := d.flows.GetAccounts(ctx, req.UserID)
	if err != nil {
		return result{}, err
	}
	return ok(MsgAccountsListed).withData(accounts), nil
}

func (d *Dispatcher) deleteAccount(ctx context.Context, payload []byte) (result, error) {
	var req deleteAccountRequest
	if err := decode(payload, &req); err != nil {
		return result{}, err
	}
	accounts, err := d.flows.DeleteAccount(ctx, req.AccountID, req.UserID)
	if err != nil {
		return result{}, err
	}
	return ok(MsgAccountDeleted).withData(accounts), nil
}

func (d *Dispatcher) getUser(ctx context.Context, payload []byte) (result, error) {
	var req userRequest
	if err := decode(payload, &req); err != nil {
		return result{}, err
	}
	user, err := d.flows.GetUser(ctx, req.UserID)
	if err != nil {
		return result{}, err
	}
	return ok(MsgUserFetched).withData(user), nil
}

// findAccount reports an unlinked pair as a 200 with data {"user": null}.
func (d *Dispatcher) findAccount(ctx context.Context, payload []byte) (result, error) {
	var req providerKeyRequest
	if err := decode(payload, &req); err != nil {
		return result{}, err
	}
	res, err := d.flows.FindAccountByProvider(ctx, req.Key, req.Provider)
	if err != nil {
		return result{}, err
	}
	if res.User == nil {
		return ok(MsgAccountNotFound).withData(res), nil
	}
	return ok(MsgUserFetched).withData(res), nil
}

func (d *Dispatcher) checkVerify(ctx context.Context, payload []byte) (result, error) {
	var req providerKeyRequest
	if err := decode(payload, &req); err != nil {
		return result{}, err
	}
	link, err := d.flows.CheckVerify(ctx, req.Email, req.Provider, req.Key)
	if err != nil {
		return result{}, err
	}
	return ok(MsgMailSent).withLink(link), nil
}

func (d *Dispatcher) linkAccount(ctx context.Context, payload []byte) (result, error) {
	var req providerKeyRequest
	if err := decode(payload, &req); err != nil {
		return result{}, err
	}
	if _, err := d.flows.LinkAccountWithEmail(ctx, req.Email, req.Provider, req.Key); err != nil {
		return result{}, err
	}
	return ok(MsgAccountLinked), nil
}
