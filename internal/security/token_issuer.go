package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sandeepkv93/identity-core/internal/apperror"
)

// Claims is the payload carried by issued tokens.
type Claims map[string]any

// TokenIssuer signs and verifies HS256 tokens with a single process secret.
type TokenIssuer struct {
	secret     []byte
	sessionTTL time.Duration
	now        func() time.Time
}

func NewTokenIssuer(secret string, sessionTTL time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), sessionTTL: sessionTTL, now: time.Now}
}

// WithClock replaces the issuer clock. Issue and Verify both read it.
func (i *TokenIssuer) WithClock(now func() time.Time) *TokenIssuer {
	i.now = now
	return i
}

// Issue signs claims with exp = now + ttl. A non-positive ttl yields a token
// that is already expired.
func (i *TokenIssuer) Issue(claims Claims, ttl time.Duration) (string, error) {
	now := i.now()
	exp := now.Add(ttl)
	if ttl <= 0 {
		exp = now.Add(-time.Second)
	}
	return i.sign(claims, now, &exp)
}

// IssueSession signs claims with the configured session TTL; zero means the
// token carries no exp claim.
func (i *TokenIssuer) IssueSession(claims Claims) (string, error) {
	now := i.now()
	if i.sessionTTL <= 0 {
		return i.sign(claims, now, nil)
	}
	exp := now.Add(i.sessionTTL)
	return i.sign(claims, now, &exp)
}

func (i *TokenIssuer) sign(claims Claims, now time.Time, exp *time.Time) (string, error) {
	if len(i.secret) == 0 {
		return "", apperror.New(apperror.KindSigning, "signing secret unavailable")
	}
	mc := jwt.MapClaims{}
	for k, v := range claims {
		mc[k] = v
	}
	mc["iat"] = jwt.NewNumericDate(now)
	if exp != nil {
		mc["exp"] = jwt.NewNumericDate(*exp)
	} else {
		delete(mc, "exp")
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, mc).SignedString(i.secret)
	if err != nil {
		return "", apperror.Wrap(apperror.KindSigning, "sign token", err)
	}
	return signed, nil
}

// Verify checks signature, algorithm and expiry and returns the claims with
// iat and exp stripped.
func (i *TokenIssuer) Verify(token string) (Claims, error) {
	if len(i.secret) == 0 {
		return nil, apperror.New(apperror.KindSigning, "signing secret unavailable")
	}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(i.now),
	)
	mc := jwt.MapClaims{}
	_, err := parser.ParseWithClaims(token, mc, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperror.Wrap(apperror.KindExpiredToken, "token expired", err)
		}
		return nil, apperror.Wrap(apperror.KindInvalidToken, "invalid token", err)
	}
	out := make(Claims, len(mc))
	for k, v := range mc {
		if k == "iat" || k == "exp" {
			continue
		}
		out[k] = v
	}
	return out, nil
}

// StringClaim reads a string claim, reporting false when absent or not a string.
func (c Claims) StringClaim(key string) (string, bool) {
	v, ok := c[key].(string)
	return v, ok && v != ""
}
