package security

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sandeepkv93/identity-core/internal/apperror"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func fixedClock(ts time.Time) func() time.Time {
	return func() time.Time { return ts }
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, 0)
	token, err := issuer.Issue(Claims{"id": "u-1"}, time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	claims, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if id, ok := claims.StringClaim("id"); !ok || id != "u-1" {
		t.Fatalf("expected id claim u-1, got %v", claims)
	}
	if _, ok := claims["exp"]; ok {
		t.Fatal("expected exp to be stripped from returned claims")
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	cases := []struct {
		name string
		ttl  time.Duration
	}{
		{name: "zero ttl", ttl: 0},
		{name: "negative ttl", ttl: -time.Hour},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			issuer := NewTokenIssuer(testSecret, 0)
			token, err := issuer.Issue(Claims{"id": "u-1"}, tc.ttl)
			if err != nil {
				t.Fatalf("issue: %v", err)
			}
			_, err = issuer.Verify(token)
			if !apperror.IsKind(err, apperror.KindExpiredToken) {
				t.Fatalf("expected expired token error, got %v", err)
			}
		})
	}
}

func TestExpiryEvaluatedAtVerification(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	issuer := NewTokenIssuer(testSecret, 0).WithClock(fixedClock(start))
	token, err := issuer.Issue(Claims{"email": "a@x.com"}, 30*24*time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := issuer.Verify(token); err != nil {
		t.Fatalf("expected valid token, got %v", err)
	}
	issuer.WithClock(fixedClock(start.Add(31 * 24 * time.Hour)))
	if _, err := issuer.Verify(token); !apperror.IsKind(err, apperror.KindExpiredToken) {
		t.Fatalf("expected expired after 31 days, got %v", err)
	}
}

func TestVerifyTamperedToken(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, 0)
	token, err := issuer.Issue(Claims{"id": "u-1"}, time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	parts := strings.Split(token, ".")
	parts[1] = base64.RawURLEncoding.EncodeToString([]byte(`{"id":"u-2","exp":4102444800}`))
	tampered := strings.Join(parts, ".")

	if _, err := issuer.Verify(tampered); !apperror.IsKind(err, apperror.KindInvalidToken) {
		t.Fatalf("expected invalid token error, got %v", err)
	}
	if _, err := issuer.Verify("not-a-token"); !apperror.IsKind(err, apperror.KindInvalidToken) {
		t.Fatalf("expected invalid token error for malformed input, got %v", err)
	}
	other := NewTokenIssuer("ffffffffffffffffffffffffffffffff", 0)
	if _, err := other.Verify(token); !apperror.IsKind(err, apperror.KindInvalidToken) {
		t.Fatalf("expected invalid token error for foreign secret, got %v", err)
	}
}

func TestVerifyRejectsUnexpectedAlgorithm(t *testing.T) {
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"id": "u-1"}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}
	issuer := NewTokenIssuer(testSecret, 0)
	if _, err := issuer.Verify(unsigned); !apperror.IsKind(err, apperror.KindInvalidToken) {
		t.Fatalf("expected invalid token error, got %v", err)
	}
}

func TestIssueWithoutSecretIsSigningError(t *testing.T) {
	issuer := NewTokenIssuer("", 0)
	if _, err := issuer.Issue(Claims{"id": "u-1"}, time.Hour); !apperror.IsKind(err, apperror.KindSigning) {
		t.Fatalf("expected signing error, got %v", err)
	}
}

func TestIssueSessionTTL(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	unbounded := NewTokenIssuer(testSecret, 0).WithClock(fixedClock(start))
	token, err := unbounded.IssueSession(Claims{"id": "u-1"})
	if err != nil {
		t.Fatalf("issue session: %v", err)
	}
	unbounded.WithClock(fixedClock(start.AddDate(10, 0, 0)))
	if _, err := unbounded.Verify(token); err != nil {
		t.Fatalf("expected session token without exp to stay valid, got %v", err)
	}

	bounded := NewTokenIssuer(testSecret, 5*time.Hour).WithClock(fixedClock(start))
	token, err = bounded.IssueSession(Claims{"id": "u-1", "exp": 1})
	if err != nil {
		t.Fatalf("issue session: %v", err)
	}
	bounded.WithClock(fixedClock(start.Add(6 * time.Hour)))
	if _, err := bounded.Verify(token); !apperror.IsKind(err, apperror.KindExpiredToken) {
		t.Fatalf("expected expired session token, got %v", err)
	}
}
