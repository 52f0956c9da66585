package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/eagd-org/donation-server/internal/domain"
)

// BootstrapAdminID is the sentinel subject carried by tokens issued through
// the bootstrap credential pair, before any admin account exists. Verify
// short-circuits the directory lookup for it.
const BootstrapAdminID = "bootstrap_admin"

// TokenClaims is the claim set embedded in every issued bearer token. The
// admin id travels in the registered "sub" claim.
type TokenClaims struct {
	Username string           `json:"username"`
	Role     domain.AdminRole `json:"role"`
	jwt.RegisteredClaims
}

// SignToken issues a signed HS256 token for the given admin identity,
// expiring after ttl.
func SignToken(secret, issuer string, admin *domain.Admin, ttl time.Duration, now time.Time) (string, error) {
	claims := &TokenClaims{
		Username: admin.Username,
		Role:     admin.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   admin.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ParseToken verifies the signature, issuer and expiry of a raw token string
// and returns its claims. Any failure is normalized to
// domain.ErrTokenExpired so callers need not inspect jwt internals.
func ParseToken(secret, issuer, tokenString string) (*TokenClaims, error) {
	var claims TokenClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return []byte(secret), nil
	}, jwt.WithIssuer(issuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, domain.ErrTokenExpired
	}
	if claims.Subject == "" {
		return nil, domain.ErrTokenExpired
	}
	return &claims, nil
}
