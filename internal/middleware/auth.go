package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/eagd-org/donation-server/internal/domain"
)

// AdminVerifier resolves a bearer token to an admin identity.
type AdminVerifier interface {
	Verify(ctx context.Context, token string) (*domain.Admin, error)
}

type adminKey struct{}

// ErrorWriter renders an error response in the application's JSON shape.
type ErrorWriter func(w http.ResponseWriter, r *http.Request, status int, field, rule, fallback string)

// RequireAdmin gates a route on a valid bearer token. Missing tokens yield
// 401, signature/expiry failures 403, and tokens referencing a deleted admin
// 401, mirroring the error taxonomy of the auth gate.
func RequireAdmin(verifier AdminVerifier, writeError ErrorWriter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" {
				writeError(w, r, http.StatusUnauthorized, "token", "missing", "Access token required")
				return
			}

			admin, err := verifier.Verify(r.Context(), token)
			if err != nil {
				switch {
				case errors.Is(err, domain.ErrTokenExpired):
					writeError(w, r, http.StatusForbidden, "token", "expired", "Invalid or expired token")
				case errors.Is(err, domain.ErrTokenInvalid), errors.Is(err, domain.ErrMissingToken):
					writeError(w, r, http.StatusUnauthorized, "token", "invalid", "Invalid token")
				default:
					writeError(w, r, http.StatusInternalServerError, "", "", "Internal server error")
				}
				return
			}

			ctx := context.WithValue(r.Context(), adminKey{}, admin)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// AdminFromContext returns the authenticated admin identity, if any.
func AdminFromContext(ctx context.Context) *domain.Admin {
	if v, ok := ctx.Value(adminKey{}).(*domain.Admin); ok {
		return v
	}
	return nil
}

// ContextWithAdmin stamps an admin identity onto the context. Used by tests
// and internal tooling that bypass the HTTP layer.
func ContextWithAdmin(ctx context.Context, admin *domain.Admin) context.Context {
	if admin == nil {
		return ctx
	}
	return context.WithValue(ctx, adminKey{}, admin)
}
