package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"

	"github.com/eagd-org/donation-server/internal/i18n"
)

type localeContextKey struct{}

// LocaleKey identifies the negotiated locale within a request context.
var LocaleKey = localeContextKey{}

// Locale negotiates the response locale (X-Locale override, then
// Accept-Language) and stores it on the request context for the handlers'
// error messages.
func Locale(defaultLocale string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			locale := i18n.MatchLocale(r.Header.Get("X-Locale"), r.Header.Get("Accept-Language"), defaultLocale)
			ctx := context.WithValue(r.Context(), LocaleKey, locale)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// LocaleFromContext returns the negotiated locale, defaulting to Turkish.
func LocaleFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(LocaleKey).(string); ok {
		return v
	}
	return "tr"
}

// ClientIP returns the best-effort client IP address for the request.
func ClientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	if xf := r.Header.Get("X-Forwarded-For"); xf != "" {
		parts := strings.Split(xf, ",")
		if len(parts) > 0 {
			return strings.TrimSpace(parts[0])
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
