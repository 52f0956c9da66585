// Package handlers contains the HTTP handler set for the donation API and
// the admin auth endpoints.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/eagd-org/donation-server/internal/domain"
	"github.com/eagd-org/donation-server/internal/i18n"
	"github.com/eagd-org/donation-server/internal/infra/geoip"
	"github.com/eagd-org/donation-server/internal/middleware"
	"github.com/eagd-org/donation-server/internal/store"
)

// AuthGate is the slice of the auth service the handlers depend on.
type AuthGate interface {
	Login(ctx context.Context, username, password string) (string, *domain.Admin, error)
	Verify(ctx context.Context, token string) (*domain.Admin, error)
	Setup(ctx context.Context, username, password, email string) (*domain.Admin, error)
}

// App is the handler container; one instance serves all requests.
type App struct {
	Donations store.DonationRepository
	Admins    store.AdminRepository
	Auth      AuthGate
	GeoIP     geoip.CountryResolver
	Logger    zerolog.Logger
}

// NewApp wires the handler set to its collaborators. geo may be nil when no
// GeoIP database is configured.
func NewApp(donations store.DonationRepository, admins store.AdminRepository, gate AuthGate, geo geoip.CountryResolver, logger zerolog.Logger) *App {
	return &App{
		Donations: donations,
		Admins:    admins,
		Auth:      gate,
		GeoIP:     geo,
		Logger:    logger,
	}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// error writes the flat {"error": ...} body used across the API.
func (a *App) error(w http.ResponseWriter, code int, message string) {
	a.json(w, code, map[string]string{"error": message})
}

// validationError localizes the violated rule for the caller.
func (a *App) validationError(w http.ResponseWriter, r *http.Request, ve *domain.ValidationError) {
	locale := middleware.LocaleFromContext(r.Context())
	a.error(w, http.StatusBadRequest, i18n.Message(locale, ve.Field, ve.Rule))
}

// WriteAuthError adapts the error helper for the auth middleware.
func (a *App) WriteAuthError(w http.ResponseWriter, r *http.Request, status int, field, rule, fallback string) {
	a.error(w, status, fallback)
}
