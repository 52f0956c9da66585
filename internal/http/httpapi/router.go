// Package httpapi assembles the chi router: perimeter middleware, the public
// submission endpoint, and the token-gated admin surface.
package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/eagd-org/donation-server/internal/http/handlers"
	"github.com/eagd-org/donation-server/internal/middleware"
)

// Options tunes the perimeter middleware.
type Options struct {
	Logger            zerolog.Logger
	CORSOrigins       []string
	RateLimitRequests int
	RateLimitWindow   time.Duration
	DefaultLocale     string
}

// NewRouter builds the full route tree for the service.
func NewRouter(app *handlers.App, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(opts.Logger),
		middleware.CORS(opts.CORSOrigins),
		middleware.Locale(opts.DefaultLocale),
	)

	r.Route("/api", func(r chi.Router) {
		r.Get("/healthz", app.Health)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(opts.RateLimitRequests, opts.RateLimitWindow))

			requireAdmin := middleware.RequireAdmin(app.Auth, app.WriteAuthError)

			r.Route("/donations", func(r chi.Router) {
				r.Post("/", app.DonationsCreate) // public intake

				r.Group(func(r chi.Router) {
					r.Use(requireAdmin)
					r.Get("/", app.DonationsList)
					r.Get("/stats/summary", app.DonationsStatsSummary)
					r.Get("/{id}", app.DonationsGet)
					r.Put("/{id}", app.DonationsUpdate)
					r.Delete("/{id}", app.DonationsDelete)
				})
			})

			r.Route("/admin", func(r chi.Router) {
				r.Post("/login", app.AdminLogin)
				r.Post("/setup", app.AdminSetup)
				r.With(requireAdmin).Get("/verify", app.AdminVerify)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"Endpoint not found"}`))
	})

	return r
}
