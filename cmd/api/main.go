package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/eagd-org/donation-server/internal/auth"
	"github.com/eagd-org/donation-server/internal/http/handlers"
	"github.com/eagd-org/donation-server/internal/http/httpapi"
	"github.com/eagd-org/donation-server/internal/infra"
	"github.com/eagd-org/donation-server/internal/infra/geoip"
	"github.com/eagd-org/donation-server/internal/store"
	"github.com/eagd-org/donation-server/migrations"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()
	dbpool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid database configuration")
	}
	defer dbpool.Close()

	// A store that is down at startup must not take the process with it:
	// requests fail with a storage error until connectivity recovers.
	if err := infra.PingDB(ctx, dbpool); err != nil {
		logger.Error().Err(err).Msg("database unreachable, serving without storage until it recovers")
	} else if err := migrations.Migrate(infra.StdDB(dbpool)); err != nil {
		logger.Error().Err(err).Msg("schema migration failed")
	}

	resolver, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Error().Err(err).Msg("geoip database unavailable, source country disabled")
		resolver = nil
	}
	if resolver != nil {
		defer resolver.Close()
	}

	var bootstrap *auth.BootstrapAdmin
	if cfg.BootstrapEnabled() {
		bootstrap = &auth.BootstrapAdmin{
			Username: cfg.BootstrapAdminUsername,
			Password: cfg.BootstrapAdminPassword,
			Email:    cfg.BootstrapAdminEmail,
		}
		logger.Warn().Msg("bootstrap admin credentials enabled; run /api/admin/setup and unset them")
	}

	admins := store.NewAdminRepository(dbpool)
	donations := store.NewDonationRepository(dbpool)
	gate := auth.NewService(admins, cfg.JWTSecret, cfg.TokenIssuer, cfg.TokenDuration, bootstrap, logger)

	app := handlers.NewApp(donations, admins, gate, resolver, logger)

	router := httpapi.NewRouter(app, httpapi.Options{
		Logger:            logger,
		CORSOrigins:       cfg.CORSAllowedOrigins,
		RateLimitRequests: cfg.RateLimitRequests,
		RateLimitWindow:   cfg.RateLimitWindow,
		DefaultLocale:     cfg.DefaultLocale,
	})

	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("donation API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
