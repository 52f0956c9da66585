package infra

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv      string
	Port        string
	DatabaseURL string

	JWTSecret     string
	TokenIssuer   string
	TokenDuration time.Duration

	// Bootstrap credentials accepted by login before any admin account
	// exists. Both must be supplied externally; when either is empty the
	// bootstrap path is disabled.
	BootstrapAdminUsername string
	BootstrapAdminPassword string
	BootstrapAdminEmail    string

	GeoIPDBPath        string
	CORSAllowedOrigins []string

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration

	RateLimitRequests int
	RateLimitWindow   time.Duration

	DefaultLocale string
}

// LoadConfig loads configuration from environment variables and applies defaults
// where needed. DATABASE_URL and JWT_SECRET are mandatory and carry no embedded
// fallback values.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:      getEnv("APP_ENV", "development"),
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),

		JWTSecret:     os.Getenv("JWT_SECRET"),
		TokenIssuer:   getEnv("TOKEN_ISSUER", "eagd-donations"),
		TokenDuration: time.Minute * time.Duration(getEnvInt("TOKEN_TTL_MINUTES", 120)),

		BootstrapAdminUsername: os.Getenv("BOOTSTRAP_ADMIN_USERNAME"),
		BootstrapAdminPassword: os.Getenv("BOOTSTRAP_ADMIN_PASSWORD"),
		BootstrapAdminEmail:    getEnv("BOOTSTRAP_ADMIN_EMAIL", "admin@eagd.org"),

		GeoIPDBPath:        os.Getenv("GEOIP_DB_PATH"),
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),

		HTTPReadTimeout:  time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout: time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 30)),
		HTTPIdleTimeout:  time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),

		RateLimitRequests: getEnvInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:   time.Minute * time.Duration(getEnvInt("RATE_LIMIT_WINDOW_MINUTES", 15)),

		DefaultLocale: getEnv("DEFAULT_LOCALE", "tr"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

// BootstrapEnabled reports whether the first-run bootstrap login is configured.
func (c *Config) BootstrapEnabled() bool {
	return c.BootstrapAdminUsername != "" && c.BootstrapAdminPassword != ""
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
