package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const defaultJWTSecret = "dev-secret-change-in-production"

// Supported values for DATABASE_DRIVER.
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

var ErrDefaultSecretInProduction = errors.New("JWT_SECRET must be set in production environment")

// Config holds the runtime settings for the API server. It is built once at
// startup and passed to the components that need it.
type Config struct {
	Port string
	Env  string

	DatabaseDriver string
	DatabaseDSN    string

	JWTSecret string
	JWTExpiry time.Duration

	BcryptCost int

	RateLimitMax    int
	RateLimitWindow time.Duration

	CORSAllowedOrigins []string

	// TrustProxy takes the client address from X-Forwarded-For / X-Real-IP.
	// Only enable it behind a proxy that overwrites those headers.
	TrustProxy bool

	// AuthCheckUser makes the auth gate confirm the token's user still exists.
	AuthCheckUser bool
}

// Load reads the configuration from environment variables, falling back to
// development defaults.
func Load() (Config, error) {
	cfg := Config{
		Port:               getEnv("PORT", "8080"),
		Env:                getEnv("ENV", "development"),
		DatabaseDriver:     getEnv("DATABASE_DRIVER", DriverMySQL),
		DatabaseDSN:        getEnv("DATABASE_DSN", "root:password@tcp(127.0.0.1:3306)/jobs?parseTime=true"),
		JWTSecret:          getEnv("JWT_SECRET", defaultJWTSecret),
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
	}

	var err error
	if cfg.JWTExpiry, err = parseDuration(getEnv("JWT_LIFETIME", "30d")); err != nil {
		return Config{}, fmt.Errorf("JWT_LIFETIME: %w", err)
	}
	if cfg.RateLimitWindow, err = parseDuration(getEnv("RATE_LIMIT_WINDOW", "15m")); err != nil {
		return Config{}, fmt.Errorf("RATE_LIMIT_WINDOW: %w", err)
	}
	if cfg.BcryptCost, err = strconv.Atoi(getEnv("BCRYPT_COST", "10")); err != nil {
		return Config{}, fmt.Errorf("BCRYPT_COST: %w", err)
	}
	if cfg.RateLimitMax, err = strconv.Atoi(getEnv("RATE_LIMIT_MAX", "100")); err != nil {
		return Config{}, fmt.Errorf("RATE_LIMIT_MAX: %w", err)
	}
	if cfg.AuthCheckUser, err = strconv.ParseBool(getEnv("AUTH_CHECK_USER", "false")); err != nil {
		return Config{}, fmt.Errorf("AUTH_CHECK_USER: %w", err)
	}
	if cfg.TrustProxy, err = strconv.ParseBool(getEnv("TRUST_PROXY", "false")); err != nil {
		return Config{}, fmt.Errorf("TRUST_PROXY: %w", err)
	}

	switch cfg.DatabaseDriver {
	case DriverMySQL, DriverPostgres, DriverMemory:
	default:
		return Config{}, fmt.Errorf("DATABASE_DRIVER: unsupported driver %q", cfg.DatabaseDriver)
	}

	if cfg.JWTExpiry <= 0 {
		return Config{}, errors.New("JWT_LIFETIME must be positive")
	}
	if cfg.RateLimitMax <= 0 || cfg.RateLimitWindow <= 0 {
		return Config{}, errors.New("RATE_LIMIT_MAX and RATE_LIMIT_WINDOW must be positive")
	}

	if cfg.Env == "production" && cfg.JWTSecret == defaultJWTSecret {
		return Config{}, ErrDefaultSecretInProduction
	}

	return cfg, nil
}

// parseDuration accepts Go duration strings plus a "d" suffix for whole days,
// so "30d" and "720h" are equivalent.
func parseDuration(s string) (time.Duration, error) {
	if days, ok := strings.CutSuffix(s, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q", s)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}
	return time.ParseDuration(s)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
