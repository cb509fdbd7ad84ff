package config

import (
	"fmt"
	"os"
	"time"
)

// Config holds every runtime setting, loaded once at process start and
// passed by reference to the components that need it.
type Config struct {
	Env  string
	Port string

	DatabaseURL string

	JWTSecret string
	JWTExpiry time.Duration

	StripeSecretKey string
}

func Load() (*Config, error) {
	cfg := &Config{
		Env:             getEnv("APP_ENV", "development"),
		Port:            getEnv("PORT", "5000"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		StripeSecretKey: os.Getenv("STRIPE_SECRET_KEY"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	expiry := getEnv("JWT_EXPIRY", "24h")
	d, err := time.ParseDuration(expiry)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRY %q: %w", expiry, err)
	}
	cfg.JWTExpiry = d

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
