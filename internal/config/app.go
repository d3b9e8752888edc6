package config

import (
	"errors"
	"fmt"
	"time"

	envcfg "notes-backend/pkg/config"
)

// IdentityConfig configures the identity provider client.
type IdentityConfig struct {
	URL       string
	APIKey    string
	JWTSecret string // optional; enables local token verification
	Timeout   time.Duration
	RateLimit float64 // outbound requests per second
	Burst     int
}

// AppConfig holds the server settings read from the environment.
type AppConfig struct {
	Addr                   string
	Version                string
	ShutdownTimeout        time.Duration
	SecurityConfigPath     string
	MetricsRefreshSchedule string
	Identity               IdentityConfig
}

// LoadAppConfig reads the server configuration from environment variables and validates it.
func LoadAppConfig() (*AppConfig, error) {
	cfg := &AppConfig{
		Addr:                   envcfg.GetEnvString("HTTP_ADDR", ":8080"),
		Version:                envcfg.GetEnvString("VERSION", "dev"),
		ShutdownTimeout:        envcfg.GetEnvDuration("SHUTDOWN_TIMEOUT", 5*time.Second),
		SecurityConfigPath:     envcfg.GetEnvString("SECURITY_CONFIG", ""),
		MetricsRefreshSchedule: envcfg.GetEnvString("METRICS_REFRESH_SCHEDULE", "@every 5m"),
		Identity: IdentityConfig{
			URL:       envcfg.GetEnvString("IDENTITY_URL", ""),
			APIKey:    envcfg.GetEnvString("IDENTITY_API_KEY", ""),
			JWTSecret: envcfg.GetEnvString("IDENTITY_JWT_SECRET", ""),
			Timeout:   envcfg.GetEnvDuration("IDENTITY_TIMEOUT", 10*time.Second),
			RateLimit: envcfg.GetEnvFloat("IDENTITY_RATE_LIMIT", 10),
			Burst:     envcfg.GetEnvInt("IDENTITY_BURST", 20),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks required settings and value ranges.
func (c *AppConfig) Validate() error {
	if c.Identity.URL == "" {
		return errors.New("IDENTITY_URL is required")
	}
	if c.Identity.APIKey == "" {
		return errors.New("IDENTITY_API_KEY is required")
	}
	if err := envcfg.ValidatePositiveDuration(c.Identity.Timeout); err != nil {
		return fmt.Errorf("IDENTITY_TIMEOUT: %w", err)
	}
	if c.Identity.RateLimit <= 0 {
		return fmt.Errorf("IDENTITY_RATE_LIMIT must be positive, got %v", c.Identity.RateLimit)
	}
	if c.Identity.Burst < 1 {
		return fmt.Errorf("IDENTITY_BURST must be at least 1, got %d", c.Identity.Burst)
	}
	if err := envcfg.ValidatePositiveDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("SHUTDOWN_TIMEOUT: %w", err)
	}
	if err := envcfg.ValidateCronSchedule(c.MetricsRefreshSchedule); err != nil {
		return fmt.Errorf("METRICS_REFRESH_SCHEDULE: %w", err)
	}
	return nil
}
