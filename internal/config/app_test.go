package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredIdentityEnv(t *testing.T) {
	t.Helper()
	t.Setenv("IDENTITY_URL", "https://id.example.com")
	t.Setenv("IDENTITY_API_KEY", "anon-key")
}

func TestLoadAppConfig_Defaults(t *testing.T) {
	setRequiredIdentityEnv(t)
	for _, k := range []string{"HTTP_ADDR", "VERSION", "SHUTDOWN_TIMEOUT", "SECURITY_CONFIG",
		"METRICS_REFRESH_SCHEDULE", "IDENTITY_JWT_SECRET", "IDENTITY_TIMEOUT",
		"IDENTITY_RATE_LIMIT", "IDENTITY_BURST"} {
		t.Setenv(k, "")
	}

	cfg, err := LoadAppConfig()

	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "dev", cfg.Version)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "@every 5m", cfg.MetricsRefreshSchedule)
	assert.Equal(t, IdentityConfig{
		URL: "https://id.example.com", APIKey: "anon-key",
		Timeout: 10 * time.Second, RateLimit: 10, Burst: 20,
	}, cfg.Identity)
}

func TestLoadAppConfig_CustomValues(t *testing.T) {
	setRequiredIdentityEnv(t)
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("IDENTITY_JWT_SECRET", "shared-secret")
	t.Setenv("IDENTITY_TIMEOUT", "3s")
	t.Setenv("IDENTITY_RATE_LIMIT", "2.5")
	t.Setenv("IDENTITY_BURST", "4")
	t.Setenv("METRICS_REFRESH_SCHEDULE", "*/10 * * * *")

	cfg, err := LoadAppConfig()

	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "shared-secret", cfg.Identity.JWTSecret)
	assert.Equal(t, 3*time.Second, cfg.Identity.Timeout)
	assert.Equal(t, 2.5, cfg.Identity.RateLimit)
	assert.Equal(t, 4, cfg.Identity.Burst)
	assert.Equal(t, "*/10 * * * *", cfg.MetricsRefreshSchedule)
}

func TestAppConfig_Validate(t *testing.T) {
	valid := func() *AppConfig {
		return &AppConfig{
			Addr: ":8080", ShutdownTimeout: time.Second, MetricsRefreshSchedule: "@every 1m",
			Identity: IdentityConfig{URL: "http://id", APIKey: "k", Timeout: time.Second, RateLimit: 1, Burst: 1},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*AppConfig)
		wantErr string
	}{
		{name: "valid", mutate: func(*AppConfig) {}},
		{name: "missing url", mutate: func(c *AppConfig) { c.Identity.URL = "" }, wantErr: "IDENTITY_URL is required"},
		{name: "missing api key", mutate: func(c *AppConfig) { c.Identity.APIKey = "" }, wantErr: "IDENTITY_API_KEY is required"},
		{name: "zero timeout", mutate: func(c *AppConfig) { c.Identity.Timeout = 0 }, wantErr: "IDENTITY_TIMEOUT"},
		{name: "zero rate", mutate: func(c *AppConfig) { c.Identity.RateLimit = 0 }, wantErr: "IDENTITY_RATE_LIMIT"},
		{name: "zero burst", mutate: func(c *AppConfig) { c.Identity.Burst = 0 }, wantErr: "IDENTITY_BURST"},
		{name: "bad schedule", mutate: func(c *AppConfig) { c.MetricsRefreshSchedule = "sometimes" }, wantErr: "METRICS_REFRESH_SCHEDULE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
