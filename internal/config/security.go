// Package config loads the application's security and summary policy.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	envcfg "notes-backend/pkg/config"
)

// Summary sentence bounds applied when the policy file does not set them.
const (
	DefaultSummarySentences = 3
	DefaultSummaryMin       = 1
	DefaultSummaryMax       = 10
)

// DefaultMinPasswordLength matches the identity provider's own default.
const DefaultMinPasswordLength = 6

// AuthPolicy configures local credential checks done before calling the identity provider.
type AuthPolicy struct {
	MinPasswordLength int `yaml:"min_password_length"`
}

// SummaryPolicy configures how max_sentences is interpreted by the summary endpoint.
type SummaryPolicy struct {
	DefaultSentences int `yaml:"default_sentences"`
	MinSentences     int `yaml:"min_sentences"`
	MaxSentences     int `yaml:"max_sentences"`
}

// SecurityConfig represents the security and policy configuration file.
type SecurityConfig struct {
	Security struct {
		Auth            AuthPolicy `yaml:"auth"`
		PublicEndpoints []string   `yaml:"public_endpoints"`
	} `yaml:"security"`
	Summary SummaryPolicy `yaml:"summary"`
}

// DefaultSecurityConfig returns the configuration used when no file is given.
func DefaultSecurityConfig() *SecurityConfig {
	var c SecurityConfig
	c.Security.Auth.MinPasswordLength = DefaultMinPasswordLength
	c.Security.PublicEndpoints = []string{
		"/auth/signup", "/auth/login",
		"/health", "/ready", "/live", "/metrics", "/swagger/",
	}
	c.Summary = SummaryPolicy{
		DefaultSentences: DefaultSummarySentences,
		MinSentences:     DefaultSummaryMin,
		MaxSentences:     DefaultSummaryMax,
	}
	return &c
}

// LoadSecurityConfig loads configuration from a YAML file on top of the defaults.
// An empty path returns the defaults.
// The path parameter is expected to come from a trusted source (environment or CLI flag).
func LoadSecurityConfig(path string) (*SecurityConfig, error) {
	config := DefaultSecurityConfig()
	if path == "" {
		return config, nil
	}

	// #nosec G304 -- path is provided by trusted source (env or CLI arg), not user input
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := validateSecurityConfig(config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// validateSecurityConfig validates the loaded configuration.
func validateSecurityConfig(config *SecurityConfig) error {
	if config.Security.Auth.MinPasswordLength <= 0 {
		return errors.New("min_password_length must be positive")
	}

	s := config.Summary
	if s.MinSentences < 1 {
		return errors.New("summary min_sentences must be at least 1")
	}
	if s.MaxSentences < s.MinSentences {
		return errors.New("summary max_sentences must not be less than min_sentences")
	}
	if err := envcfg.ValidateIntRange(s.DefaultSentences, s.MinSentences, s.MaxSentences); err != nil {
		return fmt.Errorf("summary default_sentences must be between min_sentences and max_sentences: %w", err)
	}

	return nil
}

// GetMinPasswordLength returns the minimum password length requirement.
func (c *SecurityConfig) GetMinPasswordLength() int {
	return c.Security.Auth.MinPasswordLength
}

// GetPublicEndpoints returns the list of public endpoints.
func (c *SecurityConfig) GetPublicEndpoints() []string {
	return c.Security.PublicEndpoints
}

// GetSummaryPolicy returns the summary sentence policy.
func (c *SecurityConfig) GetSummaryPolicy() SummaryPolicy {
	return c.Summary
}
