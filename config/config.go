package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config
// files for details on available environment variables:
//   - auth.go: Login, token cookie and dev identity
//   - gate.go: Permission gate rules
//   - api.go: ERP backend client
//   - http.go: HTTP server configuration
//   - redis.go: Login profile cache
//   - observability.go: Logging and metrics
type AppConfig struct {
	// IsDev controls development mode behavior (template reloading, insecure cookies on plain HTTP).
	// Set DEV=true or NODE_ENV=development for development mode.
	IsDev bool `env:"DEV" envDefault:"false"`

	Auth AuthConfig
	Gate GateConfig
	API  APIConfig `envPrefix:"API_"`
	HTTP HTTPConfig

	// Redis backs the login profile store. Disabled means an in-process store.
	Redis RedisConfig `envPrefix:"REDIS_"`

	Observability ObservabilityConfig
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.Auth.Sanitize()
	c.Gate.Sanitize()
	c.API.Sanitize()
	c.HTTP.Sanitize()
	c.Redis.Sanitize()
	c.Observability.Sanitize()

	// Check NODE_ENV for dev mode
	c.detectDevMode()
}

// Validate reports settings that cannot work together. Call it after Sanitize.
func (c *AppConfig) Validate() error {
	var errs []error
	if err := c.HTTP.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Auth.Mode == AuthModeMock && !c.IsDev {
		errs = append(errs, errors.New("AUTH_MODE=mock requires DEV=true"))
	}
	if c.Auth.Mode == AuthModeAPI && c.API.BaseURL == "" {
		errs = append(errs, errors.New("API_BASE_URL is required when AUTH_MODE=api"))
	}
	if c.Auth.Mode == AuthModeMock && c.Auth.DevAuth.Email == "" {
		errs = append(errs, errors.New("DEV_AUTH_EMAIL is required when AUTH_MODE=mock"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// detectDevMode checks both DEV and NODE_ENV environment variables.
// This is called by Sanitize() to ensure IsDev is set correctly.
// NODE_ENV is checked as a fallback (common in frontend tooling).
func (c *AppConfig) detectDevMode() {
	if !c.IsDev {
		nodeEnv := strings.ToLower(os.Getenv("NODE_ENV"))
		c.IsDev = nodeEnv == "development" || nodeEnv == "dev"
	}
}
