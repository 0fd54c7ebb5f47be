package config

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// AuthMode represents the authentication mode for the application.
type AuthMode string

const (
	// AuthModeAPI exchanges credentials with the ERP backend.
	AuthModeAPI AuthMode = "api"
	// AuthModeMock uses a local dev identity (for development only).
	AuthModeMock AuthMode = "mock"
)

// UnmarshalText implements encoding.TextUnmarshaler for AuthMode.
func (a *AuthMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(strings.TrimSpace(string(text)))
	switch v {
	case "api", "mock":
		*a = AuthMode(v)
		return nil
	default:
		return fmt.Errorf("invalid AuthMode: %q (valid options: api, mock)", v)
	}
}

// Permissions is a route-prefix to actions map given as JSON,
// e.g. {"/projects":["read"],"/budget":["read","write"]}.
type Permissions map[string][]string

// UnmarshalText implements encoding.TextUnmarshaler for Permissions.
func (p *Permissions) UnmarshalText(text []byte) error {
	if strings.TrimSpace(string(text)) == "" {
		*p = nil
		return nil
	}
	var m map[string][]string
	if err := json.Unmarshal(text, &m); err != nil {
		return fmt.Errorf("invalid permissions JSON: %w", err)
	}
	*p = m
	return nil
}

// DevAuthConfig controls mock/dev authentication identity.
// Used when AUTH_MODE=mock for development and testing.
type DevAuthConfig struct {
	UserID    string   `env:"USER_ID"    envDefault:"dev-user"`
	Email     string   `env:"EMAIL"      envDefault:"dev@example.com"`
	Password  string   `env:"PASSWORD"`
	FirstName string   `env:"FIRST_NAME" envDefault:"Dev"`
	LastName  string   `env:"LAST_NAME"  envDefault:"User"`
	Roles     []string `env:"ROLES"      envDefault:"admin"           envSeparator:";"`
	// Permissions is optional; without it the gate falls back to role rules.
	Permissions Permissions `env:"PERMISSIONS"`
	Type        string      `env:"TYPE"        envDefault:"user"`
	// SigningKey signs minted tokens. Random per process when empty.
	SigningKey string `env:"SIGNING_KEY"`
}

// AuthConfig groups all authentication-related configuration.
type AuthConfig struct {
	// Mode determines which credential exchanger to use.
	Mode AuthMode `env:"AUTH_MODE" envDefault:"api"`

	// TokenTTL caps how long the token cookie lives. Tokens expiring sooner win.
	TokenTTL time.Duration `env:"AUTH_TOKEN_TTL" envDefault:"12h"`

	// CookieName is the cookie holding the bearer token.
	CookieName string `env:"AUTH_COOKIE_NAME" envDefault:"token"`

	// DevAuth configuration (used when Mode=mock).
	DevAuth DevAuthConfig `envPrefix:"DEV_AUTH_"`
}

// Sanitize applies guardrails to auth configuration values.
func (a *AuthConfig) Sanitize() {
	if a.Mode == "" {
		a.Mode = AuthModeAPI
	}
	if a.TokenTTL <= 0 {
		a.TokenTTL = 12 * time.Hour
	}
	if a.CookieName = strings.TrimSpace(a.CookieName); a.CookieName == "" {
		a.CookieName = "token"
	}
	a.DevAuth.Email = strings.TrimSpace(a.DevAuth.Email)
	roles := a.DevAuth.Roles[:0]
	for _, r := range a.DevAuth.Roles {
		if r = strings.TrimSpace(r); r != "" {
			roles = append(roles, r)
		}
	}
	a.DevAuth.Roles = roles
}
