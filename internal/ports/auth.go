package ports

// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"
	"time"

	domainauth "github.com/consultdesk/erp-ui/internal/domain/auth"
)

// LoginInput carries the credentials submitted on the login form.
type LoginInput struct {
	Email    string                 `json:"email"`
	Password string                 `json:"password"`
	Type     domainauth.AccountType `json:"type,omitempty"`
}

// LoginResponse is the backend's answer to a successful credential exchange.
type LoginResponse struct {
	Token string                 `json:"token"`
	User  domainauth.Profile     `json:"user"`
	Type  domainauth.AccountType `json:"type,omitempty"`
}

// CredentialExchanger trades an email/password pair for a bearer token.
// Implementations return errors classified with internal/errors codes:
// invalid_credentials, verification_required or backend_unreachable.
type CredentialExchanger interface {
	Exchange(ctx context.Context, in LoginInput) (LoginResponse, error)
}

// ClaimsDecoder turns a bearer token into its claim set without verifying it.
type ClaimsDecoder interface {
	Decode(raw string) (domainauth.Claims, error)
}

// TokenStore is the per-browser holder of the bearer token. The production
// implementation is cookie backed and scoped to a single request/response pair.
type TokenStore interface {
	Get() (string, bool)
	Set(token string, expiresAt time.Time)
	Clear()
}

// ProfileStore keeps the login response's user record for the lifetime of the
// token it was issued with.
type ProfileStore interface {
	Save(ctx context.Context, token string, profile domainauth.Profile, expiresAt time.Time) error
	Get(ctx context.Context, token string) (domainauth.Profile, error)
	Delete(ctx context.Context, token string) error
}
