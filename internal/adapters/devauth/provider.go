package devauth

// Package devauth provides a simple, config-driven CredentialExchanger for local
// development. It mints HS256 tokens for a single configured identity so the UI
// runs without the ERP backend.

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	domainauth "github.com/consultdesk/erp-ui/internal/domain/auth"
	apperrors "github.com/consultdesk/erp-ui/internal/errors"
	"github.com/consultdesk/erp-ui/internal/ports"
)

// Config controls the dev identity. Email is required; Password may be empty to
// accept any password.
type Config struct {
	UserID      string
	Email       string
	Password    string
	FirstName   string
	LastName    string
	Roles       []string
	Permissions domainauth.PermissionMap
	Type        domainauth.AccountType
	TokenTTL    time.Duration // default 12h when zero
	SigningKey  []byte        // random per process when empty
}

// Provider implements ports.CredentialExchanger for local development.
type Provider struct {
	cfg Config
	now func() time.Time
}

// NewProvider constructs a dev auth provider from Config.
func NewProvider(cfg Config) (*Provider, error) {
	cfg.Email = strings.TrimSpace(cfg.Email)
	if cfg.Email == "" {
		return nil, errors.New("dev auth: Email is required")
	}
	if cfg.UserID == "" {
		cfg.UserID = "dev-user"
	}
	if cfg.Type == "" {
		cfg.Type = domainauth.AccountUser
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 12 * time.Hour
	}
	if len(cfg.SigningKey) == 0 {
		cfg.SigningKey = make([]byte, 32)
		if _, err := rand.Read(cfg.SigningKey); err != nil {
			return nil, fmt.Errorf("dev auth: generate signing key: %w", err)
		}
	}
	return &Provider{cfg: cfg, now: time.Now}, nil
}

// Exchange checks the credentials against the configured identity and returns a
// freshly minted token together with the matching profile record.
func (p *Provider) Exchange(_ context.Context, in ports.LoginInput) (ports.LoginResponse, error) {
	if !strings.EqualFold(strings.TrimSpace(in.Email), p.cfg.Email) {
		return ports.LoginResponse{}, apperrors.InvalidCredentials()
	}
	if p.cfg.Password != "" && in.Password != p.cfg.Password {
		return ports.LoginResponse{}, apperrors.InvalidCredentials()
	}

	token, err := p.Mint(p.Claims())
	if err != nil {
		return ports.LoginResponse{}, err
	}

	return ports.LoginResponse{
		Token: token,
		User: domainauth.Profile{
			ID:          p.cfg.UserID,
			Email:       p.cfg.Email,
			Roles:       append([]string(nil), p.cfg.Roles...),
			FirstName:   p.cfg.FirstName,
			LastName:    p.cfg.LastName,
			Status:      "active",
			Permissions: p.cfg.Permissions,
			Type:        p.cfg.Type,
		},
		Type: p.cfg.Type,
	}, nil
}

// Claims returns the claim set for the configured identity, issued now.
func (p *Provider) Claims() domainauth.Claims {
	now := p.now()
	return domainauth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.cfg.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(p.cfg.TokenTTL)),
		},
		Email:       p.cfg.Email,
		Roles:       jwt.ClaimStrings(p.cfg.Roles),
		FirstName:   p.cfg.FirstName,
		LastName:    p.cfg.LastName,
		Status:      "active",
		Type:        p.cfg.Type,
		Permissions: p.cfg.Permissions,
	}
}

// Mint signs claims with the provider's key.
func (p *Provider) Mint(claims domainauth.Claims) (string, error) {
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.cfg.SigningKey)
	if err != nil {
		return "", fmt.Errorf("dev auth: sign token: %w", err)
	}
	return raw, nil
}
