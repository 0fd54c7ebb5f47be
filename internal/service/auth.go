package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/consultdesk/erp-ui/internal/adapters/tokenclaims"
	domainauth "github.com/consultdesk/erp-ui/internal/domain/auth"
	apperrors "github.com/consultdesk/erp-ui/internal/errors"
	"github.com/consultdesk/erp-ui/internal/observability/metrics"
	"github.com/consultdesk/erp-ui/internal/ports"
)

// DefaultTokenTTL is how long an issued token is kept in the browser.
const DefaultTokenTTL = 12 * time.Hour

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Exchanger ports.CredentialExchanger
	Decoder   ports.ClaimsDecoder
	Profiles  ports.ProfileStore
	Metrics   *metrics.Metrics
	Logger    *slog.Logger
	TokenTTL  time.Duration
	Now       func() time.Time
}

// AuthService orchestrates the two phases of session enrichment: the credential
// exchange at login and the per-request hydration of the stored token.
type AuthService struct {
	exchanger ports.CredentialExchanger
	decoder   ports.ClaimsDecoder
	profiles  ports.ProfileStore
	metrics   *metrics.Metrics
	logger    *slog.Logger
	ttl       time.Duration
	now       func() time.Time
}

var errTokenExpired = errors.New("issued token is already expired")

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	ttl := opts.TokenTTL
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &AuthService{
		exchanger: opts.Exchanger,
		decoder:   opts.Decoder,
		profiles:  opts.Profiles,
		metrics:   opts.Metrics,
		logger:    logger.With("component", "auth_service"),
		ttl:       ttl,
		now:       now,
	}
}

// LoginResult contains the result of a successful login.
type LoginResult struct {
	Session   domainauth.Session
	Type      domainauth.AccountType
	ExpiresAt time.Time
}

// Login exchanges credentials for a bearer token, stores the token in store and
// keeps the returned user record for later hydration. A token that cannot be
// decoded fails the login and is never stored.
func (s *AuthService) Login(ctx context.Context, store ports.TokenStore, in ports.LoginInput) (*LoginResult, error) {
	in.Email = strings.TrimSpace(in.Email)
	if in.Email == "" {
		return nil, apperrors.ValidationField("email", "email is required")
	}
	if in.Password == "" {
		return nil, apperrors.ValidationField("password", "password is required")
	}

	start := s.now()
	resp, err := s.exchanger.Exchange(ctx, in)
	s.metrics.ObserveLogin(err, s.now().Sub(start))
	if err != nil {
		return nil, fmt.Errorf("exchange credentials: %w", err)
	}

	claims, err := s.decoder.Decode(resp.Token)
	if err != nil {
		return nil, apperrors.InvalidAccessToken(err)
	}

	now := s.now()
	expiresAt := now.Add(s.ttl)
	if claims.ExpiresAt != nil {
		if !now.Before(claims.ExpiresAt.Time) {
			return nil, apperrors.InvalidAccessToken(errTokenExpired)
		}
		if claims.ExpiresAt.Before(expiresAt) {
			expiresAt = claims.ExpiresAt.Time
		}
	}

	profile := resp.User
	if profile.Type == "" {
		profile.Type = resp.Type
	}
	if profile.Type == "" {
		profile.Type = in.Type
	}

	// A re-login supersedes the previous token.
	if prev, ok := store.Get(); ok && prev != resp.Token {
		s.deleteProfile(ctx, prev)
	}
	if s.profiles != nil {
		if err := s.profiles.Save(ctx, resp.Token, profile, expiresAt); err != nil {
			s.logger.WarnContext(ctx, "failed to store login profile",
				"token", shortFingerprint(resp.Token), "error", err)
		}
	}
	store.Set(resp.Token, expiresAt)

	sess := domainauth.NewSession(resp.Token, claims, &profile)
	s.logger.InfoContext(ctx, "login succeeded",
		"user_id", sess.ID, "roles", sess.Roles.Strings(), "type", sess.Type)

	return &LoginResult{Session: sess, Type: sess.Type, ExpiresAt: expiresAt}, nil
}

// Current hydrates the session for the token held in store. It never fails:
// problems are expressed through the returned state.
func (s *AuthService) Current(ctx context.Context, store ports.TokenStore) domainauth.State {
	state := s.current(ctx, store)
	s.metrics.ObserveSession(state.Kind().String())
	return state
}

func (s *AuthService) current(ctx context.Context, store ports.TokenStore) domainauth.State {
	token, ok := store.Get()
	if !ok || token == "" {
		return domainauth.Unauthenticated()
	}

	claims, err := s.decoder.Decode(token)
	if err != nil {
		s.logger.WarnContext(ctx, "stored token could not be decoded",
			"token", shortFingerprint(token), "error", err)
		return domainauth.Errored(domainauth.ReasonInvalidAccessToken)
	}

	if claims.ExpiresAt != nil && !s.now().Before(claims.ExpiresAt.Time) {
		s.deleteProfile(ctx, token)
		store.Clear()
		return domainauth.Unauthenticated()
	}

	return domainauth.Active(domainauth.NewSession(token, claims, s.lookupProfile(ctx, token)))
}

func (s *AuthService) lookupProfile(ctx context.Context, token string) *domainauth.Profile {
	if s.profiles == nil {
		return nil
	}
	p, err := s.profiles.Get(ctx, token)
	if err != nil {
		if !apperrors.IsNotFound(err) {
			s.logger.WarnContext(ctx, "failed to load login profile",
				"token", shortFingerprint(token), "error", err)
		}
		return nil
	}
	return &p
}

// Logout forgets the stored profile and clears the token store.
func (s *AuthService) Logout(ctx context.Context, store ports.TokenStore) {
	if token, ok := store.Get(); ok {
		s.deleteProfile(ctx, token)
	}
	store.Clear()
}

func (s *AuthService) deleteProfile(ctx context.Context, token string) {
	if s.profiles == nil || token == "" {
		return
	}
	if err := s.profiles.Delete(ctx, token); err != nil {
		s.logger.WarnContext(ctx, "failed to delete login profile",
			"token", shortFingerprint(token), "error", err)
	}
}

// shortFingerprint identifies a token in logs without leaking it.
func shortFingerprint(token string) string {
	fp := tokenclaims.Fingerprint(token)
	if len(fp) > 12 {
		return fp[:12]
	}
	return fp
}
