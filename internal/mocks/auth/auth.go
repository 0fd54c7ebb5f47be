package auth

// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"strings"
	"sync"
	"time"

	domainauth "github.com/consultdesk/erp-ui/internal/domain/auth"
	apperrors "github.com/consultdesk/erp-ui/internal/errors"
	"github.com/consultdesk/erp-ui/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.TokenStore          = (*MemoryTokenStore)(nil)
	_ ports.CredentialExchanger = (*StubExchanger)(nil)
)

// MemoryTokenStore is an in-memory token holder standing in for the browser cookie.
type MemoryTokenStore struct {
	mu        sync.Mutex
	token     string
	expiresAt time.Time
	set       bool
	cleared   int
}

// NewMemoryTokenStore creates an empty store, optionally seeded with a token.
func NewMemoryTokenStore(token ...string) *MemoryTokenStore {
	s := &MemoryTokenStore{}
	if len(token) > 0 && token[0] != "" {
		s.token = token[0]
		s.set = true
	}
	return s
}

func (s *MemoryTokenStore) Get() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.set
}

func (s *MemoryTokenStore) Set(token string, expiresAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.expiresAt = expiresAt
	s.set = true
}

func (s *MemoryTokenStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.expiresAt = time.Time{}
	s.set = false
	s.cleared++
}

// ExpiresAt returns the expiry passed to the last Set.
func (s *MemoryTokenStore) ExpiresAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expiresAt
}

// Cleared returns how many times Clear was called.
func (s *MemoryTokenStore) Cleared() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cleared
}

// StubExchanger simulates the backend login endpoint. Accounts maps an email to
// the password it accepts and the token it returns.
type StubExchanger struct {
	ExchangeFunc func(ctx context.Context, in ports.LoginInput) (ports.LoginResponse, error)

	Accounts map[string]StubAccount

	mu    sync.Mutex
	calls []ports.LoginInput
}

// StubAccount is one account known to StubExchanger.
type StubAccount struct {
	Password string
	Token    string
	User     domainauth.Profile
}

func (e *StubExchanger) Exchange(ctx context.Context, in ports.LoginInput) (ports.LoginResponse, error) {
	e.mu.Lock()
	e.calls = append(e.calls, in)
	e.mu.Unlock()

	if e.ExchangeFunc != nil {
		return e.ExchangeFunc(ctx, in)
	}
	acct, ok := e.Accounts[strings.ToLower(in.Email)]
	if !ok || acct.Password != in.Password {
		return ports.LoginResponse{}, apperrors.InvalidCredentials()
	}
	return ports.LoginResponse{Token: acct.Token, User: acct.User, Type: acct.User.Type}, nil
}

// Calls returns the inputs Exchange was called with.
func (e *StubExchanger) Calls() []ports.LoginInput {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]ports.LoginInput(nil), e.calls...)
}
