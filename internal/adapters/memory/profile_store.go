// Package memory provides process-local adapters for single-instance and dev deployments.
package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/consultdesk/erp-ui/internal/adapters/tokenclaims"
	domainauth "github.com/consultdesk/erp-ui/internal/domain/auth"
	apperrors "github.com/consultdesk/erp-ui/internal/errors"
)

type profileEntry struct {
	profile   domainauth.Profile
	expiresAt time.Time
}

// ProfileStore is an in-memory ports.ProfileStore. Entries are keyed by token
// fingerprint and dropped lazily once their token has expired.
type ProfileStore struct {
	mu      sync.RWMutex
	entries map[string]profileEntry
	now     func() time.Time
}

// NewProfileStore creates an empty store.
func NewProfileStore() *ProfileStore {
	return &ProfileStore{
		entries: make(map[string]profileEntry),
		now:     time.Now,
	}
}

// WithClock overrides the store's time source.
func (s *ProfileStore) WithClock(now func() time.Time) *ProfileStore {
	s.now = now
	return s
}

func (s *ProfileStore) Save(_ context.Context, token string, profile domainauth.Profile, expiresAt time.Time) error {
	if token == "" {
		return errors.New("token cannot be empty")
	}
	if !expiresAt.After(s.now()) {
		return errors.New("profile is expired")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[tokenclaims.Fingerprint(token)] = profileEntry{profile: profile, expiresAt: expiresAt}
	return nil
}

func (s *ProfileStore) Get(_ context.Context, token string) (domainauth.Profile, error) {
	key := tokenclaims.Fingerprint(token)

	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok || token == "" {
		return domainauth.Profile{}, apperrors.NotFound("profile not found")
	}
	if !entry.expiresAt.After(s.now()) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return domainauth.Profile{}, apperrors.NotFound("profile not found")
	}
	return entry.profile, nil
}

func (s *ProfileStore) Delete(_ context.Context, token string) error {
	if token == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, tokenclaims.Fingerprint(token))
	return nil
}

// Len reports the number of stored entries, expired ones included.
func (s *ProfileStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
