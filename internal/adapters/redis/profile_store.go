package redis

// Package redis provides Redis-based adapters for the erp-ui server.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/consultdesk/erp-ui/internal/adapters/tokenclaims"
	domainauth "github.com/consultdesk/erp-ui/internal/domain/auth"
	apperrors "github.com/consultdesk/erp-ui/internal/errors"
)

// ProfileStore keeps login profiles in Redis, keyed by token fingerprint.
// Entries expire together with the token they were issued with.
type ProfileStore struct {
	client redis.UniversalClient
	prefix string
}

// NewProfileStore creates a new Redis-based profile store.
func NewProfileStore(client redis.UniversalClient) *ProfileStore {
	return NewProfileStoreWithPrefix(client, "erp-ui:profile:")
}

// NewProfileStoreWithPrefix creates a Redis profile store with a custom key prefix.
func NewProfileStoreWithPrefix(client redis.UniversalClient, prefix string) *ProfileStore {
	return &ProfileStore{
		client: client,
		prefix: prefix,
	}
}

func (s *ProfileStore) key(token string) string {
	return s.prefix + tokenclaims.Fingerprint(token)
}

func (s *ProfileStore) Save(ctx context.Context, token string, profile domainauth.Profile, expiresAt time.Time) error {
	if token == "" {
		return errors.New("token cannot be empty")
	}

	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return errors.New("profile is expired")
	}

	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}

	return s.client.Set(ctx, s.key(token), data, ttl).Err()
}

func (s *ProfileStore) Get(ctx context.Context, token string) (domainauth.Profile, error) {
	if token == "" {
		return domainauth.Profile{}, apperrors.NotFound("profile not found")
	}

	data, err := s.client.Get(ctx, s.key(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domainauth.Profile{}, apperrors.NotFound("profile not found")
		}
		return domainauth.Profile{}, fmt.Errorf("redis get: %w", err)
	}

	var profile domainauth.Profile
	if unmarshalErr := json.Unmarshal(data, &profile); unmarshalErr != nil {
		return domainauth.Profile{}, fmt.Errorf("unmarshal profile: %w", unmarshalErr)
	}
	return profile, nil
}

func (s *ProfileStore) Delete(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.client.Del(ctx, s.key(token)).Err()
}
