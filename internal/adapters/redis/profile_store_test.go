package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/consultdesk/erp-ui/internal/adapters/tokenclaims"
	domainauth "github.com/consultdesk/erp-ui/internal/domain/auth"
	apperrors "github.com/consultdesk/erp-ui/internal/errors"
	"github.com/consultdesk/erp-ui/internal/testutil"
)

// setupTestRedis creates a Redis client for testing.
// Tests will be skipped if Redis is not available.
func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	return testutil.SetupTestRedis(t)
}

func sampleProfile() domainauth.Profile {
	return domainauth.Profile{
		ID:          "64f0c1",
		Email:       "a@b.com",
		Roles:       []string{"finance"},
		FirstName:   "Ada",
		Department:  "Finance",
		Permissions: domainauth.PermissionMap{"/budget": {"read"}},
		Type:        domainauth.AccountUser,
	}
}

func TestProfileStore_SaveAndGet(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewProfileStore(client)
	ctx := context.Background()

	err := store.Save(ctx, "tok-1", sampleProfile(), time.Now().Add(30*time.Minute))
	require.NoError(t, err)

	retrieved, err := store.Get(ctx, "tok-1")
	require.NoError(t, err)
	assert.Equal(t, sampleProfile(), retrieved)
}

func TestProfileStore_KeyIsFingerprint(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewProfileStoreWithPrefix(client, "test-prefix:")
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "secret.token.value", sampleProfile(), time.Now().Add(time.Minute)))

	assert.Equal(t, int64(1), client.Exists(ctx, "test-prefix:"+tokenclaims.Fingerprint("secret.token.value")).Val())
	assert.Equal(t, int64(0), client.Exists(ctx, "test-prefix:secret.token.value").Val())
}

func TestProfileStore_GetMissing(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewProfileStore(client)

	_, err := store.Get(context.Background(), "never-saved")
	assert.True(t, apperrors.IsNotFound(err))

	_, err = store.Get(context.Background(), "")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestProfileStore_Delete(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewProfileStore(client)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "tok-del", sampleProfile(), time.Now().Add(time.Minute)))
	require.NoError(t, store.Delete(ctx, "tok-del"))

	_, err := store.Get(ctx, "tok-del")
	assert.True(t, apperrors.IsNotFound(err))
	assert.NoError(t, store.Delete(ctx, ""))
}

func TestProfileStore_TTLExpiration(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewProfileStore(client)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "tok-ttl", sampleProfile(), time.Now().Add(100*time.Millisecond)))

	time.Sleep(250 * time.Millisecond)

	_, err := store.Get(ctx, "tok-ttl")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestProfileStore_SaveRejectsExpiredAndEmpty(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewProfileStore(client)
	ctx := context.Background()

	err := store.Save(ctx, "tok", sampleProfile(), time.Now().Add(-time.Hour))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "profile is expired")

	err = store.Save(ctx, "", sampleProfile(), time.Now().Add(time.Hour))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token cannot be empty")
}
