package devauth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/consultdesk/erp-ui/internal/adapters/tokenclaims"
	domainauth "github.com/consultdesk/erp-ui/internal/domain/auth"
	apperrors "github.com/consultdesk/erp-ui/internal/errors"
	"github.com/consultdesk/erp-ui/internal/ports"
)

func TestProvider_ExchangeMintsDecodableToken(t *testing.T) {
	prov, err := NewProvider(Config{
		Email:       "dev@example.com",
		Password:    "secret",
		FirstName:   "Dev",
		Roles:       []string{"finance"},
		Permissions: domainauth.PermissionMap{"/budget": {"read"}},
	})
	require.NoError(t, err)

	resp, err := prov.Exchange(context.Background(), ports.LoginInput{Email: "DEV@example.com", Password: "secret"})
	require.NoError(t, err)

	claims, err := tokenclaims.NewDecoder().Decode(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "dev-user", claims.Subject)
	assert.Equal(t, "dev@example.com", claims.Email)
	assert.Equal(t, []string{"finance"}, []string(claims.Roles))
	assert.True(t, claims.Permissions.Permits("/budget/2024"))
	assert.WithinDuration(t, time.Now().Add(12*time.Hour), claims.ExpiresAt.Time, 5*time.Second)

	assert.Equal(t, "dev-user", resp.User.ID)
	assert.Equal(t, domainauth.AccountUser, resp.Type)
}

func TestProvider_RejectsWrongCredentials(t *testing.T) {
	prov, err := NewProvider(Config{Email: "dev@example.com", Password: "secret"})
	require.NoError(t, err)

	_, err = prov.Exchange(context.Background(), ports.LoginInput{Email: "dev@example.com", Password: "nope"})
	assert.True(t, apperrors.IsInvalidCredentials(err))

	_, err = prov.Exchange(context.Background(), ports.LoginInput{Email: "other@example.com", Password: "secret"})
	assert.True(t, apperrors.IsInvalidCredentials(err))
}

func TestProvider_AnyPasswordWhenUnset(t *testing.T) {
	prov, err := NewProvider(Config{Email: "dev@example.com"})
	require.NoError(t, err)

	_, err = prov.Exchange(context.Background(), ports.LoginInput{Email: "dev@example.com", Password: "whatever"})
	assert.NoError(t, err)
}

func TestNewProvider_RequiresEmail(t *testing.T) {
	_, err := NewProvider(Config{})
	assert.Error(t, err)
}
