package bootstrap

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/consultdesk/erp-ui/config"
	"github.com/consultdesk/erp-ui/internal/adapters/devauth"
	"github.com/consultdesk/erp-ui/internal/adapters/erpapi"
	"github.com/consultdesk/erp-ui/internal/adapters/memory"
	redisadapter "github.com/consultdesk/erp-ui/internal/adapters/redis"
	"github.com/consultdesk/erp-ui/internal/ports"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func devAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		Mode:       config.AuthModeMock,
		TokenTTL:   time.Hour,
		CookieName: "token",
		DevAuth: config.DevAuthConfig{
			UserID:      "dev",
			Email:       "dev@erp.test",
			Password:    "pw",
			Roles:       []string{"finance"},
			Permissions: config.Permissions{"/budget": {"read"}},
			Type:        "user",
		},
	}
}

func TestBuildCredentialExchanger(t *testing.T) {
	api, err := erpapi.NewClient(erpapi.Config{BaseURL: "http://127.0.0.1:1"})
	require.NoError(t, err)

	t.Run("mock mode mints dev tokens", func(t *testing.T) {
		ex, err := BuildCredentialExchanger(devAuthConfig(), api, discardLogger())
		require.NoError(t, err)
		require.IsType(t, &devauth.Provider{}, ex)

		resp, err := ex.Exchange(context.Background(), ports.LoginInput{Email: "dev@erp.test", Password: "pw"})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, []string{"finance"}, resp.User.Roles)
	})

	t.Run("api mode uses the backend client", func(t *testing.T) {
		ex, err := BuildCredentialExchanger(config.AuthConfig{Mode: config.AuthModeAPI}, api, discardLogger())
		require.NoError(t, err)
		assert.Same(t, api, ex)
	})

	t.Run("api mode without client", func(t *testing.T) {
		_, err := BuildCredentialExchanger(config.AuthConfig{Mode: config.AuthModeAPI}, nil, discardLogger())
		assert.Error(t, err)
	})

	t.Run("unknown mode", func(t *testing.T) {
		_, err := BuildCredentialExchanger(config.AuthConfig{Mode: "oauth"}, api, discardLogger())
		assert.Error(t, err)
	})

	t.Run("mock mode without email", func(t *testing.T) {
		cfg := devAuthConfig()
		cfg.DevAuth.Email = ""
		_, err := BuildCredentialExchanger(cfg, api, discardLogger())
		assert.Error(t, err)
	})
}

func TestBuildProfileStore(t *testing.T) {
	assert.IsType(t, &memory.ProfileStore{}, BuildProfileStore(config.RedisConfig{}, nil, discardLogger()))

	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	t.Cleanup(func() { _ = client.Close() })
	assert.IsType(t, &redisadapter.ProfileStore{}, BuildProfileStore(config.RedisConfig{KeyPrefix: "p:"}, client, discardLogger()))
}
