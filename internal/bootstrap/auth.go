package bootstrap

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/redis/go-redis/v9"

	"github.com/consultdesk/erp-ui/config"
	"github.com/consultdesk/erp-ui/internal/adapters/devauth"
	"github.com/consultdesk/erp-ui/internal/adapters/erpapi"
	"github.com/consultdesk/erp-ui/internal/adapters/memory"
	redisadapter "github.com/consultdesk/erp-ui/internal/adapters/redis"
	domainauth "github.com/consultdesk/erp-ui/internal/domain/auth"
	"github.com/consultdesk/erp-ui/internal/ports"
)

// NewAPIClient builds the ERP backend client.
func NewAPIClient(cfg config.APIConfig, httpClient *http.Client, logger *slog.Logger) (*erpapi.Client, error) {
	client, err := erpapi.NewClient(erpapi.Config{
		BaseURL:     cfg.BaseURL,
		Timeout:     cfg.Timeout,
		ModulePaths: cfg.ModulePaths,
		RecordsExpr: cfg.RecordsExpr,
		HTTPClient:  httpClient,
		Logger:      logger,
	})
	if err != nil {
		return nil, fmt.Errorf("create api client: %w", err)
	}
	return client, nil
}

// NewDevAuthProvider builds the local credential exchanger from the dev identity.
func NewDevAuthProvider(cfg config.AuthConfig) (*devauth.Provider, error) {
	prov, err := devauth.NewProvider(devauth.Config{
		UserID:      cfg.DevAuth.UserID,
		Email:       cfg.DevAuth.Email,
		Password:    cfg.DevAuth.Password,
		FirstName:   cfg.DevAuth.FirstName,
		LastName:    cfg.DevAuth.LastName,
		Roles:       cfg.DevAuth.Roles,
		Permissions: domainauth.PermissionMap(cfg.DevAuth.Permissions),
		Type:        domainauth.AccountType(cfg.DevAuth.Type),
		TokenTTL:    cfg.TokenTTL,
		SigningKey:  []byte(cfg.DevAuth.SigningKey),
	})
	if err != nil {
		return nil, fmt.Errorf("create dev auth provider: %w", err)
	}
	return prov, nil
}

// BuildCredentialExchanger picks the exchanger for the configured auth mode.
//
//nolint:ireturn // the mode decides the concrete exchanger.
func BuildCredentialExchanger(cfg config.AuthConfig, api *erpapi.Client, logger *slog.Logger) (ports.CredentialExchanger, error) {
	switch cfg.Mode {
	case config.AuthModeMock:
		prov, err := NewDevAuthProvider(cfg)
		if err != nil {
			return nil, err
		}
		if logger != nil {
			logger.Warn("dev auth enabled: logins are not checked against the backend",
				"email", cfg.DevAuth.Email, "roles", cfg.DevAuth.Roles)
		}
		return prov, nil
	case config.AuthModeAPI, "":
		if api == nil {
			return nil, fmt.Errorf("auth mode %q requires an api client", cfg.Mode)
		}
		return api, nil
	default:
		return nil, fmt.Errorf("unsupported auth mode %q", cfg.Mode)
	}
}

// BuildProfileStore returns the Redis profile store when a client is given and
// an in-process store otherwise.
//
//nolint:ireturn // store selection happens at runtime.
func BuildProfileStore(cfg config.RedisConfig, client redis.UniversalClient, logger *slog.Logger) ports.ProfileStore {
	if client == nil {
		if logger != nil {
			logger.Info("login profiles kept in memory; they do not survive restarts or span replicas")
		}
		return memory.NewProfileStore()
	}
	return redisadapter.NewProfileStoreWithPrefix(client, cfg.KeyPrefix)
}
