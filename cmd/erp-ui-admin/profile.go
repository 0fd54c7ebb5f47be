package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	redisadapter "github.com/consultdesk/erp-ui/internal/adapters/redis"
	"github.com/consultdesk/erp-ui/internal/bootstrap"
	apperrors "github.com/consultdesk/erp-ui/internal/errors"
	"github.com/consultdesk/erp-ui/internal/ports"
)

var errNoRedis = errors.New("login profiles are only inspectable with REDIS_ENABLED=true")

func profileCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Inspect login profiles cached in Redis",
	}
	cmd.AddCommand(profileShowCmd(a), profileDeleteCmd(a))
	return cmd
}

// withProfileStore connects to Redis for the duration of fn.
func withProfileStore(a *app, cmd *cobra.Command, fn func(ports.ProfileStore) error) error {
	cfg, err := a.config()
	if err != nil {
		return err
	}
	if !cfg.Redis.Enabled {
		return errNoRedis
	}
	client, err := bootstrap.ConnectRedis(bootstrap.RedisOptions{Config: cfg.Redis})
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	defer func() {
		if cerr := client.Close(); cerr != nil {
			writeErr(cmd.ErrOrStderr(), cerr)
		}
	}()
	return fn(redisadapter.NewProfileStoreWithPrefix(client, cfg.Redis.KeyPrefix))
}

func profileShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show [token]",
		Short: "Print the login profile stored for a token",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := tokenArg(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			return withProfileStore(a, cmd, func(store ports.ProfileStore) error {
				p, err := store.Get(cmd.Context(), token)
				if apperrors.IsNotFound(err) {
					return errors.New("no profile stored for this token (expired or signed out)")
				}
				if err != nil {
					return err
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(p)
			})
		},
	}
}

func profileDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete [token]",
		Short: "Forget the login profile stored for a token",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := tokenArg(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			return withProfileStore(a, cmd, func(store ports.ProfileStore) error {
				if err := store.Delete(cmd.Context(), token); err != nil {
					return err
				}
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "deleted")
				return err
			})
		},
	}
}
