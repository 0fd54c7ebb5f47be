package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/consultdesk/erp-ui/config"
	"github.com/consultdesk/erp-ui/internal/adapters/tokenclaims"
	"github.com/consultdesk/erp-ui/internal/bootstrap"
)

func tokenCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Inspect and mint bearer tokens",
	}
	cmd.AddCommand(tokenDecodeCmd(), tokenMintCmd(a))
	return cmd
}

func tokenDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode [token]",
		Short: "Print the claims of a token without verifying it",
		Long: `Decode prints the claim set of a bearer token. The signature is not checked;
the output is for debugging and says nothing about whether the backend accepts the token.
Reads the token from stdin when no argument is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := tokenArg(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			return decodeToken(cmd.OutOrStdout(), raw, time.Now())
		},
	}
}

func tokenArg(stdin io.Reader, args []string) (string, error) {
	if len(args) == 1 {
		return strings.TrimSpace(args[0]), nil
	}
	line, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read token: %w", err)
	}
	if line = strings.TrimSpace(line); line == "" {
		return "", errors.New("no token given")
	}
	return line, nil
}

func decodeToken(w io.Writer, raw string, now time.Time) error {
	dec := tokenclaims.NewDecoder()
	claims, err := dec.Decode(raw)
	if err != nil {
		return fmt.Errorf("decode token: %w", err)
	}
	all, err := dec.DecodeMap(raw)
	if err != nil {
		return fmt.Errorf("decode token: %w", err)
	}
	body, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return fmt.Errorf("encode claims: %w", err)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "fingerprint\t%s\n", tokenclaims.Fingerprint(raw))
	_, _ = fmt.Fprintf(tw, "subject\t%s\n", claims.Subject)
	if claims.ExpiresAt != nil {
		exp := claims.ExpiresAt.Time
		state := "valid"
		if !now.Before(exp) {
			state = "expired"
		}
		_, _ = fmt.Fprintf(tw, "expires\t%s (%s)\n", exp.UTC().Format(time.RFC3339), state)
	} else {
		_, _ = fmt.Fprintf(tw, "expires\tnever\n")
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", body)
	return err
}

type mintFlags struct {
	email       string
	subject     string
	roles       []string
	permissions string
	accountType string
	ttl         time.Duration
	key         string
}

func tokenMintCmd(a *app) *cobra.Command {
	var f mintFlags
	cmd := &cobra.Command{
		Use:   "mint",
		Short: "Mint an HS256 token for local development",
		Long: `Mint signs a token for the dev identity (DEV_AUTH_* settings), with flags
overriding individual claims. The front-end never verifies signatures, so the token
works against the UI in any auth mode but is only accepted by a backend sharing the key.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.config()
			if err != nil {
				return err
			}
			auth, err := f.apply(cmd, cfg.Auth)
			if err != nil {
				return err
			}
			prov, err := bootstrap.NewDevAuthProvider(auth)
			if err != nil {
				return err
			}
			token, err := prov.Mint(prov.Claims())
			if err != nil {
				return fmt.Errorf("mint token: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}
	cmd.Flags().StringVar(&f.email, "email", "", "email claim (default DEV_AUTH_EMAIL)")
	cmd.Flags().StringVar(&f.subject, "sub", "", "subject claim (default DEV_AUTH_USER_ID)")
	cmd.Flags().StringSliceVar(&f.roles, "role", nil, "role claim, repeatable (default DEV_AUTH_ROLES)")
	cmd.Flags().StringVar(&f.permissions, "permissions", "", `permissions claim as JSON, e.g. {"/budget":["read"]}`)
	cmd.Flags().StringVar(&f.accountType, "type", "", "account type: user or organization")
	cmd.Flags().DurationVar(&f.ttl, "ttl", 0, "token lifetime (default AUTH_TOKEN_TTL)")
	cmd.Flags().StringVar(&f.key, "key", "", "HS256 signing key (default DEV_AUTH_SIGNING_KEY, random when unset)")
	return cmd
}

// apply overlays the flags the user set onto the configured dev identity.
func (f *mintFlags) apply(cmd *cobra.Command, auth config.AuthConfig) (config.AuthConfig, error) {
	flags := cmd.Flags()
	if flags.Changed("email") {
		auth.DevAuth.Email = f.email
	}
	if flags.Changed("sub") {
		auth.DevAuth.UserID = f.subject
	}
	if flags.Changed("role") {
		auth.DevAuth.Roles = f.roles
	}
	if flags.Changed("permissions") {
		var p config.Permissions
		if err := p.UnmarshalText([]byte(f.permissions)); err != nil {
			return auth, err
		}
		auth.DevAuth.Permissions = p
	}
	if flags.Changed("type") {
		auth.DevAuth.Type = f.accountType
	}
	if flags.Changed("ttl") {
		auth.TokenTTL = f.ttl
	}
	if flags.Changed("key") {
		auth.DevAuth.SigningKey = f.key
	}
	return auth, nil
}
