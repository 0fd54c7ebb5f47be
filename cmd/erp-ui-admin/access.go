package main

import (
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/consultdesk/erp-ui/internal/adapters/tokenclaims"
	"github.com/consultdesk/erp-ui/internal/bootstrap"
	"github.com/consultdesk/erp-ui/internal/domain/access"
	domainauth "github.com/consultdesk/erp-ui/internal/domain/auth"
)

func accessCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "access",
		Short: "Explain permission gate decisions",
	}
	cmd.AddCommand(accessCheckCmd(a))
	return cmd
}

func accessCheckCmd(a *app) *cobra.Command {
	var token string
	cmd := &cobra.Command{
		Use:   "check --token <jwt> <path>",
		Short: "Show what the gate decides for a token and request path",
		Example: `  erp-ui-admin access check --token "$TOKEN" /budget
  erp-ui-admin access check --token "$TOKEN" '/users?pick=1&returnTo=/projects'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.config()
			if err != nil {
				return err
			}
			gate := access.NewGate(bootstrap.GateConfig(cfg.Gate), slog.New(slog.DiscardHandler))
			return checkAccess(cmd.OutOrStdout(), gate, token, args[0])
		},
	}
	cmd.Flags().StringVar(&token, "token", "", "bearer token to evaluate")
	_ = cmd.MarkFlagRequired("token")
	return cmd
}

func checkAccess(w io.Writer, gate *access.Gate, token, target string) error {
	u, err := url.Parse(target)
	if err != nil {
		return fmt.Errorf("parse path: %w", err)
	}

	var state domainauth.State
	if claims, derr := tokenclaims.NewDecoder().Decode(token); derr != nil {
		state = domainauth.Errored(domainauth.ReasonInvalidAccessToken)
	} else {
		state = domainauth.Active(domainauth.NewSession(token, claims, nil))
	}

	d := gate.Decide(access.Request{Path: u.EscapedPath(), Query: u.Query()}, state)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "session\t%s\n", state.Kind())
	if sess, ok := state.Session(); ok {
		_, _ = fmt.Fprintf(tw, "roles\t%v\n", sess.Roles.Strings())
		_, _ = fmt.Fprintf(tw, "consultant only\t%t\n", sess.Roles.IsOnlyConsultant())
		_, _ = fmt.Fprintf(tw, "permission keys\t%d\n", len(sess.Permissions))
	}
	_, _ = fmt.Fprintf(tw, "path\t%s\n", d.Path)
	_, _ = fmt.Fprintf(tw, "outcome\t%s\n", d.Outcome)
	_, _ = fmt.Fprintf(tw, "reason\t%s\n", d.Reason)
	if d.MatchedKey != "" {
		_, _ = fmt.Fprintf(tw, "matched key\t%s\n", d.MatchedKey)
	}
	if d.ForceSignOut {
		_, _ = fmt.Fprintf(tw, "sign out\t%s\n", strconv.FormatBool(d.ForceSignOut))
	}
	if d.Degraded {
		_, _ = fmt.Fprintf(tw, "degraded\t%s\n", strconv.FormatBool(d.Degraded))
	}
	return tw.Flush()
}
