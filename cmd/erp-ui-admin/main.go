package main

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/spf13/cobra"

	"github.com/consultdesk/erp-ui/config"
	"github.com/consultdesk/erp-ui/internal/bootstrap"
)

// app carries what the commands share. Config is loaded on first use so that
// commands which need none run without a valid environment.
type app struct {
	loadConfig func() (config.AppConfig, error)

	once sync.Once
	cfg  config.AppConfig
	err  error
}

func (a *app) config() (config.AppConfig, error) {
	a.once.Do(func() { a.cfg, a.err = a.loadConfig() })
	return a.cfg, a.err
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "erp-ui-admin",
		Short:         "Operator tooling for the ERP dashboard front-end",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		tokenCmd(a),
		accessCmd(a),
		profileCmd(a),
	)
	return root
}

func main() {
	bootstrap.InitLogger()
	root := newRootCmd(&app{loadConfig: bootstrap.LoadConfig})
	if err := root.Execute(); err != nil {
		writeErr(os.Stderr, err)
		os.Exit(1) //nolint:forbidigo // CLI must propagate command execution failure to callers
	}
}

func writeErr(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "Error: %s\n", err)
}
