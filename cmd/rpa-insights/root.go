package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/SKpacteazy/rpa-insights-backend/config"
	"github.com/SKpacteazy/rpa-insights-backend/internal/bootstrap"
)

// rootOptions carries state shared by every subcommand. cfg and logger are
// populated before any subcommand runs.
type rootOptions struct {
	loadConfig func() (config.AppConfig, error)
	out        io.Writer

	cfg    config.AppConfig
	logger *slog.Logger
}

func newRootCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rpa-insights",
		Short: "Sync orchestrator queue items and jobs into PostgreSQL",
		Long: `rpa-insights pulls queue items and jobs from every folder of an
orchestrator tenant and upserts them into PostgreSQL.

Upstream credentials are read from the uipath_configuration table at the
start of every run; use "rpa-insights config set" to store them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			opts.cfg = cfg
			opts.logger = bootstrap.InitLogger(cfg.IsDev)
			return nil
		},
	}
	if opts.out != nil {
		cmd.SetOut(opts.out)
	}

	cmd.AddCommand(newSyncCommand(opts))
	cmd.AddCommand(newServeCommand(opts))
	cmd.AddCommand(newMigrateCommand(opts))
	cmd.AddCommand(newConfigCommand(opts))

	return cmd
}
