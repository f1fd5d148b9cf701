package main

import (
	"github.com/spf13/cobra"
)

func newServeCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the configured sync modes on a schedule until interrupted",
		Long: `Run every mode listed in SCHEDULE_MODES on its own interval.

Each tick acquires the Redis run lease when REDIS_ENABLED is set, retries
failed runs SCHEDULE_MAX_RETRIES times, pushes metrics and sends failure
notifications.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			modes, err := root.cfg.GetScheduledModes()
			if err != nil {
				return err
			}

			in, svcs, err := newServices(ctx, root)
			if err != nil {
				return err
			}
			defer in.close(ctx, root.logger)

			root.logger.InfoContext(ctx, "starting rpa-insights scheduler",
				"db_host", root.cfg.Postgres.Host,
				"db_name", root.cfg.Postgres.Name,
				"modes", modes,
				"lease", root.cfg.IsLeaseEnabled(),
				"metrics_push", svcs.Observability.Pusher != nil,
				"notifications", svcs.Observability.FailureNotifier.Enabled(),
			)

			err = svcs.Runner.Run(ctx, modes)
			root.logger.InfoContext(ctx, "scheduler stopped", "upstream_breaker", svcs.Upstream.BreakerState())
			return err
		},
	}
}
