package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/SKpacteazy/rpa-insights-backend/internal/bootstrap"
)

const defaultMigrationTimeout = 5 * time.Minute

func newMigrateCommand(root *rootOptions) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			db, err := bootstrap.ConnectDB(ctx, bootstrap.DatabaseConfig{DBConfig: root.cfg.Postgres, Logger: root.logger})
			if err != nil {
				return fmt.Errorf("connect db: %w", err)
			}
			defer (&infra{db: db}).close(ctx, root.logger)

			applied, err := bootstrap.RunMigrations(ctx, db, root.logger)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(applied) == 0 {
				_, err = fmt.Fprintln(out, "schema up to date")
				return err
			}
			_, err = fmt.Fprintf(out, "applied: %s\n", strings.Join(applied, ", "))
			return err
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", defaultMigrationTimeout, "maximum time to wait for migrations")

	return cmd
}
