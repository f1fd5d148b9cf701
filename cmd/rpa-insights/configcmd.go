package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/SKpacteazy/rpa-insights-backend/internal/bootstrap"
	"github.com/SKpacteazy/rpa-insights-backend/internal/core"
	"github.com/SKpacteazy/rpa-insights-backend/internal/data"
	"github.com/SKpacteazy/rpa-insights-backend/internal/domain/model"
)

func newConfigCommand(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or append upstream credentials",
	}
	cmd.AddCommand(newConfigShowCommand(root))
	cmd.AddCommand(newConfigSetCommand(root))
	return cmd
}

func newConfigShowCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the active configuration with the secret masked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withConfigRepo(cmd.Context(), root, func(ctx context.Context, repo core.ConfigRepository) error {
				return showConfiguration(ctx, cmd.OutOrStdout(), repo)
			})
		},
	}
}

func newConfigSetCommand(root *rootOptions) *cobra.Command {
	var req model.SaveConfigurationRequest

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Append a new configuration row; the newest row is the active one",
		Long: `Append a new configuration row. Earlier rows are kept as an audit trail
and the most recently inserted row is used by the next run.

Example:
  rpa-insights config set --endpoint https://cloud.uipath.com \
    --client-id app-id --client-secret s3cret --org acme --tenant DefaultTenant \
    --scope "OR.Queues.Read OR.Jobs.Read OR.Folders.Read"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withConfigRepo(cmd.Context(), root, func(ctx context.Context, repo core.ConfigRepository) error {
				return saveConfiguration(ctx, cmd.OutOrStdout(), repo, &req)
			})
		},
	}

	cmd.Flags().StringVar(&req.Endpoint, "endpoint", "", "orchestrator base URL (required)")
	cmd.Flags().StringVar(&req.ClientID, "client-id", "", "external application client id (required)")
	cmd.Flags().StringVar(&req.ClientSecret, "client-secret", "", "external application client secret (required)")
	cmd.Flags().StringVar(&req.Organization, "org", "", "organization name (required)")
	cmd.Flags().StringVar(&req.Tenant, "tenant", "", "tenant name (required)")
	cmd.Flags().StringVar(&req.Scope, "scope", "", "space-separated OAuth scopes")
	for _, name := range []string{"endpoint", "client-id", "client-secret", "org", "tenant"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}

func withConfigRepo(
	ctx context.Context,
	root *rootOptions,
	fn func(context.Context, core.ConfigRepository) error,
) error {
	db, err := bootstrap.ConnectDB(ctx, bootstrap.DatabaseConfig{DBConfig: root.cfg.Postgres, Logger: root.logger})
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	in := &infra{db: db}
	defer in.close(ctx, root.logger)

	if err := in.migrateOnStart(ctx, &root.cfg, root.logger); err != nil {
		return err
	}
	return fn(ctx, data.NewConfigRepo(db))
}

func showConfiguration(ctx context.Context, w io.Writer, repo core.ConfigRepository) error {
	cfg, err := repo.Latest(ctx)
	if errors.Is(err, model.ErrConfigurationNotFound) {
		_, werr := fmt.Fprintln(w, "no configuration stored; run \"rpa-insights config set\"")
		return werr
	}
	if err != nil {
		return err
	}

	if err := writeConfiguration(w, cfg.Redacted()); err != nil {
		return err
	}
	if missing := cfg.MissingFields(); len(missing) > 0 {
		_, err = fmt.Fprintf(w, "warning: sync runs will be skipped until these are set: %v\n", missing)
	}
	return err
}

func saveConfiguration(ctx context.Context, w io.Writer, repo core.ConfigRepository, req *model.SaveConfigurationRequest) error {
	if err := req.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	saved, err := repo.Append(ctx, req)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "configuration %d saved\n", saved.ID)
	return err
}
