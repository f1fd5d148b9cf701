package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/SKpacteazy/rpa-insights-backend/internal/adapters/scheduler"
	"github.com/SKpacteazy/rpa-insights-backend/internal/domain/model"
)

type syncOptions struct {
	update bool
	jobs   bool
}

// modes returns full or update, followed by jobs when requested.
func (o syncOptions) modes() []model.SyncMode {
	first := model.SyncModeFull
	if o.update {
		first = model.SyncModeUpdate
	}
	modes := []model.SyncMode{first}
	if o.jobs {
		modes = append(modes, model.SyncModeJobs)
	}
	return modes
}

func newSyncCommand(root *rootOptions) *cobra.Command {
	var opts syncOptions

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Run one sync and exit",
		Long: `Run a full queue item sync, or an update sync with --update, then
optionally a job sync with --jobs.

Example:
  rpa-insights sync
  rpa-insights sync --update --jobs`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			in, svcs, err := newServices(ctx, root)
			if err != nil {
				return err
			}
			defer in.close(ctx, root.logger)

			return runModes(ctx, cmd.OutOrStdout(), svcs.Runner, opts.modes())
		},
	}

	cmd.Flags().BoolVar(&opts.update, "update", false, "sync queue items changed within the update lookback instead of a full sync")
	cmd.Flags().BoolVar(&opts.jobs, "jobs", false, "also sync jobs after queue items")

	return cmd
}

type onceRunner interface {
	RunOnce(ctx context.Context, mode model.SyncMode) (*model.SyncResult, error)
}

// runModes runs each mode in order and stops at the first failed run.
// A mode skipped because another instance holds the lease is not a failure.
func runModes(ctx context.Context, w io.Writer, runner onceRunner, modes []model.SyncMode) error {
	for _, mode := range modes {
		result, err := runner.RunOnce(ctx, mode)
		if errors.Is(err, scheduler.ErrLeaseHeld) {
			if _, werr := fmt.Fprintf(w, "%s sync skipped: another instance holds the lease\n", mode); werr != nil {
				return werr
			}
			continue
		}
		if result != nil {
			if werr := writeSummary(w, result); werr != nil {
				return werr
			}
		}
		if err != nil {
			return fmt.Errorf("%s sync: %w", mode, err)
		}
	}
	return nil
}
