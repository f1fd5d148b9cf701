package main

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/SKpacteazy/rpa-insights-backend/config"
	"github.com/SKpacteazy/rpa-insights-backend/internal/adapters/scheduler"
	"github.com/SKpacteazy/rpa-insights-backend/internal/domain/model"
	"github.com/SKpacteazy/rpa-insights-backend/internal/mocks"
)

type fakeRunner struct {
	results map[model.SyncMode]*model.SyncResult
	errs    map[model.SyncMode]error
	calls   []model.SyncMode
}

func (f *fakeRunner) RunOnce(_ context.Context, mode model.SyncMode) (*model.SyncResult, error) {
	f.calls = append(f.calls, mode)
	return f.results[mode], f.errs[mode]
}

func TestSyncOptions_Modes(t *testing.T) {
	tests := []struct {
		name string
		opts syncOptions
		want []model.SyncMode
	}{
		{name: "default full", want: []model.SyncMode{model.SyncModeFull}},
		{name: "update", opts: syncOptions{update: true}, want: []model.SyncMode{model.SyncModeUpdate}},
		{name: "full then jobs", opts: syncOptions{jobs: true}, want: []model.SyncMode{model.SyncModeFull, model.SyncModeJobs}},
		{
			name: "update then jobs",
			opts: syncOptions{update: true, jobs: true},
			want: []model.SyncMode{model.SyncModeUpdate, model.SyncModeJobs},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.opts.modes())
		})
	}
}

func TestRunModes_PrintsSummaries(t *testing.T) {
	start := time.Date(2025, 12, 16, 6, 0, 0, 0, time.UTC)
	before, after := int64(120), int64(130)
	runner := &fakeRunner{results: map[model.SyncMode]*model.SyncResult{
		model.SyncModeFull: {
			Mode:             model.SyncModeFull,
			State:            model.RunStateCompleted,
			RecordsFetched:   10,
			RecordsPersisted: 10,
			CountBefore:      &before,
			CountAfter:       &after,
			Partitions: []model.PartitionResult{
				{FolderID: 1, FolderName: "Finance", Fetched: 10, Persisted: 10},
				{FolderID: 2, FolderName: "Ops", FailedStage: model.PartitionStageFetch, Err: errors.New("upstream 502")},
			},
			StartedAt:  start,
			FinishedAt: start.Add(1500 * time.Millisecond),
		},
		model.SyncModeJobs: {Mode: model.SyncModeJobs, State: model.RunStateCompleted},
	}}

	var out bytes.Buffer
	err := runModes(context.Background(), &out, runner, []model.SyncMode{model.SyncModeFull, model.SyncModeJobs})
	require.NoError(t, err)

	assert.Equal(t, []model.SyncMode{model.SyncModeFull, model.SyncModeJobs}, runner.calls)
	got := out.String()
	assert.Regexp(t, `mode:\s+full\n`, got)
	assert.Regexp(t, `folders:\s+2 \(1 failed\)\n`, got)
	assert.Regexp(t, `queue item rows:\s+120 -> 130\n`, got)
	assert.Regexp(t, `duration:\s+1\.5s\n`, got)
	assert.Contains(t, got, "Ops (2)")
	assert.Contains(t, got, "upstream 502")
	assert.Regexp(t, `mode:\s+jobs\n`, got)
}

func TestRunModes_StopsOnFailure(t *testing.T) {
	runner := &fakeRunner{
		results: map[model.SyncMode]*model.SyncResult{
			model.SyncModeUpdate: {Mode: model.SyncModeUpdate, State: model.RunStateAborted, AbortReason: "token exchange failed"},
		},
		errs: map[model.SyncMode]error{model.SyncModeUpdate: errors.New("authenticate: 401")},
	}

	var out bytes.Buffer
	err := runModes(context.Background(), &out, runner, []model.SyncMode{model.SyncModeUpdate, model.SyncModeJobs})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "update sync")
	assert.Equal(t, []model.SyncMode{model.SyncModeUpdate}, runner.calls)
	assert.Contains(t, out.String(), "reason:")
}

func TestRunModes_LeaseHeldIsNotFatal(t *testing.T) {
	runner := &fakeRunner{
		results: map[model.SyncMode]*model.SyncResult{
			model.SyncModeJobs: {Mode: model.SyncModeJobs, State: model.RunStateCompleted},
		},
		errs: map[model.SyncMode]error{model.SyncModeFull: scheduler.ErrLeaseHeld},
	}

	var out bytes.Buffer
	err := runModes(context.Background(), &out, runner, []model.SyncMode{model.SyncModeFull, model.SyncModeJobs})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "full sync skipped")
	assert.Len(t, runner.calls, 2)
}

func TestShowConfiguration(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockConfigRepository(ctrl)

	t.Run("masks secret", func(t *testing.T) {
		repo.EXPECT().Latest(gomock.Any()).Return(&model.Configuration{
			ID:           7,
			Endpoint:     "https://cloud.uipath.com",
			ClientID:     "app",
			ClientSecret: "s3cret",
			Organization: "acme",
			Tenant:       "DefaultTenant",
		}, nil)

		var out bytes.Buffer
		require.NoError(t, showConfiguration(context.Background(), &out, repo))
		assert.Contains(t, out.String(), "****")
		assert.NotContains(t, out.String(), "s3cret")
		assert.NotContains(t, out.String(), "warning")
	})

	t.Run("warns on incomplete row", func(t *testing.T) {
		repo.EXPECT().Latest(gomock.Any()).Return(&model.Configuration{ID: 8, ClientID: "app"}, nil)

		var out bytes.Buffer
		require.NoError(t, showConfiguration(context.Background(), &out, repo))
		assert.Contains(t, out.String(), "client_secret organization tenant")
	})

	t.Run("empty table", func(t *testing.T) {
		repo.EXPECT().Latest(gomock.Any()).Return(nil, model.ErrConfigurationNotFound)

		var out bytes.Buffer
		require.NoError(t, showConfiguration(context.Background(), &out, repo))
		assert.Contains(t, out.String(), "no configuration stored")
	})

	t.Run("db error", func(t *testing.T) {
		repo.EXPECT().Latest(gomock.Any()).Return(nil, errors.New("connection refused"))
		require.Error(t, showConfiguration(context.Background(), &bytes.Buffer{}, repo))
	})
}

func TestSaveConfiguration(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockConfigRepository(ctrl)

	t.Run("invalid request never reaches the store", func(t *testing.T) {
		err := saveConfiguration(context.Background(), &bytes.Buffer{}, repo, &model.SaveConfigurationRequest{
			Endpoint: "cloud.uipath.com",
		})
		require.Error(t, err)
	})

	t.Run("appends", func(t *testing.T) {
		req := &model.SaveConfigurationRequest{
			Endpoint:     "https://cloud.uipath.com/",
			ClientID:     "app",
			ClientSecret: "s3cret",
			Organization: "acme",
			Tenant:       "DefaultTenant",
		}
		repo.EXPECT().Append(gomock.Any(), req).Return(&model.Configuration{ID: 3}, nil)

		var out bytes.Buffer
		require.NoError(t, saveConfiguration(context.Background(), &out, repo, req))
		assert.Equal(t, "https://cloud.uipath.com", req.Endpoint)
		assert.Equal(t, "configuration 3 saved\n", out.String())
	})
}

func TestRootCommand(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	t.Run("help lists subcommands", func(t *testing.T) {
		var out bytes.Buffer
		cmd := newRootCommand(&rootOptions{
			loadConfig: func() (config.AppConfig, error) { return config.AppConfig{}, nil },
			out:        &out,
		})
		cmd.SetArgs([]string{"--help"})
		require.NoError(t, cmd.Execute())
		for _, name := range []string{"sync", "serve", "migrate", "config"} {
			assert.Contains(t, out.String(), name)
		}
	})

	t.Run("config load failure stops the command", func(t *testing.T) {
		cmd := newRootCommand(&rootOptions{
			loadConfig: func() (config.AppConfig, error) { return config.AppConfig{}, errors.New("parse config: bad") },
			out:        &bytes.Buffer{},
		})
		cmd.SetArgs([]string{"sync", "--update"})
		err := cmd.ExecuteContext(context.Background())
		require.EqualError(t, err, "parse config: bad")
	})

	t.Run("sync rejects positional args", func(t *testing.T) {
		cmd := newRootCommand(&rootOptions{
			loadConfig: func() (config.AppConfig, error) { return config.AppConfig{}, nil },
			out:        &bytes.Buffer{},
		})
		cmd.SetArgs([]string{"sync", "extra"})
		require.Error(t, cmd.ExecuteContext(context.Background()))
	})

	t.Run("config set requires credentials", func(t *testing.T) {
		cmd := newRootCommand(&rootOptions{
			loadConfig: func() (config.AppConfig, error) { return config.AppConfig{}, nil },
			out:        &bytes.Buffer{},
		})
		cmd.SetArgs([]string{"config", "set", "--endpoint", "https://cloud.uipath.com"})
		err := cmd.ExecuteContext(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "required flag")
	})
}
