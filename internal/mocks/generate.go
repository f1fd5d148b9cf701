// Package mocks provides mock implementations for testing the sync engine.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for the ports in internal/core.
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	client := mocks.NewMockUpstreamClient(ctrl)
//	client.EXPECT().ListFolders(gomock.Any(), gomock.Any()).Return(folders, nil)
package mocks

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=config_repository_mock.go github.com/SKpacteazy/rpa-insights-backend/internal/core ConfigRepository
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=queue_item_repository_mock.go github.com/SKpacteazy/rpa-insights-backend/internal/core QueueItemRepository
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=job_repository_mock.go github.com/SKpacteazy/rpa-insights-backend/internal/core JobRepository

// Upstream API client: Authenticate, ListFolders, FetchQueueItems, FetchJobs
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=upstream_client_mock.go github.com/SKpacteazy/rpa-insights-backend/internal/core UpstreamClient

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=run_lease_mock.go github.com/SKpacteazy/rpa-insights-backend/internal/core RunLease
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=sync_runner_mock.go github.com/SKpacteazy/rpa-insights-backend/internal/core SyncRunner
