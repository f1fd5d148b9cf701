package data

import (
	"context"
	"database/sql"

	"github.com/SKpacteazy/rpa-insights-backend/internal/migrate"
)

// RunMigrations applies the embedded schema and returns the versions applied by this call.
func RunMigrations(ctx context.Context, db *sql.DB) ([]string, error) {
	return migrate.Run(ctx, db)
}
