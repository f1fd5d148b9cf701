package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/SKpacteazy/rpa-insights-backend/internal/data/database"
	"github.com/SKpacteazy/rpa-insights-backend/internal/domain/model"
	apperrors "github.com/SKpacteazy/rpa-insights-backend/internal/errors"
)

const configurationTable = "uipath_configuration"

var configurationColumns = []string{
	"id", "base_url", "client_id", "client_secret", "org", "tenant", "scope", "created_at",
}

// ConfigRepo reads and appends upstream connection settings.
// Rows are never updated; the newest id is the active configuration.
type ConfigRepo struct {
	DB *sql.DB
}

// NewConfigRepo creates a new ConfigRepo.
func NewConfigRepo(db *sql.DB) *ConfigRepo {
	return &ConfigRepo{DB: db}
}

// Latest returns the most recently inserted configuration.
func (r *ConfigRepo) Latest(ctx context.Context) (*model.Configuration, error) {
	query := database.BuildLatest(configurationTable, "id", configurationColumns...)

	var c model.Configuration
	err := r.DB.QueryRowContext(ctx, query).Scan(
		&c.ID, &c.Endpoint, &c.ClientID, &c.ClientSecret,
		&c.Organization, &c.Tenant, &c.Scope, &c.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrConfigurationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", apperrors.MapDBError(err))
	}
	return &c, nil
}

// Append inserts a new configuration row and returns it.
func (r *ConfigRepo) Append(ctx context.Context, req *model.SaveConfigurationRequest) (*model.Configuration, error) {
	if req == nil {
		return nil, errors.New("save configuration request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	c := model.Configuration{
		Endpoint:     req.Endpoint,
		ClientID:     strings.TrimSpace(req.ClientID),
		ClientSecret: req.ClientSecret,
		Organization: strings.TrimSpace(req.Organization),
		Tenant:       strings.TrimSpace(req.Tenant),
		Scope:        strings.TrimSpace(req.Scope),
	}
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO uipath_configuration (base_url, client_id, client_secret, org, tenant, scope)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`, c.Endpoint, c.ClientID, c.ClientSecret, c.Organization, c.Tenant, c.Scope).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("append configuration: %w", apperrors.MapDBError(err))
	}
	return &c, nil
}
