package model

import (
	"errors"
	"strings"
	"time"
)

// ErrConfigurationNotFound is returned when the configuration table has no rows.
var ErrConfigurationNotFound = errors.New("no upstream configuration found")

// Configuration holds the upstream connection parameters. Rows are append-only:
// the active configuration is always the most recently inserted one.
type Configuration struct {
	ID           int64     `json:"id"            db:"id"`
	Endpoint     string    `json:"endpoint"      db:"base_url"`
	ClientID     string    `json:"client_id"     db:"client_id"`
	ClientSecret string    `json:"client_secret" db:"client_secret"`
	Organization string    `json:"organization"  db:"org"`
	Tenant       string    `json:"tenant"        db:"tenant"`
	Scope        string    `json:"scope"         db:"scope"`
	CreatedAt    time.Time `json:"created_at"    db:"created_at"`
}

// MissingFields lists the required credentials that are empty.
// Endpoint and scope are not part of the gate.
func (c *Configuration) MissingFields() []string {
	if c == nil {
		return []string{"client_id", "client_secret", "organization", "tenant"}
	}
	var missing []string
	for _, f := range []struct {
		name  string
		value string
	}{
		{"client_id", c.ClientID},
		{"client_secret", c.ClientSecret},
		{"organization", c.Organization},
		{"tenant", c.Tenant},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// Validate reports whether the configuration can be used for a run.
func (c *Configuration) Validate() error {
	if missing := c.MissingFields(); len(missing) > 0 {
		return errors.New("missing configuration: " + strings.Join(missing, ", "))
	}
	return nil
}

// Redacted returns a copy safe to log.
func (c Configuration) Redacted() Configuration {
	if c.ClientSecret != "" {
		c.ClientSecret = "****"
	}
	return c
}

// SaveConfigurationRequest is the input for appending a configuration row.
type SaveConfigurationRequest struct {
	Endpoint     string `json:"endpoint"`
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	Organization string `json:"organization"`
	Tenant       string `json:"tenant"`
	Scope        string `json:"scope"`
}

// Validate checks the request before it is appended.
func (r *SaveConfigurationRequest) Validate() error {
	r.Endpoint = strings.TrimRight(strings.TrimSpace(r.Endpoint), "/")
	if r.Endpoint == "" {
		return errors.New("endpoint is required")
	}
	if !strings.HasPrefix(r.Endpoint, "http://") && !strings.HasPrefix(r.Endpoint, "https://") {
		return errors.New("endpoint must be an http(s) URL")
	}
	cfg := Configuration{
		ClientID:     r.ClientID,
		ClientSecret: r.ClientSecret,
		Organization: r.Organization,
		Tenant:       r.Tenant,
	}
	return cfg.Validate()
}

// Session is a bearer token bound to the upstream coordinates it was issued for.
// It is owned by a single run and never persisted.
type Session struct {
	AccessToken  string
	TokenType    string
	AcquiredAt   time.Time
	ExpiresAt    time.Time
	Endpoint     string
	Organization string
	Tenant       string
}

// Folder is an upstream organizational partition.
type Folder struct {
	ID          int64  `json:"Id"`
	DisplayName string `json:"DisplayName"`
}
