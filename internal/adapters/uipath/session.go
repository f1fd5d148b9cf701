package uipath

import (
	"context"
	"errors"
	"fmt"
	"strings"

	gooidc "github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/SKpacteazy/rpa-insights-backend/internal/domain/model"
	apperrors "github.com/SKpacteazy/rpa-insights-backend/internal/errors"
)

// identityIssuerPath is the OIDC issuer below the configured endpoint.
const identityIssuerPath = "/identity_"

// Authenticate performs a client-credentials grant and returns a run-scoped session.
// Any failure is an authentication error; the token is never refreshed.
func (c *Client) Authenticate(ctx context.Context, cfg *model.Configuration) (*model.Session, error) {
	if cfg == nil {
		return nil, apperrors.Authentication(errors.New("configuration is nil"), "authenticate")
	}
	endpoint := strings.TrimRight(strings.TrimSpace(cfg.Endpoint), "/")
	if endpoint == "" {
		return nil, apperrors.Authentication(errors.New("endpoint is empty"), "authenticate")
	}

	// oauth2 and go-oidc pick the HTTP client up from the context.
	httpCtx := context.WithValue(ctx, oauth2.HTTPClient, c.hc)

	tokenURL, err := c.tokenURL(httpCtx, endpoint)
	if err != nil {
		return nil, apperrors.Authentication(err, "resolve token endpoint")
	}

	cc := clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     tokenURL,
		Scopes:       strings.Fields(cfg.Scope),
		AuthStyle:    oauth2.AuthStyleInParams,
	}
	tok, err := cc.Token(httpCtx)
	if err != nil {
		return nil, apperrors.Authentication(err, "token exchange failed")
	}
	if tok.AccessToken == "" {
		return nil, apperrors.Authentication(errors.New("response has no access_token"), "token exchange failed")
	}

	sess := &model.Session{
		AccessToken:  tok.AccessToken,
		TokenType:    tok.Type(),
		AcquiredAt:   c.now().UTC(),
		ExpiresAt:    tok.Expiry,
		Endpoint:     endpoint,
		Organization: cfg.Organization,
		Tenant:       cfg.Tenant,
	}
	c.logger.InfoContext(ctx, "authenticated with upstream",
		"endpoint", endpoint,
		"tenant", cfg.Tenant,
		"expires_at", tok.Expiry,
	)
	return sess, nil
}

func (c *Client) tokenURL(ctx context.Context, endpoint string) (string, error) {
	if !c.oidcDiscovery {
		return endpoint + c.tokenPath, nil
	}
	provider, err := gooidc.NewProvider(ctx, endpoint+identityIssuerPath)
	if err != nil {
		return "", fmt.Errorf("oidc discovery: %w", err)
	}
	tokenURL := provider.Endpoint().TokenURL
	if tokenURL == "" {
		return "", errors.New("oidc discovery returned no token endpoint")
	}
	return tokenURL, nil
}
