// Package client implements the cms.Client interface.
package client

import (
	"context"
	"time"

	"github.com/craftbase-io/cms-client/internal/auth"
	"github.com/craftbase-io/cms-client/internal/http"
	"github.com/craftbase-io/cms-client/pkg/cms"
)

// Client implements the cms.Client interface.
type Client struct {
	settings     *settings
	httpClient   *http.Client
	tokenManager *auth.Manager
	content      cms.ContentClient
}

// New creates a client from the given configuration. Construction performs
// no network I/O; a nil config yields a client with all defaults applied.
func New(config *cms.Config) *Client {
	resolved := resolveSettings(config)

	tokenManager := auth.NewManager(&auth.Config{
		TokenURL:    resolved.tokenURL,
		Credentials: resolved.credentials,
		Timeout:     resolved.timeout,
		AutoRefresh: resolved.autoRefresh,
		Logger:      resolved.logger,
	})

	if resolved.accessToken != "" {
		tokenManager.SetAccessToken(resolved.accessToken, 0)
	}

	httpOpts := []http.Option{
		http.WithTimeout(resolved.timeout),
		http.WithDefaultHeaders(resolved.defaultHeaders),
	}

	if resolved.logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(resolved.logger))
	}

	if resolved.debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if resolved.userAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(resolved.userAgent))
	}

	httpClient := http.NewClient(resolved.baseURL, tokenManager, httpOpts...)

	client := &Client{
		settings:     resolved,
		httpClient:   httpClient,
		tokenManager: tokenManager,
	}
	client.content = NewContentClient(httpClient, resolved.apiVersion)

	return client
}

// Content implements cms.Client.Content.
func (c *Client) Content() cms.ContentClient {
	return c.content
}

// Authenticate implements cms.Client.Authenticate.
func (c *Client) Authenticate(ctx context.Context, creds *cms.Credentials) (*cms.Token, error) {
	return c.tokenManager.Authenticate(ctx, creds)
}

// SetAccessToken implements cms.Client.SetAccessToken.
func (c *Client) SetAccessToken(token string, expiresIn time.Duration) {
	c.tokenManager.SetAccessToken(token, expiresIn)
}

// TokenExpiresAt implements cms.Client.TokenExpiresAt.
func (c *Client) TokenExpiresAt() time.Time {
	return c.tokenManager.TokenExpiresAt()
}

// GetTokenManager returns the token manager for this client.
func (c *Client) GetTokenManager() *auth.Manager {
	return c.tokenManager
}
