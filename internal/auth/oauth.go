package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/craftbase-io/cms-client/internal/constants"
	"github.com/craftbase-io/cms-client/pkg/cms"
)

// Config configures a Manager.
type Config struct {
	// TokenURL is the full OAuth2 token endpoint.
	TokenURL string

	// Credentials used for the client_credentials grant when none are
	// passed per call. May be nil when tokens are managed externally.
	Credentials *cms.Credentials

	// Timeout is the wall-clock limit for a token exchange. Non-positive
	// values fall back to the default.
	Timeout time.Duration

	// AutoRefresh controls whether EnsureAuthenticated replaces an expired
	// token. When false, the stale token is left in place for the remote
	// peer to reject.
	AutoRefresh bool

	// Logger is optional.
	Logger cms.Logger
}

// Manager owns the current bearer token, decides when a refresh is needed,
// and performs the OAuth2 client_credentials exchange.
type Manager struct {
	config     *Config
	store      *TokenStore
	httpClient *http.Client
}

// NewManager creates a token manager. No network I/O occurs until a token
// is requested.
func NewManager(config *Config) *Manager {
	if config.Timeout <= 0 {
		config.Timeout = constants.DefaultHTTPTimeout
	}

	return &Manager{
		config:     config,
		store:      NewTokenStore(),
		httpClient: &http.Client{},
	}
}

// tokenRequest is the JSON body sent to the token endpoint.
type tokenRequest struct {
	GrantType    string `json:"grant_type"`
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	ActAs        string `json:"act_as,omitempty"`
}

// Authenticate performs a client_credentials token exchange. Per-call
// credentials take precedence over the configured ones; with neither, it
// fails with *cms.ConfigurationError before any network call. On success the
// stored token is replaced, with expiry computed from expires_in, and the
// full token response is returned.
func (m *Manager) Authenticate(ctx context.Context, creds *cms.Credentials) (*cms.Token, error) {
	if creds == nil {
		creds = m.config.Credentials
	}

	if creds == nil || creds.ClientID == "" {
		return nil, cms.ErrMissingCredentials
	}

	payload, err := json.Marshal(tokenRequest{
		GrantType:    "client_credentials",
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		ActAs:        creds.ActAs,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding token request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, m.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.config.TokenURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("building token request: %w", err)
	}

	req.Header.Set("Content-Type", constants.ContentTypeJSON)

	resp, err := m.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, cms.NewTimeoutError()
		}

		return nil, fmt.Errorf("requesting token: %w", err)
	}

	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, cms.NewTimeoutError()
		}

		return nil, fmt.Errorf("reading token response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, cms.ParseAPIError(resp.StatusCode, body)
	}

	var token cms.Token

	err = json.Unmarshal(body, &token)
	if err != nil {
		return nil, fmt.Errorf("parsing token response: %w", err)
	}

	var expiresAt time.Time
	if token.ExpiresIn > 0 {
		expiresAt = time.Now().Add(time.Duration(token.ExpiresIn) * time.Second)
	}

	m.store.Set(&Token{
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
		ExpiresAt:   expiresAt,
	})

	if m.config.Logger != nil {
		m.config.Logger.Debug("token exchanged", map[string]interface{}{
			"expires_in": token.ExpiresIn,
		})
	}

	return &token, nil
}

// IsExpired reports whether the held token should be refreshed: true when no
// token or no expiry is recorded, and true within the fixed 30 second buffer
// of the recorded expiry.
func (m *Manager) IsExpired() bool {
	return m.store.Get().Expired()
}

// EnsureAuthenticated makes sure a token is held before a request. With no
// token it authenticates using the configured credentials, failing with
// *cms.ConfigurationError when there are none. A held token that is expired
// is refreshed only when AutoRefresh is on; otherwise the stale token is
// kept on purpose, letting externally managed tokens opt out of refresh.
func (m *Manager) EnsureAuthenticated(ctx context.Context) error {
	token := m.store.Get()
	if token == nil || token.AccessToken == "" {
		_, err := m.Authenticate(ctx, nil)

		return err
	}

	if token.Expired() && m.config.AutoRefresh {
		_, err := m.Authenticate(ctx, nil)

		return err
	}

	return nil
}

// GetToken ensures a token is held and returns it. The returned token may be
// stale when AutoRefresh is off.
func (m *Manager) GetToken(ctx context.Context) (string, error) {
	err := m.EnsureAuthenticated(ctx)
	if err != nil {
		return "", err
	}

	token := m.store.Get()
	if token == nil {
		return "", nil
	}

	return token.AccessToken, nil
}

// SetAccessToken externally overrides the token state. A positive expiresIn
// computes the expiry the same way Authenticate does; otherwise the token is
// treated as non-expiring until explicitly replaced.
func (m *Manager) SetAccessToken(token string, expiresIn time.Duration) {
	var expiresAt time.Time
	if expiresIn > 0 {
		expiresAt = time.Now().Add(expiresIn)
	}

	m.store.Set(&Token{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresAt:   expiresAt,
	})
}

// TokenExpiresAt returns the held token's expiry, or the zero time when no
// token or no expiry is recorded.
func (m *Manager) TokenExpiresAt() time.Time {
	token := m.store.Get()
	if token == nil {
		return time.Time{}
	}

	return token.ExpiresAt
}
