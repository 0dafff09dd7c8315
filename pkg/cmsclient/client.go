package cmsclient

import (
	"strings"

	"github.com/craftbase-io/cms-client/internal/client"
	"github.com/craftbase-io/cms-client/pkg/cms"
)

// New creates a new content-management API client. A nil config is treated
// as empty: the well-known endpoints and defaults apply, and credentials can
// be supplied later via SetAccessToken or per-call Authenticate.
func New(config *cms.Config) (cms.Client, error) {
	cfg := cms.Config{}
	if config != nil {
		cfg = *config
	}

	// Normalize the endpoint; everything else is defaulted at resolution.
	if cfg.BaseURL != "" {
		endpoint := strings.TrimSuffix(cfg.BaseURL, "/")
		if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
			endpoint = "https://" + endpoint
		}

		cfg.BaseURL = endpoint
	}

	return client.New(&cfg), nil
}

// NewWithClientCredentials creates a new client using the OAuth2
// client_credentials grant against the well-known endpoints.
func NewWithClientCredentials(clientID, clientSecret string) (cms.Client, error) {
	return New(&cms.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
	})
}

// NewWithToken creates a new client with an externally managed access token.
// The token never expires until replaced; pair with DisableAutoRefresh when
// no credentials are configured.
func NewWithToken(token string) (cms.Client, error) {
	return New(&cms.Config{
		AccessToken:        token,
		DisableAutoRefresh: true,
	})
}
