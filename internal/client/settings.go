package client

import (
	"strings"
	"time"

	"github.com/craftbase-io/cms-client/internal/constants"
	"github.com/craftbase-io/cms-client/pkg/cms"
)

// settings is the immutable, fully defaulted form of a cms.Config, created
// once at construction and never mutated afterwards.
type settings struct {
	baseURL        string
	tokenURL       string
	apiVersion     cms.APIVersion
	timeout        time.Duration
	defaultHeaders map[string]string
	autoRefresh    bool
	credentials    *cms.Credentials
	accessToken    string
	userAgent      string
	debug          bool
	logger         cms.Logger
}

// resolveSettings normalizes a configuration into settings with defaults
// applied. Pure data transformation: no I/O, no URL validation, and no
// failure conditions — malformed caller values are accepted as-is and
// surface at call time.
func resolveSettings(config *cms.Config) *settings {
	if config == nil {
		config = &cms.Config{}
	}

	version := config.APIVersion
	if version == "" {
		version = cms.APIVersionPreview3
	}

	baseURL := strings.TrimSuffix(config.BaseURL, "/")
	if baseURL == "" {
		baseURL = constants.DefaultAPIHost + "/" + string(version)
	}

	tokenURL := config.TokenURL
	if tokenURL == "" {
		tokenURL = constants.DefaultTokenURL
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = constants.DefaultHTTPTimeout
	}

	headers := map[string]string{
		"Content-Type": constants.ContentTypeJSON,
	}
	for key, value := range config.DefaultHeaders {
		headers[key] = value
	}

	var credentials *cms.Credentials
	if config.ClientID != "" || config.ClientSecret != "" || config.ActAs != "" {
		credentials = &cms.Credentials{
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			ActAs:        config.ActAs,
		}
	}

	return &settings{
		baseURL:        baseURL,
		tokenURL:       tokenURL,
		apiVersion:     version,
		timeout:        timeout,
		defaultHeaders: headers,
		autoRefresh:    !config.DisableAutoRefresh,
		credentials:    credentials,
		accessToken:    config.AccessToken,
		userAgent:      config.UserAgent,
		debug:          config.Debug,
		logger:         config.Logger,
	}
}
