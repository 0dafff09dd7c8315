package constants

import "time"

// Well-known endpoints.
const (
	// DefaultAPIHost is the base of the version-specific API endpoints.
	DefaultAPIHost = "https://api.craftbase.io"

	// DefaultTokenURL is the well-known OAuth2 token endpoint.
	DefaultTokenURL = "https://auth.craftbase.io/oauth/token"
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default wall-clock limit per request.
	DefaultHTTPTimeout = 30 * time.Second
)

// Token lifecycle.
const (
	// TokenExpiryBuffer is how long before the recorded expiry a token is
	// already treated as expired, compensating for the network latency of
	// the request that will carry it.
	TokenExpiryBuffer = 30 * time.Second
)

// Content types.
const (
	// ContentTypeJSON is the default request content type.
	ContentTypeJSON = "application/json"

	// ContentTypeMergePatch is forced on PATCH requests.
	ContentTypeMergePatch = "application/merge-patch+json"
)

// Pagination and display limits.
const (
	// StandardPageSize is the common page size for list commands.
	StandardPageSize = 50
)

// Output formatting.
const (
	// YAMLIndentSize is the indent used by YAML command output.
	YAMLIndentSize = 2
)
