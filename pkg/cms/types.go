package cms

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"time"
)

// APIVersion identifies a version of the content management API.
type APIVersion string

const (
	// APIVersionPreview2 is the legacy preview API. It does not support
	// partial updates.
	APIVersionPreview2 APIVersion = "preview2"

	// APIVersionPreview3 is the current preview API.
	APIVersionPreview3 APIVersion = "preview3"
)

// Config represents client configuration for building a cms.Client.
//
// The zero value is usable when credentials are supplied some other way
// (for example via SetAccessToken): BaseURL defaults to the well-known
// endpoint for the resolved APIVersion, TokenURL to the well-known OAuth
// endpoint, APIVersion to APIVersionPreview3, and Timeout to 30 seconds.
type Config struct {
	// BaseURL is the API endpoint. A trailing slash is trimmed. When empty,
	// the version-specific default endpoint is used. No URL validation is
	// performed; malformed values surface as transport errors at call time.
	BaseURL string

	// TokenURL is the full OAuth2 token endpoint.
	TokenURL string

	// APIVersion selects the API surface. Defaults to APIVersionPreview3.
	APIVersion APIVersion

	// Timeout is the wall-clock limit applied to each outbound request,
	// including the token exchange. Non-positive values fall back to the
	// 30 second default.
	Timeout time.Duration

	// DefaultHeaders are sent on every request. They always include a JSON
	// content type unless overridden here.
	DefaultHeaders map[string]string

	// DisableAutoRefresh stops the client from refreshing an expired token
	// before a request. Useful when tokens are managed externally via
	// SetAccessToken; the stale token is sent as-is and the server decides.
	DisableAutoRefresh bool

	// ClientID and ClientSecret configure the client_credentials grant.
	ClientID     string
	ClientSecret string

	// ActAs optionally requests impersonation of another subject during the
	// token exchange.
	ActAs string

	// AccessToken, when set, is installed as a non-expiring external token.
	AccessToken string

	// UserAgent overrides the default User-Agent header.
	UserAgent string

	// Debug enables verbose HTTP request/response logging when a Logger is
	// provided.
	Debug bool

	// Logger is an optional structured logger used by the HTTP layer.
	Logger Logger
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Credentials holds an OAuth2 client id/secret pair, with an optional
// impersonation subject. Immutable once passed in.
type Credentials struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	ActAs        string `json:"act_as,omitempty"`
}

// Token is the OAuth2 token endpoint response.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// Result pairs a decoded response payload with the HTTP status code and the
// opaque ETag concurrency token, when the server returned one.
type Result[T any] struct {
	Data   T
	Status int
	ETag   string
}

// Page is a paged collection response. PageIndex and PageSize echo what was
// requested, or the server defaults when the request did not specify them.
type Page[T any] struct {
	Items          []T `json:"items"`
	PageIndex      int `json:"pageIndex"`
	PageSize       int `json:"pageSize"`
	TotalItemCount int `json:"totalItemCount"`
}

// ListOptions controls paging for list operations. Nil fields are omitted
// from the request entirely, leaving the server defaults in effect.
type ListOptions struct {
	PageIndex *int
	PageSize  *int
}

// ToValues converts the options to query parameters.
func (o *ListOptions) ToValues() url.Values {
	values := url.Values{}
	if o == nil {
		return values
	}

	if o.PageIndex != nil {
		values.Set("pageIndex", strconv.Itoa(*o.PageIndex))
	}

	if o.PageSize != nil {
		values.Set("pageSize", strconv.Itoa(*o.PageSize))
	}

	return values
}

// Int returns a pointer to v, for use in ListOptions.
func Int(v int) *int {
	return &v
}

// ContentItem is a single content record. Beyond the required id, content
// type, and name, the schema is defined by the remote system; all other
// fields round-trip through Fields.
type ContentItem struct {
	ID          string
	ContentType string
	Name        string
	Fields      map[string]interface{}
}

const (
	fieldID          = "id"
	fieldContentType = "contentType"
	fieldName        = "name"
)

// MarshalJSON flattens Fields alongside the named properties.
func (c ContentItem) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(c.Fields)+3)
	for key, value := range c.Fields {
		out[key] = value
	}

	out[fieldID] = c.ID
	out[fieldContentType] = c.ContentType
	out[fieldName] = c.Name

	return json.Marshal(out)
}

// UnmarshalJSON splits the named properties out of the open document and
// keeps the remainder in Fields.
func (c *ContentItem) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage

	err := json.Unmarshal(data, &raw)
	if err != nil {
		return err
	}

	item := ContentItem{Fields: make(map[string]interface{})}

	for key, value := range raw {
		switch key {
		case fieldID:
			err = json.Unmarshal(value, &item.ID)
		case fieldContentType:
			err = json.Unmarshal(value, &item.ContentType)
		case fieldName:
			err = json.Unmarshal(value, &item.Name)
		default:
			var field interface{}

			err = json.Unmarshal(value, &field)
			if err == nil {
				item.Fields[key] = field
			}
		}

		if err != nil {
			return err
		}
	}

	*c = item

	return nil
}

// ContentRequest is a partial content item for create and update calls.
// Every field is optional; only what is set is sent, which keeps PATCH
// bodies valid merge-patch documents.
type ContentRequest struct {
	ContentType string
	Name        string
	Fields      map[string]interface{}
}

// MarshalJSON emits only the properties that are set.
func (r ContentRequest) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(r.Fields)+2)
	for key, value := range r.Fields {
		out[key] = value
	}

	if r.ContentType != "" {
		out[fieldContentType] = r.ContentType
	}

	if r.Name != "" {
		out[fieldName] = r.Name
	}

	return json.Marshal(out)
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (r *ContentRequest) UnmarshalJSON(data []byte) error {
	var raw map[string]interface{}

	err := json.Unmarshal(data, &raw)
	if err != nil {
		return err
	}

	request := ContentRequest{Fields: make(map[string]interface{})}

	for key, value := range raw {
		switch key {
		case fieldContentType:
			if s, ok := value.(string); ok {
				request.ContentType = s
			}
		case fieldName:
			if s, ok := value.(string); ok {
				request.Name = s
			}
		default:
			request.Fields[key] = value
		}
	}

	*r = request

	return nil
}

// ContentClient provides the content item operations.
type ContentClient interface {
	// Get retrieves a single content item by id.
	Get(ctx context.Context, id string) (*Result[ContentItem], error)

	// List retrieves a page of content items from a container.
	List(ctx context.Context, containerKey string, opts *ListOptions) (*Page[ContentItem], error)

	// Create creates a content item from a partial item.
	Create(ctx context.Context, request *ContentRequest) (*Result[ContentItem], error)

	// Update applies a merge-patch to an existing item. An empty etag skips
	// the If-Match precondition. Requires APIVersionPreview3.
	Update(ctx context.Context, id string, request *ContentRequest, etag string) (*Result[ContentItem], error)

	// Delete removes a content item.
	Delete(ctx context.Context, id string) (*Result[struct{}], error)
}

// Client is the public surface of the content management client.
type Client interface {
	// Content returns the content item operations.
	Content() ContentClient

	// Authenticate performs a client_credentials token exchange, using the
	// passed credentials when non-nil and the configured ones otherwise.
	// The stored token is replaced on success and the full token response
	// returned.
	Authenticate(ctx context.Context, creds *Credentials) (*Token, error)

	// SetAccessToken installs an externally managed token. A non-positive
	// expiresIn marks the token as never expiring.
	SetAccessToken(token string, expiresIn time.Duration)

	// TokenExpiresAt reports when the held token expires. The zero time
	// means no expiry is recorded.
	TokenExpiresAt() time.Time
}
