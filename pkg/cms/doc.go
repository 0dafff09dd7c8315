// Package cms defines the public types and interfaces for the Craftbase
// content-management API client.
//
// A client is created through pkg/cmsclient:
//
//	client, err := cmsclient.New(&cms.Config{
//	    ClientID:     "my-client",
//	    ClientSecret: "my-secret",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := client.Content().Get(ctx, "item-id")
//
// # Authentication
//
// The client authenticates with the OAuth2 client_credentials grant against
// the configured token endpoint. Tokens are held in memory for the life of
// the client instance and refreshed automatically when they are within 30
// seconds of expiry, unless Config.DisableAutoRefresh is set. An externally
// managed token can be installed with Client.SetAccessToken; a token set
// without a lifetime never expires until it is explicitly replaced.
//
// # Concurrency
//
// A client is safe for concurrent use in the sense that token state is never
// read or written torn. Token refresh, however, is not serialized: two calls
// issued while the token is absent or expired may each perform an independent
// token exchange, and an in-flight call may still carry the previous token.
// This is a documented limitation, not a guarantee.
//
// # Errors
//
// Failed API calls return *APIError carrying the HTTP status and the
// structured problem body when the server provides one. Requests that exceed
// the configured timeout return an *APIError with status 408 and code
// CodeTimeout. Preconditions that fail before any network I/O (missing
// credentials, an operation unsupported by the configured API version)
// return *ConfigurationError. Other transport failures (DNS, connection
// refused) propagate as wrapped low-level errors.
package cms
