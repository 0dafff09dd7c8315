// Package cmsclient provides the main entry point for creating Craftbase
// content-management API clients.
//
//	client, err := cmsclient.NewWithClientCredentials("my-client", "my-secret")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	item, err := client.Content().Get(ctx, "item-id")
//
// See package cms for configuration, types, and error semantics.
package cmsclient
