// Package ffclient provides the primary entry point for constructing a
// FastFuels API client that implements the fastfuels.Client interface.
//
// It layers configuration, HTTP transport, and authentication on top of the
// resource interfaces and types defined in the fastfuels package. Most
// applications should import ffclient to build a client, then use the
// returned fastfuels.Client to access resource-specific clients, for example
// Domains(), Inventories(), Grids(), etc.
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fastfuels-io/fastfuels-client/pkg/fastfuels"
//	  "github.com/fastfuels-io/fastfuels-client/pkg/ffclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  // Minimal: key from the FASTFUELS_API_KEY environment variable,
//	  // production endpoint.
//	  cli, err := ffclient.New(&fastfuels.Config{})
//	  if err != nil { log.Fatal(err) }
//
//	  // Or with an explicit endpoint and key:
//	  cli, err = ffclient.NewWithAPIKey("https://api.example.com", "my-key")
//	  if err != nil { log.Fatal(err) }
//
//	  // Use resource clients via the fastfuels.Client interface
//	  domains, err := cli.Domains().List(ctx, nil)
//	  if err != nil { log.Fatal(err) }
//	  _ = domains
//	}
package ffclient
