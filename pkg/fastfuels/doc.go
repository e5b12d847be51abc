// Package fastfuels provides the public types and interfaces for the
// FastFuels API client.
//
// The FastFuels API builds 3D fuels data for fire behavior models. A client
// works with a spatial domain and the resources derived from it: tree
// inventories, road and water features, gridded fuel and terrain data, and
// downloadable exports. Most resources are processed asynchronously; the
// generic Wait and WaitInPlace helpers poll them until they reach a terminal
// status.
//
// Create clients using the ffclient package:
//
//	client, err := ffclient.NewWithAPIKey("https://api.fastfuels.silvxlabs.com", apiKey)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	domain, err := client.Domains().Create(ctx, &fastfuels.CreateDomainRequest{...})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	inv, err := client.Inventories().Tree().CreateFromTreeMap(ctx, domain.ID, nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	inv, err = client.Inventories().Tree().WaitUntilCompleted(ctx, domain.ID, nil)
package fastfuels
