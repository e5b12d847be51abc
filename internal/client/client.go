// Package client implements the fastfuels.Client interface over the REST
// transport.
package client

import (
	"errors"
	"fmt"

	"github.com/fastfuels-io/fastfuels-client/internal/auth"
	"github.com/fastfuels-io/fastfuels-client/internal/constants"
	"github.com/fastfuels-io/fastfuels-client/internal/http"
	"github.com/fastfuels-io/fastfuels-client/pkg/fastfuels"
)

// Static errors for err113 compliance.
var (
	ErrAPIEndpointRequired = errors.New("API endpoint is required")
)

// Client implements the fastfuels.Client interface.
type Client struct {
	httpClient *http.Client
	keys       auth.KeyProvider
	baseURL    string
	logger     fastfuels.Logger
	cache      *fastfuels.CacheManager

	// Resource clients
	domains     fastfuels.DomainsClient
	inventories fastfuels.InventoriesClient
	features    fastfuels.FeaturesClient
	grids       fastfuels.GridsClient
	exports     fastfuels.ExportsClient
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *fastfuels.Config) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, http.WithHTTPTimeout(config.HTTPTimeout))
	}

	if config.RetryMax > 0 {
		retryWaitMin := constants.DefaultRetryWaitMin
		retryWaitMax := constants.DefaultRetryWaitMax

		if config.RetryWaitMin > 0 {
			retryWaitMin = config.RetryWaitMin
		}

		if config.RetryWaitMax > 0 {
			retryWaitMax = config.RetryWaitMax
		}

		httpOpts = append(httpOpts, http.WithRetryConfig(config.RetryMax, retryWaitMin, retryWaitMax))
	}

	return httpOpts
}

// createCacheManager builds the snapshot cache from config. A nil cache
// config disables caching.
func createCacheManager(config *fastfuels.Config) (*fastfuels.CacheManager, error) {
	if config.Cache == nil {
		return fastfuels.NewCacheManager(nil, nil), nil
	}

	cache, err := fastfuels.NewCacheFromConfig(config.Cache)
	if err != nil {
		return nil, fmt.Errorf("building cache: %w", err)
	}

	return fastfuels.NewCacheManager(cache, config.Cache.Options), nil
}

// New creates a new FastFuels API client.
func New(config *fastfuels.Config) (*Client, error) {
	if config == nil {
		return nil, fastfuels.ErrConfigRequired
	}

	if config.APIEndpoint == "" {
		return nil, ErrAPIEndpointRequired
	}

	keys := auth.Resolve(config.APIKey)
	httpOpts := createHTTPClientOptions(config)
	httpClient := http.NewClient(config.APIEndpoint, keys, httpOpts...)

	cache, err := createCacheManager(config)
	if err != nil {
		return nil, err
	}

	client := &Client{
		httpClient: httpClient,
		keys:       keys,
		baseURL:    config.APIEndpoint,
		logger:     config.Logger,
		cache:      cache,
	}

	client.initializeResourceClients()

	return client, nil
}

// NewWithKeyProvider creates a client with a custom key provider. Intended
// for tests and deployments with external secret rotation.
func NewWithKeyProvider(config *fastfuels.Config, keys auth.KeyProvider) (*Client, error) {
	if config == nil {
		return nil, fastfuels.ErrConfigRequired
	}

	if config.APIEndpoint == "" {
		return nil, ErrAPIEndpointRequired
	}

	httpOpts := createHTTPClientOptions(config)
	httpClient := http.NewClient(config.APIEndpoint, keys, httpOpts...)

	cache, err := createCacheManager(config)
	if err != nil {
		return nil, err
	}

	client := &Client{
		httpClient: httpClient,
		keys:       keys,
		baseURL:    config.APIEndpoint,
		logger:     config.Logger,
		cache:      cache,
	}

	client.initializeResourceClients()

	return client, nil
}

// initializeResourceClients initializes all resource-specific clients.
func (c *Client) initializeResourceClients() {
	c.domains = NewDomainsClient(c.httpClient, c.cache)
	c.inventories = NewInventoriesClient(c.httpClient)
	c.features = NewFeaturesClient(c.httpClient)
	c.grids = NewGridsClient(c.httpClient)
	c.exports = NewExportsClient(c.httpClient)
}

// Domains implements fastfuels.Client.Domains.
func (c *Client) Domains() fastfuels.DomainsClient {
	return c.domains
}

// Inventories implements fastfuels.Client.Inventories.
func (c *Client) Inventories() fastfuels.InventoriesClient {
	return c.inventories
}

// Features implements fastfuels.Client.Features.
func (c *Client) Features() fastfuels.FeaturesClient {
	return c.features
}

// Grids implements fastfuels.Client.Grids.
func (c *Client) Grids() fastfuels.GridsClient {
	return c.grids
}

// Exports implements fastfuels.Client.Exports.
func (c *Client) Exports() fastfuels.ExportsClient {
	return c.exports
}

// CacheStats returns the snapshot cache counters.
func (c *Client) CacheStats() fastfuels.CacheStats {
	return c.cache.GetStats()
}
