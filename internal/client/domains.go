package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/fastfuels-io/fastfuels-client/internal/constants"
	"github.com/fastfuels-io/fastfuels-client/internal/http"
	"github.com/fastfuels-io/fastfuels-client/pkg/fastfuels"
)

// DomainsClient implements fastfuels.DomainsClient.
type DomainsClient struct {
	httpClient *http.Client
	cache      *fastfuels.CacheManager
}

// NewDomainsClient creates a new domains client. The cache manager is
// consulted on Get and invalidated on Update and Delete; pass a manager over
// a NoOpCache to disable caching.
func NewDomainsClient(httpClient *http.Client, cache *fastfuels.CacheManager) *DomainsClient {
	if cache == nil {
		cache = fastfuels.NewCacheManager(nil, nil)
	}

	return &DomainsClient{
		httpClient: httpClient,
		cache:      cache,
	}
}

func domainPath(domainID string) string {
	return "/v1/domains/" + domainID
}

// Create implements fastfuels.DomainsClient.Create.
func (c *DomainsClient) Create(ctx context.Context, request *fastfuels.CreateDomainRequest) (*fastfuels.Domain, error) {
	resp, err := c.httpClient.Post(ctx, "/v1/domains", request)
	if err != nil {
		return nil, fmt.Errorf("creating domain: %w", err)
	}

	var domain fastfuels.Domain

	err = json.Unmarshal(resp.Body, &domain)
	if err != nil {
		return nil, fmt.Errorf("parsing domain: %w", err)
	}

	return &domain, nil
}

// Get implements fastfuels.DomainsClient.Get. Snapshots are served from the
// cache within their TTL.
func (c *DomainsClient) Get(ctx context.Context, domainID string) (*fastfuels.Domain, error) {
	if domainID == "" {
		return nil, fastfuels.ErrDomainIDRequired
	}

	key := c.cache.GetCacheKey("GET", domainPath(domainID), nil)

	if data, cacheErr := c.cache.Get(ctx, key); cacheErr == nil {
		var cached fastfuels.Domain

		if json.Unmarshal(data, &cached) == nil {
			return &cached, nil
		}
	}

	resp, err := c.httpClient.Get(ctx, domainPath(domainID), nil)
	if err != nil {
		return nil, fmt.Errorf("getting domain: %w", err)
	}

	var domain fastfuels.Domain

	err = json.Unmarshal(resp.Body, &domain)
	if err != nil {
		return nil, fmt.Errorf("parsing domain: %w", err)
	}

	_ = c.cache.Set(ctx, key, resp.Body, constants.DomainCacheTTL)

	return &domain, nil
}

// List implements fastfuels.DomainsClient.List.
func (c *DomainsClient) List(ctx context.Context, params *fastfuels.ListDomainsParams) (*fastfuels.ListDomainsResponse, error) {
	query := url.Values{}

	if params != nil {
		if params.Page > 0 {
			query.Set("page", strconv.Itoa(params.Page))
		}

		if params.Size > 0 {
			query.Set("size", strconv.Itoa(params.Size))
		}

		if params.SortBy != "" {
			query.Set("sortBy", params.SortBy)
		}

		if params.SortOrder != "" {
			query.Set("sortOrder", params.SortOrder)
		}
	}

	resp, err := c.httpClient.Get(ctx, "/v1/domains", query)
	if err != nil {
		return nil, fmt.Errorf("listing domains: %w", err)
	}

	var list fastfuels.ListDomainsResponse

	err = json.Unmarshal(resp.Body, &list)
	if err != nil {
		return nil, fmt.Errorf("parsing domain list: %w", err)
	}

	return &list, nil
}

// Update implements fastfuels.DomainsClient.Update. Only name, description,
// and tags are mutable.
func (c *DomainsClient) Update(ctx context.Context, domainID string, request *fastfuels.UpdateDomainRequest) (*fastfuels.Domain, error) {
	if domainID == "" {
		return nil, fastfuels.ErrDomainIDRequired
	}

	resp, err := c.httpClient.Patch(ctx, domainPath(domainID), request)
	if err != nil {
		return nil, fmt.Errorf("updating domain: %w", err)
	}

	var domain fastfuels.Domain

	err = json.Unmarshal(resp.Body, &domain)
	if err != nil {
		return nil, fmt.Errorf("parsing domain: %w", err)
	}

	_ = c.cache.Delete(ctx, c.cache.GetCacheKey("GET", domainPath(domainID), nil))

	return &domain, nil
}

// Delete implements fastfuels.DomainsClient.Delete.
func (c *DomainsClient) Delete(ctx context.Context, domainID string) error {
	if domainID == "" {
		return fastfuels.ErrDomainIDRequired
	}

	_, err := c.httpClient.Delete(ctx, domainPath(domainID))
	if err != nil {
		return fmt.Errorf("deleting domain: %w", err)
	}

	_ = c.cache.Delete(ctx, c.cache.GetCacheKey("GET", domainPath(domainID), nil))

	return nil
}
