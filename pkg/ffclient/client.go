// Package ffclient provides the main entry point for creating FastFuels API
// clients.
package ffclient

import (
	"fmt"
	"os"
	"strings"

	"github.com/fastfuels-io/fastfuels-client/internal/client"
	"github.com/fastfuels-io/fastfuels-client/internal/constants"
	"github.com/fastfuels-io/fastfuels-client/pkg/fastfuels"
)

// New creates a new FastFuels API client from config. The endpoint is
// normalized (trailing slash trimmed, https:// assumed when no scheme is
// given) and defaults to the production API. The API key falls back to the
// FASTFUELS_API_KEY environment variable when unset.
func New(config *fastfuels.Config) (fastfuels.Client, error) {
	if config == nil {
		return nil, fastfuels.ErrConfigRequired
	}

	config.APIEndpoint = normalizeEndpoint(config.APIEndpoint)

	apiClient, err := client.New(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return apiClient, nil
}

// NewWithAPIKey creates a client for the given endpoint and key. An empty
// endpoint selects the production API.
func NewWithAPIKey(endpoint, apiKey string) (fastfuels.Client, error) {
	return New(&fastfuels.Config{
		APIEndpoint: endpoint,
		APIKey:      apiKey,
	})
}

// normalizeEndpoint resolves the effective API base URL.
func normalizeEndpoint(endpoint string) string {
	if endpoint == "" {
		endpoint = os.Getenv(constants.APIEndpointEnvVar)
	}

	if endpoint == "" {
		endpoint = constants.DefaultAPIEndpoint
	}

	endpoint = strings.TrimSuffix(endpoint, "/")
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}

	return endpoint
}
