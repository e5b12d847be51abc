package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fastfuels-io/fastfuels-client/internal/http"
	"github.com/fastfuels-io/fastfuels-client/pkg/fastfuels"
)

// InventoriesClient implements fastfuels.InventoriesClient.
type InventoriesClient struct {
	httpClient *http.Client
	tree       *TreeInventoryClient
}

// NewInventoriesClient creates a new inventories client.
func NewInventoriesClient(httpClient *http.Client) *InventoriesClient {
	return &InventoriesClient{
		httpClient: httpClient,
		tree:       NewTreeInventoryClient(httpClient),
	}
}

// Get implements fastfuels.InventoriesClient.Get.
func (c *InventoriesClient) Get(ctx context.Context, domainID string) (*fastfuels.Inventories, error) {
	if domainID == "" {
		return nil, fastfuels.ErrDomainIDRequired
	}

	resp, err := c.httpClient.Get(ctx, domainPath(domainID)+"/inventories", nil)
	if err != nil {
		return nil, fmt.Errorf("getting inventories: %w", err)
	}

	var inventories fastfuels.Inventories

	err = json.Unmarshal(resp.Body, &inventories)
	if err != nil {
		return nil, fmt.Errorf("parsing inventories: %w", err)
	}

	inventories.DomainID = domainID

	return &inventories, nil
}

// Tree implements fastfuels.InventoriesClient.Tree.
func (c *InventoriesClient) Tree() fastfuels.TreeInventoryClient {
	return c.tree
}

// TreeInventoryClient implements fastfuels.TreeInventoryClient.
type TreeInventoryClient struct {
	httpClient *http.Client
}

// NewTreeInventoryClient creates a new tree inventory client.
func NewTreeInventoryClient(httpClient *http.Client) *TreeInventoryClient {
	return &TreeInventoryClient{httpClient: httpClient}
}

func treeInventoryPath(domainID string) string {
	return domainPath(domainID) + "/inventories/tree"
}

// Create implements fastfuels.TreeInventoryClient.Create.
func (c *TreeInventoryClient) Create(ctx context.Context, domainID string, request *fastfuels.CreateTreeInventoryRequest) (*fastfuels.TreeInventory, error) {
	if domainID == "" {
		return nil, fastfuels.ErrDomainIDRequired
	}

	resp, err := c.httpClient.Post(ctx, treeInventoryPath(domainID), request)
	if err != nil {
		return nil, fmt.Errorf("creating tree inventory: %w", err)
	}

	var inventory fastfuels.TreeInventory

	err = json.Unmarshal(resp.Body, &inventory)
	if err != nil {
		return nil, fmt.Errorf("parsing tree inventory: %w", err)
	}

	inventory.DomainID = domainID

	return &inventory, nil
}

// CreateFromTreeMap implements fastfuels.TreeInventoryClient.CreateFromTreeMap.
func (c *TreeInventoryClient) CreateFromTreeMap(ctx context.Context, domainID string, featureMasks []string) (*fastfuels.TreeInventory, error) {
	request := &fastfuels.CreateTreeInventoryRequest{
		Sources:      []string{"TreeMap"},
		TreeMap:      &fastfuels.TreeMapSource{Version: "2016"},
		FeatureMasks: featureMasks,
	}

	return c.Create(ctx, domainID, request)
}

// Get implements fastfuels.TreeInventoryClient.Get.
func (c *TreeInventoryClient) Get(ctx context.Context, domainID string) (*fastfuels.TreeInventory, error) {
	if domainID == "" {
		return nil, fastfuels.ErrDomainIDRequired
	}

	resp, err := c.httpClient.Get(ctx, treeInventoryPath(domainID), nil)
	if err != nil {
		return nil, fmt.Errorf("getting tree inventory: %w", err)
	}

	var inventory fastfuels.TreeInventory

	err = json.Unmarshal(resp.Body, &inventory)
	if err != nil {
		return nil, fmt.Errorf("parsing tree inventory: %w", err)
	}

	inventory.DomainID = domainID

	return &inventory, nil
}

// Delete implements fastfuels.TreeInventoryClient.Delete.
func (c *TreeInventoryClient) Delete(ctx context.Context, domainID string) error {
	if domainID == "" {
		return fastfuels.ErrDomainIDRequired
	}

	_, err := c.httpClient.Delete(ctx, treeInventoryPath(domainID))
	if err != nil {
		return fmt.Errorf("deleting tree inventory: %w", err)
	}

	return nil
}

// WaitUntilCompleted implements fastfuels.TreeInventoryClient.WaitUntilCompleted.
func (c *TreeInventoryClient) WaitUntilCompleted(ctx context.Context, domainID string, opts *fastfuels.WaitOptions) (*fastfuels.TreeInventory, error) {
	return fastfuels.Wait(ctx, func(ctx context.Context) (*fastfuels.TreeInventory, error) {
		return c.Get(ctx, domainID)
	}, opts)
}

// CreateExport implements fastfuels.TreeInventoryClient.CreateExport.
func (c *TreeInventoryClient) CreateExport(ctx context.Context, domainID, format string) (*fastfuels.Export, error) {
	return createExport(ctx, c.httpClient, treeInventoryPath(domainID), domainID, format)
}

// GetExport implements fastfuels.TreeInventoryClient.GetExport.
func (c *TreeInventoryClient) GetExport(ctx context.Context, domainID, format string) (*fastfuels.Export, error) {
	return getExport(ctx, c.httpClient, treeInventoryPath(domainID), domainID, format)
}
