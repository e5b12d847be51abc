package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fastfuels-io/fastfuels-client/internal/http"
	"github.com/fastfuels-io/fastfuels-client/pkg/fastfuels"
)

// GridsClient implements fastfuels.GridsClient.
type GridsClient struct {
	httpClient *http.Client
	tree       *TreeGridClient
	surface    *SurfaceGridClient
	topography *TopographyGridClient
	feature    *FeatureGridClient
}

// NewGridsClient creates a new grids client.
func NewGridsClient(httpClient *http.Client) *GridsClient {
	return &GridsClient{
		httpClient: httpClient,
		tree:       NewTreeGridClient(httpClient),
		surface:    NewSurfaceGridClient(httpClient),
		topography: NewTopographyGridClient(httpClient),
		feature:    NewFeatureGridClient(httpClient),
	}
}

func gridsPath(domainID string) string {
	return domainPath(domainID) + "/grids"
}

// Get implements fastfuels.GridsClient.Get.
func (c *GridsClient) Get(ctx context.Context, domainID string) (*fastfuels.Grids, error) {
	if domainID == "" {
		return nil, fastfuels.ErrDomainIDRequired
	}

	resp, err := c.httpClient.Get(ctx, gridsPath(domainID), nil)
	if err != nil {
		return nil, fmt.Errorf("getting grids: %w", err)
	}

	var grids fastfuels.Grids

	err = json.Unmarshal(resp.Body, &grids)
	if err != nil {
		return nil, fmt.Errorf("parsing grids: %w", err)
	}

	grids.DomainID = domainID

	return &grids, nil
}

// Tree implements fastfuels.GridsClient.Tree.
func (c *GridsClient) Tree() fastfuels.TreeGridClient {
	return c.tree
}

// Surface implements fastfuels.GridsClient.Surface.
func (c *GridsClient) Surface() fastfuels.SurfaceGridClient {
	return c.surface
}

// Topography implements fastfuels.GridsClient.Topography.
func (c *GridsClient) Topography() fastfuels.TopographyGridClient {
	return c.topography
}

// Feature implements fastfuels.GridsClient.Feature.
func (c *GridsClient) Feature() fastfuels.FeatureGridClient {
	return c.feature
}

// CreateExport implements fastfuels.GridsClient.CreateExport. The export
// bundles every grid in the domain into a single artifact.
func (c *GridsClient) CreateExport(ctx context.Context, domainID, format string) (*fastfuels.Export, error) {
	return createExport(ctx, c.httpClient, gridsPath(domainID), domainID, format)
}

// GetExport implements fastfuels.GridsClient.GetExport.
func (c *GridsClient) GetExport(ctx context.Context, domainID, format string) (*fastfuels.Export, error) {
	return getExport(ctx, c.httpClient, gridsPath(domainID), domainID, format)
}

// getGridAttributes fetches attribute metadata for the grid at gridPath.
func getGridAttributes(ctx context.Context, httpClient *http.Client, gridPath string) (*fastfuels.GridAttributeMetadata, error) {
	resp, err := httpClient.Get(ctx, gridPath+"/attributes", nil)
	if err != nil {
		return nil, fmt.Errorf("getting grid attributes: %w", err)
	}

	var metadata fastfuels.GridAttributeMetadata

	err = json.Unmarshal(resp.Body, &metadata)
	if err != nil {
		return nil, fmt.Errorf("parsing grid attributes: %w", err)
	}

	return &metadata, nil
}

// SurfaceGridClient implements fastfuels.SurfaceGridClient.
type SurfaceGridClient struct {
	httpClient *http.Client
}

// NewSurfaceGridClient creates a new surface grid client.
func NewSurfaceGridClient(httpClient *http.Client) *SurfaceGridClient {
	return &SurfaceGridClient{httpClient: httpClient}
}

func surfaceGridPath(domainID string) string {
	return gridsPath(domainID) + "/surface"
}

// Create implements fastfuels.SurfaceGridClient.Create.
func (c *SurfaceGridClient) Create(ctx context.Context, domainID string, request *fastfuels.CreateSurfaceGridRequest) (*fastfuels.SurfaceGrid, error) {
	if domainID == "" {
		return nil, fastfuels.ErrDomainIDRequired
	}

	resp, err := c.httpClient.Post(ctx, surfaceGridPath(domainID), request)
	if err != nil {
		return nil, fmt.Errorf("creating surface grid: %w", err)
	}

	var grid fastfuels.SurfaceGrid

	err = json.Unmarshal(resp.Body, &grid)
	if err != nil {
		return nil, fmt.Errorf("parsing surface grid: %w", err)
	}

	grid.DomainID = domainID

	return &grid, nil
}

// Get implements fastfuels.SurfaceGridClient.Get.
func (c *SurfaceGridClient) Get(ctx context.Context, domainID string) (*fastfuels.SurfaceGrid, error) {
	if domainID == "" {
		return nil, fastfuels.ErrDomainIDRequired
	}

	resp, err := c.httpClient.Get(ctx, surfaceGridPath(domainID), nil)
	if err != nil {
		return nil, fmt.Errorf("getting surface grid: %w", err)
	}

	var grid fastfuels.SurfaceGrid

	err = json.Unmarshal(resp.Body, &grid)
	if err != nil {
		return nil, fmt.Errorf("parsing surface grid: %w", err)
	}

	grid.DomainID = domainID

	return &grid, nil
}

// Delete implements fastfuels.SurfaceGridClient.Delete.
func (c *SurfaceGridClient) Delete(ctx context.Context, domainID string) error {
	if domainID == "" {
		return fastfuels.ErrDomainIDRequired
	}

	_, err := c.httpClient.Delete(ctx, surfaceGridPath(domainID))
	if err != nil {
		return fmt.Errorf("deleting surface grid: %w", err)
	}

	return nil
}

// WaitUntilCompleted implements fastfuels.SurfaceGridClient.WaitUntilCompleted.
func (c *SurfaceGridClient) WaitUntilCompleted(ctx context.Context, domainID string, opts *fastfuels.WaitOptions) (*fastfuels.SurfaceGrid, error) {
	return fastfuels.Wait(ctx, func(ctx context.Context) (*fastfuels.SurfaceGrid, error) {
		return c.Get(ctx, domainID)
	}, opts)
}

// Attributes implements fastfuels.SurfaceGridClient.Attributes.
func (c *SurfaceGridClient) Attributes(ctx context.Context, domainID string) (*fastfuels.GridAttributeMetadata, error) {
	if domainID == "" {
		return nil, fastfuels.ErrDomainIDRequired
	}

	return getGridAttributes(ctx, c.httpClient, surfaceGridPath(domainID))
}

// CreateExport implements fastfuels.SurfaceGridClient.CreateExport.
func (c *SurfaceGridClient) CreateExport(ctx context.Context, domainID, format string) (*fastfuels.Export, error) {
	return createExport(ctx, c.httpClient, surfaceGridPath(domainID), domainID, format)
}

// GetExport implements fastfuels.SurfaceGridClient.GetExport.
func (c *SurfaceGridClient) GetExport(ctx context.Context, domainID, format string) (*fastfuels.Export, error) {
	return getExport(ctx, c.httpClient, surfaceGridPath(domainID), domainID, format)
}

// TopographyGridClient implements fastfuels.TopographyGridClient.
type TopographyGridClient struct {
	httpClient *http.Client
}

// NewTopographyGridClient creates a new topography grid client.
func NewTopographyGridClient(httpClient *http.Client) *TopographyGridClient {
	return &TopographyGridClient{httpClient: httpClient}
}

func topographyGridPath(domainID string) string {
	return gridsPath(domainID) + "/topography"
}

// Create implements fastfuels.TopographyGridClient.Create.
func (c *TopographyGridClient) Create(ctx context.Context, domainID string, request *fastfuels.CreateTopographyGridRequest) (*fastfuels.TopographyGrid, error) {
	if domainID == "" {
		return nil, fastfuels.ErrDomainIDRequired
	}

	resp, err := c.httpClient.Post(ctx, topographyGridPath(domainID), request)
	if err != nil {
		return nil, fmt.Errorf("creating topography grid: %w", err)
	}

	var grid fastfuels.TopographyGrid

	err = json.Unmarshal(resp.Body, &grid)
	if err != nil {
		return nil, fmt.Errorf("parsing topography grid: %w", err)
	}

	grid.DomainID = domainID

	return &grid, nil
}

// Get implements fastfuels.TopographyGridClient.Get.
func (c *TopographyGridClient) Get(ctx context.Context, domainID string) (*fastfuels.TopographyGrid, error) {
	if domainID == "" {
		return nil, fastfuels.ErrDomainIDRequired
	}

	resp, err := c.httpClient.Get(ctx, topographyGridPath(domainID), nil)
	if err != nil {
		return nil, fmt.Errorf("getting topography grid: %w", err)
	}

	var grid fastfuels.TopographyGrid

	err = json.Unmarshal(resp.Body, &grid)
	if err != nil {
		return nil, fmt.Errorf("parsing topography grid: %w", err)
	}

	grid.DomainID = domainID

	return &grid, nil
}

// Delete implements fastfuels.TopographyGridClient.Delete.
func (c *TopographyGridClient) Delete(ctx context.Context, domainID string) error {
	if domainID == "" {
		return fastfuels.ErrDomainIDRequired
	}

	_, err := c.httpClient.Delete(ctx, topographyGridPath(domainID))
	if err != nil {
		return fmt.Errorf("deleting topography grid: %w", err)
	}

	return nil
}

// WaitUntilCompleted implements fastfuels.TopographyGridClient.WaitUntilCompleted.
func (c *TopographyGridClient) WaitUntilCompleted(ctx context.Context, domainID string, opts *fastfuels.WaitOptions) (*fastfuels.TopographyGrid, error) {
	return fastfuels.Wait(ctx, func(ctx context.Context) (*fastfuels.TopographyGrid, error) {
		return c.Get(ctx, domainID)
	}, opts)
}

// Attributes implements fastfuels.TopographyGridClient.Attributes.
func (c *TopographyGridClient) Attributes(ctx context.Context, domainID string) (*fastfuels.GridAttributeMetadata, error) {
	if domainID == "" {
		return nil, fastfuels.ErrDomainIDRequired
	}

	return getGridAttributes(ctx, c.httpClient, topographyGridPath(domainID))
}

// CreateExport implements fastfuels.TopographyGridClient.CreateExport.
func (c *TopographyGridClient) CreateExport(ctx context.Context, domainID, format string) (*fastfuels.Export, error) {
	return createExport(ctx, c.httpClient, topographyGridPath(domainID), domainID, format)
}

// GetExport implements fastfuels.TopographyGridClient.GetExport.
func (c *TopographyGridClient) GetExport(ctx context.Context, domainID, format string) (*fastfuels.Export, error) {
	return getExport(ctx, c.httpClient, topographyGridPath(domainID), domainID, format)
}

// TreeGridClient implements fastfuels.TreeGridClient.
type TreeGridClient struct {
	httpClient *http.Client
}

// NewTreeGridClient creates a new tree grid client.
func NewTreeGridClient(httpClient *http.Client) *TreeGridClient {
	return &TreeGridClient{httpClient: httpClient}
}

func treeGridPath(domainID string) string {
	return gridsPath(domainID) + "/tree"
}

// Create implements fastfuels.TreeGridClient.Create.
func (c *TreeGridClient) Create(ctx context.Context, domainID string, request *fastfuels.CreateTreeGridRequest) (*fastfuels.TreeGrid, error) {
	if domainID == "" {
		return nil, fastfuels.ErrDomainIDRequired
	}

	resp, err := c.httpClient.Post(ctx, treeGridPath(domainID), request)
	if err != nil {
		return nil, fmt.Errorf("creating tree grid: %w", err)
	}

	var grid fastfuels.TreeGrid

	err = json.Unmarshal(resp.Body, &grid)
	if err != nil {
		return nil, fmt.Errorf("parsing tree grid: %w", err)
	}

	grid.DomainID = domainID

	return &grid, nil
}

// Get implements fastfuels.TreeGridClient.Get.
func (c *TreeGridClient) Get(ctx context.Context, domainID string) (*fastfuels.TreeGrid, error) {
	if domainID == "" {
		return nil, fastfuels.ErrDomainIDRequired
	}

	resp, err := c.httpClient.Get(ctx, treeGridPath(domainID), nil)
	if err != nil {
		return nil, fmt.Errorf("getting tree grid: %w", err)
	}

	var grid fastfuels.TreeGrid

	err = json.Unmarshal(resp.Body, &grid)
	if err != nil {
		return nil, fmt.Errorf("parsing tree grid: %w", err)
	}

	grid.DomainID = domainID

	return &grid, nil
}

// Delete implements fastfuels.TreeGridClient.Delete.
func (c *TreeGridClient) Delete(ctx context.Context, domainID string) error {
	if domainID == "" {
		return fastfuels.ErrDomainIDRequired
	}

	_, err := c.httpClient.Delete(ctx, treeGridPath(domainID))
	if err != nil {
		return fmt.Errorf("deleting tree grid: %w", err)
	}

	return nil
}

// WaitUntilCompleted implements fastfuels.TreeGridClient.WaitUntilCompleted.
func (c *TreeGridClient) WaitUntilCompleted(ctx context.Context, domainID string, opts *fastfuels.WaitOptions) (*fastfuels.TreeGrid, error) {
	return fastfuels.Wait(ctx, func(ctx context.Context) (*fastfuels.TreeGrid, error) {
		return c.Get(ctx, domainID)
	}, opts)
}

// Attributes implements fastfuels.TreeGridClient.Attributes.
func (c *TreeGridClient) Attributes(ctx context.Context, domainID string) (*fastfuels.GridAttributeMetadata, error) {
	if domainID == "" {
		return nil, fastfuels.ErrDomainIDRequired
	}

	return getGridAttributes(ctx, c.httpClient, treeGridPath(domainID))
}

// CreateExport implements fastfuels.TreeGridClient.CreateExport.
func (c *TreeGridClient) CreateExport(ctx context.Context, domainID, format string) (*fastfuels.Export, error) {
	return createExport(ctx, c.httpClient, treeGridPath(domainID), domainID, format)
}

// GetExport implements fastfuels.TreeGridClient.GetExport.
func (c *TreeGridClient) GetExport(ctx context.Context, domainID, format string) (*fastfuels.Export, error) {
	return getExport(ctx, c.httpClient, treeGridPath(domainID), domainID, format)
}

// FeatureGridClient implements fastfuels.FeatureGridClient.
type FeatureGridClient struct {
	httpClient *http.Client
}

// NewFeatureGridClient creates a new feature grid client.
func NewFeatureGridClient(httpClient *http.Client) *FeatureGridClient {
	return &FeatureGridClient{httpClient: httpClient}
}

func featureGridPath(domainID string) string {
	return gridsPath(domainID) + "/feature"
}

// Create implements fastfuels.FeatureGridClient.Create.
func (c *FeatureGridClient) Create(ctx context.Context, domainID string, request *fastfuels.CreateFeatureGridRequest) (*fastfuels.FeatureGrid, error) {
	if domainID == "" {
		return nil, fastfuels.ErrDomainIDRequired
	}

	resp, err := c.httpClient.Post(ctx, featureGridPath(domainID), request)
	if err != nil {
		return nil, fmt.Errorf("creating feature grid: %w", err)
	}

	var grid fastfuels.FeatureGrid

	err = json.Unmarshal(resp.Body, &grid)
	if err != nil {
		return nil, fmt.Errorf("parsing feature grid: %w", err)
	}

	grid.DomainID = domainID

	return &grid, nil
}

// Get implements fastfuels.FeatureGridClient.Get.
func (c *FeatureGridClient) Get(ctx context.Context, domainID string) (*fastfuels.FeatureGrid, error) {
	if domainID == "" {
		return nil, fastfuels.ErrDomainIDRequired
	}

	resp, err := c.httpClient.Get(ctx, featureGridPath(domainID), nil)
	if err != nil {
		return nil, fmt.Errorf("getting feature grid: %w", err)
	}

	var grid fastfuels.FeatureGrid

	err = json.Unmarshal(resp.Body, &grid)
	if err != nil {
		return nil, fmt.Errorf("parsing feature grid: %w", err)
	}

	grid.DomainID = domainID

	return &grid, nil
}

// Delete implements fastfuels.FeatureGridClient.Delete.
func (c *FeatureGridClient) Delete(ctx context.Context, domainID string) error {
	if domainID == "" {
		return fastfuels.ErrDomainIDRequired
	}

	_, err := c.httpClient.Delete(ctx, featureGridPath(domainID))
	if err != nil {
		return fmt.Errorf("deleting feature grid: %w", err)
	}

	return nil
}

// WaitUntilCompleted implements fastfuels.FeatureGridClient.WaitUntilCompleted.
func (c *FeatureGridClient) WaitUntilCompleted(ctx context.Context, domainID string, opts *fastfuels.WaitOptions) (*fastfuels.FeatureGrid, error) {
	return fastfuels.Wait(ctx, func(ctx context.Context) (*fastfuels.FeatureGrid, error) {
		return c.Get(ctx, domainID)
	}, opts)
}
