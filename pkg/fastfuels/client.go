package fastfuels

import (
	"context"
	"io"
	"time"
)

// DomainsClient manages spatial domains.
type DomainsClient interface {
	Create(ctx context.Context, request *CreateDomainRequest) (*Domain, error)
	Get(ctx context.Context, domainID string) (*Domain, error)
	List(ctx context.Context, params *ListDomainsParams) (*ListDomainsResponse, error)
	Update(ctx context.Context, domainID string, request *UpdateDomainRequest) (*Domain, error)
	Delete(ctx context.Context, domainID string) error
}

// TreeInventoryClient manages a domain's tree inventory.
type TreeInventoryClient interface {
	Create(ctx context.Context, domainID string, request *CreateTreeInventoryRequest) (*TreeInventory, error)
	// CreateFromTreeMap creates a tree inventory sourced from the TreeMap
	// product, optionally masking the given features.
	CreateFromTreeMap(ctx context.Context, domainID string, featureMasks []string) (*TreeInventory, error)
	Get(ctx context.Context, domainID string) (*TreeInventory, error)
	Delete(ctx context.Context, domainID string) error
	WaitUntilCompleted(ctx context.Context, domainID string, opts *WaitOptions) (*TreeInventory, error)
	CreateExport(ctx context.Context, domainID, format string) (*Export, error)
	GetExport(ctx context.Context, domainID, format string) (*Export, error)
}

// InventoriesClient manages a domain's inventory resources.
type InventoriesClient interface {
	Get(ctx context.Context, domainID string) (*Inventories, error)
	Tree() TreeInventoryClient
}

// RoadFeatureClient manages a domain's road feature.
type RoadFeatureClient interface {
	Create(ctx context.Context, domainID string, request *CreateFeatureRequest) (*RoadFeature, error)
	CreateFromOSM(ctx context.Context, domainID string) (*RoadFeature, error)
	Get(ctx context.Context, domainID string) (*RoadFeature, error)
	Delete(ctx context.Context, domainID string) error
	WaitUntilCompleted(ctx context.Context, domainID string, opts *WaitOptions) (*RoadFeature, error)
}

// WaterFeatureClient manages a domain's water feature.
type WaterFeatureClient interface {
	Create(ctx context.Context, domainID string, request *CreateFeatureRequest) (*WaterFeature, error)
	CreateFromOSM(ctx context.Context, domainID string) (*WaterFeature, error)
	Get(ctx context.Context, domainID string) (*WaterFeature, error)
	Delete(ctx context.Context, domainID string) error
	WaitUntilCompleted(ctx context.Context, domainID string, opts *WaitOptions) (*WaterFeature, error)
}

// FeaturesClient manages a domain's geographic feature resources.
type FeaturesClient interface {
	Get(ctx context.Context, domainID string) (*Features, error)
	Road() RoadFeatureClient
	Water() WaterFeatureClient
}

// SurfaceGridClient manages a domain's surface grid.
type SurfaceGridClient interface {
	Create(ctx context.Context, domainID string, request *CreateSurfaceGridRequest) (*SurfaceGrid, error)
	Get(ctx context.Context, domainID string) (*SurfaceGrid, error)
	Delete(ctx context.Context, domainID string) error
	WaitUntilCompleted(ctx context.Context, domainID string, opts *WaitOptions) (*SurfaceGrid, error)
	Attributes(ctx context.Context, domainID string) (*GridAttributeMetadata, error)
	CreateExport(ctx context.Context, domainID, format string) (*Export, error)
	GetExport(ctx context.Context, domainID, format string) (*Export, error)
}

// TopographyGridClient manages a domain's topography grid.
type TopographyGridClient interface {
	Create(ctx context.Context, domainID string, request *CreateTopographyGridRequest) (*TopographyGrid, error)
	Get(ctx context.Context, domainID string) (*TopographyGrid, error)
	Delete(ctx context.Context, domainID string) error
	WaitUntilCompleted(ctx context.Context, domainID string, opts *WaitOptions) (*TopographyGrid, error)
	Attributes(ctx context.Context, domainID string) (*GridAttributeMetadata, error)
	CreateExport(ctx context.Context, domainID, format string) (*Export, error)
	GetExport(ctx context.Context, domainID, format string) (*Export, error)
}

// TreeGridClient manages a domain's tree grid.
type TreeGridClient interface {
	Create(ctx context.Context, domainID string, request *CreateTreeGridRequest) (*TreeGrid, error)
	Get(ctx context.Context, domainID string) (*TreeGrid, error)
	Delete(ctx context.Context, domainID string) error
	WaitUntilCompleted(ctx context.Context, domainID string, opts *WaitOptions) (*TreeGrid, error)
	Attributes(ctx context.Context, domainID string) (*GridAttributeMetadata, error)
	CreateExport(ctx context.Context, domainID, format string) (*Export, error)
	GetExport(ctx context.Context, domainID, format string) (*Export, error)
}

// FeatureGridClient manages a domain's feature grid.
type FeatureGridClient interface {
	Create(ctx context.Context, domainID string, request *CreateFeatureGridRequest) (*FeatureGrid, error)
	Get(ctx context.Context, domainID string) (*FeatureGrid, error)
	Delete(ctx context.Context, domainID string) error
	WaitUntilCompleted(ctx context.Context, domainID string, opts *WaitOptions) (*FeatureGrid, error)
}

// GridsClient manages a domain's gridded resources. CreateExport and
// GetExport operate on the combined grid bundle, which is what fire behavior
// models consume.
type GridsClient interface {
	Get(ctx context.Context, domainID string) (*Grids, error)
	Tree() TreeGridClient
	Surface() SurfaceGridClient
	Topography() TopographyGridClient
	Feature() FeatureGridClient
	CreateExport(ctx context.Context, domainID, format string) (*Export, error)
	GetExport(ctx context.Context, domainID, format string) (*Export, error)
}

// ExportsClient tracks and downloads export artifacts.
type ExportsClient interface {
	// Get refreshes an export snapshot.
	Get(ctx context.Context, export *Export) (*Export, error)
	WaitUntilCompleted(ctx context.Context, export *Export, opts *WaitOptions) (*Export, error)
	// Download streams a completed export's artifact to w.
	Download(ctx context.Context, export *Export, w io.Writer) (int64, error)
	// DownloadToFile writes a completed export's artifact to path. When
	// path is an existing directory, the filename is derived from the
	// export's target resource and format.
	DownloadToFile(ctx context.Context, export *Export, path string) (string, error)
}

// Client is the FastFuels API client.
type Client interface {
	Domains() DomainsClient
	Inventories() InventoriesClient
	Features() FeaturesClient
	Grids() GridsClient
	Exports() ExportsClient
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a fastfuels.Client.
//
// # Authentication
//
// The API authenticates with a static key sent in the api-key header. If
// APIKey is empty, the client falls back to the FASTFUELS_API_KEY environment
// variable.
//
// # Timeouts and retries
//
// Per-request timeouts should generally be controlled via the context passed
// to client methods. Transient failures (>=500, 429, connection errors) are
// retried with backoff, tunable via RetryMax/RetryWaitMin/RetryWaitMax.
type Config struct {
	// APIEndpoint: base URL for the FastFuels API. The constructor
	// normalizes this value by trimming a trailing slash and adding
	// "https://" if no scheme is present. Defaults to the production
	// endpoint when empty.
	APIEndpoint string

	// APIKey authenticates requests. Falls back to FASTFUELS_API_KEY.
	APIKey string

	// HTTPTimeout: optional default HTTP timeout where supported.
	HTTPTimeout time.Duration

	// RetryMax: maximum number of retries for transient failures. If 0, a
	// sensible default is used by the client.
	RetryMax int

	// RetryWaitMin: minimum backoff between retries.
	RetryWaitMin time.Duration

	// RetryWaitMax: maximum backoff between retries.
	RetryWaitMax time.Duration

	// Debug: enables verbose HTTP request/response logging when a Logger
	// is provided.
	Debug bool

	// Logger: optional structured logger used by the HTTP layer.
	Logger Logger

	// UserAgent: overrides the default User-Agent header.
	UserAgent string

	// Cache: optional snapshot cache configuration. When set, domain
	// snapshots are served from cache within their TTL and invalidated on
	// update and delete.
	Cache *CacheConfig
}
