package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600

	// ExportFilePerm is the permission for downloaded export files.
	ExportFilePerm = 0644
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// DownloadHTTPTimeout is used for export downloads, which can be large.
	DownloadHTTPTimeout = 5 * time.Minute
)

// Retry limits.
const (
	// DefaultRetryMax is the default maximum number of retries.
	DefaultRetryMax = 5

	// DefaultRetryWaitMin is the minimum wait time between retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait time between retries.
	DefaultRetryWaitMax = 10 * time.Second
)

// Polling intervals and timeouts.
const (
	// DefaultPollInterval is the default interval between status checks.
	DefaultPollInterval = 5 * time.Second

	// DefaultWaitTimeout is the default deadline for waiting on a resource
	// to reach a terminal status.
	DefaultWaitTimeout = 10 * time.Minute

	// QuickPollInterval is used for fast polling in tests and examples.
	QuickPollInterval = 10 * time.Millisecond
)

// Pagination limits.
const (
	// DefaultPage is the first page of a paginated listing.
	DefaultPage = 0

	// DefaultPageSize is the default number of items per page.
	DefaultPageSize = 100

	// MaxPageSize is the largest page size the API accepts.
	MaxPageSize = 1000
)

// Domain defaults.
const (
	// DefaultHorizontalResolution is the default cell size in meters.
	DefaultHorizontalResolution = 2.0

	// DefaultVerticalResolution is the default layer height in meters.
	DefaultVerticalResolution = 1.0
)

// Cache sizes and lifetimes.
const (
	// DefaultCacheSize is the default cache size limit.
	DefaultCacheSize = 1000

	// DefaultCacheTTL is the default cache time-to-live.
	DefaultCacheTTL = 5 * time.Minute

	// DomainCacheTTL is the TTL for cached domain snapshots. Domains change
	// rarely after creation, so this can be generous.
	DomainCacheTTL = 2 * time.Minute

	// MaxCacheValueSize is the maximum size for cached values (1MB).
	MaxCacheValueSize = 1024 * 1024
)

// Output format constants.
const (
	// FormatTable for table output format.
	FormatTable = "table"

	// FormatJSON for JSON output format.
	FormatJSON = "json"

	// FormatYAML for YAML output format.
	FormatYAML = "yaml"
)

// Export format constants.
const (
	// ExportFormatZarr for compressed array exports.
	ExportFormatZarr = "zarr"

	// ExportFormatQUICFire for QUIC-Fire input file exports.
	ExportFormatQUICFire = "QUIC-Fire"

	// ExportFormatCSV for tabular exports.
	ExportFormatCSV = "csv"

	// ExportFormatParquet for columnar exports.
	ExportFormatParquet = "parquet"

	// ExportFormatGeoJSON for geographic exports.
	ExportFormatGeoJSON = "geojson"
)

// Display constants.
const (
	// NotAvailable is used when information is not available.
	NotAvailable = "N/A"

	// MaskedSecret is used to hide sensitive information.
	MaskedSecret = "***"

	// JSONIndentSize is the number of spaces for JSON indentation.
	JSONIndentSize = 2
)

// Environment variables.
const (
	// APIKeyEnvVar holds the API key when no key is configured explicitly.
	APIKeyEnvVar = "FASTFUELS_API_KEY"

	// APIEndpointEnvVar overrides the default API endpoint.
	APIEndpointEnvVar = "FASTFUELS_API_URL"
)

// DefaultAPIEndpoint is the production API endpoint.
const DefaultAPIEndpoint = "https://api.fastfuels.silvxlabs.com"
