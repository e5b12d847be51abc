package fastfuels

import (
	"strings"
	"time"
)

// Resource carries the metadata common to every API resource.
type Resource struct {
	CreatedOn  *time.Time `json:"createdOn,omitempty"  yaml:"createdOn,omitempty"`
	ModifiedOn *time.Time `json:"modifiedOn,omitempty" yaml:"modifiedOn,omitempty"`
	Checksum   string     `json:"checksum,omitempty"   yaml:"checksum,omitempty"`
}

// JobStatus carries the polling status common to asynchronously processed
// resources. Embedding it satisfies the Waitable interface.
type JobStatus struct {
	Status       Status `json:"status,omitempty"       yaml:"status,omitempty"`
	StatusDetail string `json:"statusDetail,omitempty" yaml:"statusDetail,omitempty"`
}

// PollStatus implements Waitable.
func (s JobStatus) PollStatus() Status {
	return s.Status
}

// FailureDetail implements Waitable.
func (s JobStatus) FailureDetail() string {
	return s.StatusDetail
}

// GeoJSON is a raw GeoJSON feature or feature collection. The API validates
// geometry server-side, so the SDK passes it through untyped.
type GeoJSON map[string]interface{}

// Domain represents a spatial domain: the geographic region all other
// resources are built within.
type Domain struct {
	Resource

	ID                   string                 `json:"id"                             yaml:"id"`
	Name                 string                 `json:"name,omitempty"                 yaml:"name,omitempty"`
	Description          string                 `json:"description,omitempty"          yaml:"description,omitempty"`
	Type                 string                 `json:"type,omitempty"                 yaml:"type,omitempty"`
	Geometry             GeoJSON                `json:"geometry,omitempty"             yaml:"geometry,omitempty"`
	Properties           map[string]interface{} `json:"properties,omitempty"           yaml:"properties,omitempty"`
	HorizontalResolution float64                `json:"horizontalResolution,omitempty" yaml:"horizontalResolution,omitempty"`
	VerticalResolution   float64                `json:"verticalResolution,omitempty"   yaml:"verticalResolution,omitempty"`
	CRS                  map[string]interface{} `json:"crs,omitempty"                  yaml:"crs,omitempty"`
	Tags                 []string               `json:"tags,omitempty"                 yaml:"tags,omitempty"`
}

// CreateDomainRequest creates a new domain from a GeoJSON feature.
type CreateDomainRequest struct {
	Name                 string                 `json:"name,omitempty"                 yaml:"name,omitempty"`
	Description          string                 `json:"description,omitempty"          yaml:"description,omitempty"`
	Type                 string                 `json:"type"                           yaml:"type"`
	Geometry             GeoJSON                `json:"geometry,omitempty"             yaml:"geometry,omitempty"`
	Properties           map[string]interface{} `json:"properties,omitempty"           yaml:"properties,omitempty"`
	Features             []interface{}          `json:"features,omitempty"             yaml:"features,omitempty"`
	HorizontalResolution float64                `json:"horizontalResolution,omitempty" yaml:"horizontalResolution,omitempty"`
	VerticalResolution   float64                `json:"verticalResolution,omitempty"   yaml:"verticalResolution,omitempty"`
}

// UpdateDomainRequest updates a domain's mutable properties. Resolution and
// geometry are immutable; create a new domain to change them.
type UpdateDomainRequest struct {
	Name        *string  `json:"name,omitempty"        yaml:"name,omitempty"`
	Description *string  `json:"description,omitempty" yaml:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"        yaml:"tags,omitempty"`
}

// Domain sort fields accepted by ListDomainsParams.SortBy.
const (
	DomainSortCreatedOn  = "createdOn"
	DomainSortModifiedOn = "modifiedOn"
	DomainSortName       = "name"
)

// Sort orders accepted by ListDomainsParams.SortOrder.
const (
	SortOrderAscending  = "ascending"
	SortOrderDescending = "descending"
)

// ListDomainsParams are the pagination parameters for listing domains.
type ListDomainsParams struct {
	// Page is the zero-indexed page to retrieve.
	Page int

	// Size is the number of domains per page, between 1 and 1000.
	Size int

	// SortBy is one of the DomainSort constants.
	SortBy string

	// SortOrder is ascending or descending.
	SortOrder string
}

// ListDomainsResponse is a single page of domains.
type ListDomainsResponse struct {
	Domains     []Domain `json:"domains"     yaml:"domains"`
	CurrentPage int      `json:"currentPage" yaml:"currentPage"`
	PageSize    int      `json:"pageSize"    yaml:"pageSize"`
	TotalItems  int      `json:"totalItems"  yaml:"totalItems"`
}

// TotalPages returns the number of pages in the full listing.
func (r *ListDomainsResponse) TotalPages() int {
	if r.PageSize <= 0 {
		return 0
	}

	return (r.TotalItems + r.PageSize - 1) / r.PageSize
}

// Inventories is the container for the inventory resources of a domain.
type Inventories struct {
	DomainID string         `json:"domainId,omitempty" yaml:"domainId,omitempty"`
	Tree     *TreeInventory `json:"tree,omitempty"     yaml:"tree,omitempty"`
}

// TreeInventory represents a domain's tree inventory: a point collection of
// individual trees with their species, size, and placement.
type TreeInventory struct {
	Resource
	JobStatus

	DomainID      string                      `json:"domainId,omitempty"      yaml:"domainId,omitempty"`
	Sources       []string                    `json:"sources,omitempty"       yaml:"sources,omitempty"`
	TreeMap       *TreeMapSource              `json:"treeMap,omitempty"       yaml:"treeMap,omitempty"`
	Modifications []TreeInventoryModification `json:"modifications,omitempty" yaml:"modifications,omitempty"`
	Treatments    []map[string]interface{}    `json:"treatments,omitempty"    yaml:"treatments,omitempty"`
	FeatureMasks  []string                    `json:"featureMasks,omitempty"  yaml:"featureMasks,omitempty"`
}

// TreeMapSource configures the TreeMap product as a tree inventory source.
type TreeMapSource struct {
	Version                      string                 `json:"version,omitempty"                      yaml:"version,omitempty"`
	Seed                         *int                   `json:"seed,omitempty"                         yaml:"seed,omitempty"`
	CanopyHeightMapConfiguration *CanopyHeightMapSource `json:"canopyHeightMapConfiguration,omitempty" yaml:"canopyHeightMapConfiguration,omitempty"`
}

// CanopyHeightMapSource configures the canopy height map used to condition
// TreeMap outputs.
type CanopyHeightMapSource struct {
	Source string `json:"source" yaml:"source"`
}

// TreeInventoryModification pairs conditions with actions applied to trees
// matching those conditions.
type TreeInventoryModification struct {
	Conditions []ModificationCondition `json:"conditions,omitempty" yaml:"conditions,omitempty"`
	Actions    []ModificationAction    `json:"actions,omitempty"    yaml:"actions,omitempty"`
}

// ModificationCondition selects resource elements by attribute comparison.
type ModificationCondition struct {
	Attribute string      `json:"attribute" yaml:"attribute"`
	Operator  string      `json:"operator"  yaml:"operator"`
	Value     interface{} `json:"value"     yaml:"value"`
}

// ModificationAction changes an attribute on the selected elements.
type ModificationAction struct {
	Attribute string      `json:"attribute" yaml:"attribute"`
	Modifier  string      `json:"modifier"  yaml:"modifier"`
	Value     interface{} `json:"value"     yaml:"value"`
}

// ProportionalThinning removes trees uniformly until a target basal area
// remains.
type ProportionalThinning struct {
	Method       string  `json:"method"       yaml:"method"`
	TargetMetric string  `json:"targetMetric" yaml:"targetMetric"`
	TargetValue  float64 `json:"targetValue"  yaml:"targetValue"`
	TargetUnits  string  `json:"targetUnits"  yaml:"targetUnits"`
}

// DirectionalThinning removes trees by size order until a target basal area
// remains.
type DirectionalThinning struct {
	Method       string  `json:"method"       yaml:"method"`
	Direction    string  `json:"direction"    yaml:"direction"`
	TargetMetric string  `json:"targetMetric" yaml:"targetMetric"`
	TargetValue  float64 `json:"targetValue"  yaml:"targetValue"`
	TargetUnits  string  `json:"targetUnits"  yaml:"targetUnits"`
}

// CreateTreeInventoryRequest creates a tree inventory for a domain.
type CreateTreeInventoryRequest struct {
	Sources       []string                    `json:"sources,omitempty"       yaml:"sources,omitempty"`
	TreeMap       *TreeMapSource              `json:"treeMap,omitempty"       yaml:"treeMap,omitempty"`
	Modifications []TreeInventoryModification `json:"modifications,omitempty" yaml:"modifications,omitempty"`
	Treatments    []map[string]interface{}    `json:"treatments,omitempty"    yaml:"treatments,omitempty"`
	FeatureMasks  []string                    `json:"featureMasks,omitempty"  yaml:"featureMasks,omitempty"`
}

// Features is the container for the geographic feature resources of a domain.
type Features struct {
	DomainID string        `json:"domainId,omitempty" yaml:"domainId,omitempty"`
	Road     *RoadFeature  `json:"road,omitempty"     yaml:"road,omitempty"`
	Water    *WaterFeature `json:"water,omitempty"    yaml:"water,omitempty"`
}

// RoadFeature represents road geometry within a domain.
type RoadFeature struct {
	Resource
	JobStatus

	DomainID string   `json:"domainId,omitempty" yaml:"domainId,omitempty"`
	Sources  []string `json:"sources,omitempty"  yaml:"sources,omitempty"`
}

// WaterFeature represents water body geometry within a domain.
type WaterFeature struct {
	Resource
	JobStatus

	DomainID string   `json:"domainId,omitempty" yaml:"domainId,omitempty"`
	Sources  []string `json:"sources,omitempty"  yaml:"sources,omitempty"`
}

// FeatureSourceOSM selects OpenStreetMap as a feature source.
const FeatureSourceOSM = "OSM"

// CreateFeatureRequest creates a road or water feature for a domain.
type CreateFeatureRequest struct {
	Sources []string `json:"sources" yaml:"sources"`
}

// Grids is the container for the gridded resources of a domain.
type Grids struct {
	DomainID   string          `json:"domainId,omitempty"   yaml:"domainId,omitempty"`
	Tree       *TreeGrid       `json:"tree,omitempty"       yaml:"tree,omitempty"`
	Surface    *SurfaceGrid    `json:"surface,omitempty"    yaml:"surface,omitempty"`
	Topography *TopographyGrid `json:"topography,omitempty" yaml:"topography,omitempty"`
	Feature    *FeatureGrid    `json:"feature,omitempty"    yaml:"feature,omitempty"`
}

// Grid attribute names.
const (
	SurfaceGridAttributeFuelLoad     = "fuelLoad"
	SurfaceGridAttributeFuelDepth    = "fuelDepth"
	SurfaceGridAttributeFuelMoisture = "fuelMoisture"
	SurfaceGridAttributeSAVR         = "SAVR"
	SurfaceGridAttributeFBFM         = "FBFM"

	TopographyGridAttributeElevation = "elevation"
	TopographyGridAttributeSlope     = "slope"
	TopographyGridAttributeAspect    = "aspect"

	TreeGridAttributeBulkDensity  = "bulkDensity"
	TreeGridAttributeSPCD         = "SPCD"
	TreeGridAttributeFuelMoisture = "fuelMoisture"

	FeatureGridAttributeRoad  = "road"
	FeatureGridAttributeWater = "water"
)

// Grid attribute source names.
const (
	GridSourceUniform            = "uniform"
	GridSourceUniformBySizeClass = "uniformBySizeClass"
	GridSourceLandfire           = "LANDFIRE"
	GridSource3DEP               = "3DEP"
	GridSourceTreeInventory      = "TreeInventory"
)

// GridAttributeSource configures where a grid attribute's values come from.
// The valid members depend on the source: uniform sources use Value, LANDFIRE
// sources use Product/Version/InterpolationMethod, size-class sources use the
// per-class members.
type GridAttributeSource struct {
	Source              string      `json:"source"                        yaml:"source"`
	Value               interface{} `json:"value,omitempty"               yaml:"value,omitempty"`
	Product             string      `json:"product,omitempty"             yaml:"product,omitempty"`
	Version             string      `json:"version,omitempty"             yaml:"version,omitempty"`
	InterpolationMethod string      `json:"interpolationMethod,omitempty" yaml:"interpolationMethod,omitempty"`

	// Size-class members, used with the uniformBySizeClass source.
	OneHour        *float64 `json:"oneHour,omitempty"        yaml:"oneHour,omitempty"`
	TenHour        *float64 `json:"tenHour,omitempty"        yaml:"tenHour,omitempty"`
	HundredHour    *float64 `json:"hundredHour,omitempty"    yaml:"hundredHour,omitempty"`
	LiveHerbaceous *float64 `json:"liveHerbaceous,omitempty" yaml:"liveHerbaceous,omitempty"`
	LiveWoody      *float64 `json:"liveWoody,omitempty"      yaml:"liveWoody,omitempty"`
	Groups         []string `json:"groups,omitempty"         yaml:"groups,omitempty"`

	// LANDFIRE fuel load curing proportions.
	CuringLiveHerbaceous *float64 `json:"curingLiveHerbaceous,omitempty" yaml:"curingLiveHerbaceous,omitempty"`
	CuringLiveWoody      *float64 `json:"curingLiveWoody,omitempty"      yaml:"curingLiveWoody,omitempty"`

	FeatureMasks      []string `json:"featureMasks,omitempty"      yaml:"featureMasks,omitempty"`
	RemoveNonBurnable []string `json:"removeNonBurnable,omitempty" yaml:"removeNonBurnable,omitempty"`
}

// GridModification pairs conditions with actions applied to grid cells
// matching those conditions.
type GridModification struct {
	Conditions []ModificationCondition `json:"conditions,omitempty" yaml:"conditions,omitempty"`
	Actions    []ModificationAction    `json:"actions,omitempty"    yaml:"actions,omitempty"`
}

// SurfaceGrid represents a domain's surface fuel grid.
type SurfaceGrid struct {
	Resource
	JobStatus

	DomainID      string               `json:"domainId,omitempty"      yaml:"domainId,omitempty"`
	Attributes    []string             `json:"attributes,omitempty"    yaml:"attributes,omitempty"`
	FuelLoad      *GridAttributeSource `json:"fuelLoad,omitempty"      yaml:"fuelLoad,omitempty"`
	FuelDepth     *GridAttributeSource `json:"fuelDepth,omitempty"     yaml:"fuelDepth,omitempty"`
	FuelMoisture  *GridAttributeSource `json:"fuelMoisture,omitempty"  yaml:"fuelMoisture,omitempty"`
	SAVR          *GridAttributeSource `json:"SAVR,omitempty"          yaml:"SAVR,omitempty"`
	FBFM          *GridAttributeSource `json:"FBFM,omitempty"          yaml:"FBFM,omitempty"`
	Modifications []GridModification   `json:"modifications,omitempty" yaml:"modifications,omitempty"`
}

// CreateSurfaceGridRequest creates a surface grid for a domain.
type CreateSurfaceGridRequest struct {
	Attributes    []string             `json:"attributes"              yaml:"attributes"`
	FuelLoad      *GridAttributeSource `json:"fuelLoad,omitempty"      yaml:"fuelLoad,omitempty"`
	FuelDepth     *GridAttributeSource `json:"fuelDepth,omitempty"     yaml:"fuelDepth,omitempty"`
	FuelMoisture  *GridAttributeSource `json:"fuelMoisture,omitempty"  yaml:"fuelMoisture,omitempty"`
	SAVR          *GridAttributeSource `json:"SAVR,omitempty"          yaml:"SAVR,omitempty"`
	FBFM          *GridAttributeSource `json:"FBFM,omitempty"          yaml:"FBFM,omitempty"`
	Modifications []GridModification   `json:"modifications,omitempty" yaml:"modifications,omitempty"`
}

// TopographyGrid represents a domain's elevation, slope, and aspect grid.
type TopographyGrid struct {
	Resource
	JobStatus

	DomainID   string               `json:"domainId,omitempty"   yaml:"domainId,omitempty"`
	Attributes []string             `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	Elevation  *GridAttributeSource `json:"elevation,omitempty"  yaml:"elevation,omitempty"`
	Slope      *GridAttributeSource `json:"slope,omitempty"      yaml:"slope,omitempty"`
	Aspect     *GridAttributeSource `json:"aspect,omitempty"     yaml:"aspect,omitempty"`
}

// CreateTopographyGridRequest creates a topography grid for a domain.
type CreateTopographyGridRequest struct {
	Attributes []string             `json:"attributes"          yaml:"attributes"`
	Elevation  *GridAttributeSource `json:"elevation,omitempty" yaml:"elevation,omitempty"`
	Slope      *GridAttributeSource `json:"slope,omitempty"     yaml:"slope,omitempty"`
	Aspect     *GridAttributeSource `json:"aspect,omitempty"    yaml:"aspect,omitempty"`
}

// TreeGrid represents a domain's voxelized canopy grid.
type TreeGrid struct {
	Resource
	JobStatus

	DomainID     string               `json:"domainId,omitempty"     yaml:"domainId,omitempty"`
	Attributes   []string             `json:"attributes,omitempty"   yaml:"attributes,omitempty"`
	BulkDensity  *GridAttributeSource `json:"bulkDensity,omitempty"  yaml:"bulkDensity,omitempty"`
	SPCD         *GridAttributeSource `json:"SPCD,omitempty"         yaml:"SPCD,omitempty"`
	FuelMoisture *GridAttributeSource `json:"fuelMoisture,omitempty" yaml:"fuelMoisture,omitempty"`
}

// CreateTreeGridRequest creates a tree grid for a domain.
type CreateTreeGridRequest struct {
	Attributes   []string             `json:"attributes"             yaml:"attributes"`
	BulkDensity  *GridAttributeSource `json:"bulkDensity,omitempty"  yaml:"bulkDensity,omitempty"`
	SPCD         *GridAttributeSource `json:"SPCD,omitempty"         yaml:"SPCD,omitempty"`
	FuelMoisture *GridAttributeSource `json:"fuelMoisture,omitempty" yaml:"fuelMoisture,omitempty"`
}

// FeatureGrid represents a domain's rasterized feature masks.
type FeatureGrid struct {
	Resource
	JobStatus

	DomainID   string   `json:"domainId,omitempty"   yaml:"domainId,omitempty"`
	Attributes []string `json:"attributes,omitempty" yaml:"attributes,omitempty"`
}

// CreateFeatureGridRequest creates a feature grid for a domain.
type CreateFeatureGridRequest struct {
	Attributes []string `json:"attributes" yaml:"attributes"`
}

// GridAttributeMetadata describes the array layout of a completed grid.
type GridAttributeMetadata struct {
	Shape      []int                    `json:"shape,omitempty"      yaml:"shape,omitempty"`
	Dimensions []string                 `json:"dimensions,omitempty" yaml:"dimensions,omitempty"`
	Chunks     []int                    `json:"chunks,omitempty"     yaml:"chunks,omitempty"`
	ChunkShape []int                    `json:"chunkShape,omitempty" yaml:"chunkShape,omitempty"`
	Attributes []map[string]interface{} `json:"attributes,omitempty" yaml:"attributes,omitempty"`
}

// Export represents an export of a resource to a downloadable artifact. The
// artifact lives on object storage behind a signed URL once completed, and
// the URL eventually expires.
type Export struct {
	Resource
	JobStatus

	DomainID  string     `json:"domainId,omitempty"  yaml:"domainId,omitempty"`
	Target    string     `json:"resource,omitempty"  yaml:"resource,omitempty"`
	Format    string     `json:"format,omitempty"    yaml:"format,omitempty"`
	SignedURL string     `json:"signedUrl,omitempty" yaml:"signedUrl,omitempty"`
	ExpiresOn *time.Time `json:"expiresOn,omitempty" yaml:"expiresOn,omitempty"`
}

// Expired reports whether the export's signed URL has lapsed.
func (e *Export) Expired() bool {
	if e.Status == StatusExpired {
		return true
	}

	return e.ExpiresOn != nil && time.Now().After(*e.ExpiresOn)
}

// DefaultFilename returns a conventional filename for the export artifact,
// derived from its target resource and format.
func (e *Export) DefaultFilename() string {
	target := strings.ReplaceAll(e.Target, "/", "_")
	if target == "" {
		target = "export"
	}

	switch e.Format {
	case "zarr":
		return target + ".zarr.zip"
	case "QUIC-Fire":
		return target + "_quicfire.zip"
	case "":
		return target + ".zip"
	default:
		return target + "." + e.Format
	}
}
