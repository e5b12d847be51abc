package fastfuels

import "context"

// SurfaceGridBuilder assembles a CreateSurfaceGridRequest attribute by
// attribute. Calling a with-method for an attribute replaces any source
// configured for it earlier.
type SurfaceGridBuilder struct {
	domainID string
	request  CreateSurfaceGridRequest
}

// NewSurfaceGridBuilder creates a builder for the given domain.
func NewSurfaceGridBuilder(domainID string) *SurfaceGridBuilder {
	return &SurfaceGridBuilder{domainID: domainID}
}

func (b *SurfaceGridBuilder) addAttribute(name string) {
	for _, attr := range b.request.Attributes {
		if attr == name {
			return
		}
	}

	b.request.Attributes = append(b.request.Attributes, name)
}

// WithUniformFuelLoad sets a uniform fuel load in kg/m².
func (b *SurfaceGridBuilder) WithUniformFuelLoad(value float64, featureMasks ...string) *SurfaceGridBuilder {
	b.request.FuelLoad = &GridAttributeSource{
		Source:       GridSourceUniform,
		Value:        value,
		FeatureMasks: featureMasks,
	}
	b.addAttribute(SurfaceGridAttributeFuelLoad)

	return b
}

// SizeClassValues holds per size class values for fuel load or fuel moisture.
// Nil members are excluded from the configuration.
type SizeClassValues struct {
	OneHour        *float64
	TenHour        *float64
	HundredHour    *float64
	LiveHerbaceous *float64
	LiveWoody      *float64
	Groups         []string
	FeatureMasks   []string
}

func (v *SizeClassValues) source() *GridAttributeSource {
	return &GridAttributeSource{
		Source:         GridSourceUniformBySizeClass,
		OneHour:        v.OneHour,
		TenHour:        v.TenHour,
		HundredHour:    v.HundredHour,
		LiveHerbaceous: v.LiveHerbaceous,
		LiveWoody:      v.LiveWoody,
		Groups:         v.Groups,
		FeatureMasks:   v.FeatureMasks,
	}
}

// WithUniformFuelLoadBySizeClass sets uniform fuel load values per size
// class. Classes listed in values.Groups must carry a value or the API will
// reject the request.
func (b *SurfaceGridBuilder) WithUniformFuelLoadBySizeClass(values *SizeClassValues) *SurfaceGridBuilder {
	b.request.FuelLoad = values.source()
	b.addAttribute(SurfaceGridAttributeFuelLoad)

	return b
}

// LandfireOptions configures a LANDFIRE-sourced surface grid attribute. A
// nil value uses the defaults.
type LandfireOptions struct {
	// Product is the LANDFIRE product name, "FBFM40" or "FBFM13".
	Product string

	// Version of the LANDFIRE product. Defaults to "2022".
	Version string

	// InterpolationMethod for resampling. Defaults to "nearest".
	InterpolationMethod string

	// CuringLiveHerbaceous is the cured proportion of live herbaceous
	// fuel. Fuel load only.
	CuringLiveHerbaceous *float64

	// CuringLiveWoody is the cured proportion of live woody fuel. Fuel
	// load only.
	CuringLiveWoody *float64

	// Groups restricts the size classes included.
	Groups []string

	// FeatureMasks lists feature grid attributes to mask out, "road" or
	// "water". Masking requires a completed feature grid.
	FeatureMasks []string

	// RemoveNonBurnable lists non-burnable fuel models to remove, e.g.
	// "NB1", "NB2".
	RemoveNonBurnable []string
}

func (o *LandfireOptions) source() *GridAttributeSource {
	if o == nil {
		o = &LandfireOptions{}
	}

	version := o.Version
	if version == "" {
		version = "2022"
	}

	interpolation := o.InterpolationMethod
	if interpolation == "" {
		interpolation = "nearest"
	}

	return &GridAttributeSource{
		Source:               GridSourceLandfire,
		Product:              o.Product,
		Version:              version,
		InterpolationMethod:  interpolation,
		CuringLiveHerbaceous: o.CuringLiveHerbaceous,
		CuringLiveWoody:      o.CuringLiveWoody,
		Groups:               o.Groups,
		FeatureMasks:         o.FeatureMasks,
		RemoveNonBurnable:    o.RemoveNonBurnable,
	}
}

// WithFuelLoadFromLandfire sources fuel load from a LANDFIRE product.
func (b *SurfaceGridBuilder) WithFuelLoadFromLandfire(opts *LandfireOptions) *SurfaceGridBuilder {
	b.request.FuelLoad = opts.source()
	b.addAttribute(SurfaceGridAttributeFuelLoad)

	return b
}

// WithUniformFuelDepth sets a uniform fuel depth in meters.
func (b *SurfaceGridBuilder) WithUniformFuelDepth(value float64, featureMasks ...string) *SurfaceGridBuilder {
	b.request.FuelDepth = &GridAttributeSource{
		Source:       GridSourceUniform,
		Value:        value,
		FeatureMasks: featureMasks,
	}
	b.addAttribute(SurfaceGridAttributeFuelDepth)

	return b
}

// WithFuelDepthFromLandfire sources fuel depth from a LANDFIRE product.
func (b *SurfaceGridBuilder) WithFuelDepthFromLandfire(opts *LandfireOptions) *SurfaceGridBuilder {
	b.request.FuelDepth = opts.source()
	b.addAttribute(SurfaceGridAttributeFuelDepth)

	return b
}

// WithUniformFuelMoisture sets a uniform fuel moisture content in percent.
func (b *SurfaceGridBuilder) WithUniformFuelMoisture(value float64, featureMasks ...string) *SurfaceGridBuilder {
	b.request.FuelMoisture = &GridAttributeSource{
		Source:       GridSourceUniform,
		Value:        value,
		FeatureMasks: featureMasks,
	}
	b.addAttribute(SurfaceGridAttributeFuelMoisture)

	return b
}

// WithUniformFuelMoistureBySizeClass sets uniform fuel moisture values per
// size class.
func (b *SurfaceGridBuilder) WithUniformFuelMoistureBySizeClass(values *SizeClassValues) *SurfaceGridBuilder {
	b.request.FuelMoisture = values.source()
	b.addAttribute(SurfaceGridAttributeFuelMoisture)

	return b
}

// WithUniformSAVR sets a uniform surface area to volume ratio in m²/m³.
func (b *SurfaceGridBuilder) WithUniformSAVR(value float64, featureMasks ...string) *SurfaceGridBuilder {
	b.request.SAVR = &GridAttributeSource{
		Source:       GridSourceUniform,
		Value:        value,
		FeatureMasks: featureMasks,
	}
	b.addAttribute(SurfaceGridAttributeSAVR)

	return b
}

// WithSAVRFromLandfire sources SAVR from a LANDFIRE product.
func (b *SurfaceGridBuilder) WithSAVRFromLandfire(opts *LandfireOptions) *SurfaceGridBuilder {
	b.request.SAVR = opts.source()
	b.addAttribute(SurfaceGridAttributeSAVR)

	return b
}

// WithUniformFBFM sets a uniform Fire Behavior Fuel Model, e.g. "GR2".
func (b *SurfaceGridBuilder) WithUniformFBFM(value string, featureMasks ...string) *SurfaceGridBuilder {
	b.request.FBFM = &GridAttributeSource{
		Source:       GridSourceUniform,
		Value:        value,
		FeatureMasks: featureMasks,
	}
	b.addAttribute(SurfaceGridAttributeFBFM)

	return b
}

// WithFBFMFromLandfire sources the Fire Behavior Fuel Model from a LANDFIRE
// product.
func (b *SurfaceGridBuilder) WithFBFMFromLandfire(opts *LandfireOptions) *SurfaceGridBuilder {
	b.request.FBFM = opts.source()
	b.addAttribute(SurfaceGridAttributeFBFM)

	return b
}

// WithModification appends a conditional modification applied to grid cells
// after the sources are rasterized.
func (b *SurfaceGridBuilder) WithModification(actions []ModificationAction, conditions []ModificationCondition) *SurfaceGridBuilder {
	b.request.Modifications = append(b.request.Modifications, GridModification{
		Actions:    actions,
		Conditions: conditions,
	})

	return b
}

// Request returns the accumulated create request.
func (b *SurfaceGridBuilder) Request() *CreateSurfaceGridRequest {
	return &b.request
}

// Build creates the surface grid with the configured attributes.
func (b *SurfaceGridBuilder) Build(ctx context.Context, grids GridsClient) (*SurfaceGrid, error) {
	if len(b.request.Attributes) == 0 {
		return nil, ErrNoAttributesSet
	}

	return grids.Surface().Create(ctx, b.domainID, &b.request)
}

// Clear resets all configured attributes.
func (b *SurfaceGridBuilder) Clear() *SurfaceGridBuilder {
	b.request = CreateSurfaceGridRequest{}

	return b
}
