package fastfuels

import "context"

// TopographyGridBuilder assembles a CreateTopographyGridRequest attribute by
// attribute.
type TopographyGridBuilder struct {
	domainID string
	request  CreateTopographyGridRequest
}

// NewTopographyGridBuilder creates a builder for the given domain.
func NewTopographyGridBuilder(domainID string) *TopographyGridBuilder {
	return &TopographyGridBuilder{domainID: domainID}
}

func (b *TopographyGridBuilder) addAttribute(name string) {
	for _, attr := range b.request.Attributes {
		if attr == name {
			return
		}
	}

	b.request.Attributes = append(b.request.Attributes, name)
}

// WithElevationFrom3DEP sources elevation from the USGS 3DEP program.
func (b *TopographyGridBuilder) WithElevationFrom3DEP(interpolationMethod string) *TopographyGridBuilder {
	if interpolationMethod == "" {
		interpolationMethod = "cubic"
	}

	b.request.Elevation = &GridAttributeSource{
		Source:              GridSource3DEP,
		InterpolationMethod: interpolationMethod,
	}
	b.addAttribute(TopographyGridAttributeElevation)

	return b
}

// WithElevationFromLandfire sources elevation from LANDFIRE.
func (b *TopographyGridBuilder) WithElevationFromLandfire(interpolationMethod string) *TopographyGridBuilder {
	if interpolationMethod == "" {
		interpolationMethod = "cubic"
	}

	b.request.Elevation = &GridAttributeSource{
		Source:              GridSourceLandfire,
		InterpolationMethod: interpolationMethod,
	}
	b.addAttribute(TopographyGridAttributeElevation)

	return b
}

// WithUniformElevation sets a flat elevation in meters.
func (b *TopographyGridBuilder) WithUniformElevation(value float64) *TopographyGridBuilder {
	b.request.Elevation = &GridAttributeSource{
		Source: GridSourceUniform,
		Value:  value,
	}
	b.addAttribute(TopographyGridAttributeElevation)

	return b
}

// WithSlopeFrom3DEP sources slope from the USGS 3DEP program.
func (b *TopographyGridBuilder) WithSlopeFrom3DEP(interpolationMethod string) *TopographyGridBuilder {
	if interpolationMethod == "" {
		interpolationMethod = "cubic"
	}

	b.request.Slope = &GridAttributeSource{
		Source:              GridSource3DEP,
		InterpolationMethod: interpolationMethod,
	}
	b.addAttribute(TopographyGridAttributeSlope)

	return b
}

// WithSlopeFromLandfire sources slope from LANDFIRE.
func (b *TopographyGridBuilder) WithSlopeFromLandfire(interpolationMethod string) *TopographyGridBuilder {
	if interpolationMethod == "" {
		interpolationMethod = "cubic"
	}

	b.request.Slope = &GridAttributeSource{
		Source:              GridSourceLandfire,
		InterpolationMethod: interpolationMethod,
	}
	b.addAttribute(TopographyGridAttributeSlope)

	return b
}

// WithAspectFrom3DEP sources aspect from the USGS 3DEP program.
func (b *TopographyGridBuilder) WithAspectFrom3DEP() *TopographyGridBuilder {
	b.request.Aspect = &GridAttributeSource{Source: GridSource3DEP}
	b.addAttribute(TopographyGridAttributeAspect)

	return b
}

// WithAspectFromLandfire sources aspect from LANDFIRE.
func (b *TopographyGridBuilder) WithAspectFromLandfire() *TopographyGridBuilder {
	b.request.Aspect = &GridAttributeSource{Source: GridSourceLandfire}
	b.addAttribute(TopographyGridAttributeAspect)

	return b
}

// Request returns the accumulated create request.
func (b *TopographyGridBuilder) Request() *CreateTopographyGridRequest {
	return &b.request
}

// Build creates the topography grid with the configured attributes.
func (b *TopographyGridBuilder) Build(ctx context.Context, grids GridsClient) (*TopographyGrid, error) {
	if len(b.request.Attributes) == 0 {
		return nil, ErrNoAttributesSet
	}

	return grids.Topography().Create(ctx, b.domainID, &b.request)
}

// Clear resets all configured attributes.
func (b *TopographyGridBuilder) Clear() *TopographyGridBuilder {
	b.request = CreateTopographyGridRequest{}

	return b
}
