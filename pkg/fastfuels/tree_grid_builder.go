package fastfuels

import "context"

// TreeGridBuilder assembles a CreateTreeGridRequest attribute by attribute.
type TreeGridBuilder struct {
	domainID string
	request  CreateTreeGridRequest
}

// NewTreeGridBuilder creates a builder for the given domain.
func NewTreeGridBuilder(domainID string) *TreeGridBuilder {
	return &TreeGridBuilder{domainID: domainID}
}

func (b *TreeGridBuilder) addAttribute(name string) {
	for _, attr := range b.request.Attributes {
		if attr == name {
			return
		}
	}

	b.request.Attributes = append(b.request.Attributes, name)
}

// WithBulkDensityFromTreeInventory voxelizes bulk density from the domain's
// completed tree inventory.
func (b *TreeGridBuilder) WithBulkDensityFromTreeInventory() *TreeGridBuilder {
	b.request.BulkDensity = &GridAttributeSource{Source: GridSourceTreeInventory}
	b.addAttribute(TreeGridAttributeBulkDensity)

	return b
}

// WithUniformBulkDensity sets a uniform canopy bulk density in kg/m³.
func (b *TreeGridBuilder) WithUniformBulkDensity(value float64) *TreeGridBuilder {
	b.request.BulkDensity = &GridAttributeSource{
		Source: GridSourceUniform,
		Value:  value,
	}
	b.addAttribute(TreeGridAttributeBulkDensity)

	return b
}

// WithSPCDFromTreeInventory rasterizes species codes from the domain's
// completed tree inventory.
func (b *TreeGridBuilder) WithSPCDFromTreeInventory() *TreeGridBuilder {
	b.request.SPCD = &GridAttributeSource{Source: GridSourceTreeInventory}
	b.addAttribute(TreeGridAttributeSPCD)

	return b
}

// WithUniformFuelMoisture sets a uniform canopy fuel moisture content in
// percent.
func (b *TreeGridBuilder) WithUniformFuelMoisture(value float64) *TreeGridBuilder {
	b.request.FuelMoisture = &GridAttributeSource{
		Source: GridSourceUniform,
		Value:  value,
	}
	b.addAttribute(TreeGridAttributeFuelMoisture)

	return b
}

// Request returns the accumulated create request.
func (b *TreeGridBuilder) Request() *CreateTreeGridRequest {
	return &b.request
}

// Build creates the tree grid with the configured attributes.
func (b *TreeGridBuilder) Build(ctx context.Context, grids GridsClient) (*TreeGrid, error) {
	if len(b.request.Attributes) == 0 {
		return nil, ErrNoAttributesSet
	}

	return grids.Tree().Create(ctx, b.domainID, &b.request)
}

// Clear resets all configured attributes.
func (b *TreeGridBuilder) Clear() *TreeGridBuilder {
	b.request = CreateTreeGridRequest{}

	return b
}
