package fastfuels_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internalclient "github.com/fastfuels-io/fastfuels-client/internal/client"
	internalhttp "github.com/fastfuels-io/fastfuels-client/internal/http"
	"github.com/fastfuels-io/fastfuels-client/pkg/fastfuels"
)

func float64Ptr(v float64) *float64 {
	return &v
}

func TestSurfaceGridBuilder_UniformAttributes(t *testing.T) {
	t.Parallel()

	request := fastfuels.NewSurfaceGridBuilder("domain-1").
		WithUniformFuelLoad(0.7, "road").
		WithUniformFuelDepth(0.3).
		WithUniformFuelMoisture(15).
		WithUniformSAVR(500).
		WithUniformFBFM("GR2").
		Request()

	assert.Equal(t, []string{"fuelLoad", "fuelDepth", "fuelMoisture", "SAVR", "FBFM"}, request.Attributes)

	require.NotNil(t, request.FuelLoad)
	assert.Equal(t, fastfuels.GridSourceUniform, request.FuelLoad.Source)
	assert.InDelta(t, 0.7, request.FuelLoad.Value, 0.001)
	assert.Equal(t, []string{"road"}, request.FuelLoad.FeatureMasks)

	require.NotNil(t, request.FBFM)
	assert.Equal(t, "GR2", request.FBFM.Value)
}

func TestSurfaceGridBuilder_LandfireDefaults(t *testing.T) {
	t.Parallel()

	request := fastfuels.NewSurfaceGridBuilder("domain-1").
		WithFuelLoadFromLandfire(&fastfuels.LandfireOptions{
			Product:              "FBFM40",
			CuringLiveHerbaceous: float64Ptr(0.25),
			Groups:               []string{"oneHour"},
			FeatureMasks:         []string{"road", "water"},
			RemoveNonBurnable:    []string{"NB1", "NB2"},
		}).
		Request()

	require.NotNil(t, request.FuelLoad)
	assert.Equal(t, fastfuels.GridSourceLandfire, request.FuelLoad.Source)
	assert.Equal(t, "FBFM40", request.FuelLoad.Product)
	assert.Equal(t, "2022", request.FuelLoad.Version)
	assert.Equal(t, "nearest", request.FuelLoad.InterpolationMethod)
	require.NotNil(t, request.FuelLoad.CuringLiveHerbaceous)
	assert.InDelta(t, 0.25, *request.FuelLoad.CuringLiveHerbaceous, 0.001)
	assert.Equal(t, []string{"NB1", "NB2"}, request.FuelLoad.RemoveNonBurnable)
}

func TestSurfaceGridBuilder_SizeClassValues(t *testing.T) {
	t.Parallel()

	request := fastfuels.NewSurfaceGridBuilder("domain-1").
		WithUniformFuelLoadBySizeClass(&fastfuels.SizeClassValues{
			OneHour: float64Ptr(0.2),
			TenHour: float64Ptr(0.1),
			Groups:  []string{"oneHour", "tenHour"},
		}).
		Request()

	require.NotNil(t, request.FuelLoad)
	assert.Equal(t, fastfuels.GridSourceUniformBySizeClass, request.FuelLoad.Source)
	require.NotNil(t, request.FuelLoad.OneHour)
	assert.InDelta(t, 0.2, *request.FuelLoad.OneHour, 0.001)
	assert.Nil(t, request.FuelLoad.LiveWoody)
}

func TestSurfaceGridBuilder_ReplacingAttributeKeepsListUnique(t *testing.T) {
	t.Parallel()

	request := fastfuels.NewSurfaceGridBuilder("domain-1").
		WithUniformFuelLoad(0.5).
		WithFuelLoadFromLandfire(&fastfuels.LandfireOptions{Product: "FBFM40"}).
		Request()

	assert.Equal(t, []string{"fuelLoad"}, request.Attributes)
	assert.Equal(t, fastfuels.GridSourceLandfire, request.FuelLoad.Source)
}

func TestSurfaceGridBuilder_Modifications(t *testing.T) {
	t.Parallel()

	request := fastfuels.NewSurfaceGridBuilder("domain-1").
		WithUniformFuelLoad(0.5).
		WithModification(
			[]fastfuels.ModificationAction{{Attribute: "fuelLoad", Modifier: "multiply", Value: 0.5}},
			[]fastfuels.ModificationCondition{{Attribute: "FBFM", Operator: "eq", Value: "GR2"}},
		).
		Request()

	require.Len(t, request.Modifications, 1)
	assert.Len(t, request.Modifications[0].Actions, 1)
	assert.Len(t, request.Modifications[0].Conditions, 1)
}

func TestSurfaceGridBuilder_BuildRequiresAttributes(t *testing.T) {
	t.Parallel()

	grids := internalclient.NewGridsClient(internalhttp.NewClient("http://localhost", nil))

	_, err := fastfuels.NewSurfaceGridBuilder("domain-1").Build(context.Background(), grids)
	require.ErrorIs(t, err, fastfuels.ErrNoAttributesSet)
}

func TestSurfaceGridBuilder_Build(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/domains/domain-1/grids/surface", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var request fastfuels.CreateSurfaceGridRequest

		require.NoError(t, json.NewDecoder(r.Body).Decode(&request))
		assert.Equal(t, []string{"fuelLoad"}, request.Attributes)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(fastfuels.SurfaceGrid{
			JobStatus:  fastfuels.JobStatus{Status: fastfuels.StatusPending},
			Attributes: request.Attributes,
		})
	}))
	defer server.Close()

	grids := internalclient.NewGridsClient(internalhttp.NewClient(server.URL, nil))

	grid, err := fastfuels.NewSurfaceGridBuilder("domain-1").
		WithUniformFuelLoad(0.5).
		Build(context.Background(), grids)
	require.NoError(t, err)
	assert.Equal(t, fastfuels.StatusPending, grid.Status)
	assert.Equal(t, "domain-1", grid.DomainID)
}

func TestSurfaceGridBuilder_Clear(t *testing.T) {
	t.Parallel()

	builder := fastfuels.NewSurfaceGridBuilder("domain-1").WithUniformFuelLoad(0.5)
	builder.Clear()

	assert.Empty(t, builder.Request().Attributes)
	assert.Nil(t, builder.Request().FuelLoad)
}

func TestTopographyGridBuilder(t *testing.T) {
	t.Parallel()

	request := fastfuels.NewTopographyGridBuilder("domain-1").
		WithElevationFrom3DEP("").
		WithSlopeFromLandfire("linear").
		WithAspectFrom3DEP().
		Request()

	assert.Equal(t, []string{"elevation", "slope", "aspect"}, request.Attributes)

	require.NotNil(t, request.Elevation)
	assert.Equal(t, fastfuels.GridSource3DEP, request.Elevation.Source)
	assert.Equal(t, "cubic", request.Elevation.InterpolationMethod)

	require.NotNil(t, request.Slope)
	assert.Equal(t, fastfuels.GridSourceLandfire, request.Slope.Source)
	assert.Equal(t, "linear", request.Slope.InterpolationMethod)

	require.NotNil(t, request.Aspect)
	assert.Equal(t, fastfuels.GridSource3DEP, request.Aspect.Source)
}

func TestTopographyGridBuilder_UniformElevation(t *testing.T) {
	t.Parallel()

	request := fastfuels.NewTopographyGridBuilder("domain-1").
		WithUniformElevation(1200).
		Request()

	require.NotNil(t, request.Elevation)
	assert.Equal(t, fastfuels.GridSourceUniform, request.Elevation.Source)
	assert.InDelta(t, 1200.0, request.Elevation.Value, 0.001)
}

func TestTopographyGridBuilder_BuildRequiresAttributes(t *testing.T) {
	t.Parallel()

	grids := internalclient.NewGridsClient(internalhttp.NewClient("http://localhost", nil))

	_, err := fastfuels.NewTopographyGridBuilder("domain-1").Build(context.Background(), grids)
	require.ErrorIs(t, err, fastfuels.ErrNoAttributesSet)
}

func TestTreeGridBuilder(t *testing.T) {
	t.Parallel()

	request := fastfuels.NewTreeGridBuilder("domain-1").
		WithBulkDensityFromTreeInventory().
		WithSPCDFromTreeInventory().
		WithUniformFuelMoisture(90).
		Request()

	assert.Equal(t, []string{"bulkDensity", "SPCD", "fuelMoisture"}, request.Attributes)

	require.NotNil(t, request.BulkDensity)
	assert.Equal(t, fastfuels.GridSourceTreeInventory, request.BulkDensity.Source)

	require.NotNil(t, request.FuelMoisture)
	assert.Equal(t, fastfuels.GridSourceUniform, request.FuelMoisture.Source)
	assert.InDelta(t, 90.0, request.FuelMoisture.Value, 0.001)
}

func TestTreeGridBuilder_BuildRequiresAttributes(t *testing.T) {
	t.Parallel()

	grids := internalclient.NewGridsClient(internalhttp.NewClient("http://localhost", nil))

	_, err := fastfuels.NewTreeGridBuilder("domain-1").Build(context.Background(), grids)
	require.ErrorIs(t, err, fastfuels.ErrNoAttributesSet)
}
