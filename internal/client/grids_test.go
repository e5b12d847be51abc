package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/fastfuels-io/fastfuels-client/internal/client"
	internalhttp "github.com/fastfuels-io/fastfuels-client/internal/http"
	"github.com/fastfuels-io/fastfuels-client/pkg/fastfuels"
)

func TestGridsClient_Get(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/domains/domain-1/grids", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(fastfuels.Grids{
			Surface: &fastfuels.SurfaceGrid{
				JobStatus: fastfuels.JobStatus{Status: fastfuels.StatusCompleted},
			},
			Topography: &fastfuels.TopographyGrid{
				JobStatus: fastfuels.JobStatus{Status: fastfuels.StatusRunning},
			},
		})
	}))
	defer server.Close()

	grids := NewGridsClient(internalhttp.NewClient(server.URL, nil))

	result, err := grids.Get(context.Background(), "domain-1")
	require.NoError(t, err)
	assert.Equal(t, "domain-1", result.DomainID)
	require.NotNil(t, result.Surface)
	assert.Equal(t, fastfuels.StatusCompleted, result.Surface.Status)
	require.NotNil(t, result.Topography)
	assert.Equal(t, fastfuels.StatusRunning, result.Topography.Status)
}

func TestSurfaceGridClient_Create(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/domains/domain-1/grids/surface", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var request fastfuels.CreateSurfaceGridRequest

		require.NoError(t, json.NewDecoder(r.Body).Decode(&request))
		assert.Equal(t, []string{"fuelLoad", "fuelMoisture"}, request.Attributes)
		require.NotNil(t, request.FuelLoad)
		assert.Equal(t, "LANDFIRE", request.FuelLoad.Source)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(fastfuels.SurfaceGrid{
			JobStatus:  fastfuels.JobStatus{Status: fastfuels.StatusPending},
			Attributes: request.Attributes,
		})
	}))
	defer server.Close()

	grids := NewGridsClient(internalhttp.NewClient(server.URL, nil))

	request := fastfuels.NewSurfaceGridBuilder("domain-1").
		WithFuelLoadFromLandfire(&fastfuels.LandfireOptions{Product: "FBFM40"}).
		WithUniformFuelMoisture(15).
		Request()

	grid, err := grids.Surface().Create(context.Background(), "domain-1", request)
	require.NoError(t, err)
	assert.Equal(t, "domain-1", grid.DomainID)
	assert.Equal(t, fastfuels.StatusPending, grid.Status)
}

func TestTopographyGridClient_WaitUntilCompleted(t *testing.T) {
	t.Parallel()

	var polls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/domains/domain-1/grids/topography", r.URL.Path)

		status := fastfuels.StatusQueued
		if polls.Add(1) >= 2 {
			status = fastfuels.StatusCompleted
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(fastfuels.TopographyGrid{
			JobStatus: fastfuels.JobStatus{Status: status},
		})
	}))
	defer server.Close()

	grids := NewGridsClient(internalhttp.NewClient(server.URL, nil))

	grid, err := grids.Topography().WaitUntilCompleted(context.Background(), "domain-1", &fastfuels.WaitOptions{
		Interval: time.Millisecond,
		Timeout:  time.Second,
	})
	require.NoError(t, err)
	assert.Equal(t, fastfuels.StatusCompleted, grid.Status)
	assert.Equal(t, int32(2), polls.Load())
}

func TestTreeGridClient_Attributes(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/domains/domain-1/grids/tree/attributes", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(fastfuels.GridAttributeMetadata{
			Shape:      []int{40, 500, 500},
			Dimensions: []string{"z", "y", "x"},
			ChunkShape: []int{40, 100, 100},
		})
	}))
	defer server.Close()

	grids := NewGridsClient(internalhttp.NewClient(server.URL, nil))

	metadata, err := grids.Tree().Attributes(context.Background(), "domain-1")
	require.NoError(t, err)
	assert.Equal(t, []int{40, 500, 500}, metadata.Shape)
	assert.Equal(t, []string{"z", "y", "x"}, metadata.Dimensions)
}

func TestFeatureGridClient_Create(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/domains/domain-1/grids/feature", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var request fastfuels.CreateFeatureGridRequest

		require.NoError(t, json.NewDecoder(r.Body).Decode(&request))
		assert.Equal(t, []string{"road", "water"}, request.Attributes)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(fastfuels.FeatureGrid{
			JobStatus:  fastfuels.JobStatus{Status: fastfuels.StatusPending},
			Attributes: request.Attributes,
		})
	}))
	defer server.Close()

	grids := NewGridsClient(internalhttp.NewClient(server.URL, nil))

	grid, err := grids.Feature().Create(context.Background(), "domain-1", &fastfuels.CreateFeatureGridRequest{
		Attributes: []string{fastfuels.FeatureGridAttributeRoad, fastfuels.FeatureGridAttributeWater},
	})
	require.NoError(t, err)
	assert.Equal(t, fastfuels.StatusPending, grid.Status)
}

func TestGridsClient_CreateExport(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/domains/domain-1/grids/exports/QUIC-Fire", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"status":   "pending",
			"resource": "grids",
			"format":   "QUIC-Fire",
		})
	}))
	defer server.Close()

	grids := NewGridsClient(internalhttp.NewClient(server.URL, nil))

	export, err := grids.CreateExport(context.Background(), "domain-1", "QUIC-Fire")
	require.NoError(t, err)
	assert.Equal(t, "domain-1", export.DomainID)
	assert.Equal(t, "grids", export.Target)
	assert.Equal(t, "QUIC-Fire", export.Format)
	assert.Equal(t, fastfuels.StatusPending, export.Status)
}

func TestSurfaceGridClient_Delete(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/domains/domain-1/grids/surface", r.URL.Path)
		assert.Equal(t, http.MethodDelete, r.Method)

		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	grids := NewGridsClient(internalhttp.NewClient(server.URL, nil))

	require.NoError(t, grids.Surface().Delete(context.Background(), "domain-1"))
}

func TestGridClients_RequireDomainID(t *testing.T) {
	t.Parallel()

	grids := NewGridsClient(internalhttp.NewClient("http://localhost", nil))

	_, err := grids.Get(context.Background(), "")
	require.ErrorIs(t, err, fastfuels.ErrDomainIDRequired)

	_, err = grids.Surface().Get(context.Background(), "")
	require.ErrorIs(t, err, fastfuels.ErrDomainIDRequired)

	_, err = grids.Tree().Attributes(context.Background(), "")
	require.ErrorIs(t, err, fastfuels.ErrDomainIDRequired)

	_, err = grids.CreateExport(context.Background(), "", "zarr")
	require.ErrorIs(t, err, fastfuels.ErrDomainIDRequired)
}
