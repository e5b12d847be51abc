package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/fastfuels-io/fastfuels-client/internal/client"
	internalhttp "github.com/fastfuels-io/fastfuels-client/internal/http"
	"github.com/fastfuels-io/fastfuels-client/pkg/fastfuels"
)

func TestFeaturesClient_Get(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/domains/domain-1/features", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(fastfuels.Features{
			Road: &fastfuels.RoadFeature{
				JobStatus: fastfuels.JobStatus{Status: fastfuels.StatusCompleted},
			},
		})
	}))
	defer server.Close()

	features := NewFeaturesClient(internalhttp.NewClient(server.URL, nil))

	result, err := features.Get(context.Background(), "domain-1")
	require.NoError(t, err)
	assert.Equal(t, "domain-1", result.DomainID)
	require.NotNil(t, result.Road)
	assert.Nil(t, result.Water)
}

func TestRoadFeatureClient_CreateFromOSM(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/domains/domain-1/features/road", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var request fastfuels.CreateFeatureRequest

		require.NoError(t, json.NewDecoder(r.Body).Decode(&request))
		assert.Equal(t, []string{"OSM"}, request.Sources)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(fastfuels.RoadFeature{
			JobStatus: fastfuels.JobStatus{Status: fastfuels.StatusPending},
			Sources:   request.Sources,
		})
	}))
	defer server.Close()

	features := NewFeaturesClient(internalhttp.NewClient(server.URL, nil))

	road, err := features.Road().CreateFromOSM(context.Background(), "domain-1")
	require.NoError(t, err)
	assert.Equal(t, "domain-1", road.DomainID)
	assert.Equal(t, []string{"OSM"}, road.Sources)
	assert.Equal(t, fastfuels.StatusPending, road.Status)
}

func TestWaterFeatureClient_CreateFromOSM(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/domains/domain-1/features/water", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(fastfuels.WaterFeature{
			JobStatus: fastfuels.JobStatus{Status: fastfuels.StatusPending},
		})
	}))
	defer server.Close()

	features := NewFeaturesClient(internalhttp.NewClient(server.URL, nil))

	water, err := features.Water().CreateFromOSM(context.Background(), "domain-1")
	require.NoError(t, err)
	assert.Equal(t, "domain-1", water.DomainID)
	assert.Equal(t, fastfuels.StatusPending, water.Status)
}

func TestRoadFeatureClient_WaitUntilCompleted_Failure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(fastfuels.RoadFeature{
			JobStatus: fastfuels.JobStatus{
				Status:       fastfuels.StatusFailed,
				StatusDetail: "OSM extract unavailable",
			},
		})
	}))
	defer server.Close()

	features := NewFeaturesClient(internalhttp.NewClient(server.URL, nil))

	road, err := features.Road().WaitUntilCompleted(context.Background(), "domain-1", &fastfuels.WaitOptions{
		Interval: time.Millisecond,
		Timeout:  time.Second,
	})
	require.Error(t, err)
	assert.True(t, fastfuels.IsOperationFailed(err))
	assert.Contains(t, err.Error(), "OSM extract unavailable")

	require.NotNil(t, road)
	assert.Equal(t, fastfuels.StatusFailed, road.Status)
}

func TestWaterFeatureClient_Delete(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/domains/domain-1/features/water", r.URL.Path)
		assert.Equal(t, http.MethodDelete, r.Method)

		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	features := NewFeaturesClient(internalhttp.NewClient(server.URL, nil))

	require.NoError(t, features.Water().Delete(context.Background(), "domain-1"))
}

func TestFeatureClients_RequireDomainID(t *testing.T) {
	t.Parallel()

	features := NewFeaturesClient(internalhttp.NewClient("http://localhost", nil))

	_, err := features.Get(context.Background(), "")
	require.ErrorIs(t, err, fastfuels.ErrDomainIDRequired)

	_, err = features.Road().Get(context.Background(), "")
	require.ErrorIs(t, err, fastfuels.ErrDomainIDRequired)

	_, err = features.Water().CreateFromOSM(context.Background(), "")
	require.ErrorIs(t, err, fastfuels.ErrDomainIDRequired)
}
