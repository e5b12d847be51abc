package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/fastfuels-io/fastfuels-client/internal/client"
	internalhttp "github.com/fastfuels-io/fastfuels-client/internal/http"
	"github.com/fastfuels-io/fastfuels-client/pkg/fastfuels"
)

func stringPtr(s string) *string {
	return &s
}

func TestDomainsClient_Create(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/domains", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var request fastfuels.CreateDomainRequest

		require.NoError(t, json.NewDecoder(r.Body).Decode(&request))
		assert.Equal(t, "blue-mountain", request.Name)
		assert.InDelta(t, 2.0, request.HorizontalResolution, 0.001)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(fastfuels.Domain{
			ID:                   "domain-1",
			Name:                 request.Name,
			HorizontalResolution: request.HorizontalResolution,
			VerticalResolution:   request.VerticalResolution,
		})
	}))
	defer server.Close()

	domains := NewDomainsClient(internalhttp.NewClient(server.URL, nil), nil)

	domain, err := domains.Create(context.Background(), &fastfuels.CreateDomainRequest{
		Name:                 "blue-mountain",
		Type:                 "Polygon",
		HorizontalResolution: 2.0,
		VerticalResolution:   1.0,
	})
	require.NoError(t, err)
	assert.Equal(t, "domain-1", domain.ID)
	assert.Equal(t, "blue-mountain", domain.Name)
}

func TestDomainsClient_Get(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/domains/domain-1", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(fastfuels.Domain{ID: "domain-1", Name: "blue-mountain"})
	}))
	defer server.Close()

	domains := NewDomainsClient(internalhttp.NewClient(server.URL, nil), nil)

	domain, err := domains.Get(context.Background(), "domain-1")
	require.NoError(t, err)
	assert.Equal(t, "domain-1", domain.ID)
	assert.Equal(t, "blue-mountain", domain.Name)
}

func TestDomainsClient_Get_ServedFromCache(t *testing.T) {
	t.Parallel()

	var requests atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(fastfuels.Domain{ID: "domain-1"})
	}))
	defer server.Close()

	cache := fastfuels.NewCacheManager(fastfuels.NewMemoryCache(10), nil)
	domains := NewDomainsClient(internalhttp.NewClient(server.URL, nil), cache)

	_, err := domains.Get(context.Background(), "domain-1")
	require.NoError(t, err)

	domain, err := domains.Get(context.Background(), "domain-1")
	require.NoError(t, err)
	assert.Equal(t, "domain-1", domain.ID)

	assert.Equal(t, int32(1), requests.Load())

	stats := cache.GetStats()
	assert.Equal(t, int64(1), stats.Hits)
}

func TestDomainsClient_Get_NotFound(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "domain not found"})
	}))
	defer server.Close()

	domains := NewDomainsClient(internalhttp.NewClient(server.URL, nil), nil)

	_, err := domains.Get(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, fastfuels.IsNotFound(err))
}

func TestDomainsClient_Get_RequiresID(t *testing.T) {
	t.Parallel()

	domains := NewDomainsClient(internalhttp.NewClient("http://localhost", nil), nil)

	_, err := domains.Get(context.Background(), "")
	require.ErrorIs(t, err, fastfuels.ErrDomainIDRequired)
}

func TestDomainsClient_List(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/domains", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "50", r.URL.Query().Get("size"))
		assert.Equal(t, "createdOn", r.URL.Query().Get("sortBy"))
		assert.Equal(t, "descending", r.URL.Query().Get("sortOrder"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(fastfuels.ListDomainsResponse{
			Domains:     []fastfuels.Domain{{ID: "domain-1"}, {ID: "domain-2"}},
			CurrentPage: 2,
			PageSize:    50,
			TotalItems:  120,
		})
	}))
	defer server.Close()

	domains := NewDomainsClient(internalhttp.NewClient(server.URL, nil), nil)

	list, err := domains.List(context.Background(), &fastfuels.ListDomainsParams{
		Page:      2,
		Size:      50,
		SortBy:    fastfuels.DomainSortCreatedOn,
		SortOrder: fastfuels.SortOrderDescending,
	})
	require.NoError(t, err)
	assert.Len(t, list.Domains, 2)
	assert.Equal(t, 120, list.TotalItems)
	assert.Equal(t, 3, list.TotalPages())
}

func TestDomainsClient_Update(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/domains/domain-1", r.URL.Path)
		assert.Equal(t, http.MethodPatch, r.Method)

		var request fastfuels.UpdateDomainRequest

		require.NoError(t, json.NewDecoder(r.Body).Decode(&request))
		require.NotNil(t, request.Name)
		assert.Equal(t, "renamed", *request.Name)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(fastfuels.Domain{ID: "domain-1", Name: "renamed"})
	}))
	defer server.Close()

	domains := NewDomainsClient(internalhttp.NewClient(server.URL, nil), nil)

	domain, err := domains.Update(context.Background(), "domain-1", &fastfuels.UpdateDomainRequest{
		Name: stringPtr("renamed"),
	})
	require.NoError(t, err)
	assert.Equal(t, "renamed", domain.Name)
}

func TestDomainsClient_Update_InvalidatesCache(t *testing.T) {
	t.Parallel()

	var gets atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if r.Method == http.MethodGet {
			gets.Add(1)
		}

		_ = json.NewEncoder(w).Encode(fastfuels.Domain{ID: "domain-1"})
	}))
	defer server.Close()

	cache := fastfuels.NewCacheManager(fastfuels.NewMemoryCache(10), nil)
	domains := NewDomainsClient(internalhttp.NewClient(server.URL, nil), cache)

	_, err := domains.Get(context.Background(), "domain-1")
	require.NoError(t, err)

	_, err = domains.Update(context.Background(), "domain-1", &fastfuels.UpdateDomainRequest{
		Name: stringPtr("renamed"),
	})
	require.NoError(t, err)

	// The stale snapshot is gone, so this Get goes back to the API.
	_, err = domains.Get(context.Background(), "domain-1")
	require.NoError(t, err)
	assert.Equal(t, int32(2), gets.Load())
}

func TestDomainsClient_Delete(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/domains/domain-1", r.URL.Path)
		assert.Equal(t, http.MethodDelete, r.Method)

		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	domains := NewDomainsClient(internalhttp.NewClient(server.URL, nil), nil)

	err := domains.Delete(context.Background(), "domain-1")
	require.NoError(t, err)
}
