package fastfuels_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internalclient "github.com/fastfuels-io/fastfuels-client/internal/client"
	"github.com/fastfuels-io/fastfuels-client/pkg/fastfuels"
)

// quicfireAPI fakes the subset of the API the pipeline touches. Async
// resources report completed on their first status check.
type quicfireAPI struct {
	mu       sync.Mutex
	requests []string
}

func (a *quicfireAPI) record(r *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.requests = append(a.requests, r.Method+" "+r.URL.Path)
}

func (a *quicfireAPI) seen(entry string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, req := range a.requests {
		if req == entry {
			return true
		}
	}

	return false
}

func (a *quicfireAPI) handler(t *testing.T) http.Handler {
	t.Helper()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		a.record(r)

		w.Header().Set("Content-Type", "application/json")

		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/v1/domains":
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(fastfuels.Domain{ID: "domain-1", Name: "roi"})

		case r.URL.Path == "/download":
			w.Header().Set("Content-Type", "application/zip")
			_, _ = w.Write([]byte("quicfire-bundle"))

		case strings.Contains(r.URL.Path, "/exports/"):
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"status":    "completed",
				"resource":  "grids",
				"format":    "QUIC-Fire",
				"signedUrl": "http://" + r.Host + "/download",
			})

		case r.Method == http.MethodPost:
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(map[string]string{"status": "pending"})

		default:
			_ = json.NewEncoder(w).Encode(map[string]string{"status": "completed"})
		}
	})
}

func TestExportDomainToQuicFire(t *testing.T) {
	t.Parallel()

	api := &quicfireAPI{}

	server := httptest.NewServer(api.handler(t))
	defer server.Close()

	client, err := internalclient.New(&fastfuels.Config{
		APIEndpoint: server.URL,
		APIKey:      "test-key",
	})
	require.NoError(t, err)

	outputPath := filepath.Join(t.TempDir(), "roi_quicfire.zip")

	var stages []string

	export, err := fastfuels.ExportDomainToQuicFire(context.Background(), client, &fastfuels.CreateDomainRequest{
		Name: "roi",
		Type: "Polygon",
		Geometry: fastfuels.GeoJSON{
			"type":        "Polygon",
			"coordinates": []interface{}{},
		},
	}, outputPath, &fastfuels.QuicFireExportOptions{
		Wait:    &fastfuels.WaitOptions{Interval: time.Millisecond, Timeout: time.Second},
		OnStage: func(stage string) { stages = append(stages, stage) },
	})
	require.NoError(t, err)
	require.NotNil(t, export)
	assert.Equal(t, fastfuels.StatusCompleted, export.Status)
	assert.Equal(t, "grids", export.Target)

	data, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	assert.Equal(t, "quicfire-bundle", string(data))

	// Every pipeline stage hit the API.
	assert.True(t, api.seen("POST /v1/domains"))
	assert.True(t, api.seen("POST /v1/domains/domain-1/features/road"))
	assert.True(t, api.seen("POST /v1/domains/domain-1/features/water"))
	assert.True(t, api.seen("POST /v1/domains/domain-1/grids/topography"))
	assert.True(t, api.seen("POST /v1/domains/domain-1/grids/feature"))
	assert.True(t, api.seen("POST /v1/domains/domain-1/inventories/tree"))
	assert.True(t, api.seen("POST /v1/domains/domain-1/grids/surface"))
	assert.True(t, api.seen("POST /v1/domains/domain-1/grids/tree"))
	assert.True(t, api.seen("POST /v1/domains/domain-1/grids/exports/QUIC-Fire"))

	assert.NotEmpty(t, stages)
	assert.Equal(t, "creating domain from region of interest", stages[0])
}

func TestExportDomainToQuicFire_FailedResourceAborts(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/v1/domains":
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(fastfuels.Domain{ID: "domain-1"})

		case r.Method == http.MethodGet && strings.HasSuffix(r.URL.Path, "/features/road"):
			_ = json.NewEncoder(w).Encode(map[string]string{
				"status":       "failed",
				"statusDetail": "OSM extract unavailable",
			})

		case r.Method == http.MethodPost:
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(map[string]string{"status": "pending"})

		default:
			_ = json.NewEncoder(w).Encode(map[string]string{"status": "completed"})
		}
	}))
	defer server.Close()

	client, err := internalclient.New(&fastfuels.Config{
		APIEndpoint: server.URL,
		APIKey:      "test-key",
	})
	require.NoError(t, err)

	_, err = fastfuels.ExportDomainToQuicFire(context.Background(), client, &fastfuels.CreateDomainRequest{
		Name: "roi",
	}, filepath.Join(t.TempDir(), "out.zip"), &fastfuels.QuicFireExportOptions{
		Wait: &fastfuels.WaitOptions{Interval: time.Millisecond, Timeout: time.Second},
	})
	require.Error(t, err)
	assert.True(t, fastfuels.IsOperationFailed(err))
	assert.Contains(t, err.Error(), "OSM extract unavailable")
}
