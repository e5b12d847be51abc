package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastfuels-io/fastfuels-client/internal/auth"
	internalhttp "github.com/fastfuels-io/fastfuels-client/internal/http"
	"github.com/fastfuels-io/fastfuels-client/pkg/fastfuels"
)

type recordingLogger struct {
	mu       sync.Mutex
	messages []string
}

func (l *recordingLogger) log(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.messages = append(l.messages, msg)
}

func (l *recordingLogger) Debug(msg string, _ map[string]interface{}) { l.log(msg) }
func (l *recordingLogger) Info(msg string, _ map[string]interface{})  { l.log(msg) }
func (l *recordingLogger) Warn(msg string, _ map[string]interface{})  { l.log(msg) }
func (l *recordingLogger) Error(msg string, _ map[string]interface{}) { l.log(msg) }

func (l *recordingLogger) has(msg string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, m := range l.messages {
		if m == msg {
			return true
		}
	}

	return false
}

func TestClient_Get(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		assert.Equal(t, nethttp.MethodGet, r.Method)
		assert.Equal(t, "/v1/domains/abc", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "secret-key", r.Header.Get("api-key"))
		assert.NotEmpty(t, r.Header.Get("X-Request-Id"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "abc"})
	}))
	defer server.Close()

	client := internalhttp.NewClient(server.URL, auth.NewStaticKeyProvider("secret-key"))

	resp, err := client.Get(context.Background(), "/v1/domains/abc", nil)
	require.NoError(t, err)
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"id": "abc"}`, string(resp.Body))
}

func TestClient_GetWithQuery(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "50", r.URL.Query().Get("size"))

		_ = json.NewEncoder(w).Encode(map[string]interface{}{"domains": []string{}})
	}))
	defer server.Close()

	client := internalhttp.NewClient(server.URL, nil)

	query := url.Values{}
	query.Set("page", "2")
	query.Set("size", "50")

	_, err := client.Get(context.Background(), "/v1/domains", query)
	require.NoError(t, err)
}

func TestClient_PostMarshalsBody(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		assert.Equal(t, nethttp.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string

		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "test-domain", body["name"])

		w.WriteHeader(nethttp.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "new"})
	}))
	defer server.Close()

	client := internalhttp.NewClient(server.URL, nil)

	resp, err := client.Post(context.Background(), "/v1/domains", map[string]string{"name": "test-domain"})
	require.NoError(t, err)
	assert.Equal(t, nethttp.StatusCreated, resp.StatusCode)
}

func TestClient_APIErrorParsing(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(nethttp.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "domain not found"})
	}))
	defer server.Close()

	client := internalhttp.NewClient(server.URL, nil)

	resp, err := client.Get(context.Background(), "/v1/domains/missing", nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, nethttp.StatusNotFound, resp.StatusCode)

	assert.True(t, fastfuels.IsNotFound(err))
	assert.Contains(t, err.Error(), "domain not found")
}

func TestClient_RetriesServerErrors(t *testing.T) {
	t.Parallel()

	var attempts atomic.Int32

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if attempts.Add(1) < 3 {
			w.WriteHeader(nethttp.StatusBadGateway)

			return
		}

		_ = json.NewEncoder(w).Encode(map[string]string{"id": "abc"})
	}))
	defer server.Close()

	client := internalhttp.NewClient(server.URL, nil,
		internalhttp.WithRetryConfig(5, time.Millisecond, 5*time.Millisecond))

	resp, err := client.Get(context.Background(), "/v1/domains/abc", nil)
	require.NoError(t, err)
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Equal(t, int32(3), attempts.Load())
}

func TestClient_DoesNotRetryClientErrors(t *testing.T) {
	t.Parallel()

	var attempts atomic.Int32

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		attempts.Add(1)
		w.WriteHeader(nethttp.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "geometry is invalid"})
	}))
	defer server.Close()

	client := internalhttp.NewClient(server.URL, nil,
		internalhttp.WithRetryConfig(5, time.Millisecond, 5*time.Millisecond))

	_, err := client.Post(context.Background(), "/v1/domains", map[string]string{})
	require.Error(t, err)
	assert.True(t, fastfuels.IsValidation(err))
	assert.Equal(t, int32(1), attempts.Load())
}

func TestClient_DebugLogging(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "abc"})
	}))
	defer server.Close()

	logger := &recordingLogger{}
	client := internalhttp.NewClient(server.URL, nil,
		internalhttp.WithLogger(logger),
		internalhttp.WithDebug(true))

	_, err := client.Get(context.Background(), "/v1/domains/abc", nil)
	require.NoError(t, err)
	assert.True(t, logger.has("HTTP Request"))
	assert.True(t, logger.has("HTTP Response"))
}

func TestClient_UserAgent(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		assert.Equal(t, "fastfuels-cli/1.0", r.Header.Get("User-Agent"))

		_ = json.NewEncoder(w).Encode(map[string]string{})
	}))
	defer server.Close()

	client := internalhttp.NewClient(server.URL, nil,
		internalhttp.WithUserAgent("fastfuels-cli/1.0"))

	_, err := client.Get(context.Background(), "/v1/domains", nil)
	require.NoError(t, err)
}

func TestClient_Download(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		assert.Equal(t, "/artifact", r.URL.Path)

		// Signed URLs carry their own auth; the api-key header must not leak.
		assert.Empty(t, r.Header.Get("api-key"))

		_, _ = w.Write([]byte("artifact-bytes"))
	}))
	defer server.Close()

	client := internalhttp.NewClient(server.URL, auth.NewStaticKeyProvider("secret-key"))

	var buf bytes.Buffer

	written, err := client.Download(context.Background(), server.URL+"/artifact", &buf)
	require.NoError(t, err)
	assert.Equal(t, int64(len("artifact-bytes")), written)
	assert.Equal(t, "artifact-bytes", buf.String())
}

func TestClient_DownloadError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.WriteHeader(nethttp.StatusForbidden)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "signed URL expired"})
	}))
	defer server.Close()

	client := internalhttp.NewClient(server.URL, nil)

	var buf bytes.Buffer

	_, err := client.Download(context.Background(), server.URL+"/artifact", &buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "signed URL expired")
}
