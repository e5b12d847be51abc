package fastfuels_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastfuels-io/fastfuels-client/pkg/fastfuels"
)

func TestAPIError_Error(t *testing.T) {
	t.Parallel()

	err := &fastfuels.APIError{StatusCode: http.StatusNotFound, Detail: "domain not found"}
	assert.Equal(t, "domain not found (status: 404)", err.Error())

	err = &fastfuels.APIError{StatusCode: http.StatusInternalServerError}
	assert.Equal(t, "API error (status: 500)", err.Error())
}

func TestParseAPIError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		statusCode int
		body       string
		wantDetail string
	}{
		{
			name:       "detail object",
			statusCode: http.StatusNotFound,
			body:       `{"detail": "domain not found"}`,
			wantDetail: "domain not found",
		},
		{
			name:       "non-JSON body carried verbatim",
			statusCode: http.StatusBadGateway,
			body:       "upstream unavailable",
			wantDetail: "upstream unavailable",
		},
		{
			name:       "JSON without detail member",
			statusCode: http.StatusInternalServerError,
			body:       `{"message": "boom"}`,
			wantDetail: `{"message": "boom"}`,
		},
		{
			name:       "empty body",
			statusCode: http.StatusUnauthorized,
			body:       "",
			wantDetail: "",
		},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			apiErr := fastfuels.ParseAPIError(testCase.statusCode, []byte(testCase.body))
			require.NotNil(t, apiErr)
			assert.Equal(t, testCase.statusCode, apiErr.StatusCode)
			assert.Equal(t, testCase.wantDetail, apiErr.Detail)
		})
	}
}

func TestErrorPredicates(t *testing.T) {
	t.Parallel()

	notFound := fmt.Errorf("getting domain: %w", &fastfuels.APIError{StatusCode: http.StatusNotFound, Detail: "domain not found"})
	unauthorized := fmt.Errorf("listing domains: %w", &fastfuels.APIError{StatusCode: http.StatusUnauthorized, Detail: "invalid api key"})
	validation := fmt.Errorf("creating domain: %w", &fastfuels.APIError{StatusCode: http.StatusUnprocessableEntity, Detail: "geometry is invalid"})

	assert.True(t, fastfuels.IsNotFound(notFound))
	assert.False(t, fastfuels.IsNotFound(unauthorized))

	assert.True(t, fastfuels.IsUnauthorized(unauthorized))
	assert.False(t, fastfuels.IsUnauthorized(validation))

	assert.True(t, fastfuels.IsValidation(validation))
	assert.False(t, fastfuels.IsValidation(notFound))

	plain := errors.New("not an api error")
	assert.False(t, fastfuels.IsNotFound(plain))
	assert.False(t, fastfuels.IsUnauthorized(plain))
	assert.False(t, fastfuels.IsValidation(plain))
}

func TestOperationFailedError_Error(t *testing.T) {
	t.Parallel()

	err := &fastfuels.OperationFailedError{
		Status: fastfuels.StatusFailed,
		Detail: "LANDFIRE tile missing",
	}
	assert.Equal(t, `operation finished with status "failed": LANDFIRE tile missing`, err.Error())

	err = &fastfuels.OperationFailedError{Status: fastfuels.StatusFailed}
	assert.Equal(t, `operation finished with status "failed" and no error details available`, err.Error())
}

func TestWaitTimeoutError_Error(t *testing.T) {
	t.Parallel()

	err := &fastfuels.WaitTimeoutError{
		LastStatus: fastfuels.StatusRunning,
		Elapsed:    1500 * time.Millisecond,
		Polls:      3,
	}
	assert.Equal(t, `timed out after 1.5s waiting for completion (last status: "running", polls: 3)`, err.Error())
}

func TestStatus(t *testing.T) {
	t.Parallel()

	assert.True(t, fastfuels.StatusCompleted.Terminal())
	assert.True(t, fastfuels.StatusFailed.Terminal())
	assert.True(t, fastfuels.StatusExpired.Terminal())
	assert.False(t, fastfuels.StatusPending.Terminal())
	assert.False(t, fastfuels.StatusQueued.Terminal())
	assert.False(t, fastfuels.StatusRunning.Terminal())

	assert.True(t, fastfuels.StatusCompleted.Succeeded())
	assert.False(t, fastfuels.StatusFailed.Succeeded())
	assert.False(t, fastfuels.StatusExpired.Succeeded())
	assert.False(t, fastfuels.StatusRunning.Succeeded())

	assert.Equal(t, "completed", fastfuels.StatusCompleted.String())
}
