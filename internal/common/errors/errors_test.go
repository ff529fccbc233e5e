// internal/common/errors/errors_test.go
package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"empty message is a client error", NewEmptyMessageError(), http.StatusBadRequest},
		{"invalid request is a client error", NewInvalidChatRequestError("bad json"), http.StatusBadRequest},
		{"catalog unavailable is a server error", NewCatalogUnavailableError(assert.AnError), http.StatusInternalServerError},
		{"catalog timeout is a server error", NewCatalogTimeoutError("category_list"), http.StatusInternalServerError},
		{"catalog query failure is a server error", NewCatalogQueryFailedError("product_info", assert.AnError), http.StatusInternalServerError},
		{"history read failure is a server error", NewHistoryReadFailedError("u1", assert.AnError), http.StatusInternalServerError},
		{"plain error is a server error", assert.AnError, http.StatusInternalServerError},
		{"wrapped standard error keeps its status", fmt.Errorf("resolve: %w", NewEmptyMessageError()), http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StatusFor(tt.err))
		})
	}
}

func TestWriteHTTP_ClientErrorKeepsDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteHTTP(rec, NewEmptyMessageError())

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, string(ErrCodeEmptyMessage), body.Code)
	assert.NotEqual(t, genericFailureMessage, body.Error)
}

func TestWriteHTTP_ServerErrorIsGeneric(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteHTTP(rec, NewCatalogUnavailableError(fmt.Errorf("dial tcp 10.0.0.5:9200: connection refused")))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, genericFailureMessage, body.Error)
	assert.Empty(t, body.Code)
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

func TestIsCode(t *testing.T) {
	err := NewCatalogUnavailableError(assert.AnError)

	assert.True(t, IsCode(err, ErrCodeCatalogUnavailable))
	assert.False(t, IsCode(err, ErrCodeEmptyMessage))
	assert.True(t, IsCode(fmt.Errorf("resolve: %w", err), ErrCodeCatalogUnavailable))
	assert.False(t, IsCode(assert.AnError, ErrCodeCatalogUnavailable))
	assert.False(t, IsCode(nil, ErrCodeCatalogUnavailable))
}

func TestStandardError_Error(t *testing.T) {
	err := NewEmptyMessageError()
	assert.Contains(t, err.Error(), string(ErrCodeEmptyMessage))
	assert.False(t, err.Retryable)
	assert.False(t, err.Timestamp.IsZero())
}
