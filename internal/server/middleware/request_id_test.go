package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureID(t *testing.T, header string) (string, *httptest.ResponseRecorder) {
	t.Helper()
	var seen string
	handler := RequestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		id, ok := RequestIDFromContext(r.Context())
		require.True(t, ok)
		seen = id
	}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	if header != "" {
		req.Header.Set(RequestIDHeader, header)
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return seen, w
}

func TestRequestID_GeneratesUUID(t *testing.T) {
	id, w := captureID(t, "")

	_, err := uuid.Parse(id)
	assert.NoError(t, err)
	assert.Equal(t, id, w.Header().Get(RequestIDHeader))
}

func TestRequestID_ReusesClientID(t *testing.T) {
	id, w := captureID(t, "client-req.42")

	assert.Equal(t, "client-req.42", id)
	assert.Equal(t, "client-req.42", w.Header().Get(RequestIDHeader))
}

func TestRequestID_RejectsMalformedClientID(t *testing.T) {
	id, _ := captureID(t, "bad id\nwith newline")

	assert.NotEqual(t, "bad id\nwith newline", id)
	_, err := uuid.Parse(id)
	assert.NoError(t, err)
}

func TestRequestIDFromContext_Missing(t *testing.T) {
	_, ok := RequestIDFromContext(context.Background())
	assert.False(t, ok)

	_, ok = RequestIDFromContext(WithRequestID(context.Background(), ""))
	assert.False(t, ok)
}
