package google

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testToken = "test-access-token"

// newTestClient builds a client with all three base URLs pointed at the given
// test server.
func newTestClient(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()

	return NewClient(srv.URL, srv.URL+"/upload", srv.URL, srv.Client(), slog.Default())
}

func TestDo_SetsBearerAndUserAgent(t *testing.T) {
	var gotAuth, gotUA string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte("ok"))
	}))
	t.Cleanup(srv.Close)

	c := newTestClient(t, srv)

	body, err := c.text(context.Background(), http.MethodGet, srv.URL+"/x", testToken, "", nil)
	require.NoError(t, err)

	assert.Equal(t, "ok", body)
	assert.Equal(t, "Bearer "+testToken, gotAuth)
	assert.Equal(t, userAgent, gotUA)
}

func TestDo_ClassifiesRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "invalid_grant", http.StatusUnauthorized)
	}))
	t.Cleanup(srv.Close)

	c := newTestClient(t, srv)

	_, err := c.text(context.Background(), http.MethodGet, srv.URL+"/x", testToken, "", nil)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrUnauthorized)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Contains(t, apiErr.Message, "invalid_grant")
}

func TestDo_ServerErrorSentinel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "backend unavailable", http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	c := newTestClient(t, srv)

	_, err := c.text(context.Background(), http.MethodGet, srv.URL+"/x", testToken, "", nil)
	require.ErrorIs(t, err, ErrServerError)
}

func TestDo_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // connection refused from here on

	c := NewClient(srv.URL, srv.URL, srv.URL, nil, slog.Default())

	_, err := c.text(context.Background(), http.MethodGet, srv.URL+"/x", testToken, "", nil)
	require.Error(t, err)

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr), "transport failures must not be APIErrors")
}

func TestClassifyStatus(t *testing.T) {
	assert.ErrorIs(t, classifyStatus(http.StatusBadRequest), ErrBadRequest)
	assert.ErrorIs(t, classifyStatus(http.StatusForbidden), ErrForbidden)
	assert.ErrorIs(t, classifyStatus(http.StatusNotFound), ErrNotFound)
	assert.ErrorIs(t, classifyStatus(http.StatusTooManyRequests), ErrThrottled)
	assert.ErrorIs(t, classifyStatus(http.StatusInternalServerError), ErrServerError)
	assert.NoError(t, classifyStatus(http.StatusOK))
}
