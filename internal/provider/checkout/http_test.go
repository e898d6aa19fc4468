package checkout

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/htmw/2025Su-ByteSquad/pkg/errors"
	"github.com/htmw/2025Su-ByteSquad/pkg/httpclient"
)

func newTestProvider(t *testing.T, handler http.HandlerFunc) *HTTPProvider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := httpclient.New(httpclient.SingleAttemptConfig(5 * time.Second))
	return NewHTTPProvider(client, srv.URL, "sk_test_123")
}

func TestHTTPProvider_CreateSession_RedirectURL(t *testing.T) {
	var gotBody createSessionRequest
	var gotAuth string

	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(SessionResponse{
			SessionID:  "cs_123",
			SessionURL: "https://pay.example.com/cs_123",
		})
	})

	items := []LineItem{{PriceRef: "price_abc", Quantity: 2}}
	resp, err := p.CreateSession(context.Background(), items)
	require.NoError(t, err)

	assert.Equal(t, "Bearer sk_test_123", gotAuth)
	require.Len(t, gotBody.Items, 1)
	assert.Equal(t, "price_abc", gotBody.Items[0].PriceRef)
	assert.Equal(t, 2, gotBody.Items[0].Quantity)

	assert.Equal(t, "cs_123", resp.SessionID)
	assert.Equal(t, "https://pay.example.com/cs_123", resp.SessionURL)
}

func TestHTTPProvider_CreateSession_FailureStatusBody(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(SessionResponse{
			Status:  "failed",
			Message: "invalid price reference",
		})
	})

	resp, err := p.CreateSession(context.Background(), []LineItem{{PriceRef: "bad", Quantity: 1}})
	require.NoError(t, err)
	assert.Equal(t, "failed", resp.Status)
	assert.Equal(t, "invalid price reference", resp.Message)
}

func TestHTTPProvider_CreateSession_UndecodableErrorResponse(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	})

	resp, err := p.CreateSession(context.Background(), []LineItem{{PriceRef: "p", Quantity: 1}})
	assert.Nil(t, resp)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrServiceUnavail)
}

func TestHTTPProvider_CreateSession_Unreachable(t *testing.T) {
	client := httpclient.New(httpclient.SingleAttemptConfig(time.Second))
	p := NewHTTPProvider(client, "http://127.0.0.1:1", "")

	resp, err := p.CreateSession(context.Background(), []LineItem{{PriceRef: "p", Quantity: 1}})
	assert.Nil(t, resp)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrServiceUnavail)
}

// newBreakerProvider mirrors the production wiring: the HTTP provider runs
// over a circuit-breaking client rather than the bare single-attempt one.
func newBreakerProvider(t *testing.T, handler http.HandlerFunc, minRequests uint32) *HTTPProvider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := httpclient.NewCircuitBreakerClient(
		httpclient.New(httpclient.SingleAttemptConfig(5*time.Second)),
		httpclient.CircuitBreakerConfig{
			Name:         "checkout-" + t.Name(),
			MaxRequests:  1,
			Interval:     time.Minute,
			Timeout:      time.Minute,
			FailureRatio: 0.5,
			MinRequests:  minRequests,
		},
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	return NewHTTPProvider(client, srv.URL, "sk_test_123")
}

func TestHTTPProvider_CreateSession_ThroughCircuitBreaker(t *testing.T) {
	p := newBreakerProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(SessionResponse{
			SessionID:  "cs_456",
			SessionURL: "https://pay.example.com/cs_456",
		})
	}, 5)

	resp, err := p.CreateSession(context.Background(), []LineItem{{PriceRef: "price_abc", Quantity: 1}})
	require.NoError(t, err)
	assert.Equal(t, "cs_456", resp.SessionID)
}

func TestHTTPProvider_CreateSession_CircuitOpensAfterServerErrors(t *testing.T) {
	p := newBreakerProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("boom"))
	}, 2)

	items := []LineItem{{PriceRef: "price_abc", Quantity: 1}}
	for i := 0; i < 2; i++ {
		_, err := p.CreateSession(context.Background(), items)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrServiceUnavail)
	}

	// The breaker is open now; the request is rejected before reaching the wire.
	resp, err := p.CreateSession(context.Background(), items)
	assert.Nil(t, resp)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrServiceUnavail)
	assert.Contains(t, err.Error(), "circuit breaker is open")
}

func TestMockProvider_CreateSession(t *testing.T) {
	p := NewMockProvider()
	resp, err := p.CreateSession(context.Background(), nil)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.SessionID)
	assert.Contains(t, resp.SessionURL, resp.SessionID)
}
