package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	apperrors "github.com/htmw/2025Su-ByteSquad/pkg/errors"
)

// HTTPDoer is the interface for executing HTTP requests. Both
// httpclient.Client and httpclient.CircuitBreakerClient satisfy this.
type HTTPDoer interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

// HTTPProvider calls a real payment-session endpoint over HTTP.
type HTTPProvider struct {
	client     HTTPDoer
	sessionURL string
	apiKey     string
}

// NewHTTPProvider creates a provider that posts checkout sessions to sessionURL.
// The API key is optional; when set it is sent as a bearer token.
func NewHTTPProvider(client HTTPDoer, sessionURL, apiKey string) *HTTPProvider {
	return &HTTPProvider{
		client:     client,
		sessionURL: sessionURL,
		apiKey:     apiKey,
	}
}

// Name returns the provider name.
func (p *HTTPProvider) Name() string {
	return "stripe"
}

// createSessionRequest is the wire format posted to the session endpoint.
type createSessionRequest struct {
	Items []LineItem `json:"items"`
}

// CreateSession posts the line items to the payment-session endpoint once and
// decodes the raw response. Non-2xx responses with a decodable body still
// return the body so the caller can classify the failure; undecodable error
// responses are mapped through the shared downstream error translation.
func (p *HTTPProvider) CreateSession(ctx context.Context, items []LineItem) (*SessionResponse, error) {
	body, err := json.Marshal(createSessionRequest{Items: items})
	if err != nil {
		return nil, fmt.Errorf("marshal checkout request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.sessionURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create checkout request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.client.Do(ctx, req)
	if err != nil {
		return nil, apperrors.ServiceUnavailable("payment provider unreachable: " + err.Error())
	}
	defer func() { _ = resp.Body.Close() }()

	var session SessionResponse
	if decodeErr := json.NewDecoder(resp.Body).Decode(&session); decodeErr != nil {
		if resp.StatusCode >= 400 {
			return nil, apperrors.ServiceUnavailable(fmt.Sprintf("payment provider returned status %d", resp.StatusCode))
		}
		return nil, fmt.Errorf("decode checkout response: %w", decodeErr)
	}

	return &session, nil
}
