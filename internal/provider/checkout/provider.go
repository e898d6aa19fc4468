// Package checkout contains the outbound adapter for the external
// payment-session provider.
package checkout

import "context"

// LineItem is a single priced line submitted to the payment provider. The
// "price" field carries the provider's opaque price reference, not an amount.
type LineItem struct {
	PriceRef string `json:"price"`
	Quantity int    `json:"quantity"`
}

// SessionResponse is the raw response shape returned by the payment-session
// endpoint. Any subset of the fields may be present.
type SessionResponse struct {
	Status     string `json:"status,omitempty"`
	Message    string `json:"message,omitempty"`
	SessionID  string `json:"sessionId,omitempty"`
	SessionURL string `json:"sessionUrl,omitempty"`
}

// Provider defines the interface for payment-session provider integrations.
type Provider interface {
	// Name returns the provider name (e.g., "mock", "stripe").
	Name() string

	// CreateSession submits the line items to the provider and returns its
	// raw response. Implementations issue exactly one attempt; a failed
	// call is surfaced to the caller, never retried.
	CreateSession(ctx context.Context, items []LineItem) (*SessionResponse, error)
}
