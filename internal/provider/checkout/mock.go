package checkout

import (
	"context"

	"github.com/google/uuid"
)

// MockProvider is a payment-session provider that always returns a redirect
// URL. It is intended for development and testing.
type MockProvider struct{}

// NewMockProvider creates a new mock payment-session provider.
func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

// Name returns the provider name.
func (p *MockProvider) Name() string {
	return "mock"
}

// CreateSession returns a successful session with a fake redirect URL.
func (p *MockProvider) CreateSession(_ context.Context, _ []LineItem) (*SessionResponse, error) {
	id := "mock_sess_" + uuid.New().String()
	return &SessionResponse{
		SessionID:  id,
		SessionURL: "https://checkout.example.com/pay/" + id,
	}, nil
}
