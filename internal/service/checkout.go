package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/htmw/2025Su-ByteSquad/internal/domain"
	"github.com/htmw/2025Su-ByteSquad/internal/event"
	"github.com/htmw/2025Su-ByteSquad/internal/provider/checkout"
	apperrors "github.com/htmw/2025Su-ByteSquad/pkg/errors"
)

// CheckoutOutcomeKind classifies the provider response.
type CheckoutOutcomeKind string

// Outcome kinds, in classification precedence order.
const (
	OutcomeFailed          CheckoutOutcomeKind = "failed"
	OutcomeRedirectURL     CheckoutOutcomeKind = "redirect_url"
	OutcomeOpaqueSessionID CheckoutOutcomeKind = "opaque_session_id"
	OutcomeUnrecognized    CheckoutOutcomeKind = "unrecognized"
)

// CheckoutOutcome is the classified result of a checkout submission.
type CheckoutOutcome struct {
	Kind        CheckoutOutcomeKind `json:"kind"`
	RedirectURL string              `json:"redirect_url,omitempty"`
	SessionID   string              `json:"session_id,omitempty"`
	Message     string              `json:"message,omitempty"`
}

// CheckoutService builds checkout requests from cart snapshots and submits
// them to the payment-session provider.
type CheckoutService struct {
	provider checkout.Provider
	producer *event.Producer
	logger   *slog.Logger
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(provider checkout.Provider, producer *event.Producer, logger *slog.Logger) *CheckoutService {
	return &CheckoutService{
		provider: provider,
		producer: producer,
		logger:   logger,
	}
}

// BuildCheckoutRequest converts the selected cart lines into provider line
// items, dropping lines that lack a price reference. An empty result is a
// validation failure surfaced before any network call is made.
func (s *CheckoutService) BuildCheckoutRequest(cart *domain.Cart) ([]checkout.LineItem, error) {
	if cart == nil {
		return nil, apperrors.InvalidInput("cart is required")
	}

	var items []checkout.LineItem
	for _, line := range cart.SelectedLines() {
		if line.PriceRef == "" {
			continue
		}
		items = append(items, checkout.LineItem{
			PriceRef: line.PriceRef,
			Quantity: line.Quantity,
		})
	}

	if len(items) == 0 {
		return nil, apperrors.InvalidInput("no valid items to checkout")
	}

	return items, nil
}

// SubmitCheckout sends the built request to the provider in a single attempt
// and classifies the response. Precedence: explicit failure status, then
// redirect URL, then opaque session ID, then unrecognized.
func (s *CheckoutService) SubmitCheckout(ctx context.Context, userID string, cart *domain.Cart) (*CheckoutOutcome, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}

	items, err := s.BuildCheckoutRequest(cart)
	if err != nil {
		return nil, err
	}

	resp, err := s.provider.CreateSession(ctx, items)
	if err != nil {
		return nil, fmt.Errorf("create checkout session: %w", err)
	}

	outcome := classifyCheckoutResponse(resp)

	if outcome.Kind == OutcomeRedirectURL || outcome.Kind == OutcomeOpaqueSessionID {
		data := event.CheckoutSessionCreatedData{
			UserID:     userID,
			SessionID:  resp.SessionID,
			SessionURL: resp.SessionURL,
			LineCount:  len(items),
		}
		if err := s.producer.PublishCheckoutSessionCreated(ctx, userID, data); err != nil {
			s.logger.ErrorContext(ctx, "failed to publish checkout.session_created event",
				slog.String("user_id", userID),
				slog.String("error", err.Error()),
			)
		}
	}

	s.logger.InfoContext(ctx, "checkout submitted",
		slog.String("user_id", userID),
		slog.String("outcome", string(outcome.Kind)),
		slog.Int("line_count", len(items)),
	)

	return outcome, nil
}

// classifyCheckoutResponse maps the raw provider response to an outcome.
func classifyCheckoutResponse(resp *checkout.SessionResponse) *CheckoutOutcome {
	switch {
	// Providers are not consistent about casing here ("failed" vs "Failed").
	case strings.EqualFold(resp.Status, "failed"):
		msg := resp.Message
		if msg == "" {
			msg = "checkout failed"
		}
		return &CheckoutOutcome{Kind: OutcomeFailed, Message: msg}

	case resp.SessionURL != "":
		return &CheckoutOutcome{Kind: OutcomeRedirectURL, RedirectURL: resp.SessionURL}

	case resp.SessionID != "":
		// A bare session ID means the provider expects an integration step
		// this service does not implement; surface it, not a silent success.
		return &CheckoutOutcome{
			Kind:      OutcomeOpaqueSessionID,
			SessionID: resp.SessionID,
			Message:   "checkout session created but requires additional integration",
		}

	default:
		return &CheckoutOutcome{Kind: OutcomeUnrecognized, Message: "unrecognized checkout response"}
	}
}
