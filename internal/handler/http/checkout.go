package http

import (
	"log/slog"
	"net/http"

	"github.com/htmw/2025Su-ByteSquad/internal/service"
)

// CheckoutHandler handles checkout submission endpoints.
type CheckoutHandler struct {
	checkout *service.CheckoutService
	carts    *service.CartService
	logger   *slog.Logger
}

// NewCheckoutHandler creates a new checkout HTTP handler.
func NewCheckoutHandler(checkoutSvc *service.CheckoutService, cartSvc *service.CartService, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		checkout: checkoutSvc,
		carts:    cartSvc,
		logger:   logger,
	}
}

// Submit handles POST /api/v1/checkout. It reads the user's current cart,
// submits the selected lines to the payment provider, and maps the classified
// outcome to an HTTP status.
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		writeBadRequest(w, "user id is required")
		return
	}

	cart, err := h.carts.GetCart(r.Context(), userID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	outcome, err := h.checkout.SubmitCheckout(r.Context(), userID, cart)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	switch outcome.Kind {
	case service.OutcomeFailed:
		writeJSON(w, http.StatusUnprocessableEntity, response{
			Error: &errorResponse{Code: "CHECKOUT_FAILED", Message: outcome.Message},
		})

	case service.OutcomeUnrecognized:
		writeJSON(w, http.StatusBadGateway, response{
			Error: &errorResponse{Code: "BAD_GATEWAY", Message: outcome.Message},
		})

	default:
		writeJSON(w, http.StatusOK, response{Data: outcome})
	}
}
