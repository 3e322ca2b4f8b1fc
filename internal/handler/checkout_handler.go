package handler

import (
	"net/http"

	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// CheckoutHandler handles checkout session HTTP requests.
type CheckoutHandler struct {
	checkouts service.CheckoutService
	logger    zerolog.Logger
}

// NewCheckoutHandler creates a new checkout handler.
func NewCheckoutHandler(checkouts service.CheckoutService, logger zerolog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		checkouts: checkouts,
		logger:    logger.With().Str("handler", "checkout").Logger(),
	}
}

// Create handles POST /api/checkout.
func (h *CheckoutHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, err := caller(r)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	var req model.CheckoutRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	session, err := h.checkouts.Create(r.Context(), identity.UserID, &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, session)
}

// Pay handles PUT /api/checkout/{id}/pay.
func (h *CheckoutHandler) Pay(w http.ResponseWriter, r *http.Request) {
	id, err := h.ownedSession(r)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	var req model.PaymentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	session, err := h.checkouts.MarkPaid(r.Context(), id, &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, session)
}

// Finalize handles POST /api/checkout/{id}/finalize. A new order is answered with
// 201; a repeat call on a finalized session is answered with 200 and a message.
func (h *CheckoutHandler) Finalize(w http.ResponseWriter, r *http.Request) {
	id, err := h.ownedSession(r)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	result, err := h.checkouts.Finalize(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	if result.AlreadyFinalized {
		writeJSON(w, http.StatusOK, MessageResponse{Message: "Checkout already finalized"})
		return
	}

	writeJSON(w, http.StatusCreated, result.Order)
}

// ownedSession resolves the session in the path and checks the caller may act on it.
func (h *CheckoutHandler) ownedSession(r *http.Request) (uuid.UUID, error) {
	identity, err := caller(r)
	if err != nil {
		return uuid.Nil, err
	}

	id, err := pathID(r, "id")
	if err != nil {
		return uuid.Nil, err
	}

	session, err := h.checkouts.GetByID(r.Context(), id)
	if err != nil {
		return uuid.Nil, err
	}
	if !identity.CanAccess(session.UserID) {
		h.logger.Warn().
			Str("user_id", identity.UserID.String()).
			Str("checkout_id", id.String()).
			Msg("checkout access denied")
		return uuid.Nil, model.ErrNotOwner
	}

	return id, nil
}
