package handler

import (
	"net/http"

	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/rs/zerolog"
)

// OrderHandler handles shopper-facing order HTTP requests.
type OrderHandler struct {
	orders service.OrderService
	logger zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(orders service.OrderService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		orders: orders,
		logger: logger.With().Str("handler", "order").Logger(),
	}
}

// MyOrders handles GET /api/orders/my-orders.
func (h *OrderHandler) MyOrders(w http.ResponseWriter, r *http.Request) {
	identity, err := caller(r)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	orders, err := h.orders.ListForUser(r.Context(), identity.UserID)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, orders)
}

// GetByID handles GET /api/orders/{id}. Only the owner or an admin may read it.
func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	identity, err := caller(r)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	order, err := h.orders.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	if !identity.CanAccess(order.UserID) {
		writeServiceError(w, model.ErrNotOwner, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}
