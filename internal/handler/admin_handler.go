package handler

import (
	"net/http"

	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/rs/zerolog"
)

type orderStatusRequest struct {
	Status model.OrderStatus `json:"status" validate:"required"`
}

// AdminHandler handles the admin order, user and product management endpoints.
type AdminHandler struct {
	admin  service.AdminService
	logger zerolog.Logger
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(admin service.AdminService, logger zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		admin:  admin,
		logger: logger.With().Str("handler", "admin").Logger(),
	}
}

// ListOrders handles GET /api/admin/orders.
func (h *AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	identity, err := caller(r)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	orders, err := h.admin.ListOrders(r.Context(), identity)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, orders)
}

// UpdateOrder handles PUT /api/admin/orders/{id}.
func (h *AdminHandler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
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

	var req orderStatusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	order, err := h.admin.UpdateOrderStatus(r.Context(), identity, id, req.Status)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// DeleteOrder handles DELETE /api/admin/orders/{id}.
func (h *AdminHandler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
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

	if err := h.admin.DeleteOrder(r.Context(), identity, id); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "Order removed"})
}

// ListUsers handles GET /api/admin/users.
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	identity, err := caller(r)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	users, err := h.admin.ListUsers(r.Context(), identity)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, users)
}

// CreateUser handles POST /api/admin/users.
func (h *AdminHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	identity, err := caller(r)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	var req model.CreateUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	user, err := h.admin.CreateUser(r.Context(), identity, &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// UpdateUser handles PUT /api/admin/users/{id}.
func (h *AdminHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
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

	var req model.UpdateUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	user, err := h.admin.UpdateUser(r.Context(), identity, id, &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// DeleteUser handles DELETE /api/admin/users/{id}.
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
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

	if err := h.admin.DeleteUser(r.Context(), identity, id); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "User deleted successfully"})
}

// ListProducts handles GET /api/admin/products.
func (h *AdminHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	identity, err := caller(r)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	products, err := h.admin.ListProducts(r.Context(), identity)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, products)
}
