package handler

import (
	"net/http"

	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/rs/zerolog"
)

// UserHandler handles account HTTP requests.
type UserHandler struct {
	users  service.UserService
	logger zerolog.Logger
}

// NewUserHandler creates a new user handler.
func NewUserHandler(users service.UserService, logger zerolog.Logger) *UserHandler {
	return &UserHandler{
		users:  users,
		logger: logger.With().Str("handler", "user").Logger(),
	}
}

// Register handles POST /api/users/register.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	resp, err := h.users.Register(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// Login handles POST /api/users/login.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	resp, err := h.users.Login(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Profile handles GET /api/users/profile.
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	identity, err := caller(r)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	user, err := h.users.Profile(r.Context(), identity.UserID)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, user)
}
