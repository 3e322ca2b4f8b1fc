package handler

import (
	"net/http"

	"storefront/internal/service"

	"github.com/rs/zerolog"
)

type subscribeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// SubscriberHandler handles newsletter HTTP requests.
type SubscriberHandler struct {
	subscribers service.SubscriberService
	logger      zerolog.Logger
}

// NewSubscriberHandler creates a new subscriber handler.
func NewSubscriberHandler(subscribers service.SubscriberService, logger zerolog.Logger) *SubscriberHandler {
	return &SubscriberHandler{
		subscribers: subscribers,
		logger:      logger.With().Str("handler", "subscriber").Logger(),
	}
}

// Subscribe handles POST /api/subscribe.
func (h *SubscriberHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req subscribeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	if _, err := h.subscribers.Subscribe(r.Context(), req.Email); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, MessageResponse{Message: "Successfully subscribed to the newsletter"})
}
