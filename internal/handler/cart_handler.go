package handler

import (
	"net/http"

	"storefront/internal/auth"
	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// cartRequest is the body of the cart mutation endpoints. UserID is accepted for
// compatibility with clients that send it; it must match the caller.
type cartRequest struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
	Quantity  int       `json:"quantity"`
	Size      string    `json:"size"`
	Color     string    `json:"color"`
	GuestID   string    `json:"guestId"`
	UserID    string    `json:"userId"`
}

func (c cartRequest) key() model.LineKey {
	return model.LineKey{ProductID: c.ProductID, Size: c.Size, Color: c.Color}
}

type mergeRequest struct {
	GuestID string `json:"guestId" validate:"required"`
}

// CartHandler handles cart HTTP requests.
type CartHandler struct {
	carts  service.CartService
	logger zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(carts service.CartService, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		carts:  carts,
		logger: logger.With().Str("handler", "cart").Logger(),
	}
}

// resolveOwner picks the cart owner for a request. An authenticated caller owns
// their user cart; a userId from the client is honoured only when it names the
// caller or the caller is an admin. Anonymous callers are limited to guest carts.
func resolveOwner(r *http.Request, userID, guestID string) (model.CartOwner, error) {
	owner := model.CartOwner{GuestID: guestID}
	identity, authenticated := auth.IdentityFrom(r.Context())

	if userID != "" {
		id, err := uuid.Parse(userID)
		if err != nil {
			return owner, model.InvalidInput("invalid userId")
		}
		if !authenticated {
			return owner, model.ErrUnauthorised
		}
		if !identity.CanAccess(id) {
			return owner, model.ErrNotOwner
		}
		owner.UserID = id
		return owner, nil
	}

	if authenticated {
		owner.UserID = identity.UserID
	}
	return owner, nil
}

// Add handles POST /api/cart.
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req cartRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	owner, err := resolveOwner(r, req.UserID, req.GuestID)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	cart, err := h.carts.AddItem(r.Context(), owner, req.ProductID, req.Quantity, req.Size, req.Color)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, cart)
}

// Update handles PUT /api/cart. A quantity of zero removes the line.
func (h *CartHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req cartRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	owner, err := resolveOwner(r, req.UserID, req.GuestID)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	cart, err := h.carts.SetItemQuantity(r.Context(), owner, req.key(), req.Quantity)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, cart)
}

// Remove handles DELETE /api/cart.
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	var req cartRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	owner, err := resolveOwner(r, req.UserID, req.GuestID)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	cart, err := h.carts.RemoveItem(r.Context(), owner, req.key())
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, cart)
}

// Get handles GET /api/cart?guestId=&userId=.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	owner, err := resolveOwner(r, q.Get("userId"), q.Get("guestId"))
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	cart, err := h.carts.GetCart(r.Context(), owner)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, cart)
}

// Merge handles POST /api/cart/merge. The target is always the caller's cart.
func (h *CartHandler) Merge(w http.ResponseWriter, r *http.Request) {
	identity, err := caller(r)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	var req mergeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	cart, err := h.carts.Merge(r.Context(), req.GuestID, identity.UserID)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, cart)
}
