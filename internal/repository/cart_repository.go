package repository

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// cartRepository implements the CartRepository interface using a PostgreSQL JSONB document table.
type cartRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCartRepository creates a new PostgreSQL-backed cart repository.
func NewCartRepository(pool *pgxpool.Pool, logger zerolog.Logger) CartRepository {
	return &cartRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "cart").Logger(),
	}
}

// cartDoc is the JSONB body of a cart row. Owner and timestamps live in columns.
type cartDoc struct {
	Products   []model.CartItem `json:"products"`
	TotalPrice string           `json:"totalPrice"`
}

func newCartDoc(cart *model.Cart) cartDoc {
	products := cart.Products
	if products == nil {
		products = []model.CartItem{}
	}
	return cartDoc{Products: products, TotalPrice: cart.TotalPrice.String()}
}

func ownerColumns(cart *model.Cart) (*uuid.UUID, *string) {
	var guestID *string
	if cart.GuestID != "" {
		g := cart.GuestID
		guestID = &g
	}
	return cart.UserID, guestID
}

func (r *cartRepository) findOne(ctx context.Context, where string, arg any) (*model.Cart, error) {
	query := `
		SELECT id, user_id, guest_id, doc, created_at, updated_at
		FROM carts
		WHERE ` + where

	var (
		cart    model.Cart
		guestID *string
		raw     []byte
	)
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&cart.ID,
		&cart.UserID,
		&guestID,
		&raw,
		&cart.CreatedAt,
		&cart.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Msg("failed to query cart")
		return nil, fmt.Errorf("failed to query cart: %w", err)
	}

	var doc cartDoc
	if err := decodeDoc(raw, &doc); err != nil {
		r.logger.Error().Err(err).Str("cart_id", cart.ID.String()).Msg("failed to decode cart")
		return nil, err
	}

	if guestID != nil {
		cart.GuestID = *guestID
	}
	cart.Products = doc.Products
	cart.Recalculate()

	return &cart, nil
}

// FindByUser retrieves the cart owned by a user.
func (r *cartRepository) FindByUser(ctx context.Context, userID uuid.UUID) (*model.Cart, error) {
	return r.findOne(ctx, "user_id = $1", userID)
}

// FindByGuest retrieves the cart owned by a guest token.
func (r *cartRepository) FindByGuest(ctx context.Context, guestID string) (*model.Cart, error) {
	return r.findOne(ctx, "guest_id = $1", guestID)
}

// Create inserts a new cart.
func (r *cartRepository) Create(ctx context.Context, cart *model.Cart) error {
	doc, err := encodeDoc(newCartDoc(cart))
	if err != nil {
		return err
	}
	userID, guestID := ownerColumns(cart)

	query := `
		INSERT INTO carts (id, user_id, guest_id, doc, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	if _, err := r.pool.Exec(ctx, query, cart.ID, userID, guestID, doc, cart.CreatedAt, cart.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return model.ErrCartExists
		}
		r.logger.Error().Err(err).Str("cart_id", cart.ID.String()).Msg("failed to create cart")
		return fmt.Errorf("failed to create cart: %w", err)
	}

	r.logger.Debug().Str("cart_id", cart.ID.String()).Msg("cart created successfully")
	return nil
}

// Save overwrites a cart's owner and lines.
func (r *cartRepository) Save(ctx context.Context, cart *model.Cart) error {
	doc, err := encodeDoc(newCartDoc(cart))
	if err != nil {
		return err
	}
	userID, guestID := ownerColumns(cart)

	query := `
		UPDATE carts
		SET user_id = $2, guest_id = $3, doc = $4, updated_at = $5
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, cart.ID, userID, guestID, doc, cart.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrCartExists
		}
		r.logger.Error().Err(err).Str("cart_id", cart.ID.String()).Msg("failed to save cart")
		return fmt.Errorf("failed to save cart: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCartNotFound
	}

	return nil
}

// Delete removes a cart by ID.
func (r *cartRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM carts WHERE id = $1`, id); err != nil {
		r.logger.Error().Err(err).Str("cart_id", id.String()).Msg("failed to delete cart")
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	return nil
}

// DeleteByUser removes the cart owned by a user.
func (r *cartRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM carts WHERE user_id = $1`, userID); err != nil {
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to delete user cart")
		return fmt.Errorf("failed to delete user cart: %w", err)
	}
	return nil
}

