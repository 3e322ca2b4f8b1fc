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

// checkoutRepository implements the CheckoutRepository interface using PostgreSQL.
type checkoutRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCheckoutRepository creates a new PostgreSQL-backed checkout session repository.
func NewCheckoutRepository(pool *pgxpool.Pool, logger zerolog.Logger) CheckoutRepository {
	return &checkoutRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "checkout").Logger(),
	}
}

// Create inserts a new checkout session.
func (r *checkoutRepository) Create(ctx context.Context, session *model.CheckoutSession) error {
	doc, err := encodeDoc(session)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO checkout_sessions (id, user_id, is_finalized, doc, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err = r.pool.Exec(ctx, query,
		session.ID, session.UserID, session.IsFinalized, doc, session.CreatedAt, session.UpdatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("checkout_id", session.ID.String()).Msg("failed to create checkout session")
		return fmt.Errorf("failed to create checkout session: %w", err)
	}

	r.logger.Debug().Str("checkout_id", session.ID.String()).Msg("checkout session created successfully")
	return nil
}

// GetByID retrieves a checkout session.
func (r *checkoutRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.CheckoutSession, error) {
	query := `
		SELECT id, user_id, is_finalized, doc, created_at, updated_at
		FROM checkout_sessions
		WHERE id = $1
	`

	var (
		s           model.CheckoutSession
		sid, userID uuid.UUID
		finalized   bool
		raw         []byte
	)
	row := r.pool.QueryRow(ctx, query, id)
	if err := row.Scan(&sid, &userID, &finalized, &raw, &s.CreatedAt, &s.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("checkout_id", id.String()).Msg("checkout session not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("checkout_id", id.String()).Msg("failed to query checkout session")
		return nil, fmt.Errorf("failed to query checkout session: %w", err)
	}

	createdAt, updatedAt := s.CreatedAt, s.UpdatedAt
	if err := decodeDoc(raw, &s); err != nil {
		return nil, err
	}
	s.ID = sid
	s.UserID = userID
	s.IsFinalized = finalized
	s.CreatedAt = createdAt
	s.UpdatedAt = updatedAt

	return &s, nil
}

// Save overwrites a session that is not yet finalized.
func (r *checkoutRepository) Save(ctx context.Context, session *model.CheckoutSession) (bool, error) {
	doc, err := encodeDoc(session)
	if err != nil {
		return false, err
	}

	query := `
		UPDATE checkout_sessions
		SET doc = $2, updated_at = $3
		WHERE id = $1 AND NOT is_finalized
	`

	tag, err := r.pool.Exec(ctx, query, session.ID, doc, session.UpdatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("checkout_id", session.ID.String()).Msg("failed to save checkout session")
		return false, fmt.Errorf("failed to save checkout session: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

// MarkFinalized stores the finalized session within tx.
func (r *checkoutRepository) MarkFinalized(ctx context.Context, tx pgx.Tx, session *model.CheckoutSession) (bool, error) {
	doc, err := encodeDoc(session)
	if err != nil {
		return false, err
	}

	query := `
		UPDATE checkout_sessions
		SET is_finalized = TRUE, doc = $2, updated_at = $3
		WHERE id = $1 AND NOT is_finalized
	`

	tag, err := tx.Exec(ctx, query, session.ID, doc, session.UpdatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("checkout_id", session.ID.String()).Msg("failed to finalize checkout session")
		return false, fmt.Errorf("failed to finalize checkout session: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}
