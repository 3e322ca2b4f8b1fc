package repository

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

type subscriberRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewSubscriberRepository creates a new PostgreSQL-backed subscriber repository.
func NewSubscriberRepository(pool *pgxpool.Pool, logger zerolog.Logger) SubscriberRepository {
	return &subscriberRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "subscriber").Logger(),
	}
}

func (r *subscriberRepository) Create(ctx context.Context, s *model.Subscriber) error {
	query := `INSERT INTO subscribers (id, email, subscribed_at) VALUES ($1, $2, $3)`

	if _, err := r.pool.Exec(ctx, query, s.ID, s.Email, s.SubscribedAt); err != nil {
		if isUniqueViolation(err) {
			return model.ErrSubscriberExists
		}
		r.logger.Error().Err(err).Msg("failed to create subscriber")
		return fmt.Errorf("failed to create subscriber: %w", err)
	}

	return nil
}

func (r *subscriberRepository) GetByEmail(ctx context.Context, email string) (*model.Subscriber, error) {
	query := `SELECT id, email, subscribed_at FROM subscribers WHERE email = $1`

	var s model.Subscriber
	if err := r.pool.QueryRow(ctx, query, email).Scan(&s.ID, &s.Email, &s.SubscribedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Msg("failed to query subscriber")
		return nil, fmt.Errorf("failed to query subscriber: %w", err)
	}

	return &s, nil
}
