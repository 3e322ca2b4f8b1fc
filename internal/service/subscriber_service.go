package service

import (
	"context"
	"time"

	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type subscriberService struct {
	subscribers repository.SubscriberRepository
	logger      zerolog.Logger
}

// NewSubscriberService creates a new newsletter subscription service.
func NewSubscriberService(subscribers repository.SubscriberRepository, logger zerolog.Logger) SubscriberService {
	return &subscriberService{
		subscribers: subscribers,
		logger:      logger.With().Str("service", "subscriber").Logger(),
	}
}

func (s *subscriberService) Subscribe(ctx context.Context, email string) (*model.Subscriber, error) {
	email = model.NormalizeEmail(email)
	if email == "" {
		return nil, model.InvalidInput("email is required")
	}

	existing, err := s.subscribers.GetByEmail(ctx, email)
	if err != nil {
		return nil, model.Unavailable(err)
	}
	if existing != nil {
		return nil, model.ErrSubscriberExists
	}

	sub := &model.Subscriber{
		ID:           uuid.New(),
		Email:        email,
		SubscribedAt: time.Now().UTC(),
	}
	if err := s.subscribers.Create(ctx, sub); err != nil {
		if model.KindOf(err) != 0 {
			return nil, err
		}
		s.logger.Error().Err(err).Msg("failed to create subscriber")
		return nil, model.Unavailable(err)
	}

	s.logger.Info().Str("subscriber_id", sub.ID.String()).Msg("newsletter subscription created")
	return sub, nil
}
