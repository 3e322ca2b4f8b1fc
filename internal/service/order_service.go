package service

import (
	"context"
	"time"

	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// orderService implements OrderService.
type orderService struct {
	orders repository.OrderRepository
	logger zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(orders repository.OrderRepository, logger zerolog.Logger) OrderService {
	return &orderService{
		orders: orders,
		logger: logger.With().Str("service", "order").Logger(),
	}
}

// ListForUser retrieves a user's orders, newest first.
func (s *orderService) ListForUser(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	orders, err := s.orders.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to list user orders")
		return nil, model.Unavailable(err)
	}
	return orders, nil
}

// GetByID retrieves an order.
func (s *orderService) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to get order")
		return nil, model.Unavailable(err)
	}
	if order == nil {
		s.logger.Debug().Str("order_id", id.String()).Msg("order not found")
		return nil, model.ErrOrderNotFound
	}
	return order, nil
}

// ListAll retrieves every order.
func (s *orderService) ListAll(ctx context.Context) ([]model.Order, error) {
	orders, err := s.orders.ListAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list orders")
		return nil, model.Unavailable(err)
	}
	return orders, nil
}

// UpdateStatus moves an order to status. Delivered stamps deliveredAt; other
// statuses leave it as it was.
func (s *orderService) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) (*model.Order, error) {
	if !status.Valid() {
		return nil, model.ErrInvalidOrderStatus
	}

	order, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	order.ApplyStatus(status, time.Now().UTC())

	updated, err := s.orders.Update(ctx, order)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to update order")
		return nil, model.Unavailable(err)
	}
	if !updated {
		return nil, model.ErrOrderNotFound
	}

	s.logger.Info().
		Str("order_id", id.String()).
		Str("status", string(status)).
		Msg("order status updated")

	return order, nil
}

// Delete removes an order.
func (s *orderService) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.orders.Delete(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to delete order")
		return model.Unavailable(err)
	}
	if !deleted {
		return model.ErrOrderNotFound
	}

	s.logger.Info().Str("order_id", id.String()).Msg("order deleted")
	return nil
}
