package service

import (
	"context"
	"time"

	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// checkoutService implements CheckoutService.
type checkoutService struct {
	sessions repository.CheckoutRepository
	orders   repository.OrderRepository
	carts    repository.CartRepository
	logger   zerolog.Logger
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(
	sessions repository.CheckoutRepository,
	orders repository.OrderRepository,
	carts repository.CartRepository,
	logger zerolog.Logger,
) CheckoutService {
	return &checkoutService{
		sessions: sessions,
		orders:   orders,
		carts:    carts,
		logger:   logger.With().Str("service", "checkout").Logger(),
	}
}

// Create opens a pending session. The client-supplied total is stored as given.
func (s *checkoutService) Create(ctx context.Context, userID uuid.UUID, req *model.CheckoutRequest) (*model.CheckoutSession, error) {
	if req == nil || len(req.CheckoutItems) == 0 {
		return nil, model.ErrNoCheckoutItems
	}

	items := make([]model.LineItem, len(req.CheckoutItems))
	copy(items, req.CheckoutItems)

	now := time.Now().UTC()
	session := &model.CheckoutSession{
		ID:              uuid.New(),
		UserID:          userID,
		CheckoutItems:   items,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		TotalPrice:      req.TotalPrice,
		PaymentStatus:   model.PaymentStatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to create checkout session")
		return nil, model.Unavailable(err)
	}

	s.logger.Info().
		Str("checkout_id", session.ID.String()).
		Str("user_id", userID.String()).
		Int("item_count", len(items)).
		Msg("checkout session created")

	return session, nil
}

// GetByID retrieves a session.
func (s *checkoutService) GetByID(ctx context.Context, id uuid.UUID) (*model.CheckoutSession, error) {
	session, err := s.sessions.GetByID(ctx, id)
	if err != nil {
		return nil, model.Unavailable(err)
	}
	if session == nil {
		return nil, model.ErrCheckoutNotFound
	}
	return session, nil
}

// MarkPaid records a successful payment. Repeating it re-applies the status and
// details; paidAt keeps the first payment time.
func (s *checkoutService) MarkPaid(ctx context.Context, id uuid.UUID, req *model.PaymentRequest) (*model.CheckoutSession, error) {
	session, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req == nil || req.PaymentStatus != model.PaymentStatusPaid {
		return nil, model.ErrInvalidPayment
	}
	if session.IsFinalized {
		return nil, model.ErrCheckoutFinalized
	}

	now := time.Now().UTC()
	session.IsPaid = true
	session.PaymentStatus = model.PaymentStatusPaid
	session.PaymentDetails = req.PaymentDetails
	if session.PaidAt == nil {
		session.PaidAt = &now
	}
	session.UpdatedAt = now

	saved, err := s.sessions.Save(ctx, session)
	if err != nil {
		s.logger.Error().Err(err).Str("checkout_id", id.String()).Msg("failed to mark checkout paid")
		return nil, model.Unavailable(err)
	}
	if !saved {
		return nil, model.ErrCheckoutFinalized
	}

	s.logger.Info().Str("checkout_id", id.String()).Msg("checkout marked paid")
	return session, nil
}

// Finalize creates the order for a paid session. The order insert and the session's
// finalized flag commit together; a second finalize observes the flag and creates
// nothing. The owner's cart is removed afterwards on a best-effort basis.
func (s *checkoutService) Finalize(ctx context.Context, id uuid.UUID) (*model.FinalizeResult, error) {
	session, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if session.IsFinalized {
		return &model.FinalizeResult{AlreadyFinalized: true}, nil
	}
	if !session.IsPaid {
		return nil, model.ErrCheckoutNotPaid
	}

	now := time.Now().UTC()
	order := model.NewOrderFromCheckout(session, now)
	session.IsFinalized = true
	session.FinalizedAt = &now
	session.UpdatedAt = now

	tx, err := s.orders.BeginTx(ctx)
	if err != nil {
		return nil, model.Unavailable(err)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
		}
	}()

	won, err := s.sessions.MarkFinalized(ctx, tx, session)
	if err != nil {
		return nil, model.Unavailable(err)
	}
	if !won {
		s.logger.Info().Str("checkout_id", id.String()).Msg("checkout finalized concurrently")
		return &model.FinalizeResult{AlreadyFinalized: true}, nil
	}

	if err := s.orders.CreateOrder(ctx, tx, order); err != nil {
		s.logger.Error().Err(err).Str("checkout_id", id.String()).Msg("failed to create order")
		return nil, model.Unavailable(err)
	}

	if err := tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("checkout_id", id.String()).Msg("failed to commit transaction")
		return nil, model.Unavailable(err)
	}
	committed = true

	if err := s.carts.DeleteByUser(ctx, session.UserID); err != nil {
		s.logger.Error().
			Err(err).
			Str("user_id", session.UserID.String()).
			Str("order_id", order.ID.String()).
			Msg("failed to delete cart after finalize")
	}

	s.logger.Info().
		Str("checkout_id", id.String()).
		Str("order_id", order.ID.String()).
		Msg("checkout finalized")

	return &model.FinalizeResult{Order: order}, nil
}
