package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type checkoutFixture struct {
	svc      CheckoutService
	sessions *MockCheckoutRepository
	orders   *MockOrderRepository
	carts    *fakeCartRepository
}

func newCheckoutFixture() checkoutFixture {
	f := checkoutFixture{
		sessions: new(MockCheckoutRepository),
		orders:   new(MockOrderRepository),
		carts:    newFakeCartRepository(),
	}
	f.svc = NewCheckoutService(f.sessions, f.orders, f.carts, zerolog.Nop())
	return f
}

func paidSession(userID uuid.UUID) *model.CheckoutSession {
	paidAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return &model.CheckoutSession{
		ID:     uuid.New(),
		UserID: userID,
		CheckoutItems: []model.LineItem{
			{ProductID: uuid.New(), Name: "tee", Price: decimal.NewFromInt(10), Size: "M", Color: "Red", Quantity: 2},
		},
		ShippingAddress: model.ShippingAddress{Address: "1 Main St", City: "Springfield", PostalCode: "12345", Country: "US"},
		PaymentMethod:   "PayPal",
		TotalPrice:      decimal.NewFromInt(20),
		PaymentStatus:   model.PaymentStatusPaid,
		PaymentDetails:  json.RawMessage(`{"transactionId":"TX-1"}`),
		IsPaid:          true,
		PaidAt:          &paidAt,
	}
}

func TestCheckoutService_Create(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("opens a pending session", func(t *testing.T) {
		f := newCheckoutFixture()
		f.sessions.On("Create", ctx, mock.AnythingOfType("*model.CheckoutSession")).Return(nil)

		req := &model.CheckoutRequest{
			CheckoutItems: []model.LineItem{
				{ProductID: uuid.New(), Name: "tee", Price: decimal.NewFromInt(10), Quantity: 1},
			},
			PaymentMethod: "PayPal",
			TotalPrice:    decimal.RequireFromString("9.99"),
		}

		session, err := f.svc.Create(ctx, userID, req)
		require.NoError(t, err)

		assert.Equal(t, userID, session.UserID)
		assert.Equal(t, model.PaymentStatusPending, session.PaymentStatus)
		assert.False(t, session.IsPaid)
		assert.False(t, session.IsFinalized)
		assert.True(t, decimal.RequireFromString("9.99").Equal(session.TotalPrice))
		assert.Len(t, session.CheckoutItems, 1)
		f.sessions.AssertExpectations(t)
	})

	t.Run("rejects empty items", func(t *testing.T) {
		f := newCheckoutFixture()

		_, err := f.svc.Create(ctx, userID, &model.CheckoutRequest{PaymentMethod: "PayPal"})

		assert.ErrorIs(t, err, model.ErrNoCheckoutItems)
		f.sessions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("store failure", func(t *testing.T) {
		f := newCheckoutFixture()
		f.sessions.On("Create", ctx, mock.Anything).Return(errors.New("connection refused"))

		_, err := f.svc.Create(ctx, userID, &model.CheckoutRequest{
			CheckoutItems: []model.LineItem{{ProductID: uuid.New(), Name: "tee", Quantity: 1}},
		})

		assert.Equal(t, model.KindUnavailable, model.KindOf(err))
	})
}

func TestCheckoutService_MarkPaid(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("marks a pending session paid", func(t *testing.T) {
		f := newCheckoutFixture()
		session := paidSession(userID)
		session.IsPaid = false
		session.PaidAt = nil
		session.PaymentStatus = model.PaymentStatusPending
		f.sessions.On("GetByID", ctx, session.ID).Return(session, nil)
		f.sessions.On("Save", ctx, session).Return(true, nil)

		got, err := f.svc.MarkPaid(ctx, session.ID, &model.PaymentRequest{
			PaymentStatus:  model.PaymentStatusPaid,
			PaymentDetails: json.RawMessage(`{"transactionId":"TX-9"}`),
		})
		require.NoError(t, err)

		assert.True(t, got.IsPaid)
		assert.Equal(t, model.PaymentStatusPaid, got.PaymentStatus)
		assert.NotNil(t, got.PaidAt)
		assert.JSONEq(t, `{"transactionId":"TX-9"}`, string(got.PaymentDetails))
	})

	t.Run("repeat keeps the first payment time", func(t *testing.T) {
		f := newCheckoutFixture()
		session := paidSession(userID)
		firstPaid := *session.PaidAt
		f.sessions.On("GetByID", ctx, session.ID).Return(session, nil)
		f.sessions.On("Save", ctx, session).Return(true, nil)

		got, err := f.svc.MarkPaid(ctx, session.ID, &model.PaymentRequest{PaymentStatus: model.PaymentStatusPaid})
		require.NoError(t, err)

		require.NotNil(t, got.PaidAt)
		assert.True(t, firstPaid.Equal(*got.PaidAt))
	})

	t.Run("rejects other payment statuses", func(t *testing.T) {
		f := newCheckoutFixture()
		session := paidSession(userID)
		f.sessions.On("GetByID", ctx, session.ID).Return(session, nil)

		_, err := f.svc.MarkPaid(ctx, session.ID, &model.PaymentRequest{PaymentStatus: "failed"})

		assert.ErrorIs(t, err, model.ErrInvalidPayment)
		f.sessions.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("unknown session", func(t *testing.T) {
		f := newCheckoutFixture()
		id := uuid.New()
		f.sessions.On("GetByID", ctx, id).Return(nil, nil)

		_, err := f.svc.MarkPaid(ctx, id, &model.PaymentRequest{PaymentStatus: model.PaymentStatusPaid})

		assert.ErrorIs(t, err, model.ErrCheckoutNotFound)
	})

	t.Run("finalized session", func(t *testing.T) {
		f := newCheckoutFixture()
		session := paidSession(userID)
		session.IsFinalized = true
		f.sessions.On("GetByID", ctx, session.ID).Return(session, nil)

		_, err := f.svc.MarkPaid(ctx, session.ID, &model.PaymentRequest{PaymentStatus: model.PaymentStatusPaid})

		assert.ErrorIs(t, err, model.ErrCheckoutFinalized)
	})

	t.Run("finalized between read and save", func(t *testing.T) {
		f := newCheckoutFixture()
		session := paidSession(userID)
		f.sessions.On("GetByID", ctx, session.ID).Return(session, nil)
		f.sessions.On("Save", ctx, session).Return(false, nil)

		_, err := f.svc.MarkPaid(ctx, session.ID, &model.PaymentRequest{PaymentStatus: model.PaymentStatusPaid})

		assert.ErrorIs(t, err, model.ErrCheckoutFinalized)
	})
}

func TestCheckoutService_Finalize(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("creates the order and clears the cart", func(t *testing.T) {
		f := newCheckoutFixture()
		session := paidSession(userID)
		tx := new(MockTx)
		require.NoError(t, f.carts.Create(ctx, &model.Cart{ID: uuid.New(), UserID: &userID}))

		f.sessions.On("GetByID", ctx, session.ID).Return(session, nil)
		f.orders.On("BeginTx", ctx).Return(tx, nil)
		f.sessions.On("MarkFinalized", ctx, tx, session).Return(true, nil)
		f.orders.On("CreateOrder", ctx, tx, mock.AnythingOfType("*model.Order")).Return(nil)
		tx.On("Commit", ctx).Return(nil)

		result, err := f.svc.Finalize(ctx, session.ID)
		require.NoError(t, err)

		require.NotNil(t, result.Order)
		assert.False(t, result.AlreadyFinalized)
		assert.Equal(t, session.ID, result.Order.CheckoutID)
		assert.Equal(t, userID, result.Order.UserID)
		assert.Equal(t, model.OrderStatusProcessing, result.Order.Status)
		assert.True(t, result.Order.IsPaid)
		assert.Equal(t, session.CheckoutItems, result.Order.OrderItems)
		assert.True(t, session.TotalPrice.Equal(result.Order.TotalPrice))
		assert.True(t, session.IsFinalized)
		assert.NotNil(t, session.FinalizedAt)
		assert.Zero(t, f.carts.count())

		f.orders.AssertExpectations(t)
		f.sessions.AssertExpectations(t)
		tx.AssertExpectations(t)
		tx.AssertNotCalled(t, "Rollback", mock.Anything)
	})

	t.Run("second finalize creates nothing", func(t *testing.T) {
		f := newCheckoutFixture()
		session := paidSession(userID)
		tx := new(MockTx)

		f.sessions.On("GetByID", ctx, session.ID).Return(session, nil)
		f.orders.On("BeginTx", ctx).Return(tx, nil).Once()
		f.sessions.On("MarkFinalized", ctx, tx, session).Return(true, nil).Once()
		f.orders.On("CreateOrder", ctx, tx, mock.Anything).Return(nil).Once()
		tx.On("Commit", ctx).Return(nil).Once()

		first, err := f.svc.Finalize(ctx, session.ID)
		require.NoError(t, err)
		require.NotNil(t, first.Order)

		second, err := f.svc.Finalize(ctx, session.ID)
		require.NoError(t, err)
		assert.True(t, second.AlreadyFinalized)
		assert.Nil(t, second.Order)

		f.orders.AssertNumberOfCalls(t, "CreateOrder", 1)
		f.orders.AssertNumberOfCalls(t, "BeginTx", 1)
	})

	t.Run("concurrent finalize loses the guard", func(t *testing.T) {
		f := newCheckoutFixture()
		session := paidSession(userID)
		tx := new(MockTx)

		f.sessions.On("GetByID", ctx, session.ID).Return(session, nil)
		f.orders.On("BeginTx", ctx).Return(tx, nil)
		f.sessions.On("MarkFinalized", ctx, tx, session).Return(false, nil)
		tx.On("Rollback", ctx).Return(nil)

		result, err := f.svc.Finalize(ctx, session.ID)
		require.NoError(t, err)

		assert.True(t, result.AlreadyFinalized)
		f.orders.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything, mock.Anything)
		tx.AssertExpectations(t)
	})

	t.Run("unpaid session", func(t *testing.T) {
		f := newCheckoutFixture()
		session := paidSession(userID)
		session.IsPaid = false
		session.PaymentStatus = model.PaymentStatusPending
		f.sessions.On("GetByID", ctx, session.ID).Return(session, nil)

		_, err := f.svc.Finalize(ctx, session.ID)

		assert.ErrorIs(t, err, model.ErrCheckoutNotPaid)
		f.orders.AssertNotCalled(t, "BeginTx", mock.Anything)
	})

	t.Run("unknown session", func(t *testing.T) {
		f := newCheckoutFixture()
		id := uuid.New()
		f.sessions.On("GetByID", ctx, id).Return(nil, nil)

		_, err := f.svc.Finalize(ctx, id)

		assert.ErrorIs(t, err, model.ErrCheckoutNotFound)
	})

	t.Run("order insert failure rolls back", func(t *testing.T) {
		f := newCheckoutFixture()
		session := paidSession(userID)
		tx := new(MockTx)

		f.sessions.On("GetByID", ctx, session.ID).Return(session, nil)
		f.orders.On("BeginTx", ctx).Return(tx, nil)
		f.sessions.On("MarkFinalized", ctx, tx, session).Return(true, nil)
		f.orders.On("CreateOrder", ctx, tx, mock.Anything).Return(errors.New("disk full"))
		tx.On("Rollback", ctx).Return(nil)

		_, err := f.svc.Finalize(ctx, session.ID)

		assert.Equal(t, model.KindUnavailable, model.KindOf(err))
		tx.AssertExpectations(t)
		tx.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("cart cleanup failure is not fatal", func(t *testing.T) {
		f := newCheckoutFixture()
		f.carts.deleteErr = errors.New("timeout")
		session := paidSession(userID)
		tx := new(MockTx)

		f.sessions.On("GetByID", ctx, session.ID).Return(session, nil)
		f.orders.On("BeginTx", ctx).Return(tx, nil)
		f.sessions.On("MarkFinalized", ctx, tx, session).Return(true, nil)
		f.orders.On("CreateOrder", ctx, tx, mock.Anything).Return(nil)
		tx.On("Commit", ctx).Return(nil)

		result, err := f.svc.Finalize(ctx, session.ID)

		require.NoError(t, err)
		assert.NotNil(t, result.Order)
	})
}
