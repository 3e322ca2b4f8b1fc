package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus is the fulfilment state of an order.
type OrderStatus string

const (
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusShipped    OrderStatus = "Shipped"
	OrderStatusDelivered  OrderStatus = "Delivered"
	OrderStatusCancelled  OrderStatus = "Cancelled"
)

// Valid reports whether s is one of the four recognised statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// OrderOwner is the display identity of an order's owner.
type OrderOwner struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Order is a finalized purchase.
type Order struct {
	ID              uuid.UUID       `json:"id"`
	UserID          uuid.UUID       `json:"user"`
	Owner           *OrderOwner     `json:"owner,omitempty"`
	CheckoutID      uuid.UUID       `json:"checkoutId"`
	OrderItems      []LineItem      `json:"orderItems"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod"`
	TotalPrice      decimal.Decimal `json:"totalPrice"`
	IsPaid          bool            `json:"isPaid"`
	PaidAt          *time.Time      `json:"paidAt,omitempty"`
	PaymentStatus   string          `json:"paymentStatus"`
	PaymentDetails  json.RawMessage `json:"paymentDetails,omitempty"`
	Status          OrderStatus     `json:"status"`
	IsDelivered     bool            `json:"isDelivered"`
	DeliveredAt     *time.Time      `json:"deliveredAt,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// NewOrderFromCheckout copies a paid session into a new order.
func NewOrderFromCheckout(s *CheckoutSession, now time.Time) *Order {
	items := make([]LineItem, len(s.CheckoutItems))
	copy(items, s.CheckoutItems)

	return &Order{
		ID:              uuid.New(),
		UserID:          s.UserID,
		CheckoutID:      s.ID,
		OrderItems:      items,
		ShippingAddress: s.ShippingAddress,
		PaymentMethod:   s.PaymentMethod,
		TotalPrice:      s.TotalPrice,
		IsPaid:          true,
		PaidAt:          s.PaidAt,
		PaymentStatus:   PaymentStatusPaid,
		PaymentDetails:  s.PaymentDetails,
		Status:          OrderStatusProcessing,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// ApplyStatus moves the order to status. Delivered also stamps delivery; deliveredAt is
// never cleared once set.
func (o *Order) ApplyStatus(status OrderStatus, now time.Time) {
	o.Status = status
	if status == OrderStatusDelivered {
		o.IsDelivered = true
		o.DeliveredAt = &now
	}
	o.UpdatedAt = now
}
