package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment states of a checkout session.
const (
	PaymentStatusPending = "Pending"
	PaymentStatusPaid    = "paid"
)

// ShippingAddress is where an order is delivered.
type ShippingAddress struct {
	Address    string `json:"address" validate:"required"`
	City       string `json:"city" validate:"required"`
	PostalCode string `json:"postalCode" validate:"required"`
	Country    string `json:"country" validate:"required"`
}

// LineItem is a purchased product snapshot in a checkout session or an order.
type LineItem struct {
	ProductID uuid.UUID       `json:"productId" validate:"required"`
	Name      string          `json:"name" validate:"required"`
	Image     string          `json:"image,omitempty"`
	Price     decimal.Decimal `json:"price"`
	Size      string          `json:"size,omitempty"`
	Color     string          `json:"color,omitempty"`
	Quantity  int             `json:"quantity" validate:"gte=1"`
}

// CheckoutSession is a priced snapshot of items awaiting payment and finalization.
type CheckoutSession struct {
	ID              uuid.UUID       `json:"id"`
	UserID          uuid.UUID       `json:"user"`
	CheckoutItems   []LineItem      `json:"checkoutItems"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod"`
	TotalPrice      decimal.Decimal `json:"totalPrice"`
	PaymentStatus   string          `json:"paymentStatus"`
	PaymentDetails  json.RawMessage `json:"paymentDetails,omitempty"`
	IsPaid          bool            `json:"isPaid"`
	PaidAt          *time.Time      `json:"paidAt,omitempty"`
	IsFinalized     bool            `json:"isFinalized"`
	FinalizedAt     *time.Time      `json:"finalizedAt,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// CheckoutRequest is the input for creating a checkout session.
type CheckoutRequest struct {
	CheckoutItems   []LineItem      `json:"checkoutItems" validate:"dive"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod" validate:"required"`
	TotalPrice      decimal.Decimal `json:"totalPrice"`
}

// PaymentRequest reports the outcome of an external payment.
type PaymentRequest struct {
	PaymentStatus  string          `json:"paymentStatus"`
	PaymentDetails json.RawMessage `json:"paymentDetails"`
}

// FinalizeResult is the outcome of finalizing a session. Order is nil when the session
// had already been finalized.
type FinalizeResult struct {
	Order            *Order
	AlreadyFinalized bool
}
