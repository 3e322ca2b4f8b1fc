package model

import (
	"github.com/pkg/errors"
)

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// ErrorKind classifies a domain error for translation at the HTTP boundary.
type ErrorKind int

const (
	KindNotFound ErrorKind = iota + 1
	KindInvalidInput
	KindInvalidState
	KindForbidden
	KindUnauthorized
	KindUnavailable
)

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON         = "INVALID_JSON"
	ErrCodeInvalidInput        = "INVALID_INPUT"
	ErrCodeProductNotFound     = "PRODUCT_NOT_FOUND"
	ErrCodeInvalidQuantity     = "INVALID_QUANTITY"
	ErrCodeCartNotFound        = "CART_NOT_FOUND"
	ErrCodeCartItemNotFound    = "CART_ITEM_NOT_FOUND"
	ErrCodeCartExists          = "CART_ALREADY_EXISTS"
	ErrCodeGuestCartNotFound   = "GUEST_CART_NOT_FOUND"
	ErrCodeGuestCartEmpty      = "GUEST_CART_EMPTY"
	ErrCodeCheckoutNotFound    = "CHECKOUT_NOT_FOUND"
	ErrCodeNoCheckoutItems     = "NO_CHECKOUT_ITEMS"
	ErrCodeInvalidPayment      = "INVALID_PAYMENT_STATUS"
	ErrCodeCheckoutNotPaid     = "CHECKOUT_NOT_PAID"
	ErrCodeCheckoutFinalized   = "CHECKOUT_FINALIZED"
	ErrCodeOrderNotFound       = "ORDER_NOT_FOUND"
	ErrCodeInvalidOrderStatus  = "INVALID_ORDER_STATUS"
	ErrCodeUserNotFound        = "USER_NOT_FOUND"
	ErrCodeUserExists          = "USER_ALREADY_EXISTS"
	ErrCodeInvalidCredentials  = "INVALID_CREDENTIALS"
	ErrCodeSubscriberExists    = "ALREADY_SUBSCRIBED"
	ErrCodeUnauthorised        = "UNAUTHORIZED"
	ErrCodeForbidden           = "FORBIDDEN"
	ErrCodeUnavailable         = "SERVICE_UNAVAILABLE"
	ErrCodeUploadNotConfigured = "UPLOAD_NOT_CONFIGURED"
	ErrCodeInternalError       = "INTERNAL_ERROR"
)

// DomainError is a business error carrying its kind and a client-facing message.
type DomainError struct {
	Kind    ErrorKind
	Code    string
	Message string
	cause   error
}

func (e *DomainError) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

// Unwrap exposes the underlying cause, if any.
func (e *DomainError) Unwrap() error {
	return e.cause
}

// Is matches domain errors by code so wrapped copies still compare equal to sentinels.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new domain error
func NewDomainError(kind ErrorKind, code, message string) *DomainError {
	return &DomainError{
		Kind:    kind,
		Code:    code,
		Message: message,
	}
}

// InvalidInput builds an InvalidInput error with a request-specific message.
func InvalidInput(message string) *DomainError {
	return NewDomainError(KindInvalidInput, ErrCodeInvalidInput, message)
}

// Unavailable wraps a collaborator failure (store, object storage) with a stack trace.
func Unavailable(err error) *DomainError {
	return &DomainError{
		Kind:    KindUnavailable,
		Code:    ErrCodeUnavailable,
		Message: "service temporarily unavailable",
		cause:   errors.WithStack(err),
	}
}

// KindOf reports the kind of err, or zero when err is not a domain error.
func KindOf(err error) ErrorKind {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind
	}
	return 0
}

// Common domain errors
var (
	ErrProductNotFound    = NewDomainError(KindNotFound, ErrCodeProductNotFound, "Product not found")
	ErrInvalidQuantity    = NewDomainError(KindInvalidInput, ErrCodeInvalidQuantity, "Quantity must be greater than zero")
	ErrCartNotFound       = NewDomainError(KindNotFound, ErrCodeCartNotFound, "Cart not found")
	ErrCartItemNotFound   = NewDomainError(KindNotFound, ErrCodeCartItemNotFound, "Product not found in the cart")
	ErrCartExists         = NewDomainError(KindInvalidState, ErrCodeCartExists, "Owner already has a cart")
	ErrGuestCartNotFound  = NewDomainError(KindNotFound, ErrCodeGuestCartNotFound, "Guest cart not found")
	ErrGuestCartEmpty     = NewDomainError(KindInvalidState, ErrCodeGuestCartEmpty, "Guest cart is empty")
	ErrCheckoutNotFound   = NewDomainError(KindNotFound, ErrCodeCheckoutNotFound, "Checkout not found")
	ErrNoCheckoutItems    = NewDomainError(KindInvalidInput, ErrCodeNoCheckoutItems, "No items in checkout")
	ErrInvalidPayment     = NewDomainError(KindInvalidInput, ErrCodeInvalidPayment, "Invalid payment status")
	ErrCheckoutNotPaid    = NewDomainError(KindInvalidState, ErrCodeCheckoutNotPaid, "Checkout is not paid")
	ErrCheckoutFinalized  = NewDomainError(KindInvalidState, ErrCodeCheckoutFinalized, "Checkout is already finalized")
	ErrOrderNotFound      = NewDomainError(KindNotFound, ErrCodeOrderNotFound, "Order not found")
	ErrInvalidOrderStatus = NewDomainError(KindInvalidInput, ErrCodeInvalidOrderStatus, "Invalid order status")
	ErrUserNotFound       = NewDomainError(KindNotFound, ErrCodeUserNotFound, "User not found")
	ErrUserExists         = NewDomainError(KindInvalidInput, ErrCodeUserExists, "User already exists")
	ErrInvalidCredentials = NewDomainError(KindInvalidInput, ErrCodeInvalidCredentials, "Invalid credentials")
	ErrSubscriberExists   = NewDomainError(KindInvalidInput, ErrCodeSubscriberExists, "Email is already subscribed")
	ErrUnauthorised       = NewDomainError(KindUnauthorized, ErrCodeUnauthorised, "Not authorised")
	ErrForbidden          = NewDomainError(KindForbidden, ErrCodeForbidden, "Not authorised as admin")
	ErrNotOwner           = NewDomainError(KindForbidden, ErrCodeForbidden, "Not authorised to access this resource")
	ErrUploadDisabled     = NewDomainError(KindUnavailable, ErrCodeUploadNotConfigured, "Image upload is not configured")
)
