package service

import (
	"context"

	"storefront/internal/model"

	"github.com/google/uuid"
)

// ProductService defines catalogue operations.
type ProductService interface {
	// List retrieves products matching the filter.
	List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error)

	// GetByID retrieves a single product.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)

	// Similar retrieves up to four products with the same gender and category.
	Similar(ctx context.Context, id uuid.UUID) ([]model.Product, error)

	// BestSeller retrieves the highest rated product.
	BestSeller(ctx context.Context) (*model.Product, error)

	// NewArrivals retrieves the eight newest products.
	NewArrivals(ctx context.Context) ([]model.Product, error)

	// Create adds a product on behalf of ownerID.
	Create(ctx context.Context, ownerID uuid.UUID, in *model.ProductInput) (*model.Product, error)

	// Update applies the non-nil fields of in to a product.
	Update(ctx context.Context, id uuid.UUID, in *model.ProductInput) (*model.Product, error)

	// Delete removes a product.
	Delete(ctx context.Context, id uuid.UUID) error
}

// CartService manages guest and user carts.
type CartService interface {
	// GetCart retrieves the cart for owner. The user id wins when both are set.
	GetCart(ctx context.Context, owner model.CartOwner) (*model.Cart, error)

	// AddItem adds quantity of a product variant, creating the cart when needed.
	AddItem(ctx context.Context, owner model.CartOwner, productID uuid.UUID, quantity int, size, color string) (*model.Cart, error)

	// SetItemQuantity overwrites a line's quantity. A quantity <= 0 removes the line.
	SetItemQuantity(ctx context.Context, owner model.CartOwner, key model.LineKey, quantity int) (*model.Cart, error)

	// RemoveItem deletes a line.
	RemoveItem(ctx context.Context, owner model.CartOwner, key model.LineKey) (*model.Cart, error)

	// Merge moves a guest cart into a user's cart.
	Merge(ctx context.Context, guestID string, userID uuid.UUID) (*model.Cart, error)
}

// CheckoutService manages checkout sessions.
type CheckoutService interface {
	// Create opens a pending session for userID.
	Create(ctx context.Context, userID uuid.UUID, req *model.CheckoutRequest) (*model.CheckoutSession, error)

	// GetByID retrieves a session.
	GetByID(ctx context.Context, id uuid.UUID) (*model.CheckoutSession, error)

	// MarkPaid records a successful payment.
	MarkPaid(ctx context.Context, id uuid.UUID, req *model.PaymentRequest) (*model.CheckoutSession, error)

	// Finalize turns a paid session into an order exactly once.
	Finalize(ctx context.Context, id uuid.UUID) (*model.FinalizeResult, error)
}

// OrderService manages orders. Ownership is checked by callers.
type OrderService interface {
	// ListForUser retrieves a user's orders, newest first.
	ListForUser(ctx context.Context, userID uuid.UUID) ([]model.Order, error)

	// GetByID retrieves an order.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)

	// ListAll retrieves every order with its owner resolved.
	ListAll(ctx context.Context) ([]model.Order, error)

	// UpdateStatus moves an order to status.
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) (*model.Order, error)

	// Delete removes an order.
	Delete(ctx context.Context, id uuid.UUID) error
}

// UserService manages accounts and credentials.
type UserService interface {
	// Register creates a customer account and issues a token.
	Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error)

	// Login verifies credentials and issues a token.
	Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error)

	// Profile retrieves a user.
	Profile(ctx context.Context, id uuid.UUID) (*model.User, error)

	// List retrieves every user.
	List(ctx context.Context) ([]model.User, error)

	// Create adds a user with an explicit role.
	Create(ctx context.Context, req *model.CreateUserRequest) (*model.User, error)

	// Update changes a user's name, email, role or password.
	Update(ctx context.Context, id uuid.UUID, req *model.UpdateUserRequest) (*model.User, error)

	// Delete removes a user.
	Delete(ctx context.Context, id uuid.UUID) error
}

// AdminService exposes the privileged variants of the catalogue, user and order
// operations. Every method rejects callers without the admin role.
type AdminService interface {
	ListOrders(ctx context.Context, caller model.Identity) ([]model.Order, error)
	UpdateOrderStatus(ctx context.Context, caller model.Identity, id uuid.UUID, status model.OrderStatus) (*model.Order, error)
	DeleteOrder(ctx context.Context, caller model.Identity, id uuid.UUID) error

	ListUsers(ctx context.Context, caller model.Identity) ([]model.User, error)
	CreateUser(ctx context.Context, caller model.Identity, req *model.CreateUserRequest) (*model.User, error)
	UpdateUser(ctx context.Context, caller model.Identity, id uuid.UUID, req *model.UpdateUserRequest) (*model.User, error)
	DeleteUser(ctx context.Context, caller model.Identity, id uuid.UUID) error

	ListProducts(ctx context.Context, caller model.Identity) ([]model.Product, error)
	CreateProduct(ctx context.Context, caller model.Identity, in *model.ProductInput) (*model.Product, error)
	UpdateProduct(ctx context.Context, caller model.Identity, id uuid.UUID, in *model.ProductInput) (*model.Product, error)
	DeleteProduct(ctx context.Context, caller model.Identity, id uuid.UUID) error
}

// SubscriberService manages newsletter subscriptions.
type SubscriberService interface {
	// Subscribe records email. It fails when the address is already subscribed.
	Subscribe(ctx context.Context, email string) (*model.Subscriber, error)
}
