package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// Create inserts a new product.
	Create(ctx context.Context, product *model.Product) error

	// CreateMany inserts products in a single batch.
	CreateMany(ctx context.Context, products []model.Product) error

	// GetByID retrieves a single product by its ID. It returns nil when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)

	// Update replaces a product. It reports false when the product does not exist.
	Update(ctx context.Context, product *model.Product) (bool, error)

	// Delete removes a product. It reports false when the product does not exist.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)

	// DeleteAll removes every product.
	DeleteAll(ctx context.Context) error

	// List retrieves products matching the filter.
	List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error)

	// Similar retrieves up to limit other products sharing the product's gender and category.
	Similar(ctx context.Context, product *model.Product, limit int) ([]model.Product, error)

	// BestSeller retrieves the highest rated product. It returns nil when the catalogue is empty.
	BestSeller(ctx context.Context) (*model.Product, error)

	// NewArrivals retrieves the most recently created products.
	NewArrivals(ctx context.Context, limit int) ([]model.Product, error)
}

// CartRepository defines the interface for cart data access operations.
type CartRepository interface {
	// FindByUser retrieves the cart owned by a user. It returns nil when absent.
	FindByUser(ctx context.Context, userID uuid.UUID) (*model.Cart, error)

	// FindByGuest retrieves the cart owned by a guest token. It returns nil when absent.
	FindByGuest(ctx context.Context, guestID string) (*model.Cart, error)

	// Create inserts a new cart. It returns model.ErrCartExists when the owner already has one.
	Create(ctx context.Context, cart *model.Cart) error

	// Save overwrites a cart's owner and lines. Concurrent saves are last-writer-wins.
	// Moving a cart onto an owner that already has one returns model.ErrCartExists.
	Save(ctx context.Context, cart *model.Cart) error

	// Delete removes a cart by ID.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByUser removes the cart owned by a user, if any.
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}

// CheckoutRepository defines the interface for checkout session data access operations.
type CheckoutRepository interface {
	// Create inserts a new checkout session.
	Create(ctx context.Context, session *model.CheckoutSession) error

	// GetByID retrieves a checkout session. It returns nil when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.CheckoutSession, error)

	// Save overwrites a session that is not yet finalized. It reports false when the
	// session is missing or was finalized in the meantime.
	Save(ctx context.Context, session *model.CheckoutSession) (bool, error)

	// MarkFinalized stores the finalized session within tx, guarded on the stored session
	// still being unfinalized. It reports false when another finalize won.
	MarkFinalized(ctx context.Context, tx pgx.Tx, session *model.CheckoutSession) (bool, error)
}

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateOrder inserts a new order within the provided transaction.
	CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// GetByID retrieves an order by its ID. It returns nil when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)

	// ListByUser retrieves a user's orders, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Order, error)

	// ListAll retrieves every order, newest first, with the owner's name and email.
	ListAll(ctx context.Context) ([]model.Order, error)

	// Update overwrites an order. It reports false when the order does not exist.
	Update(ctx context.Context, order *model.Order) (bool, error)

	// Delete removes an order. It reports false when the order does not exist.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// UserRepository defines the interface for user data access operations.
type UserRepository interface {
	// Create inserts a new user. It returns model.ErrUserExists on a duplicate email.
	Create(ctx context.Context, user *model.User) error

	// GetByID retrieves a user. It returns nil when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)

	// GetByEmail retrieves a user by normalised email. It returns nil when absent.
	GetByEmail(ctx context.Context, email string) (*model.User, error)

	// List retrieves every user, oldest first.
	List(ctx context.Context) ([]model.User, error)

	// Update overwrites a user. It reports false when the user does not exist and
	// returns model.ErrUserExists when the new email is taken.
	Update(ctx context.Context, user *model.User) (bool, error)

	// Delete removes a user. It reports false when the user does not exist.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)

	// DeleteAll removes every user.
	DeleteAll(ctx context.Context) error
}

// SubscriberRepository defines the interface for newsletter subscriber data access.
type SubscriberRepository interface {
	// Create inserts a subscriber. It returns model.ErrSubscriberExists on a duplicate email.
	Create(ctx context.Context, subscriber *model.Subscriber) error

	// GetByEmail retrieves a subscriber. It returns nil when absent.
	GetByEmail(ctx context.Context, email string) (*model.Subscriber, error)
}

const uniqueViolation = "23505"

// isUniqueViolation reports whether err is a PostgreSQL unique constraint violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// encodeDoc marshals a document body for a JSONB column.
func encodeDoc(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	return b, nil
}

// decodeDoc unmarshals a JSONB column into v.
func decodeDoc(raw []byte, v any) error {
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("failed to decode document: %w", err)
	}
	return nil
}
