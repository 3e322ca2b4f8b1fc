package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// orderRepository implements the OrderRepository interface using PostgreSQL.
type orderRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool *pgxpool.Pool, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "order").Logger(),
	}
}

// orderDoc strips the joined owner before an order is stored.
func orderDoc(order *model.Order) ([]byte, error) {
	o := *order
	o.Owner = nil
	return encodeDoc(&o)
}

// BeginTx starts a new database transaction.
func (r *orderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// CreateOrder inserts a new order within the provided transaction.
func (r *orderRepository) CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	doc, err := orderDoc(order)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO orders (id, user_id, checkout_id, status, doc, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err = tx.Exec(ctx, query,
		order.ID, order.UserID, order.CheckoutID, string(order.Status), doc, order.CreatedAt, order.UpdatedAt)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_id", order.ID.String()).
			Str("checkout_id", order.CheckoutID.String()).
			Msg("failed to create order")
		return fmt.Errorf("failed to create order: %w", err)
	}

	r.logger.Debug().
		Str("order_id", order.ID.String()).
		Msg("order created successfully")

	return nil
}

// scanOrder reads id, user_id, status, doc, created_at, updated_at into an order.
func scanOrder(row pgx.Row, extra ...any) (*model.Order, error) {
	var (
		o                    model.Order
		id, userID           uuid.UUID
		status               string
		raw                  []byte
		createdAt, updatedAt time.Time
	)
	dest := append([]any{&id, &userID, &status, &raw, &createdAt, &updatedAt}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	if err := decodeDoc(raw, &o); err != nil {
		return nil, err
	}
	o.ID = id
	o.UserID = userID
	o.Status = model.OrderStatus(status)
	o.CreatedAt = createdAt
	o.UpdatedAt = updatedAt

	return &o, nil
}

// GetByID retrieves an order by its ID.
func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	query := `
		SELECT id, user_id, status, doc, created_at, updated_at
		FROM orders
		WHERE id = $1
	`

	order, err := scanOrder(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("order_id", id.String()).Msg("order not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to query order")
		return nil, fmt.Errorf("failed to query order: %w", err)
	}

	return order, nil
}

// ListByUser retrieves a user's orders, newest first.
func (r *orderRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	query := `
		SELECT id, user_id, status, doc, created_at, updated_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC, id
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to query user orders")
		return nil, fmt.Errorf("failed to query user orders: %w", err)
	}
	defer rows.Close()

	orders := []model.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order row")
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, *o)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order rows")
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	return orders, nil
}

// ListAll retrieves every order with its owner's name and email.
func (r *orderRepository) ListAll(ctx context.Context) ([]model.Order, error) {
	query := `
		SELECT o.id, o.user_id, o.status, o.doc, o.created_at, o.updated_at, u.name, u.email
		FROM orders o
		LEFT JOIN users u ON u.id = o.user_id
		ORDER BY o.created_at DESC, o.id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query orders")
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	orders := []model.Order{}
	for rows.Next() {
		var name, email *string
		o, err := scanOrder(rows, &name, &email)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order row")
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		if name != nil && email != nil {
			o.Owner = &model.OrderOwner{Name: *name, Email: *email}
		}
		orders = append(orders, *o)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order rows")
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	return orders, nil
}

// Update overwrites an order.
func (r *orderRepository) Update(ctx context.Context, order *model.Order) (bool, error) {
	doc, err := orderDoc(order)
	if err != nil {
		return false, err
	}

	query := `
		UPDATE orders
		SET status = $2, doc = $3, updated_at = $4
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, order.ID, string(order.Status), doc, order.UpdatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to update order")
		return false, fmt.Errorf("failed to update order: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

// Delete removes an order.
func (r *orderRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to delete order")
		return false, fmt.Errorf("failed to delete order: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}
