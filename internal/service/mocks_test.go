package service

import (
	"context"
	"sync"

	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/mock"
)

// MockProductRepository is a mock implementation of ProductRepository.
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(ctx context.Context, product *model.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) CreateMany(ctx context.Context, products []model.Product) error {
	args := m.Called(ctx, products)
	return args.Error(0)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, product *model.Product) (bool, error) {
	args := m.Called(ctx, product)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockProductRepository) List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductRepository) Similar(ctx context.Context, product *model.Product, limit int) ([]model.Product, error) {
	args := m.Called(ctx, product, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductRepository) BestSeller(ctx context.Context) (*model.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductRepository) NewArrivals(ctx context.Context, limit int) ([]model.Product, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

// MockCheckoutRepository is a mock implementation of CheckoutRepository.
type MockCheckoutRepository struct {
	mock.Mock
}

func (m *MockCheckoutRepository) Create(ctx context.Context, session *model.CheckoutSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockCheckoutRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.CheckoutSession, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CheckoutSession), args.Error(1)
}

func (m *MockCheckoutRepository) Save(ctx context.Context, session *model.CheckoutSession) (bool, error) {
	args := m.Called(ctx, session)
	return args.Bool(0), args.Error(1)
}

func (m *MockCheckoutRepository) MarkFinalized(ctx context.Context, tx pgx.Tx, session *model.CheckoutSession) (bool, error) {
	args := m.Called(ctx, tx, session)
	return args.Bool(0), args.Error(1)
}

// MockOrderRepository is a mock implementation of OrderRepository.
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if tx, ok := args.Get(0).(pgx.Tx); ok {
		return tx, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	args := m.Called(ctx, tx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

func (m *MockOrderRepository) ListAll(ctx context.Context) ([]model.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

func (m *MockOrderRepository) Update(ctx context.Context, order *model.Order) (bool, error) {
	args := m.Called(ctx, order)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) (bool, error) {
	args := m.Called(ctx, user)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockSubscriberRepository is a mock implementation of SubscriberRepository.
type MockSubscriberRepository struct {
	mock.Mock
}

func (m *MockSubscriberRepository) Create(ctx context.Context, subscriber *model.Subscriber) error {
	args := m.Called(ctx, subscriber)
	return args.Error(0)
}

func (m *MockSubscriberRepository) GetByEmail(ctx context.Context, email string) (*model.Subscriber, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Subscriber), args.Error(1)
}

// MockTx is a minimal mock implementation of pgx.Tx for testing.
type MockTx struct {
	mock.Mock
}

func (m *MockTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Stub methods to satisfy pgx.Tx interface - these are not used in our tests
func (m *MockTx) Begin(ctx context.Context) (pgx.Tx, error) { return nil, nil }
func (m *MockTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (m *MockTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (m *MockTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (m *MockTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (m *MockTx) Exec(ctx context.Context, sql string, arguments ...any) (commandTag pgconn.CommandTag, err error) {
	return
}
func (m *MockTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (m *MockTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (m *MockTx) Conn() *pgx.Conn                                               { return nil }

// fakeCartRepository is an in-memory CartRepository. Reads and writes copy the
// cart so callers never share state with the store, like a real database.
type fakeCartRepository struct {
	mu    sync.Mutex
	carts map[uuid.UUID]*model.Cart

	// afterFind runs after every lookup, outside the lock.
	afterFind func()
	deleteErr error
}

func newFakeCartRepository() *fakeCartRepository {
	return &fakeCartRepository{carts: make(map[uuid.UUID]*model.Cart)}
}

func cloneCart(c *model.Cart) *model.Cart {
	out := *c
	if c.UserID != nil {
		id := *c.UserID
		out.UserID = &id
	}
	out.Products = append([]model.CartItem(nil), c.Products...)
	return &out
}

func (r *fakeCartRepository) find(match func(*model.Cart) bool) *model.Cart {
	r.mu.Lock()
	var found *model.Cart
	for _, c := range r.carts {
		if match(c) {
			found = cloneCart(c)
			break
		}
	}
	r.mu.Unlock()

	if r.afterFind != nil {
		r.afterFind()
	}
	return found
}

func (r *fakeCartRepository) FindByUser(_ context.Context, userID uuid.UUID) (*model.Cart, error) {
	return r.find(func(c *model.Cart) bool {
		return c.UserID != nil && *c.UserID == userID
	}), nil
}

func (r *fakeCartRepository) FindByGuest(_ context.Context, guestID string) (*model.Cart, error) {
	return r.find(func(c *model.Cart) bool {
		return c.GuestID != "" && c.GuestID == guestID
	}), nil
}

func (r *fakeCartRepository) Create(_ context.Context, cart *model.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.carts {
		if cart.UserID != nil && c.UserID != nil && *c.UserID == *cart.UserID {
			return model.ErrCartExists
		}
		if cart.GuestID != "" && c.GuestID == cart.GuestID {
			return model.ErrCartExists
		}
	}
	r.carts[cart.ID] = cloneCart(cart)
	return nil
}

func (r *fakeCartRepository) Save(_ context.Context, cart *model.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.carts[cart.ID]; !ok {
		return model.ErrCartNotFound
	}
	r.carts[cart.ID] = cloneCart(cart)
	return nil
}

func (r *fakeCartRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.carts, id)
	return nil
}

func (r *fakeCartRepository) DeleteByUser(_ context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.deleteErr != nil {
		return r.deleteErr
	}
	for id, c := range r.carts {
		if c.UserID != nil && *c.UserID == userID {
			delete(r.carts, id)
		}
	}
	return nil
}

func (r *fakeCartRepository) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.carts)
}
