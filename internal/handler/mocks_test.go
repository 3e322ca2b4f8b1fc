package handler

import (
	"context"
	"io"

	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockProductService is a mock implementation of ProductService.
type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductService) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductService) Similar(ctx context.Context, id uuid.UUID) ([]model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductService) BestSeller(ctx context.Context) (*model.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductService) NewArrivals(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductService) Create(ctx context.Context, ownerID uuid.UUID, in *model.ProductInput) (*model.Product, error) {
	args := m.Called(ctx, ownerID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductService) Update(ctx context.Context, id uuid.UUID, in *model.ProductInput) (*model.Product, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockCartService is a mock implementation of CartService.
type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) cart(args mock.Arguments) (*model.Cart, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Cart), args.Error(1)
}

func (m *MockCartService) GetCart(ctx context.Context, owner model.CartOwner) (*model.Cart, error) {
	return m.cart(m.Called(ctx, owner))
}

func (m *MockCartService) AddItem(ctx context.Context, owner model.CartOwner, productID uuid.UUID, quantity int, size, color string) (*model.Cart, error) {
	return m.cart(m.Called(ctx, owner, productID, quantity, size, color))
}

func (m *MockCartService) SetItemQuantity(ctx context.Context, owner model.CartOwner, key model.LineKey, quantity int) (*model.Cart, error) {
	return m.cart(m.Called(ctx, owner, key, quantity))
}

func (m *MockCartService) RemoveItem(ctx context.Context, owner model.CartOwner, key model.LineKey) (*model.Cart, error) {
	return m.cart(m.Called(ctx, owner, key))
}

func (m *MockCartService) Merge(ctx context.Context, guestID string, userID uuid.UUID) (*model.Cart, error) {
	return m.cart(m.Called(ctx, guestID, userID))
}

// MockCheckoutService is a mock implementation of CheckoutService.
type MockCheckoutService struct {
	mock.Mock
}

func (m *MockCheckoutService) session(args mock.Arguments) (*model.CheckoutSession, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CheckoutSession), args.Error(1)
}

func (m *MockCheckoutService) Create(ctx context.Context, userID uuid.UUID, req *model.CheckoutRequest) (*model.CheckoutSession, error) {
	return m.session(m.Called(ctx, userID, req))
}

func (m *MockCheckoutService) GetByID(ctx context.Context, id uuid.UUID) (*model.CheckoutSession, error) {
	return m.session(m.Called(ctx, id))
}

func (m *MockCheckoutService) MarkPaid(ctx context.Context, id uuid.UUID, req *model.PaymentRequest) (*model.CheckoutSession, error) {
	return m.session(m.Called(ctx, id, req))
}

func (m *MockCheckoutService) Finalize(ctx context.Context, id uuid.UUID) (*model.FinalizeResult, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FinalizeResult), args.Error(1)
}

// MockOrderService is a mock implementation of OrderService.
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) ListForUser(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

func (m *MockOrderService) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderService) ListAll(ctx context.Context) ([]model.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

func (m *MockOrderService) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) (*model.Order, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockUserService is a mock implementation of UserService.
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) auth(args mock.Arguments) (*model.AuthResponse, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AuthResponse), args.Error(1)
}

func (m *MockUserService) user(args mock.Arguments) (*model.User, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error) {
	return m.auth(m.Called(ctx, req))
}

func (m *MockUserService) Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error) {
	return m.auth(m.Called(ctx, req))
}

func (m *MockUserService) Profile(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return m.user(m.Called(ctx, id))
}

func (m *MockUserService) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserService) Create(ctx context.Context, req *model.CreateUserRequest) (*model.User, error) {
	return m.user(m.Called(ctx, req))
}

func (m *MockUserService) Update(ctx context.Context, id uuid.UUID, req *model.UpdateUserRequest) (*model.User, error) {
	return m.user(m.Called(ctx, id, req))
}

func (m *MockUserService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockAdminService is a mock implementation of AdminService.
type MockAdminService struct {
	mock.Mock
}

func (m *MockAdminService) ListOrders(ctx context.Context, caller model.Identity) ([]model.Order, error) {
	args := m.Called(ctx, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

func (m *MockAdminService) UpdateOrderStatus(ctx context.Context, caller model.Identity, id uuid.UUID, status model.OrderStatus) (*model.Order, error) {
	args := m.Called(ctx, caller, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockAdminService) DeleteOrder(ctx context.Context, caller model.Identity, id uuid.UUID) error {
	return m.Called(ctx, caller, id).Error(0)
}

func (m *MockAdminService) ListUsers(ctx context.Context, caller model.Identity) ([]model.User, error) {
	args := m.Called(ctx, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockAdminService) CreateUser(ctx context.Context, caller model.Identity, req *model.CreateUserRequest) (*model.User, error) {
	args := m.Called(ctx, caller, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAdminService) UpdateUser(ctx context.Context, caller model.Identity, id uuid.UUID, req *model.UpdateUserRequest) (*model.User, error) {
	args := m.Called(ctx, caller, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAdminService) DeleteUser(ctx context.Context, caller model.Identity, id uuid.UUID) error {
	return m.Called(ctx, caller, id).Error(0)
}

func (m *MockAdminService) ListProducts(ctx context.Context, caller model.Identity) ([]model.Product, error) {
	args := m.Called(ctx, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockAdminService) CreateProduct(ctx context.Context, caller model.Identity, in *model.ProductInput) (*model.Product, error) {
	args := m.Called(ctx, caller, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockAdminService) UpdateProduct(ctx context.Context, caller model.Identity, id uuid.UUID, in *model.ProductInput) (*model.Product, error) {
	args := m.Called(ctx, caller, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockAdminService) DeleteProduct(ctx context.Context, caller model.Identity, id uuid.UUID) error {
	return m.Called(ctx, caller, id).Error(0)
}

// MockSubscriberService is a mock implementation of SubscriberService.
type MockSubscriberService struct {
	mock.Mock
}

func (m *MockSubscriberService) Subscribe(ctx context.Context, email string) (*model.Subscriber, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Subscriber), args.Error(1)
}

// fakeUploader records the last upload.
type fakeUploader struct {
	filename    string
	contentType string
	body        []byte
	url         string
	err         error
}

func (f *fakeUploader) Upload(_ context.Context, filename, contentType string, body io.Reader) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	f.filename, f.contentType, f.body = filename, contentType, data
	return f.url, nil
}
