package service

import (
	"context"

	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// adminService implements AdminService on top of the shopper-facing services, so
// the same field-level rules apply to privileged mutations.
type adminService struct {
	orders   OrderService
	users    UserService
	products ProductService
	logger   zerolog.Logger
}

// NewAdminService creates a new admin service.
func NewAdminService(
	orders OrderService,
	users UserService,
	products ProductService,
	logger zerolog.Logger,
) AdminService {
	return &adminService{
		orders:   orders,
		users:    users,
		products: products,
		logger:   logger.With().Str("service", "admin").Logger(),
	}
}

func (s *adminService) authorize(caller model.Identity, action string) error {
	if !caller.IsAdmin() {
		s.logger.Warn().
			Str("user_id", caller.UserID.String()).
			Str("action", action).
			Msg("admin capability check failed")
		return model.ErrForbidden
	}
	return nil
}

func (s *adminService) ListOrders(ctx context.Context, caller model.Identity) ([]model.Order, error) {
	if err := s.authorize(caller, "list_orders"); err != nil {
		return nil, err
	}
	return s.orders.ListAll(ctx)
}

func (s *adminService) UpdateOrderStatus(ctx context.Context, caller model.Identity, id uuid.UUID, status model.OrderStatus) (*model.Order, error) {
	if err := s.authorize(caller, "update_order"); err != nil {
		return nil, err
	}
	return s.orders.UpdateStatus(ctx, id, status)
}

func (s *adminService) DeleteOrder(ctx context.Context, caller model.Identity, id uuid.UUID) error {
	if err := s.authorize(caller, "delete_order"); err != nil {
		return err
	}
	return s.orders.Delete(ctx, id)
}

func (s *adminService) ListUsers(ctx context.Context, caller model.Identity) ([]model.User, error) {
	if err := s.authorize(caller, "list_users"); err != nil {
		return nil, err
	}
	return s.users.List(ctx)
}

func (s *adminService) CreateUser(ctx context.Context, caller model.Identity, req *model.CreateUserRequest) (*model.User, error) {
	if err := s.authorize(caller, "create_user"); err != nil {
		return nil, err
	}
	return s.users.Create(ctx, req)
}

func (s *adminService) UpdateUser(ctx context.Context, caller model.Identity, id uuid.UUID, req *model.UpdateUserRequest) (*model.User, error) {
	if err := s.authorize(caller, "update_user"); err != nil {
		return nil, err
	}
	return s.users.Update(ctx, id, req)
}

func (s *adminService) DeleteUser(ctx context.Context, caller model.Identity, id uuid.UUID) error {
	if err := s.authorize(caller, "delete_user"); err != nil {
		return err
	}
	return s.users.Delete(ctx, id)
}

func (s *adminService) ListProducts(ctx context.Context, caller model.Identity) ([]model.Product, error) {
	if err := s.authorize(caller, "list_products"); err != nil {
		return nil, err
	}
	return s.products.List(ctx, model.ProductFilter{})
}

func (s *adminService) CreateProduct(ctx context.Context, caller model.Identity, in *model.ProductInput) (*model.Product, error) {
	if err := s.authorize(caller, "create_product"); err != nil {
		return nil, err
	}
	return s.products.Create(ctx, caller.UserID, in)
}

func (s *adminService) UpdateProduct(ctx context.Context, caller model.Identity, id uuid.UUID, in *model.ProductInput) (*model.Product, error) {
	if err := s.authorize(caller, "update_product"); err != nil {
		return nil, err
	}
	return s.products.Update(ctx, id, in)
}

func (s *adminService) DeleteProduct(ctx context.Context, caller model.Identity, id uuid.UUID) error {
	if err := s.authorize(caller, "delete_product"); err != nil {
		return err
	}
	return s.products.Delete(ctx, id)
}
