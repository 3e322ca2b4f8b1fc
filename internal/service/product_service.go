package service

import (
	"context"
	"time"

	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	similarLimit     = 4
	newArrivalsLimit = 8
)

// productService implements ProductService.
type productService struct {
	products repository.ProductRepository
	logger   zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(products repository.ProductRepository, logger zerolog.Logger) ProductService {
	return &productService{
		products: products,
		logger:   logger.With().Str("service", "product").Logger(),
	}
}

// List retrieves products matching the filter.
func (s *productService) List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	if filter.Limit < 0 {
		return nil, model.InvalidInput("limit must not be negative")
	}
	if filter.MinPrice != nil && filter.MaxPrice != nil && filter.MinPrice.GreaterThan(*filter.MaxPrice) {
		return nil, model.InvalidInput("minPrice cannot exceed maxPrice")
	}

	products, err := s.products.List(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list products")
		return nil, model.Unavailable(err)
	}

	s.logger.Debug().Int("count", len(products)).Msg("retrieved products")
	return products, nil
}

// GetByID retrieves a single product.
func (s *productService) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to get product")
		return nil, model.Unavailable(err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}
	return product, nil
}

// Similar retrieves products with the same gender and category.
func (s *productService) Similar(ctx context.Context, id uuid.UUID) ([]model.Product, error) {
	product, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	similar, err := s.products.Similar(ctx, product, similarLimit)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to get similar products")
		return nil, model.Unavailable(err)
	}
	return similar, nil
}

// BestSeller retrieves the highest rated product.
func (s *productService) BestSeller(ctx context.Context) (*model.Product, error) {
	product, err := s.products.BestSeller(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to get best seller")
		return nil, model.Unavailable(err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}
	return product, nil
}

// NewArrivals retrieves the newest products.
func (s *productService) NewArrivals(ctx context.Context) ([]model.Product, error) {
	products, err := s.products.NewArrivals(ctx, newArrivalsLimit)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to get new arrivals")
		return nil, model.Unavailable(err)
	}
	return products, nil
}

// Create adds a product.
func (s *productService) Create(ctx context.Context, ownerID uuid.UUID, in *model.ProductInput) (*model.Product, error) {
	if in == nil {
		return nil, model.InvalidInput("product body is required")
	}
	if in.Price == nil {
		return nil, model.InvalidInput("price is required")
	}

	now := time.Now().UTC()
	product := &model.Product{
		ID:        uuid.New(),
		Sizes:     []string{},
		Colors:    []string{},
		Images:    []model.ProductImage{},
		UserID:    ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	in.Apply(product)

	if err := validateProduct(product); err != nil {
		return nil, err
	}

	if err := s.products.Create(ctx, product); err != nil {
		s.logger.Error().Err(err).Msg("failed to create product")
		return nil, model.Unavailable(err)
	}

	s.logger.Info().Str("product_id", product.ID.String()).Str("sku", product.SKU).Msg("product created")
	return product, nil
}

// Update applies the non-nil fields of in to a product.
func (s *productService) Update(ctx context.Context, id uuid.UUID, in *model.ProductInput) (*model.Product, error) {
	if in == nil {
		return nil, model.InvalidInput("product body is required")
	}

	product, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	in.Apply(product)
	product.UpdatedAt = time.Now().UTC()

	if err := validateProduct(product); err != nil {
		return nil, err
	}

	updated, err := s.products.Update(ctx, product)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to update product")
		return nil, model.Unavailable(err)
	}
	if !updated {
		return nil, model.ErrProductNotFound
	}

	return product, nil
}

// Delete removes a product.
func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.products.Delete(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to delete product")
		return model.Unavailable(err)
	}
	if !deleted {
		return model.ErrProductNotFound
	}
	return nil
}

func validateProduct(p *model.Product) error {
	switch {
	case p.Name == "":
		return model.InvalidInput("name is required")
	case p.Description == "":
		return model.InvalidInput("description is required")
	case p.SKU == "":
		return model.InvalidInput("sku is required")
	case p.Category == "":
		return model.InvalidInput("category is required")
	case p.Collections == "":
		return model.InvalidInput("collections is required")
	case p.Price.IsNegative():
		return model.InvalidInput("price must not be negative")
	case p.DiscountPrice != nil && p.DiscountPrice.IsNegative():
		return model.InvalidInput("discountPrice must not be negative")
	case p.CountInStock < 0:
		return model.InvalidInput("countInStock must not be negative")
	}
	return nil
}
