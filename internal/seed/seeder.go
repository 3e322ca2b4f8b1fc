package seed

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/auth"
	"storefront/internal/config"
	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Result summarises a seeding run.
type Result struct {
	Admin    *model.User
	Products int
}

// Seeder replaces the catalogue and user accounts with a known starting state.
type Seeder struct {
	products repository.ProductRepository
	users    repository.UserRepository
	hasher   auth.PasswordHasher
	loader   Loader
	cfg      config.SeedConfig
	logger   zerolog.Logger
}

// NewSeeder creates a new seeder.
func NewSeeder(
	products repository.ProductRepository,
	users repository.UserRepository,
	hasher auth.PasswordHasher,
	loader Loader,
	cfg config.SeedConfig,
	logger zerolog.Logger,
) *Seeder {
	return &Seeder{
		products: products,
		users:    users,
		hasher:   hasher,
		loader:   loader,
		cfg:      cfg,
		logger:   logger.With().Str("component", "seeder").Logger(),
	}
}

// Run wipes products and users, creates the admin account and inserts the
// catalogue owned by it. Every file is loaded before anything is deleted.
func (s *Seeder) Run(ctx context.Context) (*Result, error) {
	if s.cfg.AdminPassword == "" {
		return nil, fmt.Errorf("admin password is required")
	}

	var catalogue []model.Product
	for _, name := range s.cfg.Files {
		products, err := s.loader.Load(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", name, err)
		}
		catalogue = append(catalogue, products...)
	}

	if err := s.products.DeleteAll(ctx); err != nil {
		return nil, err
	}
	if err := s.users.DeleteAll(ctx); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(s.cfg.AdminPassword)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	admin := &model.User{
		ID:           uuid.New(),
		Name:         s.cfg.AdminName,
		Email:        model.NormalizeEmail(s.cfg.AdminEmail),
		PasswordHash: hash,
		Role:         model.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, admin); err != nil {
		return nil, err
	}

	for i := range catalogue {
		p := &catalogue[i]
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		if p.CreatedAt.IsZero() {
			// Later lines are newer so new arrivals follow file order.
			p.CreatedAt = now.Add(time.Duration(i) * time.Millisecond)
		}
		if p.UpdatedAt.IsZero() {
			p.UpdatedAt = p.CreatedAt
		}
		if p.Sizes == nil {
			p.Sizes = []string{}
		}
		if p.Colors == nil {
			p.Colors = []string{}
		}
		if p.Images == nil {
			p.Images = []model.ProductImage{}
		}
		p.UserID = admin.ID
	}

	if err := s.products.CreateMany(ctx, catalogue); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("admin_email", admin.Email).
		Int("products", len(catalogue)).
		Msg("seed data loaded")

	return &Result{Admin: admin, Products: len(catalogue)}, nil
}
