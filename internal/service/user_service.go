package service

import (
	"context"
	"strings"
	"time"

	"storefront/internal/auth"
	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// userService implements UserService.
type userService struct {
	users  repository.UserRepository
	hasher auth.PasswordHasher
	tokens auth.TokenService
	logger zerolog.Logger
}

// NewUserService creates a new user service.
func NewUserService(
	users repository.UserRepository,
	hasher auth.PasswordHasher,
	tokens auth.TokenService,
	logger zerolog.Logger,
) UserService {
	return &userService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		logger: logger.With().Str("service", "user").Logger(),
	}
}

// Register creates a customer account and issues a token.
func (s *userService) Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error) {
	user, err := s.Create(ctx, &model.CreateUserRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     model.RoleCustomer,
	})
	if err != nil {
		return nil, err
	}
	return s.authenticate(user)
}

// Login verifies credentials and issues a token. Unknown emails and wrong passwords
// are indistinguishable to the caller.
func (s *userService) Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error) {
	user, err := s.users.GetByEmail(ctx, model.NormalizeEmail(req.Email))
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to look up user")
		return nil, model.Unavailable(err)
	}
	if user == nil || !s.hasher.Check(req.Password, user.PasswordHash) {
		s.logger.Debug().Msg("login rejected")
		return nil, model.ErrInvalidCredentials
	}
	return s.authenticate(user)
}

func (s *userService) authenticate(user *model.User) (*model.AuthResponse, error) {
	token, err := s.tokens.Issue(user.Identity())
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", user.ID.String()).Msg("failed to issue token")
		return nil, err
	}
	return &model.AuthResponse{User: user, Token: token}, nil
}

// Profile retrieves a user.
func (s *userService) Profile(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", id.String()).Msg("failed to get user")
		return nil, model.Unavailable(err)
	}
	if user == nil {
		return nil, model.ErrUserNotFound
	}
	return user, nil
}

// List retrieves every user.
func (s *userService) List(ctx context.Context) ([]model.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list users")
		return nil, model.Unavailable(err)
	}
	return users, nil
}

// Create adds a user. The role defaults to customer.
func (s *userService) Create(ctx context.Context, req *model.CreateUserRequest) (*model.User, error) {
	name := strings.TrimSpace(req.Name)
	email := model.NormalizeEmail(req.Email)
	if name == "" || email == "" || req.Password == "" {
		return nil, model.InvalidInput("name, email and password are required")
	}

	role := req.Role
	if role == "" {
		role = model.RoleCustomer
	}
	if !role.Valid() {
		return nil, model.InvalidInput("role must be customer or admin")
	}

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, model.Unavailable(err)
	}
	if existing != nil {
		return nil, model.ErrUserExists
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &model.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if model.KindOf(err) != 0 {
			return nil, err
		}
		s.logger.Error().Err(err).Msg("failed to create user")
		return nil, model.Unavailable(err)
	}

	s.logger.Info().Str("user_id", user.ID.String()).Str("role", string(role)).Msg("user created")
	return user, nil
}

// Update changes a user's name, email, role or password. Empty fields are left
// unchanged and the hash is only recomputed when a new password is supplied.
func (s *userService) Update(ctx context.Context, id uuid.UUID, req *model.UpdateUserRequest) (*model.User, error) {
	user, err := s.Profile(ctx, id)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		user.Name = name
	}

	if email := model.NormalizeEmail(req.Email); email != "" && email != user.Email {
		other, err := s.users.GetByEmail(ctx, email)
		if err != nil {
			return nil, model.Unavailable(err)
		}
		if other != nil {
			return nil, model.ErrUserExists
		}
		user.Email = email
	}

	if req.Role != "" {
		if !req.Role.Valid() {
			return nil, model.InvalidInput("role must be customer or admin")
		}
		user.Role = req.Role
	}

	if req.Password != "" {
		hash, err := s.hasher.Hash(req.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	user.UpdatedAt = time.Now().UTC()

	updated, err := s.users.Update(ctx, user)
	if err != nil {
		if model.KindOf(err) != 0 {
			return nil, err
		}
		s.logger.Error().Err(err).Str("user_id", id.String()).Msg("failed to update user")
		return nil, model.Unavailable(err)
	}
	if !updated {
		return nil, model.ErrUserNotFound
	}

	return user, nil
}

// Delete removes a user.
func (s *userService) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.users.Delete(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", id.String()).Msg("failed to delete user")
		return model.Unavailable(err)
	}
	if !deleted {
		return model.ErrUserNotFound
	}

	s.logger.Info().Str("user_id", id.String()).Msg("user deleted")
	return nil
}
