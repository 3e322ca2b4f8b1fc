package repository

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// userRepository implements the UserRepository interface using PostgreSQL.
type userRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewUserRepository creates a new PostgreSQL-backed user repository.
func NewUserRepository(pool *pgxpool.Pool, logger zerolog.Logger) UserRepository {
	return &userRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "user").Logger(),
	}
}

const userColumns = `id, name, email, password_hash, role, created_at, updated_at`

func scanUser(row pgx.Row) (*model.User, error) {
	var (
		u    model.User
		role string
	)
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &role, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	u.Role = model.Role(role)
	return &u, nil
}

// Create inserts a new user.
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		user.ID, user.Name, user.Email, user.PasswordHash, string(user.Role), user.CreatedAt, user.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrUserExists
		}
		r.logger.Error().Err(err).Str("user_id", user.ID.String()).Msg("failed to create user")
		return fmt.Errorf("failed to create user: %w", err)
	}

	r.logger.Debug().Str("user_id", user.ID.String()).Msg("user created successfully")
	return nil
}

func (r *userRepository) getOne(ctx context.Context, where string, arg any) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE ` + where

	u, err := scanUser(r.pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Msg("failed to query user")
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	return u, nil
}

// GetByID retrieves a user.
func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return r.getOne(ctx, "id = $1", id)
}

// GetByEmail retrieves a user by normalised email.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getOne(ctx, "email = $1", email)
}

// List retrieves every user, oldest first.
func (r *userRepository) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at, id`)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query users")
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan user row")
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, *u)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating user rows")
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	return users, nil
}

// Update overwrites a user.
func (r *userRepository) Update(ctx context.Context, user *model.User) (bool, error) {
	query := `
		UPDATE users
		SET name = $2, email = $3, password_hash = $4, role = $5, updated_at = $6
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		user.ID, user.Name, user.Email, user.PasswordHash, string(user.Role), user.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return false, model.ErrUserExists
		}
		r.logger.Error().Err(err).Str("user_id", user.ID.String()).Msg("failed to update user")
		return false, fmt.Errorf("failed to update user: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

// Delete removes a user.
func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", id.String()).Msg("failed to delete user")
		return false, fmt.Errorf("failed to delete user: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

// DeleteAll removes every user.
func (r *userRepository) DeleteAll(ctx context.Context) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users`)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to delete users")
		return fmt.Errorf("failed to delete users: %w", err)
	}

	r.logger.Info().Int64("count", tag.RowsAffected()).Msg("users deleted")
	return nil
}
