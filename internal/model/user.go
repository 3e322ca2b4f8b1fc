package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is a registered shopper or administrator.
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Identity returns the identity a credential for u carries.
func (u *User) Identity() Identity {
	return Identity{UserID: u.ID, Role: u.Role}
}

// NormalizeEmail trims and lowercases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// RegisterRequest is the payload for self-registration.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest is the payload for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse carries the authenticated user and their bearer token.
type AuthResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// CreateUserRequest is the payload for admin user creation.
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     Role   `json:"role" validate:"omitempty,oneof=customer admin"`
}

// UpdateUserRequest carries optional user changes. A non-empty password is re-hashed.
type UpdateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" validate:"omitempty,email"`
	Role     Role   `json:"role" validate:"omitempty,oneof=customer admin"`
	Password string `json:"password" validate:"omitempty,min=6"`
}
