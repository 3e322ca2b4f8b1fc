package model

import "github.com/google/uuid"

// Role is the authorisation role carried by an identity.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// Valid reports whether r is a recognised role.
func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleAdmin
}

// Identity is the caller resolved from a bearer credential.
type Identity struct {
	UserID uuid.UUID `json:"userId"`
	Role   Role      `json:"role"`
}

// IsAdmin reports whether the identity carries the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// CanAccess reports whether the identity may read or mutate a resource owned by owner.
func (i Identity) CanAccess(owner uuid.UUID) bool {
	return i.IsAdmin() || (i.UserID != uuid.Nil && i.UserID == owner)
}
