package auth

import (
	"errors"
	"fmt"
	"time"

	"storefront/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenService issues and resolves bearer credentials.
type TokenService interface {
	// Issue signs a credential carrying the identity.
	Issue(identity model.Identity) (string, error)

	// Resolve verifies a credential and returns the identity it carries.
	Resolve(token string) (model.Identity, error)
}

// claims is the payload of a storefront bearer token.
type claims struct {
	Role model.Role `json:"role"`
	jwt.RegisteredClaims
}

// jwtService signs HS256 tokens with a shared secret.
type jwtService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTService creates a token service. The secret must not be empty.
func NewJWTService(secret string, ttl time.Duration) (TokenService, error) {
	if secret == "" {
		return nil, errors.New("jwt secret must be provided")
	}
	if ttl <= 0 {
		return nil, errors.New("jwt ttl must be positive")
	}
	return &jwtService{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

func (s *jwtService) Issue(identity model.Identity) (string, error) {
	issuedAt := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Role: identity.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.ttl)),
		},
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Resolve maps every verification failure to model.ErrUnauthorised.
func (s *jwtService) Resolve(token string) (model.Identity, error) {
	var c claims
	_, err := jwt.ParseWithClaims(token, &c, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return model.Identity{}, model.ErrUnauthorised
	}

	userID, err := uuid.Parse(c.Subject)
	if err != nil || !c.Role.Valid() {
		return model.Identity{}, model.ErrUnauthorised
	}

	return model.Identity{UserID: userID, Role: c.Role}, nil
}
