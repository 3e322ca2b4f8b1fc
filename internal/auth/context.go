package auth

import (
	"context"

	"storefront/internal/model"
)

type identityKey struct{}

// WithIdentity returns a copy of ctx carrying the resolved caller.
func WithIdentity(ctx context.Context, identity model.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// IdentityFrom returns the caller stored in ctx, if any.
func IdentityFrom(ctx context.Context) (model.Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(model.Identity)
	return identity, ok
}
