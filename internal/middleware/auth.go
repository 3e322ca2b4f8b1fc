package middleware

import (
	"context"
	"net/http"

	"storefront/internal/auth"
	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// UserLookup loads the account a token was issued for. It returns nil when absent.
type UserLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}

// Authenticate requires a valid bearer token for an existing account and stores
// the caller's identity in the request context. The role comes from the stored
// account, so demotions and deletions apply to tokens already issued.
func Authenticate(tokens auth.TokenService, users UserLookup, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				logger.Warn().Str("path", r.URL.Path).Msg("missing bearer token")
				writeError(w, http.StatusUnauthorized, model.ErrCodeUnauthorised, "Not authorised, no token")
				return
			}

			claimed, err := tokens.Resolve(token)
			if err != nil {
				logger.Warn().Str("path", r.URL.Path).Msg("invalid bearer token")
				writeError(w, http.StatusUnauthorized, model.ErrCodeUnauthorised, "Not authorised, token failed")
				return
			}

			user, err := users.GetByID(r.Context(), claimed.UserID)
			if err != nil {
				logger.Error().Err(err).Str("user_id", claimed.UserID.String()).Msg("failed to load token user")
				writeError(w, http.StatusServiceUnavailable, model.ErrCodeUnavailable, "service temporarily unavailable")
				return
			}
			if user == nil {
				logger.Warn().Str("user_id", claimed.UserID.String()).Msg("token user no longer exists")
				writeError(w, http.StatusUnauthorized, model.ErrCodeUnauthorised, "Not authorised, user not found")
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), user.Identity())))
		})
	}
}

// OptionalAuthenticate resolves a bearer token when one is sent. Requests without
// a token pass through anonymously; a token that fails to verify is rejected.
func OptionalAuthenticate(tokens auth.TokenService, users UserLookup, logger zerolog.Logger) func(http.Handler) http.Handler {
	required := Authenticate(tokens, users, logger)
	return func(next http.Handler) http.Handler {
		withAuth := required(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") == "" {
				next.ServeHTTP(w, r)
				return
			}
			withAuth.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin rejects callers without the admin role. It must run after Authenticate.
func RequireAdmin(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := auth.IdentityFrom(r.Context())
			if !ok || !identity.IsAdmin() {
				logger.Warn().
					Str("path", r.URL.Path).
					Str("user_id", identity.UserID.String()).
					Msg("admin access denied")
				writeError(w, http.StatusForbidden, model.ErrCodeForbidden, "Not authorised as admin")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
