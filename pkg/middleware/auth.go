package middleware

import (
	"context"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/stockly/app/models"
	"github.com/shashiranjanraj/stockly/app/repositories"
	"github.com/shashiranjanraj/stockly/pkg/auth"
	"github.com/shashiranjanraj/stockly/pkg/logger"
	"github.com/shashiranjanraj/stockly/pkg/response"
)

// SessionCookie is the cookie carrying the signed session token.
const SessionCookie = "session_id"

// UserLoader resolves a verified user id to its account record.
type UserLoader interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (models.User, error)
}

type userKey struct{}

// CurrentUser returns the authenticated user stored by the Auth middleware.
func CurrentUser(ctx context.Context) (models.User, bool) {
	u, ok := ctx.Value(userKey{}).(models.User)
	return u, ok
}

// WithUser stores a user in ctx. Exposed for handler tests.
func WithUser(ctx context.Context, u models.User) context.Context {
	return context.WithValue(ctx, userKey{}, u)
}

// Auth gates a route group behind the session cookie: the token must carry
// a valid signature and expiry, must not have been revoked by a logout, and
// must resolve to an existing user. A structurally valid token whose user
// record is gone is unauthenticated, not a server error; an infrastructure
// failure during the lookup is a server error, not unauthenticated.
func Auth(users UserLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				response.Unauthorized(w)
				return
			}

			claims, ok := auth.Verify(cookie.Value)
			if !ok || auth.IsRevoked(r.Context(), cookie.Value) {
				response.Unauthorized(w)
				return
			}

			userID, err := primitive.ObjectIDFromHex(claims.UserID)
			if err != nil {
				response.Unauthorized(w)
				return
			}

			user, err := users.FindByID(r.Context(), userID)
			if errors.Is(err, repositories.ErrNotFound) {
				response.Unauthorized(w)
				return
			}
			if err != nil {
				logger.WithCtx(r.Context()).Error("auth: load user", "error", err)
				response.ServerError(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}
