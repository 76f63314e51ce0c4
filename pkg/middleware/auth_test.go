package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/stockly/app/models"
	"github.com/shashiranjanraj/stockly/app/repositories"
	"github.com/shashiranjanraj/stockly/pkg/auth"
	"github.com/shashiranjanraj/stockly/pkg/middleware"
)

type fakeUsers struct {
	user models.User
	err  error
}

func (f *fakeUsers) FindByID(_ context.Context, id primitive.ObjectID) (models.User, error) {
	if f.err != nil {
		return models.User{}, f.err
	}
	if id != f.user.ID {
		return models.User{}, repositories.ErrNotFound
	}
	return f.user, nil
}

func protected(t *testing.T, users middleware.UserLoader) (http.Handler, *models.User) {
	t.Helper()
	var seen models.User
	handler := middleware.Auth(users)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, ok := middleware.CurrentUser(r.Context())
		require.True(t, ok)
		seen = u
		w.WriteHeader(http.StatusOK)
	}))
	return handler, &seen
}

func request(token string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: token})
	}
	return req
}

func TestAuthAcceptsValidSession(t *testing.T) {
	user := models.User{ID: primitive.NewObjectID(), Name: "Ada", Email: "ada@example.com"}
	token, err := auth.Issue(user.ID.Hex(), auth.AccessTokenTTL)
	require.NoError(t, err)

	handler, seen := protected(t, &fakeUsers{user: user})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, request(token))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, user.Email, seen.Email)
}

func TestAuthRejectsMissingCookie(t *testing.T) {
	handler, _ := protected(t, &fakeUsers{})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, request(""))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRejectsBadToken(t *testing.T) {
	handler, _ := protected(t, &fakeUsers{})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, request("garbage"))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRejectsExpiredToken(t *testing.T) {
	user := models.User{ID: primitive.NewObjectID()}
	token, err := auth.Issue(user.ID.Hex(), -time.Minute)
	require.NoError(t, err)

	handler, _ := protected(t, &fakeUsers{user: user})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, request(token))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// A verified token whose account is gone is unauthenticated, not a 500.
func TestAuthRejectsUnknownUser(t *testing.T) {
	token, err := auth.Issue(primitive.NewObjectID().Hex(), auth.AccessTokenTTL)
	require.NoError(t, err)

	handler, _ := protected(t, &fakeUsers{err: repositories.ErrNotFound})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, request(token))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// A lookup failure that is not "record not found" is an infrastructure
// error, never unauthenticated.
func TestAuthLookupFailureIsServerError(t *testing.T) {
	token, err := auth.Issue(primitive.NewObjectID().Hex(), auth.AccessTokenTTL)
	require.NoError(t, err)

	handler, _ := protected(t, &fakeUsers{err: errors.New("connection reset")})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, request(token))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestAuthRejectsNonObjectIDSubject(t *testing.T) {
	token, err := auth.Issue("not-an-object-id", auth.AccessTokenTTL)
	require.NoError(t, err)

	handler, _ := protected(t, &fakeUsers{})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, request(token))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
