// Package services holds the application logic between the HTTP controllers
// and the repositories.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/stockly/app/models"
	"github.com/shashiranjanraj/stockly/app/repositories"
	"github.com/shashiranjanraj/stockly/pkg/auth"
	"github.com/shashiranjanraj/stockly/pkg/logger"
)

// ErrInvalidCredentials covers both unknown email and wrong password, so a
// login failure never reveals which one it was.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrInvalidSession is returned when a presented token does not verify,
// has expired, or was revoked by a logout.
var ErrInvalidSession = errors.New("invalid session")

// AuthService implements register, login, refresh, and logout on top of the
// user repository and the token helpers.
type AuthService struct {
	users *repositories.UserRepository
}

func NewAuthService() *AuthService {
	return &AuthService{users: repositories.NewUserRepository()}
}

// Users exposes the underlying repository for the auth middleware.
func (s *AuthService) Users() *repositories.UserRepository { return s.users }

// Register creates a new account with a bcrypt-hashed password.
// A duplicate email surfaces as repositories.ErrEmailTaken.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (models.User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, fmt.Errorf("auth: hash password: %w", err)
	}

	user := models.User{
		Name:     strings.TrimSpace(name),
		Email:    email,
		Password: hash,
	}
	if err := s.users.Create(ctx, &user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// Login checks the credentials and issues a fresh access token.
func (s *AuthService) Login(ctx context.Context, email, password string) (models.User, string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return models.User{}, "", ErrInvalidCredentials
		}
		return models.User{}, "", err
	}

	if !auth.CheckPassword(user.Password, password) {
		return models.User{}, "", ErrInvalidCredentials
	}

	token, err := auth.Issue(user.ID.Hex(), auth.AccessTokenTTL)
	if err != nil {
		return models.User{}, "", fmt.Errorf("auth: issue token: %w", err)
	}
	return user, token, nil
}

// Refresh exchanges a still-valid token for a longer-lived one. The old
// token is revoked so only the rotated credential remains usable.
func (s *AuthService) Refresh(ctx context.Context, token string) (models.User, string, error) {
	claims, ok := auth.Verify(token)
	if !ok || auth.IsRevoked(ctx, token) {
		return models.User{}, "", ErrInvalidSession
	}

	user, err := s.userFromClaims(ctx, claims)
	if err != nil {
		return models.User{}, "", err
	}

	rotated, err := auth.Issue(user.ID.Hex(), auth.RefreshTokenTTL)
	if err != nil {
		return models.User{}, "", fmt.Errorf("auth: issue token: %w", err)
	}

	if err := auth.Revoke(ctx, token); err != nil {
		logger.Warn("auth: revoke superseded token", "error", err)
	}
	return user, rotated, nil
}

// Logout revokes the token for the rest of its lifetime. An unverifiable
// token is already useless, so that case succeeds silently.
func (s *AuthService) Logout(ctx context.Context, token string) {
	if token == "" {
		return
	}
	if err := auth.Revoke(ctx, token); err != nil {
		logger.Warn("auth: revoke on logout", "error", err)
	}
}

func (s *AuthService) userFromClaims(ctx context.Context, claims *auth.Claims) (models.User, error) {
	id, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return models.User{}, ErrInvalidSession
	}
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return models.User{}, ErrInvalidSession
		}
		return models.User{}, err
	}
	return user, nil
}
