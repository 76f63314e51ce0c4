// Package controllers maps HTTP requests onto the services layer.
package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/shashiranjanraj/stockly/app/repositories"
	"github.com/shashiranjanraj/stockly/app/services"
	"github.com/shashiranjanraj/stockly/config"
	"github.com/shashiranjanraj/stockly/pkg/auth"
	"github.com/shashiranjanraj/stockly/pkg/bind"
	"github.com/shashiranjanraj/stockly/pkg/logger"
	"github.com/shashiranjanraj/stockly/pkg/middleware"
	"github.com/shashiranjanraj/stockly/pkg/response"
)

type AuthController struct {
	service *services.AuthService
}

func NewAuthController(service *services.AuthService) *AuthController {
	return &AuthController{service: service}
}

type registerRequest struct {
	Name     string `json:"name"     validate:"required,min=2,max=200"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var body registerRequest
	errs, err := bind.JSON(r, &body)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	user, err := c.service.Register(r.Context(), body.Name, body.Email, body.Password)
	if err != nil {
		if errors.Is(err, repositories.ErrEmailTaken) {
			response.Error(w, http.StatusBadRequest, "email already registered")
			return
		}
		logger.WithCtx(r.Context()).Error("auth: register", "error", err)
		response.ServerError(w)
		return
	}

	response.Created(w, map[string]any{
		"id":    user.ID.Hex(),
		"name":  user.Name,
		"email": user.Email,
	})
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var body loginRequest
	errs, err := bind.JSON(r, &body)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	user, token, err := c.service.Login(r.Context(), body.Email, body.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			response.Error(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		logger.WithCtx(r.Context()).Error("auth: login", "error", err)
		response.ServerError(w)
		return
	}

	setSessionCookie(w, token, auth.AccessTokenTTL)
	response.Success(w, map[string]any{
		"userId":    user.ID.Hex(),
		"userName":  user.Name,
		"userEmail": user.Email,
		"sessionId": token,
	})
}

// Logout revokes the presented token and expires the cookie. It succeeds
// even without a cookie so repeated logouts stay idempotent.
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.SessionCookie); err == nil {
		c.service.Logout(r.Context(), cookie.Value)
	}
	clearSessionCookie(w)
	response.NoContent(w)
}

// Session returns the authenticated user's profile.
func (c *AuthController) Session(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		response.Unauthorized(w)
		return
	}
	response.Success(w, user)
}

// Refresh rotates the session cookie: the current token must still verify,
// and the replacement carries the longer refresh validity window.
func (c *AuthController) Refresh(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(middleware.SessionCookie)
	if err != nil || cookie.Value == "" {
		response.Unauthorized(w)
		return
	}

	user, rotated, err := c.service.Refresh(r.Context(), cookie.Value)
	if err != nil {
		if errors.Is(err, services.ErrInvalidSession) {
			clearSessionCookie(w)
			response.Unauthorized(w)
			return
		}
		logger.WithCtx(r.Context()).Error("auth: refresh", "error", err)
		response.ServerError(w)
		return
	}

	setSessionCookie(w, rotated, auth.RefreshTokenTTL)
	response.Success(w, user)
}

func setSessionCookie(w http.ResponseWriter, token string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   config.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   config.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
}
