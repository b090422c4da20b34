package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	httpctx "github.com/fps-platform/fps-backend/internal/api/http/context"
	"github.com/fps-platform/fps-backend/internal/api/http/response"
	"github.com/fps-platform/fps-backend/internal/logger"
	"github.com/fps-platform/fps-backend/internal/metrics"
	"github.com/fps-platform/fps-backend/internal/model"
)

// UserService covers the account operations the auth endpoints need.
type UserService interface {
	Register(ctx context.Context, username, email, password string) (model.User, error)
	Login(ctx context.Context, username, password string) (model.User, error)
}

// TokenService covers the lifecycle operations the auth endpoints need.
type TokenService interface {
	Issue(ctx context.Context, user model.User) (model.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (model.TokenPair, error)
	InvalidateAllForUser(ctx context.Context, userID int64) error
}

// Auth serves the /api/auth endpoints.
type Auth struct {
	users   UserService
	tokens  TokenService
	metrics metrics.Recorder
	logger  *logger.Logger
}

// NewAuth creates the auth handler.
func NewAuth(users UserService, tokens TokenService, metrics metrics.Recorder, logger *logger.Logger) *Auth {
	return &Auth{users: users, tokens: tokens, metrics: metrics, logger: logger}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type userData struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type tokenPairData struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	UserID       int64  `json:"userId"`
	Username     string `json:"username"`
	Email        string `json:"email"`
}

// Register handles POST /api/auth/register.
func (h *Auth) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		response.Error(w, http.StatusBadRequest, "username, email and password are required")
		return
	}

	user, err := h.users.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrUsernameTaken):
			response.Error(w, http.StatusConflict, "username already taken")
		case errors.Is(err, model.ErrEmailTaken):
			response.Error(w, http.StatusConflict, "email already taken")
		default:
			h.logger.Error("registration failed", "error", err.Error())
			response.Error(w, http.StatusInternalServerError, "registration failed")
		}
		return
	}

	response.OK(w, http.StatusCreated, "user registered", userData{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	})
}

// Login handles POST /api/auth/login. A successful login issues a fresh token
// pair backed by its own record, leaving other sessions untouched.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		h.metrics.RecordLogin(false)
		if errors.Is(err, model.ErrInvalidCredentials) {
			response.Unauthorized(w)
			return
		}
		h.logger.Error("login failed", "error", err.Error())
		response.Error(w, http.StatusInternalServerError, "login failed")
		return
	}

	pair, err := h.tokens.Issue(r.Context(), user)
	if err != nil {
		h.metrics.RecordLogin(false)
		h.logger.Error("failed to issue tokens", "user_id", user.ID, "error", err.Error())
		response.Error(w, http.StatusInternalServerError, "login failed")
		return
	}

	h.metrics.RecordLogin(true)
	response.OK(w, http.StatusOK, "login successful", tokenPairFrom(pair))
}

// Refresh handles POST /api/auth/refresh. All rotation failures collapse into
// the uniform 401; the distinct causes surface only in logs and metrics.
func (h *Auth) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	pair, err := h.tokens.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrInvalidToken):
			h.metrics.RecordRefresh(metrics.RefreshOutcomeInvalid)
			response.Unauthorized(w)
		case errors.Is(err, model.ErrTokenNotFound):
			h.metrics.RecordRefresh(metrics.RefreshOutcomeNotFound)
			response.Unauthorized(w)
		case errors.Is(err, model.ErrRefreshExpired):
			h.metrics.RecordRefresh(metrics.RefreshOutcomeExpired)
			response.Unauthorized(w)
		default:
			h.metrics.RecordRefresh(metrics.RefreshOutcomeError)
			h.logger.Error("token refresh failed", "error", err.Error())
			response.Error(w, http.StatusInternalServerError, "token refresh failed")
		}
		return
	}

	h.metrics.RecordRefresh(metrics.RefreshOutcomeRotated)
	response.OK(w, http.StatusOK, "token refreshed", tokenPairFrom(pair))
}

// Logout handles POST /api/auth/logout. It runs behind RequireAuth and
// invalidates every session of the calling user.
func (h *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	user, ok := httpctx.UserFrom(r.Context())
	if !ok {
		response.Unauthorized(w)
		return
	}

	if err := h.tokens.InvalidateAllForUser(r.Context(), user.ID); err != nil {
		h.logger.Error("logout failed", "user_id", user.ID, "error", err.Error())
		response.Error(w, http.StatusInternalServerError, "logout failed")
		return
	}

	response.OK(w, http.StatusOK, "logged out", nil)
}

func tokenPairFrom(pair model.TokenPair) tokenPairData {
	return tokenPairData{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		UserID:       pair.UserID,
		Username:     pair.Username,
		Email:        pair.Email,
	}
}
