package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/akarpov/storefront-api/internal/api/shared"
	"github.com/akarpov/storefront-api/internal/service"
	"github.com/akarpov/storefront-api/internal/service/auth"
	"github.com/akarpov/storefront-api/internal/task"
)

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	userService service.UserService
	jwtService  auth.JWTService
	executor    *task.Executor
	logger      *slog.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(
	userService service.UserService,
	jwtService auth.JWTService,
	executor *task.Executor,
	logger *slog.Logger,
) *AuthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{
		userService: userService,
		jwtService:  jwtService,
		executor:    executor,
		logger:      logger.With("component", "auth_handler"),
	}
}

// Register handles the /api/auth/register endpoint.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := h.register(r.Context(), req)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, resp)
}

// RegisterAsync handles the /api/auth/register/async endpoint.
func (h *AuthHandler) RegisterAsync(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	respondDeferred(w, r, h.executor, http.StatusCreated, func(ctx context.Context) (any, error) {
		return h.register(ctx, req)
	})
}

// Login handles the /api/auth/login endpoint.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := h.login(r.Context(), req)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// LoginAsync handles the /api/auth/login/async endpoint.
func (h *AuthHandler) LoginAsync(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	respondDeferred(w, r, h.executor, http.StatusOK, func(ctx context.Context) (any, error) {
		return h.login(ctx, req)
	})
}

// register creates the account and issues its first token.
func (h *AuthHandler) register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	user, err := h.userService.Create(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	token, err := h.jwtService.GenerateToken(ctx, user.Username)
	if err != nil {
		h.logger.Error("failed to generate token", "error", err, "username", user.Username)
		return nil, err
	}

	return &AuthResponse{
		Token:    token,
		Message:  MessageRegisterSuccess,
		Username: user.Username,
	}, nil
}

// login verifies credentials and issues a token. Unknown usernames and wrong
// passwords are indistinguishable to the client.
func (h *AuthHandler) login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	user, err := h.userService.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		return nil, err
	}

	token, err := h.jwtService.GenerateToken(ctx, user.Username)
	if err != nil {
		h.logger.Error("failed to generate token", "error", err, "username", user.Username)
		return nil, err
	}

	return &AuthResponse{
		Token:    token,
		Message:  MessageLoginSuccess,
		Username: user.Username,
	}, nil
}
